package main

import (
	"bufio"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/gookit/color"
	"golang.org/x/crypto/ssh/terminal"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclparse"

	"github.com/greenmatthew/DayZ-Server-Manager/manager"
	"github.com/greenmatthew/DayZ-Server-Manager/manifest"
)

type pathFlags struct {
	ConfigPath       string
	ModListPath      string
	ServerConfigPath string
}

func (p *pathFlags) configFlag(fs *flag.FlagSet) {
	fs.StringVar(&p.ConfigPath, "config", manager.DefaultConfigPath, "manager config path")
}

func (p *pathFlags) modListFlag(fs *flag.FlagSet) {
	fs.StringVar(&p.ModListPath, "modlist", manager.DefaultModListPath, "mod list path")
}

func (p *pathFlags) serverConfigFlag(fs *flag.FlagSet) {
	fs.StringVar(&p.ServerConfigPath, "server-config", manager.DefaultServerConfigPath, "server config path")
}

func (p *pathFlags) load() (*manager.Config, *manager.ModList, bool) {
	c, err := manifest.LoadConfig(p.ConfigPath)
	if err != nil {
		log.Printf("load config %q: %+v", p.ConfigPath, err)
		return nil, nil, false
	}
	mods, err := manifest.LoadModList(p.ModListPath)
	if err != nil {
		log.Printf("load mod list %q: %+v", p.ModListPath, err)
		return nil, nil, false
	}
	return c, mods, true
}

func newDiagWr(p *hclparse.Parser) (diagWr hcl.DiagnosticWriter, useColor bool) {
	files := p.Files()
	stderr := os.Stderr
	fd := int(stderr.Fd())
	istty, useColor := fdinfo(fd)
	if !istty {
		diagWr := hcl.NewDiagnosticTextWriter(stderr, files, 80, useColor)
		return diagWr, useColor
	}
	width := uint(80)
	if w, _, err := terminal.GetSize(fd); err != nil {
		log.Printf("get term size: %+v", err)
	} else if w > 0 {
		width = uint(w)
	}
	return hcl.NewDiagnosticTextWriter(stderr, files, width, useColor), useColor
}

func fdinfo(fd int) (istty, useColor bool) {
	istty = terminal.IsTerminal(fd)
	if istty {
		useColor = true
	}
	// See https://no-color.org
	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		useColor = false
	}
	return
}

// report prints a failure so an operator can act on it.
func report(err error) {
	msg := fmt.Sprintf("An error occurred: %+v", err)
	if _, useColor := fdinfo(int(os.Stderr.Fd())); useColor {
		msg = color.Red.Sprint(msg)
	}
	log.Print(msg)
}

// pause waits for Enter when stdin is a terminal so a console window
// opened just for this program does not close before it can be read.
func pause() {
	if !terminal.IsTerminal(int(os.Stdin.Fd())) {
		return
	}
	fmt.Fprint(os.Stderr, "\nPress Enter to exit...")
	if _, err := bufio.NewReader(os.Stdin).ReadString('\n'); err != nil {
		log.Printf("read stdin: %+v", err)
	}
}
