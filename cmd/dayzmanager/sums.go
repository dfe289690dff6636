package main

import (
	"context"
	"flag"
	"fmt"
	"log"

	"github.com/google/subcommands"

	"github.com/go-git/go-billy/v5/osfs"
	"github.com/hashicorp/hcl/v2/hclparse"

	"github.com/tie/internal/renameio"
	"github.com/tie/internal/robustio"

	"github.com/greenmatthew/DayZ-Server-Manager/manifest"
	"github.com/greenmatthew/DayZ-Server-Manager/sums"
)

type SumsCommand struct {
	pathFlags
	OutputPath string
	Check      bool
}

func (*SumsCommand) Name() string     { return "sums" }
func (*SumsCommand) Synopsis() string { return "record or verify server key checksums" }
func (*SumsCommand) Usage() string {
	return `Usage: dayzmanager sums [-config manager.cfg] [-o keys.sum] [-check]

	Generates a manifest with a "key" block for every file in the server
	keys directory, holding its md5, sha1, sha256 and sha3-256 sums.
	With -check the keys directory is compared against an existing
	manifest instead and every missing, changed or untracked key file
	is printed.

Flags:
`
}

func (cmd *SumsCommand) SetFlags(fs *flag.FlagSet) {
	cmd.configFlag(fs)
	fs.StringVar(&cmd.OutputPath, "o", sums.DefaultPath, "manifest path")
	fs.BoolVar(&cmd.Check, "check", false, "verify keys against the manifest")
}

func (cmd *SumsCommand) Execute(ctx context.Context, fs *flag.FlagSet, args ...interface{}) subcommands.ExitStatus {
	c, err := manifest.LoadConfig(cmd.ConfigPath)
	if err != nil {
		log.Printf("load config %q: %+v", cmd.ConfigPath, err)
		return subcommands.ExitFailure
	}

	keysDir := c.KeysDir()
	got, err := sums.Scan(osfs.New(keysDir))
	if err != nil {
		log.Printf("scan %q: %+v", keysDir, err)
		return subcommands.ExitFailure
	}

	fpath := cmd.OutputPath
	if !cmd.Check {
		if err := renameio.WriteFile(fpath, sums.Encode(got), 0644); err != nil {
			log.Printf("write file %q: %+v", fpath, err)
			return subcommands.ExitFailure
		}
		return subcommands.ExitSuccess
	}

	src, err := robustio.ReadFile(fpath)
	if err != nil {
		log.Printf("read %q: %+v", fpath, err)
		return subcommands.ExitFailure
	}
	parser := hclparse.NewParser()
	diagWr, _ := newDiagWr(parser)
	want, diags := sums.Decode(parser, src, fpath)
	if err := diagWr.WriteDiagnostics(diags); err != nil {
		log.Printf("write diags: %+v", err)
	}
	if diags.HasErrors() {
		return subcommands.ExitFailure
	}

	mismatches := sums.Verify(want, got)
	for _, m := range mismatches {
		fmt.Println(m)
	}
	if len(mismatches) > 0 {
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}
