// Package runner drives a full server start: load the manager config,
// check SteamCMD, ensure the editable templates, parse the mod list,
// update through SteamCMD, install mods and launch the server.
//
// The steps run strictly in order and the first failing step stops the
// run in the Failed state.
package runner

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/greenmatthew/DayZ-Server-Manager/installer"
	"github.com/greenmatthew/DayZ-Server-Manager/manager"
	"github.com/greenmatthew/DayZ-Server-Manager/manifest"
	"github.com/greenmatthew/DayZ-Server-Manager/server"
	"github.com/greenmatthew/DayZ-Server-Manager/steamcmd"
	"github.com/greenmatthew/DayZ-Server-Manager/templates"
)

type State int

const (
	Start State = iota
	ConfigLoaded
	PrereqsChecked
	TemplatesEnsured
	ModListParsed
	Updated
	ContentInstalled
	ServerLaunched
	Failed
)

var stateNames = [...]string{
	Start:            "start",
	ConfigLoaded:     "config loaded",
	PrereqsChecked:   "prerequisites checked",
	TemplatesEnsured: "templates ensured",
	ModListParsed:    "mod list parsed",
	Updated:          "updated",
	ContentInstalled: "content installed",
	ServerLaunched:   "server launched",
	Failed:           "failed",
}

func (s State) String() string {
	if s >= 0 && int(s) < len(stateNames) {
		return stateNames[s]
	}
	return fmt.Sprintf("State(%d)", int(s))
}

type Updater interface {
	UpdateServer(ctx context.Context, validate bool) error
	UpdateMods(ctx context.Context, mods []manager.Mod, validate bool) error
}

type Launcher interface {
	Run(ctx context.Context, mods []manager.Mod) error
}

type Options struct {
	ConfigPath       string
	ModListPath      string
	ServerConfigPath string

	// NoUpdate skips SteamCMD entirely.
	NoUpdate bool
	// Validate asks SteamCMD to verify installed files.
	Validate bool
}

// StepError is returned by Run for the step that failed.
type StepError struct {
	// Step is the state the run was trying to reach.
	Step State
	Err  error
}

func (e *StepError) Error() string {
	return fmt.Sprintf("%s: %v", e.Step, e.Err)
}

func (e *StepError) Unwrap() error {
	return e.Err
}

type Runner struct {
	Options

	NewUpdater  func(c *manager.Config) Updater
	NewLauncher func(c *manager.Config, serverConfigPath string) Launcher

	State   State
	Config  *manager.Config
	Mods    *manager.ModList
	Results []installer.Result
}

// New returns a Runner using SteamCMD and the DayZ server attached to
// the standard streams.
func New(opts Options) *Runner {
	return &Runner{
		Options: opts,
		NewUpdater: func(c *manager.Config) Updater {
			return &steamcmd.Client{
				Config: c,
				Stdin:  os.Stdin,
				Stdout: os.Stdout,
				Stderr: os.Stderr,
			}
		},
		NewLauncher: func(c *manager.Config, path string) Launcher {
			return &server.Server{
				Config:     c,
				ConfigPath: path,
				Stdin:      os.Stdin,
				Stdout:     os.Stdout,
				Stderr:     os.Stderr,
			}
		},
	}
}

// Run performs every step. On error State is Failed and the error is
// a *StepError naming the step that could not be completed.
func (r *Runner) Run(ctx context.Context) error {
	steps := []struct {
		to State
		fn func(context.Context) error
	}{
		{ConfigLoaded, r.loadConfig},
		{PrereqsChecked, r.checkPrereqs},
		{TemplatesEnsured, r.ensureTemplates},
		{ModListParsed, r.parseModList},
		{Updated, r.update},
		{ContentInstalled, r.install},
		{ServerLaunched, r.launch},
	}
	r.State = Start
	for _, step := range steps {
		if err := step.fn(ctx); err != nil {
			r.State = Failed
			return &StepError{Step: step.to, Err: err}
		}
		r.State = step.to
	}
	return nil
}

func (r *Runner) loadConfig(ctx context.Context) error {
	c, err := manifest.LoadConfig(r.ConfigPath)
	if err != nil {
		return err
	}
	r.Config = c
	return nil
}

func (r *Runner) checkPrereqs(ctx context.Context) error {
	return r.Config.CheckSteamCMD()
}

func (r *Runner) ensureTemplates(ctx context.Context) error {
	if err := templates.EnsureServerConfig(r.ServerConfigPath); err != nil {
		return err
	}
	return templates.EnsureModList(r.ModListPath)
}

func (r *Runner) parseModList(ctx context.Context) error {
	mods, err := manifest.LoadModList(r.ModListPath)
	if err != nil {
		return err
	}
	r.Mods = mods
	return nil
}

func (r *Runner) update(ctx context.Context) error {
	if r.NoUpdate {
		log.Printf("skip update")
		return nil
	}
	u := r.NewUpdater(r.Config)
	if err := u.UpdateServer(ctx, r.Validate); err != nil {
		return err
	}
	return u.UpdateMods(ctx, r.Mods.Mods(), r.Validate)
}

// install never fails the run; mods that could not be installed are
// logged by the installer and left out of the launch.
func (r *Runner) install(ctx context.Context) error {
	results, err := installer.New(r.Config).Install(r.Mods)
	r.Results = results
	for _, res := range results {
		log.Printf("install %d (%s): %s", res.Mod.ID, res.Mod.Name, res.Status)
	}
	if err != nil {
		log.Printf("some mods were not installed")
	}
	return nil
}

// launch never fails the run; the server exit status is only logged.
func (r *Runner) launch(ctx context.Context) error {
	l := r.NewLauncher(r.Config, r.ServerConfigPath)
	if err := l.Run(ctx, r.Installed()); err != nil {
		log.Printf("%+v", err)
	}
	return nil
}

// Installed returns the mods present after the install step.
func (r *Runner) Installed() []manager.Mod {
	var mods []manager.Mod
	for _, res := range r.Results {
		if res.Present() {
			mods = append(mods, res.Mod)
		}
	}
	return mods
}
