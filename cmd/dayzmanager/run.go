package main

import (
	"context"
	"flag"

	"github.com/google/subcommands"

	"github.com/greenmatthew/DayZ-Server-Manager/runner"
)

type RunCommand struct {
	pathFlags
	NoUpdate bool
	Validate bool
	NoWait   bool
}

func (*RunCommand) Name() string     { return "run" }
func (*RunCommand) Synopsis() string { return "update, install mods and start the server" }
func (*RunCommand) Usage() string {
	return `Usage: dayzmanager run [-config manager.cfg] [-modlist modslist.txt] [-server-config serverDZ.cfg] [-noupdate] [-validate] [-nowait]

	Loads the manager config, checks SteamCMD, creates the default
	server config and mod list if they are missing, updates the server
	and workshop mods, links downloaded mods into the server directory
	and starts the server. This is the default command.

	Failures are reported and the command still exits with status 0.
	When run from a terminal it waits for Enter before exiting.

Flags:
`
}

func (cmd *RunCommand) SetFlags(fs *flag.FlagSet) {
	cmd.configFlag(fs)
	cmd.modListFlag(fs)
	cmd.serverConfigFlag(fs)
	fs.BoolVar(&cmd.NoUpdate, "noupdate", false, "skip SteamCMD updates")
	fs.BoolVar(&cmd.Validate, "validate", false, "verify installed files with SteamCMD")
	fs.BoolVar(&cmd.NoWait, "nowait", false, "exit without waiting for Enter")
}

func (cmd *RunCommand) Execute(ctx context.Context, fs *flag.FlagSet, args ...interface{}) subcommands.ExitStatus {
	r := runner.New(runner.Options{
		ConfigPath:       cmd.ConfigPath,
		ModListPath:      cmd.ModListPath,
		ServerConfigPath: cmd.ServerConfigPath,
		NoUpdate:         cmd.NoUpdate,
		Validate:         cmd.Validate,
	})
	if err := r.Run(ctx); err != nil {
		report(err)
	}
	if !cmd.NoWait {
		pause()
	}
	return subcommands.ExitSuccess
}
