package main

import (
	"context"
	"flag"
	"log"

	"github.com/google/subcommands"

	"github.com/greenmatthew/DayZ-Server-Manager/templates"
)

type InitCommand struct {
	pathFlags
}

func (*InitCommand) Name() string     { return "init" }
func (*InitCommand) Synopsis() string { return "create default server config and mod list" }
func (*InitCommand) Usage() string {
	return `Usage: dayzmanager init [-modlist modslist.txt] [-server-config serverDZ.cfg]

	Creates the server config and mod list from the default templates.
	Existing files are left unchanged.

Flags:
`
}

func (cmd *InitCommand) SetFlags(fs *flag.FlagSet) {
	cmd.modListFlag(fs)
	cmd.serverConfigFlag(fs)
}

func (cmd *InitCommand) Execute(ctx context.Context, fs *flag.FlagSet, args ...interface{}) subcommands.ExitStatus {
	if err := templates.EnsureServerConfig(cmd.ServerConfigPath); err != nil {
		log.Printf("server config %q: %+v", cmd.ServerConfigPath, err)
		return subcommands.ExitFailure
	}
	if err := templates.EnsureModList(cmd.ModListPath); err != nil {
		log.Printf("mod list %q: %+v", cmd.ModListPath, err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}
