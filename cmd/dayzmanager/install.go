package main

import (
	"context"
	"flag"
	"fmt"

	"github.com/google/subcommands"

	"github.com/greenmatthew/DayZ-Server-Manager/installer"
)

type InstallCommand struct {
	pathFlags
}

func (*InstallCommand) Name() string     { return "install" }
func (*InstallCommand) Synopsis() string { return "link downloaded mods into the server" }
func (*InstallCommand) Usage() string {
	return `Usage: dayzmanager install [-config manager.cfg] [-modlist modslist.txt]

	Links every downloaded workshop item of the mod list into the server
	directory as "@<name>" and copies its keys into the server keys
	directory. Items that were not downloaded yet are skipped.

Flags:
`
}

func (cmd *InstallCommand) SetFlags(fs *flag.FlagSet) {
	cmd.configFlag(fs)
	cmd.modListFlag(fs)
}

func (cmd *InstallCommand) Execute(ctx context.Context, fs *flag.FlagSet, args ...interface{}) subcommands.ExitStatus {
	c, mods, ok := cmd.load()
	if !ok {
		return subcommands.ExitFailure
	}
	results, err := installer.New(c).Install(mods)
	for _, r := range results {
		line := fmt.Sprintf("%d\t%s\t%s", r.Mod.ID, r.Mod.Name, r.Status)
		if r.Keys > 0 {
			line += fmt.Sprintf(" (%d keys)", r.Keys)
		}
		fmt.Println(line)
	}
	if err != nil {
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}
