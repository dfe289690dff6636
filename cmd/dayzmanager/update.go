package main

import (
	"context"
	"flag"
	"log"
	"os"

	"github.com/google/subcommands"

	"github.com/greenmatthew/DayZ-Server-Manager/steamcmd"
)

type UpdateCommand struct {
	pathFlags
	Validate bool
	ModsOnly bool
}

func (*UpdateCommand) Name() string     { return "update" }
func (*UpdateCommand) Synopsis() string { return "update the server and workshop mods" }
func (*UpdateCommand) Usage() string {
	return `Usage: dayzmanager update [-config manager.cfg] [-modlist modslist.txt] [-validate] [-modsonly]

	Runs SteamCMD to update the dedicated server and download every
	workshop item in the mod list into the SteamCMD workshop cache.

Flags:
`
}

func (cmd *UpdateCommand) SetFlags(fs *flag.FlagSet) {
	cmd.configFlag(fs)
	cmd.modListFlag(fs)
	fs.BoolVar(&cmd.Validate, "validate", false, "verify installed files")
	fs.BoolVar(&cmd.ModsOnly, "modsonly", false, "only update workshop mods")
}

func (cmd *UpdateCommand) Execute(ctx context.Context, fs *flag.FlagSet, args ...interface{}) subcommands.ExitStatus {
	c, mods, ok := cmd.load()
	if !ok {
		return subcommands.ExitFailure
	}
	if err := c.CheckSteamCMD(); err != nil {
		report(err)
		return subcommands.ExitFailure
	}

	client := steamcmd.Client{
		Config: c,
		Stdin:  os.Stdin,
		Stdout: os.Stdout,
		Stderr: os.Stderr,
	}
	if !cmd.ModsOnly {
		if err := client.UpdateServer(ctx, cmd.Validate); err != nil {
			log.Printf("update server: %+v", err)
			return subcommands.ExitFailure
		}
	}
	if err := client.UpdateMods(ctx, mods.Mods(), cmd.Validate); err != nil {
		log.Printf("update mods: %+v", err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}
