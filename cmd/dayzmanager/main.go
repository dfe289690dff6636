package main

import (
	"context"
	"flag"
	"log"
	"os"

	"github.com/google/subcommands"
)

const programName = "dayzmanager"

func init() {
	log.SetFlags(0)
}

func main() {
	fs := flag.NewFlagSet(programName, flag.ContinueOnError)
	fs.Bool("h", false, "alias for help")
	fs.Bool("help", false, "print usage")

	cdr := subcommands.NewCommander(fs, programName)
	cdr.Register(&RunCommand{}, "")
	cdr.Register(&InitCommand{}, "")
	cdr.Register(&UpdateCommand{}, "")
	cdr.Register(&InstallCommand{}, "")
	cdr.Register(&FormatCommand{}, "mod list")
	cdr.Register(&LookupCommand{}, "mod list")
	cdr.Register(&SumsCommand{}, "keys")
	cdr.Register(cdr.HelpCommand(), "help")
	cdr.Register(cdr.FlagsCommand(), "help")
	cdr.Register(cdr.CommandsCommand(), "help")

	// Started without arguments, e.g. from a file manager.
	args := os.Args[1:]
	if len(args) <= 0 {
		args = []string{"run"}
	}
	if err := fs.Parse(args); err != nil {
		log.Fatal(err)
	}

	ctx := context.Background()
	switch cdr.Execute(ctx) {
	case subcommands.ExitFailure:
		os.Exit(1)
	case subcommands.ExitUsageError:
		os.Exit(2)
	}
}
