package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/google/subcommands"

	"github.com/greenmatthew/DayZ-Server-Manager/workshop"
)

type LookupCommand struct {
	BaseURL string
	Timeout time.Duration
}

func (*LookupCommand) Name() string     { return "lookup" }
func (*LookupCommand) Synopsis() string { return "print mod list lines for workshop IDs" }
func (*LookupCommand) Usage() string {
	return `Usage: dayzmanager lookup [-timeout 30s] <workshop IDs>

	Fetches the Steam Workshop page of every ID and prints a mod list
	line using the item title as the mod name. Characters that are not
	allowed in mod names are dropped; the original title is then kept
	as a comment.

Flags:
`
}

func (cmd *LookupCommand) SetFlags(fs *flag.FlagSet) {
	fs.StringVar(&cmd.BaseURL, "url", workshop.DefaultBaseURL, "workshop item page URL")
	fs.DurationVar(&cmd.Timeout, "timeout", 30*time.Second, "request timeout")
}

func (cmd *LookupCommand) Execute(ctx context.Context, fs *flag.FlagSet, args ...interface{}) subcommands.ExitStatus {
	if fs.NArg() <= 0 {
		fs.Usage()
		return subcommands.ExitUsageError
	}

	c := workshop.Client{
		Client:  &http.Client{Timeout: cmd.Timeout},
		BaseURL: cmd.BaseURL,
	}

	rc := subcommands.ExitSuccess
	for _, arg := range fs.Args() {
		id, err := strconv.ParseUint(arg, 10, 64)
		if err != nil || id == 0 {
			log.Printf("invalid workshop ID %q", arg)
			rc = subcommands.ExitFailure
			continue
		}
		title, err := c.Title(ctx, id)
		if err != nil {
			log.Printf("lookup %d: %+v", id, err)
			rc = subcommands.ExitFailure
			continue
		}
		line, err := workshop.Line(id, title)
		if err != nil {
			log.Printf("%+v", err)
			rc = subcommands.ExitFailure
			continue
		}
		fmt.Println(line)
	}
	return rc
}
