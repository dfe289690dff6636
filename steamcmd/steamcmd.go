// Package steamcmd runs SteamCMD to update the server and download
// workshop items.
package steamcmd

import (
	"context"
	"fmt"
	"io"
	"log"
	"os/exec"
	"strconv"
	"strings"

	"github.com/greenmatthew/DayZ-Server-Manager/manager"
)

// ExitError reports a SteamCMD run that did not succeed.
type ExitError struct {
	Args []string
	Err  error
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("steamcmd %s: %v", strings.Join(e.Args, " "), e.Err)
}

func (e *ExitError) Unwrap() []error {
	return []error{manager.ErrExternalProcess, e.Err}
}

type Client struct {
	Config *manager.Config

	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

// ServerArgs returns the arguments updating the dedicated server.
// SteamCMD runs in its own directory, so c.InstallDir should be absolute.
func ServerArgs(c *manager.Config, validate bool) []string {
	args := []string{
		"+force_install_dir", c.InstallDir,
		"+login", c.Username,
		"+app_update", strconv.Itoa(c.ServerAppID),
	}
	if validate {
		args = append(args, "validate")
	}
	return append(args, "+quit")
}

// WorkshopArgs returns the arguments downloading the given workshop
// items into the SteamCMD workshop cache.
func WorkshopArgs(c *manager.Config, mods []manager.Mod, validate bool) []string {
	args := []string{"+login", c.Username}
	appID := strconv.Itoa(c.GameAppID)
	for _, m := range mods {
		args = append(args, "+workshop_download_item", appID, strconv.FormatUint(m.ID, 10))
		if validate {
			args = append(args, "validate")
		}
	}
	return append(args, "+quit")
}

func (c *Client) UpdateServer(ctx context.Context, validate bool) error {
	abs, err := c.Config.Abs()
	if err != nil {
		return &ExitError{Args: ServerArgs(c.Config, validate), Err: err}
	}
	log.Printf("update server %d in %q", abs.ServerAppID, abs.InstallDir)
	return c.Run(ctx, ServerArgs(abs, validate))
}

// UpdateMods downloads mods. It does nothing for an empty list.
func (c *Client) UpdateMods(ctx context.Context, mods []manager.Mod, validate bool) error {
	if len(mods) <= 0 {
		return nil
	}
	for _, m := range mods {
		log.Printf("update item %d (%s)", m.ID, m.Name)
	}
	return c.Run(ctx, WorkshopArgs(c.Config, mods, validate))
}

// Run runs SteamCMD with args and waits for it to exit.
func (c *Client) Run(ctx context.Context, args []string) error {
	abs, err := c.Config.Abs()
	if err != nil {
		return &ExitError{Args: args, Err: err}
	}
	cmd := exec.CommandContext(ctx, abs.SteamCMDExe(), args...)
	cmd.Dir = abs.SteamCMDDir
	cmd.Stdin = c.Stdin
	cmd.Stdout = c.Stdout
	cmd.Stderr = c.Stderr
	if err := cmd.Run(); err != nil {
		return &ExitError{Args: args, Err: err}
	}
	return nil
}
