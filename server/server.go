// Package server launches the DayZ dedicated server.
package server

import (
	"context"
	"fmt"
	"io"
	"log"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/greenmatthew/DayZ-Server-Manager/manager"
)

type Server struct {
	Config *manager.Config
	// ConfigPath is the server config file passed with -config.
	ConfigPath string

	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

// Args returns the server arguments. The -mod argument is only
// present when mods is not empty.
func Args(configPath string, mods []manager.Mod) []string {
	args := []string{"-config=" + configPath}
	if len(mods) > 0 {
		args = append(args, "-mod="+ModArg(mods))
	}
	return args
}

// ModArg joins the mod tokens with semicolons, e.g. "@CF;@DayZ-Rat".
func ModArg(mods []manager.Mod) string {
	tokens := make([]string, len(mods))
	for i, m := range mods {
		tokens[i] = m.Token()
	}
	return strings.Join(tokens, ";")
}

// Command returns the server command. It runs in the install directory,
// which is where the "@<name>" mod links live.
func (s *Server) Command(ctx context.Context, mods []manager.Mod) (*exec.Cmd, error) {
	configPath, err := filepath.Abs(s.ConfigPath)
	if err != nil {
		return nil, err
	}
	abs, err := s.Config.Abs()
	if err != nil {
		return nil, err
	}
	cmd := exec.CommandContext(ctx, abs.ServerExe(), Args(configPath, mods)...)
	cmd.Dir = abs.InstallDir
	cmd.Stdin = s.Stdin
	cmd.Stdout = s.Stdout
	cmd.Stderr = s.Stderr
	return cmd, nil
}

// Run starts the server and waits for it to exit.
func (s *Server) Run(ctx context.Context, mods []manager.Mod) error {
	cmd, err := s.Command(ctx, mods)
	if err != nil {
		return err
	}
	if len(mods) > 0 {
		log.Printf("run server with config %q and mods %q", s.ConfigPath, ModArg(mods))
	} else {
		log.Printf("run server with config %q", s.ConfigPath)
	}
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("server: %w", err)
	}
	return nil
}
