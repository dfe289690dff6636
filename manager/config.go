package manager

import (
	"os"
	"path/filepath"
	"runtime"
	"strconv"
)

// Recognized manager config keys, in validation order.
const (
	KeySteamCMDDir = "steamcmd_dir"
	KeyInstallDir  = "install_dir"
	KeyServerAppID = "server_app_id"
	KeyGameAppID   = "game_app_id"
	KeyUsername    = "username"
)

const (
	DefaultConfigPath       = "manager.cfg"
	DefaultModListPath      = "modslist.txt"
	DefaultServerConfigPath = "serverDZ.cfg"
)

// Config is the manager configuration. It is built once by
// manifest.LoadConfig and must not be modified afterwards.
type Config struct {
	// SteamCMDDir is the SteamCMD installation root.
	SteamCMDDir string
	// InstallDir is the DayZ server installation root.
	InstallDir string

	// ServerAppID is the Steam app ID of the dedicated server.
	ServerAppID int
	// GameAppID is the Steam app ID owning the workshop content.
	GameAppID int

	// Username is the Steam account used to log in to SteamCMD.
	Username string
}

// Validate returns a *MissingFieldError for the first unset field.
func (c *Config) Validate() error {
	switch {
	case c.SteamCMDDir == "":
		return &MissingFieldError{KeySteamCMDDir}
	case c.InstallDir == "":
		return &MissingFieldError{KeyInstallDir}
	case c.ServerAppID <= 0:
		return &MissingFieldError{KeyServerAppID}
	case c.GameAppID <= 0:
		return &MissingFieldError{KeyGameAppID}
	case c.Username == "":
		return &MissingFieldError{KeyUsername}
	}
	return nil
}

func (c *Config) SteamCMDExe() string {
	name := "steamcmd.sh"
	if runtime.GOOS == "windows" {
		name = "steamcmd.exe"
	}
	return filepath.Join(c.SteamCMDDir, name)
}

func (c *Config) ServerExe() string {
	name := "DayZServer"
	if runtime.GOOS == "windows" {
		name = "DayZServer_x64.exe"
	}
	return filepath.Join(c.InstallDir, name)
}

// WorkshopDir is where SteamCMD stores downloaded workshop items
// for the game.
func (c *Config) WorkshopDir() string {
	appID := strconv.Itoa(c.GameAppID)
	return filepath.Join(c.SteamCMDDir, "steamapps", "workshop", "content", appID)
}

func (c *Config) ItemDir(id uint64) string {
	return filepath.Join(c.WorkshopDir(), strconv.FormatUint(id, 10))
}

func (c *Config) ModDir(name string) string {
	return filepath.Join(c.InstallDir, "@"+name)
}

func (c *Config) KeysDir() string {
	return filepath.Join(c.InstallDir, "keys")
}

// CheckSteamCMD verifies that the SteamCMD directory and executable exist.
func (c *Config) CheckSteamCMD() error {
	if _, err := os.Stat(c.SteamCMDDir); err != nil {
		return &PrerequisiteError{What: "SteamCMD directory", Path: c.SteamCMDDir}
	}
	exe := c.SteamCMDExe()
	if _, err := os.Stat(exe); err != nil {
		return &PrerequisiteError{What: "SteamCMD executable", Path: exe}
	}
	return nil
}

// Abs returns a copy of c with both directories made absolute.
// Use it for anything handed to a process running in another directory.
func (c *Config) Abs() (*Config, error) {
	abs := *c
	var err error
	if abs.SteamCMDDir, err = filepath.Abs(c.SteamCMDDir); err != nil {
		return nil, err
	}
	if abs.InstallDir, err = filepath.Abs(c.InstallDir); err != nil {
		return nil, err
	}
	return &abs, nil
}
