package steamcmd

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/greenmatthew/DayZ-Server-Manager/manager"
)

var testConfig = &manager.Config{
	SteamCMDDir: "C:/tools",
	InstallDir:  "C:/server",
	ServerAppID: 223350,
	GameAppID:   221100,
	Username:    "bob",
}

func TestServerArgs(t *testing.T) {
	assert.Equal(t, []string{
		"+force_install_dir", "C:/server",
		"+login", "bob",
		"+app_update", "223350",
		"+quit",
	}, ServerArgs(testConfig, false))

	args := ServerArgs(testConfig, true)
	assert.Equal(t, []string{"223350", "validate", "+quit"}, args[len(args)-3:])
}

func TestWorkshopArgs(t *testing.T) {
	mods := []manager.Mod{
		{ID: 2950280649, Name: "DayZ-Rat"},
		{ID: 1559212036, Name: "CF"},
	}
	assert.Equal(t, []string{
		"+login", "bob",
		"+workshop_download_item", "221100", "2950280649",
		"+workshop_download_item", "221100", "1559212036",
		"+quit",
	}, WorkshopArgs(testConfig, mods, false))

	assert.Equal(t, []string{
		"+login", "bob",
		"+workshop_download_item", "221100", "2950280649", "validate",
		"+quit",
	}, WorkshopArgs(testConfig, mods[:1], true))
}

func TestUpdateModsEmpty(t *testing.T) {
	// The executable does not exist, so any run would fail.
	c := Client{Config: &manager.Config{SteamCMDDir: t.TempDir()}}
	assert.NoError(t, c.UpdateMods(context.Background(), nil, false))
}

func TestRunMissingExecutable(t *testing.T) {
	c := Client{Config: &manager.Config{SteamCMDDir: t.TempDir(), Username: "bob"}}
	err := c.UpdateServer(context.Background(), false)
	require.Error(t, err)
	assert.ErrorIs(t, err, manager.ErrExternalProcess)
	var ee *ExitError
	require.True(t, errors.As(err, &ee))
	assert.Equal(t, "+quit", ee.Args[len(ee.Args)-1])
}

func chdir(t *testing.T, dir string) {
	t.Helper()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() {
		if err := os.Chdir(wd); err != nil {
			t.Errorf("chdir %q: %+v", wd, err)
		}
	})
}

func TestUpdateServerRelativeDirs(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("needs a shell script")
	}
	dir := t.TempDir()
	chdir(t, dir)
	wd, err := os.Getwd()
	require.NoError(t, err)

	// The script records its arguments in its working directory.
	script := "#!/bin/sh\necho \"$@\" > args.txt\n"
	require.NoError(t, os.MkdirAll("tools", 0755))
	require.NoError(t, os.WriteFile(filepath.Join("tools", "steamcmd.sh"), []byte(script), 0755))

	c := &manager.Config{
		SteamCMDDir: "tools",
		InstallDir:  "server",
		ServerAppID: 223350,
		GameAppID:   221100,
		Username:    "bob",
	}
	require.NoError(t, c.CheckSteamCMD())

	client := Client{Config: c}
	require.NoError(t, client.UpdateServer(context.Background(), false))

	data, err := os.ReadFile(filepath.Join(dir, "tools", "args.txt"))
	require.NoError(t, err)
	args := strings.Fields(string(data))
	require.GreaterOrEqual(t, len(args), 2)
	assert.Equal(t, []string{"+force_install_dir", filepath.Join(wd, "server")}, args[:2])
	assert.Equal(t, "tools", c.SteamCMDDir)
}
