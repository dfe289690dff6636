package runner

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/greenmatthew/DayZ-Server-Manager/manager"
)

type fakeUpdater struct {
	serverCalls int
	mods        []manager.Mod
	err         error
}

func (u *fakeUpdater) UpdateServer(ctx context.Context, validate bool) error {
	u.serverCalls++
	return u.err
}

func (u *fakeUpdater) UpdateMods(ctx context.Context, mods []manager.Mod, validate bool) error {
	u.mods = mods
	return nil
}

type fakeLauncher struct {
	calls      int
	configPath string
	mods       []manager.Mod
	err        error
}

func (l *fakeLauncher) Run(ctx context.Context, mods []manager.Mod) error {
	l.calls++
	l.mods = mods
	return l.err
}

type env struct {
	dir      string
	config   *manager.Config
	runner   *Runner
	updater  *fakeUpdater
	launcher *fakeLauncher
}

func newEnv(t *testing.T) *env {
	t.Helper()
	dir := t.TempDir()
	c := &manager.Config{
		SteamCMDDir: filepath.Join(dir, "steamcmd"),
		InstallDir:  filepath.Join(dir, "server"),
		ServerAppID: 223350,
		GameAppID:   221100,
		Username:    "bob",
	}
	require.NoError(t, os.MkdirAll(c.SteamCMDDir, 0755))
	require.NoError(t, os.MkdirAll(c.InstallDir, 0755))
	require.NoError(t, os.WriteFile(c.SteamCMDExe(), nil, 0755))

	cfg := fmt.Sprintf("steamcmd_dir = %q\ninstall_dir = %q\nserver_app_id = %d\ngame_app_id = %d\nusername = %q\n",
		filepath.ToSlash(c.SteamCMDDir), filepath.ToSlash(c.InstallDir), c.ServerAppID, c.GameAppID, c.Username)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "manager.cfg"), []byte(cfg), 0644))

	e := &env{
		dir:      dir,
		config:   c,
		updater:  &fakeUpdater{},
		launcher: &fakeLauncher{},
	}
	e.runner = &Runner{
		Options: Options{
			ConfigPath:       filepath.Join(dir, "manager.cfg"),
			ModListPath:      filepath.Join(dir, "modslist.txt"),
			ServerConfigPath: filepath.Join(dir, "serverDZ.cfg"),
		},
		NewUpdater: func(*manager.Config) Updater { return e.updater },
		NewLauncher: func(c *manager.Config, path string) Launcher {
			e.launcher.configPath = path
			return e.launcher
		},
	}
	return e
}

func (e *env) writeModList(t *testing.T, src string) {
	t.Helper()
	require.NoError(t, os.WriteFile(e.runner.ModListPath, []byte(src), 0644))
}

func (e *env) download(t *testing.T, id uint64) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Join(e.config.ItemDir(id), "keys"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(e.config.ItemDir(id), "keys", "k.bikey"), []byte("k"), 0644))
}

func TestRun(t *testing.T) {
	e := newEnv(t)
	e.writeModList(t, "2950280649, DayZ-Rat\n1559212036, CF\n")
	e.download(t, 2950280649)

	require.NoError(t, e.runner.Run(context.Background()))
	assert.Equal(t, ServerLaunched, e.runner.State)

	assert.Equal(t, 1, e.updater.serverCalls)
	assert.Len(t, e.updater.mods, 2)

	assert.Equal(t, 1, e.launcher.calls)
	assert.Equal(t, e.runner.ServerConfigPath, e.launcher.configPath)
	assert.Equal(t, []manager.Mod{{ID: 2950280649, Name: "DayZ-Rat"}}, e.launcher.mods)

	_, err := os.Stat(e.runner.ServerConfigPath)
	assert.NoError(t, err)
	_, err = os.Stat(filepath.Join(e.config.KeysDir(), "k.bikey"))
	assert.NoError(t, err)
}

func TestRunCreatesTemplates(t *testing.T) {
	e := newEnv(t)
	require.NoError(t, e.runner.Run(context.Background()))

	_, err := os.Stat(e.runner.ModListPath)
	assert.NoError(t, err)
	assert.Equal(t, 0, e.runner.Mods.Len())
	assert.Empty(t, e.launcher.mods)
}

func TestRunNoUpdate(t *testing.T) {
	e := newEnv(t)
	e.runner.NoUpdate = true
	require.NoError(t, e.runner.Run(context.Background()))
	assert.Equal(t, 0, e.updater.serverCalls)
	assert.Equal(t, ServerLaunched, e.runner.State)
}

func TestRunLaunchErrorIsNotFatal(t *testing.T) {
	e := newEnv(t)
	e.launcher.err = errors.New("exit status 1")
	require.NoError(t, e.runner.Run(context.Background()))
	assert.Equal(t, ServerLaunched, e.runner.State)
}

func TestRunInstallErrorIsNotFatal(t *testing.T) {
	e := newEnv(t)
	e.writeModList(t, "1, Taken\n2, CF\n")
	e.download(t, 1)
	e.download(t, 2)
	require.NoError(t, os.MkdirAll(e.config.ModDir("Taken"), 0755))

	require.NoError(t, e.runner.Run(context.Background()))
	assert.Equal(t, []manager.Mod{{ID: 2, Name: "CF"}}, e.launcher.mods)
}

func TestRunFailures(t *testing.T) {
	tests := []struct {
		name  string
		setup func(t *testing.T, e *env)
		step  State
		kind  error
	}{
		{
			name: "missing config",
			setup: func(t *testing.T, e *env) {
				require.NoError(t, os.Remove(e.runner.ConfigPath))
			},
			step: ConfigLoaded,
			kind: os.ErrNotExist,
		},
		{
			name: "incomplete config",
			setup: func(t *testing.T, e *env) {
				require.NoError(t, os.WriteFile(e.runner.ConfigPath, []byte("username = bob\n"), 0644))
			},
			step: ConfigLoaded,
			kind: manager.ErrConfiguration,
		},
		{
			name: "missing steamcmd",
			setup: func(t *testing.T, e *env) {
				require.NoError(t, os.Remove(e.config.SteamCMDExe()))
			},
			step: PrereqsChecked,
			kind: manager.ErrPrerequisiteMissing,
		},
		{
			name: "bad mod list",
			setup: func(t *testing.T, e *env) {
				e.writeModList(t, "abc, Foo\n")
			},
			step: ModListParsed,
			kind: manager.ErrModListValidation,
		},
		{
			name: "update failure",
			setup: func(t *testing.T, e *env) {
				e.updater.err = fmt.Errorf("%w: exit status 8", manager.ErrExternalProcess)
			},
			step: Updated,
			kind: manager.ErrExternalProcess,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newEnv(t)
			tt.setup(t, e)

			err := e.runner.Run(context.Background())
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.kind)
			assert.Equal(t, Failed, e.runner.State)

			var se *StepError
			require.True(t, errors.As(err, &se))
			assert.Equal(t, tt.step, se.Step)
			assert.Equal(t, 0, e.launcher.calls)
		})
	}
}

func TestRunPrereqsBeforeUpdate(t *testing.T) {
	e := newEnv(t)
	require.NoError(t, os.RemoveAll(e.config.SteamCMDDir))
	require.Error(t, e.runner.Run(context.Background()))
	assert.Equal(t, 0, e.updater.serverCalls)
	_, err := os.Stat(e.runner.ServerConfigPath)
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestStateString(t *testing.T) {
	assert.Equal(t, "mod list parsed", ModListParsed.String())
	assert.Equal(t, "State(42)", State(42).String())
}
