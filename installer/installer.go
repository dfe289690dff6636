// Package installer exposes downloaded workshop items to the DayZ server.
//
// Every item with a download under the SteamCMD workshop cache gets an
// "@<name>" symbolic link in the server directory and its key files
// copied into the server keys directory. Items that were not downloaded
// yet are skipped so a later run can pick them up. Each step is safe to
// repeat.
package installer

import (
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/go-git/go-billy/v5/osfs"

	"github.com/greenmatthew/DayZ-Server-Manager/manager"
)

var ErrNotLink = errors.New("exists and is not a symbolic link")

// keyDirNames are the item subdirectories holding key files,
// in lookup order.
var keyDirNames = []string{"keys", "Keys"}

type Status int

const (
	// StatusInstalled means the link was created by this run.
	StatusInstalled Status = iota
	// StatusLinked means an equivalent link was already present.
	StatusLinked
	// StatusRelinked means a link to another directory was replaced.
	StatusRelinked
	// StatusMissing means the item is not in the workshop cache.
	StatusMissing
	StatusFailed
)

func (s Status) String() string {
	switch s {
	case StatusInstalled:
		return "installed"
	case StatusLinked:
		return "already linked"
	case StatusRelinked:
		return "relinked"
	case StatusMissing:
		return "not downloaded"
	case StatusFailed:
		return "failed"
	}
	return fmt.Sprintf("Status(%d)", int(s))
}

type Result struct {
	Mod manager.Mod
	// Status is the state of the mod link. It is kept when only the
	// key copy failed.
	Status Status
	// Keys is the number of key files copied.
	Keys int
	Err  error
}

// Present reports whether the mod link is in place, so the server can
// load the mod. Err may still report keys that could not be copied.
func (r Result) Present() bool {
	switch r.Status {
	case StatusInstalled, StatusLinked, StatusRelinked:
		return true
	}
	return false
}

// Error is a filesystem failure while installing a single mod.
type Error struct {
	Mod  manager.Mod
	Op   string
	Path string
	Err  error
}

func (e *Error) Error() string {
	return fmt.Sprintf("install %d (%s): %s %q: %v", e.Mod.ID, e.Mod.Name, e.Op, e.Path, e.Err)
}

func (e *Error) Unwrap() []error {
	return []error{manager.ErrFilesystem, e.Err}
}

type Installer struct {
	Config *manager.Config
}

func New(c *manager.Config) *Installer {
	return &Installer{Config: c}
}

// Install installs mods in list order. A failing mod does not stop the
// remaining ones; the returned error joins every per-mod *Error.
func (in *Installer) Install(mods *manager.ModList) ([]Result, error) {
	results := make([]Result, 0, mods.Len())
	var errs []error
	for _, m := range mods.Mods() {
		r := in.InstallMod(m)
		if r.Err != nil {
			log.Printf("%+v", r.Err)
			errs = append(errs, r.Err)
		}
		results = append(results, r)
	}
	return results, errors.Join(errs...)
}

func (in *Installer) InstallMod(m manager.Mod) Result {
	r := Result{Mod: m}

	item, err := filepath.Abs(in.Config.ItemDir(m.ID))
	if err != nil {
		return in.fail(r, "resolve", in.Config.ItemDir(m.ID), err)
	}
	fi, err := os.Stat(item)
	if errors.Is(err, os.ErrNotExist) {
		r.Status = StatusMissing
		return r
	}
	if err != nil {
		return in.fail(r, "stat", item, err)
	}
	if !fi.IsDir() {
		return in.fail(r, "stat", item, fmt.Errorf("not a directory"))
	}

	link := in.Config.ModDir(m.Name)
	r.Status, err = Link(item, link)
	if err != nil {
		return in.fail(r, "link", link, err)
	}

	keys, ok := findKeysDir(item)
	if !ok {
		return r
	}
	dst := in.Config.KeysDir()
	r.Keys, err = CopyKeys(osfs.New(keys), osfs.New(dst))
	if err != nil {
		r.Err = &Error{Mod: m, Op: "copy keys", Path: dst, Err: err}
	}
	return r
}

func (in *Installer) fail(r Result, op, path string, err error) Result {
	r.Status = StatusFailed
	r.Err = &Error{Mod: r.Mod, Op: op, Path: path, Err: err}
	return r
}

func findKeysDir(item string) (string, bool) {
	for _, name := range keyDirNames {
		dir := filepath.Join(item, name)
		fi, err := os.Stat(dir)
		if err == nil && fi.IsDir() {
			return dir, true
		}
	}
	return "", false
}

// Link makes link a symbolic link to target. An existing link to target
// is kept and a link elsewhere is replaced. Anything else at link is
// reported as ErrNotLink.
func Link(target, link string) (Status, error) {
	fi, err := os.Lstat(link)
	if errors.Is(err, os.ErrNotExist) {
		if err := os.Symlink(target, link); err != nil {
			return StatusFailed, err
		}
		return StatusInstalled, nil
	}
	if err != nil {
		return StatusFailed, err
	}
	if fi.Mode()&os.ModeSymlink == 0 {
		return StatusFailed, ErrNotLink
	}

	cur, err := os.Readlink(link)
	if err != nil {
		return StatusFailed, err
	}
	if filepath.Clean(cur) == filepath.Clean(target) {
		return StatusLinked, nil
	}
	log.Printf("relink %q: %q -> %q", link, cur, target)
	if err := os.Remove(link); err != nil {
		return StatusFailed, err
	}
	if err := os.Symlink(target, link); err != nil {
		return StatusFailed, err
	}
	return StatusRelinked, nil
}
