package manifest

import (
	"bytes"
	"errors"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/tie/internal/robustio"

	"github.com/greenmatthew/DayZ-Server-Manager/manager"
)

// LoadModList reads the mod list at path. A missing file is an empty list.
func LoadModList(path string) (*manager.ModList, error) {
	src, err := robustio.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return manager.NewModList(), nil
	}
	if err != nil {
		return nil, err
	}
	return ParseModList(bytes.NewReader(src), path)
}

// ParseModList parses "<workshop id>, <name>" lines. A repeated ID
// replaces the name of the earlier entry. Any invalid line discards
// the whole list.
func ParseModList(r io.Reader, path string) (*manager.ModList, error) {
	mods := manager.NewModList()
	err := scanLines(r, func(n int, line string) error {
		m, err := parseMod(line)
		if err != nil {
			err.Path, err.Line = path, n
			return err
		}
		mods.Set(m.ID, m.Name)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return mods, nil
}

func parseMod(line string) (manager.Mod, *SyntaxError) {
	fields := strings.Split(line, ",")
	if len(fields) != 2 {
		return manager.Mod{}, modErr(ErrLineFormat, line)
	}
	token := strings.TrimSpace(fields[0])
	id, err := strconv.ParseUint(token, 10, 64)
	if err != nil || id == 0 {
		return manager.Mod{}, modErr(ErrWorkshopID, token)
	}
	name := strings.TrimSpace(fields[1])
	if !manager.ValidModName(name) {
		return manager.Mod{}, modErr(ErrModName, name)
	}
	return manager.Mod{ID: id, Name: name}, nil
}

func modErr(err error, text string) *SyntaxError {
	return &SyntaxError{
		Kind: manager.ErrModListValidation,
		Text: text,
		Err:  err,
	}
}
