package manifest

import (
	"bytes"
	"io"
	"strconv"
	"strings"

	"github.com/tie/internal/robustio"

	"github.com/greenmatthew/DayZ-Server-Manager/manager"
)

// LoadConfig reads and validates the manager config at path.
func LoadConfig(path string) (*manager.Config, error) {
	src, err := robustio.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseConfig(bytes.NewReader(src), path)
}

// ParseConfig parses "key = value" lines. Unknown keys are ignored.
// The first malformed line aborts parsing.
func ParseConfig(r io.Reader, path string) (*manager.Config, error) {
	var c manager.Config
	err := scanLines(r, func(n int, line string) error {
		if strings.Count(line, "=") != 1 {
			return &SyntaxError{
				Kind: manager.ErrConfiguration,
				Path: path,
				Line: n,
				Text: line,
				Err:  ErrLineFormat,
			}
		}
		i := strings.IndexByte(line, '=')
		key := strings.TrimSpace(line[:i])
		value := unquote(strings.TrimSpace(line[i+1:]))
		switch key {
		case manager.KeySteamCMDDir:
			c.SteamCMDDir = value
		case manager.KeyInstallDir:
			c.InstallDir = value
		case manager.KeyServerAppID:
			c.ServerAppID = atoi(value)
		case manager.KeyGameAppID:
			c.GameAppID = atoi(value)
		case manager.KeyUsername:
			c.Username = value
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

// atoi returns 0, the unset value, when s is not an integer.
func atoi(s string) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}
	return n
}
