package manager

import (
	"errors"
	"fmt"
)

var (
	ErrConfiguration       = errors.New("configuration error")
	ErrModListValidation   = errors.New("mod list validation error")
	ErrPrerequisiteMissing = errors.New("prerequisite missing")
	ErrExternalProcess     = errors.New("external process error")
	ErrFilesystem          = errors.New("filesystem error")
)

// MissingFieldError reports a required manager config key that was
// absent or did not hold a valid value.
type MissingFieldError struct {
	Key string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("the %q configuration variable is not set or is not valid", e.Key)
}

func (e *MissingFieldError) Unwrap() error {
	return ErrConfiguration
}

const steamcmdHint = "If you do not have SteamCMD already, download it from " +
	"https://developer.valvesoftware.com/wiki/SteamCMD and set steamcmd_dir " +
	"in the manager config to the directory it was extracted to."

// PrerequisiteError reports a missing tool directory or executable.
type PrerequisiteError struct {
	What string
	Path string
}

func (e *PrerequisiteError) Error() string {
	return fmt.Sprintf("%s is missing: %s. %s", e.What, e.Path, steamcmdHint)
}

func (e *PrerequisiteError) Unwrap() error {
	return ErrPrerequisiteMissing
}
