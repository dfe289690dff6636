package manager

import "regexp"

var modNameRe = regexp.MustCompile(`^[a-zA-Z0-9_\-. ]+$`)

// ValidModName reports whether name only uses characters that are safe
// in a directory name.
func ValidModName(name string) bool {
	return modNameRe.MatchString(name)
}

// Mod is a Steam Workshop item requested by the mod list.
type Mod struct {
	// ID is the workshop file ID.
	ID uint64
	// Name is the directory name the mod is exposed under, without "@".
	Name string
}

// Token is the name the server expects in its -mod argument.
func (m Mod) Token() string {
	return "@" + m.Name
}

// ModList is an insertion-ordered set of mods keyed by ID.
// Setting an existing ID replaces its name and keeps its position.
type ModList struct {
	mods  []Mod
	index map[uint64]int
}

func NewModList() *ModList {
	return &ModList{index: make(map[uint64]int)}
}

func (l *ModList) Set(id uint64, name string) {
	if l.index == nil {
		l.index = make(map[uint64]int)
	}
	if i, ok := l.index[id]; ok {
		l.mods[i].Name = name
		return
	}
	l.index[id] = len(l.mods)
	l.mods = append(l.mods, Mod{ID: id, Name: name})
}

func (l *ModList) Get(id uint64) (string, bool) {
	if l == nil {
		return "", false
	}
	i, ok := l.index[id]
	if !ok {
		return "", false
	}
	return l.mods[i].Name, true
}

func (l *ModList) Len() int {
	if l == nil {
		return 0
	}
	return len(l.mods)
}

// Mods returns a copy of the entries in list order.
func (l *ModList) Mods() []Mod {
	if l == nil {
		return nil
	}
	mods := make([]Mod, len(l.mods))
	copy(mods, l.mods)
	return mods
}

func (l *ModList) IDs() []uint64 {
	if l == nil {
		return nil
	}
	ids := make([]uint64, len(l.mods))
	for i, m := range l.mods {
		ids[i] = m.ID
	}
	return ids
}
