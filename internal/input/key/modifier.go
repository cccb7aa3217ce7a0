package key

import "strings"

// Modifier is a set of modifier keys.
type Modifier uint8

const (
	// ModNone indicates no modifiers.
	ModNone Modifier = 0

	// ModShift indicates the Shift key.
	ModShift Modifier = 1 << iota

	// ModCtrl indicates the Control key.
	ModCtrl

	// ModAlt indicates the Alt key.
	ModAlt

	// ModMeta indicates the Meta key.
	ModMeta
)

// Has reports whether m contains mod.
func (m Modifier) Has(mod Modifier) bool {
	return m&mod != 0
}

// With returns m with mod added.
func (m Modifier) With(mod Modifier) Modifier {
	return m | mod
}

// String returns the Vim prefix form, for example "C-A-".
func (m Modifier) String() string {
	var b strings.Builder
	for _, p := range []struct {
		mod    Modifier
		prefix string
	}{
		{ModCtrl, "C-"},
		{ModAlt, "A-"},
		{ModMeta, "M-"},
		{ModShift, "S-"},
	} {
		if m.Has(p.mod) {
			b.WriteString(p.prefix)
		}
	}
	return b.String()
}

// modifierFromPrefix parses one Vim modifier letter.
func modifierFromPrefix(p string) (Modifier, bool) {
	switch strings.ToLower(p) {
	case "c":
		return ModCtrl, true
	case "a":
		return ModAlt, true
	case "s":
		return ModShift, true
	case "m", "d":
		return ModMeta, true
	}
	return ModNone, false
}
