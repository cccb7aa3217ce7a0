package key

import "unicode/utf8"

// Event is a single key press.
type Event struct {
	// Key identifies the key pressed.
	Key Key

	// Text is the character typed by a KeyRune event. It is one grapheme
	// cluster and may hold more than one rune.
	Text string

	// Modifiers holds the active modifier keys.
	Modifiers Modifier
}

// NewRuneEvent creates a character event.
func NewRuneEvent(text string, mods Modifier) Event {
	return Event{Key: KeyRune, Text: text, Modifiers: mods}
}

// NewSpecialEvent creates an event for a special key.
func NewSpecialEvent(k Key, mods Modifier) Event {
	return Event{Key: k, Modifiers: mods}
}

// IsRune reports whether e types a character.
func (e Event) IsRune() bool {
	return e.Key == KeyRune && e.Text != ""
}

// IsModified reports whether Ctrl, Alt or Meta is held. Shift on a
// character is part of the character.
func (e Event) IsModified() bool {
	if e.IsRune() {
		return e.Modifiers.Has(ModCtrl | ModAlt | ModMeta)
	}
	return e.Modifiers != ModNone
}

// Rune returns the first rune of the typed text.
func (e Event) Rune() rune {
	r, _ := utf8.DecodeRuneInString(e.Text)
	if r == utf8.RuneError {
		return 0
	}
	return r
}

// String returns the Vim notation of e. Unmodified characters other than
// "<" render as themselves.
func (e Event) String() string {
	if e.Key == KeyRune {
		if !e.IsModified() {
			if e.Text == "<" {
				return "<lt>"
			}
			return e.Text
		}
		return "<" + (e.Modifiers &^ ModShift).String() + e.Text + ">"
	}
	return "<" + e.Modifiers.String() + e.Key.String() + ">"
}
