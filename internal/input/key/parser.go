package key

import (
	"errors"
	"fmt"
	"strings"

	"github.com/rivo/uniseg"
	"golang.org/x/text/unicode/norm"
)

// Parse errors.
var (
	ErrEmptySpec   = errors.New("empty key specification")
	ErrInvalidSpec = errors.New("invalid key specification")
)

// Parse parses a single key written in Vim notation, with or without the
// angle brackets: "<C-w>", "CR", "lt", "a".
func Parse(spec string) (Event, error) {
	spec = strings.TrimSpace(spec)
	if spec == "" {
		return Event{}, ErrEmptySpec
	}
	if strings.HasPrefix(spec, "<") && strings.HasSuffix(spec, ">") && len(spec) > 2 {
		spec = spec[1 : len(spec)-1]
	}
	return parseNotation(spec)
}

// parseNotation parses the inside of "<...>".
func parseNotation(inner string) (Event, error) {
	var mods Modifier
	// Modifier prefixes are single letters followed by "-"; the key itself
	// may be "-".
	for len(inner) > 2 && inner[1] == '-' {
		mod, ok := modifierFromPrefix(inner[:1])
		if !ok {
			return Event{}, fmt.Errorf("%w: unknown modifier %q", ErrInvalidSpec, inner[:1])
		}
		mods = mods.With(mod)
		inner = inner[2:]
	}

	lower := strings.ToLower(inner)
	if k, ok := namedKeys[lower]; ok {
		return NewSpecialEvent(k, mods), nil
	}
	if r, ok := namedRunes[lower]; ok {
		return NewRuneEvent(string(r), mods), nil
	}
	if uniseg.GraphemeClusterCount(inner) == 1 {
		text := norm.NFC.String(inner)
		if strings.ToLower(text) != text {
			mods = mods.With(ModShift)
		}
		return NewRuneEvent(text, mods), nil
	}
	return Event{}, fmt.Errorf("%w: %q", ErrInvalidSpec, inner)
}

// ParseKeys converts text into the key events that type it.
//
// "<...>" runs that parse as Vim notation become the key they name. All
// other text is split into grapheme clusters, each composed to NFC.
// "\n" and "\r\n" become Enter, "\t" Tab, ESC Escape, and BS or DEL
// Backspace.
func ParseKeys(text string) []Event {
	var events []Event
	for len(text) > 0 {
		if text[0] == '<' {
			if end := strings.IndexByte(text, '>'); end > 1 {
				if ev, err := parseNotation(text[1:end]); err == nil && isNotation(ev, text[1:end]) {
					events = append(events, ev)
					text = text[end+1:]
					continue
				}
			}
		}

		cluster, rest, _, _ := uniseg.FirstGraphemeClusterInString(text, -1)
		events = append(events, clusterEvent(cluster))
		text = rest
	}
	return events
}

// isNotation reports whether a parsed "<...>" run names a key. A bare
// character such as "<a>" does not and is typed literally.
func isNotation(ev Event, inner string) bool {
	if ev.Key.IsSpecial() || ev.IsModified() {
		return true
	}
	_, named := namedRunes[strings.ToLower(inner)]
	return named
}

func clusterEvent(cluster string) Event {
	switch cluster {
	case "\n", "\r\n", "\r":
		return NewSpecialEvent(KeyEnter, ModNone)
	case "\t":
		return NewSpecialEvent(KeyTab, ModNone)
	case "\x1b":
		return NewSpecialEvent(KeyEscape, ModNone)
	case "\b", "\x7f":
		return NewSpecialEvent(KeyBackspace, ModNone)
	}
	return NewRuneEvent(norm.NFC.String(cluster), ModNone)
}
