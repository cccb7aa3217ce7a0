package key

import (
	"errors"
	"testing"
)

func TestParse(t *testing.T) {
	tests := []struct {
		spec string
		key  Key
		text string
		mods Modifier
	}{
		{"a", KeyRune, "a", ModNone},
		{"A", KeyRune, "A", ModShift},
		{"<CR>", KeyEnter, "", ModNone},
		{"<Esc>", KeyEscape, "", ModNone},
		{"<tab>", KeyTab, "", ModNone},
		{"BS", KeyBackspace, "", ModNone},
		{"<lt>", KeyRune, "<", ModNone},
		{"<Space>", KeyRune, " ", ModNone},
		{"<C-w>", KeyRune, "w", ModCtrl},
		{"<C-S-Left>", KeyLeft, "", ModCtrl | ModShift},
		{"<A-->", KeyRune, "-", ModAlt},
	}

	for _, tt := range tests {
		t.Run(tt.spec, func(t *testing.T) {
			ev, err := Parse(tt.spec)
			if err != nil {
				t.Fatalf("Parse(%q) error = %v", tt.spec, err)
			}
			if ev.Key != tt.key || ev.Text != tt.text || ev.Modifiers != tt.mods {
				t.Errorf("Parse(%q) = %+v, want key %s text %q mods %v", tt.spec, ev, tt.key, tt.text, tt.mods)
			}
		})
	}
}

func TestParseErrors(t *testing.T) {
	if _, err := Parse("  "); !errors.Is(err, ErrEmptySpec) {
		t.Errorf("expected ErrEmptySpec, got %v", err)
	}
	for _, spec := range []string{"<X-a>", "<nosuchkey>"} {
		if _, err := Parse(spec); !errors.Is(err, ErrInvalidSpec) {
			t.Errorf("Parse(%q): expected ErrInvalidSpec, got %v", spec, err)
		}
	}
}

func render(events []Event) string {
	var out string
	for _, ev := range events {
		out += ev.String()
	}
	return out
}

func TestParseKeys(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
		count int
	}{
		{"plain", "abc", "abc", 3},
		{"empty", "", "", 0},
		{"newlines", "1\n2\n", "1<CR>2<CR>", 4},
		{"crlf", "a\r\nb", "a<CR>b", 3},
		{"tab", "\tx", "<Tab>x", 2},
		{"notation", "x<Esc>", "x<Esc>", 2},
		{"lt notation", "<lt>", "<lt>", 1},
		{"bare character stays literal", "<a>", "<lt>a>", 3},
		{"unknown name stays literal", "<foo>", "<lt>foo>", 5},
		{"unterminated", "a<b", "a<lt>b", 3},
		{"control", "<C-w>", "<C-w>", 1},
		{"emoji cluster", "👍🏽!", "👍🏽!", 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			events := ParseKeys(tt.input)
			if len(events) != tt.count {
				t.Errorf("ParseKeys(%q) produced %d events, want %d", tt.input, len(events), tt.count)
			}
			if got := render(events); got != tt.want {
				t.Errorf("ParseKeys(%q) renders %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestParseKeysComposesNFC(t *testing.T) {
	events := ParseKeys("e\u0301x")

	if len(events) != 2 {
		t.Fatalf("expected 2 events, got %d", len(events))
	}
	if events[0].Text != "\u00e9" {
		t.Errorf("expected composed U+00E9, got %q", events[0].Text)
	}
	if events[0].Rune() != '\u00e9' {
		t.Errorf("Rune() = %q", events[0].Rune())
	}
}

func TestEventIsModified(t *testing.T) {
	if NewRuneEvent("A", ModShift).IsModified() {
		t.Error("shifted character should not count as modified")
	}
	if !NewRuneEvent("a", ModCtrl).IsModified() {
		t.Error("Ctrl+a should count as modified")
	}
	if NewSpecialEvent(KeyEnter, ModNone).IsModified() {
		t.Error("plain Enter should not count as modified")
	}
}

func TestFromName(t *testing.T) {
	if k, ok := FromName(" Return "); !ok || k != KeyEnter {
		t.Errorf("FromName(Return) = %v, %v", k, ok)
	}
	if _, ok := FromName("hyper"); ok {
		t.Error("unexpected key for unknown name")
	}
}
