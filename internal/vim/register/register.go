// Package register implements the session-wide named register store.
//
// A Store is passed to the commands that use it; there is no global store.
// It performs no locking: one command at a time writes to it, which the
// caller guarantees. Every write is a single assignment, so a reader after a
// write always sees the whole new value.
package register

import (
	"errors"
	"fmt"
	"sort"
	"unicode"
)

// Errors returned by register operations.
var (
	ErrInvalidRegister  = errors.New("invalid register")
	ErrReadOnlyRegister = errors.New("register is read-only")
)

// Kind tells how register content is put back into a document.
type Kind uint8

const (
	// CharacterWise content is inserted as plain text.
	CharacterWise Kind = iota
	// LineWise content is inserted as whole lines.
	LineWise
	// BlockWise content is inserted as a rectangular block.
	BlockWise
)

// String returns the name of the kind.
func (k Kind) String() string {
	switch k {
	case CharacterWise:
		return "characterwise"
	case LineWise:
		return "linewise"
	case BlockWise:
		return "blockwise"
	default:
		return fmt.Sprintf("Kind(%d)", uint8(k))
	}
}

// ParseKind converts a Kind name back to a Kind.
func ParseKind(s string) (Kind, bool) {
	switch s {
	case "characterwise", "":
		return CharacterWise, true
	case "linewise":
		return LineWise, true
	case "blockwise":
		return BlockWise, true
	}
	return CharacterWise, false
}

// Type categorizes registers by their behavior.
type Type uint8

const (
	// TypeUnnamed is the default register (").
	TypeUnnamed Type = iota
	// TypeNamed is a named register (a-z, A-Z).
	TypeNamed
	// TypeLastYank is the yank register (0).
	TypeLastYank
	// TypeNumbered is a numbered register (1-9).
	TypeNumbered
	// TypeSmallDelete is the small delete register (-).
	TypeSmallDelete
	// TypeBlackHole is the black hole register (_).
	TypeBlackHole
	// TypeLastInserted is the last inserted text register (.).
	TypeLastInserted
	// TypeFileName is the current file name register (%).
	TypeFileName
	// TypeAlternate is the alternate file name register (#).
	TypeAlternate
	// TypeCommand is the last command register (:).
	TypeCommand
	// TypeSearch is the last search pattern register (/).
	TypeSearch
	// TypeExpression is the expression register (=).
	TypeExpression
	// TypeClipboard is the system clipboard register (+).
	TypeClipboard
	// TypeSelection is the primary selection register (*).
	TypeSelection
)

// Expression is the name of the expression register.
const Expression = '='

// Unnamed is the name of the default register.
const Unnamed = '"'

// Register is the content of one register.
type Register struct {
	Name     rune
	Type     Type
	Text     string
	Kind     Kind
	ReadOnly bool
}

// IsEmpty returns true if the register holds no text.
func (r Register) IsEmpty() bool {
	return r.Text == ""
}

// Store holds every register of an editing session.
type Store struct {
	registers map[rune]*Register

	// numbered are 1-9, the rotating delete history.
	numbered [9]*Register

	clipboard  Clipboard
	mirror     rune // '+' or '*' when yanks and deletes also go to the clipboard
	suppressed int
}

// Option configures a Store.
type Option func(*Store)

// WithClipboard backs the + and * registers with c.
func WithClipboard(c Clipboard) Option {
	return func(s *Store) {
		s.clipboard = c
	}
}

// WithClipboardMirror copies every yank and delete into the clipboard
// register name ('+' or '*'), like Vim's 'clipboard' option.
func WithClipboardMirror(name rune) Option {
	return func(s *Store) {
		if name == '+' || name == '*' {
			s.mirror = name
		}
	}
}

// NewStore creates a store with every register empty.
func NewStore(opts ...Option) *Store {
	s := &Store{registers: make(map[rune]*Register)}
	s.init()
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// storedNames lists every register the store holds. The black hole
// register is handled by Get and Set.
const storedNames = "\"abcdefghijklmnopqrstuvwxyz0123456789-.%#:/=+*"

func (s *Store) init() {
	for _, r := range storedNames {
		t := TypeOf(r)
		s.registers[r] = &Register{Name: r, Type: t, ReadOnly: readOnlyType(t)}
	}
	for i := 1; i <= 9; i++ {
		s.numbered[i-1] = s.registers[rune('0'+i)]
	}
}

// readOnlyType reports whether registers of type t are filled by the editor
// rather than by Set.
func readOnlyType(t Type) bool {
	switch t {
	case TypeLastInserted, TypeFileName, TypeAlternate, TypeCommand, TypeSearch:
		return true
	}
	return false
}

// Get returns a copy of a register. Uppercase names read the lowercase
// register. The black hole register always reads empty.
func (s *Store) Get(name rune) (Register, bool) {
	name = unicode.ToLower(name)
	if name == '_' {
		return Register{Name: '_', Type: TypeBlackHole}, true
	}
	reg, ok := s.registers[name]
	if !ok {
		return Register{}, false
	}
	out := *reg
	if isClipboard(name) {
		if text, ok := s.readClipboard(); ok {
			out.Text = text
			out.Kind = kindOf(text)
		}
	}
	return out, true
}

// Text returns the text of a register, or "" if it does not exist.
func (s *Store) Text(name rune) string {
	reg, _ := s.Get(name)
	return reg.Text
}

// StoreTextSpecial overwrites a register with plain text, skipping the usual
// append, read-only and clipboard rules. It is how the expression register
// records the last expression.
func (s *Store) StoreTextSpecial(name rune, text string) error {
	reg, ok := s.registers[name]
	if !ok {
		return fmt.Errorf("%w: %q", ErrInvalidRegister, name)
	}
	reg.Text = text
	reg.Kind = CharacterWise
	return nil
}

// Set stores text in a register.
//
// Uppercase names append to the lowercase register; appending to linewise
// content starts a new line. The black hole register discards everything.
func (s *Store) Set(name rune, text string, kind Kind) error {
	if name == '_' {
		return nil
	}

	appendMode := false
	if unicode.IsUpper(name) {
		name = unicode.ToLower(name)
		appendMode = true
	}

	reg, ok := s.registers[name]
	if !ok {
		return fmt.Errorf("%w: %q", ErrInvalidRegister, name)
	}
	if reg.ReadOnly {
		return fmt.Errorf("%w: %q", ErrReadOnlyRegister, name)
	}

	if appendMode && reg.Type == TypeNamed {
		if reg.Kind == LineWise && reg.Text != "" {
			reg.Text += "\n" + text
		} else {
			reg.Text += text
		}
	} else {
		reg.Text = text
		reg.Kind = kind
	}

	if isClipboard(name) {
		s.writeClipboard(reg.Text)
	}
	return nil
}

// SetYank stores a yank in register 0 and the unnamed register.
func (s *Store) SetYank(text string, kind Kind) {
	s.assign('0', text, kind)
	s.assign(Unnamed, text, kind)
	s.mirrorToClipboard(text, kind)
}

// SetDelete stores a delete. Small (within one line) deletes go to the -
// register; others rotate through 1-9. Both update the unnamed register.
func (s *Store) SetDelete(text string, kind Kind, small bool) {
	if small {
		s.assign('-', text, kind)
	} else {
		for i := len(s.numbered) - 1; i > 0; i-- {
			prev := s.numbered[i-1]
			s.numbered[i].Text = prev.Text
			s.numbered[i].Kind = prev.Kind
		}
		s.numbered[0].Text = text
		s.numbered[0].Kind = kind
	}
	s.assign(Unnamed, text, kind)
	s.mirrorToClipboard(text, kind)
}

// SetLastInserted updates the last inserted text register.
func (s *Store) SetLastInserted(text string) {
	s.assign('.', text, CharacterWise)
}

// SetFileName updates the file name register.
func (s *Store) SetFileName(name string) {
	s.assign('%', name, CharacterWise)
}

// SetLastCommand updates the last command register.
func (s *Store) SetLastCommand(cmd string) {
	s.assign(':', cmd, CharacterWise)
}

// assign writes a register directly, ignoring the read-only flag.
func (s *Store) assign(name rune, text string, kind Kind) {
	if reg, ok := s.registers[name]; ok {
		reg.Text = text
		reg.Kind = kind
	}
}

// NonEmpty returns every register holding text, sorted by name.
func (s *Store) NonEmpty() []Register {
	var out []Register
	for name := range s.registers {
		if reg, ok := s.Get(name); ok && !reg.IsEmpty() {
			out = append(out, reg)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Name < out[j].Name
	})
	return out
}

// TypeOf returns the type of register for a given name.
func TypeOf(name rune) Type {
	switch {
	case name == Unnamed:
		return TypeUnnamed
	case name >= 'a' && name <= 'z', name >= 'A' && name <= 'Z':
		return TypeNamed
	case name == '0':
		return TypeLastYank
	case name >= '1' && name <= '9':
		return TypeNumbered
	case name == '-':
		return TypeSmallDelete
	case name == '_':
		return TypeBlackHole
	case name == '.':
		return TypeLastInserted
	case name == '%':
		return TypeFileName
	case name == '#':
		return TypeAlternate
	case name == ':':
		return TypeCommand
	case name == '/':
		return TypeSearch
	case name == Expression:
		return TypeExpression
	case name == '+':
		return TypeClipboard
	case name == '*':
		return TypeSelection
	default:
		return TypeUnnamed
	}
}

// IsValid returns true if name is a register name.
func IsValid(name rune) bool {
	switch {
	case name == Unnamed, name == Expression:
		return true
	case name >= 'a' && name <= 'z', name >= 'A' && name <= 'Z':
		return true
	case name >= '0' && name <= '9':
		return true
	case name == '-', name == '_', name == '.', name == '%':
		return true
	case name == '#', name == ':', name == '/':
		return true
	case name == '+', name == '*':
		return true
	}
	return false
}

func isClipboard(name rune) bool {
	return name == '+' || name == '*'
}

// kindOf guesses the kind of text read back from the system clipboard.
func kindOf(text string) Kind {
	if len(text) > 0 && text[len(text)-1] == '\n' {
		return LineWise
	}
	return CharacterWise
}
