package register

import "github.com/atotto/clipboard"

// Clipboard abstracts system clipboard access.
type Clipboard interface {
	// Get returns the current clipboard content.
	Get() (string, error)

	// Set sets the clipboard content.
	Set(content string) error
}

// SystemClipboard is the operating system clipboard.
type SystemClipboard struct{}

// Get returns the current clipboard content.
func (SystemClipboard) Get() (string, error) {
	return clipboard.ReadAll()
}

// Set sets the clipboard content.
func (SystemClipboard) Set(content string) error {
	return clipboard.WriteAll(content)
}

// SystemClipboardAvailable reports whether the platform has a usable
// clipboard, e.g. xclip or xsel on X11.
func SystemClipboardAvailable() bool {
	return !clipboard.Unsupported
}

// SuppressClipboard stops the store from touching the system clipboard until
// the returned release func is called. While suppressed, + and * behave like
// ordinary registers and clipboard mirroring is skipped. Calls nest; release
// is safe to call more than once.
func (s *Store) SuppressClipboard() (release func()) {
	s.suppressed++
	released := false
	return func() {
		if released {
			return
		}
		released = true
		s.suppressed--
	}
}

// ClipboardSuppressed reports whether a SuppressClipboard scope is active.
func (s *Store) ClipboardSuppressed() bool {
	return s.suppressed > 0
}

func (s *Store) clipboardActive() bool {
	return s.clipboard != nil && !s.ClipboardSuppressed()
}

// readClipboard reads the system clipboard. A failed read falls back to the
// locally stored content.
func (s *Store) readClipboard() (string, bool) {
	if !s.clipboardActive() {
		return "", false
	}
	text, err := s.clipboard.Get()
	if err != nil {
		return "", false
	}
	return text, true
}

func (s *Store) writeClipboard(text string) {
	if !s.clipboardActive() {
		return
	}
	_ = s.clipboard.Set(text)
}

func (s *Store) mirrorToClipboard(text string, kind Kind) {
	if s.mirror == 0 {
		return
	}
	s.assign(s.mirror, text, kind)
	s.writeClipboard(text)
}
