// Package key turns text into the key events that type it.
//
// Two forms are understood:
//
//   - Vim notation: "<CR>", "<Esc>", "<Tab>", "<BS>", "<lt>", "<C-w>"
//   - Plain text, split into user-perceived characters (grapheme clusters)
//     and composed to NFC, so "e" followed by a combining acute accent is a
//     single "é" key.
//
// Newline, tab, escape and backspace characters in plain text map to their
// special keys. A "<" that does not start valid notation is typed as-is.
package key
