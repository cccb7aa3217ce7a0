// Package buffer provides the thread-safe text document behind the editor
// engine. Text is addressed by character (rune) offsets and indexed by line.
//
// The buffer package provides:
//
//   - Thread-safe read/write access via sync.RWMutex
//   - Line start/end queries that ignore the line terminator
//   - Guarded ranges: host-declared read-only intervals that edits may not touch
//   - Line ending normalization to LF on load
//
// Basic usage:
//
//	buf := buffer.NewBufferFromString("Hello, World!")
//	buf.Insert(7, "Beautiful ")  // "Hello, Beautiful World!"
//	buf.Delete(0, 7)             // "Beautiful World!"
//
// Guards:
//
// A guard is a half-open interval [Start, End). Deleting any character inside
// a guard, or inserting strictly between its first and last character, fails
// with ErrGuarded. Inserting exactly at a guard boundary is allowed and pushes
// the guard along with the text that follows. Guards are kept sorted and
// disjoint; adding an overlapping or adjacent guard merges the two.
//
// Line Model:
//
// An empty buffer has zero lines. Otherwise the line count is the number of
// newlines plus one, so "a\n" has two lines, the second one empty.
package buffer
