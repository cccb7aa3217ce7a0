// Package engine provides the in-memory host document that the modal-editing
// core runs against.
//
// The engine package serves as the main facade, combining the text buffer,
// its guarded ranges, and the caret model into a unified, thread-safe API.
//
// # Architecture
//
// The engine is built on two sub-packages:
//
//   - buffer: rune-addressed text storage with a line index and guards
//   - cursor: carets and selections, transformed after every edit
//
// # Identity
//
// Every engine carries a UUID. Two editor views over the same engine compare
// equal by that identity and never by pointer or value.
//
// # Thread Safety
//
// All Engine operations are thread-safe. The engine uses a read-write mutex
// to allow concurrent reads while serializing writes. The mutex is never held
// while user callbacks run, so RunForEachCaret callbacks and write
// requesters may call back into the engine.
//
// # Basic Usage
//
//	e := engine.New(engine.WithContent("Hello, World!"))
//	e.Insert(7, "Go, ")        // "Hello, Go, World!"
//	e.Delete(5, 11)            // "HelloWorld!"
//
//	// Mark a read-only region
//	e.AddGuard(0, 5)
//	_, err := e.Delete(0, 2)   // errors.Is(err, engine.ErrGuarded)
package engine
