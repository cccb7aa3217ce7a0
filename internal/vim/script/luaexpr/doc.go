// Package luaexpr evaluates expression-register input as Lua expressions.
//
// Text typed at the '=' prompt is parsed as the operand of a Lua return
// statement, so "1 + 2", "'abc'" and "{1, 2, 3}" are all accepted while
// statements and multiple expressions are rejected.
//
// Each evaluation runs in a fresh sandboxed state. Only the base, table,
// string and math libraries are opened, and dofile, loadfile, load and
// loadstring are removed. A vim table gives read access to the document
// and the registers:
//
//	vim.line_count()   number of lines in the document
//	vim.file_size()    number of characters in the document
//	vim.getline(n)     text of 1-based line n, "" when out of range
//	vim.getreg(name)   text of register name, '"' when omitted
//	vim.line()         1-based line of the primary caret
//	vim.col()          1-based column of the primary caret
//
// Evaluation is bounded by a timeout and by the Lua call stack size.
package luaexpr
