package luaexpr

import (
	"fmt"

	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/vimcore/internal/vim/editor"
	"github.com/dshills/vimcore/internal/vim/register"
	"github.com/dshills/vimcore/internal/vim/script"
)

// installVim sets the global vim table bound to env.
func installVim(L *lua.LState, env script.Env) {
	b := &binding{env: env}
	tbl := L.NewTable()
	L.SetFuncs(tbl, map[string]lua.LGFunction{
		"line_count": b.lineCount,
		"file_size":  b.fileSize,
		"getline":    b.getline,
		"getreg":     b.getreg,
		"line":       b.line,
		"col":        b.col,
	})
	L.SetGlobal("vim", tbl)
}

type binding struct {
	env script.Env
}

func (b *binding) editor(L *lua.LState) editor.Editor {
	if b.env.Editor == nil {
		L.RaiseError("%s", ErrNoEditor)
	}
	return b.env.Editor
}

func (b *binding) lineCount(L *lua.LState) int {
	L.Push(lua.LNumber(b.editor(L).LineCount()))
	return 1
}

func (b *binding) fileSize(L *lua.LState) int {
	L.Push(lua.LNumber(b.editor(L).FileSize()))
	return 1
}

func (b *binding) getline(L *lua.LState) int {
	ed := b.editor(L)
	n := L.CheckInt(1)
	lp, err := editor.NewLinePointer(editor.LineOffset(n-1), ed)
	if n < 1 || err != nil {
		L.Push(lua.LString(""))
		return 1
	}
	start, end := ed.LineRange(lp)
	text, err := ed.Text(start, end)
	if err != nil {
		L.RaiseError("getline(%d): %v", n, err)
	}
	L.Push(lua.LString(text))
	return 1
}

func (b *binding) getreg(L *lua.LState) int {
	name := L.OptString(1, string(register.Unnamed))
	runes := []rune(name)
	if len(runes) != 1 || !register.IsValid(runes[0]) {
		L.ArgError(1, fmt.Sprintf("invalid register name %q", name))
	}
	if b.env.Registers == nil {
		L.Push(lua.LString(""))
		return 1
	}
	L.Push(lua.LString(b.env.Registers.Text(runes[0])))
	return 1
}

func (b *binding) line(L *lua.LState) int {
	ed := b.editor(L)
	lp := ed.LineOf(ed.PrimaryCaret().Offset())
	L.Push(lua.LNumber(lp.Line() + 1))
	return 1
}

func (b *binding) col(L *lua.LState) int {
	ed := b.editor(L)
	off := ed.PrimaryCaret().Offset()
	start, _ := ed.LineRange(ed.LineOf(off))
	L.Push(lua.LNumber(off - start + 1))
	return 1
}
