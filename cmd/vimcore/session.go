package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"sync"
	"unicode"

	"github.com/dshills/vimcore/internal/config"
	"github.com/dshills/vimcore/internal/engine"
	"github.com/dshills/vimcore/internal/input/key"
	"github.com/dshills/vimcore/internal/logging"
	"github.com/dshills/vimcore/internal/prompt"
	"github.com/dshills/vimcore/internal/vim/action"
	"github.com/dshills/vimcore/internal/vim/editor"
	"github.com/dshills/vimcore/internal/vim/register"
	"github.com/dshills/vimcore/internal/vim/replay"
	"github.com/dshills/vimcore/internal/vim/script/luaexpr"
)

// errQuit ends the command loop.
var errQuit = errors.New("quit")

// session is one document being edited from the command line.
type session struct {
	eng    *engine.Engine
	ed     *editor.EngineEditor
	regs   *register.Store
	input  prompt.LineReader
	status prompt.StatusLine
	out    io.Writer
	logger *logging.Logger
	path   string

	// savedRevision is the engine revision last written to path.
	savedRevision uint64

	mu  sync.Mutex
	cfg config.Config
}

func (s *session) config() config.Config {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cfg
}

// reconfigure applies a reloaded configuration. Script limits take effect
// from the next command.
func (s *session) reconfigure(cfg config.Config) {
	s.mu.Lock()
	s.cfg = cfg
	s.mu.Unlock()
	s.logger.SetLevel(cfg.LogLevel())
	s.logger.Info("configuration reloaded")
}

func (s *session) services() action.Services {
	cfg := s.config()
	return action.Services{
		Input: s.input,
		Parser: luaexpr.NewParser(
			luaexpr.WithExecutionTimeout(cfg.Script.Timeout.Std()),
			luaexpr.WithCallStackSize(cfg.Script.CallStackSize),
			luaexpr.WithLogger(s.logger),
		),
		Registers: s.regs,
		Replayer:  replay.New(replay.WithLogger(s.logger), replay.WithRegisters(s.regs)),
		Status:    s.status,
		Logger:    s.logger,
	}
}

// loop reads and runs commands until quit or end of input.
func (s *session) loop(ctx context.Context) error {
	for {
		if ctx.Err() != nil {
			return nil
		}
		line, err := s.input.ReadLine(":")
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}
		if err := s.exec(ctx, line); err != nil {
			if errors.Is(err, errQuit) {
				return nil
			}
			fmt.Fprintf(s.out, "error: %v\n", err)
			continue
		}
		if cmd := strings.TrimSpace(line); cmd != "" {
			s.regs.SetLastCommand(cmd)
		}
	}
}

// exec runs one command line: an optional count followed by a command
// name and its argument.
func (s *session) exec(ctx context.Context, line string) error {
	line = strings.TrimSpace(line)
	if line == "" {
		return nil
	}

	count, rest := splitCount(line)
	name, arg, _ := strings.Cut(rest, " ")

	switch name {
	case "=":
		s.show(action.NewExpressionEvaluation(s.services()).Execute(ctx, s.ed))
	case "dd":
		s.show(action.NewDeleteLines(s.services()).Execute(s.ed, count))
	case "o", "O":
		for i := 0; i < count; i++ {
			s.show(action.NewOpenLine(s.services()).Execute(s.ed, name == "o"))
		}
	case "i":
		svc := s.services()
		err := svc.Replayer.ExecuteNormalWithoutMapping(key.ParseKeys(arg), s.ed)
		if err != nil {
			return err
		}
	case "j", "k":
		if name == "k" {
			count = -count
		}
		s.moveLines(count)
	case "guard":
		return s.guard(arg)
	case "caret":
		return s.toggleCaret(arg)
	case "only":
		s.eng.ClearCarets()
	case "select":
		return s.selectRange(arg)
	case "carets":
		s.listCarets()
	case "p":
		s.print()
	case "reg":
		s.listRegisters()
	case "w":
		return s.write(arg)
	case "q":
		if s.eng.Revision() != s.savedRevision {
			return errors.New("E37: No write since last change (add ! to override)")
		}
		return errQuit
	case "q!":
		return errQuit
	case "help":
		fmt.Fprint(s.out, helpText)
	default:
		return fmt.Errorf("unknown command %q", name)
	}
	return nil
}

const helpText = `=             insert the value of a Lua expression at each caret
[count]dd     delete lines
[count]o O    open a line below or above
i KEYS        type KEYS, Vim notation allowed (<CR>, <BS>, <Left>)
[count]j k    move the caret down or up
caret N       add a caret at character N, or remove the one there
only          keep only the primary caret
select S E    select characters S to E with the primary caret
carets        list carets
guard S E     make characters S to E read-only
p             print the document
reg           list registers
w [file]      write the document
q q!          quit, q! discarding changes
`

// splitCount separates a leading decimal count. A missing count is 1.
func splitCount(line string) (int, string) {
	i := strings.IndexFunc(line, func(r rune) bool { return !unicode.IsDigit(r) })
	if i < 0 {
		i = len(line)
	}
	if i == 0 {
		return 1, line
	}
	n, err := strconv.Atoi(line[:i])
	if err != nil || n < 1 {
		return 1, line[i:]
	}
	return n, line[i:]
}

func (s *session) show(res action.Result) {
	if res.Status == action.StatusNoOp && res.Message != "" {
		s.status.ShowMessage(res.Message)
	}
	s.logger.Debug("command finished: %s", res.Status)
}

func (s *session) moveLines(delta int) {
	c := s.eng.PrimaryCaret()
	line := s.eng.LineAt(s.eng.CaretOffset(c)) + delta
	if n := s.eng.LineCount(); line >= n {
		line = n - 1
	}
	if line < 0 {
		line = 0
	}
	_ = s.eng.MoveCaret(c, s.eng.LineStartOffset(line))
}

// offsets parses want space-separated character offsets.
func offsets(arg string, want int) ([]int, error) {
	fields := strings.Fields(arg)
	if len(fields) != want {
		return nil, fmt.Errorf("expected %d offsets, got %d", want, len(fields))
	}
	out := make([]int, want)
	for i, f := range fields {
		n, err := strconv.Atoi(f)
		if err != nil {
			return nil, err
		}
		out[i] = n
	}
	return out, nil
}

func (s *session) toggleCaret(arg string) error {
	n, err := offsets(arg, 1)
	if err != nil {
		return err
	}
	primary := s.eng.PrimaryCaret()
	for _, c := range s.eng.Carets() {
		if c != primary && s.eng.CaretOffset(c) == n[0] {
			s.eng.RemoveCaret(c)
			return nil
		}
	}
	s.eng.AddCaret(n[0])
	return nil
}

func (s *session) selectRange(arg string) error {
	n, err := offsets(arg, 2)
	if err != nil {
		return err
	}
	return s.eng.SelectCaret(s.eng.PrimaryCaret(), engine.Selection{Anchor: n[0], Head: n[1]})
}

// listCarets prints the carets commands act on, with their selections.
func (s *session) listCarets() {
	fmt.Fprintf(s.out, "%d carets\n", s.eng.CaretCount())
	for _, c := range s.ed.Carets() {
		line := s.ed.LineOf(c.Offset()).Line() + 1
		if r, ok := c.Selection(); ok {
			fmt.Fprintf(s.out, "  %d (line %d) selecting %s\n", c.Offset(), line, r)
			continue
		}
		fmt.Fprintf(s.out, "  %d (line %d)\n", c.Offset(), line)
	}
}

func (s *session) guard(arg string) error {
	n, err := offsets(arg, 2)
	if err != nil {
		return err
	}
	g, err := s.eng.AddGuard(n[0], n[1])
	if err != nil {
		return err
	}
	fmt.Fprintln(s.out, g)
	return nil
}

// print lists the document with line numbers, marking the caret line.
func (s *session) print() {
	caretLine := s.eng.LineAt(s.eng.CaretOffset(s.eng.PrimaryCaret()))
	for i := 0; i < s.eng.LineCount(); i++ {
		mark := " "
		if i == caretLine {
			mark = ">"
		}
		fmt.Fprintf(s.out, "%s%4d  %s\n", mark, i+1, s.eng.LineText(i))
	}
}

func (s *session) listRegisters() {
	for _, r := range s.regs.NonEmpty() {
		fmt.Fprintf(s.out, "%c  %-5s %q\n", r.Name, r.Kind, r.Text)
	}
}

func (s *session) write(arg string) error {
	path := strings.TrimSpace(arg)
	if path == "" {
		path = s.path
	}
	if path == "" {
		return errors.New("no file name")
	}
	if err := os.WriteFile(path, []byte(s.eng.Text()), 0o644); err != nil {
		return err
	}
	s.path = path
	s.savedRevision = s.eng.Revision()
	s.regs.SetFileName(path)
	fmt.Fprintf(s.out, "%q written\n", path)
	return nil
}
