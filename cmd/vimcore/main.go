// Package main is the entry point for vimcore, a line-oriented shell over
// the Vim editing commands.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/dshills/vimcore/internal/config"
	"github.com/dshills/vimcore/internal/engine"
	"github.com/dshills/vimcore/internal/logging"
	"github.com/dshills/vimcore/internal/prompt"
	"github.com/dshills/vimcore/internal/vim/editor"
	"github.com/dshills/vimcore/internal/vim/register"
)

// Version information (set via ldflags during build).
var (
	version = "dev"
	commit  = "unknown"
)

type options struct {
	configPath string
	readOnly   bool
	file       string
}

func main() {
	os.Exit(run())
}

func run() int {
	opts := parseFlags()

	cfg, err := config.Load(opts.configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	logOut, closeLog, err := openLog(cfg.Logging.File)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	defer closeLog()

	logger := logging.New(logging.Config{
		Level:  cfg.LogLevel(),
		Output: logOut,
		Prefix: "vimcore",
	})
	logging.SetDefault(logger)

	eng, err := openDocument(opts)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	regs, err := openRegisters(cfg.Registers, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	if opts.file != "" {
		regs.SetFileName(opts.file)
	}

	input := prompt.New()
	defer input.Close()
	if l, ok := input.(*prompt.Liner); ok {
		loadHistory(l, logger)
		defer saveHistory(l, logger)
	}

	s := &session{
		eng:    eng,
		ed:     editor.For(eng),
		regs:   regs,
		input:  input,
		status: prompt.StatusLine{W: os.Stdout},
		out:    os.Stdout,
		logger: logger,
		path:   opts.file,
		cfg:    cfg,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM)
	defer stop()

	if opts.configPath != "" {
		go func() {
			err := config.Watch(ctx, opts.configPath, func(c config.Config, err error) {
				if err != nil {
					logger.Warn("config reload failed: %v", err)
					return
				}
				s.reconfigure(c)
			})
			if err != nil {
				logger.Warn("config watch stopped: %v", err)
			}
		}()
	}

	loopErr := s.loop(ctx)

	if path := expandHome(cfg.Registers.File); path != "" {
		if err := register.Save(regs, path); err != nil {
			logger.Error("saving registers: %v", err)
		}
	}

	if loopErr != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", loopErr)
		return 1
	}
	return 0
}

func parseFlags() options {
	var opts options
	var showVersion bool

	flag.StringVar(&opts.configPath, "config", "", "Path to configuration file (.toml or .yaml)")
	flag.StringVar(&opts.configPath, "c", "", "Path to configuration file (shorthand)")
	flag.BoolVar(&opts.readOnly, "readonly", false, "Open the file read-only")
	flag.BoolVar(&opts.readOnly, "R", false, "Open the file read-only (shorthand)")
	flag.BoolVar(&showVersion, "version", false, "Show version information")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "vimcore - Vim editing commands over a plain document\n\n")
		fmt.Fprintf(os.Stderr, "Usage: vimcore [options] [file]\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nType help at the prompt for the command list.\n")
	}

	flag.Parse()

	if showVersion {
		fmt.Printf("vimcore %s (%s)\n", version, commit)
		os.Exit(0)
	}

	opts.file = flag.Arg(0)
	return opts
}

// openDocument loads the file named on the command line. A file that does
// not exist yet starts empty.
func openDocument(opts options) (*engine.Engine, error) {
	var engOpts []engine.Option
	if opts.readOnly {
		engOpts = append(engOpts, engine.WithReadOnly())
	}
	if opts.file == "" {
		return engine.New(engOpts...), nil
	}

	f, err := os.Open(opts.file)
	if err != nil {
		if os.IsNotExist(err) {
			return engine.New(engOpts...), nil
		}
		return nil, err
	}
	defer f.Close()
	return engine.NewFromReader(f, engOpts...)
}

func openRegisters(cfg config.RegistersConfig, logger *logging.Logger) (*register.Store, error) {
	mirror, err := cfg.MirrorRegister()
	if err != nil {
		return nil, err
	}

	var opts []register.Option
	if register.SystemClipboardAvailable() {
		opts = append(opts, register.WithClipboard(register.SystemClipboard{}))
		if mirror != 0 {
			opts = append(opts, register.WithClipboardMirror(mirror))
		}
	} else if mirror != 0 {
		logger.Warn("clipboard %q requested but no system clipboard is available", cfg.Clipboard)
	}

	regs := register.NewStore(opts...)
	if path := expandHome(cfg.File); path != "" {
		if err := register.Load(regs, path); err != nil {
			return nil, err
		}
	}
	return regs, nil
}

func openLog(path string) (io.Writer, func(), error) {
	path = expandHome(path)
	if path == "" {
		return os.Stderr, func() {}, nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, nil, err
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, nil, err
	}
	return f, func() { f.Close() }, nil
}

// historyFile is where the interactive prompt keeps command history.
func historyFile() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "vimcore", "history")
}

func loadHistory(l *prompt.Liner, logger *logging.Logger) {
	path := historyFile()
	if path == "" {
		return
	}
	f, err := os.Open(path)
	if err != nil {
		return
	}
	defer f.Close()
	if _, err := l.ReadHistory(f); err != nil {
		logger.Warn("reading history: %v", err)
	}
}

func saveHistory(l *prompt.Liner, logger *logging.Logger) {
	path := historyFile()
	if path == "" {
		return
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		logger.Warn("saving history: %v", err)
		return
	}
	f, err := os.Create(path)
	if err != nil {
		logger.Warn("saving history: %v", err)
		return
	}
	defer f.Close()
	if _, err := l.WriteHistory(f); err != nil {
		logger.Warn("saving history: %v", err)
	}
}

func expandHome(path string) string {
	if !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[2:])
}
