package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/Cyclone1070/msh/internal/archive"
	"github.com/Cyclone1070/msh/internal/config"
	"github.com/Cyclone1070/msh/internal/fsutil"
	"github.com/Cyclone1070/msh/internal/history"
	"github.com/Cyclone1070/msh/internal/logging"
	"github.com/Cyclone1070/msh/internal/pathutil"
	"github.com/Cyclone1070/msh/internal/search"
	"github.com/Cyclone1070/msh/internal/shell"
	"github.com/Cyclone1070/msh/internal/trash"
	"github.com/Cyclone1070/msh/internal/ui"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// options are the command-line overrides applied over the loaded config.
type options struct {
	configPath  string
	historyFile string
	trashDir    string
	logFile     string
	cwd         string
}

func newRootCommand(stdin io.Reader, stdout, stderr io.Writer) *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:   "msh",
		Short: "Interactive file-management shell with undo",
		Long: `msh is a small interactive shell for everyday file work.

Deletions go through a trash directory so rm, rmdir, cp and mv can be undone.
It also creates and extracts zip and tar.gz archives and searches file contents.`,
		Version: Version,
		Args:    cobra.NoArgs,
		// Silence usage on errors to avoid duplicate help text
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := loadConfig(opts, config.NewLoader(), stderr)
			return run(cmd.Context(), cfg, stdin, stdout, stderr)
		},
	}

	cmd.Flags().StringVar(&opts.configPath, "config", "", "config file (default ~/.config/msh/config.yaml or config.json)")
	cmd.Flags().StringVar(&opts.historyFile, "history-file", "", "history file")
	cmd.Flags().StringVar(&opts.trashDir, "trash-dir", "", "trash directory used for undo")
	cmd.Flags().StringVar(&opts.logFile, "log-file", "", "command log file")
	cmd.Flags().StringVar(&opts.cwd, "cwd", "", "starting directory (default home)")

	return cmd
}

type configLoader interface {
	Load() (*config.Config, error)
	LoadFile(path string) (*config.Config, error)
}

// loadConfig never fails: an unreadable or invalid config is reported and defaults are used.
func loadConfig(opts *options, loader configLoader, stderr io.Writer) *config.Config {
	var (
		cfg *config.Config
		err error
	)
	if opts.configPath != "" {
		cfg, err = loader.LoadFile(opts.configPath)
	} else {
		cfg, err = loader.Load()
	}
	if err != nil {
		fmt.Fprintf(stderr, "Warning: failed to load config: %v\n", err)
		fmt.Fprintf(stderr, "Using default configuration.\n")
		cfg = config.DefaultConfig()
	}

	if opts.historyFile != "" {
		cfg.Shell.HistoryFile = opts.historyFile
	}
	if opts.trashDir != "" {
		cfg.Shell.TrashDir = opts.trashDir
	}
	if opts.logFile != "" {
		cfg.Shell.LogFile = opts.logFile
	}
	if opts.cwd != "" {
		cfg.Shell.StartDir = opts.cwd
	}
	return cfg
}

// Dependencies holds the components required to run the shell.
type Dependencies struct {
	Executor *shell.Executor
	Registry *shell.Registry
	Reader   ui.LineReader
	Printer  *ui.Printer
	Logger   *logging.Logger
}

func run(ctx context.Context, cfg *config.Config, stdin io.Reader, stdout, stderr io.Writer) error {
	if ctx == nil {
		ctx = context.Background()
	}

	reader := newReader(stdin, stdout)
	deps, err := createDependencies(cfg, reader, stdout, stderr)
	if err != nil {
		return err
	}
	defer deps.Logger.Close()

	return runREPL(ctx, deps)
}

func newReader(stdin io.Reader, stdout io.Writer) ui.LineReader {
	if f, ok := stdin.(*os.File); ok {
		return ui.NewLineReader(f, stdout)
	}
	return ui.NewPlainReader(stdin, stdout)
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && isatty.IsTerminal(f.Fd())
}

func createDependencies(cfg *config.Config, reader ui.LineReader, stdout, stderr io.Writer) (*Dependencies, error) {
	osFS := fsutil.NewOSFileSystem()
	resolver := pathutil.NewOSResolver()

	startDir := resolver.HomeDir()
	if cfg.Shell.StartDir != "" {
		startDir = resolver.Resolve(startDir, cfg.Shell.StartDir)
	}
	if info, err := osFS.Stat(startDir); err != nil || !info.IsDir() {
		return nil, fmt.Errorf("start directory %s is not a directory", startDir)
	}

	// Relative persistence paths live next to the start directory
	local := func(p string) string {
		if filepath.IsAbs(p) {
			return p
		}
		return filepath.Join(startDir, p)
	}

	logger, err := logging.New(logging.Config{Level: cfg.Log.Level, OutputPath: local(cfg.Shell.LogFile)})
	if err != nil {
		fmt.Fprintf(stderr, "Warning: %v, command log disabled\n", err)
		logger = logging.Nop()
	}

	trashStore, err := trash.NewStore(local(cfg.Shell.TrashDir), osFS)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize trash: %w", err)
	}

	logger.Debug("session started",
		zap.String("start_dir", startDir),
		zap.String("history_file", local(cfg.Shell.HistoryFile)),
		zap.String("trash_dir", trashStore.Root()),
	)

	ledger := history.NewLedger(history.NewFileStore(local(cfg.Shell.HistoryFile), osFS))
	searcher := search.NewSearcher(
		osFS,
		fsutil.NewSystemBinaryDetector(cfg.Search.BinarySampleSize),
		cfg.Search,
		search.GitignoreFactory(osFS),
	)

	executor := shell.NewExecutor(&shell.Session{Cwd: startDir}, shell.Deps{
		FS:           osFS,
		Resolver:     resolver,
		Trash:        trashStore,
		Ledger:       ledger,
		Archives:     archive.NewService(cfg.Archive),
		Searcher:     searcher,
		Logger:       logger,
		Prompt:       ui.NewPrompter(reader),
		HistoryCount: cfg.Shell.DefaultHistoryCount,
	})

	styled := isTerminal(stdout)
	renderer, err := ui.NewGlamourRenderer(styled, 80)
	if err != nil {
		fmt.Fprintf(stderr, "Warning: markdown rendering disabled: %v\n", err)
	}

	return &Dependencies{
		Executor: executor,
		Registry: shell.DefaultCommands(),
		Reader:   reader,
		Printer:  ui.NewPrinter(stdout, renderer, styled),
		Logger:   logger,
	}, nil
}

// runREPL reads and dispatches lines until exit, end of input or Ctrl+C.
func runREPL(ctx context.Context, deps *Dependencies) error {
	deps.Printer.Banner("Mini shell")
	deps.Printer.Notice("Type 'help' for help or 'exit' to quit")

	for {
		line, err := deps.Reader.ReadLine(ctx, deps.Executor.Cwd()+"> ")
		switch {
		case errors.Is(err, io.EOF):
			deps.Printer.Notice("Goodbye!")
			return nil
		case errors.Is(err, ui.ErrInterrupted):
			deps.Printer.Notice("Interrupted (Ctrl+C)")
			return nil
		case err != nil:
			return err
		}

		res := deps.Registry.Dispatch(ctx, deps.Executor, line)
		if res != nil && errors.Is(res.Err, shell.ErrExit) {
			deps.Printer.Notice("Goodbye!")
			return nil
		}
		deps.Printer.Print(res)
	}
}
