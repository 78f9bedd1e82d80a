// Package cli wires the nexventory command tree. Running the root command
// starts the console; the subcommands expose the same operations to scripts.
package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"nexventory/internal/access"
	"nexventory/internal/config"
	"nexventory/internal/directory"
	"nexventory/internal/eventbus"
	"nexventory/internal/logging"
	"nexventory/internal/session"
	"nexventory/internal/ui"
)

// Version is set at build time via ldflags
var Version = "dev"

// rootFlags are the persistent flags shared by every command
type rootFlags struct {
	configPath string
	dataFile   string
	logLevel   string
}

// NewRootCommand builds the command tree
func NewRootCommand() *cobra.Command {
	flags := &rootFlags{}

	rootCmd := &cobra.Command{
		Use:   "nexventory",
		Short: "Inventory administration console",
		Long: `nexventory is a terminal console for the inventory user directory.

Run without a subcommand to browse users and grant permissions and regions
through the dual-list selector.`,
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConsole(cmd.Context(), flags)
		},
	}

	rootCmd.PersistentFlags().StringVar(&flags.configPath, "config", "", "config file (default $XDG_CONFIG_HOME/nexventory/config.toml)")
	rootCmd.PersistentFlags().StringVar(&flags.dataFile, "data", "", "directory file to load (.toml, .json, .jsonc)")
	rootCmd.PersistentFlags().StringVar(&flags.logLevel, "log-level", "", "log level: debug, info, warn, error")

	rootCmd.AddCommand(NewUsersCommand(flags))
	rootCmd.AddCommand(NewAssignCommand(flags))
	rootCmd.AddCommand(NewAdmCommand())
	rootCmd.AddCommand(NewConfigCommand(flags))

	return rootCmd
}

// Execute runs the command tree and returns the process exit code
func Execute() int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := NewRootCommand().ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

// loadConfig reads the config file and applies flag overrides
func (f *rootFlags) loadConfig() (*config.Config, config.ConfigService, error) {
	svc := config.NewConfigService(f.configPath)
	cfg, err := svc.Load()
	if err != nil {
		return nil, nil, err
	}
	if f.dataFile != "" {
		cfg.DataFile = f.dataFile
	}
	if f.logLevel != "" {
		cfg.LogLevel = f.logLevel
	}
	return cfg, svc, nil
}

// app is everything a command needs once config and data are loaded
type app struct {
	cfg      *config.Config
	logger   *log.Logger
	logFile  io.Closer
	bus      eventbus.EventBus
	store    *directory.MemoryStore
	session  *session.Session
	assigner *access.Assigner
}

func (f *rootFlags) setup() (*app, error) {
	cfg, _, err := f.loadConfig()
	if err != nil {
		return nil, err
	}

	logger, logFile, err := logging.Open(cfg.LogFile, cfg.LogLevel)
	if err != nil {
		return nil, err
	}

	seed, err := directory.LoadFile(cfg.DataFile)
	if err != nil {
		logFile.Close()
		return nil, fmt.Errorf("failed to load directory: %w", err)
	}

	a := &app{
		cfg:     cfg,
		logger:  logger,
		logFile: logFile,
		bus:     eventbus.New(eventbus.WithLogger(logger)),
		store:   directory.NewMemoryStoreFromSeed(seed),
		session: session.New(cfg.Operator, cfg.Language),
	}
	a.assigner = access.NewAssigner(a.store, a.bus, a.session, logger, access.Options{
		IncludeInactive: cfg.UI.IncludeInactive,
	})
	logger.Info("session started", "operator", a.session.Operator, "session", a.session.ShortID(),
		"data", cfg.DataFile, "users", len(seed.Users))
	return a, nil
}

// loaded announces the directory once subscribers are in place
func (a *app) loaded() {
	a.bus.Publish(eventbus.DirectoryLoadedEvent{
		Source:      a.cfg.DataFile,
		Users:       len(a.store.Users()),
		Permissions: len(a.store.Permissions()),
		Regions:     len(a.store.Regions()),
	})
}

// Close ends the session and drains the bus before the log file closes
func (a *app) Close() {
	a.session.End()
	a.bus.Close()
	a.logger.Info("session ended", "session", a.session.ShortID())
	a.logFile.Close()
}

func runConsole(ctx context.Context, flags *rootFlags) error {
	a, err := flags.setup()
	if err != nil {
		return err
	}
	defer a.Close()

	model := ui.NewModel(ui.Options{
		Store:    a.store,
		Assigner: a.assigner,
		Bus:      a.bus,
		Session:  a.session,
		Config:   a.cfg,
		Logger:   a.logger,
	})

	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	model.SetProgram(p)

	unsubscribe := ui.ForwardEvents(a.bus, p)
	defer unsubscribe()
	a.loaded()

	a.logger.Debug("starting UI")
	if _, err := p.Run(); err != nil {
		a.logger.Error("error running program", "err", err)
		return fmt.Errorf("error running program: %w", err)
	}
	a.logger.Debug("UI exited normally")
	return nil
}
