package cli

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/cobra"

	"nexventory/internal/config"
	"nexventory/internal/eventbus"
)

// NewConfigCommand creates the "config" command group
func NewConfigCommand(root *rootFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show or create the configuration file",
	}
	cmd.AddCommand(newConfigShowCommand(root))
	cmd.AddCommand(newConfigInitCommand(root))
	return cmd
}

func newConfigShowCommand(root *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, svc, err := root.loadConfig()
			if err != nil {
				return err
			}
			data, err := toml.Marshal(cfg)
			if err != nil {
				return fmt.Errorf("failed to marshal config: %w", err)
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "# %s\n", svc.Path())
			_, err = out.Write(data)
			return err
		},
	}
}

func newConfigInitCommand(root *rootFlags) *cobra.Command {
	var force bool
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a config file with the default settings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConfigInit(cmd.OutOrStdout(), root, force)
		},
	}
	cmd.Flags().BoolVar(&force, "force", false, "overwrite an existing config file")
	return cmd
}

func runConfigInit(out io.Writer, root *rootFlags, force bool) error {
	bus := eventbus.New()
	defer bus.Close()
	svc := config.NewConfigServiceWithBus(root.configPath, bus)

	if _, err := os.Stat(svc.Path()); err == nil && !force {
		return fmt.Errorf("config file %s already exists (use --force to overwrite)", svc.Path())
	} else if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := config.DefaultConfig()
	if root.dataFile != "" {
		cfg.DataFile = root.dataFile
	}
	if root.logLevel != "" {
		cfg.LogLevel = root.logLevel
	}

	saved := make(chan string, 1)
	bus.Subscribe(eventbus.EventConfigSaved, func(e eventbus.DomainEvent) {
		if ev, ok := e.(eventbus.ConfigSavedEvent); ok {
			saved <- ev.Path
		}
	})
	if err := svc.Save(cfg); err != nil {
		return err
	}
	_, err := fmt.Fprintf(out, "Wrote config to %s\n", <-saved)
	return err
}
