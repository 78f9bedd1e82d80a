package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"nexventory/internal/directory"
	"nexventory/internal/domain"
	"nexventory/internal/dualselect"
)

type assignFlags struct {
	user   string
	kind   string
	add    []string
	remove []string
	export string
}

// assignReport is what assign prints
type assignReport struct {
	User              string            `yaml:"user"`
	Kind              domain.AccessKind `yaml:"kind"`
	dualselect.Result `yaml:",inline"`
	Skipped           []string `yaml:"skipped,omitempty"`
	Exported          string   `yaml:"exported,omitempty"`
}

// NewAssignCommand creates the "assign" command
func NewAssignCommand(root *rootFlags) *cobra.Command {
	flags := &assignFlags{}

	cmd := &cobra.Command{
		Use:   "assign",
		Short: "Grant or revoke permissions or regions for a user",
		Long: `Grant or revoke permissions or regions for a user.

Runs one selector pass: ids in --add are marked in the available list, ids
in --remove in the selected list, both are committed and the result saved.
Ids that are not where they are expected are reported as skipped.

Examples:
  nexventory assign --user 17 --kind regions --add GRU,BSB
  nexventory assign --user 17 --kind permissions --remove supply.write --export directory.toml`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAssign(cmd.OutOrStdout(), root, flags)
		},
	}

	cmd.Flags().StringVarP(&flags.user, "user", "u", "", "user id")
	cmd.Flags().StringVarP(&flags.kind, "kind", "k", "", "permissions or regions")
	cmd.Flags().StringSliceVar(&flags.add, "add", nil, "ids to grant")
	cmd.Flags().StringSliceVar(&flags.remove, "remove", nil, "ids to revoke")
	cmd.Flags().StringVar(&flags.export, "export", "", "write the updated directory to this file")
	_ = cmd.MarkFlagRequired("user")
	_ = cmd.MarkFlagRequired("kind")

	return cmd
}

func runAssign(out io.Writer, root *rootFlags, flags *assignFlags) error {
	kind, err := domain.ParseAccessKind(flags.kind)
	if err != nil {
		return err
	}

	a, err := root.setup()
	if err != nil {
		return err
	}
	defer a.Close()

	res, skipped, err := a.assigner.Apply(kind, flags.user, flags.add, flags.remove)
	if err != nil {
		return err
	}

	report := assignReport{User: flags.user, Kind: kind, Result: res, Skipped: skipped}
	if flags.export != "" {
		if err := directory.Export(a.store, flags.export); err != nil {
			return fmt.Errorf("failed to export directory: %w", err)
		}
		a.logger.Info("directory exported", "path", flags.export)
		report.Exported = flags.export
	}
	return writeYAML(out, report)
}
