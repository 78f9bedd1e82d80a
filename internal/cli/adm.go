package cli

import (
	"io"
	"strings"

	"github.com/spf13/cobra"

	"nexventory/internal/command"
)

// NewAdmCommand creates the "adm" command
func NewAdmCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "adm COMMAND...",
		Short: "Parse an /adm stock command and print the drafted transaction",
		Long: `Parse an /adm stock command and print the drafted transaction.

The command may be quoted or passed as separate words:
  nexventory adm "/adm 120 /r GRU /te OUT /ts BTP /d 2025-01-10"`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAdm(cmd.OutOrStdout(), strings.Join(args, " "))
		},
	}
}

func runAdm(out io.Writer, input string) error {
	tx, err := command.Parse(input)
	if err != nil {
		return err
	}
	return writeYAML(out, tx)
}
