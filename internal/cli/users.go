package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"nexventory/internal/ui/logic"
	"nexventory/internal/ui/views"
)

type usersFlags struct {
	output string
	filter string
	sort   string
}

// NewUsersCommand creates the "users" command
func NewUsersCommand(root *rootFlags) *cobra.Command {
	flags := &usersFlags{}

	cmd := &cobra.Command{
		Use:   "users",
		Short: "List users in the directory",
		Long: `List users in the directory.

The filter takes the same terms as the console's filter line, for example
"role:admin region:gru" or "status:locked".`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runUsers(cmd.OutOrStdout(), root, flags)
		},
	}

	cmd.Flags().StringVarP(&flags.output, "output", "o", "table", "output format: table, yaml, json")
	cmd.Flags().StringVar(&flags.filter, "filter", "", "only list users matching these terms")
	cmd.Flags().StringVar(&flags.sort, "sort", "username", "sort by username, name, role, status or created")

	return cmd
}

func runUsers(out io.Writer, root *rootFlags, flags *usersFlags) error {
	mode, ok := logic.ParseSortMode(flags.sort)
	if !ok {
		return fmt.Errorf("unknown sort %q", flags.sort)
	}

	a, err := root.setup()
	if err != nil {
		return err
	}
	defer a.Close()

	users := logic.NewUserFilter().Apply(a.store.Users(), flags.filter)
	logic.SortUsers(users, mode)

	switch strings.ToLower(flags.output) {
	case "table", "":
		_, err = fmt.Fprintln(out, views.NewUserTable(views.NewStyles()).Render(users, -1, 0, 0))
		return err
	case "yaml", "yml":
		return writeYAML(out, users)
	case "json":
		return writeJSON(out, users)
	}
	return fmt.Errorf("unknown output format %q (want table, yaml or json)", flags.output)
}

func writeYAML(out io.Writer, v any) error {
	enc := yaml.NewEncoder(out)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("failed to encode yaml: %w", err)
	}
	return enc.Close()
}

func writeJSON(out io.Writer, v any) error {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("failed to encode json: %w", err)
	}
	return nil
}
