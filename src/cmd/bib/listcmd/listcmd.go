package listcmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"bibread/src/cmd/bib/cliutil"
)

// New returns the list command, which prints every item id of a file.
func New() *cobra.Command {
	cmd := &cobra.Command{
		Use:          "list <file>",
		Short:        "List the item ids of a bibliography file",
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := cliutil.FromCommand(cmd)
			if err != nil {
				return err
			}
			p, err := env.Load(args[0])
			if err != nil {
				return err
			}
			for _, id := range p.IDs() {
				if _, err := fmt.Fprintln(cmd.OutOrStdout(), id); err != nil {
					return err
				}
			}
			return nil
		},
	}
	return cmd
}
