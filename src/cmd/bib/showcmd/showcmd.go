package showcmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"bibread/src/cmd/bib/cliutil"
)

// New returns the show command, which prints one item of a file.
func New() *cobra.Command {
	cmd := &cobra.Command{
		Use:          "show <file> <id>",
		Short:        "Print one item as JSON, YAML or BibTeX",
		Args:         cobra.ExactArgs(2),
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
			it, ok := p.RetrieveItem(args[1])
			if !ok {
				return fmt.Errorf("%s: no item with id %q", args[0], args[1])
			}
			return cliutil.WriteItem(cmd.OutOrStdout(), env.Config.Output, it)
		},
	}
	return cmd
}
