package convertcmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"bibread/src/cmd/bib/cliutil"
	"bibread/src/internal/csl"
)

// New returns the convert command. Items of all inputs are merged in the
// order the files are given; a later item replaces an earlier one with the
// same id.
func New() *cobra.Command {
	var out string
	cmd := &cobra.Command{
		Use:          "convert <file>...",
		Short:        "Merge bibliography files and write them as JSON, YAML or BibTeX",
		Args:         cobra.MinimumNArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := cliutil.FromCommand(cmd)
			if err != nil {
				return err
			}
			merged := csl.NewListProvider()
			for _, path := range args {
				p, err := env.Load(path)
				if err != nil {
					return err
				}
				items := csl.Collect(p)
				env.Log.Debug("merging", zap.String("path", path), zap.Int("items", len(items)))
				merged.Add(items...)
			}

			if out == "" || out == "-" {
				return cliutil.WriteItems(cmd.OutOrStdout(), env.Config.Output, merged.Items())
			}
			f, err := os.Create(out)
			if err != nil {
				return err
			}
			if err := cliutil.WriteItems(f, env.Config.Output, merged.Items()); err != nil {
				_ = f.Close()
				return err
			}
			if err := f.Close(); err != nil {
				return err
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "wrote %d items to %s\n", merged.Len(), out)
			return err
		},
	}
	cmd.Flags().StringVarP(&out, "out", "o", "", "Output file path (default stdout)")
	return cmd
}
