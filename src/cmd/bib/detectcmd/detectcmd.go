package detectcmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"bibread/src/cmd/bib/cliutil"
	"bibread/src/internal/bibfile"
)

// New returns the detect command, which prints the sniffed format of each file.
func New() *cobra.Command {
	cmd := &cobra.Command{
		Use:          "detect <file>...",
		Short:        "Print the detected bibliography format of each file",
		Args:         cobra.MinimumNArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := cliutil.FromCommand(cmd)
			if err != nil {
				return err
			}
			for _, path := range args {
				f, err := bibfile.DetectFile(path)
				if err != nil {
					return fmt.Errorf("%s: %w", path, err)
				}
				env.Log.Debug("detected", zap.String("path", path), zap.Stringer("format", f))
				if _, err := fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", path, f); err != nil {
					return err
				}
			}
			return nil
		},
	}
	return cmd
}
