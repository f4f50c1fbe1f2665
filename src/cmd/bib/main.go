package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"bibread/src/cmd/bib/cliutil"
	"bibread/src/cmd/bib/convertcmd"
	"bibread/src/cmd/bib/detectcmd"
	"bibread/src/cmd/bib/listcmd"
	"bibread/src/cmd/bib/showcmd"
	"bibread/src/internal/bibfile"
	"bibread/src/internal/config"
	"bibread/src/internal/logging"
)

func newRootCmd() *cobra.Command {
	var env *cliutil.Env
	root := &cobra.Command{
		Use:   "bib",
		Short: "Read BibTeX, CSL-JSON, EndNote and RIS bibliographies",
		Long: `bib detects the format of bibliography files and converts them into
CSL-JSON items.

Settings can also be given as BIB_FORMAT, BIB_OUTPUT and BIB_LOG_LEVEL
environment variables or in a .env file.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.New(cmd.Flags())
			if err != nil {
				return err
			}
			logger, err := logging.New(cfg.LogLevel)
			if err != nil {
				return err
			}
			env = &cliutil.Env{Config: cfg, Log: logger, Reader: bibfile.NewReader(bibfile.WithLogger(logger))}
			cmd.SetContext(cliutil.WithEnv(cmd.Context(), env))
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if env != nil {
				_ = env.Log.Sync()
			}
		},
	}
	config.Flags(root.PersistentFlags())

	root.AddCommand(detectcmd.New())
	root.AddCommand(listcmd.New())
	root.AddCommand(showcmd.New())
	root.AddCommand(convertcmd.New())
	return root
}

func main() {
	_ = godotenv.Load()
	if err := newRootCmd().Execute(); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
