// Package cliutil holds state and helpers shared by the bib subcommands.
package cliutil

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"bibread/src/internal/bibfile"
	"bibread/src/internal/config"
	"bibread/src/internal/csl"
)

// Env is what the root command resolves before any subcommand runs.
type Env struct {
	Config *config.Config
	Log    *zap.Logger
	Reader *bibfile.Reader
}

type envKey struct{}

// WithEnv returns a copy of ctx carrying env.
func WithEnv(ctx context.Context, env *Env) context.Context {
	return context.WithValue(ctx, envKey{}, env)
}

// FromCommand returns the Env attached to cmd's context. Commands run on
// their own (as in tests) get one built from cmd's flags and the
// environment, with logging discarded.
func FromCommand(cmd *cobra.Command) (*Env, error) {
	if ctx := cmd.Context(); ctx != nil {
		if env, ok := ctx.Value(envKey{}).(*Env); ok && env != nil {
			return env, nil
		}
	}
	cfg, err := config.New(cmd.Flags())
	if err != nil {
		return nil, err
	}
	return &Env{Config: cfg, Log: zap.NewNop(), Reader: bibfile.NewReader()}, nil
}

// Load reads path with the configured format, detecting it when the
// format is auto.
func (e *Env) Load(path string) (csl.ItemDataProvider, error) {
	p, err := e.Reader.ReadFileFormat(path, e.Config.Format)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return p, nil
}
