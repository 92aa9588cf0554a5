package main

import (
	"context"
	"errors"
	"os"

	"github.com/indaco/csprojver/internal/apperrors"
	"github.com/indaco/csprojver/internal/cli"
	"github.com/indaco/csprojver/internal/config"
	"github.com/indaco/csprojver/internal/host"
)

func main() {
	if err := runCLI(os.Args); err != nil {
		var runErr *cli.RunError
		if !errors.As(err, &runErr) {
			host.Detect(nil).SetFailed(err.Error())
		}
		os.Exit(apperrors.ExitCode(err))
	}
}

// runCLI loads the configuration and runs the root command with args.
// A configuration that fails to load is reported to the host before any flag
// is parsed.
func runCLI(args []string) error {
	cfg, err := config.LoadConfigFn()
	if err != nil {
		cfgErr := &apperrors.ConfigurationError{Input: "config", Message: err.Error()}
		host.Detect(nil).SetFailed(cfgErr.Error())
		return &cli.RunError{Err: cfgErr}
	}

	return cli.New(cfg).Run(context.Background(), args)
}
