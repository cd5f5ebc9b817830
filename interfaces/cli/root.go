package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"sayitloud/infrastructure/config"
	"sayitloud/infrastructure/di"
	"sayitloud/infrastructure/transport"
)

// Execute runs the CLI.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:           "sayitloud",
	Short:         "SayItLoud terminal client",
	SilenceUsage:  true,
	SilenceErrors: false,
}

// newContainer builds the dependency container and hydrates the persisted
// session. The caller must defer c.Close().
func newContainer() (*di.Container, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	navigator := transport.NavigatorFunc(func() {
		fmt.Fprintln(os.Stderr, "session expired, please log in again")
	})

	c, err := di.InitializeContainer(cfg, navigator)
	if err != nil {
		return nil, fmt.Errorf("initializing: %w", err)
	}

	if err := c.Session.Hydrate(); err != nil {
		c.Close()
		return nil, fmt.Errorf("restoring session: %w", err)
	}
	return c, nil
}
