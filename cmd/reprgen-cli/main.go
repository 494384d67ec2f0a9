package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type app struct {
	verbose   bool
	logger    *zap.Logger
	prompter  prompter
	newLogger func(verbose bool) (*zap.Logger, error)
}

func newApp() *app {
	return &app{
		logger:    zap.NewNop(),
		prompter:  surveyPrompter{},
		newLogger: productionLogger,
	}
}

func productionLogger(verbose bool) (*zap.Logger, error) {
	config := zap.NewProductionConfig()
	if verbose {
		config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	return config.Build()
}

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:   "reprgen",
		Short: "Render reprs of classes declared in YAML documents",
		Long: `reprgen loads declaration documents (YAML or JSON) describing classes,
their repr declarations and sample instances, and prints the instances'
representations.

Example:
  reprgen render --spec shapes.yaml --instance circle
  reprgen classes --spec ./specs
  reprgen check ./specs`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			logger, err := a.newLogger(a.verbose)
			if err != nil {
				return fmt.Errorf("failed to initialize logger: %w", err)
			}
			a.logger = logger
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.logger != nil {
				_ = a.logger.Sync()
			}
		},
	}
	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "enable debug logging")

	root.AddCommand(newRenderCmd(a))
	root.AddCommand(newClassesCmd(a))
	root.AddCommand(newCheckCmd(a))
	return root
}

func main() {
	if err := newRootCmd(newApp()).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
