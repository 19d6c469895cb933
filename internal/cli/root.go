package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/aalvaropc/factura/internal/infra/logger"
	"github.com/aalvaropc/factura/internal/infra/workspacefinder"
)

func Execute() {
	cmd := newRootCmd()
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var debug bool

	cmd := &cobra.Command{
		Use:          "factura",
		Short:        "Factura is an invoice persistence toolkit",
		SilenceUsage: true,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			wd, err := os.Getwd()
			if err != nil {
				wd = "."
			}

			// Logging is best effort and only lands inside a workspace;
			// commands outside one still run with a discard logger.
			if root, ferr := workspacefinder.NewFinder().FindRoot(wd); ferr == nil && root != "" {
				_, _ = logger.Setup(logger.Config{
					Root:  root,
					Debug: debug,
				})
			}
		},
	}

	cmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable verbose logging to .factura/logs/factura.log")

	cmd.AddCommand(initCmd())
	cmd.AddCommand(saveCmd())
	cmd.AddCommand(validateCmd())
	cmd.AddCommand(invoicesCmd())
	cmd.AddCommand(typesCmd())
	cmd.AddCommand(versionCmd())

	return cmd
}
