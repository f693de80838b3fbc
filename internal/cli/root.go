package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"routekit/pkg/app"
	"routekit/pkg/config"
	"routekit/pkg/shared"
)

const ServiceName = "routekit"

func NewRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           ServiceName,
		Short:         "Route path normalization and value inspection service",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(newServeCommand(), newNormalizeCommand(), newRoutesCommand())
	return root
}

func newServeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP service (configured through environment variables)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(ServiceName)
			if err != nil {
				return err
			}
			cfg.LogConfiguration()

			application, err := app.NewApplication(cfg)
			if err != nil {
				return err
			}
			return application.Run(cmd.Context())
		},
	}
}

func newNormalizeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "normalize [path]...",
		Short: "Print the canonical form of each route path",
		Long:  "Print the canonical form of each route path. With no arguments the root path is printed.",
		RunE: func(cmd *cobra.Command, args []string) error {
			if shared.IsEmpty(args) {
				_, err := fmt.Fprintln(cmd.OutOrStdout(), shared.ValidatePathPtr(nil))
				return err
			}
			for _, arg := range args {
				if _, err := fmt.Fprintln(cmd.OutOrStdout(), shared.ValidatePath(arg)); err != nil {
					return err
				}
			}
			return nil
		},
	}
}

func newRoutesCommand() *cobra.Command {
	var prefix string

	cmd := &cobra.Command{
		Use:   "routes",
		Short: "List the routes the service registers",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(ServiceName)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("prefix") {
				cfg.GlobalPrefix = shared.ValidatePath(prefix)
			}

			application, err := app.NewApplication(cfg)
			if err != nil {
				return err
			}
			for _, r := range application.Routes() {
				if _, err := fmt.Fprintf(cmd.OutOrStdout(), "%-7s %s\n", r.Method, r.Path); err != nil {
					return err
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&prefix, "prefix", config.DefaultGlobalPrefix, "global route prefix (normalized)")
	return cmd
}
