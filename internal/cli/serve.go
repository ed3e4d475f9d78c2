package cli

import (
	"pkpd-profile/internal/platform/server"
	"pkpd-profile/internal/router"

	"github.com/spf13/cobra"
)

func newServeCmd(e *env) *cobra.Command {
	var port string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API and the interactive form",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if port == "" {
				port = e.cfg.Port
			}
			r := router.NewRouter(router.Options{
				Logger:   e.log,
				Drugs:    e.app.Drugs,
				Profiles: e.app.Profiles,
				Ready:    e.app.Ping,
			})
			return server.Run(cmd.Context(), ":"+port, r, e.log)
		},
	}

	cmd.Flags().StringVarP(&port, "port", "p", "", "port to listen on (default $PORT or 8080)")
	return cmd
}
