// Package cli implementa pkpdctl: cálculo de perfiles, administración del
// catálogo y servidor HTTP sobre las mismas dependencias que cmd/api.
package cli

import (
	"context"
	"io"
	"os"
	"os/signal"
	"syscall"

	"pkpd-profile/internal/app"
	"pkpd-profile/internal/platform/config"
	"pkpd-profile/internal/platform/logger"

	"github.com/spf13/cobra"
)

// env guarda lo que arma PersistentPreRunE para los subcomandos.
type env struct {
	cfg *config.Config
	log logger.Logger
	app *app.App
}

// Run ejecuta pkpdctl con args. Cierra la base al terminar, incluso si el
// comando falla.
func Run(ctx context.Context, args []string, out, errOut io.Writer) error {
	e := &env{}
	root := newRootCmd(e)
	root.SetArgs(args)
	root.SetOut(out)
	root.SetErr(errOut)

	defer func() {
		if e.app != nil {
			_ = e.app.Close()
		}
	}()
	return root.ExecuteContext(ctx)
}

func newRootCmd(e *env) *cobra.Command {
	var verbose bool

	root := &cobra.Command{
		Use:   "pkpdctl",
		Short: "PK/PD concentration profiles from the command line",
		Long: `pkpdctl calcula perfiles de concentración plasmática (modelo de un compartimento, ` +
			`dosis repetidas) contra el MIC y administra el catálogo local de drogas.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			e.cfg = cfg

			e.log = logger.Nop()
			if verbose || cmd.Name() == "serve" {
				e.log = logger.NewFromEnv()
			}

			a, err := app.New(cmd.Context(), cfg, e.log)
			if err != nil {
				return err
			}
			e.app = a
			return nil
		},
	}

	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log to stdout")

	root.AddCommand(newCalcCmd(e))
	root.AddCommand(newDrugsCmd(e))
	root.AddCommand(newServeCmd(e))
	return root
}

// Execute corre pkpdctl con os.Args. Llamado desde main.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := Run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	if err != nil {
		os.Exit(1)
	}
}
