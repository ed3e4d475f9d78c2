package cli

import (
	"fmt"
	"os"
	"strings"

	"pkpd-profile/internal/domain/profiles"
	"pkpd-profile/internal/ports/render"

	"github.com/spf13/cobra"
)

func newCalcCmd(e *env) *cobra.Command {
	var (
		req  profiles.Request
		out  string
		full bool
	)

	cmd := &cobra.Command{
		Use:   "calc",
		Short: "Compute a concentration-time profile for a drug",
		Example: `  pkpdctl calc --drug amoxicillin --dose 500 --frequency 3
  pkpdctl calc --drug vancomycin --dose 1000 --frequency 2 --source pubchem --out vanco.png`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if out != "" {
				f, err := formatFromPath(out)
				if err != nil {
					return err
				}
				req.Render = f
			}

			p, err := e.app.Profiles.Calculate(cmd.Context(), req)
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "%s\n", profiles.PlotFor(p).Title)
			fmt.Fprintf(w, "source: %s", p.Params.Origin)
			if p.Params.Stub {
				fmt.Fprint(w, " (placeholder parameters, not clinical data)")
			}
			fmt.Fprintln(w)
			fmt.Fprintf(w, "half-life: %.4g h  ke: %.4g 1/h  vd: %.4g\n", p.Params.HalfLife, p.Ke, p.Params.Vd)
			fmt.Fprintf(w, "peak: %.4g at %.4g h  trough: %.4g  auc: %.4g\n",
				p.Summary.Peak, p.Summary.TimeOfPeak, p.Summary.Trough, p.Summary.AUC)
			if p.Params.MIC != nil && p.Summary.TimeAboveMIC != nil {
				fmt.Fprintf(w, "mic: %.4g  time above mic: %.4g h (%.1f%%)\n",
					*p.Params.MIC, *p.Summary.TimeAboveMIC, *p.Summary.FractionAboveMIC*100)
			}

			if full {
				fmt.Fprintln(w, "time_h\tconcentration")
				for i, t := range p.Series.TimePoints {
					fmt.Fprintf(w, "%.6g\t%.6g\n", t, p.Series.Concentrations[i])
				}
			}

			if out != "" {
				if err := os.WriteFile(out, p.Plot, 0o644); err != nil {
					return fmt.Errorf("write plot: %w", err)
				}
				fmt.Fprintf(w, "plot written to %s\n", out)
			}
			return nil
		},
	}

	f := cmd.Flags()
	f.StringVar(&req.Drug, "drug", "", "drug name")
	f.Float64Var(&req.Dose, "dose", 0, "dose in mg")
	f.IntVar(&req.Frequency, "frequency", 1, "doses per 24h")
	f.StringVar(&req.Source, "source", "", "parameter source (catalog|pubchem|auto)")
	f.Float64Var(&req.Hours, "hours", 0, "time window in hours (default 24)")
	f.IntVar(&req.Points, "points", 0, "grid points (default 100)")
	f.StringVar(&out, "out", "", "write the plot to `file` (.png or .svg)")
	f.BoolVar(&full, "series", false, "print the full time series")
	_ = cmd.MarkFlagRequired("drug")
	_ = cmd.MarkFlagRequired("dose")

	return cmd
}

func formatFromPath(path string) (render.Format, error) {
	switch {
	case strings.HasSuffix(strings.ToLower(path), ".png"):
		return render.FormatPNG, nil
	case strings.HasSuffix(strings.ToLower(path), ".svg"):
		return render.FormatSVG, nil
	default:
		return "", fmt.Errorf("%w: %s", render.ErrUnsupportedFormat, path)
	}
}
