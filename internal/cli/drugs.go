package cli

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"

	"pkpd-profile/internal/domain/drugs"

	"github.com/spf13/cobra"
)

func newDrugsCmd(e *env) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "drugs",
		Short: "Manage the local drug catalog (MIC, Vd, half-life)",
	}
	cmd.AddCommand(newDrugsListCmd(e))
	cmd.AddCommand(newDrugsImportCmd(e))
	cmd.AddCommand(newDrugsDeleteCmd(e))
	return cmd
}

func newDrugsListCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List catalog entries",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			list, err := e.app.Drugs.List(cmd.Context())
			if err != nil {
				return err
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "NAME\tMIC\tVD\tHALF_LIFE\tNOTES")
			for _, d := range list {
				mic := "-"
				if d.MIC != nil {
					mic = strconv.FormatFloat(*d.MIC, 'g', -1, 64)
				}
				fmt.Fprintf(tw, "%s\t%s\t%g\t%g\t%s\n", d.Name, mic, d.Vd, d.HalfLife, d.Notes)
			}
			return tw.Flush()
		},
	}
}

func newDrugsImportCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "import <file.csv>",
		Short: "Upsert drugs from a CSV with columns name,mic,vd,half_life[,notes]",
		Long: `Importa un CSV con columnas name,mic,vd,half_life y notes opcional.
La primera fila se toma como encabezado si su primera columna es "name".
Un mic vacío deja la droga sin MIC. Las filas se validan todas antes de escribir.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer f.Close()

			rows, err := readDrugsCSV(f)
			if err != nil {
				return err
			}

			var created, updated int
			for _, in := range rows {
				_, isNew, err := e.app.Drugs.Upsert(cmd.Context(), in)
				if err != nil {
					return fmt.Errorf("%s: %w", in.Name, err)
				}
				if isNew {
					created++
				} else {
					updated++
				}
			}
			fmt.Fprintf(cmd.OutOrStdout(), "imported %d drugs (%d created, %d updated)\n", len(rows), created, updated)
			return nil
		},
	}
}

func newDrugsDeleteCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <name>",
		Short: "Remove a drug from the catalog",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := e.app.Drugs.Delete(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "deleted %s\n", args[0])
			return nil
		},
	}
}

var errBadCSV = errors.New("invalid drugs csv")

func readDrugsCSV(r io.Reader) ([]drugs.UpsertInput, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errBadCSV, err)
	}

	out := make([]drugs.UpsertInput, 0, len(records))
	for i, rec := range records {
		line := i + 1
		if i == 0 && len(rec) > 0 && strings.EqualFold(strings.TrimSpace(rec[0]), "name") {
			continue
		}
		if len(rec) < 4 || len(rec) > 5 {
			return nil, fmt.Errorf("%w: line %d: expected 4 or 5 columns, got %d", errBadCSV, line, len(rec))
		}

		in := drugs.UpsertInput{Name: strings.TrimSpace(rec[0])}
		if s := strings.TrimSpace(rec[1]); s != "" {
			mic, err := strconv.ParseFloat(s, 64)
			if err != nil {
				return nil, fmt.Errorf("%w: line %d: mic %q", errBadCSV, line, s)
			}
			in.MIC = &mic
		}
		if in.Vd, err = strconv.ParseFloat(strings.TrimSpace(rec[2]), 64); err != nil {
			return nil, fmt.Errorf("%w: line %d: vd %q", errBadCSV, line, rec[2])
		}
		if in.HalfLife, err = strconv.ParseFloat(strings.TrimSpace(rec[3]), 64); err != nil {
			return nil, fmt.Errorf("%w: line %d: half_life %q", errBadCSV, line, rec[3])
		}
		if len(rec) == 5 {
			in.Notes = strings.TrimSpace(rec[4])
		}
		if err := in.Validate(); err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		out = append(out, in)
	}
	return out, nil
}
