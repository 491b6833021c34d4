package cli

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"Ducted/internal/calc/importer"
	"Ducted/internal/calc/system"
)

func (a *app) newSystemCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "system <file>",
		Short: "Aggregate the pressure loss of a duct run",
		Long: `Reads a topology from a JSON or YAML file, or an .xlsx workbook with one
segment per row, and sums friction and fitting losses along it.`,
		Example: `  ductcalc system ahu1.yaml --format text
  ductcalc system level3.xlsx`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := loggerFromContext(cmd.Context())
			t, err := loadTopology(args[0])
			if err != nil {
				return err
			}
			p := newProgress(logger)
			res, err := system.New(a.limits).Aggregate(t)
			if err != nil {
				return err
			}
			p.done("aggregated", "segments", len(res.Segments))
			return a.emit(res, func() error { return systemText(a.stdout, res) })
		},
	}
}

func loadTopology(path string) (system.Topology, error) {
	if strings.EqualFold(filepath.Ext(path), ".xlsx") {
		f, err := os.Open(path)
		if err != nil {
			return system.Topology{}, err
		}
		defer f.Close()
		return importer.Read(f)
	}
	return system.LoadFile(path)
}
