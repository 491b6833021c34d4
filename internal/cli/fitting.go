package cli

import (
	"github.com/spf13/cobra"

	"Ducted/internal/calc/air"
	"Ducted/internal/calc/duct"
	"Ducted/internal/calc/fitting"
)

func (a *app) newFittingCmd() *cobra.Command {
	var (
		params   string
		shape    string
		in       fitting.Input
		diameter float64
		width    float64
		height   float64
		cond     air.Conditions
	)
	cmd := &cobra.Command{
		Use:   "fitting <type>",
		Short: "Compute the pressure loss through one fitting",
		Example: `  ductcalc fitting elbow --params radius_ratio=1.5 --velocity 1200
  ductcalc fitting tee --params "path=branch;branch_angle_deg=45" --airflow 400 --diameter 8
  ductcalc fitting list`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if args[0] == "list" {
				entries := fitting.Catalog()
				return a.emit(entries, func() error { return catalogText(a.stdout, entries) })
			}
			cfg, err := fitting.ParseInline(args[0], params)
			if err != nil {
				return err
			}
			switch {
			case diameter > 0:
				g := duct.Round(diameter)
				in.Geometry = &g
			case width > 0 || height > 0:
				g := duct.Rectangular(width, height)
				in.Geometry = &g
			}
			// Dimensions imply the shape unless --shape is given.
			if in.Geometry == nil || cmd.Flags().Changed("shape") {
				s, err := duct.ParseShape(shape)
				if err != nil {
					return err
				}
				cfg.Shape = s
			}
			in.Fitting = cfg
			in.Conditions = &cond

			res, err := fitting.New(a.limits).Evaluate(in)
			if err != nil {
				return err
			}
			return a.emit(res, func() error { return fittingText(a.stdout, res) })
		},
	}

	f := cmd.Flags()
	f.StringVarP(&params, "params", "p", "", `fitting parameters as "key=value;key=value"`)
	f.StringVar(&shape, "shape", "round", "duct shape: round or rectangular (implied by dimensions)")
	f.Float64Var(&in.VelocityFPM, "velocity", 0, "duct velocity in FPM")
	f.Float64VarP(&in.AirflowCFM, "airflow", "q", 0, "airflow in CFM (needs dimensions)")
	f.Float64Var(&diameter, "diameter", 0, "round duct diameter in inches")
	f.Float64Var(&width, "width", 0, "rectangular duct width in inches")
	f.Float64Var(&height, "height", 0, "rectangular duct height in inches")
	addConditionFlags(cmd, &cond)
	return cmd
}
