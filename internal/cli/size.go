package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"Ducted/internal/calc/air"
	"Ducted/internal/calc/batch"
	"Ducted/internal/calc/duct"
	"Ducted/internal/calc/sizing"
)

func (a *app) newSizeCmd() *cobra.Command {
	var (
		in        sizing.Input
		cond      air.Conditions
		shape     string
		batchFile string
	)
	cmd := &cobra.Command{
		Use:   "size",
		Short: "Size a round or rectangular duct for an airflow",
		Example: `  ductcalc size --airflow 1200 --velocity 900
  ductcalc size --airflow 2000 --shape rect --friction-rate 0.08 --aspect 3
  ductcalc size --batch ducts.yaml --format text`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := loggerFromContext(cmd.Context())
			sizer := sizing.New(a.limits)

			if batchFile != "" {
				var bi batch.Input
				if err := readYAML(batchFile, &bi); err != nil {
					return err
				}
				p := newProgress(logger)
				res, err := batch.Size(sizer, bi)
				if err != nil {
					return err
				}
				p.done("batch sized", "items", len(bi.Items), "failed", res.Failed)
				return a.emit(res, func() error { return batchText(a.stdout, res) })
			}

			if shape != "" {
				s, err := duct.ParseShape(shape)
				if err != nil {
					return err
				}
				in.Shape = s
			}
			in.Conditions = &cond
			res, err := sizer.Size(in)
			if err != nil {
				return err
			}
			logger.Debug("sized", "method", res.Method, "geometry", res.Geometry.String())
			return a.emit(res, func() error { return sizeText(a.stdout, res) })
		},
	}

	f := cmd.Flags()
	f.Float64VarP(&in.AirflowCFM, "airflow", "q", 0, "airflow in CFM")
	f.StringVar(&shape, "shape", "round", "duct shape: round or rectangular")
	f.Float64Var(&in.TargetVelocityFPM, "velocity", 0, "target velocity in FPM (velocity method)")
	f.Float64Var(&in.FrictionRate, "friction-rate", 0, "friction rate in in. w.g. per 100 ft (equal-friction method)")
	f.Float64Var(&in.AspectRatio, "aspect", 0, "rectangular aspect ratio (default from standards)")
	f.StringVar((*string)(&in.Material), "material", "", "duct material (default galvanized_steel)")
	f.StringVar((*string)(&in.SystemType), "system-type", "", "supply, return or exhaust (default supply)")
	f.StringVar((*string)(&in.Location), "location", "", "occupied or unoccupied")
	f.Float64Var(&in.Constraints.MaxDiameterIn, "max-diameter", 0, "largest allowed diameter in inches")
	f.Float64Var(&in.Constraints.MaxHeightIn, "max-height", 0, "largest allowed rectangular height in inches")
	addConditionFlags(cmd, &cond)
	f.StringVar(&batchFile, "batch", "", "YAML or JSON file with a list of items to size")
	return cmd
}

func addConditionFlags(cmd *cobra.Command, c *air.Conditions) {
	f := cmd.Flags()
	f.Float64Var(&c.TemperatureF, "temp", air.StandardConditions().TemperatureF, "air temperature in °F")
	f.Float64Var(&c.AltitudeFt, "altitude", 0, "site altitude in ft")
	f.Float64Var(&c.BarometricInHg, "barometric", 0, "measured barometric pressure in in. Hg (overrides altitude)")
	f.Float64Var(&c.RelativeHumidity, "rh", 0, "relative humidity in percent")
}

// readYAML decodes a YAML or JSON file, rejecting unknown keys.
func readYAML(path string, v any) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()
	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	return nil
}
