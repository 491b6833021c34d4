package cli

import (
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

func (a *app) newStandardsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "standards",
		Short: "Print the standards table in effect",
		Long: `Prints the velocity limits, size series, roughness table and fitting
loss coefficients the calculators use. With --format text the table is
printed as YAML, which is also the format --standards accepts.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			spec := a.limits.Spec()
			return a.emit(spec, func() error {
				enc := yaml.NewEncoder(a.stdout)
				enc.SetIndent(2)
				defer enc.Close()
				return enc.Encode(spec)
			})
		},
	}
}
