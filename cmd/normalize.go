package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"classdoc.dev/pkg/classdoc/internal/domain"
	m "classdoc.dev/pkg/classdoc/internal/model"
)

var normalizeParallelFlag int
var normalizeFormatFlag string
var normalizeAugmentFlag bool
var normalizeReportFlag string

// normalizeCmd represents the normalize command.
var normalizeCmd = newNormalizeCmd()

func newNormalizeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "normalize [paths...]",
		Short: "Normalize doclet files",
		Long:  normalizeLongDescription,
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := parseFormat(viper.GetString(normalizeFormatKey))
			if err != nil {
				return err
			}

			return workflow.Normalize(cmd.Context(), domain.NormalizeArgs{
				Paths:    parsePaths(args),
				Include:  viper.GetStringSlice(includeConfigKey),
				Exclude:  viper.GetStringSlice(excludeConfigKey),
				Output:   m.Path(viper.GetString(outputFlagName)),
				Format:   format,
				Parallel: viper.GetInt(normalizeParallelKey),
				Augment:  viper.GetBool(normalizeAugmentKey),
				Report:   m.Path(viper.GetString(normalizeReportKey)),
			})
		},
	}

	configureNormalizeFlags(cmd)

	return cmd
}

func init() {
	rootCmd.AddCommand(normalizeCmd)
}

func configureNormalizeFlags(cmd *cobra.Command) {
	cmd.Flags().IntVarP(&normalizeParallelFlag, parallelFlagName, "p", viper.GetInt(normalizeParallelKey), "number of files normalized in parallel")
	bindFlagToConfig(cmd.Flags().Lookup(parallelFlagName), normalizeParallelKey)

	cmd.Flags().StringVarP(&normalizeFormatFlag, formatFlagName, "f", viper.GetString(normalizeFormatKey), "output format: json, yaml or msgpack (default: same as input)")
	bindFlagToConfig(cmd.Flags().Lookup(formatFlagName), normalizeFormatKey)

	cmd.Flags().BoolVar(&normalizeAugmentFlag, augmentFlagName, viper.GetBool(normalizeAugmentKey), "copy mixin members into classes before the final pass")
	bindFlagToConfig(cmd.Flags().Lookup(augmentFlagName), normalizeAugmentKey)

	cmd.Flags().StringVar(&normalizeReportFlag, reportFlagName, viper.GetString(normalizeReportKey), "write the run summary to this file (.json, .yaml or .msgpack)")
	bindFlagToConfig(cmd.Flags().Lookup(reportFlagName), normalizeReportKey)
}
