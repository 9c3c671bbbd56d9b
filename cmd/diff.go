package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"classdoc.dev/pkg/classdoc/internal/domain"
)

var diffColorFlag bool

// diffCmd represents the diff command.
var diffCmd = newDiffCmd()

func newDiffCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "diff [paths...]",
		Short: "Preview normalization changes",
		Long:  diffLongDescription,
		RunE: func(cmd *cobra.Command, args []string) error {
			return workflow.Diff(cmd.Context(), domain.DiffArgs{
				Paths:    parsePaths(args),
				Include:  viper.GetStringSlice(includeConfigKey),
				Exclude:  viper.GetStringSlice(excludeConfigKey),
				Parallel: viper.GetInt(normalizeParallelKey),
				Augment:  viper.GetBool(normalizeAugmentKey),
				Color:    viper.GetBool(diffColorKey),
			})
		},
	}

	cmd.Flags().BoolVar(&diffColorFlag, colorFlagName, viper.GetBool(diffColorKey), "color added and removed lines")
	bindFlagToConfig(cmd.Flags().Lookup(colorFlagName), diffColorKey)

	return cmd
}

func init() {
	rootCmd.AddCommand(diffCmd)
}
