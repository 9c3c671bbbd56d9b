package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"classdoc.dev/pkg/classdoc/internal/domain"
	m "classdoc.dev/pkg/classdoc/internal/model"
)

var viewRawFlag bool

// viewCmd represents the view command.
var viewCmd = newViewCmd()

func newViewCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "view <file>",
		Short: "Browse the records of a doclet file",
		Long: `Browse the records of one doclet file. Records are normalized in memory first
unless --raw is given; nothing is written.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return workflow.View(cmd.Context(), domain.ViewArgs{
				Path:      m.Path(args[0]),
				Normalize: !viewRawFlag,
				Augment:   viper.GetBool(normalizeAugmentKey),
			})
		},
	}

	cmd.Flags().BoolVar(&viewRawFlag, "raw", false, "show records as stored, without normalizing")

	return cmd
}

func init() {
	rootCmd.AddCommand(viewCmd)
}
