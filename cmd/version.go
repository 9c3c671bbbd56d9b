package cmd

import (
	"runtime/debug"

	"github.com/spf13/cobra"

	"classdoc.dev/pkg/classdoc/internal/domain"
)

func newVersionCmd() *cobra.Command {
	var showStages bool

	cmd := &cobra.Command{
		Use:   "version",
		Short: "Show the version information",
		Long: `Displays the build version and Go version used to build classdoc.
With --stages it also lists the normalization stages in execution order.`,
		Run: func(cmd *cobra.Command, _ []string) {
			info, ok := debug.ReadBuildInfo()
			if !ok || info.Main.Version == "" {
				cmd.Println("version: unknown")
			} else {
				cmd.Println("classdoc version\t", info.Main.Version)
				cmd.Println("go version\t", info.GoVersion)
			}

			if !showStages {
				return
			}

			for _, stage := range domain.DefaultPipeline().Stages() {
				cmd.Printf("%-18s %s\n", string(stage.Event), stage.Name)
			}
		},
	}

	cmd.Flags().BoolVar(&showStages, "stages", false, "list the normalization stages")

	return cmd
}

// versionCmd represents the version command.
var versionCmd = newVersionCmd()

func init() {
	rootCmd.AddCommand(versionCmd)
}
