package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var initForceFlag bool

// initCmd represents the init command.
var initCmd = newInitCmd()

func newInitCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Generate a default classdoc.yaml configuration file",
		Long: `Create a classdoc.yaml in the current working directory holding the default
value of every setting, ready to be edited. Existing files are kept unless --force is given.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			targetPath := filepath.Join(configFolderPath, configFileName)

			if err := writeDefaultConfig(targetPath, initForceFlag); err != nil {
				return fmt.Errorf("failed to write config file: %w", err)
			}

			cmd.Printf("Wrote %s\n", targetPath)

			return nil
		},
	}

	cmd.Flags().BoolVar(&initForceFlag, "force", false, "overwrite an existing configuration file")

	return cmd
}

func init() {
	rootCmd.AddCommand(initCmd)
}

// writeDefaultConfig writes the defaults only, so flags and environment of the current
// invocation never leak into the generated file.
func writeDefaultConfig(path string, force bool) error {
	v := viper.New()
	v.SetConfigType("yaml")

	for key, value := range configDefaults() {
		v.Set(key, value)
	}

	if force {
		return v.WriteConfigAs(path)
	}

	return v.SafeWriteConfigAs(path)
}
