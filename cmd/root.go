// Package cmd provides the root command and CLI setup for classdoc.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"classdoc.dev/pkg/classdoc/internal/adapter"
	"classdoc.dev/pkg/classdoc/internal/controller"
	"classdoc.dev/pkg/classdoc/internal/domain"
	m "classdoc.dev/pkg/classdoc/internal/model"
)

var fsAdapter adapter.SourceFSAdapter
var docletStore adapter.DocletStore
var reportStore adapter.ReportStore
var augmenter adapter.Augmenter
var workflow domain.Workflow
var ui controller.UI

// outputDirFlag is a root-level flag shared by commands that write normalized files.
var outputDirFlag string

// includePatterns and excludePatterns filter discovered doclet files for applicable commands.
var includePatterns []string
var excludePatterns []string

var verboseFlag bool
var logFileFlag string

func init() {
	configureRootFlags(rootCmd)

	// Initialize shared dependencies.
	ui = controller.NewUI(rootCmd, controller.IsTTY(os.Stdout))
	fsAdapter = adapter.NewLocalSourceFSAdapter()
	docletStore = adapter.NewDocletStore(fsAdapter)
	reportStore = adapter.NewReportStore(fsAdapter)
	augmenter = adapter.NewMixinAugmenter()
	workflow = domain.NewWorkflow(
		fsAdapter,
		docletStore,
		reportStore,
		augmenter,
		ui,
		domain.DefaultPipeline(),
	)
}

const pathPatternsHelp = `Supports Go-style path patterns:
  - ./...          recursively scan current directory
  - ./docs/...     recursively scan docs directory
  - ./a.json ./b   a single file and one directory`

const rootLongDescription = `Classdoc normalizes the doclet records a JavaScript documentation extractor
emits for modern class syntax: private members, static members, bound arrow
fields and default exports get consistent names, scopes and longnames.

` + pathPatternsHelp

const normalizeLongDescription = `Normalize doclet files and write the results next to each input
(name.normalized.ext) or into the --output directory.

` + pathPatternsHelp

const diffLongDescription = `Show what normalization would change without writing any file.

` + pathPatternsHelp

// rootCmd represents the base command when called without any subcommands.
var rootCmd = newRootCmd()

func newRootCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "classdoc",
		Short: "Doclet normalization for class-based JavaScript",
		Long:  rootLongDescription,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			configureLogger(logFileFlag, verboseFlag || viper.GetBool(logVerboseKey))
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}
}

func configureRootFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().
		StringVarP(
			&outputDirFlag, outputFlagName, "o",
			viper.GetString(outputFlagName),
			"output directory for normalized doclet files (default: next to each input)",
		)
	bindFlagToConfig(cmd.PersistentFlags().Lookup(outputFlagName), outputFlagName)

	cmd.PersistentFlags().StringArrayVarP(&includePatterns, includeFlagName, "i", viper.GetStringSlice(includeConfigKey), "include files matching glob (can be repeated)")
	bindFlagToConfig(cmd.PersistentFlags().Lookup(includeFlagName), includeConfigKey)

	cmd.PersistentFlags().StringArrayVarP(&excludePatterns, excludeFlagName, "x", viper.GetStringSlice(excludeConfigKey), "exclude files matching regex (can be repeated)")
	bindFlagToConfig(cmd.PersistentFlags().Lookup(excludeFlagName), excludeConfigKey)

	cmd.PersistentFlags().BoolVarP(&verboseFlag, verboseFlagName, "v", viper.GetBool(logVerboseKey), "log every record change at debug level")
	bindFlagToConfig(cmd.PersistentFlags().Lookup(verboseFlagName), logVerboseKey)

	cmd.PersistentFlags().StringVar(&logFileFlag, logFileFlagName, viper.GetString(logFilenameKey), "log file path")
	bindFlagToConfig(cmd.PersistentFlags().Lookup(logFileFlagName), logFilenameKey)
}

// bindFlagToConfig wires a Cobra flag to a Viper key so config/env values feed the flag.
func bindFlagToConfig(flag *pflag.Flag, key string) {
	if flag == nil {
		cobra.CheckErr(fmt.Errorf("flag for config key %q not found", key))
		return
	}

	cobra.CheckErr(viper.BindPFlag(key, flag))
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func parsePaths(args []string) []m.Path {
	paths := make([]m.Path, 0, len(args))
	for _, arg := range args {
		paths = append(paths, m.Path(arg))
	}

	return paths
}
