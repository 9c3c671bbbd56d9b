package cmd

import (
	"errors"
	"log/slog"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/viper"
	"gopkg.in/natefinch/lumberjack.v2"

	"classdoc.dev/pkg/classdoc/internal/adapter"
)

const (
	configVersionKey     = "version"
	currentConfigVersion = 1

	configBaseName   = "classdoc"
	configFileName   = configBaseName + ".yaml"
	configFolderPath = "."

	outputFlagName   = "output"
	includeFlagName  = "include"
	excludeFlagName  = "exclude"
	parallelFlagName = "parallel"
	formatFlagName   = "format"
	augmentFlagName  = "augment"
	reportFlagName   = "report"
	colorFlagName    = "color"
	verboseFlagName  = "verbose"
	logFileFlagName  = "log-file"

	normalizeParallelKey = "normalize.parallel"
	normalizeFormatKey   = "normalize.format"
	normalizeAugmentKey  = "normalize.augment"
	normalizeReportKey   = "normalize.report"
	includeConfigKey     = "paths.include"
	excludeConfigKey     = "paths.exclude"
	diffColorKey         = "diff.color"

	defaultOutputDir         = ""
	defaultNormalizeParallel = 1
	defaultNormalizeFormat   = ""
	defaultNormalizeAugment  = true
	defaultNormalizeReport   = ""
	defaultDiffColor         = true

	envPrefix = "CLASSDOC"

	logFilenameKey   = "log.filename"
	logLevelKey      = "log.level"
	logVerboseKey    = "log.verbose"
	logMaxSizeKey    = "log.max_size"
	logMaxBackupsKey = "log.max_backups"
	logMaxAgeKey     = "log.max_age"
	logCompressKey   = "log.compress"

	defaultLogFilename   = ".classdoc.log"
	defaultLogLevel      = int(slog.LevelInfo)
	defaultLogVerbose    = false
	defaultLogMaxSize    = 10
	defaultLogMaxBackups = 3
	defaultLogMaxAge     = 28
	defaultLogCompress   = true
)

var globalLogger *slog.Logger

func init() {
	viper.SetConfigName(configBaseName)
	viper.SetConfigType("yaml")
	viper.AddConfigPath(configFolderPath)
	viper.SetConfigFile(filepath.Join(configFolderPath, configFileName))
	viper.AutomaticEnv()
	viper.SetEnvPrefix(envPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))

	for key, value := range configDefaults() {
		viper.SetDefault(key, value)
	}

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return
		}

		return
	}
}

// configDefaults lists every configuration key with its default value.
func configDefaults() map[string]any {
	return map[string]any{
		configVersionKey:     currentConfigVersion,
		outputFlagName:       defaultOutputDir,
		normalizeParallelKey: defaultNormalizeParallel,
		normalizeFormatKey:   defaultNormalizeFormat,
		normalizeAugmentKey:  defaultNormalizeAugment,
		normalizeReportKey:   defaultNormalizeReport,
		includeConfigKey:     adapter.DefaultIncludePatterns,
		excludeConfigKey:     []string{},
		diffColorKey:         defaultDiffColor,

		logFilenameKey:   defaultLogFilename,
		logLevelKey:      defaultLogLevel,
		logVerboseKey:    defaultLogVerbose,
		logMaxSizeKey:    defaultLogMaxSize,
		logMaxBackupsKey: defaultLogMaxBackups,
		logMaxAgeKey:     defaultLogMaxAge,
		logCompressKey:   defaultLogCompress,
	}
}

func parseSlogLevel(value string, defaultLevel slog.Level) slog.Level {
	level := strings.ToLower(strings.TrimSpace(value))
	if level == "" {
		return defaultLevel
	}

	switch level {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	}

	// Allow numeric slog levels as well (e.g. -4 for debug).
	if n, err := strconv.Atoi(level); err == nil {
		return slog.Level(n)
	}

	return defaultLevel
}

// configureLogger configures the global slog logger.
//
// By default it logs at Info; if verbose is true it logs at Debug, which includes one
// line per record a normalization stage changed.
func configureLogger(logPath string, verbose bool) {
	if strings.TrimSpace(logPath) == "" {
		logPath = viper.GetString(logFilenameKey)
	}

	if strings.TrimSpace(logPath) == "" {
		logPath = defaultLogFilename
	}

	var logLevel slog.Level
	if verbose {
		logLevel = slog.LevelDebug
	} else {
		logLevel = parseSlogLevel(viper.GetString(logLevelKey), slog.LevelInfo)
	}

	logWriter := &lumberjack.Logger{
		Filename:   logPath,
		MaxSize:    viper.GetInt(logMaxSizeKey),
		MaxBackups: viper.GetInt(logMaxBackupsKey),
		MaxAge:     viper.GetInt(logMaxAgeKey),
		Compress:   viper.GetBool(logCompressKey),
	}

	handler := slog.NewTextHandler(logWriter, &slog.HandlerOptions{
		AddSource: true,
		Level:     logLevel,
	})

	globalLogger = slog.New(handler)
	slog.SetDefault(globalLogger)
}
