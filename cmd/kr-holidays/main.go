package main

import (
	"fmt"
	"os"

	"github.com/g-rebels/kr-holiday/internal/config"
	"github.com/g-rebels/kr-holiday/pkg/dataset"
	"github.com/g-rebels/kr-holiday/pkg/krholidays"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

var (
	configPath   string
	outputFormat string
	cfg          *config.Config
	logger       *zap.Logger
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if logger != nil {
		_ = logger.Sync()
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "kr-holidays",
		Short:         "Korean public holiday calendar",
		Long:          "Query Korean public holidays, substitute holidays and working days for 2010-2040, generate year files and serve them over HTTP",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			var err error
			cfg, err = config.Load(configPath)
			if err != nil {
				return err
			}

			if cfg.Log.File != "" {
				logger, err = initFileLogger(cfg.Log.File, cfg.Log.Level)
				if err != nil {
					initLogger(cfg.Log.Level) // Fallback to console
				}
			} else {
				initLogger(cfg.Log.Level)
			}

			return validateFormat(outputFormat)
		},
	}

	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Config file path")
	rootCmd.PersistentFlags().StringVarP(&outputFormat, "format", "o", formatText, "Output format: text, json, csv, yaml")

	rootCmd.AddCommand(
		checkCmd(),
		holidaysCmd(),
		nextCmd(),
		summaryCmd(),
		yearsCmd(),
		workdaysCmd(),
		generateCmd(),
		serveCmd(),
	)

	return rootCmd
}

// newCalendar serves the embedded dataset, overridden per year by files
// in dataset.dir when configured.
func newCalendar() (*krholidays.KoreanHolidays, error) {
	if cfg == nil || cfg.Dataset.Dir == "" {
		return krholidays.New(krholidays.WithLogger(logger)), nil
	}

	local, err := dataset.NewDirSource(cfg.Dataset.Dir)
	if err != nil {
		return nil, fmt.Errorf("failed to open dataset.dir: %w", err)
	}
	logger.Debug("Using local dataset directory",
		zap.String("dir", cfg.Dataset.Dir),
		zap.Ints("years", local.Years()))

	return krholidays.New(
		krholidays.WithSource(dataset.NewCompositeSource(local, dataset.Embedded(), logger)),
		krholidays.WithLogger(logger),
	), nil
}

func initLogger(level string) {
	config := zap.NewProductionConfig()
	config.EncoderConfig.TimeKey = "timestamp"
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	config.Level = zap.NewAtomicLevelAt(parseLevel(level))

	var err error
	logger, err = config.Build()
	if err != nil {
		panic(fmt.Sprintf("failed to initialize logger: %v", err))
	}
}

func initFileLogger(logFile string, level string) (*zap.Logger, error) {
	// Setup lumberjack for log rotation
	logWriter := &lumberjack.Logger{
		Filename:   logFile,
		MaxSize:    100, // MB
		MaxBackups: 3,
		MaxAge:     28, // days
		Compress:   true,
	}

	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.TimeKey = "timestamp"
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	core := zapcore.NewCore(
		zapcore.NewJSONEncoder(encoderConfig),
		zapcore.AddSync(logWriter),
		parseLevel(level),
	)

	return zap.New(core), nil
}

func parseLevel(level string) zapcore.Level {
	var zapLevel zapcore.Level
	if err := zapLevel.UnmarshalText([]byte(level)); err != nil {
		return zapcore.InfoLevel
	}
	return zapLevel
}
