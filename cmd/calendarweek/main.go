package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/username/calendarweek/internal/autostart"
	"github.com/username/calendarweek/internal/calendar"
	"github.com/username/calendarweek/internal/config"
	"github.com/username/calendarweek/internal/daemon"
	"github.com/username/calendarweek/internal/instance"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

const appName = "CalendarWeek"

var (
	configPath string
	cfg        *config.Config
	logger     *zap.Logger
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "calendarweek",
		Short: "ISO week number in the system tray",
		Long:  "Shows the current ISO 8601 week number as a tray icon and opens a full-year calendar with week numbers",
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
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if logger != nil {
				_ = logger.Sync()
			}
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTray(cmd)
		},
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Config file path (default: search ./config.yaml, ~/.calendarweek, user config dir)")

	rootCmd.AddCommand(weekCmd())
	rootCmd.AddCommand(calendarCmd())
	rootCmd.AddCommand(autostartCmd())
	rootCmd.AddCommand(showCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func runTray(cmd *cobra.Command) error {
	addr := cfg.Instance.GetAddress()
	lock, err := instance.Acquire(addr, logger)
	if err != nil {
		if !errors.Is(err, instance.ErrAlreadyRunning) {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s is already running.\n", appName)
		if err := instance.Notify(addr, instance.CommandShow); err != nil {
			logger.Warn("Failed to notify running instance", zap.Error(err))
		}
		return nil
	}

	builder, err := newBuilder()
	if err != nil {
		lock.Close()
		return err
	}

	startup, err := autostart.New(appName, logger)
	if err != nil {
		logger.Warn("Autostart unavailable", zap.Error(err))
	}

	logger.Info("Starting tray",
		zap.String("instance_address", lock.Addr()),
		zap.String("week_label", cfg.Calendar.WeekLabel))

	return daemon.NewDaemon(cfg, builder, startup, lock, logger).Start()
}

func newBuilder() (*calendar.Builder, error) {
	label, err := calendar.ParseWeekLabel(cfg.Calendar.WeekLabel)
	if err != nil {
		return nil, err
	}
	cal := calendar.New(cfg.Calendar.HolidaysFile, logger)
	return calendar.NewBuilder(cal, label, logger), nil
}

func initLogger(level string) {
	config := zap.NewProductionConfig()
	config.EncoderConfig.TimeKey = "timestamp"
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	var zapLevel zapcore.Level
	if err := zapLevel.UnmarshalText([]byte(level)); err == nil {
		config.Level = zap.NewAtomicLevelAt(zapLevel)
	}

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
		MaxSize:    10, // MB
		MaxBackups: 3,  // Keep max 3 old log files
		MaxAge:     28, // days
		Compress:   true,
	}

	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.TimeKey = "timestamp"
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	var zapLevel zapcore.Level
	if err := zapLevel.UnmarshalText([]byte(level)); err != nil {
		zapLevel = zapcore.InfoLevel
	}

	core := zapcore.NewCore(
		zapcore.NewJSONEncoder(encoderConfig),
		zapcore.AddSync(logWriter),
		zapLevel,
	)

	return zap.New(core), nil
}
