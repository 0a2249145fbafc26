package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/kubev2v/resort-catalog/internal/config"
)

const envPrefix = "RESORT_CATALOG"

func NewRootCommand() *cobra.Command {
	v := viper.New()

	cmd := &cobra.Command{
		Use:           "resort-catalog",
		Short:         "Manage the resort catalog database",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			logger, err := newLogger(v.GetString("log-level"), v.GetString("log-format"))
			if err != nil {
				return err
			}
			zap.ReplaceGlobals(logger)
			return nil
		},
	}

	defaultCfg, err := config.NewConfigurationWithDefaults()
	if err != nil {
		panic(err)
	}

	flags := cmd.PersistentFlags()
	flags.String("db-path", defaultCfg.DBPath, "path of the SQLite database")
	flags.String("log-level", defaultCfg.LogLevel, "log level: debug, info, warn, error")
	flags.String("log-format", defaultCfg.LogFormat, "log format: console or json")
	flags.Int("admin-privilege", defaultCfg.Access.AdminPrivilege, "privilege level of the admin role")
	flags.Int("user-privilege", defaultCfg.Access.UserPrivilege, "privilege level of the user role")

	_ = v.BindPFlags(flags)
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	cmd.AddCommand(
		newMigrateCommand(v),
		newListCommand(v),
		newAddUserCommand(v),
	)

	return cmd
}

// loadConfiguration merges defaults, flags and environment.
func loadConfiguration(v *viper.Viper) (*config.Configuration, error) {
	cfg, err := config.NewConfigurationWithDefaults()
	if err != nil {
		return nil, err
	}
	cfg.DBPath = v.GetString("db-path")
	cfg.LogLevel = v.GetString("log-level")
	cfg.LogFormat = v.GetString("log-format")
	cfg.Access.AdminPrivilege = v.GetInt("admin-privilege")
	cfg.Access.UserPrivilege = v.GetInt("user-privilege")
	return cfg, nil
}

func newLogger(level, format string) (*zap.Logger, error) {
	lvl, err := zap.ParseAtomicLevel(level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}

	var zc zap.Config
	switch format {
	case "json":
		zc = zap.NewProductionConfig()
	case "console", "":
		zc = zap.NewDevelopmentConfig()
		zc.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	default:
		return nil, fmt.Errorf("invalid log format %q", format)
	}
	zc.Level = lvl
	zc.OutputPaths = []string{"stderr"}

	return zc.Build()
}

// Execute runs the root command and exits non zero on failure.
func Execute() {
	_ = godotenv.Load()

	if err := NewRootCommand().Execute(); err != nil {
		color.New(color.FgRed).Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}
}
