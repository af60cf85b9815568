package main

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/meigma/asar"
)

// config holds settings shared by all subcommands. Values come from flags,
// ASAR_* environment variables, or the file given by --config, in that order.
type config struct {
	Alignment int  `mapstructure:"alignment"`
	Debug     bool `mapstructure:"debug"`
}

// app carries the loaded configuration into subcommands.
type app struct {
	v      *viper.Viper
	cfg    config
	logger *slog.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{v: viper.New()}

	root := &cobra.Command{
		Use:   "asar",
		Short: "Inspect packed application archives",
		Long: `asar reads packed application archives without unpacking them.

It can list the virtual filesystem, extract files whose content matches
the SHA-256 digests recorded in the archive header, and verify every
packed file at once.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.load(cmd)
		},
	}

	flags := root.PersistentFlags()
	flags.String("config", "", "config file (yaml, json or toml)")
	flags.Int("alignment", asar.DefaultAlignment, "payload alignment in bytes")
	flags.Bool("debug", false, "enable debug logging")

	root.AddCommand(
		newListCmd(a),
		newExtractCmd(a),
		newVerifyCmd(a),
		newHeaderCmd(a),
	)
	return root
}

// load resolves configuration for cmd and builds the logger.
func (a *app) load(cmd *cobra.Command) error {
	if err := a.bind(cmd.Flags()); err != nil {
		return err
	}

	if path := a.v.GetString("config"); path != "" {
		a.v.SetConfigFile(path)
		if err := a.v.ReadInConfig(); err != nil {
			return fmt.Errorf("failed to read config file %s: %w", path, err)
		}
	}
	if err := a.v.Unmarshal(&a.cfg); err != nil {
		return fmt.Errorf("failed to unmarshal config: %w", err)
	}

	level := slog.LevelInfo
	if a.cfg.Debug {
		level = slog.LevelDebug
	}
	a.logger = slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))
	return nil
}

// bind maps flags and ASAR_* environment variables onto viper keys.
// Dashes in flag names become underscores in variable names.
func (a *app) bind(flags *pflag.FlagSet) error {
	a.v.SetEnvPrefix("ASAR")
	a.v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	a.v.AutomaticEnv()
	if err := a.v.BindPFlags(flags); err != nil {
		return fmt.Errorf("bind flags: %w", err)
	}
	return nil
}

// open reads and decodes the archive at path with the loaded settings.
func (a *app) open(path string, opts ...asar.Option) (*asar.Archive, error) {
	opts = append([]asar.Option{
		asar.WithAlignment(a.cfg.Alignment),
		asar.WithLogger(a.logger.With(slog.String("archive", path))),
	}, opts...)
	return asar.OpenFile(path, opts...)
}
