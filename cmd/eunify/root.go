package main

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"eunify/internal/config"
	"eunify/internal/logger"
)

// app carries what every command needs once configuration is loaded
type app struct {
	cfgFile string
	v       *viper.Viper
	cfg     *config.Config
	log     *zap.SugaredLogger
}

func newRootCmd() *cobra.Command {
	a := &app{v: config.NewViper()}

	root := &cobra.Command{
		Use:           "eunify",
		Short:         "Graph query visualization for the E-Unify graph service",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.initialize()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			logger.Sync()
		},
	}

	flags := root.PersistentFlags()
	flags.StringVarP(&a.cfgFile, "config", "c", "", "config file (default: search $EUNIFY_CONFIG, ./eunify.yaml, ~/.config/eunify)")
	flags.String("source", "", "graph source: rest, bolt or static")
	flags.String("backend", "", "backend base URL for the rest source")
	flags.String("log-level", "", "log level: debug, info, warn, error")
	flags.String("log-format", "", "log format: console or json")

	_ = a.v.BindPFlag("source.kind", flags.Lookup("source"))
	_ = a.v.BindPFlag("source.rest.base_url", flags.Lookup("backend"))
	_ = a.v.BindPFlag("log.level", flags.Lookup("log-level"))
	_ = a.v.BindPFlag("log.format", flags.Lookup("log-format"))

	root.AddCommand(
		newServeCmd(a),
		newPresetsCmd(a),
		newLoadCmd(a),
		newQueryCmd(a),
	)
	return root
}

// initialize loads configuration and the global logger
func (a *app) initialize() error {
	cfg, path, err := config.LoadWithViper(a.v, a.cfgFile)
	if err != nil {
		return err
	}
	a.cfg = cfg

	if err := logger.Initialize(logger.Options{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		File:       cfg.Log.File,
		MaxSizeMB:  cfg.Log.MaxSizeMB,
		MaxBackups: cfg.Log.MaxBackups,
		MaxAgeDays: cfg.Log.MaxAgeDays,
	}); err != nil {
		return err
	}
	a.log = logger.Logger

	if path != "" {
		a.log.Debugw("Loaded config", "path", path)
	}
	return nil
}
