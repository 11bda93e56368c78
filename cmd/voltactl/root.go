package main

import (
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/voltadb/volta/pkg/config"
	"github.com/voltadb/volta/schema"
)

type app struct {
	configPath string
	storePath  string

	conf   config.Config
	logger *zap.Logger
	store  schema.Manager
	closer func() error
}

func newRootCmd() *cobra.Command {
	a := &app{}
	cmd := &cobra.Command{
		Use:           "voltactl",
		Short:         "manage the Volta schema store",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.init()
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			return a.close()
		},
	}
	cmd.PersistentFlags().StringVar(&a.configPath, "config", "", "configuration file")
	cmd.PersistentFlags().StringVar(&a.storePath, "store", "", "schema store directory (overrides config; empty for in-memory)")
	cmd.AddCommand(newSpaceCmd(a))
	cmd.AddCommand(newTagCmd(a))
	cmd.AddCommand(newEdgeCmd(a))
	cmd.AddCommand(newLoadCmd(a))
	return cmd
}

func (a *app) init() error {
	conf, err := config.Load(a.configPath)
	if err != nil {
		return err
	}
	a.conf = conf
	a.logger = newLogger(conf.Log)
	path := conf.StorePath
	if a.storePath != "" {
		path = a.storePath
	}
	store, err := schema.OpenBadger(path, a.logger.Named("store"))
	if err != nil {
		return err
	}
	a.closer = store.Close
	if conf.Cache.Enabled {
		cached, err := schema.NewCached(store, conf.Cache.Size)
		if err != nil {
			return err
		}
		a.store = cached
	} else {
		a.store = store
	}
	return nil
}

func (a *app) close() error {
	if a.logger != nil {
		a.logger.Sync()
	}
	if a.closer != nil {
		return a.closer()
	}
	return nil
}

func newLogger(lc config.Log) *zap.Logger {
	level := zapcore.InfoLevel
	if l, err := zapcore.ParseLevel(lc.Level); err == nil && lc.Level != "" {
		level = l
	}
	encConf := zap.NewProductionEncoderConfig()
	encConf.EncodeTime = zapcore.ISO8601TimeEncoder
	enc := zapcore.NewJSONEncoder(encConf)
	var sink zapcore.WriteSyncer
	if lc.Path != "" {
		sink = zapcore.AddSync(&lumberjack.Logger{
			Filename:   lc.Path,
			MaxSize:    lc.MaxSizeMB,
			MaxBackups: lc.MaxBackups,
			MaxAge:     lc.MaxAgeDays,
		})
	} else {
		sink = zapcore.Lock(os.Stderr)
	}
	return zap.New(zapcore.NewCore(enc, sink, level))
}
