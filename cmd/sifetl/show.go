package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/hpetrov29/sifetl/config"
	"github.com/hpetrov29/sifetl/errors"
	"github.com/hpetrov29/sifetl/loader"
	"github.com/hpetrov29/sifetl/logging"
	"github.com/hpetrov29/sifetl/session"
	"github.com/spf13/cobra"
)

type showOptions struct {
	configPath string
	pattern    string
	rows       int
	logLevel   string
}

func newShowCommand(logger *logging.Logger) *cobra.Command {
	opts := &showOptions{}
	cmd := &cobra.Command{
		Use:   "show PATH",
		Short: "Load a file or directory and print its first rows",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()
			cfg, err := loadConfig(opts.configPath, cmd.Flags().Changed("config"))
			if err != nil {
				return err
			}
			if len(opts.logLevel) > 0 {
				cfg.LogLevel = opts.logLevel
			}
			return runShow(ctx, cmd.OutOrStdout(), cfg, logger, args[0], opts)
		},
	}
	cmd.Flags().StringVar(&opts.configPath, "config", config.DefaultPath, "JSON document configuring the session")
	cmd.Flags().StringVar(&opts.pattern, "pattern", "", "regular expression which files under a directory must match")
	cmd.Flags().IntVar(&opts.rows, "rows", 20, "number of rows to print")
	cmd.Flags().StringVar(&opts.logLevel, "log-level", "", "log level, overriding the config document")
	return cmd
}

// loadConfig reads the config document. The default document is optional.
func loadConfig(path string, explicit bool) (*config.Config, error) {
	if !explicit {
		if _, err := os.Stat(path); os.IsNotExist(err) {
			return config.Default(), nil
		}
	}
	return config.Load(path)
}

func runShow(ctx context.Context, out io.Writer, cfg *config.Config, logger *logging.Logger, path string, opts *showOptions) error {
	sess, err := session.Start(cfg, logger)
	if err != nil {
		return err
	}
	defer func() {
		if err := sess.Stop(); err != nil {
			logger.Warn("couldn't stop session", "error", err)
		}
	}()
	df, err := loader.ImportDataFromPath(ctx, sess, path, opts.pattern)
	if err != nil {
		return err
	}
	if err := df.Show(out, opts.rows); err != nil {
		return &errors.EngineError{Op: "show", Err: err}
	}
	stats := df.Stats()
	fmt.Fprintf(out, "%d rows from %d %s files (%d malformed) in %s\n", stats.Rows, stats.Files, df.Format(), stats.MalformedRecords, stats.Runtime)
	return nil
}
