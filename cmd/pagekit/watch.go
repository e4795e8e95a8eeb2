package main

import (
	"context"
	"errors"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/dshills/pagekit/internal/clock"
	"github.com/dshills/pagekit/internal/logging"
	"github.com/dshills/pagekit/internal/watch"
)

func newWatchCmd() *cobra.Command {
	var o options
	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Rerun whenever the page, script or config changes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return watchLoop(ctx, o, cmd.OutOrStdout(), cmd.ErrOrStderr())
		},
	}
	bindFlags(cmd, &o)
	return cmd
}

func watchLoop(ctx context.Context, o options, stdout, stderr io.Writer) error {
	cfg, log, err := loadConfig(o, stderr)
	if err != nil {
		return err
	}
	log = logging.Component(log, "watch")

	w, err := watch.New(clock.Real(), cfg.Watch.Debounce.Duration, log)
	if err != nil {
		return err
	}
	defer w.Close()

	for _, path := range []string{o.page, o.script, o.config} {
		if path == "" {
			continue
		}
		if err := w.Add(path); err != nil {
			if path == o.config && errors.Is(err, os.ErrNotExist) {
				continue
			}
			return err
		}
	}

	if err := render(ctx, o, stdout, stderr); err != nil {
		log.Error().Err(err).Msg("render failed")
	}

	err = w.Run(ctx, func(path string) {
		log.Info().Str("path", path).Msg("change detected, rerunning")
		if err := render(ctx, o, stdout, stderr); err != nil {
			log.Error().Err(err).Msg("render failed")
		}
	})
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}
