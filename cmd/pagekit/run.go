package main

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/dshills/pagekit/internal/config"
	"github.com/dshills/pagekit/internal/dom"
	"github.com/dshills/pagekit/internal/enhance"
	"github.com/dshills/pagekit/internal/logging"
	"github.com/dshills/pagekit/internal/script"
)

func newRunCmd() *cobra.Command {
	var o options
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Enhance a page and replay a script once",
		Example: `  pagekit run --page index.html
  pagekit run -p index.html -s browse.yaml -o out.html`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return render(cmd.Context(), o, cmd.OutOrStdout(), cmd.ErrOrStderr())
		},
	}
	bindFlags(cmd, &o)
	return cmd
}

// loadConfig loads the config file and builds the logger it describes.
func loadConfig(o options, stderr io.Writer) (config.Config, zerolog.Logger, error) {
	cfg, err := config.Load(o.config)
	if err != nil {
		return config.Config{}, zerolog.Nop(), err
	}
	level := cfg.Logging.Level
	if o.logLevel != "" {
		level = o.logLevel
	}
	log := logging.New(logging.Config{
		Level:  level,
		Format: logging.Format(cfg.Logging.Format),
		Output: stderr,
	})
	return cfg, log, nil
}

// enhanceOptions maps the loaded configuration onto page behavior settings.
func enhanceOptions(cfg config.Config, site string) enhance.Options {
	opts := enhance.DefaultOptions()
	opts.ScrollThreshold = cfg.Scroll.Threshold
	opts.ScrollThrottle = cfg.Scroll.Throttle.Duration
	opts.SearchURLTemplate = cfg.Search.URLTemplate
	opts.ForceLazyFallback = cfg.LazyLoad.ForceFallback
	opts.SiteName = site
	return opts
}

// render performs one full pass: load, enhance, replay, write.
func render(ctx context.Context, o options, stdout, stderr io.Writer) error {
	cfg, log, err := loadConfig(o, stderr)
	if err != nil {
		return err
	}

	doc, err := parsePage(o.page)
	if err != nil {
		return err
	}

	s := script.Lifecycle()
	if o.script != "" {
		if s, err = script.LoadFile(o.script); err != nil {
			return err
		}
	}

	runner := script.NewRunner(enhanceOptions(cfg, o.site), logging.Component(log, "page"))
	res, err := runner.Run(ctx, doc, s)
	if res != nil {
		defer res.Page.Close()
	}
	if err != nil {
		return err
	}

	summarize(logging.Component(log, "run"), res)
	return writePage(doc, o.out, stdout)
}

func parsePage(path string) (*dom.Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening page: %w", err)
	}
	defer f.Close()

	doc, err := dom.Parse(f)
	if err != nil {
		return nil, fmt.Errorf("parsing page %s: %w", path, err)
	}
	return doc, nil
}

func summarize(log zerolog.Logger, res *script.Result) {
	log.Info().
		Strs("features", res.Page.Features()).
		Int("steps", res.Steps).
		Dur("elapsed", res.Elapsed).
		Msg("replay complete")

	for _, href := range res.Window.Navigations() {
		log.Info().Str("href", href).Msg("navigated")
	}
	for _, sr := range res.Window.Scrolls() {
		ev := log.Info().Str("behavior", string(sr.Behavior))
		if sr.Target != nil {
			ev = ev.Str("target", sr.Target.Tag()).Str("id", sr.Target.Attr("id")).Str("block", sr.Block)
		} else {
			ev = ev.Int("top", sr.Top)
		}
		ev.Msg("scrolled")
	}
}

// writePage renders doc to path, or to stdout when path is empty.
func writePage(doc *dom.Document, path string, stdout io.Writer) error {
	var buf bytes.Buffer
	if err := doc.Render(&buf); err != nil {
		return fmt.Errorf("rendering page: %w", err)
	}
	if path == "" {
		_, err := stdout.Write(buf.Bytes())
		return err
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}
