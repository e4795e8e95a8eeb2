package script

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/dshills/pagekit/internal/browser"
	"github.com/dshills/pagekit/internal/clock"
	"github.com/dshills/pagekit/internal/dom"
	"github.com/dshills/pagekit/internal/enhance"
)

// Epoch is the manual clock's start time during replay.
var Epoch = time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC)

// Result is the state of a page after replay.
type Result struct {
	Doc    *dom.Document
	Window *browser.Window
	Page   *enhance.Page

	// Steps is the number of steps applied.
	Steps int
	// Elapsed is the clock offset when replay stopped.
	Elapsed time.Duration
}

// Runner replays scripts.
type Runner struct {
	opts enhance.Options
	log  zerolog.Logger
}

// NewRunner creates a runner that enhances pages with opts.
func NewRunner(opts enhance.Options, log zerolog.Logger) *Runner {
	return &Runner{opts: opts, log: log}
}

// Run enhances doc, replays s against it and returns the resulting page.
// The page is left attached so callers can keep inspecting it; call
// Result.Page.Close when done.
func (r *Runner) Run(ctx context.Context, doc *dom.Document, s *Script) (*Result, error) {
	c := clock.NewManual(Epoch)

	winOpts := []browser.Option{browser.WithClock(c), browser.WithLogger(r.log)}
	if s.Location != "" {
		winOpts = append(winOpts, browser.WithLocation(s.Location))
	}
	if s.NativeLazyLoading != nil {
		winOpts = append(winOpts, browser.WithNativeLazyLoading(*s.NativeLazyLoading))
	}
	if s.PerformanceTiming != nil {
		winOpts = append(winOpts, browser.WithPerformanceTiming(*s.PerformanceTiming))
	}
	win, err := browser.NewWindow(doc, winOpts...)
	if err != nil {
		return nil, err
	}

	page := enhance.Init(enhance.Env{Doc: doc, Window: win, Clock: c}, r.opts, r.log)
	res := &Result{Doc: doc, Window: win, Page: page}

	for i, step := range s.Steps {
		if err := ctx.Err(); err != nil {
			return res, err
		}
		c.Set(Epoch.Add(step.At))
		res.Elapsed = step.At

		if err := r.apply(doc, win, step); err != nil {
			return res, &StepError{Index: i, Event: step.Event, Err: err}
		}
		res.Steps++
		r.log.Debug().
			Int("step", i).
			Str("event", step.Event).
			Str("target", step.Target).
			Dur("at", step.At).
			Msg("step applied")
	}

	settle := s.settle()
	c.Advance(settle)
	res.Elapsed += settle
	return res, nil
}

func (r *Runner) apply(doc *dom.Document, win *browser.Window, step Step) error {
	switch step.Event {
	case EventScroll:
		win.SetScrollY(step.Y)
		return nil
	case EventDOMContentLoaded:
		win.DOMContentLoaded()
		return nil
	case EventWait:
		return nil
	case EventLoad:
		if step.Target == "" {
			win.Load()
			return nil
		}
	}

	targets, err := r.targets(doc, step)
	if err != nil {
		return err
	}
	for _, el := range targets {
		switch step.Event {
		case EventClick:
			el.Click()
		case EventSubmit:
			el.DispatchEvent(dom.NewEvent(dom.EventSubmit))
		case EventKeyDown:
			el.DispatchEvent(dom.NewKeyEvent(dom.EventKeyDown, step.Key))
		case EventTouchStart:
			el.DispatchEvent(dom.NewEvent(dom.EventTouchStart))
		case EventTouchEnd:
			el.DispatchEvent(dom.NewEvent(dom.EventTouchEnd))
		case EventLoad:
			el.DispatchEvent(dom.NewEvent(dom.EventLoad))
		case EventError:
			el.DispatchEvent(dom.NewEvent(dom.EventError))
		case EventIntersect:
			win.Intersect(el)
		case EventInput:
			el.SetValue(step.Value)
		default:
			return ErrUnknownEvent
		}
	}
	return nil
}

func (r *Runner) targets(doc *dom.Document, step Step) ([]*dom.Element, error) {
	matches, err := doc.QueryAll(step.Target)
	if err != nil {
		return nil, err
	}
	if len(matches) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrTargetNotFound, step.Target)
	}
	if step.All || events[step.Event].defaultsToAll {
		return matches, nil
	}
	return matches[:1], nil
}
