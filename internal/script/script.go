package script

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Event names accepted in scripts.
const (
	EventScroll           = "scroll"
	EventClick            = "click"
	EventSubmit           = "submit"
	EventKeyDown          = "keydown"
	EventTouchStart       = "touchstart"
	EventTouchEnd         = "touchend"
	EventLoad             = "load"
	EventError            = "error"
	EventIntersect        = "intersect"
	EventInput            = "input"
	EventDOMContentLoaded = "domcontentloaded"
	EventWait             = "wait"
)

// eventSpec describes how a script event is addressed.
type eventSpec struct {
	needsTarget   bool
	allowsTarget  bool
	defaultsToAll bool
}

var events = map[string]eventSpec{
	EventScroll:           {},
	EventClick:            {needsTarget: true, allowsTarget: true},
	EventSubmit:           {needsTarget: true, allowsTarget: true},
	EventKeyDown:          {needsTarget: true, allowsTarget: true},
	EventTouchStart:       {needsTarget: true, allowsTarget: true},
	EventTouchEnd:         {needsTarget: true, allowsTarget: true},
	EventLoad:             {allowsTarget: true},
	EventError:            {needsTarget: true, allowsTarget: true},
	EventIntersect:        {needsTarget: true, allowsTarget: true, defaultsToAll: true},
	EventInput:            {needsTarget: true, allowsTarget: true},
	EventDOMContentLoaded: {},
	EventWait:             {},
}

// DefaultSettle is how long replay keeps the clock running after the last
// step so trailing timers fire.
const DefaultSettle = time.Second

// Script is a replayable event sequence.
type Script struct {
	// Location is the page URL. Defaults to browser.DefaultLocation.
	Location string `yaml:"location"`

	// NativeLazyLoading overrides native lazy-loading support.
	NativeLazyLoading *bool `yaml:"native_lazy_loading"`

	// PerformanceTiming overrides performance timing availability.
	PerformanceTiming *bool `yaml:"performance_timing"`

	// Settle is how long to keep the clock running after the last step.
	Settle *time.Duration `yaml:"settle"`

	Steps []Step `yaml:"steps"`
}

// Step is one scripted event.
type Step struct {
	// At is the offset from the start of the replay.
	At time.Duration `yaml:"at"`

	// Event is one of the Event* names.
	Event string `yaml:"event"`

	// Target is a CSS selector. The first match is used unless All is set.
	Target string `yaml:"target"`

	// All applies the event to every match of Target.
	All bool `yaml:"all"`

	// Key is the key value for keydown.
	Key string `yaml:"key"`

	// Y is the scroll offset for scroll.
	Y int `yaml:"y"`

	// Value is the new field value for input.
	Value string `yaml:"value"`
}

// Lifecycle returns a script that only fires DOMContentLoaded and load.
func Lifecycle() *Script {
	return &Script{Steps: []Step{
		{Event: EventDOMContentLoaded},
		{Event: EventLoad},
	}}
}

// Load decodes and validates a script.
func Load(r io.Reader) (*Script, error) {
	var s Script
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&s); err != nil {
		if errors.Is(err, io.EOF) {
			return &s, nil
		}
		return nil, fmt.Errorf("decoding script: %w", err)
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

// LoadFile reads a script from path.
func LoadFile(path string) (*Script, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening script: %w", err)
	}
	defer f.Close()
	return Load(f)
}

// Validate checks event names, targets and step ordering.
func (s *Script) Validate() error {
	var prev time.Duration
	for i, step := range s.Steps {
		spec, ok := events[step.Event]
		if !ok {
			return &StepError{Index: i, Event: step.Event, Err: ErrUnknownEvent}
		}
		if spec.needsTarget && step.Target == "" {
			return &StepError{Index: i, Event: step.Event, Err: ErrMissingTarget}
		}
		if !spec.allowsTarget && step.Target != "" {
			return &StepError{Index: i, Event: step.Event, Err: fmt.Errorf("%s takes no target", step.Event)}
		}
		if step.At < prev {
			return &StepError{Index: i, Event: step.Event, Err: fmt.Errorf("%w: %v after %v", ErrOutOfOrder, step.At, prev)}
		}
		prev = step.At
	}
	return nil
}

// Duration returns the offset of the last step.
func (s *Script) Duration() time.Duration {
	if len(s.Steps) == 0 {
		return 0
	}
	return s.Steps[len(s.Steps)-1].At
}

func (s *Script) settle() time.Duration {
	if s.Settle != nil {
		return *s.Settle
	}
	return DefaultSettle
}
