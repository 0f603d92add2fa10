// Package synth turns player requests into playable levels. It owns the
// single in-flight generation request, the fallback to procedural levels
// and the current-level state cell.
package synth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/courier-levels/internal/config"
	"github.com/vovakirdan/courier-levels/internal/level"
	"github.com/vovakirdan/courier-levels/internal/logging"
	"github.com/vovakirdan/courier-levels/internal/parser"
	"github.com/vovakirdan/courier-levels/internal/procgen"
	"github.com/vovakirdan/courier-levels/internal/validate"
)

// DefaultTimeout bounds a single generation request.
const DefaultTimeout = 30 * time.Second

var (
	errNoService     = errors.New("no generation service configured")
	errBlankResponse = errors.New("generation service returned an empty response")
	errNoCandidate   = errors.New("response contains no level object")
)

// GenerationService produces free-form text that should contain a level
// object for the given prompt.
type GenerationService interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// GenerateFunc adapts a function to GenerationService.
type GenerateFunc func(ctx context.Context, prompt string) (string, error)

func (f GenerateFunc) Generate(ctx context.Context, prompt string) (string, error) {
	return f(ctx, prompt)
}

// Options configure a Service. Zero values select defaults.
type Options struct {
	Timeout   time.Duration
	Generator *procgen.Generator
	State     *State
	Observer  Observer
	Logger    *log.Logger
}

// Service synthesizes levels from prompts or difficulty tiers.
type Service struct {
	client     GenerationService
	timeout    time.Duration
	gen        *procgen.Generator
	normalizer *validate.Normalizer
	state      *State
	observer   Observer
	logger     *log.Logger

	generating atomic.Bool
}

// NewService creates a service that asks client for AI levels. client may
// be nil, in which case every prompt falls back to a procedural level.
func NewService(client GenerationService, opts Options) *Service {
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}
	if opts.Generator == nil {
		opts.Generator = procgen.New(procgen.NewRNG(uint64(time.Now().UnixNano())))
	}
	if opts.State == nil {
		opts.State = NewState()
	}
	if opts.Observer == nil {
		opts.Observer = NopObserver{}
	}
	if opts.Logger == nil {
		opts.Logger = logging.Discard()
	}

	return &Service{
		client:     client,
		timeout:    opts.Timeout,
		gen:        opts.Generator,
		normalizer: validate.NewNormalizer(opts.Generator),
		state:      opts.State,
		observer:   opts.Observer,
		logger:     opts.Logger,
	}
}

// SynthesizeFromPrompt asks the generation service for a level matching
// prompt and normalizes whatever comes back. Transport failures, timeouts
// and unusable responses all produce a procedural medium level instead.
//
// Only one request may be outstanding. A call made while another is in
// flight returns immediately with ok == false and notifies no observer.
func (s *Service) SynthesizeFromPrompt(ctx context.Context, prompt string) (cfg level.Config, ok bool) {
	if !s.generating.CompareAndSwap(false, true) {
		s.logger.Debug("synthesis already in progress, ignoring request")
		return level.Config{}, false
	}
	defer s.generating.Store(false)

	origin := level.Origin{Kind: level.OriginPrompt, Prompt: prompt}
	s.observer.OnSynthesisStart(origin)

	cfg, err := s.fromService(ctx, prompt)
	if err != nil {
		s.logger.Warn("AI generation failed, using procedural level", "error", err)
		cfg = s.gen.RandomLevel(config.TierMedium)
		origin.Kind = level.OriginFallback
		origin.Tier = string(config.TierMedium)
	}

	s.generating.Store(false)
	s.observer.OnSynthesisEnd(origin)

	s.state.Set(cfg, origin)
	s.observer.OnLevelReady(cfg.Clone(), origin)
	return cfg, true
}

func (s *Service) fromService(ctx context.Context, prompt string) (level.Config, error) {
	if s.client == nil {
		return level.Config{}, errNoService
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	text, err := s.generate(ctx, prompt)
	if err != nil {
		return level.Config{}, err
	}
	if strings.TrimSpace(text) == "" {
		return level.Config{}, errBlankResponse
	}

	candidate, found := parser.ExtractCandidate(text)
	if !found {
		return level.Config{}, errNoCandidate
	}

	cfg, adjustments := s.normalizer.NormalizeWithReport(candidate)
	if len(adjustments) > 0 {
		s.logger.Debug("normalized AI level", "name", cfg.Name, "adjustments", len(adjustments))
		for _, a := range adjustments {
			s.logger.Debug("adjustment", "field", a.Field, "kind", a.Kind, "detail", a.Detail)
		}
	}
	return cfg, nil
}

type generateResult struct {
	text string
	err  error
}

// generate calls the client and gives up when ctx expires, even if the
// client ignores ctx. A panic in the client is returned as an error.
func (s *Service) generate(ctx context.Context, prompt string) (string, error) {
	done := make(chan generateResult, 1)
	go func() {
		defer func() {
			if r := recover(); r != nil {
				done <- generateResult{err: fmt.Errorf("generation service panicked: %v", r)}
			}
		}()
		text, err := s.client.Generate(ctx, prompt)
		done <- generateResult{text: text, err: err}
	}()

	select {
	case res := <-done:
		return res.text, res.err
	case <-ctx.Done():
		return "", ctx.Err()
	}
}

// SynthesizeQuick builds a procedural level for a tier name without any
// external call. Unknown tiers resolve to medium.
func (s *Service) SynthesizeQuick(tier string) level.Config {
	t := config.ParseTier(tier)
	origin := level.Origin{Kind: level.OriginQuick, Tier: string(t)}

	s.observer.OnSynthesisStart(origin)
	cfg := s.gen.RandomLevel(t)
	s.observer.OnSynthesisEnd(origin)

	s.state.Set(cfg, origin)
	s.observer.OnLevelReady(cfg.Clone(), origin)
	return cfg
}

// Apply makes cfg the current level, as when a stored or hand-authored
// level is chosen.
func (s *Service) Apply(cfg level.Config, origin level.Origin) {
	s.state.Set(cfg, origin)
	s.observer.OnLevelReady(cfg.Clone(), origin)
}

// Current returns the level currently applied, if any.
func (s *Service) Current() (level.Config, bool) {
	return s.state.Get()
}

// Origin reports how the current level was produced.
func (s *Service) Origin() (level.Origin, bool) {
	return s.state.Origin()
}

// ClearCurrent reverts to the game's built-in level.
func (s *Service) ClearCurrent() {
	s.state.Clear()
}

// Generating reports whether a prompt request is in flight.
func (s *Service) Generating() bool {
	return s.generating.Load()
}
