package main

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/term"

	"github.com/vovakirdan/courier-levels/internal/config"
	"github.com/vovakirdan/courier-levels/internal/genclient"
	"github.com/vovakirdan/courier-levels/internal/level"
	"github.com/vovakirdan/courier-levels/internal/llm"
	"github.com/vovakirdan/courier-levels/internal/logging"
	"github.com/vovakirdan/courier-levels/internal/preview"
	"github.com/vovakirdan/courier-levels/internal/procgen"
	"github.com/vovakirdan/courier-levels/internal/storage"
	"github.com/vovakirdan/courier-levels/internal/synth"
)

// app bundles what every command needs: resolved config and a logger.
type app struct {
	cfg    config.Config
	logger *log.Logger
}

// loadApp loads config and applies global flag overrides. Exits on error.
func loadApp() *app {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}
	if flagDBPath != "" {
		cfg.Storage.Path = flagDBPath
	}
	if flagLogLevel != "" {
		cfg.Log.Level = flagLogLevel
	}

	return &app{
		cfg:    cfg,
		logger: logging.New("levelgen", cfg.Log.Level),
	}
}

// openStore opens the level database. Exits on error.
func (a *app) openStore() *storage.Store {
	store, err := storage.Open(a.cfg.Storage.Path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening level database: %v\n", err)
		os.Exit(1)
	}
	return store
}

// tryOpenStore opens the level database, continuing without history on
// failure.
func (a *app) tryOpenStore() *storage.Store {
	store, err := storage.Open(a.cfg.Storage.Path)
	if err != nil {
		a.logger.Warn("could not open level database, history disabled", "error", err)
		return nil
	}
	return store
}

// generator returns a procedural generator seeded from --seed or the clock.
func (a *app) generator() *procgen.Generator {
	seed := flagSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return procgen.New(procgen.NewRNG(uint64(seed)))
}

// generationClient returns the service prompts are sent to: the level
// server by default, or the configured LLM backend when direct is set.
func (a *app) generationClient(direct bool) (synth.GenerationService, error) {
	if !direct {
		return genclient.New(a.cfg.Service.URL, a.cfg.Service.Timeout), nil
	}
	completer, err := llm.FromConfig(a.cfg.LLM)
	if err != nil {
		return nil, err
	}
	return llm.NewGenerator(completer), nil
}

// newService wires a synthesis service that logs its lifecycle, records
// levels in store (when non-nil) and notifies any extra observers.
func (a *app) newService(client synth.GenerationService, store *storage.Store, extra ...synth.Observer) *synth.Service {
	observers := synth.Observers{synth.LogObserver{Logger: a.logger}}
	if store != nil {
		observers = append(observers, storage.NewRecorder(store, a.logger))
	}
	observers = append(observers, extra...)

	return synth.NewService(client, synth.Options{
		Timeout:   a.cfg.Service.Timeout,
		Generator: a.generator(),
		Observer:  observers,
		Logger:    a.logger,
	})
}

// terminalSize returns the size of stdout, or 80x24 when it is not a terminal.
func terminalSize() (int, int) {
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		return w, h
	}
	return 80, 24
}

// printLevel writes cfg as JSON with --json, otherwise as a preview card.
func printLevel(cfg level.Config) {
	if flagJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(cfg); err != nil {
			fmt.Fprintf(os.Stderr, "Error encoding level: %v\n", err)
			os.Exit(1)
		}
		return
	}

	width, _ := terminalSize()
	fmt.Println(preview.Card(cfg, width-4))
}

// describeOrigin returns a one-line description of where a level came from.
func describeOrigin(o level.Origin) string {
	switch o.Kind {
	case level.OriginPrompt:
		return fmt.Sprintf("AI level for %q", o.Prompt)
	case level.OriginFallback:
		return fmt.Sprintf("procedural %s level (AI service unavailable for %q)", o.Tier, o.Prompt)
	case level.OriginQuick:
		return fmt.Sprintf("procedural %s level", o.Tier)
	case level.OriginFile:
		return fmt.Sprintf("level file %s", o.Prompt)
	case level.OriginHistory:
		return "stored level"
	}
	return string(o.Kind)
}
