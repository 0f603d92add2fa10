package synth

import (
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/courier-levels/internal/level"
)

// Observer is notified about the synthesis lifecycle. OnSynthesisStart and
// OnSynthesisEnd bracket every accepted request; OnLevelReady follows with
// the produced level. Calls happen on the requesting goroutine, so
// implementations must not block for long.
type Observer interface {
	OnSynthesisStart(origin level.Origin)
	OnSynthesisEnd(origin level.Origin)
	OnLevelReady(cfg level.Config, origin level.Origin)
}

// Observers fans every notification out to each member in order.
type Observers []Observer

func (o Observers) OnSynthesisStart(origin level.Origin) {
	for _, obs := range o {
		obs.OnSynthesisStart(origin)
	}
}

func (o Observers) OnSynthesisEnd(origin level.Origin) {
	for _, obs := range o {
		obs.OnSynthesisEnd(origin)
	}
}

func (o Observers) OnLevelReady(cfg level.Config, origin level.Origin) {
	for _, obs := range o {
		obs.OnLevelReady(cfg, origin)
	}
}

// NopObserver ignores all notifications.
type NopObserver struct{}

func (NopObserver) OnSynthesisStart(level.Origin)           {}
func (NopObserver) OnSynthesisEnd(level.Origin)             {}
func (NopObserver) OnLevelReady(level.Config, level.Origin) {}

// LogObserver writes lifecycle events to a logger.
type LogObserver struct {
	Logger *log.Logger
}

func (l LogObserver) OnSynthesisStart(origin level.Origin) {
	l.Logger.Debug("synthesis started", "origin", origin.Kind, "tier", origin.Tier)
}

func (l LogObserver) OnSynthesisEnd(origin level.Origin) {
	l.Logger.Debug("synthesis finished", "origin", origin.Kind)
}

func (l LogObserver) OnLevelReady(cfg level.Config, origin level.Origin) {
	l.Logger.Info("level ready",
		"name", cfg.Name,
		"origin", origin.Kind,
		"houses", len(cfg.Houses),
		"platforms", len(cfg.Platforms),
		"deliveries", cfg.DeliveriesNeeded,
	)
}
