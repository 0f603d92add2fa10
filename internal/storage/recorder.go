package storage

import (
	"sync"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/courier-levels/internal/level"
	"github.com/vovakirdan/courier-levels/internal/logging"
)

// Recorder stores every produced level and marks it current. It plugs into
// the synthesis service as an observer. Storage failures are logged and
// never interrupt synthesis.
type Recorder struct {
	store  *Store
	logger *log.Logger

	mu   sync.Mutex
	last Record
}

// NewRecorder creates a recorder writing to store.
func NewRecorder(store *Store, logger *log.Logger) *Recorder {
	if logger == nil {
		logger = logging.Discard()
	}
	return &Recorder{store: store, logger: logger}
}

func (r *Recorder) OnSynthesisStart(level.Origin) {}
func (r *Recorder) OnSynthesisEnd(level.Origin)   {}

// OnLevelReady saves cfg. Levels applied from history are not saved again.
func (r *Recorder) OnLevelReady(cfg level.Config, origin level.Origin) {
	if origin.Kind == level.OriginHistory {
		return
	}

	rec, err := r.store.Save(cfg, origin)
	if err != nil {
		r.logger.Warn("could not record level", "name", cfg.Name, "error", err)
		return
	}
	if err := r.store.SetCurrent(rec.ID); err != nil {
		r.logger.Warn("could not mark level current", "id", rec.ID, "error", err)
	}

	r.mu.Lock()
	r.last = rec
	r.mu.Unlock()
	r.logger.Debug("level recorded", "id", rec.ID, "name", rec.Name, "origin", rec.Origin)
}

// Last returns the most recently recorded level.
func (r *Recorder) Last() (Record, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.last, r.last.ID != ""
}
