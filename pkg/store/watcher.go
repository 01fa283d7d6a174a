package store

import (
	"time"

	"github.com/fsnotify/fsnotify"

	"photobox/pkg/logger"
)

// Watcher detects writes made by other processes sharing the data
// directory. Filesystem notifications give fast convergence; the periodic
// revision poll is the fallback when the events do not fire (network mounts,
// editors renaming over the file). Detection is after the fact: a tab that
// lost a booking race learns it here, it is not prevented.
type Watcher struct {
	store    *Store
	log      *logger.Logger
	interval time.Duration
	onChange func(revision string)

	fsw     *fsnotify.Watcher
	lastRev string
	stop    chan struct{}
	done    chan struct{}
}

func NewWatcher(s *Store, interval time.Duration, log *logger.Logger, onChange func(revision string)) *Watcher {
	return &Watcher{
		store:    s,
		log:      log.WithComponent("watcher"),
		interval: interval,
		onChange: onChange,
		stop:     make(chan struct{}),
		done:     make(chan struct{}),
	}
}

func (w *Watcher) Start() error {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	if err := fsw.Add(w.store.Dir()); err != nil {
		fsw.Close()
		return err
	}
	w.fsw = fsw
	w.lastRev = w.store.Revision()

	go w.run()
	w.log.Info("Storage watcher started", "dir", w.store.Dir(), "poll_interval", w.interval)
	return nil
}

func (w *Watcher) run() {
	defer close(w.done)

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-w.stop:
			return
		case <-ticker.C:
			w.check()
		case event, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if event.Op.Has(fsnotify.Create) || event.Op.Has(fsnotify.Write) || event.Op.Has(fsnotify.Rename) {
				w.check()
			}
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			w.log.Warn("Filesystem watch error", "error", err)
		}
	}
}

// check fires the callback when the persisted revision moved. Our own
// writes move it too; consumers re-derive state either way, which is
// harmless because recomputation is idempotent.
func (w *Watcher) check() {
	rev := w.store.Revision()
	if rev == w.lastRev {
		return
	}
	w.log.Debug("Collection revision changed", "from", w.lastRev, "to", rev)
	w.lastRev = rev
	if w.onChange != nil {
		w.onChange(rev)
	}
}

func (w *Watcher) Stop() {
	close(w.stop)
	if w.fsw != nil {
		w.fsw.Close()
	}
	<-w.done
	w.log.Info("Storage watcher stopped")
}
