package scripting

import (
	"context"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

const reloadDebounce = 100 * time.Millisecond

// Watch reloads the engine whenever a .lua file in its override directory
// changes. Bursts of writes collapse into one reload. It blocks until ctx
// is done.
func (e *Engine) Watch(ctx context.Context) error {
	if e.dir == "" {
		<-ctx.Done()
		return nil
	}
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer w.Close()
	if err := w.Add(e.dir); err != nil {
		return err
	}

	timer := time.NewTimer(reloadDebounce)
	timer.Stop()
	for {
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil
		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename|fsnotify.Remove) == 0 {
				continue
			}
			if !strings.EqualFold(filepath.Ext(ev.Name), ".lua") {
				continue
			}
			timer.Reset(reloadDebounce)
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			e.log.Warn("script watcher error", zap.Error(err))
		case <-timer.C:
			if err := e.Reload(); err != nil {
				e.log.Error("script reload failed", zap.Error(err))
				continue
			}
			e.log.Info("scripts reloaded", zap.String("dir", e.dir))
		}
	}
}
