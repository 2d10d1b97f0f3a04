package app

import (
	"time"

	"github.com/Piotr1215/beam/internal/config"
	"github.com/Piotr1215/beam/internal/config/watcher"
)

// WatchConfig reloads the configuration whenever the file at path
// changes. Invalid edits are logged and the previous configuration stays
// in force. The returned closer stops the watch.
func (a *App) WatchConfig(path string) (func() error, error) {
	w, err := watcher.New(path, 250*time.Millisecond, func(p string) {
		cfg, err := config.Load(p)
		if err != nil {
			a.logger.Warn("config reload: %v", err)
			return
		}
		a.ApplyConfig(cfg)
	})
	if err != nil {
		return nil, err
	}
	return w.Close, nil
}
