package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"path/filepath"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/fsnotify/fsnotify"
)

const watchSettle = 200 * time.Millisecond

type watchCmd struct {
}

func (c watchCmd) Run(g globalCmd, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	st, _ := g.settings()
	logger := g.logger()

	dir := st.FragmentDir()
	if s, err := os.Stat(dir); err != nil || !s.IsDir() {
		return errors.New("nothing to watch: fragment directory " + dir + " does not exist")
	}

	if err := g.render(st, logger); err != nil {
		return err
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer w.Close()

	if err := w.Add(dir); err != nil {
		return err
	}
	logger.Info().Str("dir", dir).Msg("watching fragments")

	// events within watchSettle are coalesced into one render
	var pending <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			return nil

		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if isFragmentEvent(ev, st.Pattern) {
				logger.Debug().Str("fragment", filepath.Base(ev.Name)).Str("op", ev.Op.String()).Msg("change")
				pending = time.After(watchSettle)
			}

		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			logger.Warn().Err(err).Msg("watch")

		case <-pending:
			pending = nil
			if err := g.render(st, logger); err != nil {
				logger.Error().Err(err).Msg("render guide")
			}
		}
	}
}

func isFragmentEvent(ev fsnotify.Event, pattern string) bool {
	if !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Remove) && !ev.Has(fsnotify.Rename) {
		return false
	}
	if pattern == "" {
		pattern = defaultFragmentPattern
	}
	ok, err := doublestar.Match(pattern, filepath.Base(ev.Name))
	return err == nil && ok
}
