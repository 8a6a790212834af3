package main

import (
	"context"
	"io"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// watchFiles parses the files once and again after every write, until the context is cancelled or an interrupt arrives.
// The parent directories are watched so that editors that replace files on save are picked up.
func watchFiles(ctx context.Context, out, errOut io.Writer, opts *options, names []string) error {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	watched := map[string]bool{}
	for _, name := range names {
		if name == "-" {
			continue
		}
		path, err := filepath.Abs(name)
		if err != nil {
			return err
		}
		watched[path] = true
		if err := watcher.Add(filepath.Dir(path)); err != nil {
			return err
		}
		_ = parseFile(out, errOut, opts, name)
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !watched[event.Name] || !isChange(event) {
				continue
			}
			opts.log.Debug("file changed", zap.String("file", event.Name), zap.String("op", event.Op.String()))
			_ = parseFile(out, errOut, opts, event.Name)
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			printError(errOut, opts, err)
		}
	}
}

func isChange(event fsnotify.Event) bool {
	return event.Has(fsnotify.Write) || event.Has(fsnotify.Create)
}
