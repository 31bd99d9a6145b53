package cmd

import (
	"context"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"github.com/sectrean/autowire/config"
	"github.com/sectrean/autowire/internal/errors"
)

const debounce = 100 * time.Millisecond

// Watch resolves once and then again whenever the configuration, the services file
// or anything under a search path changes. Failed runs are logged and watching
// continues. It returns when ctx is done.
func Watch(ctx context.Context, opts *ResolveOptions, stdout io.Writer) error {
	if ctx == nil {
		ctx = context.Background()
	}

	cfg, err := config.Load(opts.ConfigPath, config.WithBundles(opts.Bundles))
	if err != nil {
		return err
	}
	logger, err := NewLogger(cfg.Log)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return errors.Wrap(err, "create file watcher")
	}
	defer watcher.Close()

	watched := make(map[string]struct{})
	watch := func(cfg *config.Config) {
		for _, path := range watchPaths(opts.ConfigPath, cfg) {
			if _, ok := watched[path]; ok {
				continue
			}
			if err := watcher.Add(path); err != nil {
				logger.Warn("failed to watch path", zap.String("path", path), zap.Error(err))
				continue
			}
			watched[path] = struct{}{}
		}
	}
	watch(cfg)

	// Directories created since the last run and search paths added to the
	// configuration are picked up before every rerun.
	rerun := func() {
		if cfg, err := config.Load(opts.ConfigPath, config.WithBundles(opts.Bundles)); err == nil {
			watch(cfg)
		}
		if _, err := Resolve(opts, stdout); err != nil {
			logger.Error("resolve failed", zap.Error(err))
		}
	}
	rerun()

	var (
		timer *time.Timer
		fire  = make(chan struct{}, 1)
	)
	for {
		select {
		case <-ctx.Done():
			if timer != nil {
				timer.Stop()
			}
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 {
				continue
			}

			logger.Debug("change detected", zap.String("path", event.Name), zap.Stringer("op", event.Op))
			if timer != nil {
				timer.Stop()
			}
			timer = time.AfterFunc(debounce, func() {
				select {
				case fire <- struct{}{}:
				default:
				}
			})

		case <-fire:
			logger.Info("resolving again")
			rerun()

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Error("file watcher error", zap.Error(err))
		}
	}
}

// watchPaths returns the directory of the configuration file, the services file
// and every directory below the search paths.
func watchPaths(configPath string, cfg *config.Config) []string {
	paths := []string{filepath.Dir(configPath)}
	if cfg.Services != "" {
		paths = append(paths, filepath.Dir(cfg.Services))
	}

	for _, p := range cfg.Autowiring.BuildDefinitions.Paths {
		info, err := os.Stat(p.Pathname)
		if err != nil {
			continue
		}
		if !info.IsDir() {
			paths = append(paths, filepath.Dir(p.Pathname))
			continue
		}

		_ = filepath.WalkDir(p.Pathname, func(path string, d fs.DirEntry, err error) error {
			if err != nil || !d.IsDir() {
				return nil
			}
			if path != p.Pathname && !p.IsRecursive() {
				return filepath.SkipDir
			}
			paths = append(paths, path)
			return nil
		})
	}

	seen := make(map[string]struct{}, len(paths))
	unique := paths[:0]
	for _, p := range paths {
		if _, dup := seen[p]; dup {
			continue
		}
		seen[p] = struct{}{}
		unique = append(unique, p)
	}
	return unique
}
