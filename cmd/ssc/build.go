package main

import (
	"context"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"time"

	"github.com/eolymp/go-ss"
	"github.com/fsnotify/fsnotify"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

// debounce is how long watch waits for more changes before rebuilding
const debounce = 200 * time.Millisecond

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Compile every source file of the project into an HTML page",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return build()
	},
}

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Build the project and rebuild it whenever source files change",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
		defer stop()

		return watch(ctx)
	},
}

func build() error {
	l, err := layout()
	if err != nil {
		return err
	}

	if err := fsys.MkdirAll(cfg.Project.Output, os.ModePerm); err != nil {
		return err
	}

	c := compiler(afero.NewBasePathFs(fsys, cfg.Project.Source))

	start := time.Now()
	results, err := c.Build(ss.BuildOptions{
		Output:  afero.NewBasePathFs(fsys, cfg.Project.Output),
		Layout:  l,
		Workers: cfg.Project.Workers,
	})

	log.Info().
		Str("project", cfg.Project.Name).
		Int("pages", len(results)).
		Dur("took", time.Since(start)).
		Msg("build finished")

	return err
}

func watch(ctx context.Context) error {
	if err := build(); err != nil {
		log.Error().Err(err).Msg("build failed")
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}

	defer watcher.Close()

	if err := watchTree(watcher, cfg.Project.Source); err != nil {
		return err
	}

	log.Info().Str("source", cfg.Project.Source).Msg("watching for changes")

	timer := time.NewTimer(debounce)
	timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}

			if !relevant(event) {
				continue
			}

			// new directories have to be watched too
			if event.Has(fsnotify.Create) {
				if info, err := fsys.Stat(event.Name); err == nil && info.IsDir() {
					if err := watchTree(watcher, event.Name); err != nil {
						log.Warn().Err(err).Str("path", event.Name).Msg("unable to watch directory")
					}
				}
			}

			log.Debug().Str("path", event.Name).Str("op", event.Op.String()).Msg("source changed")
			timer.Reset(debounce)
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}

			log.Warn().Err(err).Msg("watcher error")
		case <-timer.C:
			if err := build(); err != nil {
				log.Error().Err(err).Msg("build failed")
			}
		}
	}
}

// watchTree adds directory and all its subdirectories to the watcher, except the output directory
func watchTree(watcher *fsnotify.Watcher, root string) error {
	output, _ := filepath.Abs(cfg.Project.Output)

	return afero.Walk(fsys, root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}

		if !info.IsDir() {
			return nil
		}

		if abs, _ := filepath.Abs(path); abs == output {
			return filepath.SkipDir
		}

		return watcher.Add(path)
	})
}

// relevant filters out events which can't affect the output, like chmod or editor swap files
func relevant(event fsnotify.Event) bool {
	if event.Op == fsnotify.Chmod {
		return false
	}

	base := filepath.Base(event.Name)
	return !strings.HasPrefix(base, ".") && !strings.HasSuffix(base, "~")
}
