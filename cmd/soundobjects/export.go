// SPDX-License-Identifier: EPL-2.0

package main

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/ik5/soundobjects"
	"github.com/ik5/soundobjects/internal/config"
	"github.com/ik5/soundobjects/internal/logger"
	"github.com/ik5/soundobjects/internal/metrics"
	"github.com/ik5/soundobjects/scene"
)

// settle collapses the burst of events an editor produces on save.
const settle = 250 * time.Millisecond

func exportCmd(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	fs := newFlagSet("export", "<scene.yaml> <output.wav>", stderr)
	confPath := fs.StringP("conf", "c", "", "Settings file, defaults to "+config.FileName+" in the usual places")
	watch := fs.BoolP("watch", "w", false, "Export again whenever the scene file changes")
	noColor := fs.Bool("no-color", false, "Disable colored log output")
	config.AddFlags(fs)
	if err := fs.Parse(args); err != nil {
		return err
	}
	pos, err := positional(fs, "scene", "output")
	if err != nil {
		return err
	}
	scenePath, output := pos[0], pos[1]

	cfg, err := config.Load(*confPath)
	if err != nil {
		return err
	}
	if err := cfg.ApplyFlags(fs); err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	log := logger.NewConsole(cfg.Debug, "export", *noColor)

	var m *metrics.Export
	if cfg.MetricsTextfile != "" {
		m = metrics.New()
	}

	once := func() error {
		host, err := scene.OpenFile(scenePath)
		if err != nil {
			return err
		}
		rep, err := soundobjects.Export(ctx, host, cfg.Options(output, log, m))
		if werr := m.WriteTextfile(cfg.MetricsTextfile); werr != nil {
			log.Warn().Err(werr).Str("path", cfg.MetricsTextfile).Msg("metrics textfile not written")
		}
		if err != nil {
			return err
		}
		printReport(stdout, rep)
		return nil
	}

	if !*watch {
		return once()
	}
	if err := once(); err != nil {
		log.Error().Err(err).Msg("export failed")
	}

	return watchFile(ctx, scenePath, log, func() {
		if err := once(); err != nil {
			log.Error().Err(err).Msg("export failed")
		}
	})
}

func printReport(w io.Writer, rep soundobjects.Report) {
	if len(rep.Objects) == 0 {
		fmt.Fprintln(w, "no playable sound sources, nothing written")
		return
	}

	fmt.Fprintf(w, "%s: %d objects, %d frames at %d Hz, %d bit\n",
		rep.Output, len(rep.Objects), rep.Frames, rep.SampleRate, rep.BitDepth)
	for i, o := range rep.Objects {
		fmt.Fprintf(w, "  %3d %-20s blocks=%-4d %s\n", i+1, o.Name, o.Blocks, strings.Join(o.Members, ", "))
	}
	for _, g := range rep.Overflow {
		fmt.Fprintf(w, "  dropped: %s\n", strings.Join(g, ", "))
	}
	for _, s := range rep.Skipped {
		fmt.Fprintf(w, "  skipped: %s\n", s)
	}
}

// watchFile calls fn after path changes until ctx is done. The directory is
// watched so that editors replacing the file are seen too.
func watchFile(ctx context.Context, path string, log *logger.Logger, fn func()) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("%w", err)
	}
	defer watcher.Close()

	abs, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("%w", err)
	}
	if err := watcher.Add(filepath.Dir(abs)); err != nil {
		return fmt.Errorf("%w", err)
	}
	log.Info().Str("scene", path).Msg("watching for changes")

	timer := time.NewTimer(settle)
	timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != abs || event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			log.Debug().Str("op", event.Op.String()).Msg("scene changed")
			timer.Reset(settle)
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			log.Warn().Err(err).Msg("watch error")
		case <-timer.C:
			fn()
		}
	}
}
