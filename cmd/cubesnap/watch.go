// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"

	"cogentcore.org/core/base/errors"
	"github.com/fsnotify/fsnotify"
)

// Watch runs the scenario, then runs it again each time the scenario
// or settings file is written, until interrupted. Run errors are
// logged and do not stop watching.
func Watch(c *Config) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	files := map[string]bool{}
	dirs := map[string]bool{}
	for _, fn := range []string{c.Scenario, c.Settings} {
		if fn == "" {
			continue
		}
		abs, err := filepath.Abs(fn)
		if err != nil {
			return err
		}
		files[abs] = true
		dirs[filepath.Dir(abs)] = true
	}
	// editors often replace files, so the directories are watched
	for dir := range dirs {
		if err := watcher.Add(dir); err != nil {
			return err
		}
	}

	errors.Log(runOnce(c))
	intr := make(chan os.Signal, 1)
	signal.Notify(intr, os.Interrupt)
	defer signal.Stop(intr)
	for {
		select {
		case <-intr:
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !files[event.Name] || (!event.Has(fsnotify.Write) && !event.Has(fsnotify.Create)) {
				continue
			}
			slog.Info("cubesnap: file changed, running again", "file", event.Name)
			fmt.Println("---")
			errors.Log(runOnce(c))
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			slog.Error("cubesnap: watch", "err", err)
		}
	}
}
