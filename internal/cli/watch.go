/*
 * watch.go, part of gosasa.
 *
 * Copyright 2026 Raul Mera <rmera{at}chemDOThelsinkiDOTfi>
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General
 * Public License along with this program.  If not, see
 * <http://www.gnu.org/licenses/>.
 *
 */


package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/rmera/gosasa/config"
	"github.com/rmera/gosasa/logger"
)

// Editors often write a file in several steps, so the calculation starts
// only after the file has been quiet for this long.
const watchDebounce = 300 * time.Millisecond

var watchOpts calcFlags

var watchCmd = &cobra.Command{
	Use:   "watch <structure.pdb>",
	Short: "Recompute the SASA every time a structure file changes",
	Long: `Runs calc on the file, and again every time the file is written,
until interrupted. Each run is a complete, independent calculation.
A failed run is reported and the command keeps watching.`,
	Args: cobra.ExactArgs(1),
	RunE: runWatch,
}

func init() {
	addCalcFlags(watchCmd, &watchOpts)
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	c, err := settings(cmd, &watchOpts)
	if err != nil {
		return err
	}
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()
	return watch(ctx, cmd, args[0], c, cmd.Flags().Changed("format"), nil)
}

// watch calculates the SASA for path every time it changes, until ctx is done.
// If done is not nil, it receives the error of each run.
func watch(ctx context.Context, cmd *cobra.Command, path string, c *config.Config, explicitFormat bool, done chan<- error) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return err
	}
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating watcher: %w", err)
	}
	defer w.Close()
	//the directory is watched, since editors may replace the file.
	if err := w.Add(filepath.Dir(abs)); err != nil {
		return fmt.Errorf("watching %s: %w", path, err)
	}
	run := func() {
		_, err := calculate(ctx, cmd, path, c, explicitFormat)
		if err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "Error: %v\n", err)
		}
		if done != nil {
			select {
			case done <- err:
			case <-ctx.Done():
			}
		}
	}
	run()
	var fire <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != abs || ev.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			logger.Debug("%s: %s", ev.Op, ev.Name)
			fire = time.After(watchDebounce)
		case <-fire:
			fire = nil
			logger.Info("%s changed, recomputing", path)
			run()
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			logger.Warn("watcher: %v", err)
		}
	}
}
