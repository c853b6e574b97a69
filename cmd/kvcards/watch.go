package main

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"
	"github.com/ukaji3/kvcards-go/pkg/kvcards/graph"
	"go.uber.org/zap"
)

// settleDelay coalesces the burst of events a single save produces.
const settleDelay = 250 * time.Millisecond

func newWatchCmd() *cobra.Command {
	var (
		cf configFlags
		ef encodeFlags
	)

	cmd := &cobra.Command{
		Use:   "watch [input.xlsx]",
		Short: "Re-extract cards whenever the workbook or job file changes",
		Long: `watch prints the card set once, then again after every change to the
workbook. With --job, edits to the job file are applied as well, and a job
that names a different workbook moves the watch to it.`,
		Args:              cobra.MaximumNArgs(1),
		ValidArgsFunction: completeWorkbookPath,
		RunE: func(cmd *cobra.Command, args []string) error {
			in, err := cf.input(cmd, args)
			if err != nil {
				return err
			}

			g := graph.New(graph.Options{Logger: logger})
			defer g.Close()
			apply(g, in)

			// The first extraction must succeed; later failures are reported
			// and watching continues.
			set, err := extract(cmd.Context(), g)
			if err != nil {
				return err
			}
			if err := ef.write(cmd, set); err != nil {
				return err
			}

			workbook := in.Path
			return watch(cmd.Context(), workbook, cf.job, func(jobChanged bool) string {
				if jobChanged {
					next, err := cf.input(cmd, args)
					if err != nil {
						logger.Warn("job file reload failed", zap.Error(err))
						return workbook
					}
					apply(g, next)
					workbook = next.Path
				}
				g.Refresh()

				set, err := extract(cmd.Context(), g)
				if err != nil {
					fmt.Fprintln(cmd.ErrOrStderr(), err)
					return workbook
				}
				if err := ef.write(cmd, set); err != nil {
					fmt.Fprintln(cmd.ErrOrStderr(), err)
				}
				return workbook
			})
		},
	}

	cf.register(cmd)
	ef.register(cmd)
	return cmd
}

// watch calls onChange after the workbook or job file settles from a
// change, until ctx is done. onChange returns the workbook to watch from
// then on. Directories are watched rather than files so editors that replace
// files on save are still seen.
func watch(ctx context.Context, workbook, job string, onChange func(jobChanged bool) string) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer watcher.Close()

	targets := map[string]bool{}
	dirs := map[string]bool{}
	track := func(p string, isJob bool) error {
		abs, err := filepath.Abs(p)
		if err != nil {
			return err
		}
		targets[abs] = isJob
		dir := filepath.Dir(abs)
		if dirs[dir] {
			return nil
		}
		if err := watcher.Add(dir); err != nil {
			return fmt.Errorf("failed to watch %s: %w", dir, err)
		}
		dirs[dir] = true
		return nil
	}

	if err := track(workbook, false); err != nil {
		return err
	}
	if job != "" {
		if err := track(job, true); err != nil {
			return err
		}
	}

	var (
		timer      *time.Timer
		fire       <-chan time.Time
		jobChanged bool
	)
	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			isJob, watched := targets[filepath.Clean(event.Name)]
			if !watched || event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			logger.Debug("file changed", zap.String("path", event.Name), zap.String("op", event.Op.String()))
			jobChanged = jobChanged || isJob
			if timer == nil {
				timer = time.NewTimer(settleDelay)
			} else {
				timer.Reset(settleDelay)
			}
			fire = timer.C

		case <-fire:
			fire = nil
			next := onChange(jobChanged)
			jobChanged = false
			if next != "" && next != workbook {
				if err := retarget(targets, workbook); err != nil {
					logger.Warn("dropping old workbook failed", zap.Error(err))
				}
				if err := track(next, false); err != nil {
					logger.Warn("watching new workbook failed", zap.String("path", next), zap.Error(err))
					continue
				}
				logger.Debug("watching workbook", zap.String("path", next))
				workbook = next
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn("watch error", zap.Error(err))
		}
	}
}

// retarget stops reacting to changes of an old workbook. Its directory stays
// watched since the job file may share it.
func retarget(targets map[string]bool, old string) error {
	abs, err := filepath.Abs(old)
	if err != nil {
		return err
	}
	if !targets[abs] {
		delete(targets, abs)
	}
	return nil
}
