package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/schollz/progressbar/v3"

	"github.com/woozymasta/kits"
)

// runtime lists and removes local images.
type runtime interface {
	List(ctx context.Context) ([]kits.Tag, error)
	Remove(ctx context.Context, ref string, force bool) ([]string, error)
}

type app struct {
	rt     runtime
	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer
	logger *log.Logger
}

// exitError carries a process exit code.
type exitError struct {
	code int
	err  error
}

func (e *exitError) Error() string { return e.err.Error() }
func (e *exitError) Unwrap() error { return e.err }

func (a *app) run(ctx context.Context, opt Options, policy kits.Policy) error {
	rows, err := a.listing(ctx, opt.OptionsInput.Stdin)
	if err != nil {
		return err
	}

	a.logger.Debug("listing", "rows", len(rows), "sort", policy.Sort, "keep", policy.KeepCount)

	plan := kits.Resolve(rows, policy)

	switch {
	case policy.DryRun:
		a.report(plan)
		return nil

	case opt.OptionsRun.Print:
		for _, ref := range plan.Remove {
			if _, err := fmt.Fprintln(a.stdout, ref); err != nil {
				return fmt.Errorf("write: %w", err)
			}
		}
		return nil
	}

	return a.remove(ctx, plan.Remove, opt.OptionsRun.Force, opt.OptionsRun.Progress)
}

// listing reads rows from stdin or from the runtime.
func (a *app) listing(ctx context.Context, stdin bool) ([]kits.Tag, error) {
	if !stdin {
		rows, err := a.rt.List(ctx)
		if err != nil {
			return nil, fmt.Errorf("list images: %w", err)
		}
		return rows, nil
	}

	lines := make([]string, 0, 1024)
	sc := bufio.NewScanner(a.stdin)
	const maxLine = 1024 * 1024
	buf := make([]byte, 0, 64*1024)
	sc.Buffer(buf, maxLine)
	for sc.Scan() {
		lines = append(lines, sc.Text())
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read stdin: %w", err)
	}

	rows, bad := kits.ParseRows(lines)
	for _, l := range bad {
		a.logger.Warn("skip malformed row", "row", strings.TrimSpace(l))
	}

	return rows, nil
}

// report logs the dry-run listing, one line per record.
func (a *app) report(plan kits.Plan) {
	a.logger.Info("would apply following changes on images:")
	for _, st := range []kits.Status{kits.StatusKeep, kits.StatusRemove, kits.StatusInclude, kits.StatusExclude, kits.StatusForced} {
		a.logger.Printf(" %c: %s", st.Symbol(), st)
	}
	a.logger.Print("----------------------------------------")

	for _, g := range plan.Groups {
		for _, r := range g.Records {
			a.logger.Print(r.String())
		}
	}

	c := plan.Count()
	a.logger.Info("summary",
		"keep", c[kits.StatusKeep],
		"remove", c[kits.StatusRemove],
		"include", c[kits.StatusInclude],
		"exclude", c[kits.StatusExclude],
		"forced", c[kits.StatusForced],
	)
}

// remove removes every reference, logging the daemon output. Failures are
// logged and counted, the remaining references are still attempted.
func (a *app) remove(ctx context.Context, refs []string, force, progress bool) error {
	if len(refs) == 0 {
		a.logger.Info("nothing to remove")
		return nil
	}

	var bar *progressbar.ProgressBar
	if progress {
		bar = progressbar.NewOptions(len(refs),
			progressbar.OptionSetWriter(a.stderr),
			progressbar.OptionSetDescription("removing"),
			progressbar.OptionSetWidth(40),
			progressbar.OptionShowCount(),
			progressbar.OptionShowElapsedTimeOnFinish(),
		)
	}

	var failed int
	for _, ref := range refs {
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("interrupted: %w", err)
		}

		lines, err := a.rt.Remove(ctx, ref, force)
		for _, l := range lines {
			a.logger.Info(l)
		}
		if err != nil {
			failed++
			a.logger.Error("remove", "ref", ref, "err", err)
		}

		if bar != nil {
			_ = bar.Add(1)
		}
	}

	if bar != nil {
		_ = bar.Finish()
	}

	a.logger.Info("done", "removed", len(refs)-failed, "failed", failed)

	if failed > 0 {
		return &exitError{code: 3, err: fmt.Errorf("%d of %d removals failed", failed, len(refs))}
	}

	return nil
}
