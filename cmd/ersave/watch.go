package main

import (
	"context"
	"fmt"

	"ersave/watch"
)

func (a *app) watch(ctx context.Context, args []string) error {
	w := watch.New(a.cfg.Dir, a.cfg.Settle, a.logger)
	reports := make(chan watch.Report)
	if err := w.Start(reports); err != nil {
		return err
	}
	defer w.Stop()

	fmt.Fprintln(a.out, "Watching", a.cfg.Dir, "- interrupt to stop")
	for {
		select {
		case <-ctx.Done():
			fmt.Fprintln(a.out, "Stopped")
			return nil
		case r := <-reports:
			fmt.Fprintln(a.out, r)
		}
	}
}
