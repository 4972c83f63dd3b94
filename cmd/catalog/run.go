package main

import (
	"context"
	"fmt"

	"go.uber.org/fx"
)

// run blocks until ctx is cancelled or the app asks to shut down.
func run(ctx context.Context, app *fx.App) error {
	if err := app.Start(ctx); err != nil {
		return fmt.Errorf("start catalog: %w", err)
	}

	select {
	case <-ctx.Done():
	case <-app.Done():
	}

	stopCtx, cancel := context.WithTimeout(context.Background(), app.StopTimeout())
	defer cancel()
	if err := app.Stop(stopCtx); err != nil {
		return fmt.Errorf("stop catalog: %w", err)
	}
	return nil
}
