// Package sudo acquires and keeps alive sudo credentials for the lifetime
// of a session. Privileged engine and service operations assume a cached
// timestamp so they never stall mid-flow on a password prompt.
package sudo

import (
	"context"
	"fmt"
	"time"

	"podbay/internal/runner"
	"podbay/pkg/logging"
)

// Keeper validates sudo credentials once up front and refreshes the cached
// timestamp in the background.
type Keeper struct {
	runner   runner.Runner
	interval time.Duration
}

// New creates a keeper refreshing at the given interval.
func New(r runner.Runner, interval time.Duration) *Keeper {
	return &Keeper{
		runner:   r,
		interval: interval,
	}
}

// Acquire validates credentials interactively. The password prompt, if any,
// goes straight to the controlling terminal. A denied or failed validation
// is an error; the session must not continue without credentials.
func (k *Keeper) Acquire(ctx context.Context) error {
	_, err := k.runner.Run(ctx, "sudo -v", runner.Options{ValidExitCodes: []int{0}})
	if err != nil {
		return fmt.Errorf("acquiring sudo credentials: %w", err)
	}
	return nil
}

// Start refreshes the cached timestamp periodically until the context is
// canceled. Refreshes never prompt; if the timestamp has expired the next
// refresh fails quietly and the following privileged command prompts again.
func (k *Keeper) Start(ctx context.Context) {
	go func() {
		ticker := time.NewTicker(k.interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if _, err := k.runner.Run(ctx, "sudo --non-interactive -v", runner.Options{Capture: true}); err != nil {
					logging.Debug("Sudo", "credential refresh failed: %v", err)
				}
			}
		}
	}()
}
