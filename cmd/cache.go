package main

import (
	"context"
	"fmt"
	"strconv"

	"github.com/desertthunder/songtabs/internal/shared"
	"github.com/urfave/cli/v3"
)

// CacheStatus reports how many tabs are cached locally.
func (r *Runner) CacheStatus(ctx context.Context, cmd *cli.Command) error {
	if r.cache == nil {
		return fmt.Errorf("%w: tab cache not initialized; run 'songtabs setup database'", shared.ErrServiceUnavailable)
	}

	n, err := r.cache.Count()
	if err != nil {
		return err
	}

	r.writePlain("Database: %s\n", r.config.Database.Path)
	r.writePlain("Cached tabs: %d\n", n)
	return nil
}

// CachePurge removes cached tabs, or a single song's tab with --id, and expired sessions.
func (r *Runner) CachePurge(ctx context.Context, cmd *cli.Command) error {
	if r.cache == nil {
		return fmt.Errorf("%w: tab cache not initialized; run 'songtabs setup database'", shared.ErrServiceUnavailable)
	}

	if raw := cmd.String("id"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return fmt.Errorf("%w: --id must be an integer, got %q", shared.ErrInvalidFlag, raw)
		}
		if err := r.cache.Delete(id); err != nil {
			return err
		}
		r.logger.Info("removed cached tab", "song", id)
		return r.writePlain("✓ Removed cached tab for song %d\n", id)
	}

	n, err := r.cache.Purge()
	if err != nil {
		return err
	}
	r.logger.Info("purged tab cache", "removed", n)
	r.writePlain("✓ Removed %d cached tabs\n", n)

	if r.sessions != nil {
		expired, err := r.sessions.PurgeExpired()
		if err != nil {
			r.logger.Warn("failed to purge expired sessions", "error", err)
		} else if expired > 0 {
			r.writePlain("✓ Removed %d expired sessions\n", expired)
		}
	}
	return nil
}
