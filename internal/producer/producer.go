// Package producer implements the scheduled replenishment controller. Each
// run is stateless and idempotent: it inspects store statistics, generates a
// batch when the most active session is running low on unseen profiles, and
// recycles the oldest rows to stay under the hard cap.
package producer

import (
	"context"
	"fmt"
	"runtime/debug"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"swipestack/internal/generator"
)

// Store is the slice of the query layer the controller needs.
type Store interface {
	CountProfiles(ctx context.Context) (int, error)
	MaxSessionSwipes(ctx context.Context) (int, error)
	InsertProfile(ctx context.Context, id, data, imageURL string) error
	DeleteOldestProfiles(ctx context.Context, n int) (int64, error)
}

// Source produces one profile per call and never fails.
type Source interface {
	Generate(ctx context.Context) generator.Profile
}

// Stats is a snapshot of the pool taken at the start of a run.
type Stats struct {
	TotalProfiles   int `json:"total_profiles"`
	MaxSessionSwipe int `json:"max_session_swipes"`
	BufferRemaining int `json:"buffer_remaining"`
}

// Report summarizes one controller run in the scheduled-job contract:
// StatusCode is 200 for generated or skipped, 500 for an unexpected failure.
type Report struct {
	Skipped   bool
	Generated int
	Recycled  int64
	Err       error
}

func (r Report) StatusCode() int {
	if r.Err != nil {
		return 500
	}
	return 200
}

func (r Report) Body() string {
	if r.Err != nil {
		return r.Err.Error()
	}
	if r.Skipped {
		return "Skipped"
	}
	return fmt.Sprintf("Generated %d profiles (recycled %d)", r.Generated, r.Recycled)
}

// Controller holds the replenishment policy and its collaborators.
type Controller struct {
	store     Store
	source    Source
	minBuffer int
	hardCap   int
	batchSize int

	// limiter paces generation calls to respect external-service rate limits.
	limiter *rate.Limiter

	// notify, when set, receives a fresh stats snapshot after every run
	// that generated profiles.
	notify func(Stats)
}

// New builds a Controller. notify may be nil.
func New(store Store, source Source, minBuffer, hardCap, batchSize int, notify func(Stats)) *Controller {
	return &Controller{
		store:     store,
		source:    source,
		minBuffer: minBuffer,
		hardCap:   hardCap,
		batchSize: batchSize,
		limiter:   rate.NewLimiter(rate.Every(time.Second), 1),
		notify:    notify,
	}
}

// Run executes one replenishment pass. It never panics outward; unexpected
// failures are caught and reported as a 500-equivalent summary.
func (c *Controller) Run(ctx context.Context) (report Report) {
	defer func() {
		if r := recover(); r != nil {
			log.Error().Interface("panic", r).Bytes("stack", debug.Stack()).
				Msg("producer run panicked")
			report = Report{Err: fmt.Errorf("producer panic: %v", r)}
		}
	}()

	stats, err := c.poolStats(ctx)
	if err != nil {
		log.Error().Err(err).Msg("failed to read pool stats")
		return Report{Err: err}
	}

	log.Info().
		Int("total", stats.TotalProfiles).
		Int("max_session_swipes", stats.MaxSessionSwipe).
		Int("buffer", stats.BufferRemaining).
		Msg("pool stats")

	if stats.BufferRemaining >= c.minBuffer {
		log.Info().Msg("buffer sufficient, skipping")
		return Report{Skipped: true}
	}

	log.Info().
		Int("buffer", stats.BufferRemaining).
		Int("min_buffer", c.minBuffer).
		Int("batch_size", c.batchSize).
		Msg("buffer low, generating batch")

	generated := c.generateBatch(ctx)

	recycled, err := c.recycle(ctx)
	if err != nil {
		return Report{Generated: generated, Err: err}
	}

	if c.notify != nil {
		if fresh, err := c.poolStats(ctx); err == nil {
			c.notify(fresh)
		}
	}

	return Report{Generated: generated, Recycled: recycled}
}

// PoolStats exposes the buffer computation for the read-only stats endpoint.
func (c *Controller) PoolStats(ctx context.Context) (Stats, error) {
	return c.poolStats(ctx)
}

// poolStats reads the total profile count and the worst-case session's swipe
// count concurrently. The buffer is sized against the most active session
// because running out of unseen profiles depends only on its own exhaustion
// rate. Swipes against since-recycled profiles are not subtracted, so the
// buffer can overestimate for long-lived sessions.
func (c *Controller) poolStats(ctx context.Context) (Stats, error) {
	var total, maxSwipes int

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		total, err = c.store.CountProfiles(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		maxSwipes, err = c.store.MaxSessionSwipes(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return Stats{}, fmt.Errorf("read pool stats: %w", err)
	}

	return Stats{
		TotalProfiles:   total,
		MaxSessionSwipe: maxSwipes,
		BufferRemaining: total - maxSwipes,
	}, nil
}

// generateBatch generates and inserts batchSize profiles sequentially. A
// failed insert is logged and skipped; the batch carries on. Partial batches
// are harmless with append-only semantics.
func (c *Controller) generateBatch(ctx context.Context) int {
	generated := 0
	for i := 0; i < c.batchSize; i++ {
		if err := c.limiter.Wait(ctx); err != nil {
			log.Warn().Err(err).Msg("batch interrupted")
			break
		}

		p := c.source.Generate(ctx)
		if err := c.store.InsertProfile(ctx, p.ID, p.Data, p.ImageURL); err != nil {
			log.Error().Err(err).Str("profile_id", p.ID).
				Msgf("[%d/%d] insert failed, skipping", i+1, c.batchSize)
			continue
		}

		log.Info().Str("profile_id", p.ID).Msgf("[%d/%d] generated", i+1, c.batchSize)
		generated++
	}
	return generated
}

// RunLoop runs one pass immediately and then repeats at the given interval
// until ctx is cancelled. Overlap with another runner is tolerated: a stale
// cap check is off by at most one batch and self-corrects on the next run.
func (c *Controller) RunLoop(ctx context.Context, interval time.Duration) {
	c.runLogged(ctx)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			c.runLogged(ctx)
		}
	}
}

func (c *Controller) runLogged(ctx context.Context) {
	report := c.Run(ctx)
	if report.Err != nil {
		log.Error().Err(report.Err).Msg("producer run failed")
		return
	}
	log.Info().Int("status", report.StatusCode()).Msg(report.Body())
}

// recycle deletes the oldest profiles when the total exceeds the hard cap.
func (c *Controller) recycle(ctx context.Context) (int64, error) {
	total, err := c.store.CountProfiles(ctx)
	if err != nil {
		return 0, fmt.Errorf("recount profiles: %w", err)
	}

	if total <= c.hardCap {
		return 0, nil
	}

	excess := total - c.hardCap
	log.Info().Int("total", total).Int("hard_cap", c.hardCap).Int("excess", excess).
		Msg("over cap, recycling oldest profiles")

	deleted, err := c.store.DeleteOldestProfiles(ctx, excess)
	if err != nil {
		return 0, fmt.Errorf("delete oldest profiles: %w", err)
	}
	return deleted, nil
}
