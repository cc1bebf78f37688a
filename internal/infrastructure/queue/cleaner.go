// Package queue runs background best-effort deletion of stored objects.
package queue

import (
	"context"
	"hash/fnv"

	"github.com/rs/zerolog"

	"github.com/jugendhilfe/casework-system/internal/api/metrics"
	"github.com/jugendhilfe/casework-system/internal/core/ports"
)

const (
	defaultWorkers = 4
	channelBuffer  = 256
)

// OrphanLedger records references whose deletion failed.
type OrphanLedger interface {
	RecordOrphan(ctx context.Context, reference string) error
}

// Cleaner deletes stored objects in the background. References are sharded
// over a fixed set of workers by consistent hashing, so deletes for the same
// reference never race each other. A failed delete is recorded in the orphan
// ledger and never surfaces to the caller that scheduled it.
type Cleaner struct {
	workers []chan string
	store   ports.FileStore
	orphans OrphanLedger
	log     zerolog.Logger
}

// NewCleaner creates a Cleaner with numWorkers sharded workers.
// If numWorkers <= 0, defaultWorkers is used.
func NewCleaner(numWorkers int, store ports.FileStore, orphans OrphanLedger, log zerolog.Logger) *Cleaner {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	c := &Cleaner{
		workers: make([]chan string, numWorkers),
		store:   store,
		orphans: orphans,
		log:     log,
	}
	for i := range c.workers {
		c.workers[i] = make(chan string, channelBuffer)
	}
	return c
}

// Start launches all worker goroutines. Workers stop when ctx is cancelled.
func (c *Cleaner) Start(ctx context.Context) {
	for i, ch := range c.workers {
		go c.runWorker(ctx, i, ch)
	}
}

// Schedule hands a reference to its worker. Non-blocking up to the channel
// buffer; when a worker is saturated the reference goes straight to the
// orphan ledger instead of blocking the request path.
func (c *Cleaner) Schedule(reference string) {
	if reference == "" {
		return
	}
	select {
	case c.workers[c.shardIndex(reference)] <- reference:
	default:
		c.log.Warn().Str("reference", reference).Msg("cleanup queue full, recording orphan")
		c.recordOrphan(context.Background(), reference)
	}
}

func (c *Cleaner) shardIndex(reference string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(reference))
	return int(h.Sum32()) % len(c.workers)
}

func (c *Cleaner) runWorker(ctx context.Context, id int, ch <-chan string) {
	for {
		select {
		case <-ctx.Done():
			return
		case reference, ok := <-ch:
			if !ok {
				return
			}
			if err := c.store.Delete(ctx, reference); err != nil {
				c.log.Warn().Err(err).
					Str("reference", reference).
					Int("worker_id", id).
					Msg("stored object delete failed")
				c.recordOrphan(ctx, reference)
				continue
			}
			metrics.StoredObjectDeletesTotal.WithLabelValues("ok").Inc()
			c.log.Debug().Str("reference", reference).Msg("stored object deleted")
		}
	}
}

func (c *Cleaner) recordOrphan(ctx context.Context, reference string) {
	metrics.StoredObjectDeletesTotal.WithLabelValues("orphaned").Inc()
	if err := c.orphans.RecordOrphan(ctx, reference); err != nil {
		c.log.Error().Err(err).Str("reference", reference).Msg("failed to record orphaned object")
	}
}
