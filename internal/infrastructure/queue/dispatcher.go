package queue

import (
	"context"
	"hash/fnv"
	"strconv"

	"github.com/rs/zerolog"

	"github.com/aibudget/tracker-api/internal/api/metrics"
	"github.com/aibudget/tracker-api/internal/core/domain"
	"github.com/aibudget/tracker-api/internal/core/ports"
)

const (
	defaultWorkers = 4
	channelBuffer  = 256
)

// AuditDispatcher persists admin audit entries off the request path. Entries
// are sharded to a fixed set of workers by target account id, so the audit
// trail for any one account is written in action order.
type AuditDispatcher struct {
	workers []chan domain.AuditEntry
	repo    ports.AuditRepository
	log     zerolog.Logger
	done    chan struct{}
}

// NewAuditDispatcher creates a dispatcher with numWorkers sharded workers.
// If numWorkers <= 0, defaultWorkers is used.
func NewAuditDispatcher(numWorkers int, repo ports.AuditRepository, log zerolog.Logger) *AuditDispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	d := &AuditDispatcher{
		workers: make([]chan domain.AuditEntry, numWorkers),
		repo:    repo,
		log:     log,
		done:    make(chan struct{}),
	}
	for i := range d.workers {
		d.workers[i] = make(chan domain.AuditEntry, channelBuffer)
	}
	return d
}

// Start launches all worker goroutines. Workers stop when ctx is cancelled,
// and the dispatcher stops accepting entries at that point.
func (d *AuditDispatcher) Start(ctx context.Context) {
	for i, ch := range d.workers {
		go d.runWorker(ctx, i, ch)
	}
	go func() {
		<-ctx.Done()
		close(d.done)
	}()
}

// Enqueue sends an entry to the worker responsible for its target account.
// The call is non-blocking up to channelBuffer capacity. Once the dispatcher
// is stopped the workers no longer drain, so entries that cannot be buffered
// are dropped with a warning instead of blocking the caller.
func (d *AuditDispatcher) Enqueue(entry domain.AuditEntry) {
	i := d.shardIndex(entry.TargetID)
	select {
	case d.workers[i] <- entry:
		metrics.AuditQueueDepth.WithLabelValues(strconv.Itoa(i)).Set(float64(len(d.workers[i])))
	case <-d.done:
		d.log.Warn().
			Str("action", string(entry.Action)).
			Str("target_id", entry.TargetID).
			Msg("audit entry dropped, dispatcher stopped")
	}
}

// shardIndex maps a target account id deterministically to a worker index.
func (d *AuditDispatcher) shardIndex(targetID string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(targetID))
	return int(h.Sum32()) % len(d.workers)
}

func (d *AuditDispatcher) runWorker(ctx context.Context, id int, ch <-chan domain.AuditEntry) {
	label := strconv.Itoa(id)
	for {
		select {
		case <-ctx.Done():
			return
		case entry, ok := <-ch:
			if !ok {
				return
			}
			metrics.AuditQueueDepth.WithLabelValues(label).Set(float64(len(ch)))
			if err := d.repo.Insert(ctx, &entry); err != nil {
				d.log.Error().Err(err).
					Str("action", string(entry.Action)).
					Str("target_id", entry.TargetID).
					Int("worker_id", id).
					Msg("audit entry persistence failed")
			}
		}
	}
}
