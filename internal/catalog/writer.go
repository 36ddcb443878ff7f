package catalog

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/voyo-music/canonizer/internal/models"
)

// RetryPolicy controls what happens after a batch-level upsert failure.
type RetryPolicy struct {
	// PerRecordPasses is how many record-by-record passes run over a failed
	// batch. The default of one pass retries each record exactly once, with
	// no backoff.
	PerRecordPasses int
}

// DefaultRetryPolicy retries each record of a failed batch once.
var DefaultRetryPolicy = RetryPolicy{PerRecordPasses: 1}

// WriteResult aggregates the outcome of one write run.
type WriteResult struct {
	Succeeded     int
	Failed        int
	Batches       int
	FailedBatches int
	FailedRecords []models.RecordFailure
}

// Writer partitions moments into fixed-size batches and submits them to the
// store strictly in sequence. A failed batch falls back to per-record
// upserts; one bad record never blocks its siblings or later batches.
type Writer struct {
	store     Store
	batchSize int
	policy    RetryPolicy
}

// NewWriter creates a batch writer. batchSize values below 1 fall back to 100.
func NewWriter(store Store, batchSize int, policy RetryPolicy) *Writer {
	if batchSize < 1 {
		batchSize = 100
	}
	if policy.PerRecordPasses < 1 {
		policy = DefaultRetryPolicy
	}
	return &Writer{store: store, batchSize: batchSize, policy: policy}
}

// Write upserts all moments. The only error it returns is context
// cancellation; everything recoverable lands in the result instead.
func (w *Writer) Write(ctx context.Context, moments []models.Moment) (*WriteResult, error) {
	result := &WriteResult{}
	if len(moments) == 0 {
		return result, nil
	}

	totalBatches := (len(moments) + w.batchSize - 1) / w.batchSize

	for start := 0; start < len(moments); start += w.batchSize {
		if err := ctx.Err(); err != nil {
			return result, err
		}

		end := start + w.batchSize
		if end > len(moments) {
			end = len(moments)
		}
		batch := moments[start:end]
		result.Batches++

		logrus.Infof("Upserting batch %d/%d (%d moments)", result.Batches, totalBatches, len(batch))

		if err := w.store.UpsertBatch(ctx, batch); err == nil {
			result.Succeeded += len(batch)
			continue
		} else {
			logrus.Warnf("Batch %d/%d failed, retrying record by record: %v", result.Batches, totalBatches, err)
			result.FailedBatches++
		}

		w.fallback(ctx, batch, result)
	}

	return result, nil
}

// fallback retries a failed batch one record at a time.
func (w *Writer) fallback(ctx context.Context, batch []models.Moment, result *WriteResult) {
	pending := batch
	var lastErrs map[models.NaturalKey]error

	for pass := 0; pass < w.policy.PerRecordPasses && len(pending) > 0; pass++ {
		var stillFailing []models.Moment
		lastErrs = make(map[models.NaturalKey]error, len(pending))

		for _, moment := range pending {
			if ctx.Err() != nil {
				stillFailing = append(stillFailing, moment)
				lastErrs[moment.Key()] = ctx.Err()
				continue
			}
			if err := w.store.UpsertOne(ctx, moment); err != nil {
				stillFailing = append(stillFailing, moment)
				lastErrs[moment.Key()] = err
				continue
			}
			result.Succeeded++
		}
		pending = stillFailing
	}

	for _, moment := range pending {
		result.Failed++
		msg := "upsert failed"
		if err := lastErrs[moment.Key()]; err != nil {
			msg = err.Error()
		}
		result.FailedRecords = append(result.FailedRecords, models.RecordFailure{
			Platform: moment.SourcePlatform,
			SourceID: moment.SourceID,
			Message:  msg,
		})
		logrus.Errorf("Dropping moment %s/%s: %s", moment.SourcePlatform, moment.SourceID, msg)
	}
}

// Describe summarizes the result for logs and notifications.
func (r *WriteResult) Describe() string {
	return fmt.Sprintf("%d upserted, %d failed across %d batches", r.Succeeded, r.Failed, r.Batches)
}
