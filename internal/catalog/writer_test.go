package catalog

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/voyo-music/canonizer/internal/models"
)

// fakeStore fails whole batches that contain a poisoned record and fails the
// poisoned records individually, so the fallback path gets exercised.
type fakeStore struct {
	bad          map[string]bool
	batchCalls   [][]models.Moment
	singleCalls  []models.Moment
	countClosure func() (int, error)
}

var _ Store = (*fakeStore)(nil)

func newFakeStore(badIDs ...string) *fakeStore {
	bad := make(map[string]bool, len(badIDs))
	for _, id := range badIDs {
		bad[id] = true
	}
	return &fakeStore{bad: bad}
}

func (f *fakeStore) UpsertBatch(ctx context.Context, moments []models.Moment) error {
	f.batchCalls = append(f.batchCalls, moments)
	for _, m := range moments {
		if f.bad[m.SourceID] {
			return fmt.Errorf("row violates check constraint")
		}
	}
	return nil
}

func (f *fakeStore) UpsertOne(ctx context.Context, moment models.Moment) error {
	f.singleCalls = append(f.singleCalls, moment)
	if f.bad[moment.SourceID] {
		return fmt.Errorf("row violates check constraint")
	}
	return nil
}

func (f *fakeStore) Count(ctx context.Context) (int, error) {
	if f.countClosure != nil {
		return f.countClosure()
	}
	return 0, nil
}

func makeMoments(n int) []models.Moment {
	moments := make([]models.Moment, 0, n)
	for i := 0; i < n; i++ {
		moments = append(moments, models.Moment{
			SourcePlatform: models.PlatformTikTok,
			SourceID:       fmt.Sprintf("id-%03d", i),
		})
	}
	return moments
}

func TestWriteAllBatchesSucceed(t *testing.T) {
	store := newFakeStore()
	writer := NewWriter(store, 100, DefaultRetryPolicy)

	result, err := writer.Write(context.Background(), makeMoments(250))

	require.NoError(t, err)
	assert.Equal(t, 250, result.Succeeded)
	assert.Equal(t, 0, result.Failed)
	assert.Equal(t, 3, result.Batches)
	assert.Equal(t, 0, result.FailedBatches)
	assert.Empty(t, store.singleCalls)

	require.Len(t, store.batchCalls, 3)
	assert.Len(t, store.batchCalls[0], 100)
	assert.Len(t, store.batchCalls[1], 100)
	assert.Len(t, store.batchCalls[2], 50)
}

func TestWriteOneBadRecordDoesNotSinkItsBatch(t *testing.T) {
	store := newFakeStore("id-042")
	writer := NewWriter(store, 100, DefaultRetryPolicy)

	result, err := writer.Write(context.Background(), makeMoments(100))

	require.NoError(t, err)
	assert.Equal(t, 99, result.Succeeded, "every sibling of the bad record lands via fallback")
	assert.Equal(t, 1, result.Failed)
	assert.Equal(t, 1, result.FailedBatches)
	assert.Len(t, store.singleCalls, 100, "the failed batch is retried record by record")

	require.Len(t, result.FailedRecords, 1)
	assert.Equal(t, "id-042", result.FailedRecords[0].SourceID)
	assert.Equal(t, models.PlatformTikTok, result.FailedRecords[0].Platform)
	assert.Contains(t, result.FailedRecords[0].Message, "check constraint")
}

func TestWriteLaterBatchesRunAfterFailure(t *testing.T) {
	store := newFakeStore("id-001")
	writer := NewWriter(store, 2, DefaultRetryPolicy)

	result, err := writer.Write(context.Background(), makeMoments(6))

	require.NoError(t, err)
	assert.Equal(t, 3, result.Batches)
	assert.Equal(t, 1, result.FailedBatches)
	assert.Equal(t, 5, result.Succeeded)
	assert.Equal(t, 1, result.Failed)
}

func TestWriteEmptyInput(t *testing.T) {
	store := newFakeStore()
	writer := NewWriter(store, 100, DefaultRetryPolicy)

	result, err := writer.Write(context.Background(), nil)

	require.NoError(t, err)
	assert.Equal(t, 0, result.Batches)
	assert.Empty(t, store.batchCalls)
}

func TestWriteCancelledContext(t *testing.T) {
	store := newFakeStore()
	writer := NewWriter(store, 2, DefaultRetryPolicy)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	result, err := writer.Write(ctx, makeMoments(6))

	require.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 0, result.Succeeded)
	assert.Empty(t, store.batchCalls)
}

func TestNewWriterDefaults(t *testing.T) {
	store := newFakeStore()
	writer := NewWriter(store, 0, RetryPolicy{})

	result, err := writer.Write(context.Background(), makeMoments(150))

	require.NoError(t, err)
	assert.Equal(t, 2, result.Batches, "batch size below 1 falls back to 100")
	assert.Equal(t, 150, result.Succeeded)
}

func TestWriteResultDescribe(t *testing.T) {
	result := &WriteResult{Succeeded: 99, Failed: 1, Batches: 1}
	assert.Equal(t, "99 upserted, 1 failed across 1 batches", result.Describe())
}
