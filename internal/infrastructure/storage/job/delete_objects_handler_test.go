package job

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/hibiken/asynq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wishlist-backend/internal/infrastructure/storage"
	"wishlist-backend/internal/shared"
)

type fakeStorage struct {
	storage.ObjectStorage
	removed  map[string][]string
	folders  []string
	failWith error
}

func (f *fakeStorage) RemoveObjects(_ context.Context, bucket string, keys []string) error {
	if f.failWith != nil {
		return f.failWith
	}
	if f.removed == nil {
		f.removed = map[string][]string{}
	}
	f.removed[bucket] = append(f.removed[bucket], keys...)
	return nil
}

func (f *fakeStorage) RemoveFolder(_ context.Context, bucket, prefix string) error {
	f.folders = append(f.folders, bucket+"/"+prefix)
	return nil
}

func newTask(t *testing.T, p shared.DeleteObjectsPayload) *asynq.Task {
	t.Helper()
	b, err := json.Marshal(p)
	require.NoError(t, err)
	return asynq.NewTask(shared.TypeDeleteObjects, b)
}

func TestDeleteObjectsHandler(t *testing.T) {
	t.Run("KeysAndPrefix", func(t *testing.T) {
		fs := &fakeStorage{}
		h := NewDeleteObjectsHandler(fs, nil)

		err := h.ProcessTask(context.Background(), newTask(t, shared.DeleteObjectsPayload{
			Bucket: "item-images",
			Keys:   []string{"w/a.jpg", "w/thumb_a.jpg"},
			Prefix: "w/",
		}))
		require.NoError(t, err)
		assert.Equal(t, []string{"w/a.jpg", "w/thumb_a.jpg"}, fs.removed["item-images"])
		assert.Equal(t, []string{"item-images/w/"}, fs.folders)
	})

	t.Run("MissingBucketSkipsRetry", func(t *testing.T) {
		h := NewDeleteObjectsHandler(&fakeStorage{}, nil)
		err := h.ProcessTask(context.Background(), newTask(t, shared.DeleteObjectsPayload{Keys: []string{"a"}}))
		assert.ErrorIs(t, err, asynq.SkipRetry)
	})

	t.Run("StorageErrorRetries", func(t *testing.T) {
		h := NewDeleteObjectsHandler(&fakeStorage{failWith: errors.New("boom")}, nil)
		err := h.ProcessTask(context.Background(), newTask(t, shared.DeleteObjectsPayload{Bucket: "logos", Keys: []string{"a"}}))
		require.Error(t, err)
		assert.NotErrorIs(t, err, asynq.SkipRetry)
	})
}
