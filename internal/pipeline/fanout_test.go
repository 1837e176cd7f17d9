package pipeline

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFanoutWritesEveryThumbnail(t *testing.T) {
	storage := newMemStorage()
	items := workList(storage, 25)

	f := NewFanout(storage, stubResizer{}, 4)
	require.NoError(t, f.Run(context.Background(), items))

	written := storage.written()
	require.Len(t, written, 25)
	for _, item := range items {
		assert.Equal(t, append([]byte("thumb:"), storage.files[item.SrcPath]...), written[item.DstPath])
	}
}

func TestFanoutFailsFastOnBadPayload(t *testing.T) {
	storage := newMemStorage()
	items := workList(storage, 30)
	storage.files["src/000.tif"] = []byte{0xff, 0}

	f := NewFanout(storage, stubResizer{failOn: 0xff}, 2)
	err := f.Run(context.Background(), items)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "resize src/000.tif")
	assert.NotContains(t, storage.written(), "dst/000.jpg")
}

func TestFanoutReadErrorFailsBatch(t *testing.T) {
	storage := newMemStorage()
	items := workList(storage, 5)
	storage.readErr["src/002.tif"] = errors.New("permission denied")

	f := NewFanout(storage, stubResizer{}, 2)
	err := f.Run(context.Background(), items)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "read src/002.tif")
}
