package storage

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemory_EnsureBucketIdempotent(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()

	require.NoError(t, m.EnsureBucket(ctx, "sunshine-covidapibucket-dev"))
	require.NoError(t, m.Put(ctx, "sunshine-covidapibucket-dev", "covid/ohio/2025-03-12_last1", strings.NewReader("{}")))
	require.NoError(t, m.EnsureBucket(ctx, "sunshine-covidapibucket-dev"))

	assert.Equal(t, []string{"sunshine-covidapibucket-dev"}, m.Buckets())
	assert.Equal(t, []string{"covid/ohio/2025-03-12_last1"}, m.Keys("sunshine-covidapibucket-dev"), "second ensure must not reset the bucket")
}

func TestMemory_PutOverwrites(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()
	require.NoError(t, m.EnsureBucket(ctx, "flu"))

	require.NoError(t, m.Put(ctx, "flu", "flu/hhs9/2025-03-12", strings.NewReader("first")))
	require.NoError(t, m.Put(ctx, "flu", "flu/hhs9/2025-03-12", strings.NewReader("second")))

	assert.Len(t, m.Keys("flu"), 1)
	got, ok := m.Get("flu", "flu/hhs9/2025-03-12")
	require.True(t, ok)
	assert.Equal(t, "second", string(got))
	assert.Equal(t, 2, m.Puts())
}

func TestMemory_PutMissingBucket(t *testing.T) {
	err := NewMemory().Put(context.Background(), "absent", "k", strings.NewReader("x"))
	require.Error(t, err)
	assert.Equal(t, "NoSuchBucket", ErrorCode(err))
}
