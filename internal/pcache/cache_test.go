package pcache

import (
	"bytes"
	goerrors "errors"
	"fmt"
	"io"
	"os"
	"runtime"
	"sync"
	"testing"

	"github.com/hpetrov29/sifetl"
	"github.com/hpetrov29/sifetl/errors"
	"github.com/hpetrov29/sifetl/logging"
	"github.com/hpetrov29/sifetl/partition"
	"github.com/hpetrov29/sifetl/schema"
	"github.com/stretchr/testify/require"
)

func createTestCache(t *testing.T, size int) (PartitionCache, sifetl.Schema) {
	s := schema.CreateSchema()
	s.CreateColumn("key", &sifetl.Int64ColumnType{})
	s.CreateColumn("val", &sifetl.VarStringColumnType{})
	cache, err := NewLRU(&LRUConfig{
		Size:       size,
		DiskPath:   t.TempDir(),
		Schema:     s,
		Serializer: partition.NewLZ4PartitionSerializer(),
	})
	require.Nil(t, err)
	return cache, s
}

func createTestPartition(t *testing.T, s sifetl.Schema, key int64) sifetl.Partition {
	part := partition.CreateBuildablePartition(4, s)
	require.Nil(t, part.AppendRowData([]interface{}{key, fmt.Sprintf("value-%d", key)}))
	return part
}

func TestCacheSpillsAndReloads(t *testing.T) {
	cache, s := createTestCache(t, 2)
	defer cache.Destroy()

	var ids []string
	for i := 0; i < 5; i++ {
		part := createTestPartition(t, s, int64(i))
		require.Nil(t, cache.Add(part))
		ids = append(ids, part.ID())
	}
	require.Equal(t, 5, cache.Len())
	require.Equal(t, 3, cache.NumSpilled())

	iCache, ok := cache.(*lru)
	require.True(t, ok)
	entries, err := os.ReadDir(iCache.diskPath)
	require.Nil(t, err)
	require.Len(t, entries, 3)

	for i, id := range ids {
		part, err := cache.Get(id)
		require.Nil(t, err)
		require.Equal(t, id, part.ID())
		key, err := part.GetRow(0).GetInt64("key")
		require.Nil(t, err)
		require.Equal(t, int64(i), key)
	}
	require.Equal(t, 5, cache.Len())
}

func TestCacheMissingPartition(t *testing.T) {
	cache, _ := createTestCache(t, 2)
	defer cache.Destroy()
	_, err := cache.Get("nope")
	require.True(t, goerrors.As(err, &errors.MissingPartitionError{}))
}

func TestCacheDestroyRemovesSpilledData(t *testing.T) {
	cache, s := createTestCache(t, 1)
	for i := 0; i < 3; i++ {
		require.Nil(t, cache.Add(createTestPartition(t, s, int64(i))))
	}
	diskPath := cache.(*lru).diskPath
	require.Nil(t, cache.Destroy())
	_, err := os.Stat(diskPath)
	require.True(t, os.IsNotExist(err))
	require.Nil(t, cache.Destroy())
	require.NotNil(t, cache.Add(createTestPartition(t, s, 9)))
}

func TestCacheConcurrentAccess(t *testing.T) {
	cache, s := createTestCache(t, 3)
	defer cache.Destroy()
	var ids []string
	for i := 0; i < 10; i++ {
		part := createTestPartition(t, s, int64(i))
		require.Nil(t, cache.Add(part))
		ids = append(ids, part.ID())
	}
	var wg sync.WaitGroup
	for w := 0; w < 4; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for _, id := range ids {
				part, err := cache.Get(id)
				if err != nil {
					t.Error(err)
					return
				}
				if part.ID() != id {
					t.Errorf("expected partition %s, got %s", id, part.ID())
				}
			}
		}()
	}
	wg.Wait()
	require.Equal(t, 10, cache.Len())
}

// unlinkingSerializer removes a spill file while it is being read back
type unlinkingSerializer struct {
	sifetl.PartitionSerializer
}

func (s unlinkingSerializer) Decompress(r io.Reader, schema sifetl.Schema) (sifetl.Partition, error) {
	if f, ok := r.(*os.File); ok {
		if err := os.Remove(f.Name()); err != nil {
			return nil, err
		}
	}
	return s.PartitionSerializer.Decompress(r, schema)
}

func TestCacheLogsSpillCleanupFailures(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("open files cannot be removed")
	}
	s := schema.CreateSchema()
	s.CreateColumn("key", &sifetl.Int64ColumnType{})
	s.CreateColumn("val", &sifetl.VarStringColumnType{})
	var buf bytes.Buffer
	cache, err := NewLRU(&LRUConfig{
		Size:       1,
		DiskPath:   t.TempDir(),
		Schema:     s,
		Serializer: unlinkingSerializer{partition.NewLZ4PartitionSerializer()},
		Logger:     logging.New(&buf, logging.WarnLevel),
	})
	require.Nil(t, err)
	defer cache.Destroy()

	first := createTestPartition(t, s, 1)
	require.Nil(t, cache.Add(first))
	require.Nil(t, cache.Add(createTestPartition(t, s, 2)))
	part, err := cache.Get(first.ID())
	require.Nil(t, err)
	require.Equal(t, first.ID(), part.ID())
	require.Contains(t, buf.String(), "couldn't remove spilled partition")
}

func TestCacheDefaultsToDiscardLogger(t *testing.T) {
	cache, _ := createTestCache(t, 1)
	defer cache.Destroy()
	iCache, ok := cache.(*lru)
	require.True(t, ok)
	require.NotNil(t, iCache.config.Logger)
	require.Equal(t, logging.OffLevel, iCache.config.Logger.Level())
}
