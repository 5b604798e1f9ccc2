package stats

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoadStatistics(t *testing.T) {
	var ls LoadStatistics
	ls.Start()
	start := ls.GetStartTime()
	ls.Start()
	require.Equal(t, start, ls.GetStartTime())
	ls.EndSchemaInference()

	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			ls.EndFile(string(rune('a'+i)), time.Now(), 2, 10, 1)
		}(i)
	}
	wg.Wait()
	ls.Finish()

	require.Equal(t, 4, ls.GetNumFilesProcessed())
	require.Equal(t, 8, ls.GetNumPartitionsProcessed())
	require.EqualValues(t, 40, ls.GetNumRowsProcessed())
	require.EqualValues(t, 4, ls.GetNumMalformedRecords())
	_, ok := ls.GetFileRuntime("a")
	require.True(t, ok)
	_, ok = ls.GetFileRuntime("z")
	require.False(t, ok)

	runtime := ls.GetRuntime()
	time.Sleep(2 * time.Millisecond)
	require.Equal(t, runtime, ls.GetRuntime())
}
