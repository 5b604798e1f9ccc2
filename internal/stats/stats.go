// Package stats tracks statistics about loading a File Set
package stats

import (
	"sync"
	"time"
)

// LoadStatistics contains statistics about a running (or finished) load.
// It is safe for concurrent use by the goroutines parsing individual files.
type LoadStatistics struct {
	lock                sync.Mutex
	started             bool
	finished            bool
	startTime           time.Time
	totalRuntime        time.Duration
	schemaRuntime       time.Duration
	filesProcessed      int
	rowsProcessed       int64
	partitionsProcessed int
	malformedRecords    int64
	fileRuntimes        map[string]time.Duration
}

// Start triggers statistics tracking, if it hasn't been started already
func (ls *LoadStatistics) Start() {
	ls.lock.Lock()
	defer ls.lock.Unlock()
	if !ls.started {
		ls.started = true
		ls.startTime = time.Now()
		ls.fileRuntimes = make(map[string]time.Duration)
	}
}

// EndSchemaInference tracks the end of the schema inference pass
func (ls *LoadStatistics) EndSchemaInference() {
	ls.lock.Lock()
	defer ls.lock.Unlock()
	ls.schemaRuntime = time.Since(ls.startTime)
}

// EndFile tracks the end of the processing of a single file
func (ls *LoadStatistics) EndFile(path string, started time.Time, numPartitions int, numRows int, numMalformed int) {
	ls.lock.Lock()
	defer ls.lock.Unlock()
	ls.fileRuntimes[path] = time.Since(started)
	ls.filesProcessed++
	ls.partitionsProcessed += numPartitions
	ls.rowsProcessed += int64(numRows)
	ls.malformedRecords += int64(numMalformed)
}

// Finish completes statistics tracking
func (ls *LoadStatistics) Finish() {
	ls.lock.Lock()
	defer ls.lock.Unlock()
	if !ls.finished {
		ls.finished = true
		ls.totalRuntime = time.Since(ls.startTime)
	}
}

// GetStartTime returns the start time of the load
func (ls *LoadStatistics) GetStartTime() time.Time {
	ls.lock.Lock()
	defer ls.lock.Unlock()
	return ls.startTime
}

// GetRuntime returns the running time of the load
func (ls *LoadStatistics) GetRuntime() time.Duration {
	ls.lock.Lock()
	defer ls.lock.Unlock()
	if ls.finished {
		return ls.totalRuntime
	}
	return time.Since(ls.startTime)
}

// GetSchemaRuntime returns the time spent inferring the schema
func (ls *LoadStatistics) GetSchemaRuntime() time.Duration {
	ls.lock.Lock()
	defer ls.lock.Unlock()
	return ls.schemaRuntime
}

// GetNumFilesProcessed returns the number of files which have been parsed so far
func (ls *LoadStatistics) GetNumFilesProcessed() int {
	ls.lock.Lock()
	defer ls.lock.Unlock()
	return ls.filesProcessed
}

// GetNumRowsProcessed returns the number of Rows which have been loaded so far
func (ls *LoadStatistics) GetNumRowsProcessed() int64 {
	ls.lock.Lock()
	defer ls.lock.Unlock()
	return ls.rowsProcessed
}

// GetNumPartitionsProcessed returns the number of non-empty Partitions which have been loaded so far
func (ls *LoadStatistics) GetNumPartitionsProcessed() int {
	ls.lock.Lock()
	defer ls.lock.Unlock()
	return ls.partitionsProcessed
}

// GetNumMalformedRecords returns the number of malformed records the parsers reported
func (ls *LoadStatistics) GetNumMalformedRecords() int64 {
	ls.lock.Lock()
	defer ls.lock.Unlock()
	return ls.malformedRecords
}

// GetFileRuntime returns how long parsing a particular file took
func (ls *LoadStatistics) GetFileRuntime(path string) (time.Duration, bool) {
	ls.lock.Lock()
	defer ls.lock.Unlock()
	d, ok := ls.fileRuntimes[path]
	return d, ok
}
