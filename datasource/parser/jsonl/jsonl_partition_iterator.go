package jsonl

import (
	"fmt"
	"sync"

	"github.com/hpetrov29/sifetl"
	"github.com/hpetrov29/sifetl/errors"
	"github.com/hpetrov29/sifetl/partition"
)

type jsonlFilePartitionIterator struct {
	parser       *Parser
	lines        *lineReader
	hasNext      bool
	source       sifetl.DataSource
	schema       sifetl.Schema
	lock         sync.Mutex
	endListeners []func()
	lineNum      int
	numMalformed int
}

// OnEnd registers a listener which fires when this iterator runs out of Partitions
func (jsonli *jsonlFilePartitionIterator) OnEnd(onEnd func()) {
	jsonli.lock.Lock()
	defer jsonli.lock.Unlock()
	jsonli.endListeners = append(jsonli.endListeners, onEnd)
}

// HasNextPartition returns true iff this PartitionIterator can produce another Partition
func (jsonli *jsonlFilePartitionIterator) HasNextPartition() bool {
	jsonli.lock.Lock()
	defer jsonli.lock.Unlock()
	return jsonli.hasNext
}

// NumMalformedRecords returns the number of malformed records encountered so far
func (jsonli *jsonlFilePartitionIterator) NumMalformedRecords() int {
	jsonli.lock.Lock()
	defer jsonli.lock.Unlock()
	return jsonli.numMalformed
}

// Close stops iteration early, firing the end listeners if they have not fired yet
func (jsonli *jsonlFilePartitionIterator) Close() {
	jsonli.lock.Lock()
	defer jsonli.lock.Unlock()
	jsonli.finish()
}

func (jsonli *jsonlFilePartitionIterator) finish() {
	jsonli.hasNext = false
	for _, l := range jsonli.endListeners {
		l()
	}
	jsonli.endListeners = []func(){}
}

// NextPartition returns the next Partition if one is available, or an error
func (jsonli *jsonlFilePartitionIterator) NextPartition() (sifetl.Partition, error) {
	jsonli.lock.Lock()
	defer jsonli.lock.Unlock()
	if !jsonli.hasNext {
		return nil, errors.NoMorePartitionsError{}
	}
	colNames := jsonli.schema.ColumnNames()
	colTypes := jsonli.schema.ColumnTypes()
	part := partition.CreateBuildablePartition(jsonli.parser.PartitionSize(), jsonli.schema)
	for {
		// If the partition is full, we're done
		if part.GetNumRows() == part.GetMaxRows() {
			return part, nil
		}
		// Otherwise, grab another line from the file
		line, ok, err := jsonli.lines.next()
		if err != nil {
			jsonli.finish()
			return nil, err
		} else if !ok {
			jsonli.finish()
			return part, nil
		}
		jsonli.lineNum++
		if isBlank(line) {
			continue
		}
		values, malformed := scanRow(colNames, colTypes, line)
		if malformed != nil {
			jsonli.numMalformed++
			switch jsonli.parser.conf.Mode {
			case sifetl.DropMalformedMode:
				continue
			case sifetl.FailFastMode:
				jsonli.finish()
				return nil, fmt.Errorf("malformed record at line %d: %w", jsonli.lineNum, malformed)
			}
		}
		if err := part.AppendRowData(values); err != nil {
			jsonli.finish()
			return nil, err
		}
	}
}
