package dsv

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/hpetrov29/sifetl"
	sifeterrors "github.com/hpetrov29/sifetl/errors"
	"github.com/hpetrov29/sifetl/partition"
)

type dsvFilePartitionIterator struct {
	parser       *Parser
	reader       *csv.Reader
	hasNext      bool
	source       sifetl.DataSource
	schema       sifetl.Schema
	lock         sync.Mutex
	endListeners []func()
	numMalformed int
}

// OnEnd registers a listener which fires when this iterator runs out of Partitions
func (dsvi *dsvFilePartitionIterator) OnEnd(onEnd func()) {
	dsvi.lock.Lock()
	defer dsvi.lock.Unlock()
	dsvi.endListeners = append(dsvi.endListeners, onEnd)
}

// HasNextPartition returns true iff this PartitionIterator can produce another Partition
func (dsvi *dsvFilePartitionIterator) HasNextPartition() bool {
	dsvi.lock.Lock()
	defer dsvi.lock.Unlock()
	return dsvi.hasNext
}

// NumMalformedRecords returns the number of malformed records encountered so far
func (dsvi *dsvFilePartitionIterator) NumMalformedRecords() int {
	dsvi.lock.Lock()
	defer dsvi.lock.Unlock()
	return dsvi.numMalformed
}

// Close stops iteration early, firing the end listeners if they have not fired yet
func (dsvi *dsvFilePartitionIterator) Close() {
	dsvi.lock.Lock()
	defer dsvi.lock.Unlock()
	dsvi.finish()
}

func (dsvi *dsvFilePartitionIterator) finish() {
	dsvi.hasNext = false
	for _, l := range dsvi.endListeners {
		l()
	}
	dsvi.endListeners = []func(){}
}

// NextPartition returns the next Partition if one is available, or an error
func (dsvi *dsvFilePartitionIterator) NextPartition() (sifetl.Partition, error) {
	dsvi.lock.Lock()
	defer dsvi.lock.Unlock()
	if !dsvi.hasNext {
		return nil, sifeterrors.NoMorePartitionsError{}
	}
	colNames := dsvi.schema.ColumnNames()
	colTypes := dsvi.schema.ColumnTypes()
	conf := dsvi.parser.conf
	part := partition.CreateBuildablePartition(dsvi.parser.PartitionSize(), dsvi.schema)
	for {
		// If the partition is full, we're done
		if part.GetNumRows() == part.GetMaxRows() {
			return part, nil
		}
		// Otherwise, grab another line from the file
		record, err := dsvi.reader.Read()
		if err == io.EOF {
			dsvi.finish()
			return part, nil
		}
		var values []interface{}
		var malformed error
		var line int
		var perr *csv.ParseError
		if errors.As(err, &perr) {
			malformed = err
			line = perr.StartLine
			values = make([]interface{}, len(colNames))
		} else if err != nil {
			dsvi.finish()
			return nil, err
		} else {
			line, _ = dsvi.reader.FieldPos(0)
			values, malformed = scanRow(conf, colNames, colTypes, record)
		}
		if malformed != nil {
			dsvi.numMalformed++
			switch conf.Mode {
			case sifetl.DropMalformedMode:
				continue
			case sifetl.FailFastMode:
				dsvi.finish()
				return nil, fmt.Errorf("malformed record at line %d: %w", line, malformed)
			}
		}
		if err := part.AppendRowData(values); err != nil {
			dsvi.finish()
			return nil, err
		}
	}
}
