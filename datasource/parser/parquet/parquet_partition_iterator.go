package parquet

import (
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/hpetrov29/sifetl"
	sifeterrors "github.com/hpetrov29/sifetl/errors"
	"github.com/hpetrov29/sifetl/partition"
	"github.com/segmentio/parquet-go"
)

type parquetFilePartitionIterator struct {
	parser       *Parser
	reader       *parquet.Reader
	targets      []int
	hasNext      bool
	source       sifetl.DataSource
	schema       sifetl.Schema
	buffer       []parquet.Row
	lock         sync.Mutex
	endListeners []func()
}

// OnEnd registers a listener which fires when this iterator runs out of Partitions
func (pqi *parquetFilePartitionIterator) OnEnd(onEnd func()) {
	pqi.lock.Lock()
	defer pqi.lock.Unlock()
	pqi.endListeners = append(pqi.endListeners, onEnd)
}

// HasNextPartition returns true iff this PartitionIterator can produce another Partition
func (pqi *parquetFilePartitionIterator) HasNextPartition() bool {
	pqi.lock.Lock()
	defer pqi.lock.Unlock()
	return pqi.hasNext
}

// Close stops iteration early, firing the end listeners if they have not fired yet
func (pqi *parquetFilePartitionIterator) Close() {
	pqi.lock.Lock()
	defer pqi.lock.Unlock()
	pqi.finish()
}

func (pqi *parquetFilePartitionIterator) finish() {
	if !pqi.hasNext {
		return
	}
	pqi.hasNext = false
	pqi.reader.Close()
	for _, l := range pqi.endListeners {
		l()
	}
	pqi.endListeners = []func(){}
}

// NextPartition returns the next Partition if one is available, or an error
func (pqi *parquetFilePartitionIterator) NextPartition() (sifetl.Partition, error) {
	pqi.lock.Lock()
	defer pqi.lock.Unlock()
	if !pqi.hasNext {
		return nil, sifeterrors.NoMorePartitionsError{}
	}
	colTypes := pqi.schema.ColumnTypes()
	part := partition.CreateBuildablePartition(pqi.parser.PartitionSize(), pqi.schema)
	n, err := pqi.reader.ReadRows(pqi.buffer)
	if err != nil && !errors.Is(err, io.EOF) {
		pqi.finish()
		return nil, fmt.Errorf("failed to read row: %w", err)
	}
	for _, pqRow := range pqi.buffer[:n] {
		values := make([]interface{}, len(colTypes))
		for _, v := range pqRow {
			col := v.Column()
			if col < 0 || col >= len(pqi.targets) {
				continue
			}
			target := pqi.targets[col]
			val, err := sifetl.ConvertValue(toValue(v), colTypes[target])
			if err != nil {
				pqi.finish()
				return nil, err
			}
			values[target] = val
		}
		if err := part.AppendRowData(values); err != nil {
			pqi.finish()
			return nil, err
		}
	}
	if errors.Is(err, io.EOF) || n == 0 {
		pqi.finish()
	}
	return part, nil
}

// toValue converts a parquet value to the representation used by Rows
func toValue(v parquet.Value) interface{} {
	if v.IsNull() {
		return nil
	}
	switch v.Kind() {
	case parquet.Boolean:
		return v.Boolean()
	case parquet.Int32:
		return int64(v.Int32())
	case parquet.Int64:
		return v.Int64()
	case parquet.Float:
		return float64(v.Float())
	case parquet.Double:
		return v.Double()
	case parquet.ByteArray, parquet.FixedLenByteArray:
		return string(v.ByteArray())
	default:
		return v.String()
	}
}
