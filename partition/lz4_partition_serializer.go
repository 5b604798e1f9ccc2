package partition

import (
	"encoding/gob"
	"fmt"
	"io"

	"github.com/hpetrov29/sifetl"
	"github.com/pierrec/lz4"
)

// serializedPartition is the gob representation of a Partition
type serializedPartition struct {
	ID      string
	MaxRows int
	Rows    [][]interface{}
}

// LZ4PartitionSerializer is a partition serializer which uses the lz4 compression algorithm
type LZ4PartitionSerializer struct{}

// NewLZ4PartitionSerializer instantiates a new LZ4PartitionSerializer
func NewLZ4PartitionSerializer() sifetl.PartitionSerializer {
	return &LZ4PartitionSerializer{}
}

// Compress serializes and compresses partition data to a write stream
func (lz4ps *LZ4PartitionSerializer) Compress(w io.Writer, part sifetl.Partition) error {
	ser := serializedPartition{
		ID:      part.ID(),
		MaxRows: part.GetMaxRows(),
		Rows:    make([][]interface{}, 0, part.GetNumRows()),
	}
	err := part.ForEachRow(func(row sifetl.Row) error {
		ser.Rows = append(ser.Rows, row.Values())
		return nil
	})
	if err != nil {
		return err
	}
	compressor := lz4.NewWriter(w)
	if err := gob.NewEncoder(compressor).Encode(&ser); err != nil {
		compressor.Close()
		return fmt.Errorf("unable to encode partition %s: %w", part.ID(), err)
	}
	return compressor.Close()
}

// Decompress decompresses and deserializes partition data from a read stream
func (lz4ps *LZ4PartitionSerializer) Decompress(r io.Reader, schema sifetl.Schema) (sifetl.Partition, error) {
	var ser serializedPartition
	if err := gob.NewDecoder(lz4.NewReader(r)).Decode(&ser); err != nil {
		return nil, fmt.Errorf("unable to decompress partition data: %w", err)
	}
	part := createPartitionImpl(ser.ID, ser.MaxRows, schema)
	for _, values := range ser.Rows {
		if err := part.AppendRowData(values); err != nil {
			return nil, err
		}
	}
	return part, nil
}
