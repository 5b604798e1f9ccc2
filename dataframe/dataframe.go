// Package dataframe provides the tabular structure produced by loading a File Set.
package dataframe

import (
	"fmt"
	"io"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/hpetrov29/sifetl"
	"github.com/hpetrov29/sifetl/internal/pcache"
	"github.com/hpetrov29/sifetl/internal/stats"
	"github.com/hpetrov29/sifetl/partition"
	"github.com/olekukonko/tablewriter"
)

// Conf describes a loaded File Set
type Conf struct {
	Schema       sifetl.Schema
	Files        []string // the File Set, in load order
	Format       string   // the Format Tag the File Set was loaded as
	PartitionIDs []string // Partitions in cache, in file order
	Cache        pcache.PartitionCache
	Stats        *stats.LoadStatistics
}

// DataFrame is a loaded, read-only table: a Schema and the Partitions
// holding its rows. Its Partitions belong to the session which loaded it,
// and become unavailable once that session is stopped.
type DataFrame struct {
	schema       sifetl.Schema
	files        []string
	format       string
	partitionIDs []string
	cache        pcache.PartitionCache
	stats        *stats.LoadStatistics
	fingerprint  uint64
}

// Stats summarizes a load
type Stats struct {
	Files            int
	Partitions       int
	Rows             int64
	MalformedRecords int64
	SchemaRuntime    time.Duration
	Runtime          time.Duration
	Fingerprint      uint64 // identifies the File Set and Format. Equal for loads of the same files as the same format
}

// New creates a DataFrame over Partitions which have already been loaded into a cache
func New(conf *Conf) *DataFrame {
	files := make([]string, len(conf.Files))
	copy(files, conf.Files)
	ids := make([]string, len(conf.PartitionIDs))
	copy(ids, conf.PartitionIDs)
	ls := conf.Stats
	if ls == nil {
		ls = &stats.LoadStatistics{}
		ls.Start()
		ls.Finish()
	}
	return &DataFrame{
		schema:       conf.Schema,
		files:        files,
		format:       conf.Format,
		partitionIDs: ids,
		cache:        conf.Cache,
		stats:        ls,
		fingerprint:  fingerprint(conf.Format, files),
	}
}

func fingerprint(format string, files []string) uint64 {
	hasher := xxhash.New()
	hasher.WriteString(format)
	for _, f := range files {
		hasher.Write([]byte{0})
		hasher.WriteString(f)
	}
	return hasher.Sum64()
}

// GetSchema returns the Schema of this DataFrame
func (df *DataFrame) GetSchema() sifetl.Schema {
	return df.schema
}

// Files returns the File Set this DataFrame was loaded from
func (df *DataFrame) Files() []string {
	files := make([]string, len(df.files))
	copy(files, df.files)
	return files
}

// Format returns the Format Tag this DataFrame was loaded as
func (df *DataFrame) Format() string {
	return df.format
}

// NumPartitions returns the number of non-empty Partitions in this DataFrame
func (df *DataFrame) NumPartitions() int {
	return len(df.partitionIDs)
}

// ForEachPartition iterates over the Partitions of this DataFrame, in file order
func (df *DataFrame) ForEachPartition(fn func(part sifetl.Partition) error) error {
	for _, id := range df.partitionIDs {
		part, err := df.cache.Get(id)
		if err != nil {
			return err
		}
		if err := fn(part); err != nil {
			return err
		}
	}
	return nil
}

// ForEachRow iterates over the Rows of this DataFrame, in file order. The Row
// passed to fn is only valid for the duration of the call.
func (df *DataFrame) ForEachRow(fn func(row sifetl.Row) error) error {
	return df.ForEachPartition(func(part sifetl.Partition) error {
		return part.ForEachRow(fn)
	})
}

// Count returns the number of Rows in this DataFrame
func (df *DataFrame) Count() (int64, error) {
	var count int64
	err := df.ForEachPartition(func(part sifetl.Partition) error {
		count += int64(part.GetNumRows())
		return nil
	})
	return count, err
}

// Collect returns up to limit Rows of this DataFrame, in file order. A limit below 0 collects every Row.
func (df *DataFrame) Collect(limit int) ([]sifetl.Row, error) {
	var rows []sifetl.Row
	errLimitReached := fmt.Errorf("limit reached")
	err := df.ForEachRow(func(row sifetl.Row) error {
		if limit >= 0 && len(rows) >= limit {
			return errLimitReached
		}
		values := make([]interface{}, len(row.Values()))
		copy(values, row.Values())
		rows = append(rows, partition.CreateRow(values, df.schema))
		return nil
	})
	if err != nil && err != errLimitReached {
		return nil, err
	}
	return rows, nil
}

// Show renders the first n Rows of this DataFrame to w as a table. nil values are rendered as null.
func (df *DataFrame) Show(w io.Writer, n int) error {
	rows, err := df.Collect(n)
	if err != nil {
		return err
	}
	colTypes := df.schema.ColumnTypes()
	table := tablewriter.NewWriter(w)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetHeader(df.schema.ColumnNames())
	for _, row := range rows {
		values := row.Values()
		record := make([]string, len(values))
		for i, v := range values {
			if v == nil {
				record[i] = "null"
			} else {
				record[i] = colTypes[i].ToString(v)
			}
		}
		table.Append(record)
	}
	table.Render()
	return nil
}

// Stats returns statistics about the load which produced this DataFrame
func (df *DataFrame) Stats() Stats {
	return Stats{
		Files:            df.stats.GetNumFilesProcessed(),
		Partitions:       df.stats.GetNumPartitionsProcessed(),
		Rows:             df.stats.GetNumRowsProcessed(),
		MalformedRecords: df.stats.GetNumMalformedRecords(),
		SchemaRuntime:    df.stats.GetSchemaRuntime(),
		Runtime:          df.stats.GetRuntime(),
		Fingerprint:      df.fingerprint,
	}
}
