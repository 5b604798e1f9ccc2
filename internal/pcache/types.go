// Package pcache caches the Partitions produced by a load, keeping a bounded number
// in memory and spilling the rest to disk.
package pcache

import (
	"github.com/hpetrov29/sifetl"
	"github.com/hpetrov29/sifetl/logging"
)

// PartitionCache is a cache for Partitions, keyed by Partition ID
type PartitionCache interface {
	Add(part sifetl.Partition) error
	Get(id string) (sifetl.Partition, error)
	Len() int
	NumSpilled() int
	Destroy() error
}

// LRUConfig configures an LRU PartitionCache
type LRUConfig struct {
	Size       int    // number of Partitions to retain in memory
	DiskPath   string // directory under which spilled Partitions are written. Defaults to os.TempDir()
	Schema     sifetl.Schema
	Serializer sifetl.PartitionSerializer
	Logger     *logging.Logger // receives warnings about spill files. Defaults to a Logger which discards everything
}
