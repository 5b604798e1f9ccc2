package session

import "os"

// Options are the engine tunables of a Session
type Options struct {
	PartitionSize         int    // maximum number of rows per Partition
	NumInMemoryPartitions int    // the number of Partitions to retain in memory before swapping to disk, per load
	TempDir               string // location for storing temporary files (spilled Partitions)
	InferSchema           bool   // iff true, CSV loads infer column types unless the reader says otherwise
}

// CloneOptions makes a copy of an Options
func CloneOptions(opts *Options) *Options {
	if opts == nil {
		return &Options{}
	}
	return &Options{
		PartitionSize:         opts.PartitionSize,
		NumInMemoryPartitions: opts.NumInMemoryPartitions,
		TempDir:               opts.TempDir,
		InferSchema:           opts.InferSchema,
	}
}

func ensureDefaultOptionsValues(opts *Options) {
	if opts.PartitionSize <= 0 {
		opts.PartitionSize = 128
	}
	if opts.NumInMemoryPartitions <= 0 {
		opts.NumInMemoryPartitions = 100
	}
	if len(opts.TempDir) == 0 {
		opts.TempDir = os.TempDir()
	}
}
