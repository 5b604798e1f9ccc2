package pcache

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	lrucache "github.com/hashicorp/golang-lru"
	"github.com/hpetrov29/sifetl"
	"github.com/hpetrov29/sifetl/errors"
	"github.com/hpetrov29/sifetl/logging"
)

// lru is an LRU cache for Partitions, which spills least-recently-used Partitions to disk
type lru struct {
	config     *LRUConfig
	memory     *lrucache.Cache
	loadLock   sync.Mutex // serializes reloads from disk
	diskLock   sync.Mutex
	onDisk     map[string]string
	spillErr   error
	diskPath   string
	destroyed  bool
	numSpilled int
}

// NewLRU produces an LRU PartitionCache
func NewLRU(config *LRUConfig) (PartitionCache, error) {
	if config.Size < 1 {
		return nil, fmt.Errorf("LRUConfig.Size %d must be greater than 0", config.Size)
	}
	if config.Schema == nil {
		return nil, fmt.Errorf("LRUConfig.Schema must not be nil")
	}
	if config.Serializer == nil {
		return nil, fmt.Errorf("LRUConfig.Serializer must not be nil")
	}
	if len(config.DiskPath) == 0 {
		config.DiskPath = os.TempDir()
	}
	if config.Logger == nil {
		config.Logger = logging.Discard()
	}
	diskPath, err := os.MkdirTemp(config.DiskPath, "sifetl-pcache-")
	if err != nil {
		return nil, fmt.Errorf("unable to create partition spill directory: %w", err)
	}
	c := &lru{
		config:   config,
		onDisk:   make(map[string]string),
		diskPath: diskPath,
	}
	c.memory, err = lrucache.NewWithEvict(config.Size, c.onEvict)
	if err != nil {
		os.RemoveAll(diskPath)
		return nil, err
	}
	return c, nil
}

// onEvict runs while the in-memory tier holds its lock, and must not call back into it
func (c *lru) onEvict(key interface{}, value interface{}) {
	c.diskLock.Lock()
	defer c.diskLock.Unlock()
	if c.destroyed {
		return
	}
	id := key.(string)
	part := value.(sifetl.Partition)
	path := filepath.Join(c.diskPath, id+".lz4")
	if err := c.writePartition(path, part); err != nil {
		if c.spillErr == nil {
			c.spillErr = err
		}
		return
	}
	c.onDisk[id] = path
	c.numSpilled++
}

func (c *lru) writePartition(path string, part sifetl.Partition) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("unable to spill partition %s: %w", part.ID(), err)
	}
	if err := c.config.Serializer.Compress(f, part); err != nil {
		f.Close()
		os.Remove(path)
		return fmt.Errorf("unable to spill partition %s: %w", part.ID(), err)
	}
	return f.Close()
}

func (c *lru) readPartition(path string) (sifetl.Partition, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return c.config.Serializer.Decompress(f, c.config.Schema)
}

func (c *lru) checkSpillErr() error {
	c.diskLock.Lock()
	defer c.diskLock.Unlock()
	if c.destroyed {
		return fmt.Errorf("partition cache has been destroyed")
	}
	return c.spillErr
}

// Add stores a Partition in the cache, possibly spilling an older Partition to disk
func (c *lru) Add(part sifetl.Partition) error {
	if err := c.checkSpillErr(); err != nil {
		return err
	}
	c.memory.Add(part.ID(), part)
	return c.checkSpillErr()
}

// Get retrieves a Partition from memory, reloading it from disk if it was spilled
func (c *lru) Get(id string) (sifetl.Partition, error) {
	if err := c.checkSpillErr(); err != nil {
		return nil, err
	}
	if value, ok := c.memory.Get(id); ok {
		return value.(sifetl.Partition), nil
	}
	c.loadLock.Lock()
	defer c.loadLock.Unlock()
	// another caller may have reloaded it while we waited
	if value, ok := c.memory.Get(id); ok {
		return value.(sifetl.Partition), nil
	}
	c.diskLock.Lock()
	path, ok := c.onDisk[id]
	delete(c.onDisk, id)
	c.diskLock.Unlock()
	if !ok {
		return nil, errors.MissingPartitionError{ID: id}
	}
	part, err := c.readPartition(path)
	if err != nil {
		return nil, fmt.Errorf("unable to reload partition %s: %w", id, err)
	}
	if err := os.Remove(path); err != nil {
		c.config.Logger.Warn("couldn't remove spilled partition", "path", path, "error", err)
	}
	c.memory.Add(id, part)
	return part, c.checkSpillErr()
}

// Len returns the number of Partitions in the cache, in memory or on disk
func (c *lru) Len() int {
	c.diskLock.Lock()
	defer c.diskLock.Unlock()
	return c.memory.Len() + len(c.onDisk)
}

// NumSpilled returns the number of times a Partition has been written to disk
func (c *lru) NumSpilled() int {
	c.diskLock.Lock()
	defer c.diskLock.Unlock()
	return c.numSpilled
}

// Destroy drops every Partition and removes spilled data from disk
func (c *lru) Destroy() error {
	c.diskLock.Lock()
	if c.destroyed {
		c.diskLock.Unlock()
		return nil
	}
	c.destroyed = true
	c.onDisk = make(map[string]string)
	c.diskLock.Unlock()
	c.memory.Purge()
	return os.RemoveAll(c.diskPath)
}
