// Package session starts and manages local engine sessions, through which File Sets are loaded.
package session

import (
	"fmt"
	"sync"

	"github.com/hashicorp/go-multierror"
	"github.com/hpetrov29/sifetl/config"
	"github.com/hpetrov29/sifetl/errors"
	"github.com/hpetrov29/sifetl/internal/pcache"
	"github.com/hpetrov29/sifetl/logging"
)

// Session is a handle to a running local engine
type Session struct {
	id          string
	master      string
	appName     string
	parallelism int
	opts        *Options
	logger      *logging.Logger

	lock    sync.Mutex
	stopped bool
	caches  []pcache.PartitionCache
}

// Start builds a Session from a loaded configuration, or returns the active Session
// with the same master and app name. If the configuration names a log level, it becomes
// the Session's logging verbosity. Otherwise the verbosity of logger is left unchanged.
func Start(cfg *config.Config, logger *logging.Logger) (*Session, error) {
	if cfg == nil {
		cfg = config.Default()
	}
	b := &Builder{
		Master:  cfg.Master,
		AppName: cfg.AppName,
		Options: &Options{
			PartitionSize:         cfg.Engine.PartitionSize,
			NumInMemoryPartitions: cfg.Engine.NumInMemoryPartitions,
			TempDir:               cfg.Engine.TempDir,
			InferSchema:           cfg.Engine.InferSchema,
		},
		Logger: logger,
	}
	s, err := b.GetOrCreate()
	if err != nil {
		return nil, err
	}
	if cfg.HasLogLevel() {
		if err := s.SetLogLevel(cfg.LogLevel); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// ID returns the unique ID of this Session
func (s *Session) ID() string {
	return s.id
}

// Master returns the master string this Session was started with
func (s *Session) Master() string {
	return s.master
}

// AppName returns the application name of this Session
func (s *Session) AppName() string {
	return s.appName
}

// Parallelism returns the number of files this Session parses concurrently
func (s *Session) Parallelism() int {
	return s.parallelism
}

// Options returns a copy of the engine tunables of this Session
func (s *Session) Options() *Options {
	return CloneOptions(s.opts)
}

// Logger returns the Logger of this Session
func (s *Session) Logger() *logging.Logger {
	return s.logger
}

// SetLogLevel changes the logging verbosity of this Session, given a level name such as WARN
func (s *Session) SetLogLevel(level string) error {
	lvl, err := logging.ParseLevel(level)
	if err != nil {
		return &errors.ConfigError{Key: "log.level", Err: err}
	}
	s.logger.SetLevel(lvl)
	return nil
}

// IsStopped returns true iff Stop has been called on this Session
func (s *Session) IsStopped() bool {
	s.lock.Lock()
	defer s.lock.Unlock()
	return s.stopped
}

// track registers a cache of loaded Partitions, to be destroyed when this Session stops
func (s *Session) track(cache pcache.PartitionCache) error {
	s.lock.Lock()
	defer s.lock.Unlock()
	if s.stopped {
		return fmt.Errorf("session %s is stopped", s.id)
	}
	s.caches = append(s.caches, cache)
	return nil
}

// Stop stops this Session, discarding every DataFrame it loaded. A subsequent
// GetOrCreate with the same master and app name starts a new Session.
func (s *Session) Stop() error {
	s.lock.Lock()
	if s.stopped {
		s.lock.Unlock()
		return nil
	}
	s.stopped = true
	caches := s.caches
	s.caches = nil
	s.lock.Unlock()

	unregister(s)
	var result *multierror.Error
	for _, c := range caches {
		if err := c.Destroy(); err != nil {
			result = multierror.Append(result, err)
		}
	}
	s.logger.Info("stopped session", "id", s.id)
	if err := result.ErrorOrNil(); err != nil {
		return &errors.EngineError{Op: "stop session", Err: err}
	}
	return nil
}
