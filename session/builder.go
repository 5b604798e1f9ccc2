package session

import (
	"sync"

	"github.com/gofrs/uuid"
	"github.com/hpetrov29/sifetl/config"
	"github.com/hpetrov29/sifetl/errors"
	"github.com/hpetrov29/sifetl/logging"
)

// active Sessions, keyed by master and app name
var (
	registryLock sync.Mutex
	registry     = make(map[string]*Session)
)

func registryKey(master string, appName string) string {
	return master + "\x00" + appName
}

// Builder configures a Session
type Builder struct {
	Master  string          // where the engine runs. Defaults to local[*]
	AppName string          // the name of the application. Defaults to myapp
	Options *Options        // engine tunables. Defaults are applied to unset values
	Logger  *logging.Logger // receives the Session's log records. Defaults to a Logger which discards everything
}

// GetOrCreate returns the active Session with the Builder's master and app name, if
// there is one. Otherwise, it starts a new Session. Options and Logger are ignored when
// an existing Session is returned.
func (b *Builder) GetOrCreate() (*Session, error) {
	master := b.Master
	if len(master) == 0 {
		master = config.DefaultMaster
	}
	appName := b.AppName
	if len(appName) == 0 {
		appName = config.DefaultAppName
	}
	parallelism, err := parseMaster(master)
	if err != nil {
		return nil, err
	}

	registryLock.Lock()
	defer registryLock.Unlock()
	key := registryKey(master, appName)
	if s, ok := registry[key]; ok {
		return s, nil
	}

	id, err := uuid.NewV4()
	if err != nil {
		return nil, &errors.EngineError{Op: "start session", Err: err}
	}
	opts := CloneOptions(b.Options)
	ensureDefaultOptionsValues(opts)
	logger := b.Logger
	if logger == nil {
		logger = logging.Discard()
	}
	s := &Session{
		id:          id.String(),
		master:      master,
		appName:     appName,
		parallelism: parallelism,
		opts:        opts,
		logger:      logger,
	}
	registry[key] = s
	logger.Info("started session", "id", s.id, "master", master, "app", appName, "parallelism", parallelism)
	return s, nil
}

func unregister(s *Session) {
	registryLock.Lock()
	defer registryLock.Unlock()
	key := registryKey(s.master, s.appName)
	if registry[key] == s {
		delete(registry, key)
	}
}
