package rng

import (
	"fmt"
	"sync"

	"github.com/tevino/abool"

	"github.com/maxrng/maxrng/log"
)

var (
	engineLock  sync.Mutex
	initOnce    sync.Once
	engineReady = abool.New()
)

// Init sets up the process-wide engine lock. Calling it is optional, the
// lock is initialized lazily on first use of the internal-lock discipline.
// Init is idempotent and safe for concurrent use.
func Init() {
	initOnce.Do(func() {
		engineReady.Set()
		log.Debugf("rng: engine initialized")
	})
}

// Initialized reports whether the engine lock has been set up.
func Initialized() bool {
	return engineReady.IsSet()
}

// acquire serializes the invocation according to the configured discipline
// and returns the matching release function.
func acquire(c *Config) (release func(), err error) {
	switch c.Concurrency {
	case ConcurrencyNone:
		return func() {}, nil
	case ConcurrencyInternalLock:
		Init()
		engineLock.Lock()
		return engineLock.Unlock, nil
	case ConcurrencyUserLock:
		if c.Locker == nil {
			return nil, fmt.Errorf("%w: user lock discipline without a locker", ErrInvalidArgument)
		}
		c.Locker.Lock()
		return c.Locker.Unlock, nil
	default:
		return nil, fmt.Errorf("%w: unknown concurrency mode %d", ErrInvalidArgument, c.Concurrency)
	}
}
