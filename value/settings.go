package value

import (
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/hupe1980/vecscript/internal/parallel"
	"github.com/hupe1980/vecscript/internal/pool"
	"github.com/hupe1980/vecscript/internal/resource"
)

// Observer receives dispatch events from the object layer.
type Observer interface {
	ObserveDispatch(op string, elements int, bulk bool, d time.Duration, err error)
}

// Settings are the process-wide collaborators of the value system. They are
// installed once per session by the runtime.
type Settings struct {
	// Kernel runs sorts and reductions. Nil sorts sequentially.
	Kernel *parallel.Kernel

	// Memory charges buffer growth. Nil tracks nothing.
	Memory *resource.Controller

	// Pool issues Value instances. Nil uses a default pool.
	Pool *pool.Pool[Value]

	// Observer receives dispatch events. Nil disables them.
	Observer Observer

	// Logger receives debug and warning output. Nil discards it.
	Logger *slog.Logger
}

var current atomic.Pointer[Settings]

func init() {
	current.Store(defaultSettings())
}

func defaultSettings() *Settings {
	return &Settings{
		Pool:   pool.New[Value](0, 0),
		Logger: slog.New(slog.DiscardHandler),
	}
}

// Configure installs s and returns the settings it replaced, so a session can
// restore them on close. Values allocated before the call keep returning to
// the pool they came from.
func Configure(s Settings) Settings {
	if s.Pool == nil {
		s.Pool = pool.New[Value](0, 0)
	}
	if s.Logger == nil {
		s.Logger = slog.New(slog.DiscardHandler)
	}
	return *current.Swap(&s)
}

// CurrentSettings returns the installed settings.
func CurrentSettings() Settings {
	return *current.Load()
}

func settings() *Settings {
	return current.Load()
}

// PoolStats reports the instance pool's usage.
func PoolStats() pool.Stats {
	return settings().Pool.Stats()
}
