package modelstore

import (
	"sync"
	"sync/atomic"

	"go.uber.org/zap"

	"github.com/SukarnBharadwaj/Krishi-Mitra/internal/infrastructure/metrics"
)

// ArtifactLoader loads a bound model from a path
type ArtifactLoader interface {
	Load(path string) (*Loaded, error)
}

// Registry owns the process-wide loaded model. Readers take a snapshot with
// Current; loads are serialized and install a model only when fully bound.
type Registry struct {
	path    string
	loader  ArtifactLoader
	logger  *zap.Logger
	mu      sync.Mutex
	current atomic.Pointer[Loaded]
}

// NewRegistry creates an empty registry for the configured path
func NewRegistry(path string, loader ArtifactLoader, logger *zap.Logger) *Registry {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Registry{path: path, loader: loader, logger: logger}
}

// Path returns the configured artifact path
func (r *Registry) Path() string { return r.path }

// Current returns the installed model or nil
func (r *Registry) Current() *Loaded { return r.current.Load() }

// Loaded reports whether a model is installed
func (r *Registry) Loaded() bool { return r.current.Load() != nil }

// LoadInitial performs the startup load. On failure the registry is left
// empty and the error is only logged.
func (r *Registry) LoadInitial() bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	loaded, err := r.loader.Load(r.path)
	if err != nil {
		r.current.Store(nil)
		metrics.ModelReloadsTotal.WithLabelValues("failure").Inc()
		metrics.SetModelLoaded(false)
		r.logger.Error("Starting without a model", zap.String("path", r.path), zap.Error(err))
		return false
	}

	r.current.Store(loaded)
	metrics.ModelReloadsTotal.WithLabelValues("success").Inc()
	metrics.SetModelLoaded(true)
	return true
}

// Reload loads the configured path again. A failed reload keeps whatever
// model was installed before.
func (r *Registry) Reload() (*Loaded, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	loaded, err := r.loader.Load(r.path)
	if err != nil {
		metrics.ModelReloadsTotal.WithLabelValues("failure").Inc()
		prev := r.current.Load()
		metrics.SetModelLoaded(prev != nil)
		if prev != nil {
			r.logger.Warn("Reload failed, keeping previous model",
				zap.String("fingerprint", prev.Fingerprint), zap.Error(err))
		}
		return prev, err
	}

	r.current.Store(loaded)
	metrics.ModelReloadsTotal.WithLabelValues("success").Inc()
	metrics.SetModelLoaded(true)
	return loaded, nil
}
