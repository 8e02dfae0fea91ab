package modelstore

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/SukarnBharadwaj/Krishi-Mitra/internal/domain/pipeline"
)

// Loaded is a bound model together with where it came from
type Loaded struct {
	Model       *pipeline.Model
	Path        string
	Format      string
	Fingerprint string
	LoadedAt    time.Time
}

// Loader reads an artifact file and tries each provider in order
type Loader struct {
	providers []Provider
	kinds     *pipeline.Kinds
	logger    *zap.Logger
}

// NewLoader creates a loader. With no providers the defaults are used.
func NewLoader(kinds *pipeline.Kinds, logger *zap.Logger, providers ...Provider) *Loader {
	if len(providers) == 0 {
		providers = DefaultProviders()
	}
	if kinds == nil {
		kinds = pipeline.DefaultKinds()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Loader{providers: providers, kinds: kinds, logger: logger}
}

// Load reads path and returns the first artifact a provider can decode,
// build and bind.
func (l *Loader) Load(path string) (*Loaded, error) {
	l.logger.Info("Loading model", zap.String("path", path))

	shim := l.kinds.ApplyCompatShim()
	if shim != pipeline.ShimPresent {
		l.logger.Info("Compatibility shim applied",
			zap.String("kind", pipeline.LegacyKindRemainderColsList),
			zap.String("result", string(shim)))
	}

	data, err := os.ReadFile(path)
	if err != nil {
		l.logger.Error("Model file could not be read", zap.String("path", path), zap.Error(err))
		return nil, fmt.Errorf("read model file: %w", err)
	}

	var failures []error
	for _, p := range l.providers {
		loaded, err := l.try(p, data)
		if err != nil {
			l.logger.Warn("Model provider failed", zap.String("format", p.Name()), zap.Error(err))
			failures = append(failures, fmt.Errorf("%s: %w", p.Name(), err))
			continue
		}

		loaded.Path = path
		loaded.Fingerprint = fingerprint(data)
		loaded.LoadedAt = time.Now().UTC()
		l.logger.Info("Model loaded",
			zap.String("format", loaded.Format),
			zap.String("source", string(loaded.Model.Source())),
			zap.String("fingerprint", loaded.Fingerprint))
		return loaded, nil
	}

	l.logger.Error("Model could not be loaded by any provider", zap.String("path", path))
	return nil, fmt.Errorf("no provider could load %s: %w", path, errors.Join(failures...))
}

// Document reads path and returns the first document a provider can decode
// and build, along with the provider's name.
func (l *Loader) Document(path string) (*pipeline.Document, string, error) {
	l.kinds.ApplyCompatShim()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, "", fmt.Errorf("read model file: %w", err)
	}

	var failures []error
	for _, p := range l.providers {
		doc, err := p.Decode(data)
		if err == nil {
			_, err = pipeline.Build(doc, l.kinds)
		}
		if err != nil {
			failures = append(failures, fmt.Errorf("%s: %w", p.Name(), err))
			continue
		}
		return doc, p.Name(), nil
	}
	return nil, "", fmt.Errorf("no provider could decode %s: %w", path, errors.Join(failures...))
}

func (l *Loader) try(p Provider, data []byte) (*Loaded, error) {
	doc, err := p.Decode(data)
	if err != nil {
		return nil, err
	}
	artifact, err := pipeline.Build(doc, l.kinds)
	if err != nil {
		return nil, err
	}
	model, err := pipeline.Bind(artifact)
	if err != nil {
		return nil, err
	}
	return &Loaded{Model: model, Format: p.Name()}, nil
}

func fingerprint(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}
