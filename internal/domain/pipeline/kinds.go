package pipeline

import (
	"encoding/json"
	"fmt"
	"sort"
	"sync"
)

// Component kinds understood by this build
const (
	KindStandardScaler     = "preprocessing.standard_scaler"
	KindMinMaxScaler       = "preprocessing.min_max_scaler"
	KindColumnTransformer  = "compose.column_transformer"
	KindRemainderCols      = "compose.remainder_cols"
	KindLogisticRegression = "linear_model.logistic_regression"
	KindNearestCentroid    = "neighbors.nearest_centroid"

	// LegacyKindRemainderColsList is the remainder kind written by older
	// exporters. Current builds call it KindRemainderCols.
	LegacyKindRemainderColsList = "compose.remainder_cols_list"
)

// Builder decodes a component's params
type Builder func(k *Kinds, params json.RawMessage) (any, error)

// Kinds maps component kind names to builders
type Kinds struct {
	mu       sync.RWMutex
	builders map[string]Builder
}

// NewKinds returns an empty registry
func NewKinds() *Kinds {
	return &Kinds{builders: make(map[string]Builder)}
}

var (
	defaultKinds     *Kinds
	defaultKindsOnce sync.Once
)

// DefaultKinds returns the process registry with every built-in kind
func DefaultKinds() *Kinds {
	defaultKindsOnce.Do(func() {
		defaultKinds = NewKinds()
		registerBuiltins(defaultKinds)
	})
	return defaultKinds
}

// Register adds or replaces a builder
func (k *Kinds) Register(kind string, b Builder) {
	k.mu.Lock()
	defer k.mu.Unlock()
	k.builders[kind] = b
}

// Has reports whether a kind is registered
func (k *Kinds) Has(kind string) bool {
	k.mu.RLock()
	defer k.mu.RUnlock()
	_, ok := k.builders[kind]
	return ok
}

// Names returns the registered kinds in sorted order
func (k *Kinds) Names() []string {
	k.mu.RLock()
	defer k.mu.RUnlock()
	names := make([]string, 0, len(k.builders))
	for name := range k.builders {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Build decodes one component
func (k *Kinds) Build(spec ComponentSpec) (any, error) {
	k.mu.RLock()
	b, ok := k.builders[spec.Kind]
	k.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("unknown component kind %q", spec.Kind)
	}
	c, err := b(k, spec.Params)
	if err != nil {
		return nil, fmt.Errorf("build %s: %w", spec.Kind, err)
	}
	return c, nil
}

// ShimResult describes what ApplyCompatShim did
type ShimResult string

const (
	ShimPresent     ShimResult = "present"
	ShimAliased     ShimResult = "aliased"
	ShimPlaceholder ShimResult = "placeholder"
)

// ApplyCompatShim makes sure the legacy remainder kind resolves so that
// artifacts exported by older tooling do not fail on a missing name.
// It aliases the current remainder kind when registered and otherwise
// installs a placeholder that keeps the column list. Safe to call repeatedly.
func (k *Kinds) ApplyCompatShim() ShimResult {
	k.mu.Lock()
	defer k.mu.Unlock()

	if _, ok := k.builders[LegacyKindRemainderColsList]; ok {
		return ShimPresent
	}
	if b, ok := k.builders[KindRemainderCols]; ok {
		k.builders[LegacyKindRemainderColsList] = b
		return ShimAliased
	}
	k.builders[LegacyKindRemainderColsList] = buildPlaceholderColumns
	return ShimPlaceholder
}

func registerBuiltins(k *Kinds) {
	k.Register(KindStandardScaler, func(_ *Kinds, params json.RawMessage) (any, error) {
		var s StandardScaler
		if err := decodeParams(params, &s); err != nil {
			return nil, err
		}
		if len(s.Scale) != 0 && len(s.Scale) != len(s.Mean) {
			return nil, fmt.Errorf("%d scales for %d means", len(s.Scale), len(s.Mean))
		}
		return &s, nil
	})
	k.Register(KindMinMaxScaler, func(_ *Kinds, params json.RawMessage) (any, error) {
		var s MinMaxScaler
		if err := decodeParams(params, &s); err != nil {
			return nil, err
		}
		return &s, nil
	})
	k.Register(KindRemainderCols, func(_ *Kinds, params json.RawMessage) (any, error) {
		var r RemainderCols
		if err := decodeParams(params, &r); err != nil {
			return nil, err
		}
		return &r, nil
	})
	k.Register(KindColumnTransformer, buildColumnTransformer)
	k.Register(KindLogisticRegression, func(_ *Kinds, params json.RawMessage) (any, error) {
		var m LogisticRegression
		if err := decodeParams(params, &m); err != nil {
			return nil, err
		}
		if err := m.validate(); err != nil {
			return nil, err
		}
		return &m, nil
	})
	k.Register(KindNearestCentroid, func(_ *Kinds, params json.RawMessage) (any, error) {
		var m NearestCentroid
		if err := decodeParams(params, &m); err != nil {
			return nil, err
		}
		if err := m.validate(); err != nil {
			return nil, err
		}
		return &m, nil
	})
}

func buildColumnTransformer(k *Kinds, params json.RawMessage) (any, error) {
	var p struct {
		Columns   []string       `json:"columns"`
		Remainder *ComponentSpec `json:"remainder,omitempty"`
	}
	if err := decodeParams(params, &p); err != nil {
		return nil, err
	}
	ct := &ColumnTransformer{Columns: p.Columns}
	if p.Remainder != nil {
		c, err := k.Build(*p.Remainder)
		if err != nil {
			return nil, fmt.Errorf("remainder: %w", err)
		}
		lister, ok := c.(ColumnLister)
		if !ok {
			return nil, fmt.Errorf("remainder kind %q does not list columns", p.Remainder.Kind)
		}
		ct.Remainder = lister
	}
	return ct, nil
}

func buildPlaceholderColumns(_ *Kinds, params json.RawMessage) (any, error) {
	var p placeholderColumns
	// Best effort: an unreadable payload still yields an empty list.
	_ = decodeParams(params, &p)
	return &p, nil
}

func decodeParams(params json.RawMessage, v any) error {
	if len(params) == 0 {
		return nil
	}
	if err := json.Unmarshal(params, v); err != nil {
		return fmt.Errorf("decode params: %w", err)
	}
	return nil
}
