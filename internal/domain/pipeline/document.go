package pipeline

import (
	"encoding/json"
	"errors"
	"fmt"
)

// Document is the serialized form of an artifact. Either Steps (a pipeline)
// or Estimator (a bare classifier) is set.
type Document struct {
	Classes   []string       `json:"classes,omitempty"`
	Steps     []StepSpec     `json:"steps,omitempty"`
	Estimator *ComponentSpec `json:"estimator,omitempty"`
}

// StepSpec is one named pipeline stage
type StepSpec struct {
	Name   string          `json:"name"`
	Kind   string          `json:"kind"`
	Params json.RawMessage `json:"params,omitempty"`
}

// ComponentSpec is a kind tag plus its params
type ComponentSpec struct {
	Kind   string          `json:"kind"`
	Params json.RawMessage `json:"params,omitempty"`
}

// ErrEmptyDocument is returned for a document with neither steps nor estimator
var ErrEmptyDocument = errors.New("artifact has no steps and no estimator")

// Build turns a document into an artifact using the given kinds
func Build(doc *Document, kinds *Kinds) (Artifact, error) {
	if doc == nil {
		return nil, ErrEmptyDocument
	}

	if len(doc.Steps) > 0 {
		steps := make([]NamedStep, 0, len(doc.Steps))
		seen := make(map[string]bool, len(doc.Steps))
		for i, s := range doc.Steps {
			if s.Name == "" {
				return nil, fmt.Errorf("step %d has no name", i)
			}
			if seen[s.Name] {
				return nil, fmt.Errorf("duplicate step name %q", s.Name)
			}
			seen[s.Name] = true

			c, err := kinds.Build(ComponentSpec{Kind: s.Kind, Params: s.Params})
			if err != nil {
				return nil, fmt.Errorf("step %q: %w", s.Name, err)
			}
			steps = append(steps, NamedStep{Name: s.Name, Component: c})
		}
		return NewPipeline(steps, doc.Classes)
	}

	if doc.Estimator != nil {
		c, err := kinds.Build(*doc.Estimator)
		if err != nil {
			return nil, err
		}
		if _, ok := c.(Predictor); !ok {
			return nil, fmt.Errorf("estimator kind %q cannot predict", doc.Estimator.Kind)
		}
		return c, nil
	}

	return nil, ErrEmptyDocument
}
