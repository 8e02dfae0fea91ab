package pipeline

import (
	"errors"
	"fmt"
)

// Pipeline chains transformers and ends in an estimator
type Pipeline struct {
	steps   []NamedStep
	classes []string
}

// probaPipeline is a Pipeline whose final estimator reports probabilities
type probaPipeline struct {
	*Pipeline
}

// NewPipeline validates the steps and returns a *Pipeline, or a variant that
// also implements FrameProbaPredictor when the final step supports it.
func NewPipeline(steps []NamedStep, classes []string) (Artifact, error) {
	if len(steps) == 0 {
		return nil, errors.New("pipeline has no steps")
	}
	last := steps[len(steps)-1]
	if _, ok := last.Component.(Predictor); !ok {
		return nil, fmt.Errorf("final step %q is not an estimator", last.Name)
	}

	p := &Pipeline{steps: steps, classes: classes}
	if _, ok := last.Component.(ProbaPredictor); ok {
		return &probaPipeline{Pipeline: p}, nil
	}
	return p, nil
}

// Steps implements Stepped
func (p *Pipeline) Steps() []NamedStep {
	return append([]NamedStep(nil), p.steps...)
}

// Step implements Stepped
func (p *Pipeline) Step(name string) (any, bool) {
	for _, s := range p.steps {
		if s.Name == name {
			return s.Component, true
		}
	}
	return nil, false
}

// Classes implements Labeled. The pipeline's own labels win over the final
// estimator's.
func (p *Pipeline) Classes() []string {
	if len(p.classes) > 0 {
		return p.classes
	}
	if l, ok := p.steps[len(p.steps)-1].Component.(Labeled); ok {
		return l.Classes()
	}
	return nil
}

// TransformBefore applies every step preceding the named one
func (p *Pipeline) TransformBefore(name string, f Frame) (Frame, error) {
	idx := -1
	for i, s := range p.steps {
		if s.Name == name {
			idx = i
			break
		}
	}
	if idx < 0 {
		return Frame{}, fmt.Errorf("step %q not found", name)
	}

	for _, s := range p.steps[:idx] {
		t, ok := s.Component.(Transformer)
		if !ok {
			return Frame{}, fmt.Errorf("step %q is not a transformer", s.Name)
		}
		var err error
		if f, err = t.Transform(f); err != nil {
			return Frame{}, fmt.Errorf("step %q: %w", s.Name, err)
		}
	}
	return f, nil
}

func (p *Pipeline) final() NamedStep { return p.steps[len(p.steps)-1] }

// PredictFrame implements FramePredictor
func (p *Pipeline) PredictFrame(f Frame) ([]string, error) {
	last := p.final()
	x, err := p.TransformBefore(last.Name, f)
	if err != nil {
		return nil, err
	}
	return last.Component.(Predictor).Predict(x.Values())
}

// PredictProbaFrame implements FrameProbaPredictor
func (p *probaPipeline) PredictProbaFrame(f Frame) ([][]float64, error) {
	last := p.final()
	x, err := p.TransformBefore(last.Name, f)
	if err != nil {
		return nil, err
	}
	return last.Component.(ProbaPredictor).PredictProba(x.Values())
}
