package pipeline

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
)

// ClassifierStepName is the step preferred as the classifier inside a pipeline
const ClassifierStepName = "clf"

// Source names where a model's predictions come from
type Source string

const (
	// SourcePipeline uses the artifact's own probabilities
	SourcePipeline Source = "pipeline"
	// SourceClassifier uses the located classifier's probabilities
	SourceClassifier Source = "classifier"
	// SourceLabel has no probabilities, only a predicted label
	SourceLabel Source = "label"
)

// Prediction is the top-k result for one row
type Prediction struct {
	Labels        []string
	Probabilities []float64
	Raw           []float64
	Source        Source
}

// Model is an artifact with its capabilities resolved. Bind it once per load.
type Model struct {
	artifact   Artifact
	classifier any
	source     Source
	proba      func(f Frame) ([]float64, error)
	predict    func(f Frame) (string, error)
	labels     func() []string
}

// ErrNoPredictOperation is returned when neither the artifact nor its
// classifier can produce probabilities or labels
var ErrNoPredictOperation = errors.New("artifact exposes no usable predict operation")

// Bind probes the artifact once and fixes the probability source:
//  1. frame-level probabilities on the artifact,
//  2. probabilities on the located classifier,
//  3. plain label prediction.
func Bind(artifact Artifact) (*Model, error) {
	if artifact == nil {
		return nil, errors.New("nil artifact")
	}

	clf, clfStep := LocateClassifier(artifact)
	m := &Model{artifact: artifact, classifier: clf}

	if p, ok := artifact.(FrameProbaPredictor); ok {
		m.source = SourcePipeline
		m.proba = func(f Frame) ([]float64, error) {
			return firstRow(p.PredictProbaFrame(f))
		}
		m.labels = func() []string {
			if l := labelsOf(artifact); l != nil {
				return l
			}
			return labelsOf(clf)
		}
		return m, nil
	}

	if cp, ok := clf.(ProbaPredictor); ok {
		m.source = SourceClassifier
		if st, ok := artifact.(Stepped); ok && clfStep != "" {
			m.proba = func(f Frame) ([]float64, error) {
				x, err := st.TransformBefore(clfStep, f)
				if err != nil {
					return nil, err
				}
				return firstRow(cp.PredictProba(x.Values()))
			}
		} else {
			m.proba = func(f Frame) ([]float64, error) {
				return firstRow(cp.PredictProba(f.Values()))
			}
		}
		m.labels = func() []string { return labelsOf(clf) }
		return m, nil
	}

	m.source = SourceLabel
	if fp, ok := artifact.(FramePredictor); ok {
		m.predict = func(f Frame) (string, error) { return firstLabel(fp.PredictFrame(f)) }
		return m, nil
	}
	if p, ok := clf.(Predictor); ok {
		m.predict = func(f Frame) (string, error) { return firstLabel(p.Predict(f.Values())) }
		return m, nil
	}
	return nil, ErrNoPredictOperation
}

// LocateClassifier returns the step named "clf", else the last step, else the
// artifact itself. The step name is empty when the artifact is not stepped.
func LocateClassifier(artifact Artifact) (any, string) {
	st, ok := artifact.(Stepped)
	if !ok {
		return artifact, ""
	}
	if c, ok := st.Step(ClassifierStepName); ok {
		return c, ClassifierStepName
	}
	steps := st.Steps()
	if len(steps) == 0 {
		return artifact, ""
	}
	last := steps[len(steps)-1]
	return last.Component, last.Name
}

// Source reports the bound probability source
func (m *Model) Source() Source { return m.source }

// Artifact returns the underlying artifact
func (m *Model) Artifact() Artifact { return m.artifact }

// Classifier returns the located classifier
func (m *Model) Classifier() any { return m.classifier }

// Predict runs the bound strategy for one row and keeps the k most likely classes
func (m *Model) Predict(features CropFeatures, k int) (*Prediction, error) {
	f := features.Frame()

	if m.source == SourceLabel {
		label, err := m.predict(f)
		if err != nil {
			return nil, err
		}
		return &Prediction{Labels: []string{label}, Source: m.source}, nil
	}

	probs, err := m.proba(f)
	if err != nil {
		return nil, err
	}

	labels := m.labels()
	if labels == nil {
		labels = ordinalLabels(len(probs))
	}
	if len(labels) < len(probs) {
		return nil, fmt.Errorf("%d class labels for %d probabilities", len(labels), len(probs))
	}

	idx := TopK(probs, k)
	out := &Prediction{
		Labels:        make([]string, len(idx)),
		Probabilities: make([]float64, len(idx)),
		Raw:           append([]float64(nil), probs...),
		Source:        m.source,
	}
	for i, j := range idx {
		out.Labels[i] = labels[j]
		out.Probabilities[i] = probs[j]
	}
	return out, nil
}

// TopK returns the indices of the k largest values in descending order.
// Equal values keep their original relative order.
func TopK(values []float64, k int) []int {
	idx := make([]int, len(values))
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(a, b int) bool {
		return values[idx[a]] > values[idx[b]]
	})
	if k < 0 {
		k = 0
	}
	if k > len(idx) {
		k = len(idx)
	}
	return idx[:k]
}

func labelsOf(c any) []string {
	if l, ok := c.(Labeled); ok {
		if classes := l.Classes(); len(classes) > 0 {
			return classes
		}
	}
	return nil
}

func ordinalLabels(n int) []string {
	out := make([]string, n)
	for i := range out {
		out[i] = strconv.Itoa(i)
	}
	return out
}

func firstRow(rows [][]float64, err error) ([]float64, error) {
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, errors.New("no probabilities returned")
	}
	return rows[0], nil
}

func firstLabel(labels []string, err error) (string, error) {
	if err != nil {
		return "", err
	}
	if len(labels) == 0 {
		return "", errors.New("no label returned")
	}
	return labels[0], nil
}
