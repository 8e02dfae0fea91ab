package pipeline

import (
	"errors"
	"fmt"
	"math"
)

// StandardScaler centers and scales each column: (x - mean) / scale
type StandardScaler struct {
	Mean  []float64 `json:"mean"`
	Scale []float64 `json:"scale"`
}

// Transform implements Transformer
func (s *StandardScaler) Transform(f Frame) (Frame, error) {
	if err := checkWidth("standard_scaler", f.width(), len(s.Mean)); err != nil {
		return Frame{}, err
	}
	out := Frame{Columns: f.Columns, Rows: make([][]float64, len(f.Rows))}
	for i, row := range f.Rows {
		scaled := make([]float64, len(row))
		for j, v := range row {
			scale := 1.0
			if j < len(s.Scale) && s.Scale[j] != 0 {
				scale = s.Scale[j]
			}
			scaled[j] = (v - s.Mean[j]) / scale
		}
		out.Rows[i] = scaled
	}
	return out, nil
}

// MinMaxScaler maps each column with x*scale + min
type MinMaxScaler struct {
	Min   []float64 `json:"min"`
	Scale []float64 `json:"scale"`
}

// Transform implements Transformer
func (s *MinMaxScaler) Transform(f Frame) (Frame, error) {
	if err := checkWidth("min_max_scaler", f.width(), len(s.Min)); err != nil {
		return Frame{}, err
	}
	if len(s.Scale) != len(s.Min) {
		return Frame{}, fmt.Errorf("min_max_scaler has %d scales for %d columns", len(s.Scale), len(s.Min))
	}
	out := Frame{Columns: f.Columns, Rows: make([][]float64, len(f.Rows))}
	for i, row := range f.Rows {
		scaled := make([]float64, len(row))
		for j, v := range row {
			scaled[j] = v*s.Scale[j] + s.Min[j]
		}
		out.Rows[i] = scaled
	}
	return out, nil
}

// ColumnLister names the columns a remainder component passes through
type ColumnLister interface {
	ColumnNames() []string
}

// RemainderCols lists columns passed through untouched after the selected ones
type RemainderCols struct {
	Columns []string `json:"columns"`
}

// ColumnNames implements ColumnLister
func (r *RemainderCols) ColumnNames() []string { return r.Columns }

// placeholderColumns stands in for a remainder kind this build does not
// register. It keeps whatever column list the artifact carries.
type placeholderColumns struct {
	Columns []string `json:"columns"`
}

func (p *placeholderColumns) ColumnNames() []string { return p.Columns }

// ColumnTransformer selects and reorders named columns, then appends the remainder
type ColumnTransformer struct {
	Columns   []string
	Remainder ColumnLister
}

// Transform implements Transformer
func (c *ColumnTransformer) Transform(f Frame) (Frame, error) {
	names := append([]string(nil), c.Columns...)
	if c.Remainder != nil {
		names = append(names, c.Remainder.ColumnNames()...)
	}

	idx := make([]int, len(names))
	for i, name := range names {
		j := f.Index(name)
		if j < 0 {
			return Frame{}, fmt.Errorf("column_transformer: column %q not found", name)
		}
		idx[i] = j
	}

	out := Frame{Columns: names, Rows: make([][]float64, len(f.Rows))}
	for r, row := range f.Rows {
		selected := make([]float64, len(idx))
		for i, j := range idx {
			selected[i] = row[j]
		}
		out.Rows[r] = selected
	}
	return out, nil
}

// LogisticRegression is a fitted linear classifier with softmax probabilities.
// A single coefficient row with two classes is treated as binary (sigmoid).
type LogisticRegression struct {
	Labels    []string    `json:"classes"`
	Coef      [][]float64 `json:"coef"`
	Intercept []float64   `json:"intercept"`
}

func (m *LogisticRegression) validate() error {
	if len(m.Coef) == 0 {
		return errors.New("logistic_regression has no coefficients")
	}
	if len(m.Intercept) != len(m.Coef) {
		return fmt.Errorf("logistic_regression has %d intercepts for %d coefficient rows", len(m.Intercept), len(m.Coef))
	}
	width := len(m.Coef[0])
	for i, row := range m.Coef {
		if len(row) != width {
			return fmt.Errorf("logistic_regression coefficient row %d has %d values, want %d", i, len(row), width)
		}
	}
	if len(m.Labels) > 0 && len(m.Labels) != m.numClasses() {
		return fmt.Errorf("logistic_regression has %d classes for %d outputs", len(m.Labels), m.numClasses())
	}
	return nil
}

func (m *LogisticRegression) numClasses() int {
	if len(m.Coef) == 1 {
		return 2
	}
	return len(m.Coef)
}

// PredictProba implements ProbaPredictor
func (m *LogisticRegression) PredictProba(x [][]float64) ([][]float64, error) {
	out := make([][]float64, len(x))
	for i, row := range x {
		if err := checkWidth("logistic_regression", len(row), len(m.Coef[0])); err != nil {
			return nil, err
		}
		scores := make([]float64, len(m.Coef))
		for k, coef := range m.Coef {
			s := m.Intercept[k]
			for j, w := range coef {
				s += w * row[j]
			}
			scores[k] = s
		}
		if len(scores) == 1 {
			p := 1 / (1 + math.Exp(-scores[0]))
			out[i] = []float64{1 - p, p}
			continue
		}
		out[i] = softmax(scores)
	}
	return out, nil
}

// Predict implements Predictor
func (m *LogisticRegression) Predict(x [][]float64) ([]string, error) {
	probs, err := m.PredictProba(x)
	if err != nil {
		return nil, err
	}
	out := make([]string, len(probs))
	for i, p := range probs {
		out[i] = labelAt(m.Labels, argmax(p))
	}
	return out, nil
}

// Classes implements Labeled
func (m *LogisticRegression) Classes() []string { return m.Labels }

// NearestCentroid assigns the label of the closest centroid. It has no
// probability output.
type NearestCentroid struct {
	Labels    []string    `json:"classes"`
	Centroids [][]float64 `json:"centroids"`
}

func (m *NearestCentroid) validate() error {
	if len(m.Centroids) == 0 {
		return errors.New("nearest_centroid has no centroids")
	}
	if len(m.Labels) > 0 && len(m.Labels) != len(m.Centroids) {
		return fmt.Errorf("nearest_centroid has %d classes for %d centroids", len(m.Labels), len(m.Centroids))
	}
	return nil
}

// Predict implements Predictor
func (m *NearestCentroid) Predict(x [][]float64) ([]string, error) {
	out := make([]string, len(x))
	for i, row := range x {
		best, bestDist := -1, math.Inf(1)
		for k, c := range m.Centroids {
			if err := checkWidth("nearest_centroid", len(row), len(c)); err != nil {
				return nil, err
			}
			var d float64
			for j, v := range row {
				diff := v - c[j]
				d += diff * diff
			}
			if d < bestDist {
				best, bestDist = k, d
			}
		}
		out[i] = labelAt(m.Labels, best)
	}
	return out, nil
}

// Classes implements Labeled
func (m *NearestCentroid) Classes() []string { return m.Labels }

func softmax(scores []float64) []float64 {
	maxScore := math.Inf(-1)
	for _, s := range scores {
		if s > maxScore {
			maxScore = s
		}
	}
	out := make([]float64, len(scores))
	var sum float64
	for i, s := range scores {
		out[i] = math.Exp(s - maxScore)
		sum += out[i]
	}
	for i := range out {
		out[i] /= sum
	}
	return out
}

func argmax(v []float64) int {
	best := 0
	for i := 1; i < len(v); i++ {
		if v[i] > v[best] {
			best = i
		}
	}
	return best
}

func labelAt(labels []string, i int) string {
	if i >= 0 && i < len(labels) {
		return labels[i]
	}
	return fmt.Sprintf("%d", i)
}
