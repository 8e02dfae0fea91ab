package pipeline

// Artifact is a decoded model object. What it can do is discovered through
// the capability interfaces below.
type Artifact any

// Transformer rewrites a frame, e.g. scaling or column selection
type Transformer interface {
	Transform(f Frame) (Frame, error)
}

// Predictor predicts one label per row of raw feature values
type Predictor interface {
	Predict(x [][]float64) ([]string, error)
}

// ProbaPredictor returns calibrated per-class probabilities per row
type ProbaPredictor interface {
	PredictProba(x [][]float64) ([][]float64, error)
}

// Labeled exposes the class labels a classifier was fitted on.
// A nil result means the labels are not known.
type Labeled interface {
	Classes() []string
}

// FramePredictor predicts from a named frame, applying any upstream steps
type FramePredictor interface {
	PredictFrame(f Frame) ([]string, error)
}

// FrameProbaPredictor returns probabilities from a named frame, applying any upstream steps
type FrameProbaPredictor interface {
	PredictProbaFrame(f Frame) ([][]float64, error)
}

// Stepped is a composed artifact with ordered named steps
type Stepped interface {
	Steps() []NamedStep
	Step(name string) (any, bool)
	TransformBefore(name string, f Frame) (Frame, error)
}

// NamedStep is one stage of a pipeline
type NamedStep struct {
	Name      string
	Component any
}
