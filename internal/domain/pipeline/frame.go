package pipeline

import "fmt"

// FeatureColumns is the column order the crop pipelines are trained on
var FeatureColumns = []string{"N", "P", "K", "temperature", "humidity", "ph", "rainfall"}

// Frame is a small named-column table
type Frame struct {
	Columns []string
	Rows    [][]float64
}

// CropFeatures is one observation of soil and climate readings
type CropFeatures struct {
	Nitrogen    float64
	Phosphorus  float64
	Potassium   float64
	Temperature float64
	Humidity    float64
	PH          float64
	Rainfall    float64
}

// Frame returns the features as a single-row frame in FeatureColumns order
func (f CropFeatures) Frame() Frame {
	return Frame{
		Columns: append([]string(nil), FeatureColumns...),
		Rows: [][]float64{{
			f.Nitrogen, f.Phosphorus, f.Potassium,
			f.Temperature, f.Humidity, f.PH, f.Rainfall,
		}},
	}
}

// Values returns a copy of the rows without column names
func (f Frame) Values() [][]float64 {
	out := make([][]float64, len(f.Rows))
	for i, row := range f.Rows {
		out[i] = append([]float64(nil), row...)
	}
	return out
}

// Index returns the position of a column or -1
func (f Frame) Index(column string) int {
	for i, c := range f.Columns {
		if c == column {
			return i
		}
	}
	return -1
}

func (f Frame) width() int {
	if len(f.Rows) == 0 {
		return len(f.Columns)
	}
	return len(f.Rows[0])
}

func checkWidth(component string, got, want int) error {
	if got != want {
		return fmt.Errorf("%s expects %d features, got %d", component, want, got)
	}
	return nil
}
