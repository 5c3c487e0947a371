package scoring

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"os"

	"github.com/mansoor/social-support-agent/internal/types"
)

// ModelFile is the on-disk form of an exported eligibility model: a logistic
// regression over standard-scaled features, with per-categorical label
// encodings. It mirrors what the training side serializes after fitting.
type ModelFile struct {
	Columns   []string                      `json:"columns"`
	Encoders  map[string]map[string]float64 `json:"encoders"`
	Means     []float64                     `json:"means"`
	Scales    []float64                     `json:"scales"`
	Weights   []float64                     `json:"weights"`
	Intercept float64                       `json:"intercept"`
	Threshold float64                       `json:"threshold,omitempty"`
}

// Model is a loaded eligibility model. It is immutable after LoadModel and
// safe for concurrent use.
type Model struct {
	file ModelFile
}

// LoadModel reads and validates a JSON model file. The file's column schema
// must match the projector's feature order exactly; a mismatch is a
// deployment error, not something to paper over at scoring time.
func LoadModel(path string) (*Model, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read model file %s: %w", path, err)
	}

	var file ModelFile
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse model file %s: %w", path, err)
	}
	if err := file.validate(); err != nil {
		return nil, fmt.Errorf("invalid model file %s: %w", path, err)
	}

	return &Model{file: file}, nil
}

// validate checks the model's internal consistency against the trained
// column schema.
func (f *ModelFile) validate() error {
	if len(f.Columns) != len(types.FeatureColumns) {
		return fmt.Errorf("model has %d columns, classifier schema has %d", len(f.Columns), len(types.FeatureColumns))
	}
	for i, col := range f.Columns {
		if col != types.FeatureColumns[i] {
			return fmt.Errorf("column %d is %q, schema expects %q", i, col, types.FeatureColumns[i])
		}
	}
	n := len(f.Columns)
	if len(f.Means) != n || len(f.Scales) != n || len(f.Weights) != n {
		return fmt.Errorf("means/scales/weights length must equal column count %d", n)
	}
	for i, s := range f.Scales {
		if s == 0 {
			return fmt.Errorf("scale for column %q is zero", f.Columns[i])
		}
	}
	for _, col := range f.Columns {
		enc, categorical := f.Encoders[col]
		if !categorical {
			continue
		}
		if _, ok := enc[types.UnknownValue]; !ok {
			return fmt.Errorf("encoder for %q lacks the %q category", col, types.UnknownValue)
		}
	}
	if f.Threshold < 0 || f.Threshold > 1 {
		return fmt.Errorf("threshold %v outside [0,1]", f.Threshold)
	}
	return nil
}

// Score encodes, scales and scores one feature vector.
func (m *Model) Score(_ context.Context, features types.FeatureVector) (Prediction, error) {
	encoded, err := m.encode(features)
	if err != nil {
		return Prediction{}, err
	}

	logit := m.file.Intercept
	for i, x := range encoded {
		logit += m.file.Weights[i] * (x - m.file.Means[i]) / m.file.Scales[i]
	}
	probability := sigmoid(logit)

	threshold := m.file.Threshold
	if threshold == 0 {
		threshold = 0.5
	}
	label := 0
	if probability >= threshold {
		label = 1
	}

	return Prediction{Probability: probability, Label: label}, nil
}

// encode turns the typed vector into the numeric row the model was trained
// on. Categorical values unseen at training time map to the Unknown code,
// the same policy the classifier applied to its training data.
func (m *Model) encode(features types.FeatureVector) ([]float64, error) {
	row := features.Row()
	encoded := make([]float64, len(row))

	for i, value := range row {
		column := m.file.Columns[i]
		switch v := value.(type) {
		case float64:
			encoded[i] = v
		case int:
			encoded[i] = float64(v)
		case bool:
			if v {
				encoded[i] = 1
			}
		case string:
			enc, categorical := m.file.Encoders[column]
			if !categorical {
				return nil, fmt.Errorf("no encoder for categorical column %q", column)
			}
			code, seen := enc[v]
			if !seen {
				code = enc[types.UnknownValue]
			}
			encoded[i] = code
		default:
			return nil, fmt.Errorf("unsupported value type %T in column %q", value, column)
		}
	}

	return encoded, nil
}

func sigmoid(x float64) float64 {
	return 1.0 / (1.0 + math.Exp(-x))
}
