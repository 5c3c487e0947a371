package scoring

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mansoor/social-support-agent/internal/types"
)

// testModelFile builds a minimal valid model: identity scaling, zero weights,
// intercept 2. Every categorical column gets an encoder with an Unknown code.
func testModelFile() ModelFile {
	n := len(types.FeatureColumns)
	file := ModelFile{
		Columns:   append([]string(nil), types.FeatureColumns...),
		Means:     make([]float64, n),
		Scales:    make([]float64, n),
		Weights:   make([]float64, n),
		Intercept: 2.0,
		Encoders: map[string]map[string]float64{
			"employment_status": {"Unknown": 0, "Employed": 1, "Unemployed": 2},
			"housing_type":      {"Unknown": 0, "Rented": 1, "Owned": 2},
			"marital_status":    {"Unknown": 0, "Married": 1, "Single": 2},
			"nationality":       {"Unknown": 0, "UAE": 1},
		},
	}
	for i := range file.Scales {
		file.Scales[i] = 1
	}
	return file
}

func writeModel(t *testing.T, file ModelFile) string {
	t.Helper()
	data, err := json.Marshal(file)
	require.NoError(t, err)
	path := filepath.Join(t.TempDir(), "model.json")
	require.NoError(t, os.WriteFile(path, data, 0o644))
	return path
}

func testVector() types.FeatureVector {
	return types.FeatureVector{
		MonthlyIncome:    12000,
		FamilySize:       4,
		EmploymentStatus: "Employed",
		HousingType:      "Rented",
		MaritalStatus:    "Married",
		HasDisability:    false,
		Nationality:      "UAE",
		CreditScore:      700,
		NetWorth:         50000,
	}
}

func TestLoadModelHappyPath(t *testing.T) {
	model, err := LoadModel(writeModel(t, testModelFile()))
	require.NoError(t, err)
	require.NotNil(t, model)
}

func TestLoadModelMissingFile(t *testing.T) {
	_, err := LoadModel(filepath.Join(t.TempDir(), "absent.json"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read model file")
}

func TestLoadModelMalformedJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "model.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	_, err := LoadModel(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse model file")
}

func TestLoadModelValidation(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*ModelFile)
		wantErr string
	}{
		{
			name:    "wrong column count",
			mutate:  func(f *ModelFile) { f.Columns = f.Columns[:5] },
			wantErr: "columns",
		},
		{
			name: "reordered columns",
			mutate: func(f *ModelFile) {
				f.Columns[0], f.Columns[1] = f.Columns[1], f.Columns[0]
			},
			wantErr: "schema expects",
		},
		{
			name:    "weights length mismatch",
			mutate:  func(f *ModelFile) { f.Weights = f.Weights[:3] },
			wantErr: "length must equal column count",
		},
		{
			name:    "zero scale",
			mutate:  func(f *ModelFile) { f.Scales[2] = 0 },
			wantErr: "scale for column",
		},
		{
			name:    "encoder without Unknown",
			mutate:  func(f *ModelFile) { delete(f.Encoders["nationality"], "Unknown") },
			wantErr: `lacks the "Unknown" category`,
		},
		{
			name:    "threshold outside range",
			mutate:  func(f *ModelFile) { f.Threshold = 1.5 },
			wantErr: "outside [0,1]",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			file := testModelFile()
			tt.mutate(&file)

			_, err := LoadModel(writeModel(t, file))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestModelScoreInterceptOnly(t *testing.T) {
	model, err := LoadModel(writeModel(t, testModelFile()))
	require.NoError(t, err)

	prediction, err := model.Score(context.Background(), testVector())
	require.NoError(t, err)

	// Zero weights leave only the intercept: sigmoid(2).
	assert.InDelta(t, 0.8807970779778823, prediction.Probability, 1e-12)
	assert.Equal(t, 1, prediction.Label)
}

func TestModelScoreAppliesWeightsAndScaling(t *testing.T) {
	file := testModelFile()
	file.Intercept = 0
	// Only monthly_income contributes: weight 1, mean 10000, scale 2000.
	file.Weights[0] = 1
	file.Means[0] = 10000
	file.Scales[0] = 2000

	model, err := LoadModel(writeModel(t, file))
	require.NoError(t, err)

	// (12000 - 10000) / 2000 = 1 → sigmoid(1).
	prediction, err := model.Score(context.Background(), testVector())
	require.NoError(t, err)
	assert.InDelta(t, 0.7310585786300049, prediction.Probability, 1e-12)
	assert.Equal(t, 1, prediction.Label)
}

func TestModelScoreRespectsThreshold(t *testing.T) {
	file := testModelFile()
	file.Threshold = 0.95

	model, err := LoadModel(writeModel(t, file))
	require.NoError(t, err)

	// sigmoid(2) ≈ 0.88 < 0.95.
	prediction, err := model.Score(context.Background(), testVector())
	require.NoError(t, err)
	assert.Equal(t, 0, prediction.Label)
}

func TestModelScoreUnseenCategoryMapsToUnknown(t *testing.T) {
	file := testModelFile()
	file.Intercept = 0
	// Weight only the employment_status column so the encoding is visible.
	file.Weights[2] = 1

	model, err := LoadModel(writeModel(t, file))
	require.NoError(t, err)

	unseen := testVector()
	unseen.EmploymentStatus = "Freelancer"
	asUnknown := testVector()
	asUnknown.EmploymentStatus = "Unknown"
	seen := testVector()
	seen.EmploymentStatus = "Employed"

	pUnseen, err := model.Score(context.Background(), unseen)
	require.NoError(t, err)
	pUnknown, err := model.Score(context.Background(), asUnknown)
	require.NoError(t, err)
	pSeen, err := model.Score(context.Background(), seen)
	require.NoError(t, err)

	assert.Equal(t, pUnknown.Probability, pUnseen.Probability)
	assert.NotEqual(t, pSeen.Probability, pUnseen.Probability)
}

func TestModelCacheReusesLoadedModel(t *testing.T) {
	path := writeModel(t, testModelFile())
	cache := NewModelCache()

	first, err := cache.Load(path)
	require.NoError(t, err)
	second, err := cache.Load(path)
	require.NoError(t, err)

	assert.Same(t, first, second)
}

func TestModelCachePropagatesLoadError(t *testing.T) {
	cache := NewModelCache()
	_, err := cache.Load(filepath.Join(t.TempDir(), "absent.json"))
	require.Error(t, err)
}
