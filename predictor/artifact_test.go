package predictor

import (
	"encoding/json"
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"
)

func writeArtifact(t *testing.T, a Artifact) string {
	t.Helper()
	data, err := json.Marshal(a)
	if err != nil {
		t.Fatalf("marshaling artifact: %v", err)
	}
	path := filepath.Join(t.TempDir(), "model.json")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("writing artifact: %v", err)
	}
	return path
}

func linearArtifact() Artifact {
	return Artifact{
		ModelVersion: "linear-v1",
		Kind:         "linear",
		FeatureNames: FeatureNames,
		Intercept:    100.0,
		Coefficients: []float64{10, 2, -5, 50, 1, 3, -20},
	}
}

func ensembleArtifact() Artifact {
	// Two stumps splitting on hour (feature 0) and is_weekend (feature 6).
	return Artifact{
		ModelVersion: "ensemble-v2",
		Kind:         "ensemble",
		FeatureNames: FeatureNames,
		BaseScore:    500.0,
		Trees: []Tree{
			{Nodes: []TreeNode{
				{Feature: 0, Threshold: 12, Left: 1, Right: 2},
				{Feature: -1, Value: 100},
				{Feature: -1, Value: 300},
			}},
			{Nodes: []TreeNode{
				{Feature: 6, Threshold: 0.5, Left: 1, Right: 2},
				{Feature: -1, Value: 50},
				{Feature: -1, Value: -150},
			}},
		},
		FeatureImportances: []float64{0.40, 0.05, 0.03, 0.15, 0.10, 0.07, 0.20},
	}
}

func TestLoadLinearArtifactPredict(t *testing.T) {
	model, err := LoadArtifact(writeArtifact(t, linearArtifact()))
	if err != nil {
		t.Fatalf("LoadArtifact() error: %v", err)
	}
	if model.Version() != "linear-v1" {
		t.Errorf("Version() = %q, want linear-v1", model.Version())
	}

	req := BuildRequest(8, 25.0, 0.0, 2, 50, 0)
	got, err := model.Predict(req)
	if err != nil {
		t.Fatalf("Predict() error: %v", err)
	}

	// 100 + 10*8 + 2*25 - 5*0 + 50*2 + 1*50 + 3*0 - 20*0
	want := 380.0
	if math.Abs(got-want) > 1e-9 {
		t.Errorf("Predict() = %v, want %v", got, want)
	}
}

func TestLinearModelHasNoImportances(t *testing.T) {
	model, err := LoadArtifact(writeArtifact(t, linearArtifact()))
	if err != nil {
		t.Fatalf("LoadArtifact() error: %v", err)
	}

	weights, ok := Importances(model)
	if ok {
		t.Errorf("Importances() reported available for a linear model: %v", weights)
	}
	if weights != nil {
		t.Errorf("weights should be nil when unavailable, got %v", weights)
	}
}

func TestEnsemblePredict(t *testing.T) {
	model, err := LoadArtifact(writeArtifact(t, ensembleArtifact()))
	if err != nil {
		t.Fatalf("LoadArtifact() error: %v", err)
	}

	tests := []struct {
		name    string
		hour    int
		weekday int
		want    float64
	}{
		{"morning weekday", 8, 0, 500 + 100 + 50},
		{"evening weekday", 18, 2, 500 + 300 + 50},
		{"morning weekend", 8, 6, 500 + 100 - 150},
		{"evening weekend", 18, 5, 500 + 300 - 150},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := BuildRequest(tt.hour, 20.0, 0.0, 2, 50, tt.weekday)
			got, err := model.Predict(req)
			if err != nil {
				t.Fatalf("Predict() error: %v", err)
			}
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("Predict() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestEnsembleImportancesSorted(t *testing.T) {
	model, err := LoadArtifact(writeArtifact(t, ensembleArtifact()))
	if err != nil {
		t.Fatalf("LoadArtifact() error: %v", err)
	}

	weights, ok := Importances(model)
	if !ok {
		t.Fatal("Importances() unavailable for ensemble model")
	}
	if len(weights) != len(FeatureNames) {
		t.Fatalf("got %d weights, want %d", len(weights), len(FeatureNames))
	}

	if weights[0].Feature != "hour" || weights[0].Weight != 0.40 {
		t.Errorf("top feature = %+v, want hour/0.40", weights[0])
	}
	for i := 1; i < len(weights); i++ {
		if weights[i].Weight > weights[i-1].Weight {
			t.Errorf("weights not sorted descending at index %d", i)
		}
	}
}

func TestImportancesLengthMismatch(t *testing.T) {
	m := &ensembleModel{
		version:     "bad",
		trees:       ensembleArtifact().Trees,
		importances: []float64{0.5, 0.5},
	}
	if _, ok := Importances(m); ok {
		t.Error("Importances() should be unavailable when the weight vector is misaligned")
	}
}

func TestPredictFeatureCountMismatch(t *testing.T) {
	m := &linearModel{version: "bad", coef: []float64{1, 2, 3}}

	_, err := m.Predict(BuildRequest(8, 25.0, 0.0, 2, 50, 0))
	if !errors.Is(err, ErrInference) {
		t.Errorf("err = %v, want ErrInference", err)
	}
}

func TestEnsembleMalformedTree(t *testing.T) {
	m := &ensembleModel{
		version: "bad",
		trees: []Tree{{Nodes: []TreeNode{
			{Feature: 0, Threshold: 12, Left: 5, Right: 6},
		}}},
	}

	_, err := m.Predict(BuildRequest(8, 25.0, 0.0, 2, 50, 0))
	if !errors.Is(err, ErrInference) {
		t.Errorf("err = %v, want ErrInference", err)
	}
}

func TestLoadArtifactMissingFile(t *testing.T) {
	_, err := LoadArtifact(filepath.Join(t.TempDir(), "missing.json"))
	if err == nil {
		t.Error("expected error for missing artifact")
	}
}

func TestLoadArtifactWrongFeatureOrder(t *testing.T) {
	a := linearArtifact()
	a.FeatureNames = []string{"temp", "hour", "rain_1h", "lanes", "maxspeed", "weekday", "is_weekend"}

	_, err := LoadArtifact(writeArtifact(t, a))
	if err == nil {
		t.Error("expected error for reordered feature names")
	}
}

func TestLoadArtifactUnknownKind(t *testing.T) {
	a := linearArtifact()
	a.Kind = "svm"

	_, err := LoadArtifact(writeArtifact(t, a))
	if err == nil {
		t.Error("expected error for unknown model kind")
	}
}

func TestLoadArtifactBadCoefficients(t *testing.T) {
	a := linearArtifact()
	a.Coefficients = []float64{1, 2}

	_, err := LoadArtifact(writeArtifact(t, a))
	if err == nil {
		t.Error("expected error for coefficient count mismatch")
	}
}
