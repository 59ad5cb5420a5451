package predictor

import (
	"errors"
	"sort"
)

// ErrInference means the model could not score the request, typically because
// its expected feature count does not match the request row.
var ErrInference = errors.New("inference failed")

// Model scores a single feature row. Implementations are loaded once at
// startup and are read-only afterwards.
type Model interface {
	Predict(req Request) (float64, error)
	Version() string
}

// FeatureImporter is the optional interpretability capability. Not all models
// expose it; absence is a normal state, not an error.
type FeatureImporter interface {
	FeatureImportances() []float64
}

// FeatureWeight pairs a feature name with its importance weight.
type FeatureWeight struct {
	Feature string  `json:"feature"`
	Weight  float64 `json:"weight"`
}

// Importances queries the model for per-feature importance weights. The second
// return is false when the model does not support the capability or its weight
// vector does not line up with the canonical feature list.
func Importances(m Model) ([]FeatureWeight, bool) {
	fi, ok := m.(FeatureImporter)
	if !ok {
		return nil, false
	}
	weights := fi.FeatureImportances()
	if len(weights) != len(FeatureNames) {
		return nil, false
	}
	out := make([]FeatureWeight, len(weights))
	for i, w := range weights {
		out[i] = FeatureWeight{Feature: FeatureNames[i], Weight: w}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Weight > out[j].Weight })
	return out, true
}
