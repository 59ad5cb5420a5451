package predictor

import (
	"encoding/json"
	"fmt"
	"os"

	"gonum.org/v1/gonum/floats"
)

// Artifact is the serialized model format. kind selects the concrete model:
// "linear" carries intercept+coefficients, "ensemble" carries additive
// regression trees plus stored feature importances.
type Artifact struct {
	ModelVersion       string    `json:"model_version"`
	Kind               string    `json:"kind"`
	FeatureNames       []string  `json:"feature_names"`
	Intercept          float64   `json:"intercept,omitempty"`
	Coefficients       []float64 `json:"coefficients,omitempty"`
	BaseScore          float64   `json:"base_score,omitempty"`
	Trees              []Tree    `json:"trees,omitempty"`
	FeatureImportances []float64 `json:"feature_importances,omitempty"`
}

// Tree is a regression tree flattened into a node array; index 0 is the root.
type Tree struct {
	Nodes []TreeNode `json:"nodes"`
}

// TreeNode is one split or leaf. Feature < 0 marks a leaf holding Value;
// otherwise rows with x[Feature] <= Threshold descend Left, the rest Right.
type TreeNode struct {
	Feature   int     `json:"feature"`
	Threshold float64 `json:"threshold"`
	Left      int     `json:"left"`
	Right     int     `json:"right"`
	Value     float64 `json:"value"`
}

// LoadArtifact reads a model artifact from disk and returns the ready model.
// Load failures are fatal at startup, same as a failed dataset load.
func LoadArtifact(path string) (Model, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading model artifact: %w", err)
	}
	var a Artifact
	if err := json.Unmarshal(data, &a); err != nil {
		return nil, fmt.Errorf("decoding model artifact: %w", err)
	}
	return buildModel(a)
}

func buildModel(a Artifact) (Model, error) {
	if len(a.FeatureNames) != len(FeatureNames) {
		return nil, fmt.Errorf("artifact has %d features, want %d", len(a.FeatureNames), len(FeatureNames))
	}
	for i, name := range a.FeatureNames {
		if name != FeatureNames[i] {
			return nil, fmt.Errorf("artifact feature %d is %q, want %q", i, name, FeatureNames[i])
		}
	}

	switch a.Kind {
	case "linear":
		if len(a.Coefficients) != len(FeatureNames) {
			return nil, fmt.Errorf("linear artifact has %d coefficients, want %d", len(a.Coefficients), len(FeatureNames))
		}
		return &linearModel{
			version:   a.ModelVersion,
			intercept: a.Intercept,
			coef:      a.Coefficients,
		}, nil
	case "ensemble":
		if len(a.Trees) == 0 {
			return nil, fmt.Errorf("ensemble artifact has no trees")
		}
		return &ensembleModel{
			version:     a.ModelVersion,
			baseScore:   a.BaseScore,
			trees:       a.Trees,
			importances: a.FeatureImportances,
		}, nil
	default:
		return nil, fmt.Errorf("unknown model kind %q", a.Kind)
	}
}

// linearModel predicts intercept + coef·x. It exposes no feature importances.
type linearModel struct {
	version   string
	intercept float64
	coef      []float64
}

func (m *linearModel) Version() string { return m.version }

func (m *linearModel) Predict(req Request) (float64, error) {
	x := req.Features()
	if len(x) != len(m.coef) {
		return 0, fmt.Errorf("%w: model expects %d features, request has %d", ErrInference, len(m.coef), len(x))
	}
	return m.intercept + floats.Dot(m.coef, x), nil
}

// ensembleModel predicts baseScore plus the sum of its trees' leaf values.
type ensembleModel struct {
	version     string
	baseScore   float64
	trees       []Tree
	importances []float64
}

func (m *ensembleModel) Version() string { return m.version }

func (m *ensembleModel) Predict(req Request) (float64, error) {
	x := req.Features()
	sum := m.baseScore
	for i, tree := range m.trees {
		v, err := tree.score(x)
		if err != nil {
			return 0, fmt.Errorf("%w: tree %d: %v", ErrInference, i, err)
		}
		sum += v
	}
	return sum, nil
}

func (m *ensembleModel) FeatureImportances() []float64 {
	return m.importances
}

func (t Tree) score(x []float64) (float64, error) {
	idx := 0
	// Each step descends one level; more steps than nodes means a cycle.
	for steps := 0; steps <= len(t.Nodes); steps++ {
		if idx < 0 || idx >= len(t.Nodes) {
			return 0, fmt.Errorf("node index %d out of range", idx)
		}
		node := t.Nodes[idx]
		if node.Feature < 0 {
			return node.Value, nil
		}
		if node.Feature >= len(x) {
			return 0, fmt.Errorf("split on feature %d, request has %d", node.Feature, len(x))
		}
		if x[node.Feature] <= node.Threshold {
			idx = node.Left
		} else {
			idx = node.Right
		}
	}
	return 0, fmt.Errorf("tree walk did not terminate")
}
