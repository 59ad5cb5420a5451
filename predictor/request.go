package predictor

// FeatureNames is the exact feature order the model was trained on. Reordering
// silently produces wrong predictions; the model has no schema check of its own.
var FeatureNames = []string{"hour", "temp", "rain_1h", "lanes", "maxspeed", "weekday", "is_weekend"}

// Request is a single-row feature vector. Built fresh per prediction, consumed
// immediately, never mutated.
type Request struct {
	Hour      float64 `json:"hour"`
	Temp      float64 `json:"temp"`
	Rain1h    float64 `json:"rain_1h"`
	Lanes     float64 `json:"lanes"`
	MaxSpeed  float64 `json:"maxspeed"`
	Weekday   float64 `json:"weekday"`
	IsWeekend float64 `json:"is_weekend"`
}

// BuildRequest assembles the feature row from the raw inputs. is_weekend is
// derived here (weekday 5 or 6), never supplied by the caller. Inputs pass
// through unvalidated; range enforcement belongs to the transport edge.
func BuildRequest(hour int, temp, rain float64, lanes int, speedLimit float64, weekday int) Request {
	isWeekend := 0.0
	if weekday >= 5 {
		isWeekend = 1.0
	}
	return Request{
		Hour:      float64(hour),
		Temp:      temp,
		Rain1h:    rain,
		Lanes:     float64(lanes),
		MaxSpeed:  speedLimit,
		Weekday:   float64(weekday),
		IsWeekend: isWeekend,
	}
}

// Features returns the row in the canonical FeatureNames order.
func (r Request) Features() []float64 {
	return []float64{r.Hour, r.Temp, r.Rain1h, r.Lanes, r.MaxSpeed, r.Weekday, r.IsWeekend}
}
