package models

import "time"

// PredictionLog records one served what-if prediction: the feature row as
// scored, the resulting volume, and the model version that produced it.
type PredictionLog struct {
	ID              uint      `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	TS              time.Time `gorm:"column:ts;index" json:"ts"`
	Hour            int       `gorm:"column:hour" json:"hour"`
	Temp            float64   `gorm:"column:temp" json:"temp"`
	Rain1h          float64   `gorm:"column:rain_1h" json:"rain_1h"`
	Lanes           int       `gorm:"column:lanes" json:"lanes"`
	MaxSpeed        float64   `gorm:"column:maxspeed" json:"maxspeed"`
	Weekday         int       `gorm:"column:weekday" json:"weekday"`
	IsWeekend       int       `gorm:"column:is_weekend" json:"is_weekend"`
	PredictedVolume float64   `gorm:"column:predicted_volume" json:"predicted_volume"`
	ModelVersion    string    `gorm:"column:model_version" json:"model_version"`
}

func (PredictionLog) TableName() string { return "prediction_log" }
