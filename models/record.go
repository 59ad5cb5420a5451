package models

import "time"

// Point is the derived lon/lat geometry attached to every dataset record.
type Point struct {
	Lon float64 `json:"lon"`
	Lat float64 `json:"lat"`
}

// TrafficRecord is one row of the historical traffic dataset after loading.
// Geometry, Hour and Weekday are derived columns; everything else comes
// straight from the CSV. Weekday follows ISO convention: Monday=0 .. Sunday=6.
type TrafficRecord struct {
	Latitude      float64   `json:"latitude"`
	Longitude     float64   `json:"longitude"`
	Geometry      Point     `json:"geometry"`
	DateTime      time.Time `json:"date_time"`
	Hour          int       `json:"hour"`
	Weekday       int       `json:"weekday"`
	Highway       string    `json:"highway"`
	TrafficVolume float64   `json:"traffic_volume"`
	Temp          float64   `json:"temp"`
	Rain1h        float64   `json:"rain_1h"`
	Lanes         int       `json:"lanes"`
	MaxSpeed      float64   `json:"maxspeed"`
}
