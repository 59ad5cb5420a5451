package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"time"

	"traffic-dashboard-api/models"

	"github.com/gocarina/gocsv"
)

var (
	// ErrDataUnavailable means the dataset path did not resolve to a readable table.
	ErrDataUnavailable = errors.New("dataset unavailable")
	// ErrSchema means a required column is missing from the CSV header.
	ErrSchema = errors.New("dataset schema invalid")
	// ErrMalformedTimestamp means a date_time value could not be parsed.
	ErrMalformedTimestamp = errors.New("malformed timestamp")
)

var requiredColumns = []string{"latitude", "longitude", "date_time", "highway", "traffic_volume"}

// Accepted date_time layouts, tried in order.
var timeLayouts = []string{
	"2006-01-02 15:04:05",
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// csvRecord mirrors the raw CSV columns. hour and weekday may be absent from
// the file; gocsv leaves them zero, and the loader decides per-column (from the
// header, never per-row) whether to backfill them from date_time.
type csvRecord struct {
	Latitude      float64 `csv:"latitude"`
	Longitude     float64 `csv:"longitude"`
	DateTime      string  `csv:"date_time"`
	Highway       string  `csv:"highway"`
	TrafficVolume float64 `csv:"traffic_volume"`
	Temp          float64 `csv:"temp"`
	Rain1h        float64 `csv:"rain_1h"`
	Lanes         int     `csv:"lanes"`
	MaxSpeed      float64 `csv:"maxspeed"`
	Hour          int     `csv:"hour"`
	Weekday       int     `csv:"weekday"`
}

// Load reads the traffic CSV at path and returns the immutable record table.
// Derived columns follow a backfill-only policy: hour and weekday are computed
// from date_time only when the column is missing from the header; existing
// values are never overwritten, even if inconsistent with date_time.
func Load(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDataUnavailable, err)
	}
	defer f.Close()

	header, err := readHeader(f)
	if err != nil {
		return nil, err
	}
	for _, col := range requiredColumns {
		if _, ok := header[col]; !ok {
			return nil, fmt.Errorf("%w: missing column %q", ErrSchema, col)
		}
	}

	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDataUnavailable, err)
	}

	var rows []csvRecord
	if err := gocsv.UnmarshalFile(f, &rows); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDataUnavailable, err)
	}

	_, hasHour := header["hour"]
	_, hasWeekday := header["weekday"]

	records := make([]models.TrafficRecord, 0, len(rows))
	for i, row := range rows {
		ts, err := parseTimestamp(row.DateTime)
		if err != nil {
			return nil, fmt.Errorf("%w: row %d: %q", ErrMalformedTimestamp, i+1, row.DateTime)
		}

		rec := models.TrafficRecord{
			Latitude:      row.Latitude,
			Longitude:     row.Longitude,
			Geometry:      models.Point{Lon: row.Longitude, Lat: row.Latitude},
			DateTime:      ts,
			Hour:          row.Hour,
			Weekday:       row.Weekday,
			Highway:       row.Highway,
			TrafficVolume: row.TrafficVolume,
			Temp:          row.Temp,
			Rain1h:        row.Rain1h,
			Lanes:         row.Lanes,
			MaxSpeed:      row.MaxSpeed,
		}
		if !hasHour {
			rec.Hour = ts.Hour()
		}
		if !hasWeekday {
			rec.Weekday = isoWeekday(ts)
		}
		records = append(records, rec)
	}

	// Newest first, so cursor pagination can walk the table directly.
	sort.SliceStable(records, func(i, j int) bool {
		return records[i].DateTime.After(records[j].DateTime)
	})

	return &Table{records: records}, nil
}

func readHeader(f *os.File) (map[string]int, error) {
	r := csv.NewReader(f)
	cols, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("%w: reading header: %v", ErrDataUnavailable, err)
	}
	header := make(map[string]int, len(cols))
	for i, c := range cols {
		header[c] = i
	}
	return header, nil
}

func parseTimestamp(s string) (time.Time, error) {
	for _, layout := range timeLayouts {
		if ts, err := time.Parse(layout, s); err == nil {
			return ts, nil
		}
	}
	return time.Time{}, fmt.Errorf("no layout matched %q", s)
}

// isoWeekday maps Go's Sunday=0 convention to ISO Monday=0 .. Sunday=6.
func isoWeekday(t time.Time) int {
	return (int(t.Weekday()) + 6) % 7
}
