package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
)

// MetricMin and MetricMax bound every metric value persisted by the service.
const (
	MetricMin = 0.0
	MetricMax = 100.0
)

// Metrics is the fixed set of per-video performance metrics produced by the
// analysis service. All values are on a 0-100 scale.
type Metrics struct {
	Speed            float64 `json:"speed"`
	Stamina          float64 `json:"stamina"`
	ShootingAccuracy float64 `json:"shooting_accuracy"`
	PassingAccuracy  float64 `json:"passing_accuracy"`
	Strength         float64 `json:"strength"`
	Dribbling        float64 `json:"dribbling"`
	OverallRating    float64 `json:"overall_rating"`
}

// Value implements driver.Valuer interface for Metrics
func (m Metrics) Value() (driver.Value, error) {
	return json.Marshal(m)
}

// Scan implements sql.Scanner interface for Metrics
func (m *Metrics) Scan(value interface{}) error {
	if value == nil {
		*m = Metrics{}
		return nil
	}

	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, m)
	case string:
		return json.Unmarshal([]byte(v), m)
	default:
		return errors.New("unsupported type for metrics scan")
	}
}

// Clamp forces every metric into [MetricMin, MetricMax] and reports how many
// fields were out of range. Out-of-range input is tolerated, not rejected.
func (m *Metrics) Clamp() int {
	clamped := 0
	for _, f := range []*float64{
		&m.Speed, &m.Stamina, &m.ShootingAccuracy, &m.PassingAccuracy,
		&m.Strength, &m.Dribbling, &m.OverallRating,
	} {
		if *f < MetricMin {
			*f = MetricMin
			clamped++
		} else if *f > MetricMax {
			*f = MetricMax
			clamped++
		}
	}
	return clamped
}
