package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestMetricsClamp(t *testing.T) {
	tests := []struct {
		name        string
		metrics     Metrics
		wantClamped int
		check       func(t *testing.T, m Metrics)
	}{
		{
			name: "in range untouched",
			metrics: Metrics{
				Speed: 72, Stamina: 65, ShootingAccuracy: 58,
				PassingAccuracy: 81, Strength: 69, Dribbling: 74,
				OverallRating: 70,
			},
			wantClamped: 0,
			check: func(t *testing.T, m Metrics) {
				assert.Equal(t, 72.0, m.Speed)
				assert.Equal(t, 70.0, m.OverallRating)
			},
		},
		{
			name: "values above range pulled down",
			metrics: Metrics{
				Speed: 120, Stamina: 65, ShootingAccuracy: 58,
				PassingAccuracy: 81, Strength: 69, Dribbling: 74,
				OverallRating: 101.5,
			},
			wantClamped: 2,
			check: func(t *testing.T, m Metrics) {
				assert.Equal(t, MetricMax, m.Speed)
				assert.Equal(t, MetricMax, m.OverallRating)
			},
		},
		{
			name: "negative values pulled up",
			metrics: Metrics{
				Speed: -3, Stamina: 65, ShootingAccuracy: 58,
				PassingAccuracy: 81, Strength: 69, Dribbling: 74,
				OverallRating: 70,
			},
			wantClamped: 1,
			check: func(t *testing.T, m Metrics) {
				assert.Equal(t, MetricMin, m.Speed)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.metrics.Clamp()
			assert.Equal(t, tt.wantClamped, got)
			tt.check(t, tt.metrics)
		})
	}
}

func TestMetricsScanRoundTrip(t *testing.T) {
	in := Metrics{Speed: 72, Stamina: 65, ShootingAccuracy: 58, PassingAccuracy: 81, Strength: 69, Dribbling: 74, OverallRating: 70}

	val, err := in.Value()
	assert.NoError(t, err)

	var out Metrics
	assert.NoError(t, out.Scan(val))
	assert.Equal(t, in, out)

	var fromNil Metrics
	assert.NoError(t, fromNil.Scan(nil))
	assert.Equal(t, Metrics{}, fromNil)
}

func TestPlayerCardSetMetrics(t *testing.T) {
	m := Metrics{Speed: 72, Stamina: 65, ShootingAccuracy: 58, PassingAccuracy: 81, Strength: 69, Dribbling: 74, OverallRating: 70}
	at := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	card := PlayerCard{PlayerID: "p1"}
	card.SetMetrics(m, at)

	assert.Equal(t, 72.0, card.Speed)
	assert.Equal(t, 70.0, card.OverallRating)
	assert.Equal(t, at, card.LastUpdated)
	assert.Equal(t, m, card.Metrics())
}

func TestVideoAssetAnalyzed(t *testing.T) {
	v := VideoAsset{PlayerID: "p1", StoragePath: "p1/clip.mp4"}
	assert.False(t, v.Analyzed())

	v.Stats = &Metrics{OverallRating: 70}
	assert.True(t, v.Analyzed())
}
