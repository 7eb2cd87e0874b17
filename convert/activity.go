package convert

import (
	"time"

	"github.com/aron/nikeplus-to-runkeeper/healthgraph"
	"github.com/aron/nikeplus-to-runkeeper/nikeplus"
)

// Activity translates one Nike+ activity into a Runkeeper fitness activity.
// Returns false when the activity started before the cutoff and should be
// skipped. Nike+ reports duration in milliseconds and distance in
// kilometers; Runkeeper expects seconds and meters.
//
// A path is attached only when the activity was flagged as recorded with
// GPS and the detail record actually carries waypoints. Activities without
// a track get no path field at all.
func Activity(summary nikeplus.ActivitySummary, detail *nikeplus.Activity, cutoff *time.Time) (*healthgraph.FitnessActivity, bool) {
	if cutoff != nil && summary.StartTimeUTC.Before(*cutoff) {
		return nil, false
	}

	duration := float64(detail.Duration) / 1000

	activity := &healthgraph.FitnessActivity{
		Type:             "Running",
		StartTime:        healthgraph.Time{Time: detail.StartTimeUTC},
		TotalDistance:    detail.Distance * 1000,
		Duration:         duration,
		DetectPauses:     true,
		TotalCalories:    float64(detail.TotalCalories),
		AverageHeartRate: float64(detail.AverageHeartRate),
	}

	if summary.GPS && detail.Geo != nil && len(detail.Geo.Waypoints) > 0 {
		activity.Path = Track(duration, detail.Geo.Waypoints)
	}

	return activity, true
}
