package nikeplus

import "time"

// ActivitySummary is one entry in the activity list. The list endpoint does
// not include metrics or GPS data; fetch the full Activity for those.
type ActivitySummary struct {
	ActivityID   string    `json:"activityId"`
	StartTimeUTC time.Time `json:"startTimeUtc"`
	GPS          bool      `json:"gps"`
}

// Waypoint is a single GPS sample. Waypoints are ordered chronologically;
// consecutive samples may share the same position.
type Waypoint struct {
	Latitude  float64 `json:"lat"`
	Longitude float64 `json:"lon"`
	Elevation float64 `json:"ele"`
}

// GeoData holds the recorded GPS track of an activity.
type GeoData struct {
	Waypoints []Waypoint `json:"waypoints"`
}

// Activity is the full detail record for a single activity.
// Distance is in kilometers and Duration in milliseconds, as reported by
// the Nike+ API.
type Activity struct {
	ActivityID       string    `json:"activityId"`
	StartTimeUTC     time.Time `json:"startTimeUtc"`
	Distance         float64   `json:"distance"`
	Duration         int64     `json:"duration"`
	TotalCalories    int       `json:"totalCalories"`
	AverageHeartRate int       `json:"averageHeartRate"`
	GPS              bool      `json:"gps"`
	Geo              *GeoData  `json:"geo"`
}
