// Package convert translates Nike+ activity records into the Runkeeper
// fitness activity schema, including the GPS track conversion.
package convert

import (
	"github.com/aron/nikeplus-to-runkeeper/geo"
	"github.com/aron/nikeplus-to-runkeeper/healthgraph"
	"github.com/aron/nikeplus-to-runkeeper/nikeplus"
)

// Track converts a waypoint sequence into a Runkeeper path.
//
// Nike+ does not expose per-waypoint timestamps, so every waypoint is
// assigned an equal share of the activity duration. The first point is
// tagged "start" and the last "end"; a single-waypoint track is tagged
// "end".
//
// Pauses are reconstructed from the spacing of the track itself: when the
// planar distance to the next waypoint jumps to more than twice the last
// positive step, the gap is taken to be a break in recording rather than
// motion, and a copy of the previous point tagged "pause" is inserted ahead
// of the current one. Zero-length steps (stationary samples) neither fire
// the check nor replace the baseline, and until a first positive step
// establishes a baseline no pause can fire.
func Track(durationSeconds float64, waypoints []nikeplus.Waypoint) []healthgraph.PathPoint {
	fraction := durationSeconds / float64(len(waypoints))

	path := make([]healthgraph.PathPoint, 0, len(waypoints))
	var lastDelta float64
	for i, wp := range waypoints {
		pointType := healthgraph.PointTypeGPS
		if i == 0 {
			pointType = healthgraph.PointTypeStart
		}
		if i == len(waypoints)-1 {
			pointType = healthgraph.PointTypeEnd
		}

		if i > 0 {
			prev := path[len(path)-1]
			delta := geo.Distance(
				geo.Project(prev.Latitude, prev.Longitude),
				geo.Project(wp.Latitude, wp.Longitude),
			)
			if lastDelta > 0 && delta > 0 && delta > 2*lastDelta {
				pause := prev
				pause.Type = healthgraph.PointTypePause
				path = append(path, pause)
			}
			if delta > 0 {
				lastDelta = delta
			}
		}

		path = append(path, healthgraph.PathPoint{
			Timestamp: fraction * float64(i+1),
			Altitude:  wp.Elevation,
			Longitude: wp.Longitude,
			Latitude:  wp.Latitude,
			Type:      pointType,
		})
	}
	return path
}
