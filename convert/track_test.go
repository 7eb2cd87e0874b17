package convert_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aron/nikeplus-to-runkeeper/convert"
	"github.com/aron/nikeplus-to-runkeeper/healthgraph"
	"github.com/aron/nikeplus-to-runkeeper/nikeplus"
)

// wp builds a waypoint on the central meridian of UTM zone 31, where
// latitude offsets translate to planar distance with minimal distortion.
// 0.0001 degrees of latitude is roughly 11 meters.
func wp(lat float64) nikeplus.Waypoint {
	return nikeplus.Waypoint{Latitude: lat, Longitude: 3.0, Elevation: 10}
}

func pointTypes(path []healthgraph.PathPoint) []healthgraph.PointType {
	types := make([]healthgraph.PointType, len(path))
	for i, p := range path {
		types[i] = p.Type
	}
	return types
}

func TestTrackTimestampsAndTags(t *testing.T) {
	waypoints := []nikeplus.Waypoint{wp(40.0000), wp(40.0001), wp(40.0002), wp(40.0003)}

	path := convert.Track(100, waypoints)

	require.Len(t, path, 4)
	assert.Equal(t, []healthgraph.PointType{
		healthgraph.PointTypeStart,
		healthgraph.PointTypeGPS,
		healthgraph.PointTypeGPS,
		healthgraph.PointTypeEnd,
	}, pointTypes(path))
	for i, want := range []float64{25, 50, 75, 100} {
		assert.InDelta(t, want, path[i].Timestamp, 1e-9)
	}
}

func TestTrackCopiesWaypointFields(t *testing.T) {
	waypoints := []nikeplus.Waypoint{
		{Latitude: 51.5, Longitude: -0.12, Elevation: 11.5},
		{Latitude: 51.5001, Longitude: -0.1201, Elevation: 12.0},
	}

	path := convert.Track(10, waypoints)

	require.Len(t, path, 2)
	assert.Equal(t, 51.5, path[0].Latitude)
	assert.Equal(t, -0.12, path[0].Longitude)
	assert.Equal(t, 11.5, path[0].Altitude)
}

func TestTrackSingleWaypoint(t *testing.T) {
	// A one-point track is tagged "end": the end check runs after the start
	// check and wins.
	path := convert.Track(60, []nikeplus.Waypoint{wp(40.0)})

	require.Len(t, path, 1)
	assert.Equal(t, healthgraph.PointTypeEnd, path[0].Type)
	assert.InDelta(t, 60.0, path[0].Timestamp, 1e-9)
}

func TestTrackZeroDuration(t *testing.T) {
	path := convert.Track(0, []nikeplus.Waypoint{wp(40.0000), wp(40.0001), wp(40.0002)})

	require.Len(t, path, 3)
	for _, p := range path {
		assert.Zero(t, p.Timestamp)
	}
}

func TestTrackSmoothTrackHasNoPauses(t *testing.T) {
	// Each step grows by 1.5x, never exceeding double the previous one.
	waypoints := []nikeplus.Waypoint{
		wp(40.0000000),
		wp(40.0001000),
		wp(40.0002500),
		wp(40.0004750),
		wp(40.0008125),
	}

	path := convert.Track(100, waypoints)

	require.Len(t, path, 5)
	for _, p := range path {
		assert.NotEqual(t, healthgraph.PointTypePause, p.Type)
	}
}

func TestTrackPauseBeforeAnomalousJump(t *testing.T) {
	// Steps of roughly 11m, 11m, then 28m: the last step is more than twice
	// the baseline, so a pause marker lands before the final point.
	waypoints := []nikeplus.Waypoint{
		wp(40.00000),
		wp(40.00010),
		wp(40.00020),
		wp(40.00045),
	}

	path := convert.Track(100, waypoints)

	require.Len(t, path, 5)
	assert.Equal(t, []healthgraph.PointType{
		healthgraph.PointTypeStart,
		healthgraph.PointTypeGPS,
		healthgraph.PointTypeGPS,
		healthgraph.PointTypePause,
		healthgraph.PointTypeEnd,
	}, pointTypes(path))

	// The pause is a copy of the preceding point, type aside: same position,
	// same timestamp. A zero-duration marker, not a new sample.
	pause, prev := path[3], path[2]
	pause.Type = prev.Type
	assert.Equal(t, prev, pause)
}

func TestTrackPauseAfterFirstBaseline(t *testing.T) {
	// One ~11m step establishes the baseline; the following ~28m step fires.
	// The pause copies the second waypoint's output point.
	waypoints := []nikeplus.Waypoint{
		wp(40.00000),
		wp(40.00010),
		wp(40.00035),
	}

	path := convert.Track(90, waypoints)

	require.Len(t, path, 4)
	assert.Equal(t, healthgraph.PointTypePause, path[2].Type)
	assert.InDelta(t, 60.0, path[2].Timestamp, 1e-9)
	assert.Equal(t, path[1].Latitude, path[2].Latitude)
	assert.Equal(t, healthgraph.PointTypeEnd, path[3].Type)
}

func TestTrackNoPauseWithoutBaseline(t *testing.T) {
	// However large the first jump is, there is no earlier step to compare
	// against, so the first two waypoints can never produce a pause.
	waypoints := []nikeplus.Waypoint{wp(40.00), wp(40.01)}

	path := convert.Track(60, waypoints)

	require.Len(t, path, 2)
	assert.Equal(t, healthgraph.PointTypeStart, path[0].Type)
	assert.Equal(t, healthgraph.PointTypeEnd, path[1].Type)
}

func TestTrackStationarySamplesKeepBaseline(t *testing.T) {
	// A repeated position contributes a zero-length step. It must neither
	// fire the pause check nor replace the ~11m baseline, so the later ~26m
	// step still counts as an anomaly.
	waypoints := []nikeplus.Waypoint{
		wp(40.000000),
		wp(40.000100),
		wp(40.000100),
		wp(40.000335),
	}

	path := convert.Track(100, waypoints)

	require.Len(t, path, 5)
	assert.Equal(t, []healthgraph.PointType{
		healthgraph.PointTypeStart,
		healthgraph.PointTypeGPS,
		healthgraph.PointTypeGPS,
		healthgraph.PointTypePause,
		healthgraph.PointTypeEnd,
	}, pointTypes(path))
}
