// Package geo projects geographic coordinates onto a plane so that
// Euclidean distance approximates ground distance. It is meant for
// magnitude comparisons between nearby points, not authoritative geodesy.
package geo

import (
	"math"

	"github.com/im7mortal/UTM"
)

// Point is a position in UTM easting/northing, in meters.
type Point struct {
	Easting  float64
	Northing float64
}

// Project converts a latitude/longitude in degrees to a UTM point.
// Coordinates are assumed to be in valid range; anything the projection
// rejects maps to the zero Point.
func Project(latitude, longitude float64) Point {
	easting, northing, _, _, err := UTM.FromLatLon(latitude, longitude, latitude >= 0)
	if err != nil {
		return Point{}
	}
	return Point{
		Easting:  easting,
		Northing: northing,
	}
}

// Distance returns the Euclidean distance between two points in meters.
func Distance(a, b Point) float64 {
	return math.Hypot(a.Easting-b.Easting, a.Northing-b.Northing)
}
