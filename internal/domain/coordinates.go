package domain

import "math"

// Geographic coordinates in decimal degrees.
type Coordinates struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// Within reports whether both components of c lie within tol degrees of other.
// The traversal simulator uses this to classify waypoint hits.
func (c Coordinates) Within(other Coordinates, tol float64) bool {
	return math.Abs(c.Lat-other.Lat) <= tol && math.Abs(c.Lon-other.Lon) <= tol
}

// Return coordinates as [lat, lon] for polyline encoding.
func (c Coordinates) CoordsToList() []float64 { return []float64{c.Lat, c.Lon} }
