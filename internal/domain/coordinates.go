package domain

// Immutable geographic coordinates (longitude, latitude).
type Coordinates struct {
	Lon float64
	Lat float64
}

// Return coordinates as [lon, lat] for external API compatibility.
func (c Coordinates) CoordsToList() []float64 { return []float64{c.Lon, c.Lat} }

// Valid reports whether the coordinates fall inside the WGS84 ranges.
func (c Coordinates) Valid() bool {
	return c.Lon >= -180 && c.Lon <= 180 && c.Lat >= -90 && c.Lat <= 90
}
