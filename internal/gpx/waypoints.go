// Package gpx exports the GPS positions of converted images as GPX
// waypoints, so a batch run can drop its shot locations straight into
// mapping tools.
package gpx

import (
	"fmt"
	"os"

	gogpx "github.com/tkrajina/gpxgo/gpx"
)

// Waypoint is one converted image with a known position.
type Waypoint struct {
	Name      string
	Latitude  float64
	Longitude float64
}

// BuildDocument assembles a GPX 1.1 document from the waypoints.
func BuildDocument(points []Waypoint) *gogpx.GPX {
	doc := &gogpx.GPX{
		Version: "1.1",
		Creator: "gprprotool",
	}
	for _, p := range points {
		doc.Waypoints = append(doc.Waypoints, gogpx.GPXPoint{
			Point: gogpx.Point{
				Latitude:  p.Latitude,
				Longitude: p.Longitude,
			},
			Name: p.Name,
		})
	}
	return doc
}

// WriteWaypoints serializes the waypoints to a GPX file at path. An
// empty waypoint list is an error so callers do not litter empty files.
func WriteWaypoints(path string, points []Waypoint) error {
	if len(points) == 0 {
		return fmt.Errorf("no waypoints to write")
	}

	payload, err := BuildDocument(points).ToXml(gogpx.ToXmlParams{Version: "1.1", Indent: true})
	if err != nil {
		return fmt.Errorf("serialize gpx: %w", err)
	}
	if err := os.WriteFile(path, payload, 0o644); err != nil {
		return fmt.Errorf("write gpx %s: %w", path, err)
	}
	return nil
}
