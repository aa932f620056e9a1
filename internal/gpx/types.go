package gpx

import (
	"encoding/xml"
	"time"
)

// TrackPoint is a single <trkpt> element. Only the fields the analyzer
// consumes are decoded; recorder extensions are ignored.
type TrackPoint struct {
	Lat       float64   `xml:"lat,attr"`
	Lon       float64   `xml:"lon,attr"`
	Elevation float64   `xml:"ele,omitempty"`
	Time      time.Time `xml:"time,omitempty"`
}

// TrackSegment is a <trkseg> element.
type TrackSegment struct {
	Points []TrackPoint `xml:"trkpt"`
}

// Track is a <trk> element with its segments.
type Track struct {
	Name     string         `xml:"name,omitempty"`
	Segments []TrackSegment `xml:"trkseg"`
}

// Document is the root <gpx> element.
type Document struct {
	XMLName xml.Name `xml:"gpx"`
	Version string   `xml:"version,attr"`
	Creator string   `xml:"creator,attr"`
	Tracks  []Track  `xml:"trk"`
}
