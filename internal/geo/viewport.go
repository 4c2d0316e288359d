package geo

// Default region shown when no customer carries coordinates.
const (
	defaultLatitude  = 17.6599
	defaultLongitude = 75.9064
	defaultZoom      = 11
	singleMarkerZoom = 14
	boundsPadding    = 80
	clusterRadius    = 90
)

// Bounds is a rectangle around every marker.
type Bounds struct {
	SouthLat float64 `json:"south_lat"`
	WestLng  float64 `json:"west_lng"`
	NorthLat float64 `json:"north_lat"`
	EastLng  float64 `json:"east_lng"`
}

// Viewport tells the client how to frame the map. Exactly one of the two
// framing modes is active: a center with zoom, or fitted bounds with
// padding.
type Viewport struct {
	CenterLat float64 `json:"center_lat"`
	CenterLng float64 `json:"center_lng"`
	Zoom      int     `json:"zoom"`
	Bounds    *Bounds `json:"bounds,omitempty"`
	Padding   int     `json:"padding,omitempty"`
}

// ComputeViewport frames the marker set. No markers falls back to the
// default region, a single marker centers on it, and anything more fits
// the bounding box of all markers.
func ComputeViewport(markers []Marker) Viewport {
	switch len(markers) {
	case 0:
		return Viewport{CenterLat: defaultLatitude, CenterLng: defaultLongitude, Zoom: defaultZoom}
	case 1:
		return Viewport{CenterLat: markers[0].Latitude, CenterLng: markers[0].Longitude, Zoom: singleMarkerZoom}
	}

	b := Bounds{
		SouthLat: markers[0].Latitude,
		NorthLat: markers[0].Latitude,
		WestLng:  markers[0].Longitude,
		EastLng:  markers[0].Longitude,
	}
	for _, m := range markers[1:] {
		if m.Latitude < b.SouthLat {
			b.SouthLat = m.Latitude
		}
		if m.Latitude > b.NorthLat {
			b.NorthLat = m.Latitude
		}
		if m.Longitude < b.WestLng {
			b.WestLng = m.Longitude
		}
		if m.Longitude > b.EastLng {
			b.EastLng = m.Longitude
		}
	}
	return Viewport{
		CenterLat: (b.SouthLat + b.NorthLat) / 2,
		CenterLng: (b.WestLng + b.EastLng) / 2,
		Bounds:    &b,
		Padding:   boundsPadding,
	}
}
