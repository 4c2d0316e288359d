package geo

import (
	"fmt"

	"github.com/pawan-gold/goldcrest/internal/backend"
	"github.com/pawan-gold/goldcrest/internal/directory"
)

// Marker is one map pin with its popup payload. Coordinate display strings
// are fixed at four decimals.
type Marker struct {
	ID           int64   `json:"id"`
	Latitude     float64 `json:"lat"`
	Longitude    float64 `json:"lng"`
	Name         string  `json:"name"`
	Mobile       string  `json:"mobile"`
	Address      string  `json:"address"`
	PurposeLabel string  `json:"purpose"`
	LatDisplay   string  `json:"lat_display"`
	LngDisplay   string  `json:"lng_display"`
}

// BuildMarkers keeps only records carrying a complete coordinate pair.
func BuildMarkers(customers []backend.Customer, index *directory.Index) []Marker {
	markers := make([]Marker, 0, len(customers))
	for _, c := range customers {
		if !c.HasLocation() {
			continue
		}
		markers = append(markers, Marker{
			ID:           c.ID,
			Latitude:     *c.Latitude,
			Longitude:    *c.Longitude,
			Name:         c.Name,
			Mobile:       c.MobNo,
			Address:      c.Address,
			PurposeLabel: index.PurposeName(c.Purpose),
			LatDisplay:   fmt.Sprintf("%.4f", *c.Latitude),
			LngDisplay:   fmt.Sprintf("%.4f", *c.Longitude),
		})
	}
	return markers
}
