package model

import (
	"time"

	"github.com/paulmach/orb/geojson"
)

// Project is the shaped read model: flattened project scalars, the nested
// locale reference, the locale boundary as a GeoJSON FeatureCollection with
// exactly one feature, and the project's bins in store order.
type Project struct {
	Id            int64                      `json:"id"`
	Name          string                     `json:"name"`
	Description   string                     `json:"description"`
	CreatedAt     time.Time                  `json:"created_at"`
	LastUpdatedAt time.Time                  `json:"last_updated_at"`
	Locale        LocaleRef                  `json:"locale"`
	Boundary      *geojson.FeatureCollection `json:"boundary"`
	Bins          []Bin                      `json:"bins"`
}

// LocaleRef identifies the locale backing a project's boundary.
type LocaleRef struct {
	Id   int64  `json:"id"`
	Name string `json:"name"`
}

// Bin is a shaped point-of-interest bin. ExternalCategories is the decoded
// ordered form of the delimited list kept in the store.
type Bin struct {
	Id                 int64             `json:"id"`
	CreatedAt          time.Time         `json:"created_at"`
	Provider           string            `json:"provider"`
	Category           string            `json:"category"`
	ExternalId         string            `json:"external_id"`
	Classification     string            `json:"classification"`
	Name               string            `json:"name"`
	ExternalCategories []string          `json:"external_categories"`
	Address            string            `json:"address"`
	Location           *geojson.Geometry `json:"location"`
	Notes              string            `json:"notes,omitempty"`
}
