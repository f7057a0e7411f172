package database

import (
	"time"

	"github.com/jackc/pgtype"
)

// ProjectRow is a raw project row joined to its locale. The locale boundary
// arrives pre-serialized as GeoJSON text from ST_AsGeoJSON and is decoded by
// the encoding package, never here. Geography holds the locale id, matching
// the field name used on the wire for updates.
type ProjectRow struct {
	Id            int64     `json:"id"`
	Name          string    `json:"name"`
	Description   string    `json:"description"`
	Geography     int64     `json:"geography"`
	CreatedAt     time.Time `json:"created_at"`
	LastUpdatedAt time.Time `json:"last_updated_at"`
	LocaleName    string    `json:"-"`
	Boundary      string    `json:"-"`
}

// BinRow is a raw bin row joined to its provider and category names, with the
// point geometry serialized as GeoJSON text.
type BinRow struct {
	Id                 int64
	CreatedAt          time.Time
	Provider           string
	Category           string
	ExternalId         string
	Classification     string
	DisplayName        string
	ExternalCategories pgtype.Text
	Address            string
	Location           string
	Notes              pgtype.Text
}
