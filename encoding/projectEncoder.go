package encoding

import (
	"github.com/jackc/pgtype"
	"github.com/paulmach/orb/geojson"
	"github.com/pkg/errors"

	"github.com/replate-labs/foodware/api/database"
	"github.com/replate-labs/foodware/api/model"
)

//ShapeProject merges a project row and its bin rows into the nested read
//model. It performs no I/O. A geometry string that fails to parse aborts
//the whole shaping - there is no repair and no partial result.
func ShapeProject(pr *database.ProjectRow, bins []database.BinRow) (*model.Project, error) {

	boundary, err := geojson.UnmarshalGeometry([]byte(pr.Boundary))
	if err != nil {
		return nil, errors.Wrap(err, "malformed boundary geometry")
	}

	fc := geojson.NewFeatureCollection()
	fc.Append(geojson.NewFeature(boundary.Geometry()))

	project := model.Project{
		Id:            pr.Id,
		Name:          pr.Name,
		Description:   pr.Description,
		CreatedAt:     pr.CreatedAt,
		LastUpdatedAt: pr.LastUpdatedAt,
		Locale: model.LocaleRef{
			Id:   pr.Geography,
			Name: pr.LocaleName,
		},
		Boundary: fc,
		Bins:     make([]model.Bin, 0, len(bins)),
	}

	for i := range bins {
		bin, err := ShapeBin(&bins[i])
		if err != nil {
			return nil, err
		}
		project.Bins = append(project.Bins, *bin)
	}
	return &project, nil
}

//ShapeBin shapes a single bin row, decoding the delimited category list and
//the serialized point geometry.
func ShapeBin(row *database.BinRow) (*model.Bin, error) {

	location, err := geojson.UnmarshalGeometry([]byte(row.Location))
	if err != nil {
		return nil, errors.Wrapf(err, "malformed geometry for bin %d", row.Id)
	}

	b := model.Bin{
		Id:                 row.Id,
		CreatedAt:          row.CreatedAt,
		Provider:           row.Provider,
		Category:           row.Category,
		ExternalId:         row.ExternalId,
		Classification:     row.Classification,
		Name:               row.DisplayName,
		ExternalCategories: make([]string, 0),
		Address:            row.Address,
		Location:           location,
	}
	if row.ExternalCategories.Status == pgtype.Present {
		b.ExternalCategories = SplitCategories(row.ExternalCategories.String)
	}
	if row.Notes.Status == pgtype.Present {
		b.Notes = row.Notes.String
	}
	return &b, nil
}
