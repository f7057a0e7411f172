package database

import (
	"context"
	"strconv"
	"strings"
	"testing"

	"github.com/jackc/pgtype"
	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const chicagoBoundary = `{"type":"MultiPolygon","coordinates":[[[[-87.7,41.7],[-87.5,41.7],[-87.5,41.9],[-87.7,41.9],[-87.7,41.7]]]]}`

type fixture struct {
	localeId   int64
	projectId  int64
	providerId int64
	categoryId int64
}

func seedProject(t *testing.T, db *pgxpool.Pool, name string) fixture {
	t.Helper()
	ctx := context.Background()
	var f fixture

	err := db.QueryRow(ctx,
		`INSERT INTO locales(name, boundary) VALUES($1, ST_SetSRID(ST_GeomFromGeoJSON($2), 4326)) RETURNING id`,
		"Chicago "+name, chicagoBoundary).Scan(&f.localeId)
	require.NoError(t, err)

	err = db.QueryRow(ctx,
		`INSERT INTO projects(name, description, locale_id) VALUES($1, $2, $3) RETURNING id`,
		name, "drop-off study", f.localeId).Scan(&f.projectId)
	require.NoError(t, err)

	err = db.QueryRow(ctx,
		`INSERT INTO providers(name) VALUES($1) ON CONFLICT(name) DO UPDATE SET name = EXCLUDED.name RETURNING id`,
		"yelp").Scan(&f.providerId)
	require.NoError(t, err)

	err = db.QueryRow(ctx,
		`INSERT INTO categories(name) VALUES($1) ON CONFLICT(name) DO UPDATE SET name = EXCLUDED.name RETURNING id`,
		"indoor_point").Scan(&f.categoryId)
	require.NoError(t, err)

	return f
}

func seedBin(t *testing.T, db *pgxpool.Pool, f fixture, externalId, categories string) int64 {
	t.Helper()
	var id int64
	err := db.QueryRow(context.Background(),
		`INSERT INTO bins(project_id, provider_id, category_id, external_id, classification, display_name, external_categories, address, geom)
VALUES($1, $2, $3, $4, $5, $6, $7, $8, ST_SetSRID(ST_GeomFromGeoJSON($9), 4326)) RETURNING id`,
		f.projectId, f.providerId, f.categoryId, externalId, "restaurant", "Medici on 57th",
		categories, "1327 E 57th St, Chicago, IL 60637",
		`{"type":"Point","coordinates":[-87.59,41.791]}`).Scan(&id)
	require.NoError(t, err)
	return id
}

func TestProjectController(t *testing.T) {

	db := startPostgis(t)
	require.NoError(t, SetupSchema(db))
	//second run must be a no-op
	require.NoError(t, SetupSchema(db))

	pc := NewProjectController(db)

	t.Run("fetch project with bins", func(t *testing.T) {
		f := seedProject(t, db, "hyde park pilot")
		first := seedBin(t, db, f, "yelp-abc123", "Bars|Restaurants")
		second := seedBin(t, db, f, "yelp-def456", "Parks")

		project, bins, err := pc.FetchProject(strconv.FormatInt(f.projectId, 10))
		require.NoError(t, err)

		assert.Equal(t, f.projectId, project.Id)
		assert.Equal(t, "hyde park pilot", project.Name)
		assert.Equal(t, f.localeId, project.Geography)
		assert.Equal(t, "Chicago hyde park pilot", project.LocaleName)
		assert.True(t, strings.Contains(project.Boundary, "MultiPolygon"))

		require.Len(t, bins, 2)
		assert.Equal(t, first, bins[0].Id)
		assert.Equal(t, second, bins[1].Id)
		assert.Equal(t, "yelp", bins[0].Provider)
		assert.Equal(t, "indoor_point", bins[0].Category)
		assert.Equal(t, pgtype.Present, bins[0].ExternalCategories.Status)
		assert.Equal(t, "Bars|Restaurants", bins[0].ExternalCategories.String)
		assert.True(t, strings.Contains(bins[0].Location, "Point"))
		assert.Equal(t, pgtype.Null, bins[0].Notes.Status)
	})

	t.Run("fetch project with no bins", func(t *testing.T) {
		f := seedProject(t, db, "empty pilot")

		project, bins, err := pc.FetchProject(strconv.FormatInt(f.projectId, 10))
		require.NoError(t, err)
		assert.Equal(t, "empty pilot", project.Name)
		assert.Len(t, bins, 0)
	})

	t.Run("fetch not found", func(t *testing.T) {
		_, _, err := pc.FetchProject("999999")
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("fetch invalid id", func(t *testing.T) {
		_, _, err := pc.FetchProject("notanumber")
		assert.ErrorIs(t, err, ErrInvalidID)
	})

	t.Run("partial update preserves other fields", func(t *testing.T) {
		f := seedProject(t, db, "update pilot")
		before, _, err := pc.FetchProject(strconv.FormatInt(f.projectId, 10))
		require.NoError(t, err)

		newName := "woodlawn pilot"
		updated, err := pc.UpdateProject(strconv.FormatInt(f.projectId, 10), ProjectUpdate{Name: &newName})
		require.NoError(t, err)

		assert.Equal(t, "woodlawn pilot", updated.Name)
		assert.Equal(t, before.Description, updated.Description)
		assert.Equal(t, before.Geography, updated.Geography)
		assert.True(t, updated.CreatedAt.Equal(before.CreatedAt))
		assert.True(t, updated.LastUpdatedAt.After(before.LastUpdatedAt))
	})

	t.Run("update geography", func(t *testing.T) {
		f := seedProject(t, db, "geo pilot")
		other := seedProject(t, db, "other locale pilot")

		updated, err := pc.UpdateProject(strconv.FormatInt(f.projectId, 10), ProjectUpdate{Geography: &other.localeId})
		require.NoError(t, err)
		assert.Equal(t, other.localeId, updated.Geography)
		assert.Equal(t, "geo pilot", updated.Name)
	})

	t.Run("update not found", func(t *testing.T) {
		name := "x"
		_, err := pc.UpdateProject("999999", ProjectUpdate{Name: &name})
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("delete returns prior values and cascades", func(t *testing.T) {
		f := seedProject(t, db, "delete pilot")
		seedBin(t, db, f, "yelp-del1", "Bars")

		deleted, err := pc.DeleteProject(strconv.FormatInt(f.projectId, 10))
		require.NoError(t, err)
		assert.Equal(t, "delete pilot", deleted.Name)

		_, _, err = pc.FetchProject(strconv.FormatInt(f.projectId, 10))
		assert.ErrorIs(t, err, ErrNotFound)

		var remaining int
		err = db.QueryRow(context.Background(),
			`SELECT count(*) FROM bins WHERE project_id = $1`, f.projectId).Scan(&remaining)
		require.NoError(t, err)
		assert.Equal(t, 0, remaining)
	})

	t.Run("delete not found", func(t *testing.T) {
		_, err := pc.DeleteProject("999999")
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("list projects in id order", func(t *testing.T) {
		projects, err := pc.ListProjects()
		require.NoError(t, err)
		require.True(t, len(projects) >= 2)
		for i := 1; i < len(projects); i++ {
			assert.Greater(t, projects[i].Id, projects[i-1].Id)
		}
	})
}
