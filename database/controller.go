package database

import (
	"context"
	"strconv"

	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// ErrNotFound signals that no project row matched the given id.
var ErrNotFound = errors.New("project not found")

// ErrInvalidID signals an id that does not coerce to an integer. It is
// returned before any query is issued.
var ErrInvalidID = errors.New("invalid project id")

type ProjectController struct {
	db *pgxpool.Pool
}

func NewProjectController(db *pgxpool.Pool) *ProjectController {
	return &ProjectController{db: db}
}

// ProjectUpdate carries the optional PATCH fields. Nil fields keep the stored
// value; Geography is the locale id.
type ProjectUpdate struct {
	Name        *string
	Description *string
	Geography   *int64
}

//FetchProject returns the project row joined to its locale plus all of the
//project's bin rows, each joined to its provider and category names. A
//project with no bins yields an empty slice, not an error.
func (pc *ProjectController) FetchProject(id string) (*ProjectRow, []BinRow, error) {
	projectId, err := strconv.Atoi(id)
	if err != nil {
		zap.L().Error("badly formatted project id")
		return nil, nil, ErrInvalidID
	}

	sql := `SELECT p.id, p.name, p.description, p.locale_id, p.created_at, p.last_updated_at,
       l.name, ST_AsGeoJSON(l.boundary)
FROM projects p
JOIN locales l ON l.id = p.locale_id
WHERE p.id = $1`
	row := pc.db.QueryRow(context.Background(), sql, projectId)
	project, err := scanToProjectRow(row, true)
	if err != nil {
		return nil, nil, err
	}

	bins, err := pc.findBinsByProject(projectId)
	if err != nil {
		return nil, nil, err
	}
	return project, bins, nil
}

//findBinsByProject returns the project's bins in id order. Bins whose
//provider or category reference does not resolve drop out of the join.
func (pc *ProjectController) findBinsByProject(projectId int) ([]BinRow, error) {

	sql := `SELECT b.id, b.created_at, pr.name, c.name, b.external_id, b.classification,
       b.display_name, b.external_categories, b.address, ST_AsGeoJSON(b.geom), b.notes
FROM bins b
JOIN providers pr ON pr.id = b.provider_id
JOIN categories c ON c.id = b.category_id
WHERE b.project_id = $1
ORDER BY b.id`
	rows, err := pc.db.Query(context.Background(), sql, projectId)
	if err != nil {
		zap.L().Error(err.Error())
		return nil, err
	}
	defer rows.Close()

	return scanToBinRows(rows)
}

//UpdateProject applies the supplied fields to exactly one project row and
//stamps its last-update time, returning the row as stored after the
//mutation.
func (pc *ProjectController) UpdateProject(id string, upd ProjectUpdate) (*ProjectRow, error) {
	projectId, err := strconv.Atoi(id)
	if err != nil {
		zap.L().Error("badly formatted project id")
		return nil, ErrInvalidID
	}

	sql := `UPDATE projects
SET name = COALESCE($2, name),
    description = COALESCE($3, description),
    locale_id = COALESCE($4, locale_id),
    last_updated_at = now()
WHERE id = $1
RETURNING id, name, description, locale_id, created_at, last_updated_at`
	row := pc.db.QueryRow(context.Background(), sql, projectId, upd.Name, upd.Description, upd.Geography)
	return scanToProjectRow(row, false)
}

//DeleteProject removes exactly one project row and returns its prior values.
//Dependent bins are removed by the store's ON DELETE CASCADE.
func (pc *ProjectController) DeleteProject(id string) (*ProjectRow, error) {
	projectId, err := strconv.Atoi(id)
	if err != nil {
		zap.L().Error("badly formatted project id")
		return nil, ErrInvalidID
	}

	sql := `DELETE FROM projects
WHERE id = $1
RETURNING id, name, description, locale_id, created_at, last_updated_at`
	row := pc.db.QueryRow(context.Background(), sql, projectId)
	return scanToProjectRow(row, false)
}

//ListProjects returns all project rows in id order, without boundaries.
func (pc *ProjectController) ListProjects() ([]ProjectRow, error) {

	sql := `SELECT p.id, p.name, p.description, p.locale_id, p.created_at, p.last_updated_at
FROM projects p
ORDER BY p.id`
	rows, err := pc.db.Query(context.Background(), sql)
	if err != nil {
		zap.L().Error(err.Error())
		return nil, err
	}
	defer rows.Close()

	projects := make([]ProjectRow, 0, 16)
	for rows.Next() {
		var p ProjectRow
		if err := rows.Scan(&p.Id, &p.Name, &p.Description, &p.Geography, &p.CreatedAt, &p.LastUpdatedAt); err != nil {
			return nil, errors.Wrap(err, "error scanning project row")
		}
		projects = append(projects, p)
	}
	return projects, rows.Err()
}

//scanToProjectRow scans a single row into a ProjectRow. withLocale is set
//for the fetch query, which also selects the locale name and boundary text.
func scanToProjectRow(row pgx.Row, withLocale bool) (*ProjectRow, error) {

	var p ProjectRow
	var err error
	if withLocale {
		err = row.Scan(&p.Id, &p.Name, &p.Description, &p.Geography, &p.CreatedAt, &p.LastUpdatedAt,
			&p.LocaleName, &p.Boundary)
	} else {
		err = row.Scan(&p.Id, &p.Name, &p.Description, &p.Geography, &p.CreatedAt, &p.LastUpdatedAt)
	}
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		zap.S().Warnf("error scanning row: %s", err.Error())
		return nil, err
	}
	return &p, nil
}

func scanToBinRows(rows pgx.Rows) ([]BinRow, error) {

	bins := make([]BinRow, 0, 16)
	for rows.Next() {

		var b BinRow
		err := rows.Scan(&b.Id, &b.CreatedAt, &b.Provider, &b.Category, &b.ExternalId, &b.Classification,
			&b.DisplayName, &b.ExternalCategories, &b.Address, &b.Location, &b.Notes)
		if err != nil {
			zap.S().Warnf("error scanning bin row: %s", err.Error())
			return nil, err
		}
		bins = append(bins, b)
	}
	zap.L().Info("returned ", zap.Int("bins", len(bins)))
	return bins, rows.Err()
}
