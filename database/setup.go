package database

import (
	"context"

	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

//DeleteSchema cleans up the tables and data - useful for testing but not exposed to web
func DeleteSchema(db *pgxpool.Pool) error {
	dropTables := `drop table bins cascade;
					drop table projects cascade;
					drop table locales cascade;
					drop table providers cascade;
					drop table categories cascade;`
	_, err := db.Exec(context.Background(), dropTables)
	return err
}

//SetupSchema creates the required tables if they don't exist
func SetupSchema(db *pgxpool.Pool) error {

	ctx := context.Background()

	//is postgis installed?
	row := db.QueryRow(ctx, "SELECT postgis_version()")
	var version string
	err := row.Scan(&version)

	if err != nil {
		zap.L().Warn("PostGIS not found...attempting to install")
		_, err := db.Exec(ctx, "CREATE EXTENSION POSTGIS")
		if err != nil {
			return errors.Wrap(err, "unable to install postgis")
		} else {
			zap.L().Info("Installed PostGIS")
		}
	} else {
		zap.L().Info("Found PostGIS: " + version)
	}

	checkSql := "SELECT cast(count(id) as VARCHAR) FROM projects"
	row = db.QueryRow(ctx, checkSql)
	err = row.Scan(&version)
	if err == nil {
		//table likely exists
		return nil
	}
	zap.L().Info("attempting to create tables")

	createSql := `CREATE TABLE IF NOT EXISTS locales(id serial primary key, name text not null);
CREATE TABLE IF NOT EXISTS projects(id serial primary key, name text not null, description text not null default '', locale_id int not null references locales(id), created_at timestamptz not null default now(), last_updated_at timestamptz not null default now());
CREATE TABLE IF NOT EXISTS providers(id serial primary key, name text not null unique);
CREATE TABLE IF NOT EXISTS categories(id serial primary key, name text not null unique);
CREATE TABLE IF NOT EXISTS bins(id serial primary key, project_id int not null references projects(id) on delete cascade, provider_id int not null references providers(id), category_id int not null references categories(id), external_id text not null, classification text not null, display_name text not null, external_categories text, address text not null default '', notes text, created_at timestamptz not null default now());
SELECT AddGeometryColumn('locales', 'boundary', 4326, 'MULTIPOLYGON', 2, false);
SELECT AddGeometryColumn('bins', 'geom', 4326, 'POINT', 2, false);
CREATE INDEX locale_boundary_index on locales USING GIST(boundary);
CREATE INDEX bin_geom_index on bins USING GIST(geom);
`
	_, err = db.Exec(ctx, createSql)
	return err
}
