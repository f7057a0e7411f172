package main

import (
	"github.com/kataras/iris/v12"
	"github.com/kataras/iris/v12/middleware/basicauth"
	"github.com/spf13/viper"

	"github.com/replate-labs/foodware/api/config"
	"github.com/replate-labs/foodware/api/database"
	"github.com/replate-labs/foodware/api/handler"
)

func main() {

	db := config.Preflight()
	defer db.Close()
	app := foodwareApi(database.NewProjectController(db))
	app.Listen(":" + viper.GetString("port"))
}

func foodwareApi(store handler.ProjectStore) *iris.Application {

	app := iris.New()

	//auth for destructive actions only
	auth := basicauth.Default(map[string]string{
		viper.GetString("ADMIN_USER"): viper.GetString("ADMIN_PASSWORD"),
	})

	//healthcheck endpoints
	app.Get("/healthz", handler.Ok)
	app.Get("/health", handler.Ok)

	//project endpoints
	ph := handler.ProjectHandler{Store: store}
	projectEndpoint := app.Party("/projects")
	{
		projectEndpoint.Get("/", ph.GetProjects)
		projectEndpoint.Get("/{project_id}", ph.GetProjectById)
		projectEndpoint.Patch("/{project_id}", ph.UpdateProject)
		projectEndpoint.Delete("/{project_id}", auth, ph.DeleteProject)
	}
	return app
}
