package handler

import (
	"errors"

	"github.com/kataras/iris/v12"

	"github.com/replate-labs/foodware/api/database"
	"github.com/replate-labs/foodware/api/encoding"
)

//ProjectStore is the slice of the project controller the HTTP layer needs.
type ProjectStore interface {
	FetchProject(id string) (*database.ProjectRow, []database.BinRow, error)
	UpdateProject(id string, upd database.ProjectUpdate) (*database.ProjectRow, error)
	DeleteProject(id string) (*database.ProjectRow, error)
	ListProjects() ([]database.ProjectRow, error)
}

type ProjectHandler struct {
	Store ProjectStore
}

func (ph *ProjectHandler) GetProjects(ctx iris.Context) {

	projects, err := ph.Store.ListProjects()
	if err != nil {
		ctx.Problem(iris.NewProblem().Type("/projects").Detail("database issue").Status(500))
		return
	}
	ctx.JSON(projects)
}

func (ph *ProjectHandler) GetProjectById(ctx iris.Context) {

	id := ctx.Params().Get("project_id")
	row, bins, err := ph.Store.FetchProject(id)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) || errors.Is(err, database.ErrInvalidID) {
			ctx.StatusCode(iris.StatusNotFound)
			ctx.WriteString("project not found")
			return
		}
		ctx.Problem(iris.NewProblem().Type("/projects").Detail("database issue").Status(500))
		return
	}

	project, err := encoding.ShapeProject(row, bins)
	if err != nil {
		ctx.Problem(iris.NewProblem().Type("/projects").Detail("encoding issue").Status(500))
		return
	}
	ctx.JSON(project)
}

type updateRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Geography   *int64  `json:"geography"`
}

func (ph *ProjectHandler) UpdateProject(ctx iris.Context) {

	id := ctx.Params().Get("project_id")

	var req updateRequest
	if err := ctx.ReadJSON(&req); err != nil {
		ctx.Problem(iris.NewProblem().Type("/projects").Detail("invalid request body").Status(400))
		return
	}

	row, err := ph.Store.UpdateProject(id, database.ProjectUpdate{
		Name:        req.Name,
		Description: req.Description,
		Geography:   req.Geography,
	})
	if err != nil {
		writeStoreError(ctx, err)
		return
	}
	ctx.JSON(row)
}

func (ph *ProjectHandler) DeleteProject(ctx iris.Context) {

	id := ctx.Params().Get("project_id")
	row, err := ph.Store.DeleteProject(id)
	if err != nil {
		writeStoreError(ctx, err)
		return
	}
	ctx.JSON(row)
}

//writeStoreError maps mutation failures onto problem responses. Not-found
//is surfaced explicitly instead of being swallowed into a success.
func writeStoreError(ctx iris.Context, err error) {

	switch {
	case errors.Is(err, database.ErrNotFound):
		ctx.Problem(iris.NewProblem().Type("/projects").Detail("project not found").Status(404))
	case errors.Is(err, database.ErrInvalidID):
		ctx.Problem(iris.NewProblem().Type("/projects").Detail("invalid project id").Status(400))
	default:
		ctx.Problem(iris.NewProblem().Type("/projects").Detail("database issue").Status(500))
	}
}
