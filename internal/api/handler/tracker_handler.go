package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/taskforge/taskforge/internal/core/domain"
	"github.com/taskforge/taskforge/internal/core/ports"
)

// TrackerHandler handles HTTP requests for project/epic/task operations.
// Authentication and role checks happen in the middleware chain; the handler
// only carries the resolved identity into the service calls.
type TrackerHandler struct {
	service ports.TrackerService
}

func NewTrackerHandler(service ports.TrackerService) *TrackerHandler {
	return &TrackerHandler{service: service}
}

// CreateProject handles POST /projects.
func (h *TrackerHandler) CreateProject(c echo.Context) error {
	id, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	var req createProjectRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	project, err := h.service.CreateProject(c.Request().Context(), ports.CreateProjectInput{
		OwnerID:     id.Subject,
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, toProjectResponse(project))
}

// GetProject handles GET /projects/:id.
func (h *TrackerHandler) GetProject(c echo.Context) error {
	project, err := h.service.GetProject(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toProjectResponse(project))
}

// ListProjects handles GET /projects. Non-admin callers only see their own.
func (h *TrackerHandler) ListProjects(c echo.Context) error {
	id, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	projects, err := h.service.ListProjects(c.Request().Context(), ports.ListProjectsInput{
		Subject: id.Subject,
		Roles:   id.Roles,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toProjectList(projects))
}

// DeleteProject handles DELETE /projects/:id.
func (h *TrackerHandler) DeleteProject(c echo.Context) error {
	if err := h.service.DeleteProject(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// CreateEpic handles POST /projects/:id/epics.
func (h *TrackerHandler) CreateEpic(c echo.Context) error {
	var req createEpicRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	epic, err := h.service.CreateEpic(c.Request().Context(), ports.CreateEpicInput{
		ProjectID:   c.Param("id"),
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, toEpicResponse(epic))
}

// ListEpics handles GET /projects/:id/epics.
func (h *TrackerHandler) ListEpics(c echo.Context) error {
	epics, err := h.service.ListEpics(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toEpicList(epics))
}

// DeleteEpic handles DELETE /epics/:id.
func (h *TrackerHandler) DeleteEpic(c echo.Context) error {
	if err := h.service.DeleteEpic(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// CreateTask handles POST /epics/:id/tasks.
func (h *TrackerHandler) CreateTask(c echo.Context) error {
	var req createTaskRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	task, err := h.service.CreateTask(c.Request().Context(), ports.CreateTaskInput{
		EpicID:      c.Param("id"),
		Title:       req.Title,
		Description: req.Description,
		AssigneeID:  req.AssigneeID,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, toTaskResponse(task))
}

// ListTasks handles GET /epics/:id/tasks.
func (h *TrackerHandler) ListTasks(c echo.Context) error {
	tasks, err := h.service.ListTasks(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toTaskList(tasks))
}

// UpdateTask handles PUT /tasks/:id.
func (h *TrackerHandler) UpdateTask(c echo.Context) error {
	var req updateTaskRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	task, err := h.service.UpdateTask(c.Request().Context(), ports.UpdateTaskInput{
		TaskID:      c.Param("id"),
		Title:       req.Title,
		Description: req.Description,
		Status:      domain.TaskStatus(req.Status),
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toTaskResponse(task))
}

// DeleteTask handles DELETE /tasks/:id.
func (h *TrackerHandler) DeleteTask(c echo.Context) error {
	if err := h.service.DeleteTask(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
