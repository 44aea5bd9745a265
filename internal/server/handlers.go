package server

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/thenoetrevino/tablero/internal/ai"
	"github.com/thenoetrevino/tablero/internal/models"
)

// Register wires up all API routes on the provided Echo instance.
func Register(e *echo.Echo, store Storage, assistant ai.Assistant) {
	e.GET("/healthz", healthz(store))

	e.GET("/api/projects", listProjects(store))
	e.POST("/api/projects", createProject(store))
	e.PATCH("/api/projects/:id", updateProject(store))
	e.DELETE("/api/projects/:id", deleteProject(store))

	e.GET("/api/tasks/project/:projectId", getTasks(store))
	e.POST("/api/tasks", createTask(store))
	e.POST("/api/tasks/reorder", reorderTask(store))
	e.PATCH("/api/tasks/:id", updateTask(store))
	e.DELETE("/api/tasks/:id", deleteTask(store))

	if assistant != nil {
		e.GET("/api/ai/summarize/:projectId", summarizeProject(assistant))
		e.GET("/api/ai/summarize-task/:taskId", summarizeTask(assistant))
		e.POST("/api/ai/qa", askQuestion(assistant))
	}
}

type deletedResponse struct {
	Deleted string `json:"deleted"`
}

func healthz(store Storage) echo.HandlerFunc {
	return func(c echo.Context) error {
		if err := store.Ping(c.Request().Context()); err != nil {
			return echo.NewHTTPError(http.StatusServiceUnavailable, "storage unavailable").SetInternal(err)
		}
		return c.NoContent(http.StatusOK)
	}
}

// ============================================================================
// Projects
// ============================================================================

func listProjects(store Storage) echo.HandlerFunc {
	return func(c echo.Context) error {
		projects, err := store.ListProjects(c.Request().Context())
		if err != nil {
			return err
		}
		return c.JSON(http.StatusOK, projects)
	}
}

func createProject(store Storage) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req models.CreateProjectRequest
		if err := bindBody(c, &req); err != nil {
			return err
		}
		project, err := store.CreateProject(c.Request().Context(), req)
		if err != nil {
			return err
		}
		return c.JSON(http.StatusCreated, project)
	}
}

func updateProject(store Storage) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req models.UpdateProjectRequest
		if err := bindBody(c, &req); err != nil {
			return err
		}
		project, err := store.UpdateProject(c.Request().Context(), c.Param("id"), req)
		if err != nil {
			return err
		}
		return c.JSON(http.StatusOK, project)
	}
}

func deleteProject(store Storage) echo.HandlerFunc {
	return func(c echo.Context) error {
		id := c.Param("id")
		if err := store.DeleteProject(c.Request().Context(), id); err != nil {
			return err
		}
		return c.JSON(http.StatusOK, deletedResponse{Deleted: id})
	}
}

// ============================================================================
// Tasks
// ============================================================================

func getTasks(store Storage) echo.HandlerFunc {
	return func(c echo.Context) error {
		tasks, err := store.FetchTasks(c.Request().Context(), c.Param("projectId"))
		if err != nil {
			return err
		}
		return c.JSON(http.StatusOK, tasks)
	}
}

func createTask(store Storage) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req models.CreateTaskRequest
		if err := bindBody(c, &req); err != nil {
			return err
		}
		task, err := store.CreateTask(c.Request().Context(), req)
		if err != nil {
			return err
		}
		return c.JSON(http.StatusCreated, task)
	}
}

func updateTask(store Storage) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req models.UpdateTaskRequest
		if err := bindBody(c, &req); err != nil {
			return err
		}
		task, err := store.UpdateTask(c.Request().Context(), c.Param("id"), req)
		if err != nil {
			return err
		}
		return c.JSON(http.StatusOK, task)
	}
}

func deleteTask(store Storage) echo.HandlerFunc {
	return func(c echo.Context) error {
		id := c.Param("id")
		if err := store.DeleteTask(c.Request().Context(), id); err != nil {
			return err
		}
		return c.JSON(http.StatusOK, deletedResponse{Deleted: id})
	}
}

// reorderTask moves a task and returns its authoritative record. The rest of
// both columns is renumbered by the store.
func reorderTask(store Storage) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req models.ReorderRequest
		if err := bindBody(c, &req); err != nil {
			return err
		}
		if req.TaskID == "" {
			return echo.NewHTTPError(http.StatusBadRequest, "taskId is required")
		}
		task, err := store.ReorderTask(c.Request().Context(), req)
		if err != nil {
			return err
		}
		return c.JSON(http.StatusOK, task)
	}
}

// ============================================================================
// Assistant
// ============================================================================

func summarizeProject(assistant ai.Assistant) echo.HandlerFunc {
	return func(c echo.Context) error {
		summary, err := assistant.SummarizeProject(c.Request().Context(), c.Param("projectId"))
		if err != nil {
			return err
		}
		return c.JSON(http.StatusOK, ai.SummaryResponse{Summary: summary})
	}
}

func summarizeTask(assistant ai.Assistant) echo.HandlerFunc {
	return func(c echo.Context) error {
		summary, err := assistant.SummarizeTask(c.Request().Context(), c.Param("taskId"))
		if err != nil {
			return err
		}
		return c.JSON(http.StatusOK, ai.SummaryResponse{Summary: summary})
	}
}

func askQuestion(assistant ai.Assistant) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req ai.QuestionRequest
		if err := bindBody(c, &req); err != nil {
			return err
		}
		answer, err := assistant.Ask(c.Request().Context(), req.TaskID, req.Question)
		if err != nil {
			return err
		}
		return c.JSON(http.StatusOK, ai.AnswerResponse{Answer: answer})
	}
}
