package pricing

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/clinica/clinica/internal/platform/db"
	"github.com/clinica/clinica/pkg/pagination"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	api.GET("/fees", h.List)
	api.POST("/fees", h.Create)
	api.GET("/fees/:id", h.Get)
	api.PUT("/fees/:id", h.Update)
	api.DELETE("/fees/:id", h.Delete)
	api.GET("/fees/lookup", h.Lookup)
}

func (h *Handler) Create(c echo.Context) error {
	var fs FeeSchedule
	if err := c.Bind(&fs); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := h.svc.Create(c.Request().Context(), &fs); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusCreated, fs)
}

func (h *Handler) Get(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	fs, err := h.svc.Get(c.Request().Context(), id)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "fee not found")
	}
	return c.JSON(http.StatusOK, fs)
}

func (h *Handler) Update(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	var fs FeeSchedule
	if err := c.Bind(&fs); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	fs.ID = id
	if err := h.svc.Update(c.Request().Context(), &fs); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusOK, fs)
}

func (h *Handler) Delete(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	if err := h.svc.Delete(c.Request().Context(), id); err != nil {
		if db.IsForeignKeyViolation(err) {
			return echo.NewHTTPError(http.StatusConflict, "record is still referenced")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *Handler) List(c echo.Context) error {
	pg := pagination.FromContext(c)

	var insurerID *uuid.UUID
	if raw := c.QueryParam("insurer_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid insurer_id")
		}
		insurerID = &id
	}

	items, total, err := h.svc.List(c.Request().Context(), insurerID, pg.Limit, pg.Offset)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, pagination.NewResponse(items, total, pg.Limit, pg.Offset))
}

// Lookup returns the suggested copay for an insurer/treatment pair. Missing
// entries answer with a null amount rather than 404.
func (h *Handler) Lookup(c echo.Context) error {
	insurerID, err := uuid.Parse(c.QueryParam("insurer_id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid insurer_id")
	}
	treatmentID, err := uuid.Parse(c.QueryParam("treatment_id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid treatment_id")
	}

	amount, err := h.svc.SuggestedCopay(c.Request().Context(), insurerID, treatmentID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, map[string]interface{}{"suggested_copay": amount})
}
