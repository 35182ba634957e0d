package catalog

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
	api.GET("/insurers", h.ListInsurers)
	api.POST("/insurers", h.CreateInsurer)
	api.GET("/insurers/:id", h.GetInsurer)
	api.PUT("/insurers/:id", h.UpdateInsurer)
	api.DELETE("/insurers/:id", h.DeleteInsurer)

	api.GET("/treatments", h.ListTreatments)
	api.POST("/treatments", h.CreateTreatment)
	api.GET("/treatments/:id", h.GetTreatment)
	api.PUT("/treatments/:id", h.UpdateTreatment)
	api.DELETE("/treatments/:id", h.DeleteTreatment)

	api.GET("/expense-categories", h.ListExpenseCategories)
	api.POST("/expense-categories", h.CreateExpenseCategory)
	api.GET("/expense-categories/:id", h.GetExpenseCategory)
	api.PUT("/expense-categories/:id", h.UpdateExpenseCategory)
	api.DELETE("/expense-categories/:id", h.DeleteExpenseCategory)
}

func parseID(c echo.Context) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return uuid.Nil, echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	return id, nil
}

// deleteError maps referential-protection failures to 409.
func deleteError(err error) error {
	if db.IsForeignKeyViolation(err) {
		return echo.NewHTTPError(http.StatusConflict, "record is still referenced")
	}
	return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
}

// -- Insurer --

func (h *Handler) CreateInsurer(c echo.Context) error {
	var ins Insurer
	if err := c.Bind(&ins); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := h.svc.CreateInsurer(c.Request().Context(), &ins); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusCreated, ins)
}

func (h *Handler) GetInsurer(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	ins, err := h.svc.GetInsurer(c.Request().Context(), id)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "insurer not found")
	}
	return c.JSON(http.StatusOK, ins)
}

func (h *Handler) UpdateInsurer(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	var ins Insurer
	if err := c.Bind(&ins); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	ins.ID = id
	if err := h.svc.UpdateInsurer(c.Request().Context(), &ins); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusOK, ins)
}

func (h *Handler) DeleteInsurer(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	if err := h.svc.DeleteInsurer(c.Request().Context(), id); err != nil {
		return deleteError(err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *Handler) ListInsurers(c echo.Context) error {
	pg := pagination.FromContext(c)
	items, total, err := h.svc.ListInsurers(c.Request().Context(), pg.Limit, pg.Offset)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, pagination.NewResponse(items, total, pg.Limit, pg.Offset))
}

// -- Treatment --

func (h *Handler) CreateTreatment(c echo.Context) error {
	var t Treatment
	if err := c.Bind(&t); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := h.svc.CreateTreatment(c.Request().Context(), &t); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusCreated, t)
}

func (h *Handler) GetTreatment(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	t, err := h.svc.GetTreatment(c.Request().Context(), id)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "treatment not found")
	}
	return c.JSON(http.StatusOK, t)
}

func (h *Handler) UpdateTreatment(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	var t Treatment
	if err := c.Bind(&t); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	t.ID = id
	if err := h.svc.UpdateTreatment(c.Request().Context(), &t); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusOK, t)
}

func (h *Handler) DeleteTreatment(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	if err := h.svc.DeleteTreatment(c.Request().Context(), id); err != nil {
		return deleteError(err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *Handler) ListTreatments(c echo.Context) error {
	pg := pagination.FromContext(c)
	items, total, err := h.svc.ListTreatments(c.Request().Context(), pg.Limit, pg.Offset)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, pagination.NewResponse(items, total, pg.Limit, pg.Offset))
}

// -- ExpenseCategory --

func (h *Handler) CreateExpenseCategory(c echo.Context) error {
	var ec ExpenseCategory
	if err := c.Bind(&ec); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := h.svc.CreateExpenseCategory(c.Request().Context(), &ec); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusCreated, ec)
}

func (h *Handler) GetExpenseCategory(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	ec, err := h.svc.GetExpenseCategory(c.Request().Context(), id)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "expense category not found")
	}
	return c.JSON(http.StatusOK, ec)
}

func (h *Handler) UpdateExpenseCategory(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	var ec ExpenseCategory
	if err := c.Bind(&ec); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	ec.ID = id
	if err := h.svc.UpdateExpenseCategory(c.Request().Context(), &ec); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusOK, ec)
}

func (h *Handler) DeleteExpenseCategory(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	if err := h.svc.DeleteExpenseCategory(c.Request().Context(), id); err != nil {
		return deleteError(err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *Handler) ListExpenseCategories(c echo.Context) error {
	pg := pagination.FromContext(c)
	items, total, err := h.svc.ListExpenseCategories(c.Request().Context(), pg.Limit, pg.Offset)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, pagination.NewResponse(items, total, pg.Limit, pg.Offset))
}
