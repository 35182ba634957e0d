package reporting

import (
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/clinica/clinica/pkg/pagination"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	api.GET("/reports/balance", h.Balance)
	api.GET("/reports/debtors", h.Debtors)
}

func (h *Handler) Balance(c echo.Context) error {
	// Non-numeric input falls back to zero and the service defaults it.
	year, _ := strconv.Atoi(c.QueryParam("year"))
	month, _ := strconv.Atoi(c.QueryParam("month"))

	var insurerID *uuid.UUID
	if raw := c.QueryParam("insurer_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid insurer_id")
		}
		insurerID = &id
	}

	report, err := h.svc.Balance(c.Request().Context(), year, month, insurerID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, report)
}

func (h *Handler) Debtors(c echo.Context) error {
	pg := pagination.FromContext(c)
	items, total, err := h.svc.Debtors(c.Request().Context(), pg.Limit, pg.Offset)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, pagination.NewResponse(items, total, pg.Limit, pg.Offset))
}
