package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/pos_shop/internal/logging"
	"github.com/Skotchmaster/pos_shop/internal/models"
	"github.com/Skotchmaster/pos_shop/internal/service"
)

type SalesHandler struct {
	Sales *service.SalesService
}

type dashboardData struct {
	Payments     []models.PaymentRow
	Transactions []models.TransactionRow
}

// Dashboard renders both logs. A log that cannot be read shows no rows.
func (h *SalesHandler) Dashboard(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx)

	var data dashboardData
	var err error
	if data.Payments, err = h.Sales.Payments(ctx); err != nil {
		l.Error("dashboard_payments_error", "error", err)
	}
	if data.Transactions, err = h.Sales.Transactions(ctx); err != nil {
		l.Error("dashboard_transactions_error", "error", err)
	}
	return c.Render(http.StatusOK, "dashboard.html", newPage(c, data))
}

func (h *SalesHandler) SalesData(c echo.Context) error {
	items, err := h.Sales.LineItems(c.Request().Context())
	if err != nil {
		return httpError(c, "sales_data_error", err)
	}
	return c.JSON(http.StatusOK, items)
}

func (h *SalesHandler) SalesSummary(c echo.Context) error {
	summary, err := h.Sales.Summary(c.Request().Context(), c.Param("period"))
	if err != nil {
		return httpError(c, "sales_summary_error", err)
	}
	return c.JSON(http.StatusOK, summary)
}
