package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/pos_shop/internal/handlers/cart"
	"github.com/Skotchmaster/pos_shop/internal/logging"
	"github.com/Skotchmaster/pos_shop/internal/service"
	"github.com/Skotchmaster/pos_shop/internal/transport"
)

type PaymentHandler struct {
	Checkout *service.CheckoutService
}

func (h *PaymentHandler) SavePayment(c echo.Context) error {
	var req transport.SavePaymentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid JSON body")
	}

	if _, err := h.Checkout.RecordPayment(c.Request().Context(), req); err != nil {
		return httpError(c, "payment_save_error", err)
	}

	if err := cart.Clear(c); err != nil {
		logging.FromContext(c.Request().Context()).Warn("cart_clear_error", "error", err)
	}
	return c.JSON(http.StatusOK, transport.PaymentResponse{
		Message:  "Payment details saved successfully",
		Redirect: "/",
	})
}

func (h *PaymentHandler) SaveTransaction(c echo.Context) error {
	var req transport.SaveTransactionRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid JSON body")
	}

	if _, err := h.Checkout.RecordTransaction(c.Request().Context(), req); err != nil {
		return httpError(c, "transaction_save_error", err)
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "message": "Transaction saved successfully."})
}
