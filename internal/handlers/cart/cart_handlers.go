package cart

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/pos_shop/internal/logging"
	"github.com/Skotchmaster/pos_shop/internal/models"
	"github.com/Skotchmaster/pos_shop/internal/service"
	"github.com/Skotchmaster/pos_shop/internal/transport"
)

type CartHandler struct{}

type cartPage struct {
	CSRF string
	Data models.Cart
}

// GetCart answers with JSON when the client asks for it and renders the
// cart page otherwise.
func (h *CartHandler) GetCart(c echo.Context) error {
	crt, err := Get(c)
	if err != nil {
		logging.FromContext(c.Request().Context()).Error("cart_read_error", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "internal server error")
	}

	if strings.Contains(c.Request().Header.Get(echo.HeaderAccept), echo.MIMEApplicationJSON) {
		return c.JSON(http.StatusOK, crt)
	}
	token, _ := c.Get("csrf_token").(string)
	return c.Render(http.StatusOK, "cart.html", cartPage{CSRF: token, Data: crt})
}

func (h *CartHandler) UpdateCart(c echo.Context) error {
	var req transport.UpdateCartRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "message": "invalid JSON body"})
	}
	if err := service.Validate(req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "message": err.Error()})
	}

	if err := Replace(c, models.Cart{Items: req.Cart, Total: req.Total}); err != nil {
		logging.FromContext(c.Request().Context()).Error("cart_update_error", "error", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "message": "could not store cart"})
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "message": "Cart updated"})
}
