package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/pos_shop/internal/handlers"
	"github.com/Skotchmaster/pos_shop/internal/handlers/cart"
)

type Deps struct {
	ProductHandler *handlers.ProductHandler
	CartHandler    *cart.CartHandler
	PaymentHandler *handlers.PaymentHandler
	SalesHandler   *handlers.SalesHandler

	UploadDir string
	// Ready reports whether the catalog store is usable.
	Ready func() error
}

func Register(e *echo.Echo, d *Deps) {
	e.GET("/health/live", func(c echo.Context) error { return c.NoContent(http.StatusOK) })
	e.GET("/health/ready", func(c echo.Context) error {
		if d.Ready != nil {
			if err := d.Ready(); err != nil {
				return c.NoContent(http.StatusServiceUnavailable)
			}
		}
		return c.NoContent(http.StatusOK)
	})

	e.Static("/uploads", d.UploadDir)

	e.GET("/", d.ProductHandler.Index)
	e.GET("/add_product", d.ProductHandler.AddForm)
	e.POST("/add_product", d.ProductHandler.AddProduct)
	e.GET("/edit_product/:id", d.ProductHandler.EditForm)
	e.POST("/edit_product/:id", d.ProductHandler.EditProduct)
	e.POST("/delete_product/:id", d.ProductHandler.DeleteProduct)
	e.GET("/delete_page", d.ProductHandler.DeletePage)

	e.GET("/cart", d.CartHandler.GetCart)
	e.POST("/update_cart", d.CartHandler.UpdateCart)

	e.POST("/save_payment", d.PaymentHandler.SavePayment)
	e.POST("/save_transaction", d.PaymentHandler.SaveTransaction)

	e.GET("/dashboard", d.SalesHandler.Dashboard)

	api := e.Group("/api")

	api.GET("/sales_data", d.SalesHandler.SalesData)
	api.GET("/sales_summary/:period", d.SalesHandler.SalesSummary)

	products := api.Group("/products")

	products.GET("", d.ProductHandler.GetProducts)
	products.GET("/search", d.ProductHandler.Search)
}
