package handlers

import (
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/pos_shop/internal/handlers/cart"
	"github.com/Skotchmaster/pos_shop/internal/models"
	"github.com/Skotchmaster/pos_shop/internal/service"
	"github.com/Skotchmaster/pos_shop/internal/util"
)

type ProductHandler struct {
	Catalog *service.CatalogService
}

type productResponse struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Product *models.Product `json:"product,omitempty"`
}

type indexData struct {
	Products []models.Product
	Cart     models.Cart
}

func (h *ProductHandler) Index(c echo.Context) error {
	products, err := h.Catalog.List(c.Request().Context())
	if err != nil {
		return httpError(c, "product_list_error", err)
	}
	crt, err := cart.Get(c)
	if err != nil {
		return httpError(c, "cart_read_error", err)
	}
	return c.Render(http.StatusOK, "index.html", newPage(c, indexData{Products: products, Cart: crt}))
}

func (h *ProductHandler) AddForm(c echo.Context) error {
	return c.Render(http.StatusOK, "add_product.html", newPage(c, nil))
}

func (h *ProductHandler) AddProduct(c echo.Context) error {
	name := c.FormValue("name")
	price, err := parsePrice(c.FormValue("price"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "All fields are required!")
	}

	fh, err := c.FormFile("image")
	if err != nil && !errors.Is(err, http.ErrMissingFile) {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid image upload")
	}
	upload, closeFn, err := openUpload(fh)
	if err != nil {
		return httpError(c, "product_create_error", err)
	}
	defer closeFn()

	prod, err := h.Catalog.Add(c.Request().Context(), name, price, upload)
	if err != nil {
		return httpError(c, "product_create_error", err)
	}
	return c.JSON(http.StatusCreated, productResponse{
		Success: true,
		Message: "Product added successfully",
		Product: prod,
	})
}

func (h *ProductHandler) EditForm(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	prod, err := h.Catalog.Get(c.Request().Context(), id)
	if err != nil {
		return httpError(c, "product_get_error", err)
	}
	return c.Render(http.StatusOK, "edit_product.html", newPage(c, prod))
}

// EditProduct updates the product and redirects to the index. The image
// field is optional.
func (h *ProductHandler) EditProduct(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	price, err := parsePrice(c.FormValue("price"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "price must be a number")
	}

	fh, err := c.FormFile("image")
	if err != nil && !errors.Is(err, http.ErrMissingFile) {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid image upload")
	}
	upload, closeFn, err := openUpload(fh)
	if err != nil {
		return httpError(c, "product_update_error", err)
	}
	defer closeFn()

	if _, err := h.Catalog.Update(c.Request().Context(), id, c.FormValue("name"), price, upload); err != nil {
		return httpError(c, "product_update_error", err)
	}
	return c.Redirect(http.StatusSeeOther, "/")
}

func (h *ProductHandler) DeleteProduct(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	if err := h.Catalog.Delete(c.Request().Context(), id); err != nil {
		return httpError(c, "product_delete_error", err)
	}
	return c.JSON(http.StatusOK, echo.Map{
		"message": fmt.Sprintf("Product %d deleted", id),
		"id":      id,
	})
}

func (h *ProductHandler) DeletePage(c echo.Context) error {
	products, err := h.Catalog.List(c.Request().Context())
	if err != nil {
		return httpError(c, "product_list_error", err)
	}
	return c.Render(http.StatusOK, "delete_page.html", newPage(c, products))
}

func (h *ProductHandler) GetProducts(c echo.Context) error {
	page := util.ParseIntDefault(c.QueryParam("page"), 1)
	size := util.ParseIntDefault(c.QueryParam("size"), util.DefaultPageSize)

	offset, limit := util.Calculate(page, size)

	total, items, err := h.Catalog.Page(c.Request().Context(), offset, limit)
	if err != nil {
		return httpError(c, "product_list_error", err)
	}
	return c.JSON(http.StatusOK, echo.Map{
		"data": items,
		"meta": util.NewMeta(page, offset, limit, total),
	})
}

func (h *ProductHandler) Search(c echo.Context) error {
	q := strings.TrimSpace(c.QueryParam("q"))
	if q == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "query error")
	}

	page := util.ParseIntDefault(c.QueryParam("page"), 1)
	size := util.ParseIntDefault(c.QueryParam("size"), util.DefaultPageSize)
	from, size := util.Calculate(page, size)

	total, products, err := h.Catalog.Search(c.Request().Context(), q, from, size)
	if err != nil {
		return httpError(c, "product_search_error", err)
	}
	return c.JSON(http.StatusOK, echo.Map{"total": total, "products": products})
}

func parsePrice(s string) (float64, error) {
	return strconv.ParseFloat(strings.TrimSpace(s), 64)
}

// openUpload returns nil when no file was sent.
func openUpload(fh *multipart.FileHeader) (*service.ImageUpload, func(), error) {
	if fh == nil || fh.Filename == "" {
		return nil, func() {}, nil
	}
	f, err := fh.Open()
	if err != nil {
		return nil, func() {}, err
	}
	return &service.ImageUpload{Filename: fh.Filename, Content: f}, func() { f.Close() }, nil
}
