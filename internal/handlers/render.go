package handlers

import (
	"embed"
	"html/template"
	"io"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"github.com/Skotchmaster/pos_shop/internal/images"
)

//go:embed templates/*.html
var templateFS embed.FS

type Renderer struct {
	templates *template.Template
}

func NewRenderer() *Renderer {
	funcs := template.FuncMap{
		"imageURL": images.URL,
		"money":    func(d decimal.Decimal) string { return d.StringFixed(2) },
	}
	return &Renderer{
		templates: template.Must(template.New("").Funcs(funcs).ParseFS(templateFS, "templates/*.html")),
	}
}

func (r *Renderer) Render(w io.Writer, name string, data interface{}, c echo.Context) error {
	return r.templates.ExecuteTemplate(w, name, data)
}

// page is the data every template receives.
type page struct {
	CSRF string
	Data interface{}
}

func newPage(c echo.Context, data interface{}) page {
	token, _ := c.Get("csrf_token").(string)
	return page{CSRF: token, Data: data}
}
