// Package cart keeps the shopping cart in the server-side session.
package cart

import (
	"encoding/json"
	"fmt"

	"github.com/gorilla/sessions"
	"github.com/labstack/echo-contrib/session"
	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/pos_shop/internal/logging"
	"github.com/Skotchmaster/pos_shop/internal/models"
)

const (
	SessionName = "pos_session"
	cartKey     = "cart"
)

// Get returns the session cart, or an empty cart when none is stored.
func Get(c echo.Context) (models.Cart, error) {
	sess, err := load(c)
	if err != nil {
		return models.Cart{}, err
	}
	raw, ok := sess.Values[cartKey].(string)
	if !ok || raw == "" {
		return models.Cart{Items: []models.CartLine{}}, nil
	}

	var crt models.Cart
	if err := json.Unmarshal([]byte(raw), &crt); err != nil {
		logging.FromContext(c.Request().Context()).Warn("cart_decode_error", "error", err)
		return models.Cart{Items: []models.CartLine{}}, nil
	}
	if crt.Items == nil {
		crt.Items = []models.CartLine{}
	}
	return crt, nil
}

// Replace stores crt as sent by the client. Totals are not recomputed.
func Replace(c echo.Context, crt models.Cart) error {
	raw, err := json.Marshal(crt)
	if err != nil {
		return fmt.Errorf("encode cart: %w", err)
	}
	return save(c, func(values map[interface{}]interface{}) {
		values[cartKey] = string(raw)
	})
}

func Clear(c echo.Context) error {
	return save(c, func(values map[interface{}]interface{}) {
		delete(values, cartKey)
	})
}

// load returns the request's session. A cookie the store cannot decode
// (rotated secret, removed session file) is replaced by a fresh session.
func load(c echo.Context) (*sessions.Session, error) {
	sess, err := session.Get(SessionName, c)
	if err == nil {
		return sess, nil
	}
	if sess == nil {
		return nil, fmt.Errorf("load session: %w", err)
	}

	l := logging.FromContext(c.Request().Context())
	l.Warn("session_reset", "error", err)
	sess.Values = map[interface{}]interface{}{}
	sess.IsNew = true
	if err := sess.Save(c.Request(), c.Response()); err != nil {
		l.Warn("session_reset_save_error", "error", err)
	}
	return sess, nil
}

func save(c echo.Context, mutate func(map[interface{}]interface{})) error {
	sess, err := load(c)
	if err != nil {
		return err
	}
	mutate(sess.Values)
	if err := sess.Save(c.Request(), c.Response()); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}
