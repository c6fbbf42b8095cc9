package cart

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/gorilla/sessions"
	"github.com/labstack/echo-contrib/session"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"

	"github.com/Skotchmaster/pos_shop/internal/models"
)

func newTestEcho(t *testing.T, store sessions.Store) *echo.Echo {
	t.Helper()
	h := &CartHandler{}
	e := echo.New()
	e.Use(session.Middleware(store))
	e.GET("/cart", h.GetCart)
	e.POST("/update_cart", h.UpdateCart)
	return e
}

func doJSONRequest(e *echo.Echo, method, path string, body interface{}, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	var data []byte
	if body != nil {
		data, _ = json.Marshal(body)
	}
	req := httptest.NewRequest(method, path, bytes.NewReader(data))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	req.Header.Set(echo.HeaderAccept, echo.MIMEApplicationJSON)
	for _, ck := range cookies {
		req.AddCookie(ck)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func sessionCookie(t *testing.T, rec *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	for _, ck := range rec.Result().Cookies() {
		if ck.Name == SessionName {
			return ck
		}
	}
	t.Fatalf("no %s cookie in response", SessionName)
	return nil
}

func TestUpdateThenGetCart(t *testing.T) {
	e := newTestEcho(t, sessions.NewCookieStore([]byte("test-secret")))

	rec := doJSONRequest(e, http.MethodPost, "/update_cart", map[string]interface{}{
		"cart":  []map[string]interface{}{{"product": "Tea", "price": 3, "quantity": 2, "totalPrice": 6}},
		"total": 6,
	})
	require.Equal(t, http.StatusOK, rec.Code)
	ck := sessionCookie(t, rec)

	rec = doJSONRequest(e, http.MethodGet, "/cart", nil, ck)
	require.Equal(t, http.StatusOK, rec.Code)

	var crt models.Cart
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &crt))
	require.Len(t, crt.Items, 1)
	require.Equal(t, "Tea", crt.Items[0].Product)
	require.Equal(t, "6", crt.Total.String())
}

func TestUpdateCart_RejectsBadLines(t *testing.T) {
	e := newTestEcho(t, sessions.NewCookieStore([]byte("test-secret")))

	rec := doJSONRequest(e, http.MethodPost, "/update_cart", map[string]interface{}{
		"cart": []map[string]interface{}{{"product": "Tea", "quantity": 0}},
	})
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUndecodableSessionCookieStartsFresh(t *testing.T) {
	stale := &http.Cookie{Name: SessionName, Value: "signed-with-an-old-secret"}

	stores := map[string]sessions.Store{
		"cookie store":     sessions.NewCookieStore([]byte("test-secret")),
		"filesystem store": sessions.NewFilesystemStore(t.TempDir(), []byte("test-secret")),
	}
	for name, store := range stores {
		t.Run(name, func(t *testing.T) {
			e := newTestEcho(t, store)

			rec := doJSONRequest(e, http.MethodGet, "/cart", nil, stale)
			require.Equal(t, http.StatusOK, rec.Code)
			require.JSONEq(t, `{"cart":[],"total":"0"}`, rec.Body.String())
			fresh := sessionCookie(t, rec)
			require.NotEqual(t, stale.Value, fresh.Value)

			rec = doJSONRequest(e, http.MethodPost, "/update_cart", map[string]interface{}{
				"cart":  []map[string]interface{}{{"product": "Tea", "price": 3, "quantity": 1, "totalPrice": 3}},
				"total": 3,
			}, stale)
			require.Equal(t, http.StatusOK, rec.Code)
		})
	}
}

func TestMissingSessionFileStartsFresh(t *testing.T) {
	dir := t.TempDir()
	e := newTestEcho(t, sessions.NewFilesystemStore(dir, []byte("test-secret")))

	rec := doJSONRequest(e, http.MethodPost, "/update_cart", map[string]interface{}{
		"cart":  []map[string]interface{}{{"product": "Tea", "price": 3, "quantity": 1, "totalPrice": 3}},
		"total": 3,
	})
	require.Equal(t, http.StatusOK, rec.Code)
	ck := sessionCookie(t, rec)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	for _, entry := range entries {
		require.NoError(t, os.Remove(filepath.Join(dir, entry.Name())))
	}

	rec = doJSONRequest(e, http.MethodGet, "/cart", nil, ck)
	require.Equal(t, http.StatusOK, rec.Code)
	require.JSONEq(t, `{"cart":[],"total":"0"}`, rec.Body.String())
}
