package routes

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"practicantes-api/db"
	"practicantes-api/models"
	"practicantes-api/pkg"

	"github.com/gofiber/fiber/v2"
)

// newTestApp levanta la aplicación completa sobre una base de datos temporal
func newTestApp(t *testing.T) *fiber.App {
	t.Helper()
	t.Setenv("DB_PATH", filepath.Join(t.TempDir(), "test.db"))
	db.InitDB()
	return Setup()
}

func itoa(n int) string {
	return strconv.Itoa(n)
}

func doGet(t *testing.T, app *fiber.App, cookie string, path string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if cookie != "" {
		req.Header.Set("Cookie", cookie)
	}
	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("GET %s: %v", path, err)
	}
	return resp
}

func doPostForm(t *testing.T, app *fiber.App, cookie string, path string, values url.Values) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	if cookie != "" {
		req.Header.Set("Cookie", cookie)
	}
	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("POST %s: %v", path, err)
	}
	return resp
}

// sessionCookie extrae la cookie de sesión de una respuesta para reenviarla
// en las siguientes peticiones
func sessionCookie(t *testing.T, resp *http.Response) string {
	t.Helper()
	for _, cookie := range resp.Cookies() {
		if cookie.Name == "session_id" {
			return cookie.Name + "=" + cookie.Value
		}
	}
	t.Fatal("la respuesta no trae cookie de sesión")
	return ""
}

func login(t *testing.T, app *fiber.App, usuario string, contrasena string) string {
	t.Helper()
	resp := doPostForm(t, app, "", "/", url.Values{
		"usuario":    {usuario},
		"contrasena": {contrasena},
	})
	if resp.StatusCode != fiber.StatusSeeOther {
		t.Fatalf("login de %s: status %d", usuario, resp.StatusCode)
	}
	if loc := resp.Header.Get("Location"); loc != "/practicantes" {
		t.Fatalf("login de %s: redirige a %s", usuario, loc)
	}
	return sessionCookie(t, resp)
}

// createPracticante da de alta un practicante desde la cuenta de un responsable
func createPracticante(t *testing.T, app *fiber.App, adminCookie string, values url.Values) {
	t.Helper()
	resp := doPostForm(t, app, adminCookie, "/practicantes/nuevo", values)
	if resp.StatusCode != fiber.StatusSeeOther {
		t.Fatalf("alta de practicante: status %d", resp.StatusCode)
	}
	if loc := resp.Header.Get("Location"); loc != "/practicantes" {
		t.Fatalf("alta de practicante: redirige a %s", loc)
	}
}

func decodeJSON(t *testing.T, resp *http.Response, out interface{}) {
	t.Helper()
	defer resp.Body.Close()
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		t.Fatalf("error decodificando la respuesta: %v", err)
	}
}

func listPracticantes(t *testing.T, app *fiber.App, cookie string) []models.Practicante {
	t.Helper()
	resp := doGet(t, app, cookie, "/practicantes")
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("lista de practicantes: status %d", resp.StatusCode)
	}
	var practicantes []models.Practicante
	decodeJSON(t, resp, &practicantes)
	return practicantes
}

func listAvances(t *testing.T, app *fiber.App, cookie string) []models.Avance {
	t.Helper()
	resp := doGet(t, app, cookie, "/avances")
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("lista de avances: status %d", resp.StatusCode)
	}
	var avances []models.Avance
	decodeJSON(t, resp, &avances)
	return avances
}

// drainFlashes recupera los avisos pendientes que entregaría la página de login
func drainFlashes(t *testing.T, app *fiber.App, cookie string) []pkg.FlashMessage {
	t.Helper()
	resp := doGet(t, app, cookie, "/")
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("página de login: status %d", resp.StatusCode)
	}
	var body struct {
		Flashes []pkg.FlashMessage `json:"flashes"`
	}
	decodeJSON(t, resp, &body)
	return body.Flashes
}

func hasFlash(flashes []pkg.FlashMessage, category string, message string) bool {
	for _, flash := range flashes {
		if flash.Category == category && flash.Message == message {
			return true
		}
	}
	return false
}
