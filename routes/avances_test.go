package routes

import (
	"io"
	"net/url"
	"strings"
	"testing"

	"practicantes-api/models"

	"github.com/gofiber/fiber/v2"
)

func TestVisibilidadDeAvances(t *testing.T) {
	app := newTestApp(t)
	adminCookie := login(t, app, "admin", "admin")

	createPracticante(t, app, adminCookie, url.Values{
		"nombre":     {"Bob López"},
		"usuario":    {"bob"},
		"contrasena": {"b123"},
	})
	createPracticante(t, app, adminCookie, url.Values{
		"nombre":     {"Dave Ruiz"},
		"usuario":    {"dave"},
		"contrasena": {"d123"},
	})

	bobCookie := login(t, app, "bob", "b123")
	resp := doPostForm(t, app, bobCookie, "/avances/nuevo", url.Values{
		"descripcion": {"semana 1"},
	})
	if resp.StatusCode != fiber.StatusSeeOther {
		t.Fatalf("alta de avance: status %d", resp.StatusCode)
	}
	if loc := resp.Header.Get("Location"); loc != "/avances" {
		t.Fatalf("alta de avance: redirige a %s", loc)
	}

	// Bob ve su avance
	avances := listAvances(t, app, bobCookie)
	if len(avances) != 1 || avances[0].Descripcion != "semana 1" {
		t.Fatalf("bob debería ver su avance, ve %v", avances)
	}

	// Dave no ve nada
	daveCookie := login(t, app, "dave", "d123")
	if avances := listAvances(t, app, daveCookie); len(avances) != 0 {
		t.Errorf("dave no debería ver avances ajenos, ve %d", len(avances))
	}

	// El responsable lo ve todo
	avances = listAvances(t, app, adminCookie)
	if len(avances) != 1 || avances[0].Descripcion != "semana 1" {
		t.Errorf("el responsable debería ver el avance de bob, ve %v", avances)
	}
}

func TestAvanceSiempreDelPracticanteDeLaSesion(t *testing.T) {
	app := newTestApp(t)
	adminCookie := login(t, app, "admin", "admin")

	createPracticante(t, app, adminCookie, url.Values{
		"nombre":     {"Bob López"},
		"usuario":    {"bob"},
		"contrasena": {"b123"},
	})

	var bobID int
	for _, practicante := range listPracticantes(t, app, adminCookie) {
		if practicante.Usuario == "bob" {
			bobID = practicante.ID
		}
	}

	// El practicante_id del formulario se ignora por completo
	bobCookie := login(t, app, "bob", "b123")
	resp := doPostForm(t, app, bobCookie, "/avances/nuevo", url.Values{
		"descripcion":    {"semana 1"},
		"practicante_id": {"999"},
	})
	if resp.StatusCode != fiber.StatusSeeOther {
		t.Fatalf("alta de avance: status %d", resp.StatusCode)
	}

	avances := listAvances(t, app, adminCookie)
	if len(avances) != 1 {
		t.Fatalf("debería haber 1 avance, hay %d", len(avances))
	}
	if avances[0].PracticanteID != bobID {
		t.Errorf("el avance se atribuyó a %d en vez de a bob (%d)", avances[0].PracticanteID, bobID)
	}
}

func TestResponsableNoRegistraAvances(t *testing.T) {
	app := newTestApp(t)
	adminCookie := login(t, app, "admin", "admin")

	resp := doPostForm(t, app, adminCookie, "/avances/nuevo", url.Values{
		"descripcion": {"no debería entrar"},
	})
	if resp.StatusCode != fiber.StatusSeeOther {
		t.Fatalf("status %d", resp.StatusCode)
	}
	if loc := resp.Header.Get("Location"); loc != "/avances" {
		t.Fatalf("redirige a %s", loc)
	}

	if avances := listAvances(t, app, adminCookie); len(avances) != 0 {
		t.Errorf("no debería haberse escrito ningún avance, hay %d", len(avances))
	}
}

func TestDescripcionObligatoriaYAcotada(t *testing.T) {
	app := newTestApp(t)
	adminCookie := login(t, app, "admin", "admin")

	createPracticante(t, app, adminCookie, url.Values{
		"nombre":     {"Bob López"},
		"usuario":    {"bob"},
		"contrasena": {"b123"},
	})
	bobCookie := login(t, app, "bob", "b123")

	resp := doPostForm(t, app, bobCookie, "/avances/nuevo", url.Values{})
	if loc := resp.Header.Get("Location"); loc != "/avances/nuevo" {
		t.Errorf("descripción vacía: redirige a %s", loc)
	}

	resp = doPostForm(t, app, bobCookie, "/avances/nuevo", url.Values{
		"descripcion": {strings.Repeat("a", models.DescripcionMaxLen+1)},
	})
	if loc := resp.Header.Get("Location"); loc != "/avances/nuevo" {
		t.Errorf("descripción demasiado larga: redirige a %s", loc)
	}

	if avances := listAvances(t, app, bobCookie); len(avances) != 0 {
		t.Errorf("ningún avance inválido debería haberse escrito, hay %d", len(avances))
	}
}

func TestFeedbackSoloQuedaElUltimo(t *testing.T) {
	app := newTestApp(t)
	adminCookie := login(t, app, "admin", "admin")

	createPracticante(t, app, adminCookie, url.Values{
		"nombre":     {"Bob López"},
		"usuario":    {"bob"},
		"contrasena": {"b123"},
	})
	bobCookie := login(t, app, "bob", "b123")
	doPostForm(t, app, bobCookie, "/avances/nuevo", url.Values{
		"descripcion": {"semana 1"},
	})

	avances := listAvances(t, app, adminCookie)
	if len(avances) != 1 {
		t.Fatalf("debería haber 1 avance, hay %d", len(avances))
	}
	if avances[0].Feedback != "" {
		t.Fatalf("el feedback debería empezar vacío: %q", avances[0].Feedback)
	}
	id := itoa(avances[0].ID)

	resp := doPostForm(t, app, adminCookie, "/avances/feedback/"+id, url.Values{
		"feedback": {"buen comienzo"},
	})
	if resp.StatusCode != fiber.StatusSeeOther {
		t.Fatalf("primer feedback: status %d", resp.StatusCode)
	}
	resp = doPostForm(t, app, adminCookie, "/avances/feedback/"+id, url.Values{
		"feedback": {"revisar la entrega"},
	})
	if resp.StatusCode != fiber.StatusSeeOther {
		t.Fatalf("segundo feedback: status %d", resp.StatusCode)
	}

	avances = listAvances(t, app, adminCookie)
	if avances[0].Feedback != "revisar la entrega" {
		t.Errorf("solo debería quedar el último feedback, hay %q", avances[0].Feedback)
	}
}

func TestFeedbackNoEncontrado(t *testing.T) {
	app := newTestApp(t)
	adminCookie := login(t, app, "admin", "admin")

	resp := doPostForm(t, app, adminCookie, "/avances/feedback/999", url.Values{
		"feedback": {"nadie lo leerá"},
	})
	if resp.StatusCode != fiber.StatusNotFound {
		t.Errorf("status %d", resp.StatusCode)
	}
}

func TestFeedbackSoloResponsables(t *testing.T) {
	app := newTestApp(t)
	adminCookie := login(t, app, "admin", "admin")

	createPracticante(t, app, adminCookie, url.Values{
		"nombre":     {"Bob López"},
		"usuario":    {"bob"},
		"contrasena": {"b123"},
	})
	bobCookie := login(t, app, "bob", "b123")
	doPostForm(t, app, bobCookie, "/avances/nuevo", url.Values{
		"descripcion": {"semana 1"},
	})

	avances := listAvances(t, app, bobCookie)
	resp := doPostForm(t, app, bobCookie, "/avances/feedback/"+itoa(avances[0].ID), url.Values{
		"feedback": {"autoelogio"},
	})
	if resp.StatusCode != fiber.StatusFound {
		t.Fatalf("status %d", resp.StatusCode)
	}
	if loc := resp.Header.Get("Location"); loc != "/practicantes" {
		t.Errorf("redirige a %s", loc)
	}

	if avances := listAvances(t, app, bobCookie); avances[0].Feedback != "" {
		t.Errorf("el feedback no debería haberse escrito: %q", avances[0].Feedback)
	}
}

func TestListaVaciaComoArray(t *testing.T) {
	app := newTestApp(t)
	adminCookie := login(t, app, "admin", "admin")

	createPracticante(t, app, adminCookie, url.Values{
		"nombre":     {"Bob López"},
		"usuario":    {"bob"},
		"contrasena": {"b123"},
	})
	bobCookie := login(t, app, "bob", "b123")

	// Sin avances la lista sigue siendo un array, nunca null
	resp := doGet(t, app, bobCookie, "/avances")
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("status %d", resp.StatusCode)
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("error leyendo la respuesta: %v", err)
	}
	if strings.TrimSpace(string(body)) != "[]" {
		t.Errorf("la lista vacía debería ser [], es %s", body)
	}
}

func TestAvancesOrdenadosPorFecha(t *testing.T) {
	app := newTestApp(t)
	adminCookie := login(t, app, "admin", "admin")

	createPracticante(t, app, adminCookie, url.Values{
		"nombre":     {"Bob López"},
		"usuario":    {"bob"},
		"contrasena": {"b123"},
	})
	bobCookie := login(t, app, "bob", "b123")

	fechas := []string{"2025-03-10", "2025-03-24", "2025-03-17"}
	for i, fecha := range fechas {
		resp := doPostForm(t, app, bobCookie, "/avances/nuevo", url.Values{
			"descripcion": {"avance " + itoa(i)},
			"fecha":       {fecha},
		})
		if resp.StatusCode != fiber.StatusSeeOther {
			t.Fatalf("alta de avance %d: status %d", i, resp.StatusCode)
		}
	}

	avances := listAvances(t, app, bobCookie)
	if len(avances) != 3 {
		t.Fatalf("debería haber 3 avances, hay %d", len(avances))
	}
	want := []string{"2025-03-24", "2025-03-17", "2025-03-10"}
	for i, fecha := range want {
		if avances[i].Fecha != fecha {
			t.Errorf("posición %d: fecha %s, se esperaba %s", i, avances[i].Fecha, fecha)
		}
	}
}
