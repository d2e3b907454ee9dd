package pkg

import (
	"encoding/gob"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/session"
	"github.com/google/uuid"
)

// Store guarda las sesiones en memoria del lado del servidor, la cookie
// solo transporta el identificador de la sesión
var Store *session.Store

func init() {
	gob.Register(FlashMessage{})
	gob.Register([]FlashMessage{})
}

func InitSessionStore() {
	Store = session.New(session.Config{
		KeyLookup:      "cookie:session_id",
		KeyGenerator:   uuid.NewString,
		CookieHTTPOnly: true,
	})
}

// Identity es lo que una sesión iniciada sabe del usuario actual. Los
// responsables no tienen PracticanteID asociado, su vista no está acotada.
type Identity struct {
	Usuario       string
	EsResponsable bool
	PracticanteID int
}

// IdentityFromSession devuelve la identidad de la sesión o nil si nadie ha
// iniciado sesión. La ausencia de "usuario" es la única señal de no autenticado.
func IdentityFromSession(sess *session.Session) *Identity {
	usuario, ok := sess.Get("usuario").(string)
	if !ok || usuario == "" {
		return nil
	}
	identity := &Identity{Usuario: usuario}
	identity.EsResponsable, _ = sess.Get("es_responsable").(bool)
	if id, ok := sess.Get("practicante_id").(int); ok {
		identity.PracticanteID = id
	}
	return identity
}

// SaveIdentity escribe la identidad en la sesión tras un login correcto.
// Solo los no responsables quedan ligados a su practicante_id.
func SaveIdentity(sess *session.Session, usuario string, esResponsable bool, practicanteID int) {
	sess.Set("usuario", usuario)
	sess.Set("es_responsable", esResponsable)
	if !esResponsable {
		sess.Set("practicante_id", practicanteID)
	}
}

type FlashMessage struct {
	Category string `json:"category"`
	Message  string `json:"message"`
}

// AddFlash encola un aviso para la próxima página que se muestre
func AddFlash(sess *session.Session, category string, message string) {
	flashes, _ := sess.Get("flashes").([]FlashMessage)
	flashes = append(flashes, FlashMessage{Category: category, Message: message})
	sess.Set("flashes", flashes)
}

// DrainFlashes devuelve los avisos pendientes y los borra de la sesión
func DrainFlashes(sess *session.Session) []FlashMessage {
	flashes, _ := sess.Get("flashes").([]FlashMessage)
	sess.Delete("flashes")
	return flashes
}

// FlashAndRedirect encola un aviso, guarda la sesión y redirige. Es el
// final común de todas las mutaciones y de los guards que cortan la petición.
func FlashAndRedirect(c *fiber.Ctx, sess *session.Session, category string, message string, location string, status int) error {
	AddFlash(sess, category, message)
	if err := sess.Save(); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Error al guardar la sesión",
		})
	}
	return c.Redirect(location, status)
}
