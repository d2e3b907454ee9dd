package routes

import (
	"database/sql"
	"errors"
	"net/http"
	"time"

	"practicantes-api/db"
	"practicantes-api/models"
	"practicantes-api/pkg"

	"github.com/gofiber/fiber/v2"
)

type loginRequest struct {
	Usuario    string `json:"usuario" form:"usuario"`
	Contrasena string `json:"contrasena" form:"contrasena"`
}

type registroRequest struct {
	Nombre     string `json:"nombre" form:"nombre"`
	Usuario    string `json:"usuario" form:"usuario"`
	Contrasena string `json:"contrasena" form:"contrasena"`
}

// LoginForm entrega los datos de la página de login, incluidos los avisos
// pendientes de mutaciones anteriores
func LoginForm(c *fiber.Ctx) error {
	sess, err := pkg.Store.Get(c)
	if err != nil {
		return c.Status(http.StatusInternalServerError).JSON(fiber.Map{
			"error": "Error al recuperar la sesión",
		})
	}

	flashes := pkg.DrainFlashes(sess)
	if err := sess.Save(); err != nil {
		return c.Status(http.StatusInternalServerError).JSON(fiber.Map{
			"error": "Error al guardar la sesión",
		})
	}

	return c.JSON(fiber.Map{
		"flashes": flashes,
	})
}

// Login inicia sesión comprobando usuario y contraseña contra la base de datos
func Login(c *fiber.Ctx) error {
	var request loginRequest
	if err := c.BodyParser(&request); err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{
			"error": "Error al analizar el cuerpo de la solicitud",
		})
	}

	sess, err := pkg.Store.Get(c)
	if err != nil {
		return c.Status(http.StatusInternalServerError).JSON(fiber.Map{
			"error": "Error al recuperar la sesión",
		})
	}

	if request.Usuario == "" || request.Contrasena == "" {
		return pkg.FlashAndRedirect(c, sess, "error", "Por favor complete todos los campos", "/", fiber.StatusSeeOther)
	}

	// Recuperar el practicante de la base de datos
	var practicante models.Practicante
	err = db.DB.QueryRow("SELECT id, usuario, contrasena, es_responsable FROM practicantes WHERE usuario = ?", request.Usuario).
		Scan(&practicante.ID, &practicante.Usuario, &practicante.Contrasena, &practicante.EsResponsable)
	if errors.Is(err, sql.ErrNoRows) {
		return pkg.FlashAndRedirect(c, sess, "error", "Usuario o contraseña incorrectos", "/", fiber.StatusSeeOther)
	}
	if err != nil {
		return c.Status(http.StatusInternalServerError).JSON(fiber.Map{
			"error": "Error al obtener el practicante",
		})
	}

	// Verificar la contraseña
	if !pkg.ComparePassword(practicante.Contrasena, request.Contrasena) {
		return pkg.FlashAndRedirect(c, sess, "error", "Usuario o contraseña incorrectos", "/", fiber.StatusSeeOther)
	}

	pkg.SaveIdentity(sess, practicante.Usuario, practicante.EsResponsable, practicante.ID)
	return pkg.FlashAndRedirect(c, sess, "success", "¡Bienvenido!", "/practicantes", fiber.StatusSeeOther)
}

// RegistroForm entrega los datos del formulario de auto-registro
func RegistroForm(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"estados": []string{models.EstadoActivo, models.EstadoFinalizado, models.EstadoEnEspera},
	})
}

// Registro da de alta un practicante por auto-registro. El registro público
// nunca puede crear responsables ni elegir programa, estado o responsable.
func Registro(c *fiber.Ctx) error {
	var request registroRequest
	if err := c.BodyParser(&request); err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{
			"error": "Error al analizar el cuerpo de la solicitud",
		})
	}

	sess, err := pkg.Store.Get(c)
	if err != nil {
		return c.Status(http.StatusInternalServerError).JSON(fiber.Map{
			"error": "Error al recuperar la sesión",
		})
	}

	if request.Nombre == "" || request.Usuario == "" || request.Contrasena == "" {
		return pkg.FlashAndRedirect(c, sess, "error", "Por favor complete todos los campos", "/registro", fiber.StatusSeeOther)
	}

	// Comprobar si el usuario ya existe
	usuarioExists := false
	err = db.DB.QueryRow("SELECT COUNT(*) FROM practicantes WHERE usuario = ?", request.Usuario).Scan(&usuarioExists)
	if err != nil {
		return c.Status(http.StatusInternalServerError).JSON(fiber.Map{
			"error": "Error al comprobar si el usuario existe",
		})
	}
	if usuarioExists {
		return pkg.FlashAndRedirect(c, sess, "error", "El usuario ya existe", "/registro", fiber.StatusSeeOther)
	}

	contrasena, err := pkg.GeneratePassword(request.Contrasena)
	if err != nil {
		return pkg.FlashAndRedirect(c, sess, "error", "La contraseña no es válida", "/registro", fiber.StatusSeeOther)
	}

	tx, err := db.DB.Begin()
	if err != nil {
		return c.Status(http.StatusInternalServerError).JSON(fiber.Map{
			"error": "Error al registrar el practicante",
		})
	}
	_, err = tx.Exec(`
	INSERT INTO practicantes (nombre, programa, fecha_ingreso, estado, responsable, usuario, contrasena, es_responsable)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		request.Nombre, "Sin asignar", time.Now().Format("2006-01-02"), models.EstadoEnEspera, "Sin asignar",
		request.Usuario, contrasena, false)
	if err != nil {
		tx.Rollback()
		return pkg.FlashAndRedirect(c, sess, "error", "Error al registrar el practicante", "/registro", fiber.StatusSeeOther)
	}
	if err := tx.Commit(); err != nil {
		return pkg.FlashAndRedirect(c, sess, "error", "Error al registrar el practicante", "/registro", fiber.StatusSeeOther)
	}

	return pkg.FlashAndRedirect(c, sess, "success", "Practicante registrado exitosamente!", "/", fiber.StatusSeeOther)
}

// Logout cierra la sesión incondicionalmente, da igual si había alguien dentro
func Logout(c *fiber.Ctx) error {
	sess, err := pkg.Store.Get(c)
	if err != nil {
		return c.Status(http.StatusInternalServerError).JSON(fiber.Map{
			"error": "Error al recuperar la sesión",
		})
	}
	if err := sess.Destroy(); err != nil {
		return c.Status(http.StatusInternalServerError).JSON(fiber.Map{
			"error": "Error al cerrar la sesión",
		})
	}

	// El aviso de despedida viaja en una sesión nueva, la anterior ya no existe
	fresh, err := pkg.Store.Get(c)
	if err != nil {
		return c.Redirect("/", fiber.StatusFound)
	}
	return pkg.FlashAndRedirect(c, fresh, "info", "Has cerrado sesión correctamente", "/", fiber.StatusFound)
}
