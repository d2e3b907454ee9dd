package routes

import (
	"net/http"
	"strconv"
	"time"

	"practicantes-api/db"
	"practicantes-api/models"
	"practicantes-api/pkg"

	"github.com/gofiber/fiber/v2"
)

type practicanteRequest struct {
	Nombre        string `json:"nombre" form:"nombre"`
	Programa      string `json:"programa" form:"programa"`
	FechaIngreso  string `json:"fecha_ingreso" form:"fecha_ingreso"`
	Estado        string `json:"estado" form:"estado"`
	Responsable   string `json:"responsable" form:"responsable"`
	Usuario       string `json:"usuario" form:"usuario"`
	Contrasena    string `json:"contrasena" form:"contrasena"`
	EsResponsable bool   `json:"es_responsable" form:"es_responsable"`
}

// GetPracticantes obtiene la lista de practicantes. Los responsables ven
// todos los registros, el resto ve únicamente el suyo.
func GetPracticantes(c *fiber.Ctx) error {
	identity := c.Locals("identity").(*pkg.Identity)

	query := "SELECT id, nombre, programa, fecha_ingreso, estado, responsable, usuario, es_responsable FROM practicantes ORDER BY id"
	args := []interface{}{}
	if !identity.EsResponsable {
		query = "SELECT id, nombre, programa, fecha_ingreso, estado, responsable, usuario, es_responsable FROM practicantes WHERE id = ?"
		args = append(args, identity.PracticanteID)
	}

	rows, err := db.DB.Query(query, args...)
	if err != nil {
		return c.Status(http.StatusInternalServerError).JSON(fiber.Map{
			"error": "Error al obtener los practicantes",
		})
	}
	defer rows.Close()

	practicantes := []models.Practicante{}
	for rows.Next() {
		var practicante models.Practicante
		err := rows.Scan(&practicante.ID, &practicante.Nombre, &practicante.Programa, &practicante.FechaIngreso,
			&practicante.Estado, &practicante.Responsable, &practicante.Usuario, &practicante.EsResponsable)
		if err != nil {
			return c.Status(http.StatusInternalServerError).JSON(fiber.Map{
				"error": "Error al obtener los practicantes",
			})
		}
		practicantes = append(practicantes, practicante)
	}

	return c.JSON(practicantes)
}

// NuevoPracticanteForm entrega los datos del formulario de alta
func NuevoPracticanteForm(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"estados": []string{models.EstadoActivo, models.EstadoFinalizado, models.EstadoEnEspera},
	})
}

// CreatePracticante da de alta un practicante desde la cuenta de un
// responsable, aquí sí se aceptan todos los campos tal cual, incluido el rol
func CreatePracticante(c *fiber.Ctx) error {
	var request practicanteRequest
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
		return pkg.FlashAndRedirect(c, sess, "error", "Por favor complete todos los campos", "/practicantes/nuevo", fiber.StatusSeeOther)
	}
	if request.FechaIngreso == "" {
		request.FechaIngreso = time.Now().Format("2006-01-02")
	}
	if request.Estado == "" {
		request.Estado = models.EstadoActivo
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
		return pkg.FlashAndRedirect(c, sess, "error", "El usuario ya existe", "/practicantes/nuevo", fiber.StatusSeeOther)
	}

	contrasena, err := pkg.GeneratePassword(request.Contrasena)
	if err != nil {
		return pkg.FlashAndRedirect(c, sess, "error", "La contraseña no es válida", "/practicantes/nuevo", fiber.StatusSeeOther)
	}

	tx, err := db.DB.Begin()
	if err != nil {
		return c.Status(http.StatusInternalServerError).JSON(fiber.Map{
			"error": "Error al crear el practicante",
		})
	}
	_, err = tx.Exec(`
	INSERT INTO practicantes (nombre, programa, fecha_ingreso, estado, responsable, usuario, contrasena, es_responsable)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		request.Nombre, request.Programa, request.FechaIngreso, request.Estado, request.Responsable,
		request.Usuario, contrasena, request.EsResponsable)
	if err != nil {
		tx.Rollback()
		return pkg.FlashAndRedirect(c, sess, "error", "Error al crear el practicante", "/practicantes/nuevo", fiber.StatusSeeOther)
	}
	if err := tx.Commit(); err != nil {
		return pkg.FlashAndRedirect(c, sess, "error", "Error al crear el practicante", "/practicantes/nuevo", fiber.StatusSeeOther)
	}

	return pkg.FlashAndRedirect(c, sess, "success", "Practicante registrado exitosamente!", "/practicantes", fiber.StatusSeeOther)
}

// EditarPracticanteForm obtiene el registro que se va a editar
func EditarPracticanteForm(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(http.StatusNotFound).JSON(fiber.Map{
			"error": "Practicante no encontrado",
		})
	}

	var practicante models.Practicante
	err = db.DB.QueryRow("SELECT id, nombre, programa, fecha_ingreso, estado, responsable, usuario, es_responsable FROM practicantes WHERE id = ?", id).
		Scan(&practicante.ID, &practicante.Nombre, &practicante.Programa, &practicante.FechaIngreso,
			&practicante.Estado, &practicante.Responsable, &practicante.Usuario, &practicante.EsResponsable)
	if err != nil {
		return c.Status(http.StatusNotFound).JSON(fiber.Map{
			"error": "Practicante no encontrado",
		})
	}

	return c.JSON(practicante)
}

// UpdatePracticante sobreescribe los campos editables de un practicante.
// El usuario y la contraseña no se tocan desde esta ruta.
func UpdatePracticante(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(http.StatusNotFound).JSON(fiber.Map{
			"error": "Practicante no encontrado",
		})
	}

	var request practicanteRequest
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

	tx, err := db.DB.Begin()
	if err != nil {
		return c.Status(http.StatusInternalServerError).JSON(fiber.Map{
			"error": "Error al actualizar el practicante",
		})
	}
	result, err := tx.Exec(`
	UPDATE practicantes SET nombre = ?, programa = ?, fecha_ingreso = ?, estado = ?, responsable = ?, es_responsable = ?
	WHERE id = ?`,
		request.Nombre, request.Programa, request.FechaIngreso, request.Estado, request.Responsable,
		request.EsResponsable, id)
	if err != nil {
		tx.Rollback()
		return pkg.FlashAndRedirect(c, sess, "error", "Error al actualizar el practicante", "/practicantes", fiber.StatusSeeOther)
	}
	// La comprobación de existencia va dentro de la transacción: si el
	// registro desapareció entre medias aquí salen 0 filas
	affected, err := result.RowsAffected()
	if err != nil {
		tx.Rollback()
		return c.Status(http.StatusInternalServerError).JSON(fiber.Map{
			"error": "Error al actualizar el practicante",
		})
	}
	if affected == 0 {
		tx.Rollback()
		return c.Status(http.StatusNotFound).JSON(fiber.Map{
			"error": "Practicante no encontrado",
		})
	}
	if err := tx.Commit(); err != nil {
		return pkg.FlashAndRedirect(c, sess, "error", "Error al actualizar el practicante", "/practicantes", fiber.StatusSeeOther)
	}

	return pkg.FlashAndRedirect(c, sess, "success", "Practicante actualizado correctamente", "/practicantes", fiber.StatusSeeOther)
}

// DeletePracticante elimina un practicante. Sus avances se quedan como
// están, no hay borrado en cascada.
func DeletePracticante(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(http.StatusNotFound).JSON(fiber.Map{
			"error": "Practicante no encontrado",
		})
	}

	sess, err := pkg.Store.Get(c)
	if err != nil {
		return c.Status(http.StatusInternalServerError).JSON(fiber.Map{
			"error": "Error al recuperar la sesión",
		})
	}

	tx, err := db.DB.Begin()
	if err != nil {
		return c.Status(http.StatusInternalServerError).JSON(fiber.Map{
			"error": "Error al eliminar el practicante",
		})
	}
	result, err := tx.Exec("DELETE FROM practicantes WHERE id = ?", id)
	if err != nil {
		tx.Rollback()
		return pkg.FlashAndRedirect(c, sess, "error", "Error al eliminar el practicante", "/practicantes", fiber.StatusSeeOther)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		tx.Rollback()
		return c.Status(http.StatusInternalServerError).JSON(fiber.Map{
			"error": "Error al eliminar el practicante",
		})
	}
	if affected == 0 {
		tx.Rollback()
		return c.Status(http.StatusNotFound).JSON(fiber.Map{
			"error": "Practicante no encontrado",
		})
	}
	if err := tx.Commit(); err != nil {
		return pkg.FlashAndRedirect(c, sess, "error", "Error al eliminar el practicante", "/practicantes", fiber.StatusSeeOther)
	}

	return pkg.FlashAndRedirect(c, sess, "success", "Practicante eliminado correctamente", "/practicantes", fiber.StatusSeeOther)
}
