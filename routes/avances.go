package routes

import (
	"database/sql"
	"net/http"
	"strconv"
	"time"
	"unicode/utf8"

	"practicantes-api/db"
	"practicantes-api/models"
	"practicantes-api/pkg"

	"github.com/gofiber/fiber/v2"
)

type avanceRequest struct {
	Descripcion string `json:"descripcion" form:"descripcion"`
	Fecha       string `json:"fecha" form:"fecha"`
}

type feedbackRequest struct {
	Feedback string `json:"feedback" form:"feedback"`
}

// GetAvances obtiene los avances ordenados del más reciente al más antiguo.
// Los responsables ven todos, el resto solo los suyos.
func GetAvances(c *fiber.Ctx) error {
	identity := c.Locals("identity").(*pkg.Identity)

	query := "SELECT id, practicante_id, descripcion, fecha, feedback FROM avances ORDER BY fecha DESC, id DESC"
	args := []interface{}{}
	if !identity.EsResponsable {
		query = "SELECT id, practicante_id, descripcion, fecha, feedback FROM avances WHERE practicante_id = ? ORDER BY fecha DESC, id DESC"
		args = append(args, identity.PracticanteID)
	}

	rows, err := db.DB.Query(query, args...)
	if err != nil {
		return c.Status(http.StatusInternalServerError).JSON(fiber.Map{
			"error": "Error al obtener los avances",
		})
	}
	defer rows.Close()

	avances, err := scanAvances(rows)
	if err != nil {
		return c.Status(http.StatusInternalServerError).JSON(fiber.Map{
			"error": "Error al obtener los avances",
		})
	}

	return c.JSON(avances)
}

func scanAvances(rows *sql.Rows) ([]models.Avance, error) {
	avances := []models.Avance{}
	for rows.Next() {
		var avance models.Avance
		var feedback sql.NullString
		err := rows.Scan(&avance.ID, &avance.PracticanteID, &avance.Descripcion, &avance.Fecha, &feedback)
		if err != nil {
			return nil, err
		}
		avance.Feedback = feedback.String
		avances = append(avances, avance)
	}
	return avances, rows.Err()
}

// NuevoAvanceForm entrega los datos del formulario de avance
func NuevoAvanceForm(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"fecha": time.Now().Format("2006-01-02"),
	})
}

// CreateAvance registra un avance a nombre del practicante de la sesión,
// nunca del id que venga en la petición. Los responsables no tienen
// practicante asociado, así que no pueden registrar avances.
func CreateAvance(c *fiber.Ctx) error {
	identity := c.Locals("identity").(*pkg.Identity)

	sess, err := pkg.Store.Get(c)
	if err != nil {
		return c.Status(http.StatusInternalServerError).JSON(fiber.Map{
			"error": "Error al recuperar la sesión",
		})
	}

	if identity.EsResponsable {
		return pkg.FlashAndRedirect(c, sess, "error", "Los responsables no registran avances", "/avances", fiber.StatusSeeOther)
	}

	var request avanceRequest
	if err := c.BodyParser(&request); err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{
			"error": "Error al analizar el cuerpo de la solicitud",
		})
	}

	if request.Descripcion == "" {
		return pkg.FlashAndRedirect(c, sess, "error", "Por favor complete todos los campos", "/avances/nuevo", fiber.StatusSeeOther)
	}
	if utf8.RuneCountInString(request.Descripcion) > models.DescripcionMaxLen {
		return pkg.FlashAndRedirect(c, sess, "error", "La descripción es demasiado larga", "/avances/nuevo", fiber.StatusSeeOther)
	}
	if request.Fecha == "" {
		request.Fecha = time.Now().Format("2006-01-02")
	}

	tx, err := db.DB.Begin()
	if err != nil {
		return c.Status(http.StatusInternalServerError).JSON(fiber.Map{
			"error": "Error al registrar el avance",
		})
	}
	_, err = tx.Exec("INSERT INTO avances (practicante_id, descripcion, fecha) VALUES (?, ?, ?)",
		identity.PracticanteID, request.Descripcion, request.Fecha)
	if err != nil {
		tx.Rollback()
		return pkg.FlashAndRedirect(c, sess, "error", "Error al registrar el avance", "/avances/nuevo", fiber.StatusSeeOther)
	}
	if err := tx.Commit(); err != nil {
		return pkg.FlashAndRedirect(c, sess, "error", "Error al registrar el avance", "/avances/nuevo", fiber.StatusSeeOther)
	}

	return pkg.FlashAndRedirect(c, sess, "success", "Avance registrado exitosamente!", "/avances", fiber.StatusSeeOther)
}

// AddFeedback escribe el feedback de un responsable sobre un avance. Si ya
// había feedback se machaca, solo queda el último.
func AddFeedback(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(http.StatusNotFound).JSON(fiber.Map{
			"error": "Avance no encontrado",
		})
	}

	var request feedbackRequest
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

	if request.Feedback == "" {
		return pkg.FlashAndRedirect(c, sess, "error", "Por favor complete todos los campos", "/avances", fiber.StatusSeeOther)
	}

	tx, err := db.DB.Begin()
	if err != nil {
		return c.Status(http.StatusInternalServerError).JSON(fiber.Map{
			"error": "Error al guardar el feedback",
		})
	}
	result, err := tx.Exec("UPDATE avances SET feedback = ? WHERE id = ?", request.Feedback, id)
	if err != nil {
		tx.Rollback()
		return pkg.FlashAndRedirect(c, sess, "error", "Error al guardar el feedback", "/avances", fiber.StatusSeeOther)
	}
	// La comprobación de existencia va dentro de la transacción: si el
	// avance desapareció entre medias aquí salen 0 filas
	affected, err := result.RowsAffected()
	if err != nil {
		tx.Rollback()
		return c.Status(http.StatusInternalServerError).JSON(fiber.Map{
			"error": "Error al guardar el feedback",
		})
	}
	if affected == 0 {
		tx.Rollback()
		return c.Status(http.StatusNotFound).JSON(fiber.Map{
			"error": "Avance no encontrado",
		})
	}
	if err := tx.Commit(); err != nil {
		return pkg.FlashAndRedirect(c, sess, "error", "Error al guardar el feedback", "/avances", fiber.StatusSeeOther)
	}

	return pkg.FlashAndRedirect(c, sess, "success", "Feedback guardado correctamente", "/avances", fiber.StatusSeeOther)
}
