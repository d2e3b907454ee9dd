package routes

import (
	"net/http"

	"practicantes-api/db"
	"practicantes-api/models"

	"github.com/gofiber/fiber/v2"
)

// GetReportes devuelve el recuento de practicantes por estado y los cinco
// avances más recientes. Solo lectura.
func GetReportes(c *fiber.Ctx) error {
	counts := map[string]int{}
	rows, err := db.DB.Query("SELECT estado, COUNT(*) FROM practicantes GROUP BY estado")
	if err != nil {
		return c.Status(http.StatusInternalServerError).JSON(fiber.Map{
			"error": "Error al obtener el reporte",
		})
	}
	defer rows.Close()

	for rows.Next() {
		var estado string
		var count int
		if err := rows.Scan(&estado, &count); err != nil {
			return c.Status(http.StatusInternalServerError).JSON(fiber.Map{
				"error": "Error al obtener el reporte",
			})
		}
		counts[estado] = count
	}
	if err := rows.Err(); err != nil {
		return c.Status(http.StatusInternalServerError).JSON(fiber.Map{
			"error": "Error al obtener el reporte",
		})
	}

	recientes, err := db.DB.Query("SELECT id, practicante_id, descripcion, fecha, feedback FROM avances ORDER BY fecha DESC, id DESC LIMIT 5")
	if err != nil {
		return c.Status(http.StatusInternalServerError).JSON(fiber.Map{
			"error": "Error al obtener el reporte",
		})
	}
	defer recientes.Close()

	avances, err := scanAvances(recientes)
	if err != nil {
		return c.Status(http.StatusInternalServerError).JSON(fiber.Map{
			"error": "Error al obtener el reporte",
		})
	}

	return c.JSON(fiber.Map{
		"activos":     counts[models.EstadoActivo],
		"finalizados": counts[models.EstadoFinalizado],
		"en_espera":   counts[models.EstadoEnEspera],
		"recientes":   avances,
	})
}
