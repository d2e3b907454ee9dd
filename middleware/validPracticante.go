package middleware

import (
	"practicantes-api/db"
	"practicantes-api/pkg"

	"github.com/gofiber/fiber/v2"
)

// Middleware para comprobar que el practicante de la sesión sigue existiendo
// (puede que un responsable haya borrado el registro mientras la sesión seguía viva)
func ValidPracticante(c *fiber.Ctx) error {
	identity := c.Locals("identity").(*pkg.Identity)

	// Los responsables no están ligados a ningún registro
	if identity.EsResponsable {
		return c.Next()
	}

	practicanteExists := false
	err := db.DB.QueryRow("SELECT COUNT(*) FROM practicantes WHERE id = ?", identity.PracticanteID).Scan(&practicanteExists)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Error al comprobar si el practicante existe",
		})
	}

	if !practicanteExists {
		sess, err := pkg.Store.Get(c)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Error al recuperar la sesión",
			})
		}
		if err := sess.Destroy(); err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Error al cerrar la sesión",
			})
		}
		return c.Redirect("/", fiber.StatusFound)
	}

	return c.Next()
}
