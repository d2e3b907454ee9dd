package middleware

import (
	"practicantes-api/pkg"

	"github.com/gofiber/fiber/v2"
)

// IsResponsable solo puede evaluarse después de RequireLogin, que es quien
// deja la identidad en el contexto
func IsResponsable(c *fiber.Ctx) error {
	identity := c.Locals("identity").(*pkg.Identity)

	if !identity.EsResponsable {
		sess, err := pkg.Store.Get(c)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Error al recuperar la sesión",
			})
		}
		return pkg.FlashAndRedirect(c, sess, "error", "Solo los responsables pueden acceder a esta ruta", "/practicantes", fiber.StatusFound)
	}

	return c.Next()
}
