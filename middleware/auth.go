package middleware

import (
	"practicantes-api/pkg"

	"github.com/gofiber/fiber/v2"
)

// RequireLogin corta la petición si no hay sesión iniciada y deja la
// identidad en el contexto para el resto de la cadena
func RequireLogin(c *fiber.Ctx) error {
	sess, err := pkg.Store.Get(c)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Error al recuperar la sesión",
		})
	}

	identity := pkg.IdentityFromSession(sess)
	if identity == nil {
		return pkg.FlashAndRedirect(c, sess, "warning", "Debes iniciar sesión primero", "/", fiber.StatusFound)
	}

	c.Locals("identity", identity)
	return c.Next()
}
