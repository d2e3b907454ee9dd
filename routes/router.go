package routes

import (
	"practicantes-api/middleware"
	"practicantes-api/pkg"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
)

// Setup construye la aplicación con todas las rutas y sus guards
func Setup() *fiber.App {
	app := fiber.New()
	app.Use(cors.New(cors.Config{
		AllowHeaders: "Origin,Content-Type,Accept,Content-Length,Accept-Language,Accept-Encoding,Connection,Access-Control-Allow-Origin,Authorization",
		AllowOrigins: "*",
		AllowMethods: "GET,POST,HEAD,PUT,DELETE,PATCH,OPTIONS",
	}))

	pkg.InitSessionStore()

	// Status
	app.Get("/status", GetStatus)

	/* -----------------------------------------------------------------
	|                                                                   |
	|                             AUTH                                  |
	|                                                                   |
	------------------------------------------------------------------- */
	app.Get("/", LoginForm)
	app.Post("/", Login)
	app.Get("/registro", RegistroForm)
	app.Post("/registro", Registro)
	app.Get("/logout", Logout)

	/* -----------------------------------------------------------------
	|                                                                   |
	|                          PRACTICANTES                             |
	|                                                                   |
	------------------------------------------------------------------- */
	practicantes := app.Group("/practicantes")
	practicantes.Use(middleware.RequireLogin)
	practicantes.Use(middleware.ValidPracticante)

	// Cualquier practicante con sesión
	practicantes.Get("/", GetPracticantes) // Lista acotada según el rol
	// RESPONSABLES
	practicantes.Get("/nuevo", middleware.IsResponsable, NuevoPracticanteForm)
	practicantes.Post("/nuevo", middleware.IsResponsable, CreatePracticante)
	practicantes.Get("/editar/:id", middleware.IsResponsable, EditarPracticanteForm)
	practicantes.Post("/editar/:id", middleware.IsResponsable, UpdatePracticante)
	practicantes.Get("/eliminar/:id", middleware.IsResponsable, DeletePracticante)

	/* -----------------------------------------------------------------
	|                                                                   |
	|                             AVANCES                               |
	|                                                                   |
	------------------------------------------------------------------- */
	avances := app.Group("/avances")
	avances.Use(middleware.RequireLogin)
	avances.Use(middleware.ValidPracticante)

	// Cualquier practicante con sesión
	avances.Get("/", GetAvances) // Lista acotada según el rol
	avances.Get("/nuevo", NuevoAvanceForm)
	avances.Post("/nuevo", CreateAvance) // Siempre a nombre del practicante de la sesión
	// RESPONSABLES
	avances.Post("/feedback/:id", middleware.IsResponsable, AddFeedback)

	/* -----------------------------------------------------------------
	|                                                                   |
	|                             REPORTES                              |
	|                                                                   |
	------------------------------------------------------------------- */
	app.Get("/reportes", middleware.RequireLogin, middleware.ValidPracticante, middleware.IsResponsable, GetReportes)

	return app
}
