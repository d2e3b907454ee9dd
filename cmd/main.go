package main

import (
	"log"

	"practicantes-api/config"
	"practicantes-api/db"
	"practicantes-api/routes"
)

func main() {
	cfg := config.LoadConfig()

	// Iniciar la base de datos
	db.InitDB()

	// Iniciar la aplicación con todas las rutas
	app := routes.Setup()

	port := cfg.Port
	log.Printf("Server is running on port %s", port)
	log.Fatal(app.Listen(":" + port))
}
