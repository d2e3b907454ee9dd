package db

import (
	"database/sql"
	"log"
	"practicantes-api/config"
	"practicantes-api/models"
	"practicantes-api/pkg"

	_ "github.com/mattn/go-sqlite3"
)

var DB *sql.DB

func InitDB() {
	var err error
	cfg := config.LoadConfig()
	DB, err = sql.Open("sqlite3", cfg.DBPath)
	if err != nil {
		log.Fatal("Error abriendo la base de datos:", err)
	}
	createTables()
	createDefaultAdmin()
	if !cfg.Production {
		log.Println("Modo desarrollo activado, credenciales del administrador por defecto: ", cfg.DefaultAdminUsername, cfg.DefaultAdminPassword)
	}
}

func createTables() {
	query := `
	CREATE TABLE IF NOT EXISTS practicantes (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		nombre TEXT NOT NULL,
		programa TEXT NOT NULL,
		fecha_ingreso TEXT NOT NULL,
		estado TEXT NOT NULL,
		responsable TEXT NOT NULL,
		usuario TEXT UNIQUE NOT NULL,
		contrasena TEXT NOT NULL,
		es_responsable BOOLEAN NOT NULL DEFAULT FALSE
	);
	CREATE TABLE IF NOT EXISTS avances (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		practicante_id INTEGER NOT NULL,
		descripcion TEXT NOT NULL,
		fecha TEXT NOT NULL,
		feedback TEXT,
		FOREIGN KEY(practicante_id) REFERENCES practicantes(id)
	);
	`

	_, err := DB.Exec(query)
	if err != nil {
		log.Fatal("Error creando tablas:", err)
	}
}

// createDefaultAdmin crea la cuenta del administrador solo si no existe todavía,
// con el perfil fijo de siempre y las credenciales del archivo de configuración
func createDefaultAdmin() {
	cfg := config.LoadConfig()

	adminExists := false
	err := DB.QueryRow("SELECT COUNT(*) FROM practicantes WHERE usuario = ?", cfg.DefaultAdminUsername).Scan(&adminExists)
	if err != nil {
		log.Fatal("Error comprobando si existe el administrador por defecto:", err)
	}
	if adminExists {
		return
	}

	contrasena, err := pkg.GeneratePassword(cfg.DefaultAdminPassword)
	if err != nil {
		log.Fatal("Error generando la contraseña del administrador por defecto:", err)
	}

	query := `
	INSERT INTO practicantes (nombre, programa, fecha_ingreso, estado, responsable, usuario, contrasena, es_responsable)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?)`
	_, err = DB.Exec(query, "Administrador", "DEV", "2025-01-01", models.EstadoActivo, "Sistema",
		cfg.DefaultAdminUsername, contrasena, true)
	if err != nil {
		log.Fatal("Error creando administrador por defecto:", err)
	}
}
