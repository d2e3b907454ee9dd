package models

type Practicante struct {
	ID            int    `json:"id"`
	Nombre        string `json:"nombre"`
	Programa      string `json:"programa"`
	FechaIngreso  string `json:"fecha_ingreso"`
	Estado        string `json:"estado"`
	Responsable   string `json:"responsable"`
	Usuario       string `json:"usuario"`
	Contrasena    string `json:"-"`
	EsResponsable bool   `json:"es_responsable"`
}

const (
	EstadoActivo     = "Activo"
	EstadoFinalizado = "Finalizado"
	EstadoEnEspera   = "En espera"
)
