package models

type Avance struct {
	ID            int    `json:"id"`
	PracticanteID int    `json:"practicante_id"`
	Descripcion   string `json:"descripcion"`
	Fecha         string `json:"fecha"`
	Feedback      string `json:"feedback,omitempty"`
}

// La descripción de un avance está limitada a 500 caracteres
const DescripcionMaxLen = 500
