package pkg

import (
	"golang.org/x/crypto/bcrypt"
)

// GeneratePassword devuelve el hash bcrypt de una contraseña en claro.
// La versión original guardaba la contraseña tal cual, aquí siempre se guarda
// el hash. bcrypt rechaza contraseñas de más de 72 bytes, ese error tiene que
// llegar al que registra, nunca se guarda un hash vacío.
func GeneratePassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// ComparePassword comprueba una contraseña en claro contra su hash almacenado
func ComparePassword(hash string, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
