package service

import "golang.org/x/crypto/bcrypt"

// MinPasswordLength es la longitud mínima aceptada para contraseñas.
const MinPasswordLength = 6

// HashPassword genera un hash bcrypt con salt aleatorio por llamada.
func HashPassword(plaintext string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(plaintext), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// VerifyPassword compara un plaintext contra un hash bcrypt.
// Nunca devuelve error por un mismatch; solo false.
func VerifyPassword(plaintext, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plaintext)) == nil
}
