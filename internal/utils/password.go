package utils

import "golang.org/x/crypto/bcrypt"

// Custo do bcrypt para as senhas do backoffice.
const bcryptCost = bcrypt.DefaultCost

// HashPassword gera o hash bcrypt da senha informada.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// CheckPassword informa se a senha em texto puro confere com o hash.
func CheckPassword(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
