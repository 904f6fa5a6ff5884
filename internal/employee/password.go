package employee

import (
	"crypto/rand"
	"math/big"
)

// Alfabeto da senha provisória de cadastro: sem 0/O, 1/l/I, para o
// admin conseguir ditar a senha por telefone sem ambiguidade.
const tempPasswordAlphabet = "abcdefghijkmnopqrstuvwxyzABCDEFGHJKLMNPQRSTUVWXYZ23456789"

const tempPasswordLength = 12

// tempPassword gera a senha provisória de quem é cadastrado sem senha.
// O funcionário é obrigado a trocá-la no primeiro login.
func tempPassword() (string, error) {
	out := make([]byte, tempPasswordLength)
	max := big.NewInt(int64(len(tempPasswordAlphabet)))
	for i := range out {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", err
		}
		out[i] = tempPasswordAlphabet[n.Int64()]
	}
	return string(out), nil
}
