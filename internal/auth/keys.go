package auth

import (
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"errors"
	"fmt"
	"os"
	"sync"

	"github.com/golang-jwt/jwt/v5"
)

var (
	keysOnce sync.Once
	keysErr  error

	privKey   *rsa.PrivateKey
	pubKeys   = map[string]*rsa.PublicKey{} // kid -> pub
	activeKID string
	issuer    string
	audience  string
)

// parseRSAPrivatePEM aceita PKCS#1 ou PKCS#8.
func parseRSAPrivatePEM(b []byte) (*rsa.PrivateKey, error) {
	block, _ := pem.Decode(b)
	if block == nil {
		return nil, errors.New("pem decode private key failed")
	}
	if k, err := x509.ParsePKCS1PrivateKey(block.Bytes); err == nil {
		return k, nil
	}
	k8, err := x509.ParsePKCS8PrivateKey(block.Bytes)
	if err != nil {
		return nil, fmt.Errorf("parse private key: %w", err)
	}
	rk, ok := k8.(*rsa.PrivateKey)
	if !ok {
		return nil, errors.New("private key is not RSA")
	}
	return rk, nil
}

func mustInitKeys() error {
	keysOnce.Do(func() {
		activeKID = os.Getenv("AUTH_KID")
		issuer = os.Getenv("AUTH_ISSUER")
		audience = os.Getenv("AUTH_AUDIENCE")
		if activeKID == "" || issuer == "" || audience == "" {
			keysErr = errors.New("missing envs: AUTH_KID/AUTH_ISSUER/AUTH_AUDIENCE")
			return
		}

		// Chave via arquivo (AUTH_RSA_PRIVATE_PATH) ou PEM inline
		// (AUTH_RSA_PRIVATE_PEM, útil em container sem volume).
		pemBytes := []byte(os.Getenv("AUTH_RSA_PRIVATE_PEM"))
		if len(pemBytes) == 0 {
			path := os.Getenv("AUTH_RSA_PRIVATE_PATH")
			if path == "" {
				keysErr = errors.New("missing env: AUTH_RSA_PRIVATE_PATH or AUTH_RSA_PRIVATE_PEM")
				return
			}
			b, err := os.ReadFile(path)
			if err != nil {
				keysErr = fmt.Errorf("read private key: %w", err)
				return
			}
			pemBytes = b
		}

		pk, err := parseRSAPrivatePEM(pemBytes)
		if err != nil {
			keysErr = err
			return
		}
		privKey = pk
		pubKeys[activeKID] = &pk.PublicKey
	})
	return keysErr
}

func getPriv() *rsa.PrivateKey                 { return privKey }
func getPub(kid string) (*rsa.PublicKey, bool) { p, ok := pubKeys[kid]; return p, ok }
func getKID() string                           { return activeKID }
func getIssuer() string                        { return issuer }
func getAudience() string                      { return audience }
func signMethod() jwt.SigningMethod            { return jwt.SigningMethodRS256 }
