// Package auth creates and checks the tokens that authorize chart editing.
package auth

import (
	"fmt"
	"io"
	"time"

	"github.com/golang-jwt/jwt/v4"
)

type (
	// Tokenizer creates and reads tokens from http traffic.
	Tokenizer interface {
		Create(subject string) (string, error)
		ReadSubject(tokenString string) (string, error)
	}

	// TokenizerConfig contains fields which describe a Tokenizer.
	TokenizerConfig struct {
		// KeyReader is used to generate the token signing key.
		KeyReader io.Reader
		// TimeFunc is a function which should supply the current time since the unix epoch.
		// Used to set the length of time the token is valid.
		TimeFunc func() int64
		// ValidSec is the length of time the token is valid from the issuing time, in seconds.
		ValidSec int64
	}

	jwtTokenizer struct {
		method   jwt.SigningMethod
		key      interface{}
		timeFunc func() int64
		validSec int64
	}
)

// NewTokenizer creates a Tokenizer that uses the key reader to generate its signing key.
func (cfg TokenizerConfig) NewTokenizer() (Tokenizer, error) {
	switch {
	case cfg.KeyReader == nil:
		return nil, fmt.Errorf("key reader required")
	case cfg.TimeFunc == nil:
		return nil, fmt.Errorf("time func required")
	case cfg.ValidSec <= 0:
		return nil, fmt.Errorf("token valid duration must be positive, got %v", cfg.ValidSec)
	}
	key := make([]byte, 64)
	if _, err := io.ReadFull(cfg.KeyReader, key); err != nil {
		return nil, fmt.Errorf("generating tokenizer key: %w", err)
	}
	t := jwtTokenizer{
		method:   jwt.SigningMethodHS256,
		key:      key,
		timeFunc: cfg.TimeFunc,
		validSec: cfg.ValidSec,
	}
	return t, nil
}

// Create signs the subject into a token string.
func (j jwtTokenizer) Create(subject string) (string, error) {
	now := j.timeFunc()
	claims := jwt.RegisteredClaims{
		Subject:   subject,
		NotBefore: jwt.NewNumericDate(time.Unix(now, 0)),
		ExpiresAt: jwt.NewNumericDate(time.Unix(now+j.validSec, 0)),
	}
	token := jwt.NewWithClaims(j.method, claims)
	return token.SignedString(j.key)
}

// ReadSubject extracts the subject from the token string.
func (j jwtTokenizer) ReadSubject(tokenString string) (string, error) {
	var claims jwt.RegisteredClaims
	if _, err := jwt.ParseWithClaims(tokenString, &claims, j.keyFunc); err != nil {
		return "", err
	}
	return claims.Subject, nil
}

// keyFunc ensures the signing method of the token is correct before returning the key.
func (j jwtTokenizer) keyFunc(t *jwt.Token) (interface{}, error) {
	if t.Method != j.method {
		return nil, fmt.Errorf("incorrect authorization signing method")
	}
	return j.key, nil
}
