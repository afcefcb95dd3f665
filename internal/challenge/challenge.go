// Package challenge implements the anti-bot math challenge. The server
// issues a small arithmetic problem plus a signed token committing to the
// answer; verification is stateless, so no challenge state survives in
// memory or storage.
package challenge

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"errors"
	"fmt"
	"math/rand"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var (
	ErrInvalidToken = errors.New("challenge token is invalid or expired")
	ErrWrongAnswer  = errors.New("challenge answer is wrong")
)

// Challenge is what the client receives: a question to show the user and an
// opaque token to send back with the answer.
type Challenge struct {
	ID       string `json:"id"`
	Question string `json:"question"`
	Token    string `json:"token"`
}

// Issuer creates and verifies challenges.
type Issuer struct {
	secret []byte
	ttl    time.Duration
}

// NewIssuer returns an Issuer signing tokens with the given secret. Tokens
// expire after ttl.
func NewIssuer(secret string, ttl time.Duration) *Issuer {
	return &Issuer{secret: []byte(secret), ttl: ttl}
}

// Issue generates a new arithmetic problem. Operand ranges keep answers
// small: subtraction never goes negative, multiplication stays within the
// twelve-times table.
func (i *Issuer) Issue() (*Challenge, error) {
	var (
		a, b   int
		op     string
		answer int
	)
	switch rand.Intn(3) {
	case 0:
		a, b = rand.Intn(50)+1, rand.Intn(50)+1
		op, answer = "+", a+b
	case 1:
		a, b = rand.Intn(50)+25, rand.Intn(25)+1
		op, answer = "-", a-b
	default:
		a, b = rand.Intn(12)+1, rand.Intn(12)+1
		op, answer = "×", a*b
	}

	cid := uuid.NewString()
	claims := jwt.MapClaims{
		"cid": cid,
		"sum": i.commit(cid, answer),
		"exp": time.Now().Add(i.ttl).Unix(),
		"iss": "quejas-service",
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(i.secret)
	if err != nil {
		return nil, err
	}

	return &Challenge{
		ID:       cid,
		Question: fmt.Sprintf("¿Cuánto es %d %s %d?", a, op, b),
		Token:    token,
	}, nil
}

// Verify checks the answer against the token's commitment. It returns
// ErrInvalidToken for malformed or expired tokens and ErrWrongAnswer when
// the arithmetic is off.
func (i *Issuer) Verify(token string, answer int) error {
	parsed, err := jwt.Parse(token, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return i.secret, nil
	})
	if err != nil || !parsed.Valid {
		return ErrInvalidToken
	}

	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return ErrInvalidToken
	}
	cid, _ := claims["cid"].(string)
	sum, _ := claims["sum"].(string)
	if cid == "" || sum == "" {
		return ErrInvalidToken
	}

	if subtle.ConstantTimeCompare([]byte(sum), []byte(i.commit(cid, answer))) != 1 {
		return ErrWrongAnswer
	}
	return nil
}

func (i *Issuer) commit(cid string, answer int) string {
	h := sha256.Sum256([]byte(fmt.Sprintf("%s|%d|%s", cid, answer, i.secret)))
	return hex.EncodeToString(h[:])
}
