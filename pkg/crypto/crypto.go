package crypto

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

var ErrInvalidSignature = errors.New("invalid signature")

func ComputeHMAC256(toSign []byte, secretKey string) string {
	h := hmac.New(sha256.New, []byte(secretKey))
	h.Write(toSign)
	return hex.EncodeToString(h.Sum(nil))
}

// VerifyHMAC compares providedSign against the HMAC of toSign in constant time
func VerifyHMAC(secretKey string, toSign []byte, providedSign string) bool {
	expected := ComputeHMAC256(toSign, secretKey)
	return hmac.Equal([]byte(expected), []byte(providedSign))
}

// SignValue returns "value.signature", suitable for opaque client-held tokens
func SignValue(value, secretKey string) string {
	return value + "." + ComputeHMAC256([]byte(value), secretKey)
}

// VerifySignedValue returns the value embedded in a SignValue token
func VerifySignedValue(token, secretKey string) (string, error) {
	idx := strings.LastIndex(token, ".")
	if idx <= 0 || idx == len(token)-1 {
		return "", ErrInvalidSignature
	}
	value, sign := token[:idx], token[idx+1:]
	if !VerifyHMAC(secretKey, []byte(value), sign) {
		return "", ErrInvalidSignature
	}
	return value, nil
}

// RandomHex returns n random bytes hex encoded
func RandomHex(n int) (string, error) {
	buf := make([]byte, n)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("RandomHex error: %w", err)
	}
	return hex.EncodeToString(buf), nil
}

func HashPassword(password string) (hashedPassword string, err error) {
	pwd, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("HashPassword error: %w", err)
	}

	return string(pwd), nil
}

func CheckPasswordHash(password string, hash string) (isValid bool) {
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)); err != nil {
		return false
	}
	return true
}
