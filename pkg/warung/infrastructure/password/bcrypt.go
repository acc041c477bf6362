// Package password hashes and verifies user passwords with bcrypt.
package password

import (
	"github.com/pkg/errors"
	"golang.org/x/crypto/bcrypt"
)

type BcryptManager struct {
	cost int
}

func NewBcryptManager() *BcryptManager {
	return &BcryptManager{cost: bcrypt.DefaultCost}
}

func (m *BcryptManager) Hash(plainTextPassword string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(plainTextPassword), m.cost)
	if err != nil {
		return "", errors.Wrap(err, "hash password")
	}
	return string(hashed), nil
}

func (m *BcryptManager) Check(hashedPassword, plainTextPassword string) (bool, error) {
	err := bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(plainTextPassword))
	if err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return false, nil
		}
		return false, errors.Wrap(err, "compare password")
	}
	return true, nil
}
