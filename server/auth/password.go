package auth

import "golang.org/x/crypto/bcrypt"

type (
	// PasswordHandler hashes passwords and checks them against stored hashes.
	PasswordHandler interface {
		Hash(password string) ([]byte, error)
		IsCorrect(hashedPassword []byte, password string) (bool, error)
	}

	// BcryptPasswordHandler implements the PasswordHandler interface with bcrypt.
	BcryptPasswordHandler struct {
		cost int
	}
)

// NewBcryptPasswordHandler creates a password handler with the default bcrypt cost.
func NewBcryptPasswordHandler() BcryptPasswordHandler {
	bph := BcryptPasswordHandler{
		cost: bcrypt.DefaultCost,
	}
	return bph
}

// Hash computes the salted hash of the password.
func (bph BcryptPasswordHandler) Hash(password string) ([]byte, error) {
	return bcrypt.GenerateFromPassword([]byte(password), bph.cost)
}

// IsCorrect reports whether the password matches the stored hash.
// A mismatch is not an error.
func (BcryptPasswordHandler) IsCorrect(hashedPassword []byte, password string) (bool, error) {
	err := bcrypt.CompareHashAndPassword(hashedPassword, []byte(password))
	switch {
	case err == bcrypt.ErrMismatchedHashAndPassword:
		return false, nil
	case err != nil:
		return false, err
	}
	return true, nil
}
