package middleware

import (
	"net/http"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"
)

const pinHeader = "X-Wallet-Pin"

// PINGate guards wallet routes with the device PIN. The plaintext PIN from
// the header is compared against the bcrypt hash configured at startup.
// Biometric unlock happens on the device; by the time a request arrives the
// client has already resolved it to the PIN.
func PINGate(pinHash []byte) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if len(pinHash) == 0 {
			return c.Next() // gate disabled
		}

		pin := c.Get(pinHeader)
		if pin == "" {
			return fiber.NewError(http.StatusUnauthorized, "missing "+pinHeader+" header")
		}
		if err := bcrypt.CompareHashAndPassword(pinHash, []byte(pin)); err != nil {
			return fiber.NewError(http.StatusUnauthorized, "wrong PIN")
		}
		return c.Next()
	}
}

// HashPIN derives the bcrypt hash stored for the gate.
func HashPIN(pin string) ([]byte, error) {
	return bcrypt.GenerateFromPassword([]byte(pin), bcrypt.DefaultCost)
}
