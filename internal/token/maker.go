package token

import (
	"time"
)

// Maker verifies the access tokens issued by the auth service. CreateToken
// exists for that service and for tests; this repo only verifies.
type Maker interface {
	CreateToken(user Identity, duration time.Duration) (token string, payload *Payload, err error)
	VerifyToken(tokenString string) (payload *Payload, err error)
}
