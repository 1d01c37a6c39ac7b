package token

import (
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Identity is the authenticated user carried by an access token.
type Identity struct {
	UserID   int64
	Username string
	IsAdmin  bool
}

type Payload struct {
	Username string `json:"username"`
	IsAdmin  bool   `json:"is_admin"`
	jwt.RegisteredClaims
}

func NewPayload(user Identity, duration time.Duration) (payload Payload, err error) {
	tokenID, err := uuid.NewRandom()
	if err != nil {
		return payload, fmt.Errorf("failed to generate tokenID: %w", err)
	}

	payload = Payload{
		Username: user.Username,
		IsAdmin:  user.IsAdmin,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        tokenID.String(),
			Issuer:    "vehicle-auction",
			Subject:   strconv.FormatInt(user.UserID, 10),
			Audience:  jwt.ClaimStrings{"client"},
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			NotBefore: jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(duration)),
		},
	}

	return payload, nil
}

// Identity returns the user the token was issued for.
func (payload *Payload) Identity() (Identity, error) {
	userID, err := strconv.ParseInt(payload.Subject, 10, 64)
	if err != nil {
		return Identity{}, fmt.Errorf("invalid token subject %q: %w", payload.Subject, err)
	}

	return Identity{
		UserID:   userID,
		Username: payload.Username,
		IsAdmin:  payload.IsAdmin,
	}, nil
}
