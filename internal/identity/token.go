package identity

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"go.mongodb.org/mongo-driver/v2/bson"
)

var errBadToken = errors.New("invalid token")

type tokenClaims struct {
	SessionID string `json:"sid"`
	jwt.RegisteredClaims
}

// signToken issues an HS256 bearer token carrying the account id as the
// subject and the session id as a private claim.
func signToken(secret []byte, userID, sessionID bson.ObjectID, ttl time.Duration) (string, error) {
	now := time.Now().UTC()
	claims := tokenClaims{
		SessionID: sessionID.Hex(),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID.Hex(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
}

// parseToken validates the signature and expiry and returns the account
// and session ids. Only HS256 is accepted.
func parseToken(secret []byte, tokenStr string) (userID, sessionID bson.ObjectID, err error) {
	var claims tokenClaims
	token, err := jwt.ParseWithClaims(
		tokenStr,
		&claims,
		func(t *jwt.Token) (any, error) {
			if t.Method != jwt.SigningMethodHS256 {
				return nil, errBadToken
			}
			return secret, nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
	)
	if err != nil || !token.Valid {
		return bson.NilObjectID, bson.NilObjectID, errBadToken
	}

	userID, err = bson.ObjectIDFromHex(claims.Subject)
	if err != nil {
		return bson.NilObjectID, bson.NilObjectID, errBadToken
	}
	sessionID, err = bson.ObjectIDFromHex(claims.SessionID)
	if err != nil {
		return bson.NilObjectID, bson.NilObjectID, errBadToken
	}
	return userID, sessionID, nil
}
