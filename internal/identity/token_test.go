package identity

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/v2/bson"
)

func TestTokenRoundTrip(t *testing.T) {
	secret := []byte("test-secret")
	uid := bson.NewObjectID()
	sid := bson.NewObjectID()

	token, err := signToken(secret, uid, sid, time.Hour)
	require.NoError(t, err)

	gotUID, gotSID, err := parseToken(secret, token)
	require.NoError(t, err)
	require.Equal(t, uid, gotUID)
	require.Equal(t, sid, gotSID)
}

func TestParseTokenWrongSecret(t *testing.T) {
	token, err := signToken([]byte("secret-a"), bson.NewObjectID(), bson.NewObjectID(), time.Hour)
	require.NoError(t, err)

	_, _, err = parseToken([]byte("secret-b"), token)
	require.Error(t, err)
}

func TestParseTokenExpired(t *testing.T) {
	secret := []byte("test-secret")
	token, err := signToken(secret, bson.NewObjectID(), bson.NewObjectID(), -time.Minute)
	require.NoError(t, err)

	_, _, err = parseToken(secret, token)
	require.Error(t, err)
}

func TestParseTokenGarbage(t *testing.T) {
	_, _, err := parseToken([]byte("test-secret"), "not.a.token")
	require.Error(t, err)
}
