package identity

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"golang.org/x/crypto/bcrypt"

	"teamfeed/internal/repository"
	"teamfeed/model"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUsernameTaken      = errors.New("username already taken")
	ErrUnknownTeam        = errors.New("please select a team")
	ErrSessionRevoked     = errors.New("session revoked")
)

const tokenTTL = 24 * time.Hour

type account struct {
	ID           bson.ObjectID `bson:"_id,omitempty"`
	Username     string        `bson:"username"`
	PasswordHash string        `bson:"password_hash"`
	CreatedAt    time.Time     `bson:"created_at"`
}

type sessionDoc struct {
	ID        bson.ObjectID `bson:"_id,omitempty"`
	UserID    bson.ObjectID `bson:"user_id"`
	CreatedAt time.Time     `bson:"created_at"`
	ExpiresAt time.Time     `bson:"expires_at"`
}

// Provider maps usernames to accounts and issues bearer tokens. Every
// token points at a session row; sign-out deletes the row, so a revoked
// token fails verification even before it expires.
type Provider struct {
	accounts *mongo.Collection
	profiles *repository.ProfileRepository
	sessions *mongo.Collection
	secret   []byte
}

func NewProvider(db *mongo.Database, secret []byte) *Provider {
	return &Provider{
		accounts: db.Collection("accounts"),
		profiles: repository.NewProfileRepository(db),
		sessions: db.Collection("sessions"),
		secret:   secret,
	}
}

// SignUp creates the account and its profile, then signs the new user in.
func (p *Provider) SignUp(ctx context.Context, username, password, team string) (string, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return "", ErrInvalidCredentials
	}
	if !model.ValidTeam(team) {
		return "", ErrUnknownTeam
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}

	now := time.Now().UTC()
	res, err := p.accounts.InsertOne(ctx, account{
		Username:     username,
		PasswordHash: string(hash),
		CreatedAt:    now,
	})
	if err != nil {
		if isDuplicateKey(err) {
			return "", ErrUsernameTaken
		}
		return "", err
	}
	userID := res.InsertedID.(bson.ObjectID)

	err = p.profiles.Insert(ctx, model.Profile{
		ID:        userID,
		Username:  username,
		Team:      team,
		CreatedAt: now,
	})
	if err != nil {
		// Keep accounts and profiles in step; the signup must not leave a
		// half-created identity behind.
		_, _ = p.accounts.DeleteOne(ctx, bson.M{"_id": userID})
		if isDuplicateKey(err) {
			return "", ErrUsernameTaken
		}
		return "", err
	}

	return p.issue(ctx, userID)
}

func (p *Provider) SignIn(ctx context.Context, username, password string) (string, error) {
	username = strings.TrimSpace(username)

	var acc account
	err := p.accounts.FindOne(ctx, bson.M{"username": username}).Decode(&acc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return "", ErrInvalidCredentials
	}
	if err != nil {
		return "", err
	}
	if bcrypt.CompareHashAndPassword([]byte(acc.PasswordHash), []byte(password)) != nil {
		return "", ErrInvalidCredentials
	}
	return p.issue(ctx, acc.ID)
}

// Verify parses the token and checks the session row still exists.
func (p *Provider) Verify(ctx context.Context, token string) (userID, sessionID bson.ObjectID, err error) {
	userID, sessionID, err = parseToken(p.secret, token)
	if err != nil {
		return bson.NilObjectID, bson.NilObjectID, err
	}
	err = p.sessions.FindOne(ctx, bson.M{"_id": sessionID, "user_id": userID}).Err()
	if errors.Is(err, mongo.ErrNoDocuments) {
		return bson.NilObjectID, bson.NilObjectID, ErrSessionRevoked
	}
	if err != nil {
		return bson.NilObjectID, bson.NilObjectID, err
	}
	return userID, sessionID, nil
}

// SignOut deletes the session row. Idempotent.
func (p *Provider) SignOut(ctx context.Context, sessionID bson.ObjectID) error {
	_, err := p.sessions.DeleteOne(ctx, bson.M{"_id": sessionID})
	return err
}

func (p *Provider) issue(ctx context.Context, userID bson.ObjectID) (string, error) {
	now := time.Now().UTC()
	res, err := p.sessions.InsertOne(ctx, sessionDoc{
		UserID:    userID,
		CreatedAt: now,
		ExpiresAt: now.Add(tokenTTL),
	})
	if err != nil {
		return "", err
	}
	return signToken(p.secret, userID, res.InsertedID.(bson.ObjectID), tokenTTL)
}

func isDuplicateKey(err error) bool {
	var we mongo.WriteException
	return errors.As(err, &we) && len(we.WriteErrors) > 0 && we.WriteErrors[0].Code == 11000
}
