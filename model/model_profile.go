package model

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// Profile is the public identity of an account: who they are and which
// team they belong to. Created once at signup, immutable afterwards.
type Profile struct {
	ID        bson.ObjectID `json:"id"        bson:"_id,omitempty"`
	Username  string        `json:"username"  bson:"username"`
	Team      string        `json:"team"      bson:"team"`
	CreatedAt time.Time     `json:"createdAt" bson:"created_at"`
}

// Teams is the closed set of team labels accepted at signup.
var Teams = []string{"engineering", "design", "marketing", "operations"}

func ValidTeam(team string) bool {
	for _, t := range Teams {
		if t == team {
			return true
		}
	}
	return false
}
