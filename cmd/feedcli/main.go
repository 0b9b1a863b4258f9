// feedcli is a terminal client for the feed. It signs in against the
// same database the server uses and drives the session command layer
// directly, which makes it handy for poking at a deployment without a
// browser.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
	"go.mongodb.org/mongo-driver/v2/bson"

	"teamfeed/configs"
	"teamfeed/database"
	"teamfeed/internal/identity"
	"teamfeed/internal/repository"
	"teamfeed/internal/session"
	"teamfeed/internal/viewer"
)

func main() {
	if err := godotenv.Overload(".env"); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	var (
		username   = flag.String("user", "", "username to sign in as")
		password   = flag.String("pass", "", "password")
		command    = flag.String("cmd", "feed", "feed | post | like | comment")
		content    = flag.String("content", "", "post or comment content")
		visibility = flag.String("visibility", "public", "post visibility: public | private")
		postID     = flag.String("post", "", "target post id for like/comment")
	)
	flag.Parse()

	if *username == "" || *password == "" {
		fmt.Fprintln(os.Stderr, "usage: feedcli -user <name> -pass <password> [-cmd feed|post|like|comment] ...")
		os.Exit(2)
	}

	cfg := configs.Load()
	if cfg.JWTSecret == "" {
		log.Fatal("JWT_SECRET is required")
	}

	client, err := database.Connect(cfg.MongoURI)
	if err != nil {
		log.Fatalf("mongo connect failed: %v", err)
	}
	defer database.Disconnect(client)
	db := client.Database(cfg.DBName)

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	provider := identity.NewProvider(db, []byte(cfg.JWTSecret))
	token, err := provider.SignIn(ctx, *username, *password)
	if err != nil {
		log.Fatalf("sign in failed: %v", err)
	}
	userID, sessionID, err := provider.Verify(ctx, token)
	if err != nil {
		log.Fatalf("token verify failed: %v", err)
	}

	store := repository.NewMongoStore(db)
	v, err := viewer.Build(ctx, store.Profiles, userID)
	if err != nil {
		log.Fatalf("build viewer failed: %v", err)
	}

	sess := session.New(store, provider, v, sessionID)
	if err := sess.Refresh(ctx); err != nil {
		log.Fatalf("refresh failed: %v", err)
	}

	switch *command {
	case "feed":
		// nothing to do beyond the refresh

	case "post":
		if _, err := sess.CreatePost(ctx, *content, *visibility); err != nil {
			log.Fatalf("create post failed: %v", err)
		}

	case "like":
		id := mustObjectID(*postID)
		if err := sess.ToggleLike(ctx, id); err != nil {
			log.Fatalf("toggle like failed: %v", err)
		}

	case "comment":
		id := mustObjectID(*postID)
		if err := sess.AddComment(ctx, id, *content); err != nil {
			log.Fatalf("add comment failed: %v", err)
		}

	default:
		log.Fatalf("unknown command %q", *command)
	}

	printFeed(sess)

	if err := sess.SignOut(ctx); err != nil {
		log.Fatalf("sign out failed: %v", err)
	}
}

func mustObjectID(hex string) bson.ObjectID {
	id, err := bson.ObjectIDFromHex(hex)
	if err != nil {
		log.Fatalf("invalid post id %q", hex)
	}
	return id
}

func printFeed(sess *session.Session) {
	for _, p := range sess.Posts() {
		liked := " "
		if p.ViewerHasLiked {
			liked = "*"
		}
		fmt.Printf("%s [%s] %s (%s/%s) likes=%d%s comments=%d\n  %s\n",
			p.ID.Hex(), p.Visibility, p.AuthorUsername, p.AuthorTeam,
			p.CreatedAt.Format(time.RFC3339), p.LikeCount, liked, p.CommentCount, p.Content)
		for _, c := range p.Comments {
			fmt.Printf("    %s: %s\n", c.DisplayName, c.Content)
		}
	}
}
