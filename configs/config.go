package configs

import "os"

// Request body limits.
const (
	MaxPostChars    = 2000
	MaxCommentChars = 2000
)

type Config struct {
	Port      string
	MongoURI  string
	DBName    string
	JWTSecret string
}

// Load reads configuration from the environment. godotenv has already
// overlaid .env by the time this runs (see main's init).
func Load() Config {
	cfg := Config{
		Port:      os.Getenv("PORT"),
		MongoURI:  os.Getenv("MONGO_URI"),
		DBName:    os.Getenv("DB_NAME"),
		JWTSecret: os.Getenv("JWT_SECRET"),
	}
	if cfg.Port == "" {
		cfg.Port = "3000"
	}
	if cfg.DBName == "" {
		cfg.DBName = "teamfeed"
	}
	return cfg
}
