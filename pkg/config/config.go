package config

import (
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	ServerPort             string `envconfig:"SERVER_PORT" default:"8080"`
	Environment            string `envconfig:"ENVIRONMENT" default:"development"`
	FirebaseProject        string `envconfig:"FIREBASE_PROJECT_ID"`
	FirebaseApiKey         string `envconfig:"FIREBASE_API_KEY"`
	ServiceAccountJSON     string `envconfig:"FIREBASE_SERVICE_ACCOUNT_JSON"`
	ServiceAccountPath     string `envconfig:"FIREBASE_SERVICE_ACCOUNT_PATH" default:"./serviceAccountKey.json"`
	StorageBucket          string `envconfig:"STORAGE_BUCKET"`
	StaticDir              string `envconfig:"STATIC_DIR" default:"dist"`
	MaxAvatarBytes         int64  `envconfig:"MAX_AVATAR_BYTES" default:"2097152"`
	AssistantRatePerMinute int    `envconfig:"ASSISTANT_RATE" default:"30"`
}

// Load reads an optional .env file and then the process environment.
func Load() (*Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}
