package core

import (
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all runtime settings for the client.
type Config struct {
	Debug    bool
	TestMode bool
	Env      string
	AppName  string
	Build    string

	APIBaseURL     string
	RequestTimeout time.Duration

	SearchDebounceDelay time.Duration
	LeaderboardSize     int

	RollbarToken string
	ClientHost   string
}

var Conf *Config

func init() {
	v := viper.New()

	// defaults
	v.SetTypeByDefaultValue(true)
	v.SetDefault("debug", true)
	v.SetDefault("appName", "PeerTutor")
	v.SetDefault("apiBaseUrl", "http://localhost:8080")
	v.SetDefault("requestTimeout", 30*time.Second)
	v.SetDefault("searchDebounceDelay", 300*time.Millisecond)
	v.SetDefault("leaderboardSize", 5)
	v.SetDefault("rollbarToken", "")
	v.SetDefault("clientHost", "localhost")
	v.SetDefault("build", "dev")

	env := os.Getenv("ENV") // DEV (local; default), TEST, QA, PROD
	switch env {
	case "":
		env = "DEV"
	case "TEST":
		v.SetDefault("testMode", true)
	}
	v.SetEnvPrefix(env)

	// load .env if it exists (ignore if it does not)
	dotEnvPath := filepath.Join(Getwd(), "config", ".env."+strings.ToLower(env))
	if _, err := os.Stat(dotEnvPath); err == nil {
		if err := godotenv.Load(dotEnvPath); err != nil {
			log.Fatalf("config.godotenv(%s): %v", dotEnvPath, err)
		}
	} else if !os.IsNotExist(err) {
		log.Fatalf("config.os.Stat(%s): %v", dotEnvPath, err)
	}
	v.AutomaticEnv()

	Conf = &Config{
		Debug:               v.GetBool("debug"),
		TestMode:            v.GetBool("testMode"),
		Env:                 env,
		AppName:             v.GetString("appName"),
		Build:               v.GetString("build"),
		APIBaseURL:          v.GetString("apiBaseUrl"),
		RequestTimeout:      v.GetDuration("requestTimeout"),
		SearchDebounceDelay: v.GetDuration("searchDebounceDelay"),
		LeaderboardSize:     v.GetInt("leaderboardSize"),
		RollbarToken:        v.GetString("rollbarToken"),
		ClientHost:          v.GetString("clientHost"),
	}
}
