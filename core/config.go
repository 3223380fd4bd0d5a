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

type Config struct {
	Debug        bool
	TestMode     bool
	Env          string // DEV (local; default), TEST, QA, PROD
	AppName      string
	Build        string
	SeedData     bool
	RollbarToken string

	Server struct {
		Host            string
		Addr            string
		ShutdownTimeout time.Duration
	}
}

func NewConfig() *Config {
	conf := viper.New()

	// defaults
	conf.SetTypeByDefaultValue(true)
	conf.SetDefault("debug", true)
	conf.SetDefault("appName", "Darasa")
	conf.SetDefault("build", "dev")
	conf.SetDefault("seedData", true)
	conf.SetDefault("rollbarToken", "")
	conf.SetDefault("server.host", "localhost")
	conf.SetDefault("server.addr", ":8000")
	conf.SetDefault("server.shutdownTimeout", 5*time.Second)

	env := os.Getenv("ENV")
	switch env {
	case "":
		env = "DEV"
	case "TEST":
		conf.SetDefault("testMode", true)
	}
	conf.SetEnvPrefix(env)

	// load .env if it exists (ignore if it does not)
	dotEnvPath := filepath.Join("config", ".env."+strings.ToLower(env))
	if _, err := os.Stat(dotEnvPath); err == nil {
		if err := godotenv.Load(dotEnvPath); err != nil {
			log.Fatalf("config.godotenv(%s): %v", dotEnvPath, err)
		}
	} else if !os.IsNotExist(err) {
		log.Fatalf("config.os.Stat(%s): %v", dotEnvPath, err)
	}
	conf.AutomaticEnv()

	c := &Config{
		Debug:        conf.GetBool("debug"),
		TestMode:     conf.GetBool("testMode"),
		Env:          env,
		AppName:      conf.GetString("appName"),
		Build:        conf.GetString("build"),
		SeedData:     conf.GetBool("seedData"),
		RollbarToken: conf.GetString("rollbarToken"),
	}
	c.Server.Host = conf.GetString("server.host")
	c.Server.Addr = conf.GetString("server.addr")
	c.Server.ShutdownTimeout = conf.GetDuration("server.shutdownTimeout")
	return c
}
