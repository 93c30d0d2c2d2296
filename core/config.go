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

type (
	Config struct {
		Env          string
		Build        string
		AppName      string
		Debug        bool
		TestMode     bool
		RollbarToken string

		// API is the REST backend the console talks to.
		API struct {
			BaseURL   string
			Timeout   time.Duration
			UserAgent string
		}

		// State is the local file holding the access token and the theme preference.
		State struct {
			Path  string
			Theme string
		}

		// Server configures the development backend (apps/api).
		Server struct {
			Host               string
			Address            string
			SecretKey          string
			JWTExpirationDelta time.Duration
			ShutdownTimeout    time.Duration
			AllowOrigins       []string
			AdminUsername      string
			AdminPassword      string
		}
	}
)

func NewConfig() *Config {
	conf := viper.New()

	// defaults
	conf.SetTypeByDefaultValue(true)
	conf.SetDefault("debug", true)
	conf.SetDefault("appName", "School Admin")
	conf.SetDefault("build", "dev")
	conf.SetDefault("rollbarToken", "")

	conf.SetDefault("api.baseURL", "http://localhost:8000")
	conf.SetDefault("api.timeout", 15*time.Second)
	conf.SetDefault("api.userAgent", "schooladmin-console")

	conf.SetDefault("state.path", defaultStatePath())
	conf.SetDefault("state.theme", "dark")

	conf.SetDefault("server.host", "localhost")
	conf.SetDefault("server.address", ":8000")
	conf.SetDefault("server.secretKey", "poq5-wer)enb$+57=dz&uoxh2(h!x)#*c2(#yg4h^$cegm2emy")
	conf.SetDefault("server.jwtExpirationDelta", 12*time.Hour)
	conf.SetDefault("server.shutdownTimeout", 5*time.Second)
	conf.SetDefault("server.allowOrigins", []string{"http://localhost:5173"})
	conf.SetDefault("server.adminUsername", "admin")
	conf.SetDefault("server.adminPassword", "admin")

	env := strings.ToUpper(os.Getenv("ENV")) // DEV (local; default), TEST, QA, PROD
	switch env {
	case "":
		env = "DEV"
	case "TEST":
		conf.SetDefault("testMode", true)
	}
	conf.SetEnvPrefix(env)
	conf.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

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

	c := new(Config)
	c.Env = env
	c.Build = conf.GetString("build")
	c.AppName = conf.GetString("appName")
	c.Debug = conf.GetBool("debug")
	c.TestMode = conf.GetBool("testMode")
	c.RollbarToken = conf.GetString("rollbarToken")

	c.API.BaseURL = strings.TrimRight(conf.GetString("api.baseURL"), "/")
	c.API.Timeout = conf.GetDuration("api.timeout")
	c.API.UserAgent = conf.GetString("api.userAgent")

	c.State.Path = conf.GetString("state.path")
	c.State.Theme = conf.GetString("state.theme")

	c.Server.Host = conf.GetString("server.host")
	c.Server.Address = conf.GetString("server.address")
	c.Server.SecretKey = conf.GetString("server.secretKey")
	c.Server.JWTExpirationDelta = conf.GetDuration("server.jwtExpirationDelta")
	c.Server.ShutdownTimeout = conf.GetDuration("server.shutdownTimeout")
	c.Server.AllowOrigins = conf.GetStringSlice("server.allowOrigins")
	c.Server.AdminUsername = conf.GetString("server.adminUsername")
	c.Server.AdminPassword = conf.GetString("server.adminPassword")
	return c
}

func defaultStatePath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		dir = "."
	}
	return filepath.Join(dir, "schooladmin", "state.json")
}
