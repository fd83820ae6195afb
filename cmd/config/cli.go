package config

import (
	"flag"

	"github.com/joho/godotenv"
)

// ProbeOptions holds the flags shared by the probing tools. Environment
// variables supply the defaults and flags override them.
type ProbeOptions struct {
	BaseURL  string
	FormPath string
	Email    string
	Password string
	LogLevel string
}

// RegisterProbeFlags loads .env and registers the shared flags on fs.
func RegisterProbeFlags(fs *flag.FlagSet) *ProbeOptions {
	_ = godotenv.Load()

	o := &ProbeOptions{}
	fs.StringVar(&o.BaseURL, "url", getEnv("PROBE_URL", "http://localhost:8080"), "base URL of the storefront")
	fs.StringVar(&o.FormPath, "path", getEnv("PROBE_FORM_PATH", "/products/new"), "path of the form page")
	fs.StringVar(&o.Email, "email", getEnv("PROBE_EMAIL", "east@east.com"), "login email or username")
	fs.StringVar(&o.Password, "password", getEnv("PROBE_PASSWORD", "password"), "login password")
	fs.StringVar(&o.LogLevel, "log-level", getEnv("LOG_LEVEL", "info"), "log level")
	return o
}

// BoolFlag registers a bool flag whose default comes from env.
func BoolFlag(fs *flag.FlagSet, name, env string, def bool, usage string) *bool {
	return fs.Bool(name, getBool(env, def), usage)
}

// StringFlag registers a string flag whose default comes from env.
func StringFlag(fs *flag.FlagSet, name, env, def, usage string) *string {
	return fs.String(name, getEnv(env, def), usage)
}
