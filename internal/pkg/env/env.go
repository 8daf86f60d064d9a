package env

import (
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// Env holds the key/value pairs read from the .env file. Keys the file does
// not define fall through to the process environment.
var Env map[string]string

func GetEnv(key, def string) string {
	if val, ok := Env[key]; ok {
		return val
	}
	// Containers and tests configure through the process environment.
	if val := os.Getenv(key); val != "" {
		return val
	}
	return def
}

// SetupEnvFile loads the nearest .env file, walking up from the working
// directory so the binaries under cmd/ find the project root copy.
func SetupEnvFile() {
	envFiles := []string{
		".env",
		"../../.env",
		"../../../.env",
	}

	var err error
	for _, envFile := range envFiles {
		Env, err = godotenv.Read(envFile)
		if err == nil {
			return
		}
	}

	panic("No .env file found in any of the expected locations")
}

// PublicBaseURL is the externally reachable origin, without a trailing
// slash. OAuth callbacks and links in outgoing mail are built on it.
func PublicBaseURL() string {
	base := strings.TrimRight(GetEnv("PUBLIC_DOMAIN", ""), "/")
	if base == "" {
		base = "http://localhost:" + GetEnv("APP_PORT", "4000")
	}
	return base
}

func IsDev() bool {
	return GetEnv("APP_ENV", "prod") == "dev"
}
