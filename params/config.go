package params

import (
	"os"

	"github.com/joho/godotenv"
)

// Config carries everything the replay binary needs. The matching core takes
// no configuration: its behavior is fully determined by the order batch.
type Config struct {
	// Input and Output are the order feed and ledger sink paths. Positional
	// CLI arguments take precedence over these.
	Input  string
	Output string

	// LogFile, when set, tees structured logs to a file next to stdout.
	LogFile string

	// Verbose enables per-fill debug logging.
	Verbose bool
}

func Default() Config {
	return Config{
		Input:  "orders.csv",
		Output: "results.csv",
	}
}

// LoadFromEnv loads configuration from a .env file (if present) and
// environment variables. Priority: ENV > .env file > defaults.
func LoadFromEnv(envPath string) Config {
	cfg := Default()

	// Optional .env file - absence is not an error.
	if envPath != "" {
		_ = godotenv.Load(envPath)
	} else {
		_ = godotenv.Load()
	}

	if v := os.Getenv("MATCHBOOK_INPUT"); v != "" {
		cfg.Input = v
	}
	if v := os.Getenv("MATCHBOOK_OUTPUT"); v != "" {
		cfg.Output = v
	}
	if v := os.Getenv("LOG_FILE"); v != "" {
		cfg.LogFile = v
	}
	if v := os.Getenv("VERBOSE"); v != "" {
		cfg.Verbose = v == "true"
	}

	return cfg
}
