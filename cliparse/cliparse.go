package cliparse

import (
	"errors"
	"flag"
	"os"
	"strconv"
	"time"
)

type Config struct {
	Port         int
	DatabaseURL  string
	DatabaseType string

	// Secrets
	OrganizerKeySalt string
	AdminToken       string

	// Global drawing policy
	Enabled          bool
	MaxWinners       int
	MinParticipants  int
	LockDelayMinutes int
	ExcludedGroups   string // pipe-separated group names

	// Scheduler intervals
	DrawInterval time.Duration
	LockInterval time.Duration
}

// ParseFlags validates flags and resolves environment fallbacks
func ParseFlags(args []string) (Config, error) {
	var cfg Config

	fs := flag.NewFlagSet("quickdraw", flag.ContinueOnError)

	// Network config (can be CLI args or env)
	fs.IntVar(&cfg.Port, "p", 0, "Server port")
	fs.StringVar(&cfg.DatabaseURL, "d", "", "Database URL")
	fs.StringVar(&cfg.DatabaseType, "t", "", "Database type (sqlite or postgres)")

	// Secrets (prefer env variables, but allow CLI for dev)
	fs.StringVar(&cfg.OrganizerKeySalt, "organizer-salt", "", "Organizer key salt (prefer env)")
	fs.StringVar(&cfg.AdminToken, "admin-token", "", "Admin API token (prefer env)")

	// Policy limits
	fs.IntVar(&cfg.MaxWinners, "max-winners", 0, "Maximum winners per drawing")
	fs.IntVar(&cfg.MinParticipants, "min-participants", 0, "Global minimum participant threshold")
	fs.IntVar(&cfg.LockDelayMinutes, "lock-delay", -1, "Minutes before a drawing locks (0 = lock at creation)")
	fs.StringVar(&cfg.ExcludedGroups, "excluded-groups", "", "Pipe-separated excluded group names")

	// Schedulers
	fs.DurationVar(&cfg.DrawInterval, "draw-interval", 0, "Draw sweep interval")
	fs.DurationVar(&cfg.LockInterval, "lock-interval", 0, "Lock sweep interval")

	enabledFlag := fs.String("enabled", "", "Feature flag (true/false)")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	// Fall back to environment variables
	if cfg.Port == 0 {
		if portStr := os.Getenv("PORT"); portStr != "" {
			port, err := strconv.Atoi(portStr)
			if err != nil {
				return Config{}, errors.New("invalid PORT env variable")
			}
			cfg.Port = port
		} else {
			cfg.Port = 3319 // default
		}
	}
	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	}
	if cfg.DatabaseURL == "" {
		return Config{}, errors.New("database URL required (use -d or DATABASE_URL env)")
	}

	if cfg.DatabaseType == "" {
		cfg.DatabaseType = os.Getenv("DATABASE_TYPE")
		if cfg.DatabaseType == "" {
			cfg.DatabaseType = "sqlite"
		}
	}
	if cfg.DatabaseType != "sqlite" && cfg.DatabaseType != "postgres" {
		return Config{}, errors.New("database type must be sqlite or postgres")
	}

	// Secrets - MUST be provided
	if cfg.OrganizerKeySalt == "" {
		cfg.OrganizerKeySalt = os.Getenv("ORGANIZER_KEY_SALT")
	}
	if cfg.OrganizerKeySalt == "" {
		return Config{}, errors.New("ORGANIZER_KEY_SALT required")
	}

	if cfg.AdminToken == "" {
		cfg.AdminToken = os.Getenv("ADMIN_TOKEN")
	}
	if cfg.AdminToken == "" {
		return Config{}, errors.New("ADMIN_TOKEN required")
	}

	// Policy defaults
	if cfg.MaxWinners == 0 {
		cfg.MaxWinners = envInt("MAX_WINNERS", 20)
	}
	if cfg.MaxWinners <= 0 {
		return Config{}, errors.New("max-winners must be positive")
	}
	if cfg.MinParticipants == 0 {
		cfg.MinParticipants = envInt("MIN_PARTICIPANTS", 2)
	}
	if cfg.MinParticipants <= 0 {
		return Config{}, errors.New("min-participants must be positive")
	}
	if cfg.LockDelayMinutes < 0 {
		cfg.LockDelayMinutes = envInt("LOCK_DELAY_MINUTES", 0)
	}
	if cfg.ExcludedGroups == "" {
		cfg.ExcludedGroups = os.Getenv("EXCLUDED_GROUPS")
	}

	// Scheduler defaults
	if cfg.DrawInterval == 0 {
		cfg.DrawInterval = envDuration("DRAW_INTERVAL", time.Minute)
	}
	if cfg.LockInterval == 0 {
		cfg.LockInterval = envDuration("LOCK_INTERVAL", 5*time.Minute)
	}

	// Feature flag: CLI wins, then env, then enabled
	switch *enabledFlag {
	case "":
		cfg.Enabled = os.Getenv("DRAWINGS_ENABLED") != "false"
	case "true":
		cfg.Enabled = true
	case "false":
		cfg.Enabled = false
	default:
		return Config{}, errors.New("enabled must be true or false")
	}

	return cfg, nil
}

func envInt(key string, fallback int) int {
	if s := os.Getenv(key); s != "" {
		if n, err := strconv.Atoi(s); err == nil {
			return n
		}
	}
	return fallback
}

func envDuration(key string, fallback time.Duration) time.Duration {
	if s := os.Getenv(key); s != "" {
		if d, err := time.ParseDuration(s); err == nil {
			return d
		}
	}
	return fallback
}
