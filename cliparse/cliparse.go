package cliparse

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/google/uuid"
)

// Store backends
const (
	BackendGitHub = "github"
	BackendSQL    = "sql"
	BackendMemory = "memory"
)

type Config struct {
	Port int

	StoreBackend string
	GitHubAPIURL string
	GitHubOwner  string
	GitHubRepo   string
	GitHubBranch string
	GitHubToken  string
	DatabaseURL  string
	DatabaseType string

	SubmissionsPath string
	RosterDir       string
	LayoutFile      string
	RequestTimeout  time.Duration
	MaxAttempts     int
	IPHashSalt      string
	TrustProxy      bool
}

// ParseFlags validates flags and fills the rest from the environment
func ParseFlags(args []string) (Config, error) {
	var cfg Config

	fs := flag.NewFlagSet("gridvote", flag.ContinueOnError)

	// Network config (can be CLI args or env)
	fs.IntVar(&cfg.Port, "p", 0, "Server port")
	fs.StringVar(&cfg.StoreBackend, "store", "", "Store backend (github, sql or memory)")
	fs.StringVar(&cfg.DatabaseURL, "d", "", "Database URL (sql backend)")
	fs.StringVar(&cfg.DatabaseType, "t", "", "Database type (sqlite or postgres)")
	fs.StringVar(&cfg.GitHubAPIURL, "github-api", "", "GitHub API base URL")
	fs.StringVar(&cfg.GitHubOwner, "owner", "", "Repository owner (github backend)")
	fs.StringVar(&cfg.GitHubRepo, "repo", "", "Repository name (github backend)")
	fs.StringVar(&cfg.GitHubBranch, "branch", "", "Repository branch (github backend)")

	// Data files
	fs.StringVar(&cfg.SubmissionsPath, "submissions", "", "Submission log path in the store")
	fs.StringVar(&cfg.RosterDir, "rosters", "", "Directory holding {team}.csv player lists")
	fs.StringVar(&cfg.LayoutFile, "layout", "", "YAML grid layout (built-in layout when empty)")

	// Write behavior
	fs.DurationVar(&cfg.RequestTimeout, "timeout", 0, "Timeout per store request")
	fs.IntVar(&cfg.MaxAttempts, "max-attempts", 0, "Append attempts before a version conflict is reported")

	// Secrets (prefer env variables, but allow CLI for dev)
	fs.StringVar(&cfg.IPHashSalt, "ip-salt", "", "Client IP hash salt (prefer env)")
	fs.BoolVar(&cfg.TrustProxy, "trust-proxy", false, "Take client IPs from X-Forwarded-For/X-Real-IP")

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
			cfg.Port = 3318 // default
		}
	}

	fallback(&cfg.StoreBackend, "STORE_BACKEND", BackendGitHub)
	fallback(&cfg.SubmissionsPath, "SUBMISSIONS_PATH", "submissions.csv")
	fallback(&cfg.RosterDir, "ROSTER_DIR", "data")
	fallback(&cfg.LayoutFile, "LAYOUT_FILE", "")
	fallback(&cfg.IPHashSalt, "IP_HASH_SALT", "")

	if !cfg.TrustProxy {
		if s := os.Getenv("TRUST_PROXY"); s != "" {
			trust, err := strconv.ParseBool(s)
			if err != nil {
				return Config{}, errors.New("invalid TRUST_PROXY env variable")
			}
			cfg.TrustProxy = trust
		}
	}

	if cfg.RequestTimeout == 0 {
		if s := os.Getenv("REQUEST_TIMEOUT"); s != "" {
			d, err := time.ParseDuration(s)
			if err != nil {
				return Config{}, errors.New("invalid REQUEST_TIMEOUT env variable")
			}
			cfg.RequestTimeout = d
		} else {
			cfg.RequestTimeout = 10 * time.Second
		}
	}
	if cfg.RequestTimeout < 0 {
		return Config{}, errors.New("timeout must not be negative")
	}

	if cfg.MaxAttempts == 0 {
		if s := os.Getenv("MAX_ATTEMPTS"); s != "" {
			n, err := strconv.Atoi(s)
			if err != nil {
				return Config{}, errors.New("invalid MAX_ATTEMPTS env variable")
			}
			cfg.MaxAttempts = n
		} else {
			cfg.MaxAttempts = 2
		}
	}
	if cfg.MaxAttempts < 1 {
		return Config{}, errors.New("max attempts must be at least 1")
	}

	switch cfg.StoreBackend {
	case BackendGitHub:
		fallback(&cfg.GitHubAPIURL, "GITHUB_API_URL", "https://api.github.com")
		fallback(&cfg.GitHubOwner, "GITHUB_OWNER", "")
		fallback(&cfg.GitHubRepo, "GITHUB_REPO", "")
		fallback(&cfg.GitHubBranch, "GITHUB_BRANCH", "main")

		// The write credential stays server-side and is never taken from flags
		cfg.GitHubToken = os.Getenv("GITHUB_TOKEN")

		if cfg.GitHubOwner == "" || cfg.GitHubRepo == "" {
			return Config{}, errors.New("repository required (use -owner/-repo or GITHUB_OWNER/GITHUB_REPO env)")
		}
		if cfg.GitHubToken == "" {
			return Config{}, errors.New("GITHUB_TOKEN required")
		}
	case BackendSQL:
		fallback(&cfg.DatabaseURL, "DATABASE_URL", "")
		fallback(&cfg.DatabaseType, "DATABASE_TYPE", "sqlite")
		if cfg.DatabaseURL == "" {
			return Config{}, errors.New("database URL required (use -d or DATABASE_URL env)")
		}
		if cfg.DatabaseType != "sqlite" && cfg.DatabaseType != "postgres" {
			return Config{}, fmt.Errorf("unsupported database type %q", cfg.DatabaseType)
		}
	case BackendMemory:
	default:
		return Config{}, fmt.Errorf("unknown store backend %q", cfg.StoreBackend)
	}

	// Hashes only need to be stable for the life of the process
	if cfg.IPHashSalt == "" {
		cfg.IPHashSalt = uuid.NewString()
	}

	return cfg, nil
}

func fallback(v *string, env, def string) {
	if *v != "" {
		return
	}
	if s := os.Getenv(env); s != "" {
		*v = s
		return
	}
	*v = def
}
