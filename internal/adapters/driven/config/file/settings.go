package file

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml/v2"

	"github.com/custodia-labs/newsroom/internal/core/domain"
	"github.com/custodia-labs/newsroom/internal/logger"
)

// DefaultConfigFile is the settings file read when no path is given.
const DefaultConfigFile = "newsroom.toml"

// DefaultEnvFile is the dotenv file read before environment overrides.
const DefaultEnvFile = ".env"

// Loader builds domain.Settings from a TOML file, a dotenv file and the
// process environment, in that order of increasing precedence.
type Loader struct {
	// ConfigPath is the TOML file. A missing file yields defaults.
	ConfigPath string

	// EnvFile supplies values for variables that are not set in the
	// environment. A missing file is ignored.
	EnvFile string

	// Getenv reads environment variables (default: os.Getenv).
	Getenv func(string) string
}

// LoadSettings loads settings from path (or DefaultConfigFile) and ./.env.
func LoadSettings(path string) (*domain.Settings, error) {
	return (&Loader{ConfigPath: path, EnvFile: DefaultEnvFile}).Load()
}

// Load reads, overrides, defaults and validates the settings.
func (l *Loader) Load() (*domain.Settings, error) {
	getenv := l.Getenv
	if getenv == nil {
		getenv = os.Getenv
	}

	if l.EnvFile != "" {
		dotenv, err := godotenv.Read(l.EnvFile)
		if err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("load %s: %w", l.EnvFile, err)
		}
		if len(dotenv) > 0 {
			processEnv := getenv
			getenv = func(key string) string {
				if v := processEnv(key); v != "" {
					return v
				}
				return dotenv[key]
			}
		}
	}

	var settings domain.Settings

	path := l.ConfigPath
	if path == "" {
		path = DefaultConfigFile
	}
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := toml.Unmarshal(data, &settings); err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
		logger.Debug("Loaded settings from %s", path)
	case errors.Is(err, fs.ErrNotExist):
		logger.Debug("No settings file at %s, using defaults", path)
	default:
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	if err := applyEnv(&settings, getenv); err != nil {
		return nil, err
	}

	if settings.Cache.TTLText != "" {
		ttl, err := time.ParseDuration(settings.Cache.TTLText)
		if err != nil {
			return nil, fmt.Errorf("%w: cache.ttl: %w", domain.ErrInvalidInput, err)
		}
		settings.Cache.TTL = ttl
	}

	settings.ApplyDefaults()

	if err := Validate(&settings); err != nil {
		return nil, err
	}
	return &settings, nil
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate checks the settings' struct constraints.
func Validate(settings *domain.Settings) error {
	if err := validate.Struct(settings); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			fields := make([]string, 0, len(verrs))
			for _, fe := range verrs {
				fields = append(fields, fmt.Sprintf("%s (%s)", fe.Namespace(), fe.Tag()))
			}
			return fmt.Errorf("%w: settings: %s", domain.ErrInvalidInput, strings.Join(fields, ", "))
		}
		return fmt.Errorf("%w: settings: %w", domain.ErrInvalidInput, err)
	}
	return nil
}

// applyEnv overlays environment variables onto the file settings.
func applyEnv(s *domain.Settings, getenv func(string) string) error {
	strOverrides := []struct {
		key   string
		field *string
	}{
		{"SLEEPER_LEAGUE_ID", &s.League.ID},
		{"NEWSROOM_SPORT", &s.League.Sport},
		{"SLEEPER_BASE_URL", &s.League.BaseURL},
		{"NEWSROOM_CONTENT_DIR", &s.Newsroom.ContentDir},
		{"NEWSROOM_BRAND", &s.Newsroom.Brand},
		{"OPENAI_API_KEY", &s.LLM.APIKey},
		{"OPENAI_BASE_URL", &s.LLM.BaseURL},
		{"OPENAI_MODEL", &s.LLM.Model},
		{"NEWSROOM_PROMPT_DIR", &s.LLM.PromptDir},
		{"GITHUB_TOKEN", &s.Publish.GitHubToken},
		{"GITHUB_BRANCH", &s.Publish.Branch},
		{"VERCEL_DEPLOY_HOOK", &s.Publish.DeployHook},
		{"NEWSROOM_LISTEN_ADDR", &s.Publish.ListenAddr},
		{"NEWSROOM_PLAYER_CACHE", &s.Cache.Path},
		{"NEWSROOM_PLAYER_CACHE_TTL", &s.Cache.TTLText},
		{"NEWSROOM_S3_BUCKET", &s.Archive.Bucket},
		{"NEWSROOM_S3_REGION", &s.Archive.Region},
		{"NEWSROOM_S3_ENDPOINT", &s.Archive.Endpoint},
		{"NEWSROOM_S3_PREFIX", &s.Archive.Prefix},
	}
	for _, o := range strOverrides {
		if v := getenv(o.key); v != "" {
			*o.field = v
		}
	}

	if v := getenv("GITHUB_REPOSITORY"); v != "" {
		owner, repo, ok := strings.Cut(v, "/")
		if !ok || owner == "" || repo == "" {
			return fmt.Errorf("%w: GITHUB_REPOSITORY must be owner/repo, got %q", domain.ErrInvalidInput, v)
		}
		s.Publish.Owner, s.Publish.Repo = owner, repo
	}

	if v := getenv("NEWSROOM_MAX_EVENTS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%w: NEWSROOM_MAX_EVENTS: %w", domain.ErrInvalidInput, err)
		}
		s.Newsroom.MaxEvents = n
	}

	if s.Archive.Region == "" {
		s.Archive.Region = getenv("AWS_REGION")
	}
	return nil
}
