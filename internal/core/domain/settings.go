package domain

import "time"

// Default settings values. These mirror the behaviour of the original
// newsroom script so an empty configuration still produces a working run.
const (
	DefaultLeagueID      = "1228186433580171264"
	DefaultSport         = "nba"
	DefaultProviderURL   = "https://api.sleeper.app/v1"
	DefaultUserAgent     = "rabkl-bot"
	DefaultRoundsWindow  = 6
	DefaultSeasonLength  = 30
	DefaultMaxEvents     = 5
	DefaultContentDir    = "content"
	DefaultBrand         = "RABKL"
	DefaultHeroImage     = "/images/trade-hero.png"
	DefaultBrandLogo     = "/brand/logo.svg"
	DefaultLLMModel      = "gpt-4o-mini"
	DefaultLLMBaseURL    = "https://api.openai.com/v1"
	DefaultRepoOwner     = "johnnybassanelli"
	DefaultRepoName      = "RABKL-newsroom"
	DefaultBranch        = "main"
	DefaultListenAddr    = ":8080"
	DefaultPlayerTTL     = 24 * time.Hour
	DefaultArchivePrefix = "articles"
)

// LeagueSettings configures the league data provider.
type LeagueSettings struct {
	ID                  string `toml:"id" validate:"required"`
	Sport               string `toml:"sport" validate:"required"`
	BaseURL             string `toml:"base_url" validate:"required,url"`
	UserAgent           string `toml:"user_agent"`
	RoundsWindow        int    `toml:"rounds_window" validate:"min=1"`
	DefaultSeasonLength int    `toml:"default_season_length" validate:"min=1"`
}

// NewsroomSettings configures article generation.
type NewsroomSettings struct {
	ContentDir string `toml:"content_dir" validate:"required"`
	MaxEvents  int    `toml:"max_events" validate:"min=1"`
	Brand      string `toml:"brand"`
	HeroImage  string `toml:"hero_image"`
	BrandLogo  string `toml:"brand_logo"`
	Theme      Theme  `toml:"theme"`
}

// LLMSettings configures the delegated copy strategy.
// An empty APIKey selects the template strategy.
type LLMSettings struct {
	APIKey    string `toml:"api_key"`
	BaseURL   string `toml:"base_url" validate:"omitempty,url"`
	Model     string `toml:"model"`
	PromptDir string `toml:"prompt_dir"`
}

// PublishSettings configures the content repository and deploy hook.
type PublishSettings struct {
	GitHubToken string `toml:"github_token"`
	Owner       string `toml:"owner"`
	Repo        string `toml:"repo"`
	Branch      string `toml:"branch"`
	DeployHook  string `toml:"deploy_hook" validate:"omitempty,url"`
	ListenAddr  string `toml:"listen_addr"`
}

// CacheSettings configures the optional player dictionary cache.
// An empty Path disables caching.
type CacheSettings struct {
	Path string `toml:"path"`

	// TTLText is the raw "ttl" value (a Go duration string, e.g. "24h").
	TTLText string        `toml:"ttl"`
	TTL     time.Duration `toml:"-"`
}

// ArchiveSettings configures the optional S3 mirror of written articles.
// An empty Bucket disables archiving.
type ArchiveSettings struct {
	Bucket         string `toml:"bucket"`
	Region         string `toml:"region" validate:"required_with=Bucket"`
	Endpoint       string `toml:"endpoint" validate:"omitempty,url"`
	AccessKey      string `toml:"access_key"`
	SecretKey      string `toml:"secret_key"`
	Prefix         string `toml:"prefix"`
	ForcePathStyle bool   `toml:"force_path_style"`
}

// SyncMapping copies one content tree into the site's page tree.
type SyncMapping struct {
	From string `toml:"from" validate:"required"`
	To   string `toml:"to" validate:"required"`
}

// DefaultSyncMappings returns the stock content-to-pages mappings.
func DefaultSyncMappings() []SyncMapping {
	return []SyncMapping{
		{From: "./content", To: "./src/pages/posts"},
		{From: "./content/power-index", To: "./src/pages/power-index"},
		{From: "./content/recap", To: "./src/pages/recap"},
	}
}

// Settings is the full process configuration, built once at start-up
// and passed down explicitly.
type Settings struct {
	League   LeagueSettings   `toml:"league"`
	Newsroom NewsroomSettings `toml:"newsroom"`
	LLM      LLMSettings      `toml:"llm"`
	Publish  PublishSettings  `toml:"publish"`
	Cache    CacheSettings    `toml:"cache"`
	Archive  ArchiveSettings  `toml:"archive"`
	Sync     []SyncMapping    `toml:"sync" validate:"dive"`
}

// DefaultSettings returns settings with every documented fallback applied.
func DefaultSettings() Settings {
	s := Settings{}
	s.ApplyDefaults()
	return s
}

// ApplyDefaults fills zero-valued fields with their documented fallbacks.
func (s *Settings) ApplyDefaults() {
	setDefault(&s.League.ID, DefaultLeagueID)
	setDefault(&s.League.Sport, DefaultSport)
	setDefault(&s.League.BaseURL, DefaultProviderURL)
	setDefault(&s.League.UserAgent, DefaultUserAgent)
	if s.League.RoundsWindow == 0 {
		s.League.RoundsWindow = DefaultRoundsWindow
	}
	if s.League.DefaultSeasonLength == 0 {
		s.League.DefaultSeasonLength = DefaultSeasonLength
	}

	setDefault(&s.Newsroom.ContentDir, DefaultContentDir)
	if s.Newsroom.MaxEvents == 0 {
		s.Newsroom.MaxEvents = DefaultMaxEvents
	}
	setDefault(&s.Newsroom.Brand, DefaultBrand)
	setDefault(&s.Newsroom.HeroImage, DefaultHeroImage)
	setDefault(&s.Newsroom.BrandLogo, DefaultBrandLogo)
	theme := DefaultTheme()
	setDefault(&s.Newsroom.Theme.Background, theme.Background)
	setDefault(&s.Newsroom.Theme.Secondary, theme.Secondary)
	setDefault(&s.Newsroom.Theme.Primary, theme.Primary)
	setDefault(&s.Newsroom.Theme.AccentRed, theme.AccentRed)
	setDefault(&s.Newsroom.Theme.AccentGold, theme.AccentGold)

	setDefault(&s.LLM.BaseURL, DefaultLLMBaseURL)
	setDefault(&s.LLM.Model, DefaultLLMModel)

	setDefault(&s.Publish.Owner, DefaultRepoOwner)
	setDefault(&s.Publish.Repo, DefaultRepoName)
	setDefault(&s.Publish.Branch, DefaultBranch)
	setDefault(&s.Publish.ListenAddr, DefaultListenAddr)

	if s.Cache.TTL == 0 {
		s.Cache.TTL = DefaultPlayerTTL
	}
	setDefault(&s.Archive.Prefix, DefaultArchivePrefix)

	if len(s.Sync) == 0 {
		s.Sync = DefaultSyncMappings()
	}
}

// LLMConfigured reports whether the delegated copy strategy can be used.
func (s *Settings) LLMConfigured() bool {
	return s.LLM.APIKey != ""
}

// PublishConfigured reports whether both publish secrets are present.
func (s *Settings) PublishConfigured() bool {
	return s.Publish.GitHubToken != "" && s.Publish.DeployHook != ""
}

// PlayerCacheEnabled reports whether the player dictionary is cached.
func (s *Settings) PlayerCacheEnabled() bool {
	return s.Cache.Path != ""
}

// ArchiveConfigured reports whether articles are mirrored to object storage.
func (s *Settings) ArchiveConfigured() bool {
	return s.Archive.Bucket != ""
}

func setDefault(field *string, value string) {
	if *field == "" {
		*field = value
	}
}
