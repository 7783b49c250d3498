package domain

import "time"

// Theme holds the colour fields written into every article's front-matter.
type Theme struct {
	Background string `yaml:"background" toml:"background"`
	Secondary  string `yaml:"secondary" toml:"secondary"`
	Primary    string `yaml:"primary" toml:"primary"`
	AccentRed  string `yaml:"accent_red" toml:"accent_red"`
	AccentGold string `yaml:"accent_gold" toml:"accent_gold"`
}

// DefaultTheme returns the newsroom's stock palette.
func DefaultTheme() Theme {
	return Theme{
		Background: "#FDF6E3",
		Secondary:  "#FAF3DD",
		Primary:    "#0B1D3A",
		AccentRed:  "#B22234",
		AccentGold: "#F2B300",
	}
}

// FrontMatter is the structured header of an article file.
type FrontMatter struct {
	Title     string    `yaml:"title"`
	Date      time.Time `yaml:"date"`
	Tags      []string  `yaml:"tags"`
	HeroImage string    `yaml:"hero_image"`
	BrandLogo string    `yaml:"brand_logo"`
	Theme     Theme     `yaml:"theme"`
}

// Article is a rendered content file.
type Article struct {
	// Path is where the file was written, relative to the working directory.
	Path string

	// EventID is the source event.
	EventID string

	// FrontMatter is the header written at the top of the file.
	FrontMatter FrontMatter

	// Content is the complete file content.
	Content []byte
}
