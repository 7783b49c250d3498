package file

import (
	"bytes"
	"fmt"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/custodia-labs/newsroom/internal/core/domain"
)

// dateLayout is ISO 8601 in UTC with millisecond precision.
const dateLayout = "2006-01-02T15:04:05.000Z07:00"

const delimiter = "---"

// RenderArticle returns the complete file content: front-matter between
// "---" lines, a blank line, then the body.
func RenderArticle(fm domain.FrontMatter, body string) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString(delimiter + "\n")

	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(frontMatterNode(fm)); err != nil {
		return nil, fmt.Errorf("encode front-matter: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("encode front-matter: %w", err)
	}

	buf.WriteString(delimiter + "\n\n")
	buf.WriteString(body)
	buf.WriteString("\n")
	return buf.Bytes(), nil
}

// frontMatterNode builds the document by hand so that every scalar is
// double-quoted and tags render as a flow sequence.
func frontMatterNode(fm domain.FrontMatter) *yaml.Node {
	tags := &yaml.Node{Kind: yaml.SequenceNode, Style: yaml.FlowStyle}
	for _, t := range fm.Tags {
		tags.Content = append(tags.Content, quoted(t))
	}

	theme := mapping(
		"background", quoted(fm.Theme.Background),
		"secondary", quoted(fm.Theme.Secondary),
		"primary", quoted(fm.Theme.Primary),
		"accent_red", quoted(fm.Theme.AccentRed),
		"accent_gold", quoted(fm.Theme.AccentGold),
	)

	return mapping(
		"title", quoted(fm.Title),
		"date", quoted(fm.Date.UTC().Format(dateLayout)),
		"tags", tags,
		"hero_image", quoted(fm.HeroImage),
		"brand_logo", quoted(fm.BrandLogo),
		"theme", theme,
	)
}

func quoted(v string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: v, Style: yaml.DoubleQuotedStyle}
}

// mapping pairs keys with value nodes, in order.
func mapping(pairs ...any) *yaml.Node {
	n := &yaml.Node{Kind: yaml.MappingNode}
	for i := 0; i < len(pairs); i += 2 {
		n.Content = append(n.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: pairs[i].(string)},
			pairs[i+1].(*yaml.Node),
		)
	}
	return n
}

// rawFrontMatter mirrors domain.FrontMatter with the date kept as text.
type rawFrontMatter struct {
	Title     string       `yaml:"title"`
	Date      string       `yaml:"date"`
	Tags      []string     `yaml:"tags"`
	HeroImage string       `yaml:"hero_image"`
	BrandLogo string       `yaml:"brand_logo"`
	Theme     domain.Theme `yaml:"theme"`
}

// ParseArticle splits file content into front-matter and body.
func ParseArticle(content []byte) (domain.FrontMatter, string, error) {
	rest, ok := bytes.CutPrefix(content, []byte(delimiter+"\n"))
	if !ok {
		return domain.FrontMatter{}, "", fmt.Errorf("%w: missing front-matter", domain.ErrInvalidInput)
	}
	header, body, ok := bytes.Cut(rest, []byte("\n"+delimiter+"\n"))
	if !ok {
		return domain.FrontMatter{}, "", fmt.Errorf("%w: unterminated front-matter", domain.ErrInvalidInput)
	}

	var raw rawFrontMatter
	if err := yaml.Unmarshal(header, &raw); err != nil {
		return domain.FrontMatter{}, "", fmt.Errorf("%w: %w", domain.ErrInvalidInput, err)
	}

	fm := domain.FrontMatter{
		Title:     raw.Title,
		Tags:      raw.Tags,
		HeroImage: raw.HeroImage,
		BrandLogo: raw.BrandLogo,
		Theme:     raw.Theme,
	}
	if raw.Date != "" {
		date, err := time.Parse(time.RFC3339Nano, raw.Date)
		if err != nil {
			return domain.FrontMatter{}, "", fmt.Errorf("%w: date: %w", domain.ErrInvalidInput, err)
		}
		fm.Date = date
	}

	return fm, string(bytes.TrimPrefix(body, []byte("\n"))), nil
}
