package internal

import (
	"log/slog"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/starford/wikisync/internal/models"
	"github.com/starford/wikisync/internal/parser"
	"github.com/starford/wikisync/internal/render"
	"github.com/starford/wikisync/internal/wiki"
)

// DefaultPreamble heads every generated index.
const DefaultPreamble = `# A collection of various DROID tricks

DROID tricks contains a list of various tricks tricks for the [DROID Universal CV Processor](https://shop.dermannmitdermaschine.de/pages/droid-universal-cv-processor).

Anyone can add their own tricks to this repository, and it's very simple.

Just add a page to the [Wiki](../../wiki/).

For more information about how to do this, see the wiki page about [Contributing](../../wiki/Contributing).

# DROID tricks`

// Config represents the application configuration.
type Config struct {
	App    ApplicationConfig `yaml:"app"`
	Wiki   WikiConfig        `yaml:"wiki"`
	Output OutputConfig      `yaml:"output"`
	Index  IndexConfig       `yaml:"index"`
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if err := c.Wiki.Validate(); err != nil {
		return err
	}
	if err := c.Output.Validate(); err != nil {
		return err
	}
	return c.Index.Validate()
}

// ApplicationConfig holds application-level configuration.
type ApplicationConfig struct {
	LogLevel slog.Level `yaml:"log_level"`
}

// WikiConfig describes the wiki checkout being indexed.
type WikiConfig struct {
	Path            string   `yaml:"path"`
	CategoriesFile  string   `yaml:"categories_file"`
	DefaultCategory string   `yaml:"default_category"`
	SkipFiles       []string `yaml:"skip_files"`
}

// Validate validates the wiki configuration.
func (c *WikiConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Path, validation.Required),
		validation.Field(&c.CategoriesFile, validation.Required),
		validation.Field(&c.DefaultCategory, validation.Required, validation.By(categoryName)),
	)
}

// Options converts the section into loader options.
func (c *WikiConfig) Options() wiki.Options {
	return wiki.Options{
		CategoriesFile:  c.CategoriesFile,
		DefaultCategory: c.DefaultCategory,
		SkipFiles:       c.SkipFiles,
	}
}

// OutputConfig holds the location of the generated index.
type OutputConfig struct {
	Path string `yaml:"path"`
}

// Validate validates the output configuration.
func (c *OutputConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Path, validation.Required),
	)
}

// IndexConfig controls how the index is rendered.
type IndexConfig struct {
	LinkBase     string `yaml:"link_base"`
	Previews     bool   `yaml:"previews"`
	PreviewLevel int    `yaml:"preview_level"`
	Preamble     string `yaml:"preamble"`
}

// Validate validates the index configuration.
func (c *IndexConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.LinkBase, validation.Required),
		validation.Field(&c.PreviewLevel, validation.Min(0), validation.Max(5)),
	)
}

func categoryName(value interface{}) error {
	s, _ := value.(string)
	if !parser.ValidCategory(s) {
		return validation.NewError("validation_category_name", "must contain only word characters")
	}
	return nil
}

// NewDefaultConfig returns a new Config with sensible default values.
func NewDefaultConfig() *Config {
	opts := wiki.DefaultOptions()
	return &Config{
		App: ApplicationConfig{
			LogLevel: slog.LevelInfo,
		},
		Wiki: WikiConfig{
			Path:            "droid-tricks.wiki",
			CategoriesFile:  opts.CategoriesFile,
			DefaultCategory: models.DefaultCategory,
			SkipFiles:       opts.SkipFiles,
		},
		Output: OutputConfig{
			Path: "README.md",
		},
		Index: IndexConfig{
			LinkBase:     render.DefaultLinkBase,
			PreviewLevel: 3,
			Preamble:     DefaultPreamble,
		},
	}
}
