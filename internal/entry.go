// Package internal wires the wiki loaders, renderer, and writer into the
// generate, check, and watch runs.
package internal

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/sync/errgroup"

	"github.com/starford/wikisync/internal/apperr"
	"github.com/starford/wikisync/internal/render"
	"github.com/starford/wikisync/internal/storage"
	"github.com/starford/wikisync/internal/watch"
	"github.com/starford/wikisync/internal/wiki"
)

func newApplication(opts ...Option) (*application, error) {
	app := &application{}

	for _, opt := range opts {
		opt(app)
	}

	if app.config == nil {
		return nil, fmt.Errorf("config is required")
	}

	if app.logger == nil {
		// stdout is reserved for the diagnostic printed by the CLI.
		app.logger = slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
			Level: app.config.App.LogLevel,
		}))
		slog.SetDefault(app.logger)
	}

	app.logger.Debug("Configuration loaded",
		slog.String("wiki_path", app.config.Wiki.Path),
		slog.String("output_path", app.config.Output.Path),
		slog.Bool("previews", app.config.Index.Previews),
		slog.String("log_level", app.config.App.LogLevel.String()))

	return app, nil
}

// build loads the wiki and renders the complete index document.
func (a *application) build() ([]byte, storage.Provider, error) {
	cfg := a.config

	store, err := storage.NewFS(cfg.Wiki.Path)
	if err != nil {
		return nil, nil, err
	}

	wikiOpts := cfg.Wiki.Options()
	categories, err := wiki.LoadCategories(store, wikiOpts)
	if err != nil {
		return nil, nil, err
	}
	snippets, err := wiki.LoadSnippets(store, wikiOpts)
	if err != nil {
		return nil, nil, err
	}

	listing := render.Index(categories, snippets, render.Options{
		LinkBase:        cfg.Index.LinkBase,
		DefaultCategory: cfg.Wiki.DefaultCategory,
		Previews:        cfg.Index.Previews,
		PreviewLevel:    cfg.Index.PreviewLevel,
	})

	a.logger.Info("Wiki loaded",
		slog.Int("categories", len(categories)-1),
		slog.Int("snippets", len(snippets)))

	return []byte(render.Document(cfg.Index.Preamble, listing)), store, nil
}

// generate renders the index and writes it out. With skipUnchanged set, an
// output file that already holds the same bytes is left alone.
func (a *application) generate(skipUnchanged bool) error {
	doc, _, err := a.build()
	if err != nil {
		return err
	}

	out := a.config.Output.Path
	sum := storage.Checksum(doc)
	if skipUnchanged {
		if existing, err := os.ReadFile(out); err == nil && storage.Checksum(existing) == sum {
			a.logger.Debug("Index unchanged", slog.String("path", out))
			return nil
		}
	}

	if err := storage.WriteFile(out, doc); err != nil {
		return fmt.Errorf("write index: %w", err)
	}

	a.logger.Info("Index written",
		slog.String("path", out),
		slog.String("checksum", sum),
		slog.Int("bytes", len(doc)))
	return nil
}

// Generate builds the index from the configured wiki and overwrites the
// output file.
func Generate(_ context.Context, opts ...Option) error {
	app, err := newApplication(opts...)
	if err != nil {
		return err
	}
	return app.generate(false)
}

// Check renders the index in memory and compares it with the output file.
// It returns apperr.ErrStale when they differ and apperr.ErrBrokenLinks when
// the output links to wiki pages that do not exist.
func Check(_ context.Context, opts ...Option) error {
	app, err := newApplication(opts...)
	if err != nil {
		return err
	}
	cfg := app.config

	doc, store, err := app.build()
	if err != nil {
		return err
	}

	existing, err := os.ReadFile(cfg.Output.Path)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("read index: %w", err)
	}

	var missing []string
	for _, page := range render.WikiLinks(existing, cfg.Index.LinkBase) {
		if !store.Exists(page + ".md") {
			missing = append(missing, page)
		}
	}

	var errs []error
	if !bytes.Equal(doc, existing) {
		app.logger.Warn("Index is stale",
			slog.String("path", cfg.Output.Path),
			slog.String("want_checksum", storage.Checksum(doc)),
			slog.String("have_checksum", storage.Checksum(existing)))
		errs = append(errs, fmt.Errorf("%s: %w", cfg.Output.Path, apperr.ErrStale))
	}
	if len(missing) > 0 {
		app.logger.Warn("Index has broken wiki links", slog.Any("pages", missing))
		errs = append(errs, fmt.Errorf("%s: %v: %w", cfg.Output.Path, missing, apperr.ErrBrokenLinks))
	}
	if len(errs) > 0 {
		return errors.Join(errs...)
	}

	app.logger.Info("Index is up to date", slog.String("path", cfg.Output.Path))
	return nil
}

// Watch generates the index once, then regenerates it whenever a page in the
// wiki directory changes, until ctx is cancelled or SIGINT/SIGTERM arrives.
// Every regeneration is a full run.
func Watch(ctx context.Context, opts ...Option) error {
	app, err := newApplication(opts...)
	if err != nil {
		return err
	}
	logger := app.logger
	cfg := app.config

	if err := app.generate(true); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, gCtx := errgroup.WithContext(ctx)
	changes := make(chan string, 1)

	g.Go(func() error {
		return watch.Run(gCtx, cfg.Wiki.Path, logger, watch.Options{
			Ignore: []string{cfg.Output.Path},
		}, changes)
	})

	g.Go(func() error {
		for page := range changes {
			logger.Info("Wiki changed, regenerating", slog.String("page", page))
			if err := app.generate(true); err != nil {
				if errors.Is(err, apperr.ErrInvalidWiki) {
					return err
				}
				logger.Error("Regeneration failed", slog.String("error", err.Error()))
			}
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		logger.Error("Watch stopped", slog.String("error", err.Error()))
		return err
	}

	logger.Info("Watch stopped")
	return nil
}
