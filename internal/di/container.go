package di

import (
	"context"
	"errors"
	"fmt"
	"io/fs"

	"gorm.io/gorm"

	"github.com/pep299/template-blog-publisher/internal/archive"
	"github.com/pep299/template-blog-publisher/internal/config"
	"github.com/pep299/template-blog-publisher/internal/handlers"
	"github.com/pep299/template-blog-publisher/internal/logger"
	"github.com/pep299/template-blog-publisher/internal/media"
	"github.com/pep299/template-blog-publisher/internal/openai"
	"github.com/pep299/template-blog-publisher/internal/publisher"
	"github.com/pep299/template-blog-publisher/internal/slack"
	"github.com/pep299/template-blog-publisher/internal/templates"
	"github.com/pep299/template-blog-publisher/internal/wordpress"
)

// Container holds all dependencies
type Container struct {
	Config    *config.Config
	Logger    *logger.Logger
	DB        *gorm.DB
	Store     *wordpress.Store
	OpenAI    *openai.Client
	Images    *media.Provisioner
	Mirror    *media.BucketMirror
	Drafts    archive.Store
	Catalog   *templates.Catalog
	Publisher *publisher.Service
}

// NewContainer creates a new dependency container
func NewContainer(ctx context.Context, cfg *config.Config, log *logger.Logger) (*Container, error) {
	c := &Container{Config: cfg, Logger: log}

	catalog, err := templates.Load(cfg.TemplatesFile)
	if errors.Is(err, fs.ErrNotExist) {
		log.Warn("templates file not found, using built-in catalog", "path", cfg.TemplatesFile)
		catalog, err = templates.Default(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("loading templates: %w", err)
	}
	c.Catalog = catalog

	db, err := wordpress.Open(cfg.MySQLDSN)
	if err != nil {
		return nil, err
	}
	c.DB = db
	c.Store = wordpress.NewStore(db, wordpress.Options{
		TermIDFloor:    uint64(cfg.TermIDFloor),
		AuthorID:       uint64(cfg.PostAuthorID),
		UploadsBaseURL: cfg.UploadsBaseURL,
	})

	if err := c.Store.EnsureTemplateTable(ctx); err != nil {
		c.Close()
		return nil, err
	}
	seeded, err := c.Store.SeedTemplates(ctx, catalog.Entries)
	if err != nil {
		c.Close()
		return nil, err
	}
	if seeded > 0 {
		log.Info("seeded blog templates", "count", seeded)
	}

	c.OpenAI = openai.NewClient(openai.Options{
		APIKey:     cfg.OpenAIAPIKey,
		BaseURL:    cfg.OpenAIBaseURL,
		Model:      cfg.OpenAIModel,
		ImageModel: cfg.OpenAIImageModel,
		ImageSize:  cfg.OpenAIImageSize,
	})

	var mediaOpts []media.Option
	if cfg.ImageMirrorBucket != "" {
		mirror, err := media.NewBucketMirror(ctx, cfg.ImageMirrorBucket, "uploads/")
		if err != nil {
			c.Close()
			return nil, fmt.Errorf("creating image mirror: %w", err)
		}
		c.Mirror = mirror
		mediaOpts = append(mediaOpts, media.WithMirror(mirror))
	}
	c.Images = media.NewProvisioner(c.OpenAI, media.Config{
		UploadsDir:  cfg.UploadsDir,
		BaseURL:     cfg.UploadsBaseURL,
		JPEGQuality: cfg.ImageJPEGQuality,
	}, log, mediaOpts...)

	if cfg.ArchiveBucket != "" {
		drafts, err := archive.NewCloudStorage(ctx, cfg.ArchiveBucket)
		if err != nil {
			c.Close()
			return nil, fmt.Errorf("creating draft archive: %w", err)
		}
		c.Drafts = drafts
	} else {
		c.Drafts = archive.NewMemoryStore()
	}

	var pubOpts []publisher.Option
	if cfg.SlackBotToken != "" {
		pubOpts = append(pubOpts, publisher.WithNotifier(slack.NewClient(cfg.SlackBotToken, cfg.SlackChannel)))
	}
	c.Publisher = publisher.NewService(c.Store, c.OpenAI, c.Images, c.Drafts, cfg.OpenAISystemPrompt, log, pubOpts...)
	return c, nil
}

// Server builds the HTTP API over the container's services.
func (c *Container) Server() *handlers.Server {
	return handlers.NewServer(c.Publisher, c.Drafts, c.Logger, handlers.Options{
		AuthToken:   c.Config.WebhookAuthToken,
		CORSOrigins: c.Config.CORSOrigins,
	})
}

// Close cleans up resources
func (c *Container) Close() error {
	var errs []error
	if c.Drafts != nil {
		errs = append(errs, c.Drafts.Close())
	}
	if c.Mirror != nil {
		errs = append(errs, c.Mirror.Close())
	}
	if c.Store != nil {
		errs = append(errs, c.Store.Close())
	}
	return errors.Join(errs...)
}
