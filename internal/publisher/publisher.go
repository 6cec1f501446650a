package publisher

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/pep299/template-blog-publisher/internal/archive"
	"github.com/pep299/template-blog-publisher/internal/logger"
	"github.com/pep299/template-blog-publisher/internal/media"
	"github.com/pep299/template-blog-publisher/internal/render"
	"github.com/pep299/template-blog-publisher/internal/schema"
	"github.com/pep299/template-blog-publisher/internal/wordpress"
)

// Store is the WordPress persistence used by a run.
type Store interface {
	NextUnprocessedTerm(ctx context.Context) (wordpress.Term, error)
	NextTemplate(ctx context.Context, category string) (wordpress.BlogTemplate, error)
	MarkTemplateTaken(ctx context.Context, kind string) (int64, error)
	MarkTermProcessed(ctx context.Context, termID uint64) error
	CreatePost(ctx context.Context, title, content string) (uint64, error)
	CreateImageAttachment(ctx context.Context, fileName string, postID uint64, year, month int) (uint64, error)
	AssignCategory(ctx context.Context, termID, postID uint64) error
	AssignImage(ctx context.Context, postID, attachmentID uint64, relPath string) error
}

// Generator produces a raw JSON document for a kind's schema.
type Generator interface {
	GenerateDocument(ctx context.Context, system, user, name string, schema any) ([]byte, error)
}

// Images provisions images and reports the file stored by the last call.
type Images interface {
	render.ImageProvider
	TakeLastImage() (media.StoredImage, bool)
}

// Notifier is told about the outcome of every run.
type Notifier interface {
	Published(ctx context.Context, res *Result) error
	Failed(ctx context.Context, res *Result, err error) error
}

// Result summarizes one publishing run.
type Result struct {
	RunID        string      `json:"run_id"`
	PostID       uint64      `json:"post_id"`
	AttachmentID uint64      `json:"attachment_id,omitempty"`
	TermID       uint64      `json:"term_id"`
	Category     string      `json:"category"`
	Kind         schema.Kind `json:"kind"`
	Title        string      `json:"title"`
}

type Service struct {
	store        Store
	generator    Generator
	images       Images
	renderer     *render.Renderer
	archive      archive.Store
	systemPrompt string
	notifier     Notifier
	logger       *logger.Logger
	now          func() time.Time

	mu sync.Mutex
}

type Option func(*Service)

// WithNotifier reports run outcomes to n. Notification errors are logged.
func WithNotifier(n Notifier) Option {
	return func(s *Service) { s.notifier = n }
}

// NewService wires a publisher. drafts may be nil to disable archiving.
func NewService(store Store, generator Generator, images Images, drafts archive.Store, systemPrompt string, log *logger.Logger, opts ...Option) *Service {
	if log == nil {
		log = logger.NewNop()
	}
	s := &Service{
		store:        store,
		generator:    generator,
		images:       images,
		renderer:     render.NewRenderer(images, log),
		archive:      drafts,
		systemPrompt: systemPrompt,
		logger:       log.With("service", "publisher"),
		now:          time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Run publishes one post: it picks the next category and template,
// generates and renders the document, and records it in WordPress. Runs
// are serialized.
func (s *Service) Run(ctx context.Context) (*Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	res := &Result{RunID: uuid.NewString()}
	log := s.logger.With("run_id", res.RunID)

	err := s.run(ctx, log, res)
	s.notify(ctx, log, res, err)
	if err != nil {
		return nil, err
	}
	return res, nil
}

func (s *Service) run(ctx context.Context, log *logger.Logger, res *Result) error {
	term, err := s.store.NextUnprocessedTerm(ctx)
	if err != nil {
		return fmt.Errorf("fetching next term: %w", err)
	}
	res.TermID = term.ID
	res.Category = term.Description

	tmpl, err := s.store.NextTemplate(ctx, term.Description)
	if err != nil {
		return fmt.Errorf("fetching blog template: %w", err)
	}
	kind := schema.Resolve(tmpl.Kind)
	res.Kind = kind
	if string(kind) != tmpl.Kind {
		log.Warn("unknown template kind, using general", "template_kind", tmpl.Kind)
	}
	log.Info("starting run", "term_id", term.ID, "term", term.Name, "kind", kind)

	raw, err := s.generator.GenerateDocument(ctx, s.systemPrompt, tmpl.Prompt, string(kind), schema.JSONSchema(kind))
	if err != nil {
		return fmt.Errorf("generating document: %w", err)
	}

	// Drop any image left over from a run that failed after provisioning.
	s.images.TakeLastImage()

	post, err := s.renderer.RenderRaw(ctx, raw, tmpl.Kind, term.Description)
	if err != nil {
		s.saveDraft(ctx, log, res, raw, render.Post{}, err)
		return fmt.Errorf("rendering document: %w", err)
	}
	res.Title = post.Title

	postID, err := s.store.CreatePost(ctx, post.Title, post.Markup)
	if err != nil {
		return fmt.Errorf("creating post: %w", err)
	}
	res.PostID = postID

	if _, err := s.store.MarkTemplateTaken(ctx, tmpl.Kind); err != nil {
		return fmt.Errorf("marking template taken: %w", err)
	}
	if err := s.store.AssignCategory(ctx, term.ID, postID); err != nil {
		return fmt.Errorf("assigning category: %w", err)
	}
	if err := s.store.MarkTermProcessed(ctx, term.ID); err != nil {
		return fmt.Errorf("marking term processed: %w", err)
	}

	if post.HasImage {
		if img, ok := s.images.TakeLastImage(); ok {
			attachmentID, err := s.store.CreateImageAttachment(ctx, img.FileName, postID, img.Year, img.Month)
			if err != nil {
				return fmt.Errorf("creating image attachment: %w", err)
			}
			if err := s.store.AssignImage(ctx, postID, attachmentID, img.RelPath); err != nil {
				return fmt.Errorf("assigning featured image: %w", err)
			}
			res.AttachmentID = attachmentID
		}
	}

	s.saveDraft(ctx, log, res, raw, post, nil)
	log.Info("post published", "post_id", postID, "attachment_id", res.AttachmentID, "title", post.Title)
	return nil
}

func (s *Service) notify(ctx context.Context, log *logger.Logger, res *Result, runErr error) {
	if s.notifier == nil {
		return
	}
	var err error
	if runErr != nil {
		err = s.notifier.Failed(ctx, res, runErr)
	} else {
		err = s.notifier.Published(ctx, res)
	}
	if err != nil {
		log.Warn("run notification failed", "error", err)
	}
}

func (s *Service) saveDraft(ctx context.Context, log *logger.Logger, res *Result, raw []byte, post render.Post, runErr error) {
	if s.archive == nil {
		return
	}
	entry := archive.Entry{
		ID:        res.RunID,
		Kind:      string(res.Kind),
		Category:  res.Category,
		Title:     post.Title,
		Markup:    post.Markup,
		PostID:    res.PostID,
		CreatedAt: s.now(),
	}
	if json.Valid(raw) {
		entry.Raw = json.RawMessage(raw)
	} else {
		entry.Raw, _ = json.Marshal(string(raw))
	}
	if runErr != nil {
		entry.Error = runErr.Error()
	}
	if err := s.archive.Put(ctx, entry); err != nil {
		log.Warn("archiving draft failed", "error", err)
	}
}
