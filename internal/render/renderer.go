package render

import (
	"context"
	"errors"
	"fmt"

	"github.com/pep299/template-blog-publisher/internal/logger"
	"github.com/pep299/template-blog-publisher/internal/schema"
)

// Placeholder replaces the image fragment when provisioning fails.
const Placeholder = "<p>Image could not be generated.</p>"

// ErrImagesDisabled is returned by NoImages.
var ErrImagesDisabled = errors.New("image generation disabled")

// ImageProvider turns a prompt into an HTML image fragment.
type ImageProvider interface {
	Provision(ctx context.Context, prompt string) (string, error)
}

// ImageProviderFunc adapts a function to ImageProvider.
type ImageProviderFunc func(ctx context.Context, prompt string) (string, error)

func (f ImageProviderFunc) Provision(ctx context.Context, prompt string) (string, error) {
	return f(ctx, prompt)
}

// NoImages never produces an image; rendered posts carry the placeholder.
type NoImages struct{}

func (NoImages) Provision(context.Context, string) (string, error) {
	return "", ErrImagesDisabled
}

// Post is a rendered document.
type Post struct {
	Title    string      `json:"title"`
	Markup   string      `json:"markup"`
	Kind     schema.Kind `json:"kind"`
	HasImage bool        `json:"has_image"`
}

type Renderer struct {
	images ImageProvider
	logger *logger.Logger
}

func NewRenderer(images ImageProvider, log *logger.Logger) *Renderer {
	if images == nil {
		images = NoImages{}
	}
	if log == nil {
		log = logger.NewNop()
	}
	return &Renderer{images: images, logger: log.With("service", "render")}
}

// ImagePrompt is the prompt sent to the image provider for a render.
func ImagePrompt(category string, kind schema.Kind) string {
	return fmt.Sprintf("Image of %s in context of %s", category, kind)
}

// Render composes markup for doc. It never fails: an image error is logged
// and replaced with Placeholder.
func (r *Renderer) Render(ctx context.Context, doc schema.Document, category string) Post {
	l := layoutFor(doc)

	image, err := r.images.Provision(ctx, ImagePrompt(category, doc.Kind()))
	hasImage := err == nil
	if err != nil {
		r.logger.Warn("image provisioning failed, using placeholder",
			"kind", doc.Kind(), "category", category, "error", err)
		image = Placeholder
	}

	head := doc.Head()
	return Post{
		Title:    head.Title,
		Markup:   compose(l, head, image),
		Kind:     doc.Kind(),
		HasImage: hasImage,
	}
}

// RenderRaw validates raw against the kind named by tag and renders it. No
// image is requested when validation fails.
func (r *Renderer) RenderRaw(ctx context.Context, raw []byte, tag, category string) (Post, error) {
	doc, err := schema.Decode(raw, tag)
	if err != nil {
		return Post{}, err
	}
	return r.Render(ctx, doc, category), nil
}
