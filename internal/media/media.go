package media

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/disintegration/imaging"

	"github.com/pep299/template-blog-publisher/internal/logger"
)

// ImageGenerator produces encoded image bytes for a prompt.
type ImageGenerator interface {
	GenerateImage(ctx context.Context, prompt string) ([]byte, error)
}

// Mirror stores a copy of a processed image under an object name.
type Mirror interface {
	Put(ctx context.Context, name string, data []byte) error
}

// StoredImage describes an image written to the uploads directory.
type StoredImage struct {
	FileName string
	// RelPath is relative to the uploads root, e.g. "2024/03/cats_1709600000.jpg".
	RelPath string
	Path    string
	URL     string
	Year    int
	Month   int
}

// SquarePx is the edge length every stored image is resized to.
const SquarePx = 512

// Config controls where and how images are stored.
type Config struct {
	UploadsDir  string
	BaseURL     string
	JPEGQuality int
}

// Provisioner generates, normalizes and stores images and returns the
// markup fragment that embeds them.
type Provisioner struct {
	gen    ImageGenerator
	cfg    Config
	mirror Mirror
	logger *logger.Logger
	now    func() time.Time

	mu   sync.Mutex
	last *StoredImage
}

type Option func(*Provisioner)

// WithMirror copies every stored image to m. Mirror failures are logged.
func WithMirror(m Mirror) Option {
	return func(p *Provisioner) { p.mirror = m }
}

// WithClock overrides time.Now.
func WithClock(now func() time.Time) Option {
	return func(p *Provisioner) { p.now = now }
}

func NewProvisioner(gen ImageGenerator, cfg Config, log *logger.Logger, opts ...Option) *Provisioner {
	if cfg.JPEGQuality <= 0 || cfg.JPEGQuality > 100 {
		cfg.JPEGQuality = 70
	}
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	if log == nil {
		log = logger.NewNop()
	}
	p := &Provisioner{
		gen:    gen,
		cfg:    cfg,
		logger: log.With("service", "media"),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Fragment is the <img> element for an image URL.
func Fragment(url string) string {
	return fmt.Sprintf(`<img alt="" class="size-medium wp-image-2256 aligncenter" src="%s"/>`, url)
}

// SafeName turns a prompt into a file name stem.
func SafeName(prompt string) string {
	name := strings.ReplaceAll(prompt, "&amp;", "")
	name = strings.ReplaceAll(name, "/", "_")
	return strings.ReplaceAll(name, " ", "_")
}

// Provision implements render.ImageProvider.
func (p *Provisioner) Provision(ctx context.Context, prompt string) (string, error) {
	raw, err := p.gen.GenerateImage(ctx, prompt)
	if err != nil {
		return "", fmt.Errorf("generating image: %w", err)
	}

	now := p.now()
	year, month := now.Year(), int(now.Month())
	subdir := fmt.Sprintf("%04d/%02d", year, month)
	dir := filepath.Join(p.cfg.UploadsDir, filepath.FromSlash(subdir))
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("creating upload directory: %w", err)
	}

	data, err := p.normalize(raw)
	if err != nil {
		return "", err
	}

	fileName := fmt.Sprintf("%s_%d.jpg", SafeName(prompt), now.Unix())
	fullPath := filepath.Join(dir, fileName)
	if err := os.WriteFile(fullPath, data, 0o644); err != nil {
		return "", fmt.Errorf("writing image: %w", err)
	}

	rel := path.Join(subdir, fileName)
	stored := StoredImage{
		FileName: fileName,
		RelPath:  rel,
		Path:     fullPath,
		URL:      p.cfg.BaseURL + "/" + rel,
		Year:     year,
		Month:    month,
	}

	if p.mirror != nil {
		if err := p.mirror.Put(ctx, rel, data); err != nil {
			p.logger.Warn("mirroring image failed", "object", rel, "error", err)
		}
	}

	p.mu.Lock()
	p.last = &stored
	p.mu.Unlock()

	p.logger.Info("image stored", "path", fullPath, "size_px", SquarePx)
	return Fragment(stored.URL), nil
}

// TakeLastImage returns the most recently stored image and forgets it, so a
// caller sees each image at most once.
func (p *Provisioner) TakeLastImage() (StoredImage, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.last == nil {
		return StoredImage{}, false
	}
	img := *p.last
	p.last = nil
	return img, true
}

var errEmptyImage = errors.New("empty image data")

func (p *Provisioner) normalize(raw []byte) ([]byte, error) {
	if len(raw) == 0 {
		return nil, errEmptyImage
	}
	img, err := imaging.Decode(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("decoding image: %w", err)
	}
	resized := imaging.Resize(img, SquarePx, SquarePx, imaging.Lanczos)

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, resized, imaging.JPEG, imaging.JPEGQuality(p.cfg.JPEGQuality)); err != nil {
		return nil, fmt.Errorf("encoding image: %w", err)
	}
	return buf.Bytes(), nil
}
