package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/pep299/template-blog-publisher/internal/config"
	"github.com/pep299/template-blog-publisher/internal/di"
	"github.com/pep299/template-blog-publisher/internal/logger"
	"github.com/pep299/template-blog-publisher/internal/render"
)

func main() {
	var (
		renderFile = flag.String("render", "", "Render a document file offline instead of publishing (- for stdin)")
		kind       = flag.String("kind", "general", "Document kind used with -render")
		category   = flag.String("category", "", "Category used with -render")
		asJSON     = flag.Bool("json", false, "Print the rendered post as JSON")
	)
	flag.Parse()

	if *renderFile != "" {
		if err := renderOffline(os.Stdout, *renderFile, *kind, *category, *asJSON); err != nil {
			fmt.Fprintf(os.Stderr, "Render failed: %v\n", err)
			os.Exit(1)
		}
		return
	}

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(cfg.LogMode)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	ctx := context.Background()

	container, err := di.NewContainer(ctx, cfg, log)
	if err != nil {
		log.Fatal("Failed to create container", "error", err)
	}
	defer container.Close()

	res, err := container.Publisher.Run(ctx)
	if err != nil {
		log.Error("Publishing failed", "error", err)
		container.Close()
		os.Exit(1)
	}
	fmt.Printf("Published post %d (%s): %s\n", res.PostID, res.Kind, res.Title)
}

// renderOffline validates and renders a stored document without touching
// WordPress or the image API. Images are replaced by the placeholder.
func renderOffline(w io.Writer, file, kind, category string, asJSON bool) error {
	var (
		raw []byte
		err error
	)
	if file == "-" {
		raw, err = io.ReadAll(os.Stdin)
	} else {
		raw, err = os.ReadFile(file)
	}
	if err != nil {
		return fmt.Errorf("reading document: %w", err)
	}

	renderer := render.NewRenderer(render.NoImages{}, logger.NewNop())
	post, err := renderer.RenderRaw(context.Background(), raw, kind, category)
	if err != nil {
		return err
	}

	if asJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(post)
	}
	_, err = fmt.Fprintf(w, "%s\n\n%s\n", post.Title, post.Markup)
	return err
}
