package cloudfunctions

import (
	"context"
	"net/http"
	"sync"

	"github.com/GoogleCloudPlatform/functions-framework-go/functions"

	"github.com/pep299/template-blog-publisher/internal/config"
	"github.com/pep299/template-blog-publisher/internal/di"
	"github.com/pep299/template-blog-publisher/internal/handlers"
	"github.com/pep299/template-blog-publisher/internal/logger"
)

func init() {
	// Register HTTP function for scheduler triggers and manual calls
	functions.HTTP("PublishBlog", PublishBlog)
}

var (
	mu      sync.Mutex
	handler http.Handler

	// buildHandler is replaced in tests.
	buildHandler = newHandler
)

// newHandler builds the full API from environment configuration. The
// container lives for the lifetime of the function instance.
func newHandler(ctx context.Context) (http.Handler, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	log, err := logger.New(cfg.LogMode)
	if err != nil {
		return nil, err
	}
	container, err := di.NewContainer(ctx, cfg, log)
	if err != nil {
		return nil, err
	}
	return container.Server().SetupRoutes(), nil
}

func instance(ctx context.Context) (http.Handler, error) {
	mu.Lock()
	defer mu.Unlock()
	if handler != nil {
		return handler, nil
	}
	h, err := buildHandler(ctx)
	if err != nil {
		return nil, err
	}
	handler = h
	return handler, nil
}

// PublishBlog serves the publishing API. A failed initialization is
// retried on the next request.
func PublishBlog(w http.ResponseWriter, r *http.Request) {
	h, err := instance(context.Background())
	if err != nil {
		log, lerr := logger.New("production")
		if lerr != nil {
			log = logger.NewNop()
		}
		log.Error("initialization failed", "error", err)
		handlers.WriteError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	h.ServeHTTP(w, r)
}
