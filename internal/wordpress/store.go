package wordpress

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/pep299/template-blog-publisher/internal/templates"
)

var (
	ErrNoTerm     = errors.New("no eligible term")
	ErrNoTemplate = errors.New("no blog template")
)

// Options configures a Store.
type Options struct {
	TermIDFloor    uint64
	AuthorID       uint64
	UploadsBaseURL string
	Now            func() time.Time
}

// Store reads and writes the WordPress tables used for publishing.
type Store struct {
	db   *gorm.DB
	opts Options
}

// Open connects to a MySQL/MariaDB WordPress database.
func Open(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("opening mysql: %w", err)
	}
	return db, nil
}

func NewStore(db *gorm.DB, opts Options) *Store {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.AuthorID == 0 {
		opts.AuthorID = 1
	}
	opts.UploadsBaseURL = strings.TrimRight(opts.UploadsBaseURL, "/")
	return &Store{db: db, opts: opts}
}

// EnsureTemplateTable creates blog_templates when missing. The WordPress
// tables themselves are never migrated.
func (s *Store) EnsureTemplateTable(ctx context.Context) error {
	if err := s.db.WithContext(ctx).AutoMigrate(&BlogTemplate{}); err != nil {
		return fmt.Errorf("migrating blog_templates: %w", err)
	}
	return nil
}

func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func (s *Store) eligibleTerms(ctx context.Context) *gorm.DB {
	return s.db.WithContext(ctx).Model(&Term{}).
		Where("term_id >= ? AND z_category_description <> ?", s.opts.TermIDFloor, "")
}

// NextUnprocessedTerm returns the lowest eligible term not yet processed.
// When every eligible term is processed the cycle starts over.
func (s *Store) NextUnprocessedTerm(ctx context.Context) (Term, error) {
	find := func() (Term, error) {
		var t Term
		err := s.eligibleTerms(ctx).Where("z_processed = ?", false).Order("term_id").First(&t).Error
		return t, err
	}

	t, err := find()
	if err == nil {
		return t, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return Term{}, fmt.Errorf("selecting term: %w", err)
	}

	if err := s.eligibleTerms(ctx).Update("z_processed", false).Error; err != nil {
		return Term{}, fmt.Errorf("resetting terms: %w", err)
	}

	t, err = find()
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return Term{}, ErrNoTerm
	}
	if err != nil {
		return Term{}, fmt.Errorf("selecting term: %w", err)
	}
	return t, nil
}

func (s *Store) randomOrder() string {
	if s.db.Dialector.Name() == "mysql" {
		return "RAND()"
	}
	return "RANDOM()"
}

// NextTemplate picks a random template not yet taken, resetting the
// rotation when all are taken. The prompt has category substituted.
func (s *Store) NextTemplate(ctx context.Context, category string) (BlogTemplate, error) {
	find := func() (BlogTemplate, error) {
		var t BlogTemplate
		err := s.db.WithContext(ctx).Where("is_taken = ?", false).Order(s.randomOrder()).First(&t).Error
		return t, err
	}

	t, err := find()
	if errors.Is(err, gorm.ErrRecordNotFound) {
		if err := s.db.WithContext(ctx).Model(&BlogTemplate{}).
			Where("is_taken = ?", true).Update("is_taken", false).Error; err != nil {
			return BlogTemplate{}, fmt.Errorf("resetting templates: %w", err)
		}
		t, err = find()
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return BlogTemplate{}, ErrNoTemplate
	}
	if err != nil {
		return BlogTemplate{}, fmt.Errorf("selecting template: %w", err)
	}

	t.Prompt = templates.Apply(t.Prompt, category)
	return t, nil
}

// MarkTemplateTaken marks every template of kind as used.
func (s *Store) MarkTemplateTaken(ctx context.Context, kind string) (int64, error) {
	res := s.db.WithContext(ctx).Model(&BlogTemplate{}).Where("blog_type = ?", kind).Update("is_taken", true)
	if res.Error != nil {
		return 0, fmt.Errorf("marking template taken: %w", res.Error)
	}
	return res.RowsAffected, nil
}

func (s *Store) MarkTermProcessed(ctx context.Context, termID uint64) error {
	err := s.db.WithContext(ctx).Model(&Term{}).Where("term_id = ?", termID).Update("z_processed", true).Error
	if err != nil {
		return fmt.Errorf("marking term processed: %w", err)
	}
	return nil
}

var slugPattern = regexp.MustCompile(`[^a-zA-Z0-9\s]`)

// Slug derives a post_name from a title.
func Slug(title string) string {
	slug := slugPattern.ReplaceAllString(title, "")
	slug = strings.ReplaceAll(slug, " ", "-")
	if len(slug) > 200 {
		slug = slug[:200]
	}
	return slug
}

// CreatePost inserts a published post and returns its ID.
func (s *Store) CreatePost(ctx context.Context, title, content string) (uint64, error) {
	now := s.opts.Now()
	p := Post{
		Author:        s.opts.AuthorID,
		Date:          now,
		DateGMT:       now.UTC(),
		Content:       content,
		Title:         title,
		Status:        "publish",
		CommentStatus: "open",
		PingStatus:    "open",
		Name:          Slug(title),
		Modified:      now,
		ModifiedGMT:   now.UTC(),
		Type:          "post",
	}
	if err := s.db.WithContext(ctx).Create(&p).Error; err != nil {
		return 0, fmt.Errorf("creating post: %w", err)
	}
	return p.ID, nil
}

// CreateImageAttachment inserts the attachment row for an uploaded JPEG.
func (s *Store) CreateImageAttachment(ctx context.Context, fileName string, postID uint64, year, month int) (uint64, error) {
	now := s.opts.Now()
	name := strings.TrimSuffix(fileName, pathExt(fileName))
	a := Post{
		Author:        s.opts.AuthorID,
		Date:          now,
		DateGMT:       now.UTC(),
		Title:         name,
		Status:        "inherit",
		CommentStatus: "open",
		PingStatus:    "closed",
		Name:          strings.ToLower(name),
		Modified:      now,
		ModifiedGMT:   now.UTC(),
		Parent:        postID,
		GUID:          fmt.Sprintf("%s/%04d/%02d/%s", s.opts.UploadsBaseURL, year, month, fileName),
		Type:          "attachment",
		MimeType:      "image/jpeg",
	}
	if err := s.db.WithContext(ctx).Create(&a).Error; err != nil {
		return 0, fmt.Errorf("creating attachment: %w", err)
	}
	return a.ID, nil
}

func pathExt(name string) string {
	if i := strings.LastIndex(name, "."); i >= 0 {
		return name[i:]
	}
	return ""
}

// AssignCategory links a post to a category term.
func (s *Store) AssignCategory(ctx context.Context, termID, postID uint64) error {
	rel := TermRelationship{ObjectID: postID, TermTaxonomyID: termID, TermOrder: 0}
	if err := s.db.WithContext(ctx).Create(&rel).Error; err != nil {
		return fmt.Errorf("assigning category: %w", err)
	}
	return nil
}

// AssignImage sets the attachment as the post's featured image and records
// the attachment's upload-relative path.
func (s *Store) AssignImage(ctx context.Context, postID, attachmentID uint64, relPath string) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		meta := []PostMeta{
			{PostID: postID, Key: "_thumbnail_id", Value: strconv.FormatUint(attachmentID, 10)},
			{PostID: attachmentID, Key: "_wp_attached_file", Value: relPath},
		}
		if err := tx.Create(&meta).Error; err != nil {
			return fmt.Errorf("assigning image: %w", err)
		}
		return nil
	})
}

// SeedTemplates inserts catalog entries not already present and returns
// how many were inserted.
func (s *Store) SeedTemplates(ctx context.Context, entries []templates.Entry) (int, error) {
	inserted := 0
	for _, e := range entries {
		var count int64
		if err := s.db.WithContext(ctx).Model(&BlogTemplate{}).Where("blog_type = ? AND user_prompt = ?", e.Kind, e.Prompt).Count(&count).Error; err != nil {
			return inserted, fmt.Errorf("counting templates: %w", err)
		}
		if count > 0 {
			continue
		}
		if err := s.db.WithContext(ctx).Create(&BlogTemplate{Kind: e.Kind, Prompt: e.Prompt}).Error; err != nil {
			return inserted, fmt.Errorf("seeding template %s: %w", e.Kind, err)
		}
		inserted++
	}
	return inserted, nil
}
