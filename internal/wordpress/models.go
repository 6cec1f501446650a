package wordpress

import "time"

// Term is a wp_terms row extended with the publishing columns.
type Term struct {
	ID          uint64 `gorm:"column:term_id;primaryKey;autoIncrement"`
	Name        string `gorm:"column:name;size:200"`
	Slug        string `gorm:"column:slug;size:200"`
	Description string `gorm:"column:z_category_description;type:text"`
	Processed   bool   `gorm:"column:z_processed;default:false"`
}

func (Term) TableName() string { return "wp_terms" }

type Post struct {
	ID              uint64    `gorm:"column:ID;primaryKey;autoIncrement"`
	Author          uint64    `gorm:"column:post_author"`
	Date            time.Time `gorm:"column:post_date"`
	DateGMT         time.Time `gorm:"column:post_date_gmt"`
	Content         string    `gorm:"column:post_content;type:longtext"`
	Title           string    `gorm:"column:post_title;type:text"`
	Excerpt         string    `gorm:"column:post_excerpt;type:text"`
	Status          string    `gorm:"column:post_status;size:20"`
	CommentStatus   string    `gorm:"column:comment_status;size:20"`
	PingStatus      string    `gorm:"column:ping_status;size:20"`
	Name            string    `gorm:"column:post_name;size:200"`
	ToPing          string    `gorm:"column:to_ping;type:text"`
	Pinged          string    `gorm:"column:pinged;type:text"`
	Modified        time.Time `gorm:"column:post_modified"`
	ModifiedGMT     time.Time `gorm:"column:post_modified_gmt"`
	ContentFiltered string    `gorm:"column:post_content_filtered;type:longtext"`
	Parent          uint64    `gorm:"column:post_parent"`
	GUID            string    `gorm:"column:guid;size:255"`
	Type            string    `gorm:"column:post_type;size:20"`
	MimeType        string    `gorm:"column:post_mime_type;size:100"`
}

func (Post) TableName() string { return "wp_posts" }

type TermRelationship struct {
	ObjectID       uint64 `gorm:"column:object_id;primaryKey;autoIncrement:false"`
	TermTaxonomyID uint64 `gorm:"column:term_taxonomy_id;primaryKey;autoIncrement:false"`
	TermOrder      int    `gorm:"column:term_order"`
}

func (TermRelationship) TableName() string { return "wp_term_relationships" }

type PostMeta struct {
	ID     uint64 `gorm:"column:meta_id;primaryKey;autoIncrement"`
	PostID uint64 `gorm:"column:post_id;index"`
	Key    string `gorm:"column:meta_key;size:255"`
	Value  string `gorm:"column:meta_value;type:longtext"`
}

func (PostMeta) TableName() string { return "wp_postmeta" }

// BlogTemplate is a prompt in the rotation table.
type BlogTemplate struct {
	ID      uint64 `gorm:"column:id;primaryKey;autoIncrement"`
	Kind    string `gorm:"column:blog_type;size:64;index"`
	Prompt  string `gorm:"column:user_prompt;type:text"`
	IsTaken bool   `gorm:"column:is_taken;default:false"`
}

func (BlogTemplate) TableName() string { return "blog_templates" }

// Models lists every table the store touches.
func Models() []any {
	return []any{&Term{}, &Post{}, &TermRelationship{}, &PostMeta{}, &BlogTemplate{}}
}
