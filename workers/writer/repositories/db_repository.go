package repositories

import (
	"fmt"
	"strconv"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"social-scraper/internal/messages"
	"social-scraper/workers/writer/models"
)

const statusCompleted = "COMPLETED"

// postColumns maps each post platform onto the shared posts table.
var postColumns = map[string]struct{ id, author, text, keywords string }{
	"instagram":      {"post_id", "usuario", "caption", "keyword"},
	"tiktok":         {"video_id", "usuario", "caption", "keyword"},
	"twitter":        {"tweet_id", "usuario", "texto", "keyword"},
	"facebook_posts": {"post_id", "page_name", "texto", "keywords_matched"},
}

type PostgresDBRepository struct {
	db *gorm.DB
}

func NewDBRepository(db *gorm.DB) *PostgresDBRepository {
	return &PostgresDBRepository{db: db}
}

// Migrate creates or updates the writer tables.
func (repo *PostgresDBRepository) Migrate() error {
	if err := repo.db.AutoMigrate(models.All()...); err != nil {
		return fmt.Errorf("failed to migrate: %w", err)
	}
	return nil
}

func (repo *PostgresDBRepository) InsertPost(msg messages.WriterMessage) error {
	post, err := postFromMessage(msg)
	if err != nil {
		return err
	}
	if err := repo.db.Create(&post).Error; err != nil {
		return fmt.Errorf("failed to insert post: %w", err)
	}
	return nil
}

// postFromMessage folds the platform columns onto the shared posts table.
// Tweets count replies as comments and retweets as shares.
func postFromMessage(msg messages.WriterMessage) (models.Post, error) {
	cols, ok := postColumns[msg.Platform]
	if !ok {
		return models.Post{}, fmt.Errorf("unknown post platform %q", msg.Platform)
	}
	return models.Post{
		RunID:      msg.RunID,
		Platform:   msg.Platform,
		ExternalID: text(msg.Values, cols.id),
		Author:     text(msg.Values, cols.author),
		Text:       text(msg.Values, cols.text),
		URL:        text(msg.Values, "url"),
		Keywords:   text(msg.Values, cols.keywords),
		Likes:      number(msg.Values, "likes"),
		Comments:   number(msg.Values, "comments") + number(msg.Values, "replies"),
		Shares:     number(msg.Values, "shares") + number(msg.Values, "retweets"),
		Views:      number(msg.Values, "views"),
		PostedAt:   msg.PostedAt,
		Values:     msg.Values,
	}, nil
}

func (repo *PostgresDBRepository) InsertPage(msg messages.WriterMessage) error {
	page := models.Page{
		RunID:        msg.RunID,
		Organization: text(msg.Values, "nombre_organizacion"),
		Name:         text(msg.Values, "page_name"),
		URL:          text(msg.Values, "page_url"),
		Likes:        number(msg.Values, "likes"),
		Followers:    number(msg.Values, "followers"),
		Email:        text(msg.Values, "email"),
		Phone:        text(msg.Values, "telefono"),
		Website:      text(msg.Values, "website"),
		AdStatus:     text(msg.Values, "ad_status"),
		Values:       msg.Values,
	}
	if err := repo.db.Create(&page).Error; err != nil {
		return fmt.Errorf("failed to insert page: %w", err)
	}
	return nil
}

// InsertMedia attaches an archived picture to the page stored for the same run.
func (repo *PostgresDBRepository) InsertMedia(msg messages.WriterMessage) error {
	var page models.Page
	err := repo.db.
		Where("url = ? AND run_id = ?", msg.PageURL, msg.RunID).
		Order("id DESC").
		First(&page).Error
	if err != nil {
		return fmt.Errorf("failed to find page %s for run %s: %w", msg.PageURL, msg.RunID, err)
	}

	media := models.PageMedia{
		RunID:     msg.RunID,
		PageID:    page.ID,
		Kind:      msg.MediaKind,
		SourceURL: msg.SourceURL,
		S3Path:    msg.S3Path,
	}
	if err := repo.db.Create(&media).Error; err != nil {
		return fmt.Errorf("failed to insert page media: %w", err)
	}
	return nil
}

// CompleteRun upserts the run row as COMPLETED.
func (repo *PostgresDBRepository) CompleteRun(runID string, counts map[string]int, completedAt time.Time) error {
	run := models.Run{
		ID:          runID,
		Status:      statusCompleted,
		Counts:      counts,
		CompletedAt: &completedAt,
	}
	err := repo.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{"status", "counts", "completed_at"}),
	}).Create(&run).Error
	if err != nil {
		return fmt.Errorf("failed to complete run %s: %w", runID, err)
	}
	return nil
}

func text(values map[string]any, key string) string {
	switch v := values[key].(type) {
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	default:
		return ""
	}
}

// number reads an integer column; JSON decoding yields float64.
func number(values map[string]any, key string) int64 {
	switch v := values[key].(type) {
	case float64:
		return int64(v)
	case int64:
		return v
	case int:
		return int64(v)
	default:
		return 0
	}
}
