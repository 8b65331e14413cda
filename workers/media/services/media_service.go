package services

import (
	"context"
	"encoding/json"
	"fmt"
	"mime"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"social-scraper/internal/logging"
	"social-scraper/internal/messages"
)

type MessagePublisher interface {
	SendMessage(ctx context.Context, queueURL string, msg interface{}) error
}

type S3Repository interface {
	UploadBytes(ctx context.Context, key string, data []byte, contentType string) (string, error)
}

type HTTPRepository interface {
	DownloadImage(ctx context.Context, url string) ([]byte, string, error)
}

type MediaService struct {
	publisher      MessagePublisher
	s3Repo         S3Repository
	httpRepo       HTTPRepository
	writerQueueURL string
	logger         logging.Logger
	newKey         func() string
}

func NewMediaService(
	publisher MessagePublisher,
	s3Repo S3Repository,
	httpRepo HTTPRepository,
	writerQueueURL string,
	logger logging.Logger,
) *MediaService {
	return &MediaService{
		publisher:      publisher,
		s3Repo:         s3Repo,
		httpRepo:       httpRepo,
		writerQueueURL: writerQueueURL,
		logger:         logger,
		newKey:         uuid.NewString,
	}
}

// HandleBody archives the picture named in one queue message.
func (s *MediaService) HandleBody(ctx context.Context, body []byte) error {
	var msg messages.MediaMessage
	if err := json.Unmarshal(body, &msg); err != nil {
		s.logger.WithError(err).Warn("dropping malformed media message")
		return nil
	}
	return s.ProcessMessage(ctx, msg)
}

// ProcessMessage downloads the picture, stores it under the run prefix and
// tells the writer where it went. Pictures that cannot be downloaded are
// skipped; storage and queue failures are returned for redelivery.
func (s *MediaService) ProcessMessage(ctx context.Context, msg messages.MediaMessage) error {
	entry := s.logger.WithFields(logging.Fields{
		"run_id":       msg.RunID,
		"organization": msg.Organization,
		"kind":         msg.Kind,
	})
	if msg.ImageURL == "" {
		entry.Warn("media message without image url")
		return nil
	}

	data, contentType, err := s.httpRepo.DownloadImage(ctx, msg.ImageURL)
	if err != nil {
		entry.WithError(err).Warnf("failed to download image %s", msg.ImageURL)
		return nil
	}

	key := fmt.Sprintf("%s/media/%s/%s.%s", msg.RunID, msg.Kind, s.newKey(), getExtension(msg.ImageURL, contentType))
	s3Path, err := s.s3Repo.UploadBytes(ctx, key, data, contentType)
	if err != nil {
		return err
	}
	entry.WithField("s3_path", s3Path).Info("image stored")

	writerMsg := messages.WriterMessage{
		Type:      messages.MsgTypeMediaStored,
		RunID:     msg.RunID,
		PageURL:   msg.PageURL,
		MediaKind: msg.Kind,
		SourceURL: msg.ImageURL,
		S3Path:    s3Path,
	}
	if err := s.publisher.SendMessage(ctx, s.writerQueueURL, writerMsg); err != nil {
		return fmt.Errorf("failed to send media metadata to writer: %w", err)
	}
	return nil
}

func getExtension(url, contentType string) string {
	ext := "bin"

	if contentType != "" {
		exts, err := mime.ExtensionsByType(contentType)
		if err == nil && len(exts) > 0 {
			ext = strings.TrimPrefix(exts[0], ".")
		}
	}

	// Fall back to the URL path when the content type says nothing useful.
	if ext == "bin" {
		urlExt := filepath.Ext(strings.Split(url, "?")[0])
		if urlExt != "" && len(urlExt) < 6 {
			ext = strings.TrimPrefix(urlExt, ".")
		}
	}

	return ext
}
