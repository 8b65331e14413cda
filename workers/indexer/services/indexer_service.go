package services

import (
	"context"
	"encoding/json"

	"social-scraper/internal/logging"
	"social-scraper/internal/messages"
)

type OpenSearchRepository interface {
	IndexDocument(ctx context.Context, msg messages.IndexMessage) error
}

type IndexerService struct {
	openSearchRepo OpenSearchRepository
	logger         logging.Logger
}

func NewIndexerService(openSearchRepo OpenSearchRepository, logger logging.Logger) *IndexerService {
	return &IndexerService{openSearchRepo: openSearchRepo, logger: logger}
}

// HandleBody indexes one queue message. A failed index keeps the message on
// the queue for redelivery; a malformed body is dropped.
func (s *IndexerService) HandleBody(ctx context.Context, body []byte) error {
	var msg messages.IndexMessage
	if err := json.Unmarshal(body, &msg); err != nil {
		s.logger.WithError(err).Warn("dropping malformed index message")
		return nil
	}

	entry := s.logger.WithFields(logging.Fields{"run_id": msg.RunID, "platform": msg.Platform})
	if err := s.openSearchRepo.IndexDocument(ctx, msg); err != nil {
		entry.WithError(err).Error("error indexing document")
		return err
	}
	entry.Debug("document indexed")
	return nil
}
