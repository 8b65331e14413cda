package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"social-scraper/internal/logging"
	"social-scraper/internal/messages"
)

const platformFacebookPages = "facebook_pages"

// Consumer-side interface
type DBRepository interface {
	InsertPost(msg messages.WriterMessage) error
	InsertPage(msg messages.WriterMessage) error
	InsertMedia(msg messages.WriterMessage) error
	CompleteRun(runID string, counts map[string]int, completedAt time.Time) error
}

type WriterService struct {
	dbRepo DBRepository
	logger logging.Logger
	now    func() time.Time
}

// Functional Options Pattern
type WriterOption func(*WriterService)

func WithDBRepository(r DBRepository) WriterOption {
	return func(s *WriterService) { s.dbRepo = r }
}

func WithLogger(l logging.Logger) WriterOption {
	return func(s *WriterService) { s.logger = l }
}

func NewWriterService(opts ...WriterOption) *WriterService {
	s := &WriterService{now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = logging.NewLoggerWithService("writer")
	}
	return s
}

// HandleBody decodes one queue message. Malformed bodies are logged and
// dropped so they do not block the queue.
func (s *WriterService) HandleBody(_ context.Context, body []byte) error {
	var msg messages.WriterMessage
	if err := json.Unmarshal(body, &msg); err != nil {
		s.logger.WithError(err).Warn("dropping malformed writer message")
		return nil
	}
	return s.ProcessMessage(msg)
}

func (s *WriterService) ProcessMessage(msg messages.WriterMessage) error {
	var err error
	switch msg.Type {
	case messages.MsgTypeRecord:
		if msg.Platform == platformFacebookPages {
			err = s.dbRepo.InsertPage(msg)
		} else {
			err = s.dbRepo.InsertPost(msg)
		}
	case messages.MsgTypeMediaStored:
		err = s.dbRepo.InsertMedia(msg)
	case messages.MsgTypeRunComplete:
		completedAt := s.now().UTC()
		if msg.CompletedAt != nil {
			completedAt = *msg.CompletedAt
		}
		err = s.dbRepo.CompleteRun(msg.RunID, msg.Counts, completedAt)
		if err == nil {
			s.logger.WithFields(logging.Fields{"run_id": msg.RunID, "counts": msg.Counts}).Info("run stored")
		}
	default:
		return nil
	}

	if err != nil {
		return fmt.Errorf("failed to process message type %s: %w", msg.Type, err)
	}
	return nil
}
