package services

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"social-scraper/internal/logging"
	"social-scraper/internal/messages"
	"social-scraper/workers/scraper/domain"
)

// Consumer-side interfaces
type ActorRunner interface {
	RunActor(ctx context.Context, actorID string, input map[string]any) ([]domain.RawRecord, error)
}

type Exporter interface {
	Export(table domain.ResultTable, filename string) (string, error)
}

type FileUploader interface {
	UploadFile(ctx context.Context, prefix, path string) (string, error)
}

type MessagePublisher interface {
	SendMessage(ctx context.Context, queueURL string, msg interface{}) error
}

type RunTracker interface {
	AddPending(ctx context.Context, runID string, units int64) error
	CompleteUnit(ctx context.Context, runID string) (int64, error)
	MarkSeen(ctx context.Context, platform domain.Platform, keys []string) (int64, error)
}

type RunStatusStore interface {
	StartRun(ctx context.Context, runID, command string, startedAt time.Time) error
	CompleteRun(ctx context.Context, runID string, counts map[string]int, completedAt time.Time) error
}

// PlatformResult is the outcome of one platform within a run.
type PlatformResult struct {
	Platform    domain.Platform
	Table       domain.ResultTable
	File        string
	Location    string
	Summary     Summary
	UnitsFailed int
	// NewRecords is -1 when no run tracker is configured.
	NewRecords int64
}

type RunReport struct {
	RunID   string
	Results []PlatformResult
}

type ScraperService struct {
	actor     ActorRunner
	exporter  Exporter
	uploader  FileUploader
	publisher MessagePublisher
	tracker   RunTracker
	runStatus RunStatusStore
	metrics   *Metrics
	logger    logging.Logger

	writerQueueURL  string
	indexerQueueURL string
	mediaQueueURL   string

	resultsLimit int
	concurrency  int
	now          func() time.Time
	newRunID     func() string
}

// Functional Options Pattern
type ScraperOption func(*ScraperService)

func WithActorRunner(a ActorRunner) ScraperOption {
	return func(s *ScraperService) { s.actor = a }
}

func WithExporter(e Exporter) ScraperOption {
	return func(s *ScraperService) { s.exporter = e }
}

func WithUploader(u FileUploader) ScraperOption {
	return func(s *ScraperService) { s.uploader = u }
}

// WithPublisher enables the queue sinks; an empty URL disables that queue.
func WithPublisher(p MessagePublisher, writerQueueURL, indexerQueueURL, mediaQueueURL string) ScraperOption {
	return func(s *ScraperService) {
		s.publisher = p
		s.writerQueueURL = writerQueueURL
		s.indexerQueueURL = indexerQueueURL
		s.mediaQueueURL = mediaQueueURL
	}
}

func WithRunTracker(t RunTracker) ScraperOption {
	return func(s *ScraperService) { s.tracker = t }
}

func WithRunStatusStore(r RunStatusStore) ScraperOption {
	return func(s *ScraperService) { s.runStatus = r }
}

func WithMetrics(m *Metrics) ScraperOption {
	return func(s *ScraperService) { s.metrics = m }
}

func WithLogger(l logging.Logger) ScraperOption {
	return func(s *ScraperService) { s.logger = l }
}

// WithResultsLimit caps each exported table; 0 keeps everything.
func WithResultsLimit(n int) ScraperOption {
	return func(s *ScraperService) { s.resultsLimit = n }
}

func WithConcurrency(n int) ScraperOption {
	return func(s *ScraperService) {
		if n > 0 {
			s.concurrency = n
		}
	}
}

func NewScraperService(opts ...ScraperOption) *ScraperService {
	s := &ScraperService{
		concurrency: 1,
		now:         time.Now,
		newRunID:    uuid.NewString,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = logging.NewLoggerWithService("scraper")
	}
	return s
}

// Run executes plans in order under a fresh run ID. Only context
// cancellation stops a run early.
func (s *ScraperService) Run(ctx context.Context, command string, plans []Plan) (RunReport, error) {
	report := RunReport{RunID: s.newRunID()}
	log := s.logger.WithFields(logging.Fields{"run_id": report.RunID, "command": command})

	if s.runStatus != nil {
		if err := s.runStatus.StartRun(ctx, report.RunID, command, s.now()); err != nil {
			log.WithError(err).Warn("failed to record run start")
		}
	}
	if s.tracker != nil {
		total := 0
		for _, p := range plans {
			total += len(p.Units)
		}
		if err := s.tracker.AddPending(ctx, report.RunID, int64(total)); err != nil {
			log.WithError(err).Warn("failed to register pending units")
		}
	}

	counts := make(map[string]int, len(plans))
	for _, plan := range plans {
		result, err := s.RunPlatform(ctx, report.RunID, plan)
		if err != nil {
			return report, err
		}
		report.Results = append(report.Results, result)
		counts[plan.Platform.String()] = result.Table.Len()
	}

	completedAt := s.now()
	if s.runStatus != nil {
		if err := s.runStatus.CompleteRun(ctx, report.RunID, counts, completedAt); err != nil {
			log.WithError(err).Warn("failed to record run completion")
		}
	}
	s.publish(ctx, s.writerQueueURL, messages.WriterMessage{
		Type:        messages.MsgTypeRunComplete,
		RunID:       report.RunID,
		Counts:      counts,
		CompletedAt: &completedAt,
	})
	log.WithField("counts", counts).Info("run complete")
	return report, nil
}

// RunPlatform invokes every unit of plan, ranks the merged result and hands
// it to the export collaborators.
func (s *ScraperService) RunPlatform(ctx context.Context, runID string, plan Plan) (PlatformResult, error) {
	log := s.logger.WithFields(logging.Fields{"run_id": runID, "platform": plan.Platform})
	log.WithField("units", len(plan.Units)).Info("starting platform")

	results := make([]BatchResult, len(plan.Units))
	var failed atomic.Int32
	pace := newPacer(plan.UnitPause, plan.BatchPause)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.concurrency)
	for i, unit := range plan.Units {
		if err := pace.wait(gctx, unit.Batch); err != nil {
			break
		}
		g.Go(func() error {
			res, err := s.runUnit(gctx, runID, plan, unit)
			if err != nil {
				failed.Add(1)
			}
			results[i] = res
			return nil
		})
	}
	_ = g.Wait()
	if err := ctx.Err(); err != nil {
		return PlatformResult{}, err
	}

	var accepted []domain.ScoredRecord
	for _, res := range results {
		accepted = append(accepted, res.Accepted...)
	}
	table := Finalize(plan.Pipeline.Schema(), accepted, s.resultsLimit)
	s.metrics.observeExport(table)

	result := PlatformResult{
		Platform:    plan.Platform,
		Table:       table,
		UnitsFailed: int(failed.Load()),
		NewRecords:  -1,
		Summary:     Summarize(table),
	}

	s.export(ctx, runID, plan, &result)
	s.publishTable(ctx, runID, plan.Pipeline.Schema(), table)
	if s.tracker != nil {
		keys := recordKeys(table, plan.Pipeline.Schema().DedupeKey)
		if added, err := s.tracker.MarkSeen(ctx, plan.Platform, keys); err != nil {
			log.WithError(err).Warn("failed to update seen records")
		} else {
			result.NewRecords = added
		}
	}

	for _, line := range result.Summary.Lines() {
		log.Info(line)
	}
	log.WithFields(logging.Fields{
		"records":      table.Len(),
		"units_failed": result.UnitsFailed,
		"new_records":  result.NewRecords,
	}).Info("platform complete")
	return result, nil
}

// runUnit never lets a failure escape: a failed invocation contributes no records.
func (s *ScraperService) runUnit(ctx context.Context, runID string, plan Plan, unit Unit) (BatchResult, error) {
	log := s.logger.WithFields(logging.Fields{"run_id": runID, "platform": plan.Platform, "unit": unit.Name})
	log.Info("running actor")

	raws, err := s.actor.RunActor(ctx, plan.ActorID, unit.Input)
	s.metrics.observeUnit(plan.Platform, err)
	if s.tracker != nil {
		if _, terr := s.tracker.CompleteUnit(ctx, runID); terr != nil {
			log.WithError(terr).Warn("failed to update pending units")
		}
	}
	if err != nil {
		log.WithError(err).Error("actor invocation failed")
		return BatchResult{}, err
	}

	res := plan.Pipeline.ProcessBatch(raws, unit.Context)
	s.metrics.observeBatch(plan.Platform, res)
	for _, rerr := range res.Errors {
		log.WithError(rerr).Warn("skipped record")
	}
	log.WithFields(logging.Fields{
		"raw":      len(raws),
		"accepted": len(res.Accepted),
		"stale":    res.Counts[OutcomeRejectedStale],
		"no_match": res.Counts[OutcomeRejectedNoMatch],
		"no_text":  res.Counts[OutcomeRejectedNoText],
	}).Info("unit processed")
	return res, nil
}

func (s *ScraperService) export(ctx context.Context, runID string, plan Plan, result *PlatformResult) {
	log := s.logger.WithFields(logging.Fields{"run_id": runID, "platform": plan.Platform})
	if s.exporter == nil {
		return
	}
	if result.Table.Len() == 0 {
		log.Warn("no data collected, nothing exported")
		return
	}
	path, err := s.exporter.Export(result.Table, plan.FileName)
	if err != nil {
		log.WithError(err).Error("failed to export table")
		return
	}
	result.File = path
	log.WithField("file", path).Info("table exported")

	if s.uploader == nil {
		return
	}
	location, err := s.uploader.UploadFile(ctx, runID, path)
	if err != nil {
		log.WithError(err).Error("failed to upload export")
		return
	}
	result.Location = location
	log.WithField("location", location).Info("export uploaded")
}

func (s *ScraperService) publishTable(ctx context.Context, runID string, schema domain.Schema, table domain.ResultTable) {
	if s.publisher == nil {
		return
	}
	for _, rec := range table.Records {
		s.publish(ctx, s.writerQueueURL, messages.WriterMessage{
			Type:     messages.MsgTypeRecord,
			RunID:    runID,
			Platform: table.Platform.String(),
			Values:   rec.Values,
			PostedAt: rec.PostedAt,
		})
		if schema.TextColumn != "" {
			s.publish(ctx, s.indexerQueueURL, messages.IndexMessage{
				RunID:    runID,
				Platform: table.Platform.String(),
				Values:   rec.Values,
				PostedAt: rec.PostedAt,
			})
		}
		if table.Platform == domain.PlatformFacebookPages {
			s.publishMedia(ctx, runID, rec)
		}
	}
}

var pageMedia = []struct{ kind, column string }{
	{messages.MediaKindProfile, "profile_picture_url"},
	{messages.MediaKindCover, "cover_photo_url"},
}

func (s *ScraperService) publishMedia(ctx context.Context, runID string, rec domain.CanonicalRecord) {
	for _, media := range pageMedia {
		kind, imageURL := media.kind, rec.String(media.column)
		if imageURL == "" {
			continue
		}
		s.publish(ctx, s.mediaQueueURL, messages.MediaMessage{
			RunID:        runID,
			PageURL:      rec.String("page_url"),
			Organization: rec.String("nombre_organizacion"),
			ImageURL:     imageURL,
			Kind:         kind,
		})
	}
}

func (s *ScraperService) publish(ctx context.Context, queueURL string, msg interface{}) {
	if s.publisher == nil || queueURL == "" {
		return
	}
	if err := s.publisher.SendMessage(ctx, queueURL, msg); err != nil {
		s.logger.WithError(err).WithField("queue", queueURL).Warn("failed to publish message")
	}
}

func recordKeys(table domain.ResultTable, columns []string) []string {
	keys := make([]string, 0, table.Len())
	for _, rec := range table.Records {
		if key, ok := dedupeKey(rec, columns); ok {
			keys = append(keys, key)
		}
	}
	return keys
}
