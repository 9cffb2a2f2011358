package ingest

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/opengovaccess/votewatch/internal/apperr"
	"github.com/opengovaccess/votewatch/internal/collector"
	"github.com/opengovaccess/votewatch/internal/convert"
	"github.com/opengovaccess/votewatch/internal/domain"
	"github.com/opengovaccess/votewatch/internal/minutes"
	"github.com/opengovaccess/votewatch/internal/storage"
	"github.com/opengovaccess/votewatch/internal/tracker"
	"github.com/opengovaccess/votewatch/internal/transcript"
	"github.com/opengovaccess/votewatch/internal/votes"
)

const defaultDocTimeout = 2 * time.Minute

// DocPipeline consumes raw documents from a collector and drives them
// through conversion, section splitting, vote extraction and persistence.
type DocPipeline struct {
	collector collector.Collector[domain.RawDocument]
	storer    storage.Storer
	tracker   tracker.Tracker
	converter *convert.Converter
	officials []domain.Official
	policy    votes.Policy
	mode      tracker.Mode
	timeout   time.Duration
}

type DocPipelineOption func(*DocPipeline)

// WithMode selects incremental or force processing. Incremental is the
// default.
func WithMode(mode tracker.Mode) DocPipelineOption {
	return func(p *DocPipeline) {
		p.mode = mode
	}
}

// WithPolicy overrides the vote reconciliation policy.
func WithPolicy(policy votes.Policy) DocPipelineOption {
	return func(p *DocPipeline) {
		p.policy = policy
	}
}

// WithDocTimeout bounds the processing time of a single document.
func WithDocTimeout(d time.Duration) DocPipelineOption {
	return func(p *DocPipeline) {
		p.timeout = d
	}
}

func NewDocPipeline(
	c collector.Collector[domain.RawDocument],
	storer storage.Storer,
	tr tracker.Tracker,
	officials []domain.Official,
	opts ...DocPipelineOption,
) *DocPipeline {
	p := &DocPipeline{
		collector: c,
		storer:    storer,
		tracker:   tr,
		converter: convert.NewConverter(),
		officials: officials,
		policy:    votes.PolicyRollCallWins{},
		mode:      tracker.ModeIncremental,
		timeout:   defaultDocTimeout,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Run seeds the roster, then drains the collector. Store or tracker
// unavailability aborts the batch; anything scoped to a single document or
// item is logged and skipped.
func (p *DocPipeline) Run(ctx context.Context) error {
	start := time.Now()

	if err := p.storer.SeedOfficials(ctx, p.officials); err != nil {
		return apperr.NewFatal(fmt.Errorf("failed to seed officials: %w", err))
	}
	stored, err := p.storer.ListOfficials(ctx)
	if err != nil {
		return apperr.NewFatal(fmt.Errorf("failed to load officials: %w", err))
	}
	roster := votes.NewRoster(stored)

	results, err := p.collector.Collect(ctx)
	if err != nil {
		return fmt.Errorf("failed to start collection: %w", err)
	}

	var stats Stats
	runErr := p.consume(ctx, results, roster, &stats)

	slog.Info("Pipeline run completed",
		"duration", time.Since(start),
		"mode", p.mode,
		"processed", stats.Processed,
		"skipped", stats.Skipped,
		"parseEmpty", stats.ParseEmpty,
		"itemsSaved", stats.ItemsSaved,
		"failed", stats.Failed,
	)
	return runErr
}

func (p *DocPipeline) consume(ctx context.Context, results <-chan collector.Result[domain.RawDocument], roster votes.Roster, stats *Stats) error {
	for {
		select {
		case <-ctx.Done():
			slog.Info("Pipeline context cancelled, stopping collection")
			return ctx.Err()
		case res, ok := <-results:
			if !ok {
				slog.Info("Collection channel closed, stopping collection")
				return nil
			}
			if res.Err != nil {
				slog.Error("Error collecting document", "error", res.Err)
				stats.Failed++
				continue
			}

			docCtx, cancel := context.WithTimeout(ctx, p.timeout)
			err := p.processDocument(docCtx, res.Result, roster, stats)
			cancel()

			if apperr.IsFatal(err) {
				slog.Error("Aborting run", "error", err, "url", res.Result.URL)
				return err
			}
			if err != nil {
				slog.Error("Error processing document", "error", err, "url", res.Result.URL)
				stats.Failed++
			}
		}
	}
}

func (p *DocPipeline) processDocument(ctx context.Context, raw domain.RawDocument, roster votes.Roster, stats *Stats) error {
	proceed, err := p.tracker.ShouldProcess(ctx, raw.URL, p.mode)
	if err != nil {
		return apperr.NewFatal(fmt.Errorf("tracker check failed for %s: %w", raw.URL, err))
	}
	if !proceed {
		slog.Debug("Skipping already processed document", "url", raw.URL)
		stats.Skipped++
		return nil
	}

	meetingDate := raw.MeetingDate
	if meetingDate.IsZero() {
		// No date in the document's name; fall back to the ingestion day.
		meetingDate = time.Now().UTC()
	}
	meeting, err := p.storer.GetOrCreateMeeting(ctx, domain.Meeting{Datetime: domain.NormalizeDate(meetingDate)})
	if err != nil {
		return apperr.NewFatal(fmt.Errorf("failed to resolve meeting: %w", err))
	}

	converted, convErr := p.convertContent(raw)
	if convErr != nil {
		slog.Warn("Content conversion failed, storing raw only", "url", raw.URL, "error", convErr)
	}
	text := converted.Text

	doc := domain.Document{
		Source:           raw.Source,
		URL:              raw.URL,
		RawContent:       string(raw.Content),
		ContentFormat:    raw.Format,
		ConvertedContent: text,
		Metadata:         documentMetadata(raw.Metadata, converted.Title),
		MeetingID:        meeting.ID,
	}
	if _, err := p.storer.UpsertDocument(ctx, doc); err != nil {
		return apperr.NewFatal(fmt.Errorf("failed to store document: %w", err))
	}

	if strings.TrimSpace(text) == "" {
		parseErr := apperr.NewParseEmpty(raw.URL)
		slog.Warn("Document yielded no text", "url", raw.URL, "docType", raw.DocType, "error", parseErr)
		stats.ParseEmpty++
		p.markProcessed(ctx, raw.URL)
		return nil
	}

	if raw.DocType == domain.DocMinutes {
		p.processMinutes(ctx, text, meeting, roster, stats)
	}

	p.markProcessed(ctx, raw.URL)
	stats.Processed++
	return nil
}

// convertContent produces the document's stored text form. Transcripts are
// rendered to footnoted markdown with timestamp markers; everything else
// goes through the format converter.
func (p *DocPipeline) convertContent(raw domain.RawDocument) (convert.Result, error) {
	if raw.DocType == domain.DocTranscript && raw.Format == domain.FormatHTML {
		text, err := transcript.Convert(string(raw.Content), true)
		return convert.Result{Text: text}, err
	}
	return p.converter.Convert(raw.Content, raw.Format)
}

// documentMetadata merges the converter's extracted title into the
// collector-supplied metadata. Collector values win on key collision.
func documentMetadata(collected map[string]any, title string) map[string]any {
	if title == "" {
		return collected
	}
	if _, ok := collected["title"]; ok {
		return collected
	}
	merged := make(map[string]any, len(collected)+1)
	for k, v := range collected {
		merged[k] = v
	}
	merged["title"] = title
	return merged
}

// processMinutes splits minutes text into items and persists each one with
// its extracted actions. A failing item never aborts its siblings.
func (p *DocPipeline) processMinutes(ctx context.Context, text string, meeting domain.Meeting, roster votes.Roster, stats *Stats) {
	sections := minutes.Split(text)

	seen := make(map[string]bool, len(sections))
	for _, section := range sections {
		// The first occurrence of a file number carries the item's
		// disposition; later repetitions are cross-references.
		if seen[section.FileNumber] {
			continue
		}
		seen[section.FileNumber] = true

		if err := p.saveSection(ctx, section, meeting, roster); err != nil {
			slog.Error("Error saving legislative item",
				"fileNumber", section.FileNumber, "meetingId", meeting.ID, "error", err)
			stats.Failed++
			continue
		}
		stats.ItemsSaved++
	}
}

func (p *DocPipeline) saveSection(ctx context.Context, section minutes.Section, meeting domain.Meeting, roster votes.Roster) error {
	candidates := votes.Extract(section.Text, roster, p.policy)
	candidates = append(candidates, votes.ExtractSponsors(section.Text, roster)...)

	actions := make([]domain.Action, 0, len(candidates))
	for _, c := range candidates {
		actions = append(actions, domain.Action{
			OfficialID: c.Official.ID,
			MeetingID:  meeting.ID,
			Type:       c.Type,
			Vote:       c.Vote,
		})
	}

	item := domain.Legislation{
		FileNumber: section.FileNumber,
		Title:      section.Title,
		Status:     section.Status,
	}
	if len(section.VoteCounts) > 0 {
		counts := make(map[string]any, len(section.VoteCounts))
		for vote, n := range section.VoteCounts {
			counts[string(vote)] = n
		}
		item.Extra = map[string]any{"voteCounts": counts}
	}

	_, err := p.storer.SaveItem(ctx, item, actions)
	return err
}

func (p *DocPipeline) markProcessed(ctx context.Context, identifier string) {
	completer, ok := p.tracker.(tracker.Completer)
	if !ok {
		return
	}
	if err := completer.MarkProcessed(ctx, identifier); err != nil {
		slog.Error("Error marking document processed", "url", identifier, "error", err)
	}
}
