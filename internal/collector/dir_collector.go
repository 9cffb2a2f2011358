package collector

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/opengovaccess/votewatch/internal/apperr"
	"github.com/opengovaccess/votewatch/internal/domain"
)

// DirCollector walks a directory of documents the acquisition gateway
// already fetched and yields them as raw documents. Document type, content
// format and meeting date are inferred from the file name.
type DirCollector struct {
	dir     string
	source  string
	baseURL string
}

type DirCollectorOption func(*DirCollector)

// WithBaseURL reconstructs source URLs as <base>/<filename> instead of
// file:// URLs, so identifiers line up with the portal's when the gateway
// preserved file names.
func WithBaseURL(base string) DirCollectorOption {
	return func(c *DirCollector) {
		c.baseURL = strings.TrimRight(base, "/")
	}
}

func NewDirCollector(dir, source string, opts ...DirCollectorOption) *DirCollector {
	c := &DirCollector{dir: dir, source: source}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *DirCollector) Collect(ctx context.Context) (<-chan Result[domain.RawDocument], error) {
	entries, err := os.ReadDir(c.dir)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read document directory %s: %w", apperr.ErrFetchUnavailable, c.dir, err)
	}

	results := make(chan Result[domain.RawDocument])
	go func() {
		defer close(results)
		for _, entry := range entries {
			if entry.IsDir() {
				continue
			}

			path := filepath.Join(c.dir, entry.Name())
			content, err := os.ReadFile(path)
			if err != nil {
				select {
				case results <- Result[domain.RawDocument]{Err: fmt.Errorf("%w: failed to read %s: %w", apperr.ErrFetchUnavailable, path, err)}:
				case <-ctx.Done():
					return
				}
				continue
			}

			doc := domain.RawDocument{
				Source:      c.source,
				URL:         c.documentURL(entry.Name(), path),
				DocType:     ClassifyDocType(entry.Name()),
				Content:     content,
				Format:      FormatFromName(entry.Name()),
				MeetingDate: ExtractDate(entry.Name()),
			}

			select {
			case results <- Result[domain.RawDocument]{Result: doc}:
			case <-ctx.Done():
				return
			}
		}
		slog.Info("Directory collection finished", "dir", c.dir, "source", c.source)
	}()

	return results, nil
}

func (c *DirCollector) documentURL(name, path string) string {
	if c.baseURL != "" {
		return c.baseURL + "/" + name
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		abs = path
	}
	return "file://" + abs
}

// ClassifyDocType infers the document type from the name the portal links
// it under.
func ClassifyDocType(name string) domain.DocType {
	lower := strings.ToLower(name)
	switch {
	case strings.Contains(lower, "transcript"):
		return domain.DocTranscript
	case strings.Contains(lower, "minute"):
		return domain.DocMinutes
	case strings.Contains(lower, "agenda"):
		return domain.DocAgenda
	default:
		return domain.DocOther
	}
}

// FormatFromName maps the file extension to a content format. Unknown
// extensions fall back to text.
func FormatFromName(name string) domain.ContentFormat {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".pdf":
		return domain.FormatPDF
	case ".html", ".htm":
		return domain.FormatHTML
	case ".csv":
		return domain.FormatCSV
	default:
		return domain.FormatText
	}
}

var (
	isoDateRe   = regexp.MustCompile(`(\d{4})[_-](\d{2})[_-](\d{2})`)
	usDateRe    = regexp.MustCompile(`(\d{2})[_-](\d{2})[_-](\d{4})`)
	monthDateRe = regexp.MustCompile(`(?i)(january|february|march|april|may|june|july|august|september|october|november|december)\s+(\d{1,2}),?\s+(\d{4})`)
)

var monthNames = map[string]time.Month{
	"january": time.January, "february": time.February, "march": time.March,
	"april": time.April, "may": time.May, "june": time.June,
	"july": time.July, "august": time.August, "september": time.September,
	"october": time.October, "november": time.November, "december": time.December,
}

// ExtractDate pulls a meeting date out of a file name or link text. Zero
// time when nothing matches; the pipeline then dates the meeting by
// ingestion day.
func ExtractDate(s string) time.Time {
	if m := isoDateRe.FindStringSubmatch(s); m != nil {
		return makeDate(m[1], m[2], m[3])
	}
	if m := usDateRe.FindStringSubmatch(s); m != nil {
		return makeDate(m[3], m[1], m[2])
	}
	if m := monthDateRe.FindStringSubmatch(s); m != nil {
		month := monthNames[strings.ToLower(m[1])]
		day, _ := strconv.Atoi(m[2])
		year, _ := strconv.Atoi(m[3])
		if day >= 1 && day <= 31 {
			return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
		}
	}
	return time.Time{}
}

func makeDate(yearStr, monthStr, dayStr string) time.Time {
	year, _ := strconv.Atoi(yearStr)
	month, _ := strconv.Atoi(monthStr)
	day, _ := strconv.Atoi(dayStr)
	if month < 1 || month > 12 || day < 1 || day > 31 {
		return time.Time{}
	}
	return time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
}
