package transcript

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"

	"github.com/opengovaccess/votewatch/internal/domain"
)

// transcriptContainerID is the element the records portal wraps transcripts
// in. When it is absent the whole input is treated as the container.
const transcriptContainerID = "divTranscript"

var timestampRe = regexp.MustCompile(`^\d{2}:\d{2}:\d{2}`)

// ExtractSegments parses timestamped transcript markup into an ordered list
// of segments. <br> elements delimit segments; within a segment's bounds the
// first <span id="HH:MM:SS"> supplies the timestamp and plain-text runs are
// joined with single spaces. Only the container's direct children are
// scanned: span and font elements contribute their nested text as one run,
// any other nested element is page chrome and ignored. Segments whose
// normalized text is empty are dropped. Output preserves document order;
// timestamps are never re-sorted.
func ExtractSegments(htmlContent string) ([]domain.TranscriptSegment, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(htmlContent))
	if err != nil {
		return nil, fmt.Errorf("failed to parse transcript html: %w", err)
	}

	container := doc.Selection
	if sel := doc.Find("div#" + transcriptContainerID); sel.Length() > 0 {
		container = sel.First()
	} else if sel := doc.Find("body"); sel.Length() > 0 {
		container = sel.First()
	}

	var tokens []token
	for _, node := range container.Nodes {
		collectTokens(node, &tokens)
	}

	var segments []domain.TranscriptSegment
	current := newSegmentBuilder()
	for _, tok := range tokens {
		switch tok.kind {
		case tokenBreak:
			if seg, ok := current.build(); ok {
				segments = append(segments, seg)
			}
			current = newSegmentBuilder()
		case tokenTimestamp:
			// First timestamp within the bounds wins.
			if current.timestamp == "" {
				current.timestamp = tok.value
			}
		case tokenText:
			current.texts = append(current.texts, tok.value)
		}
	}
	if seg, ok := current.build(); ok {
		segments = append(segments, seg)
	}

	return segments, nil
}

type tokenKind int

const (
	tokenText tokenKind = iota
	tokenTimestamp
	tokenBreak
)

type token struct {
	kind  tokenKind
	value string
}

// collectTokens scans the container's direct children into segment
// delimiters, timestamps and text runs, in document order. span and font
// elements are atomic: their nested text is captured in one run and never
// contributes delimiters. Other nested elements are skipped entirely so
// that sidebar and chrome markup cannot leak into segments.
func collectTokens(n *html.Node, tokens *[]token) {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		switch {
		case c.Type == html.TextNode:
			if text := strings.TrimSpace(c.Data); text != "" {
				*tokens = append(*tokens, token{kind: tokenText, value: text})
			}
		case c.Type != html.ElementNode:
			continue
		case c.Data == "br":
			*tokens = append(*tokens, token{kind: tokenBreak})
		case c.Data == "span":
			if id := nodeAttr(c, "id"); timestampRe.MatchString(id) {
				*tokens = append(*tokens, token{kind: tokenTimestamp, value: id})
				continue
			}
			if text := nodeText(c); text != "" && !timestampRe.MatchString(text) {
				*tokens = append(*tokens, token{kind: tokenText, value: text})
			}
		case c.Data == "font":
			if text := nodeText(c); text != "" && !timestampRe.MatchString(text) {
				*tokens = append(*tokens, token{kind: tokenText, value: text})
			}
		}
	}
}

type segmentBuilder struct {
	timestamp string
	texts     []string
}

func newSegmentBuilder() *segmentBuilder {
	return &segmentBuilder{}
}

func (b *segmentBuilder) build() (domain.TranscriptSegment, bool) {
	text := normalizeWhitespace(strings.Join(b.texts, " "))
	if text == "" {
		return domain.TranscriptSegment{}, false
	}
	return domain.TranscriptSegment{Text: text, Timestamp: b.timestamp}, true
}

var whitespaceRe = regexp.MustCompile(`\s+`)

func normalizeWhitespace(s string) string {
	return strings.TrimSpace(whitespaceRe.ReplaceAllString(s, " "))
}

func nodeAttr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

func nodeText(n *html.Node) string {
	var sb strings.Builder
	var walk func(*html.Node)
	walk = func(node *html.Node) {
		if node.Type == html.TextNode {
			sb.WriteString(node.Data)
		}
		for c := node.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return strings.TrimSpace(sb.String())
}
