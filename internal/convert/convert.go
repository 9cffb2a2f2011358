// Package convert turns raw document content into plain text suitable for
// section splitting and vote extraction.
package convert

import (
	"fmt"

	"github.com/opengovaccess/votewatch/internal/domain"
)

// Converter dispatches on content format. An empty result is not an error
// at this layer; the pipeline records the document and classifies it as a
// parse-empty case.
type Converter struct {
	html *HTMLConverter
}

func NewConverter() *Converter {
	return &Converter{html: NewHTMLConverter()}
}

// Result is a document's converted text plus whatever metadata the
// conversion surfaced. Only HTML inputs carry a title.
type Result struct {
	Text  string
	Title string
}

func (c *Converter) Convert(content []byte, format domain.ContentFormat) (Result, error) {
	switch format {
	case domain.FormatHTML:
		result, err := c.html.Convert(content)
		if err != nil {
			return Result{}, err
		}
		return Result{Text: result.Markdown, Title: result.Title}, nil
	case domain.FormatPDF:
		text, err := ExtractPDFText(content)
		if err != nil {
			return Result{}, err
		}
		return Result{Text: text}, nil
	case domain.FormatText, domain.FormatCSV:
		return Result{Text: string(content)}, nil
	default:
		return Result{}, fmt.Errorf("unsupported content format: %s", format)
	}
}
