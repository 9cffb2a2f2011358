package convert

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/opengovaccess/votewatch/internal/domain"
)

func TestHTMLConverter(t *testing.T) {
	c := NewHTMLConverter()

	t.Run("converts body content and extracts title", func(t *testing.T) {
		input := []byte(`<html><head><title>Meeting Minutes</title></head><body>
<h1>Board of Supervisors</h1>
<p>File No. 250210</p>
<script>trackPageView();</script>
</body></html>`)

		result, err := c.Convert(input)
		require.NoError(t, err)

		assert.Equal(t, "Meeting Minutes", result.Title)
		assert.Contains(t, result.Markdown, "# Board of Supervisors")
		assert.Contains(t, result.Markdown, "File No. 250210")
		assert.NotContains(t, result.Markdown, "trackPageView")
	})

	t.Run("strips nav and footer chrome", func(t *testing.T) {
		input := []byte(`<html><body><nav>Home | About</nav><p>Record content</p><footer>Copyright</footer></body></html>`)

		result, err := c.Convert(input)
		require.NoError(t, err)

		assert.Contains(t, result.Markdown, "Record content")
		assert.NotContains(t, result.Markdown, "Home | About")
		assert.NotContains(t, result.Markdown, "Copyright")
	})
}

func TestConverterConvert(t *testing.T) {
	c := NewConverter()

	t.Run("text passthrough", func(t *testing.T) {
		out, err := c.Convert([]byte("plain minutes text"), domain.FormatText)
		require.NoError(t, err)
		assert.Equal(t, "plain minutes text", out.Text)
		assert.Empty(t, out.Title)
	})

	t.Run("html carries the page title", func(t *testing.T) {
		input := []byte("<html><head><title>Board Minutes</title></head><body><p>File No. 1234</p></body></html>")
		out, err := c.Convert(input, domain.FormatHTML)
		require.NoError(t, err)
		assert.Contains(t, out.Text, "File No. 1234")
		assert.Equal(t, "Board Minutes", out.Title)
	})

	t.Run("unsupported format", func(t *testing.T) {
		_, err := c.Convert([]byte("x"), domain.ContentFormat("docx"))
		assert.Error(t, err)
	})

	t.Run("malformed pdf errors", func(t *testing.T) {
		_, err := c.Convert([]byte("not a pdf"), domain.FormatPDF)
		assert.Error(t, err)
	})
}

func TestCleanMarkdown(t *testing.T) {
	input := "Title   \n\n\n\n\n\nBody\t\n"
	out := cleanMarkdown(input)
	assert.Equal(t, "Title\n\n\nBody", out)
}
