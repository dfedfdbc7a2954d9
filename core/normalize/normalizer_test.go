package normalize

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMarkdownNormalizer_Normalize(t *testing.T) {
	tests := []struct {
		name string
		html string
		want string
	}{
		{"paragraph", "<p>hello</p>", "hello"},
		{"atx heading", "<h2>Title</h2>", "## Title"},
		{"empty", "", ""},
		{"whitespace only", "  \n\t ", ""},
	}
	n := New()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := n.Normalize(tt.html)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestMarkdownNormalizer_Normalize_LinksAndTables(t *testing.T) {
	html := `<div><a href="https://example.com/a">A</a>
<table><thead><tr><th>Name</th><th>Price</th></tr></thead>
<tbody><tr><td>Samsung</td><td>70,000</td></tr></tbody></table></div>`

	got, err := New().Normalize(html)

	require.NoError(t, err)
	assert.Contains(t, got, "[A](https://example.com/a)")
	assert.Contains(t, got, "Samsung")
	assert.Contains(t, got, "|")
}

func TestMarkdownNormalizer_Normalize_Deterministic(t *testing.T) {
	html := `<div><h3>Board</h3><p>one</p><p>two</p><ul><li>x</li></ul></div>`
	n := New()

	first, err := n.Normalize(html)
	require.NoError(t, err)
	for range 5 {
		again, err := n.Normalize(html)
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}
}

func TestMarkdownNormalizer_Normalize_PlainTextIdempotent(t *testing.T) {
	n := New()
	once, err := n.Normalize("<p>hello world</p>")
	require.NoError(t, err)

	twice, err := n.Normalize("<p>" + once + "</p>")
	require.NoError(t, err)
	assert.Equal(t, once, twice)
}

func TestCollapseBlankLines(t *testing.T) {
	in := "\n\na\n\n\n\nb\n \n\t\n\nc\n\n"

	got := CollapseBlankLines(in)

	assert.Equal(t, "a\n\nb\n\nc", got)
	assert.Equal(t, got, CollapseBlankLines(got))
}
