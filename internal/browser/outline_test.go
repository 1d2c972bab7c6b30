package browser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const outlineDoc = "# Hike\n\nIntro with a [guide](docs/guide.md) and <https://example.com>.\n\n" +
	"## Getting Started\n\nText.\n\n" +
	"## Getting Started\n\n" +
	"### `hike` and *you*\n\n" +
	"<a name=\"legacy\"></a>\n\n" +
	"## Options!\n\n" +
	"<h2 id=\"faq\">Questions</h2>\n"

func TestParseOutlineHeadings(t *testing.T) {
	o := ParseOutline(outlineDoc)

	headings := o.Headings()
	require.Len(t, headings, 5)
	assert.Equal(t, Heading{Level: 1, Text: "Hike", Slug: "hike"}, headings[0])
	assert.Equal(t, "getting-started", headings[1].Slug)
	assert.Equal(t, "getting-started-1", headings[2].Slug)
	assert.Equal(t, Heading{Level: 3, Text: "hike and you", Slug: "hike-and-you"}, headings[3])
	assert.Equal(t, "options", headings[4].Slug)
	assert.Equal(t, "Hike", o.Title())
}

func TestParseOutlineAnchors(t *testing.T) {
	o := ParseOutline(outlineDoc)

	assert.True(t, o.Has("getting-started"))
	assert.True(t, o.Has("getting-started-1"))
	assert.True(t, o.Has("faq"))
	assert.False(t, o.Has("nope"))

	label, ok := o.Text("faq")
	require.True(t, ok)
	assert.Equal(t, "Questions", label)

	label, ok = o.Text("legacy")
	require.True(t, ok)
	assert.Equal(t, "Options!", label)
}

func TestParseOutlineLinks(t *testing.T) {
	o := ParseOutline(outlineDoc)

	links := o.Links()
	require.Len(t, links, 2)
	assert.Equal(t, Link{Index: 1, Text: "guide", URL: "docs/guide.md"}, links[0])
	assert.Equal(t, "https://example.com", links[1].URL)

	l, ok := o.Link(2)
	require.True(t, ok)
	assert.Equal(t, links[1], l)
	_, ok = o.Link(3)
	assert.False(t, ok)
}

func TestSlug(t *testing.T) {
	assert.Equal(t, "c-guide", Slug("C++ Guide"))
	assert.Equal(t, "snake_case-and-dashes", Slug("snake_case and-dashes"))
	assert.Equal(t, "", Slug("!!!"))
}

func TestLineOf(t *testing.T) {
	rendered := "\x1b[1mTitle\x1b[0m\n\nbody\n\x1b[35m## Install\x1b[0m\n"
	assert.Equal(t, 0, LineOf(rendered, "Title"))
	assert.Equal(t, 3, LineOf(rendered, "Install"))
	assert.Equal(t, -1, LineOf(rendered, "Missing"))
	assert.Equal(t, -1, LineOf(rendered, ""))
}

func TestFindLine(t *testing.T) {
	rendered := "\x1b[1mTitle\x1b[0m\n\nbody\n\x1b[35m## Install\x1b[0m\n"
	assert.Equal(t, 3, FindLine(rendered, "install", -1))
	assert.Equal(t, 3, FindLine(rendered, "install", 3), "wraps back to the only match")
	assert.Equal(t, 0, FindLine(rendered, "TITLE", 0))
	assert.Equal(t, 2, FindLine(rendered, "bo", 0))
	assert.Equal(t, -1, FindLine(rendered, "nope", 0))
	assert.Equal(t, -1, FindLine(rendered, " ", 0))
}
