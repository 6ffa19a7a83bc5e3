package htmlutil

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/net/html"
)

func TestGetText(t *testing.T) {
	doc, err := html.Parse(strings.NewReader(
		`<div><h2>South Garage</h2><span>45 %</span></div>`,
	))
	require.NoError(t, err)
	require.Equal(t, "South Garage45 %", GetText(doc))
}

func TestFlattenText(t *testing.T) {
	doc, err := html.Parse(strings.NewReader(
		"<div>\n\t<p>Last   updated</p>\n\t<p>2:45\tPM</p>\n</div>",
	))
	require.NoError(t, err)
	require.Equal(t, "Last updated 2:45 PM", FlattenText(doc))
}

func TestFlattenTextSeparatesAdjacentElements(t *testing.T) {
	// no whitespace between the two elements in the markup
	doc, err := html.Parse(strings.NewReader(
		`<p>Last updated 3pm</p><a>Refresh</a>`,
	))
	require.NoError(t, err)
	require.Equal(t, "Last updated 3pm Refresh", FlattenText(doc))
}
