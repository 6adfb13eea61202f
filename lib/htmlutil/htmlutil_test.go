package htmlutil

import (
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/require"
)

func TestFirstText(t *testing.T) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(`
		<div class="a">  hello <b>world</b></div>
		<div class="b"><b>nested</b> tail</div>
		<div class="c"></div>
	`))
	require.NoError(t, err)

	text, ok := FirstText(doc.Find(".a").Get(0))
	require.True(t, ok)
	require.Equal(t, "  hello ", text)

	_, ok = FirstText(doc.Find(".b").Get(0))
	require.False(t, ok)

	_, ok = FirstText(doc.Find(".c").Get(0))
	require.False(t, ok)

	_, ok = FirstText(nil)
	require.False(t, ok)

	require.Equal(t, "nested tail", GetText(doc.Find(".b").Get(0)))
}
