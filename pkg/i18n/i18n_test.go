package i18n

import (
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"
)

func testFS() fstest.MapFS {
	return fstest.MapFS{
		"i18n/en.yaml": {Data: []byte("title: Machines\nscreens:\n  dashboard:\n    title: Dashboard\n    cards:\n      cpu: CPU\n")},
		"i18n/de.yaml": {Data: []byte("title: Maschinen\nscreens:\n  dashboard:\n    title: Übersicht\n")},
		"i18n/README":  {Data: []byte("ignored")},
	}
}

func TestFSLoader(t *testing.T) {
	l, err := NewFSLoader(testFS(), "i18n")
	require.NoError(t, err)
	require.Equal(t, []language.Tag{language.German, language.English}, l.Languages())

	tbl, err := l.Load(language.English)
	require.NoError(t, err)
	require.Equal(t, "CPU", tbl["screens.dashboard.cards.cpu"])
	require.Equal(t, "Machines", tbl["title"])

	_, err = NewFSLoader(testFS(), "missing")
	require.Error(t, err)
}

func TestTranslator(t *testing.T) {
	l, err := NewFSLoader(testFS(), "i18n")
	require.NoError(t, err)
	r := NewRegistry()
	require.NoError(t, r.Register("screenset.mm", l))
	require.Error(t, r.Register("screenset.mm", l))

	de := r.Translator(language.MustParse("de-AT"))
	require.Equal(t, "Übersicht", de.T("screenset.mm:screens.dashboard.title"))
	require.Equal(t, "CPU", de.T("screenset.mm:screens.dashboard.cards.cpu"))
	require.Equal(t, "screenset.mm:nope", de.T("screenset.mm:nope"))
	require.Equal(t, "no-namespace", de.T("no-namespace"))
	require.Equal(t, "other:title", de.T("other:title"))

	fr := r.Translator(language.French)
	require.Equal(t, "Machines", fr.T("screenset.mm:title"))

	tk := de.Scoped("screenset.mm", "screens.dashboard")
	require.Equal(t, "Übersicht", tk("title"))
}
