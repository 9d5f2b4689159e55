package links

import (
	"testing"

	"github.com/quix-labs/linkfix/internals/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const base = "https://testbook.com/TS-ssc-cgl/tests/"

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"review suffix", base + "abc123/review", base + "abc123/analysis?attemptNo=1"},
		{"query string", base + "42?foo=bar", base + "42/analysis?attemptNo=1"},
		{"bare id", base + "42", base + "42/analysis?attemptNo=1"},
		{"underscore id", base + "id_01/solutions", base + "id_01/analysis?attemptNo=1"},
		{"surrounding text", "see " + base + "x9 now", base + "x9/analysis?attemptNo=1"},
		{"hyphen stops id", base + "abc-def", base + "abc/analysis?attemptNo=1"},
		{"first match wins", base + "first " + base + "second", base + "first/analysis?attemptNo=1"},
		{"already canonical", base + "abc/analysis?attemptNo=1", base + "abc/analysis?attemptNo=1"},
		{"other attempt", base + "abc/analysis?attemptNo=3", base + "abc/analysis?attemptNo=1"},
		{"accented id", base + "abcé123/review", base + "abcé123/analysis?attemptNo=1"},
		{"cyrillic id", base + "тест42?x=1", base + "тест42/analysis?attemptNo=1"},
		{"arabic-indic digits", base + "٣٤٥/review", base + "٣٤٥/analysis?attemptNo=1"},
		{"punctuation stops unicode id", base + "éé.x", base + "éé/analysis?attemptNo=1"},
		{"other host", "https://example.com/other", "https://example.com/other"},
		{"plain http", "http://testbook.com/TS-ssc-cgl/tests/1", "http://testbook.com/TS-ssc-cgl/tests/1"},
		{"host casing", "https://Testbook.com/TS-ssc-cgl/tests/1", "https://Testbook.com/TS-ssc-cgl/tests/1"},
		{"path casing", "https://testbook.com/ts-ssc-cgl/tests/1", "https://testbook.com/ts-ssc-cgl/tests/1"},
		{"missing id", base, base},
		{"missing id with slash", base + "/x", base + "/x"},
		{"empty", "", ""},
		{"whitespace kept", "  not a link  ", "  not a link  "},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Normalize(tt.in))
		})
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	inputs := []string{
		base + "abc123/review",
		base + "42?foo=bar",
		"prefix " + base + "z",
		"https://example.com/other",
		"",
	}
	for _, in := range inputs {
		once := Normalize(in)
		assert.Equal(t, once, Normalize(once), in)
	}
}

func newRecord(t *testing.T, raw string) *types.Record {
	t.Helper()
	record := types.NewRecord()
	require.NoError(t, record.UnmarshalJSON([]byte(raw)))
	return record
}

func TestNormalizerApply(t *testing.T) {
	n := &Normalizer{}
	n.InternalInit("test")
	assert.Equal(t, types.LinkField, n.Field)

	matching := newRecord(t, `{"Title":"t","Link":"`+base+`a1/review"}`)
	require.NoError(t, n.Apply(matching))
	link, err := matching.GetString("Link")
	require.NoError(t, err)
	assert.Equal(t, base+"a1/analysis?attemptNo=1", link)
	assert.Equal(t, []string{"Title", "Link"}, matching.Keys())

	other := newRecord(t, `{"Link":"https://example.com/other"}`)
	require.NoError(t, n.Apply(other))
	link, err = other.GetString("Link")
	require.NoError(t, err)
	assert.Equal(t, "https://example.com/other", link)

	assert.Equal(t, 1, n.Rewritten())
}

func TestNormalizerApplyShapeErrors(t *testing.T) {
	n := &Normalizer{}
	n.InternalInit("test")

	for _, raw := range []string{`{}`, `{"Link":null}`, `{"Link":42}`, `{"Link":["x"]}`} {
		err := n.Apply(newRecord(t, raw))
		assert.ErrorIs(t, err, types.ErrShape, raw)
	}
	assert.Zero(t, n.Rewritten())
}

func TestNormalizerCustomField(t *testing.T) {
	n := &Normalizer{Field: "url"}
	n.InternalInit("test")

	record := newRecord(t, `{"url":"`+base+`q"}`)
	require.NoError(t, n.Apply(record))
	value, err := record.GetString("url")
	require.NoError(t, err)
	assert.Equal(t, base+"q/analysis?attemptNo=1", value)
	assert.False(t, record.Has("Link"))
}
