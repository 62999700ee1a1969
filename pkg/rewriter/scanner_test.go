package rewriter

import (
	"testing"

	"github.com/arthur-debert/cssuseref/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScan(t *testing.T) {
	text := `a { background: url("x.png"); }
b { src: url( 'fonts/a.woff?v=1' ) format("woff"), url(fonts/a.eot?#iefix); }
c { background: url(data:image/png;base64,AAAA); }`

	refs := Scan(text)
	require.Len(t, refs, 4)

	assert.Equal(t, `url("x.png")`, refs[0].RawMatch)
	assert.Equal(t, `"x.png"`, refs[0].RawValue)
	assert.Equal(t, "x.png", refs[0].Value)
	assert.Equal(t, refs[0].RawMatch, text[refs[0].Start:refs[0].End])

	assert.Equal(t, "fonts/a.woff?v=1", refs[1].Value)
	assert.Equal(t, "fonts/a.eot?#iefix", refs[2].Value)
	assert.Equal(t, "data:image/png;base64,AAAA", refs[3].Value)

	for _, r := range refs {
		assert.Equal(t, r.RawMatch, text[r.Start:r.End])
	}
}

func TestScanStopsAtFirstParen(t *testing.T) {
	refs := Scan(`url(a(1).png)`)
	require.Len(t, refs, 1)
	assert.Equal(t, "url(a(1)", refs[0].RawMatch)
}

func TestScanDoesNotCrossLines(t *testing.T) {
	refs := Scan("url(a.png\n)")
	assert.Empty(t, refs)
}

func TestScanNoOccurrences(t *testing.T) {
	assert.Empty(t, Scan(""))
	assert.Empty(t, Scan("body { color: red }"))
}

func TestTrimValue(t *testing.T) {
	tests := []struct {
		raw  string
		want string
	}{
		{`"a.png"`, "a.png"},
		{`'a.png'`, "a.png"},
		{`  "a.png"  `, "a.png"},
		{`" a.png "`, "a.png"},
		{`a.png`, "a.png"},
		{`"a.png'`, `"a.png'`},
		{`"`, `"`},
		{``, ``},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			assert.Equal(t, tt.want, TrimValue(tt.raw))
		})
	}
}

func TestIsPassThrough(t *testing.T) {
	tests := []struct {
		value string
		want  bool
	}{
		{"/images/a.png", true},
		{"//cdn.example.com/a.png", true},
		{"data:image/png;base64,AAAA", true},
		{"#gradient", true},
		{"http://example.com/a.png", true},
		{"https://example.com/a.png", true},
		{"", true},
		{"../images/a.png", false},
		{"images/a.png?v=1", false},
		{"a.png#frag", false},
		{"HTTP://example.com/a.png", false},
	}

	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			assert.Equal(t, tt.want, IsPassThrough(tt.value))
		})
	}
}

func TestRebuild(t *testing.T) {
	text := `a{b:url(x.png)} c{d:url(y.png)}`
	refs := Scan(text)
	require.Len(t, refs, 2)

	occs := []types.Occurrence{
		{Reference: refs[0], State: types.OccurrenceRewritten, Replacement: `url("../x.png")`},
		{Reference: refs[1], State: types.OccurrenceUnreadable},
	}

	assert.Equal(t, `a{b:url("../x.png")} c{d:url(y.png)}`, Rebuild(text, occs))
	assert.Equal(t, text, Rebuild(text, nil))
}
