package sanitize

import (
	"bytes"
	"context"
	"encoding/xml"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/klauspost/pgzip"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEscapesBareMarkupInsideAttributeValues(t *testing.T) {
	in := `<GENESET STANDARD_NAME="X" DESC="a & b <c>"/>`
	out, n := EscapeAttributes(in)
	assert.Equal(t, `<GENESET STANDARD_NAME="X" DESC="a &amp; b &lt;c&gt;"/>`, out)
	assert.Equal(t, 3, n)
}

func TestKeepsExistingEntities(t *testing.T) {
	in := `<GENESET A="&lt;&gt;&amp;&quot;&apos;&#169;&#xA9;"/>`
	out, n := EscapeAttributes(in)
	assert.Equal(t, in, out)
	assert.Zero(t, n)
}

func TestEmbeddedQuoteHeuristic(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"embedded", `<GENESET A="say "hi" now" B="x"/>`, `<GENESET A="say &quot;hi&quot; now" B="x"/>`},
		{"end of tag", `<GENESET A="x">`, `<GENESET A="x">`},
		{"self closing after space", `<GENESET A="x" />`, `<GENESET A="x" />`},
		{"end of input", `<GENESET A="x"`, `<GENESET A="x"`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			out, _ := EscapeAttributes(tc.in)
			assert.Equal(t, tc.want, out)
		})
	}
}

func TestLeavesOtherElementsAlone(t *testing.T) {
	in := `<MSIGDB NAME="a & b"><GENESETS X="<"/><GENESET A="1 & 2"/></MSIGDB>`
	out, n := EscapeAttributes(in)
	assert.Equal(t, `<MSIGDB NAME="a & b"><GENESETS X="<"/><GENESET A="1 &amp; 2"/></MSIGDB>`, out)
	assert.Equal(t, 1, n)
}

func TestBytesRepairsEncodingAndIllegalCharacters(t *testing.T) {
	in := []byte("<GENESET A=\"ok\xff\x01\"/>")
	out, rep, err := Bytes(in)
	require.NoError(t, err)
	assert.Equal(t, "<GENESET A=\"ok�\"/>", string(out))
	assert.Equal(t, Report{InvalidUTF8: 1, RemovedChars: 1}, rep)
	assert.True(t, rep.Changed())
}

func TestSanitizeIsIdempotent(t *testing.T) {
	docs := []string{
		`<MSIGDB><GENESET STANDARD_NAME="X" DESC="a & b <c>" NOTE="he said "Hello" ok"/></MSIGDB>`,
		"<GENESET A=\"\x00\xfe&&#12;\" B=\"say \"x\" y\"></GENESET>",
		`<GENESET A="x"/><GENESET B="&amp;&"/>`,
	}
	for _, d := range docs {
		first, _, err := Bytes([]byte(d))
		require.NoError(t, err)
		second, rep, err := Bytes(first)
		require.NoError(t, err)
		assert.Equal(t, string(first), string(second))
		assert.False(t, rep.Changed(), "second pass reported %s", rep)
	}
}

func TestRepairedDocumentParses(t *testing.T) {
	in := `<MSIGDB><GENESET STANDARD_NAME="X" DESCRIPTION_BRIEF="p<0.05 & "up" regulated" MEMBERS="a"/></MSIGDB>`
	var buf bytes.Buffer
	_, err := Sanitize(bytes.NewBufferString(in), &buf)
	require.NoError(t, err)

	var doc struct {
		Sets []struct {
			Name  string `xml:"STANDARD_NAME,attr"`
			Brief string `xml:"DESCRIPTION_BRIEF,attr"`
		} `xml:"GENESET"`
	}
	require.NoError(t, xml.Unmarshal(buf.Bytes(), &doc))
	require.Len(t, doc.Sets, 1)
	assert.Equal(t, `p<0.05 & "up" regulated`, doc.Sets[0].Brief)
}

func TestFileReturnsOriginalPathWhenClean(t *testing.T) {
	dir := t.TempDir()
	p := filepath.Join(dir, "clean.xml")
	require.NoError(t, os.WriteFile(p, []byte(`<GENESET A="x"/>`), 0o644))

	res, err := File(context.Background(), p, dir)
	require.NoError(t, err)
	defer res.Cleanup()
	assert.Equal(t, p, res.Path)
	assert.False(t, res.Report.Changed())
}

func TestFileWritesRepairedCopyForGzip(t *testing.T) {
	dir := t.TempDir()
	p := filepath.Join(dir, "dump.xml.gz")
	var gz bytes.Buffer
	zw := pgzip.NewWriter(&gz)
	_, err := zw.Write([]byte(`<GENESET A="1 & 2"/>`))
	require.NoError(t, err)
	require.NoError(t, zw.Close())
	require.NoError(t, os.WriteFile(p, gz.Bytes(), 0o644))

	res, err := File(context.Background(), p, filepath.Join(dir, "tmp"))
	require.NoError(t, err)
	assert.NotEqual(t, p, res.Path)
	b, err := os.ReadFile(res.Path)
	require.NoError(t, err)
	assert.Equal(t, `<GENESET A="1 &amp; 2"/>`, string(b))
	assert.Equal(t, 1, res.Report.EscapedChars)

	res.Cleanup()
	_, err = os.Stat(res.Path)
	assert.True(t, os.IsNotExist(err))
}

func TestFileStreamsSameTextAsBytes(t *testing.T) {
	dir := t.TempDir()
	doc := []byte("<MSIGDB>\n<GENESET A=\"x < y\" B=\"bad\xffbyte\x01\"/>\n<GENESET A=\"ok\"/>\n</MSIGDB>")
	p := filepath.Join(dir, "dump.xml")
	require.NoError(t, os.WriteFile(p, doc, 0o644))

	want, wantRep, err := Bytes(doc)
	require.NoError(t, err)

	res, err := File(context.Background(), p, dir)
	require.NoError(t, err)
	defer res.Cleanup()
	got, err := os.ReadFile(res.Path)
	require.NoError(t, err)
	assert.Equal(t, string(want), string(got))
	assert.Equal(t, wantRep, res.Report)
}

func TestFileCopiesWhenOnlyEscapesAreNeeded(t *testing.T) {
	dir := t.TempDir()
	p := filepath.Join(dir, "dump.xml")
	require.NoError(t, os.WriteFile(p, []byte(`<GENESET A="a & b"/>`), 0o644))

	res, err := File(context.Background(), p, dir)
	require.NoError(t, err)
	defer res.Cleanup()
	assert.NotEqual(t, p, res.Path)
	assert.Equal(t, Report{EscapedChars: 1}, res.Report)
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("disk full") }

func TestSanitizeReportsWriteFailure(t *testing.T) {
	_, err := Sanitize(bytes.NewReader([]byte(`<GENESET A="x"/>`)), failingWriter{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "disk full")
}
