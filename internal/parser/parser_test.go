package parser

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/dastanaron/bookmarks-organizer/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const chromeExport = `<!DOCTYPE NETSCAPE-Bookmark-file-1>
<!-- This is an automatically generated file.
     It will be read and overwritten.
     DO NOT EDIT! -->
<META HTTP-EQUIV="Content-Type" CONTENT="text/html; charset=UTF-8">
<TITLE>Bookmarks</TITLE>
<H1>Bookmarks</H1>
<DL><p>
    <DT><A HREF="https://top.example.com" ADD_DATE="1600000000">Top level</A>
    <DT><H3 ADD_DATE="1600000000" PERSONAL_TOOLBAR_FOLDER="true">Bookmarks bar</H3>
    <DL><p>
        <DT><A HREF="https://github.com/x" ADD_DATE="1700000000" ICON="data:image/png;base64,AAAA">Repo</A>
        <DT><H3>Nested</H3>
        <DL><p>
            <DT><A HREF="https://nested.example.com">  Deep   </A>
        </DL><p>
        <DT><A HREF="https://after.example.com">After nested</A>
    </DL><p>
</DL><p>
`

func parse(t *testing.T, doc string) []models.Bookmark {
	t.Helper()
	bookmarks, err := NewParser(nil).Parse(strings.NewReader(doc))
	require.NoError(t, err)
	return bookmarks
}

func TestParseChromeExport(t *testing.T) {
	bookmarks := parse(t, chromeExport)
	require.Len(t, bookmarks, 4)

	assert.Equal(t, "Top level", bookmarks[0].Title)
	assert.Equal(t, "https://top.example.com", bookmarks[0].URL)
	assert.Equal(t, models.RootFolder, bookmarks[0].Folder)

	repo := bookmarks[1]
	assert.Equal(t, "Repo", repo.Title)
	assert.Equal(t, "Bookmarks bar", repo.Folder)
	require.NotNil(t, repo.AddedAt)
	assert.Equal(t, int64(1700000000), repo.AddedAt.Unix())
	assert.Equal(t, "data:image/png;base64,AAAA", repo.Icon)

	assert.Equal(t, "Deep", bookmarks[2].Title)
	assert.Equal(t, "Nested", bookmarks[2].Folder)
	assert.Nil(t, bookmarks[2].AddedAt)
	assert.Empty(t, bookmarks[2].Icon)
}

func TestParseFolderSlotIsNotRestored(t *testing.T) {
	bookmarks := parse(t, chromeExport)
	require.Len(t, bookmarks, 4)

	// the entry after the nested list keeps the nested folder name
	assert.Equal(t, "After nested", bookmarks[3].Title)
	assert.Equal(t, "Nested", bookmarks[3].Folder)
}

func TestParseLinkBeforeSiblingFolder(t *testing.T) {
	bookmarks := parse(t, `<DL><p>
<DT><A HREF="https://first.example">First</A>
<DT><H3>Work</H3>
<DL><p>
<DT><A HREF="https://second.example">Second</A>
</DL><p>
</DL><p>`)
	require.Len(t, bookmarks, 2)

	// an unclosed <DT> ends at the next <DT>, the link is not taken for a folder header
	assert.Equal(t, "First", bookmarks[0].Title)
	assert.Equal(t, models.RootFolder, bookmarks[0].Folder)
	assert.Equal(t, "Work", bookmarks[1].Folder)
}

func TestParseFolderMarkerOnly(t *testing.T) {
	bookmarks := parse(t, `<DL><p><DT><H3>Only a folder</H3></DL>`)
	assert.Empty(t, bookmarks)

	bookmarks = parse(t, `<DL><p><DT><H3>Dev</H3><DL><p><DT><A HREF="https://a.example">A</A></DL></DL>`)
	require.Len(t, bookmarks, 1)
	assert.Equal(t, "Dev", bookmarks[0].Folder)
}

func TestParseAddDateTolerance(t *testing.T) {
	tests := []struct {
		name    string
		attr    string
		wantNil bool
		want    int64
	}{
		{name: "numeric", attr: `ADD_DATE="1700000000"`, want: 1700000000},
		{name: "padded", attr: `ADD_DATE=" 42 "`, want: 42},
		{name: "zero", attr: `ADD_DATE="0"`, want: 0},
		{name: "non numeric", attr: `ADD_DATE="yesterday"`, wantNil: true},
		{name: "empty", attr: `ADD_DATE=""`, wantNil: true},
		{name: "missing", attr: ``, wantNil: true},
		{name: "out of range", attr: `ADD_DATE="99999999999999"`, wantNil: true},
		{name: "float", attr: `ADD_DATE="1700000000.5"`, wantNil: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bookmarks := parse(t, `<DL><DT><A HREF="https://x.example" `+tt.attr+`>X</A></DL>`)
			require.Len(t, bookmarks, 1)
			if tt.wantNil {
				assert.Nil(t, bookmarks[0].AddedAt)
				return
			}
			require.NotNil(t, bookmarks[0].AddedAt)
			assert.Equal(t, tt.want, bookmarks[0].AddedAt.Unix())
			assert.Equal(t, time.UTC, bookmarks[0].AddedAt.Location())
		})
	}
}

func TestParseMalformedMarkup(t *testing.T) {
	doc := `<DL><p>
<DT><A>No href</A>
<DT><unknown-tag>noise</unknown-tag>
<DT>plain text item
<DT><A HREF="https://ok.example"><B>Bold</B> <I>title</I>
<DT><A HREF="https://last.example">Unclosed`

	bookmarks := parse(t, doc)
	require.Len(t, bookmarks, 3)

	assert.Equal(t, "", bookmarks[0].URL)
	assert.Equal(t, "No href", bookmarks[0].Title)
	assert.Equal(t, "Boldtitle", bookmarks[1].Title)
	assert.Equal(t, "https://ok.example", bookmarks[1].URL)
	assert.Equal(t, "Unclosed", bookmarks[2].Title)
}

func TestParseDecodesEntities(t *testing.T) {
	bookmarks := parse(t, `<DL><DT><A HREF="https://x.example/?a=1&amp;b=2">Tom &amp; Jerry</A></DL>`)
	require.Len(t, bookmarks, 1)
	assert.Equal(t, "https://x.example/?a=1&b=2", bookmarks[0].URL)
	assert.Equal(t, "Tom & Jerry", bookmarks[0].Title)
}

func TestParseEmptyInput(t *testing.T) {
	assert.Empty(t, parse(t, ""))
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) { return 0, errors.New("disk on fire") }

func TestParseReadError(t *testing.T) {
	_, err := NewParser(nil).Parse(failingReader{})
	assert.Error(t, err)
}
