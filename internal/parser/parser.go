package parser

import (
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/dastanaron/bookmarks-organizer/internal/logger"
	"github.com/dastanaron/bookmarks-organizer/internal/models"

	"golang.org/x/net/html"
)

// Range of ADD_DATE values that map to years 0001..9999
const (
	minEpoch = -62135596800
	maxEpoch = 253402300799
)

// Parser parses Netscape bookmark HTML files
type Parser struct {
	logger logger.Logger
}

// NewParser creates a new parser
func NewParser(log logger.Logger) *Parser {
	if log == nil {
		log = logger.NewNop()
	}
	return &Parser{logger: log}
}

// Parse reads a Netscape bookmark document and returns its bookmarks in document order.
//
// Every <DT> is visited in order. A <DT> holding an <H3> is a folder header and
// replaces the current folder name. A <DT> holding an <A> becomes a bookmark tagged
// with the current folder. The current folder is a single slot: leaving a nested
// <DL> does not restore the parent name, later entries keep the last header seen.
//
// Malformed markup is recovered by the HTML5 tree builder; the only error returned
// is a read error from r.
func (p *Parser) Parse(r io.Reader) ([]models.Bookmark, error) {
	root, err := html.Parse(r)
	if err != nil {
		return nil, err
	}
	doc := goquery.NewDocumentFromNode(root)

	bookmarks := make([]models.Bookmark, 0)
	currentFolder := models.RootFolder
	skipped := 0

	doc.Find("dt").Each(func(_ int, dt *goquery.Selection) {
		if h3 := dt.Find("h3").First(); h3.Length() > 0 {
			currentFolder = h3.Text()
			return
		}

		a := dt.Find("a").First()
		if a.Length() == 0 {
			skipped++
			return
		}

		href, _ := a.Attr("href")
		icon, _ := a.Attr("icon")
		rawDate, _ := a.Attr("add_date")

		b := models.Bookmark{
			Title:   strippedText(a.Nodes[0]),
			URL:     href,
			Folder:  currentFolder,
			AddedAt: parseAddDate(rawDate),
			Icon:    icon,
		}
		if rawDate != "" && b.AddedAt == nil {
			p.logger.Debug("ignoring unparseable add_date",
				logger.String("title", b.Title),
				logger.String("add_date", rawDate))
		}
		bookmarks = append(bookmarks, b)
	})

	p.logger.Debug("parsed bookmark document",
		logger.Int("bookmarks", len(bookmarks)),
		logger.Int("skipped", skipped))

	return bookmarks, nil
}

// parseAddDate converts epoch seconds to a time. Empty, non-numeric and
// out-of-range values yield nil.
func parseAddDate(raw string) *time.Time {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	sec, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || sec < minEpoch || sec > maxEpoch {
		return nil
	}
	t := time.Unix(sec, 0).UTC()
	return &t
}

// strippedText joins every descendant text node of n, each trimmed, skipping blanks.
func strippedText(n *html.Node) string {
	var sb strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			sb.WriteString(strings.TrimSpace(n.Data))
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return sb.String()
}
