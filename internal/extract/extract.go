package extract

import (
	"errors"
	"fmt"
	"io"

	"github.com/PuerkitoBio/goquery"
)

// EntrySelector matches the table cell holding one trending entry.
const EntrySelector = "td.td-02"

// ErrParse is returned when the document cannot be read as HTML at all.
var ErrParse = errors.New("unparseable document")

// Entry is one trending item as it appears in the page, before normalization.
type Entry struct {
	Title    string
	RawScore string
	HasScore bool
	Link     string
}

// Extract walks every entry cell in document order. Cells without an anchor are
// skipped. Title and score text are kept verbatim, surrounding whitespace
// included. Link is origin concatenated with the anchor's href, unvalidated.
func Extract(r io.Reader, origin string) ([]Entry, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrParse, err)
	}

	var entries []Entry
	doc.Find(EntrySelector).Each(func(_ int, cell *goquery.Selection) {
		if e, ok := entryFrom(cell, origin); ok {
			entries = append(entries, e)
		}
	})
	return entries, nil
}

func entryFrom(cell *goquery.Selection, origin string) (Entry, bool) {
	anchor := cell.Find("a").First()
	if anchor.Length() == 0 {
		return Entry{}, false
	}

	href, _ := anchor.Attr("href")
	e := Entry{
		Title: anchor.Text(),
		Link:  origin + href,
	}

	if span := cell.Find("span").First(); span.Length() > 0 {
		e.RawScore = span.Text()
		e.HasScore = true
	}
	return e, true
}
