package parser

import (
	"bytes"
	"fmt"

	"wml-taglinks/models"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// Parser extracts tag documentation links from the reference page
type Parser struct{}

// NewParser creates a new Parser instance
func NewParser() *Parser {
	return &Parser{}
}

// ParseLinks returns every anchor found in the table rows of the page,
// in row order and then in order within the row.
//
// The first row of the document is treated as a header and skipped
// whatever it contains. A page with no rows, or with only the header,
// yields no links and no error. Anchors without an href are returned
// with HasHref unset; deciding what to do with them is left to the caller.
func (p *Parser) ParseLinks(body []byte) ([]models.Link, error) {
	root, err := html.Parse(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML: %w", err)
	}
	doc := goquery.NewDocumentFromNode(root)

	links := []models.Link{}
	doc.Find("tr").Each(func(i int, row *goquery.Selection) {
		if i == 0 {
			return
		}
		links = append(links, p.extractRowLinks(row, i)...)
	})

	return links, nil
}

// extractRowLinks collects the anchors of a single data row
func (p *Parser) extractRowLinks(row *goquery.Selection, rowIndex int) []models.Link {
	var links []models.Link
	row.Find("a").Each(func(_ int, a *goquery.Selection) {
		href, ok := a.Attr("href")
		links = append(links, models.Link{
			Text:    a.Text(),
			Href:    href,
			HasHref: ok,
			Row:     rowIndex,
		})
	})
	return links
}
