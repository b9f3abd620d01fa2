package models

// Link represents an anchor found in a data row of the reference table
type Link struct {
	Text    string // Visible text exactly as it appears in the document
	Href    string // Raw href attribute, usually relative to the wiki root
	HasHref bool   // False when the anchor carries no href attribute at all
	Row     int    // 1-based index of the data row (the header row is not counted)
}
