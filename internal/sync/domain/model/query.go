package model

// QueryPage is one page of a cursor-paginated query. NextCursor is opaque and
// only meaningful while HasMore is true; the cursor is created fresh per query
// and discarded after the final page.
type QueryPage struct {
	Records    []ExternalRecord
	NextCursor string
	HasMore    bool
}
