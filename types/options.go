package types

import "go.mongodb.org/mongo-driver/bson"

// DefaultLimit is the page size used when QueryOptions.Limit is not set
const DefaultLimit int64 = 50

// QueryOptions describes one query: a filter, an optional sort, the page
// bounds and the references to populate.
type QueryOptions struct {
	// Find is the filter. Strings shaped like object ids are cast before matching.
	Find bson.M

	// Sort is passed to $sort verbatim; nil means unsorted
	Sort bson.D

	// Skip is the number of matches to skip (negative values count as 0)
	Skip int64

	// Limit is the page size (0 or negative means DefaultLimit)
	Limit int64

	// Populate lists dotted reference paths to join in, e.g. "members.studiedAt"
	Populate []string

	// Debug logs the assembled pipeline before it runs
	Debug bool
}

// WithDefaults returns a copy of o with Skip and Limit normalized
func (o QueryOptions) WithDefaults() QueryOptions {
	if o.Skip < 0 {
		o.Skip = 0
	}
	if o.Limit <= 0 {
		o.Limit = DefaultLimit
	}
	return o
}

// Result is one page of documents plus the number of documents matching the
// filter before paging.
type Result struct {
	Results []bson.M `json:"results"`
	Count   int64    `json:"count"`
}
