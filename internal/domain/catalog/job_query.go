package catalog

import (
	"strings"

	"github.com/Wolf09/back-prof-sub000/internal/domain/shared"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// JobSortField is a column the catalog can be ordered by
type JobSortField string

const (
	JobSortByPrice         JobSortField = "price"
	JobSortByCreatedAt     JobSortField = "created_at"
	JobSortByAverageRating JobSortField = "average_rating"
)

// IsValid checks if the sort field is supported
func (f JobSortField) IsValid() bool {
	switch f {
	case JobSortByPrice, JobSortByCreatedAt, JobSortByAverageRating:
		return true
	}
	return false
}

// JobQuery describes a catalog search. Zero values mean "no filter".
// Only active jobs are ever returned.
type JobQuery struct {
	Kind     JobKind
	Search   string
	Bucket   RatingBucket
	OrderBy  JobSortField
	OrderDir shared.SortDirection
	shared.Pagination
}

// Normalize applies defaults and validates the query
func (q JobQuery) Normalize() (JobQuery, error) {
	if q.Kind != "" && !q.Kind.IsValid() {
		return q, shared.NewValidationError("INVALID_KIND", "Job kind must be independent or company")
	}
	if q.Bucket != "" && !q.Bucket.IsValid() {
		return q, shared.NewValidationError("INVALID_BUCKET", "Rating bucket must be one of 0-3, 3-3.5, 3.5-4, 4-4.5, 4.5-5")
	}
	if q.OrderBy == "" {
		q.OrderBy = JobSortByCreatedAt
	}
	if !q.OrderBy.IsValid() {
		return q, shared.NewValidationError("INVALID_SORT", "Sort field must be price, created_at or average_rating")
	}
	if q.OrderDir == "" {
		q.OrderDir = shared.SortDesc
	}
	if !q.OrderDir.IsValid() {
		return q, shared.NewValidationError("INVALID_SORT", "Sort direction must be asc or desc")
	}
	q.Search = NormalizeSearch(q.Search)
	q.Pagination = q.Pagination.Normalize()
	return q, nil
}

var searchCaser = cases.Lower(language.Und)

// NormalizeSearch lowercases a free-text term and collapses inner whitespace,
// so it can be matched against SearchText
func NormalizeSearch(s string) string {
	return searchCaser.String(strings.Join(strings.Fields(s), " "))
}

// SearchText is the folded form of a job's title and description that search
// terms are matched against. Folding happens here rather than in SQL because
// LOWER() only folds ASCII on SQLite. A normalized term never contains a
// newline, so a match cannot straddle both fields.
func SearchText(title, description string) string {
	return NormalizeSearch(title) + "\n" + NormalizeSearch(description)
}

// EscapeLike escapes LIKE wildcards in a search term using backslash
func EscapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}
