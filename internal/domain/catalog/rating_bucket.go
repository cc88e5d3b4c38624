package catalog

import (
	"github.com/Wolf09/back-prof-sub000/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// RatingBucket is a ranking band over the average rating
type RatingBucket string

const (
	RatingBucketBelow3 RatingBucket = "0-3"
	RatingBucket3To35  RatingBucket = "3-3.5"
	RatingBucket35To4  RatingBucket = "3.5-4"
	RatingBucket4To45  RatingBucket = "4-4.5"
	RatingBucket45To5  RatingBucket = "4.5-5"
)

// AllRatingBuckets lists the buckets from lowest to highest
var AllRatingBuckets = []RatingBucket{
	RatingBucketBelow3,
	RatingBucket3To35,
	RatingBucket35To4,
	RatingBucket4To45,
	RatingBucket45To5,
}

// BucketRange is a half-open [Min, Max) interval, closed on Max when MaxInclusive is set
type BucketRange struct {
	Min          decimal.Decimal
	Max          decimal.Decimal
	MaxInclusive bool
}

// Contains reports whether v falls inside the range
func (r BucketRange) Contains(v decimal.Decimal) bool {
	if v.LessThan(r.Min) {
		return false
	}
	if r.MaxInclusive {
		return v.LessThanOrEqual(r.Max)
	}
	return v.LessThan(r.Max)
}

// ParseRatingBucket validates a bucket name
func ParseRatingBucket(s string) (RatingBucket, error) {
	b := RatingBucket(s)
	if !b.IsValid() {
		return "", shared.NewValidationError("INVALID_BUCKET", "Rating bucket must be one of 0-3, 3-3.5, 3.5-4, 4-4.5, 4.5-5")
	}
	return b, nil
}

// IsValid checks if the bucket is one of the known bands
func (b RatingBucket) IsValid() bool {
	switch b {
	case RatingBucketBelow3, RatingBucket3To35, RatingBucket35To4, RatingBucket4To45, RatingBucket45To5:
		return true
	}
	return false
}

// Range returns the interval covered by the bucket
func (b RatingBucket) Range() BucketRange {
	switch b {
	case RatingBucketBelow3:
		return BucketRange{Min: decimal.Zero, Max: decimal.NewFromInt(3)}
	case RatingBucket3To35:
		return BucketRange{Min: decimal.NewFromInt(3), Max: decimal.RequireFromString("3.5")}
	case RatingBucket35To4:
		return BucketRange{Min: decimal.RequireFromString("3.5"), Max: decimal.NewFromInt(4)}
	case RatingBucket4To45:
		return BucketRange{Min: decimal.NewFromInt(4), Max: decimal.RequireFromString("4.5")}
	default:
		return BucketRange{Min: decimal.RequireFromString("4.5"), Max: decimal.NewFromInt(5), MaxInclusive: true}
	}
}

// BucketFor returns the bucket a given average belongs to
func BucketFor(avg decimal.Decimal) RatingBucket {
	for _, b := range AllRatingBuckets {
		if b.Range().Contains(avg) {
			return b
		}
	}
	return RatingBucket45To5
}
