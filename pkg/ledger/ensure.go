package ledger

import (
	"strconv"
	"time"
)

// MonthBucket is a time-scoped aggregate row owning a list of lines.
type MonthBucket interface {
	// BucketName is the displayed bucket label, e.g. "June 2025".
	BucketName() string
	// BucketKey is the structured month identity. It may be zero on
	// buckets stored before structured keys existed.
	BucketKey() MonthKey
}

// EnsureCurrentBucket guarantees that a bucket for the calendar month
// containing now exists in the collection. A bucket counts as current when
// its structured key matches, or, for legacy buckets without a key, when its
// name equals the rendered current label. When no current bucket exists a
// fresh one is created via create and prepended, keeping the collection
// newest-first. The returned bool reports whether the collection changed;
// callers must persist the collection when it did, so the bucket is not
// re-created on the next load.
//
// Calling EnsureCurrentBucket twice with the same now is a no-op the second
// time, which lets the background rollover check and the on-load check run
// in any order.
func EnsureCurrentBucket[B MonthBucket](buckets []B, now time.Time, create func(id string, key MonthKey) B) ([]B, bool) {
	key := MonthKeyFromDate(now)
	for _, bucket := range buckets {
		if bucket.BucketKey().Equal(key) {
			return buckets, false
		}
		if bucket.BucketKey().IsZero() && bucket.BucketName() == key.Label() {
			return buckets, false
		}
	}

	id := strconv.FormatInt(now.UnixMilli(), 10)
	fresh := create(id, key)
	return append([]B{fresh}, buckets...), true
}
