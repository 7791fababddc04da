package domain

import "time"

// InvalidTimestamp is the sentinel returned for timestamps that cannot be
// represented. It must never be emitted as a valid ISO value; the schema
// validator rejects any point carrying it.
const InvalidTimestamp = "Invalid Timestamp"

// maxEpochMillis is 3000-01-01T00:00:00Z. Anything past it is assumed to be a
// corrupt value rather than a forecast.
const maxEpochMillis int64 = 32503680000000

const isoLayout = "2006-01-02T15:04:05Z"

// EpochMillisToISO converts an epoch-millisecond timestamp to an ISO-8601 UTC
// string with seconds precision and a literal Z suffix. Values outside
// [0, 3000-01-01) yield [InvalidTimestamp] rather than an error: the merge
// keeps the point and lets validation reject it.
func EpochMillisToISO(ms int64) string {
	if ms < 0 || ms >= maxEpochMillis {
		return InvalidTimestamp
	}
	return time.UnixMilli(ms).UTC().Format(isoLayout)
}
