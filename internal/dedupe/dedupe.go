// Package dedupe provides the shared singleflight group used to deduplicate
// concurrent week-resolution triggers. The timeout scanner, the auto-sim
// ticker and the last submitter of a week can all race to resolve the same
// game; a centralized singleflight.Group ensures only one resolution runs
// per game while the other callers wait for its result.
package dedupe

import "golang.org/x/sync/singleflight"

// ResolveGroup deduplicates week resolutions keyed by the numeric game ID
// (e.g. "game:42").
var ResolveGroup singleflight.Group
