// Package operations drives a hub version bump.
//
// For every discovered manifest a Driver decides whether the manifest lags
// behind the target core version, bumps it, and publishes the change on its
// own branch with a pull request. A MergeWatcher then polls the opened pull
// requests and merges the ones that are not blocked, for a bounded number of
// passes. Runner ties both together for one invocation.
package operations
