// Package hosting talks to the hosted repository service that receives the
// version bump pull requests. GitHubClient implements the operations the
// release driver needs: create, look up, inspect and merge pull requests.
package hosting
