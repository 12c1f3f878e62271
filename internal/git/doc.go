// Package git wraps the git command line for the operations hubbump needs
// on a local checkout: remotes, tags, branches, commits, pushes and fetches.
//
// Failing commands return a *CommandError holding git's stderr. Classify
// and IsBranchDiverged turn that output into stable categories so callers
// never match on git's message text themselves.
package git
