// Package manifest loads, updates and saves plugin manifests.
//
// A manifest is a YAML, JSON or TOML document describing one hub module. The
// package only interprets two top-level fields, the module's own "version"
// and the minimum required core version ("jina-version"); every other key is
// carried through unchanged. YAML and JSON edits are made in place so that
// comments, indentation and key order survive a rewrite.
package manifest
