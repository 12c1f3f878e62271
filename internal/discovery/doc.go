// Package discovery finds the plugin manifests of a hub checkout. It walks
// the hub directory recursively and reports every file whose name matches
// the configured manifest pattern, together with the module it belongs to.
package discovery
