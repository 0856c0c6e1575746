// Package manifest implements the JSON manifest extension format.
//
// An extension source is a single <id>.json file declaring presentation
// metadata and a list of templated commands. Manifests are validated against
// an embedded JSON schema before construction, so a malformed file fails the
// load without affecting other extensions.
package manifest
