// Package content provides the Content record that content-backed
// attribute models wrap, and the bridge between a model and the
// content/metadata pair a repository loads and stores.
//
// Content carries the authoritative first-class fields (name, status,
// owner, document type). Everything else a model declares lives in the
// content's key/value metadata.
package content
