// Package attrmodel maps named attributes onto two backing stores: a
// fixed-shape Record owned by the content host, and a free-form key/value
// table such as per-content metadata.
//
// A Schema declares, once per model type, which attribute names map onto
// record fields, which are computed from other attributes, and which live
// in the table. It also carries the four attribute key lists that drive
// mass-assignment guarding (fillable, guarded) and serialization (hidden,
// visible).
//
// Resolution Order
//
// Every read and write goes through Model.Get and Model.Set:
//
//   - "type" always resolves to the schema's record type and can never be
//     written.
//   - "record" is write-only and replaces the underlying record.
//   - a name mapped with MapField reads and writes the record field.
//   - a name declared with Compute is derived on each read.
//   - anything else lives in the table, where a nil value means absent.
//
// Snapshots
//
// SyncOriginal copies the current state (deep-copying the record) so that
// Changes can later report what a persistence layer needs to write.
package attrmodel
