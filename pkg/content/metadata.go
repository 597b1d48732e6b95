package content

import (
	"fmt"
	"slices"
	"time"

	"github.com/google/uuid"
	"github.com/tendant/content-attrs/pkg/attrmodel"
	"golang.org/x/exp/maps"
)

// ContentMetadata represents the key/value metadata stored for a content.
type ContentMetadata struct {
	ContentID uuid.UUID      `json:"content_id"`
	Metadata  map[string]any `json:"metadata"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
}

// Hydrate builds a model of schema from a content and its metadata as they
// were loaded from storage. Loaded state bypasses the guard, and the result
// is synced so that Changes starts out empty.
//
// Metadata keys are applied in sorted order and reserved attribute names are
// skipped; either argument may be nil.
//
// The model takes ownership of c: it becomes the model's record and has the
// schema's document type forced onto it. Pass c.Clone() to keep the caller's
// copy untouched.
func Hydrate(schema *attrmodel.Schema, c *Content, meta *ContentMetadata) (*attrmodel.Model, error) {
	m, err := attrmodel.New(schema, nil)
	if err != nil {
		return nil, err
	}

	attrs := attrmodel.NewAttributes()
	if c != nil {
		attrs.Set(attrmodel.RecordKey, c)
	}
	if meta != nil {
		for _, k := range sortedKeys(meta.Metadata) {
			if k == attrmodel.TypeKey || k == attrmodel.RecordKey {
				continue
			}
			attrs.Set(k, meta.Metadata[k])
		}
	}

	m.Unguard()
	defer m.Reguard()
	if err := m.Refresh(attrs); err != nil {
		return nil, err
	}
	m.SyncOriginal()
	return m, nil
}

func sortedKeys[V any](m map[string]V) []string {
	keys := maps.Keys(m)
	slices.Sort(keys)
	return keys
}

// RecordOf returns the model's record as a Content.
func RecordOf(m *attrmodel.Model) (*Content, error) {
	r := m.Record()
	if r == nil {
		return nil, attrmodel.ErrRecordNotPresent
	}
	c, ok := r.(*Content)
	if !ok {
		return nil, fmt.Errorf("%w: record is %T, not *content.Content", attrmodel.ErrInvalidRecord, r)
	}
	return c, nil
}

// MetadataOf returns the metadata to store for the model: every table
// entry that holds a value. When the model has a Content record its ID is
// used as the content ID.
func MetadataOf(m *attrmodel.Model) *ContentMetadata {
	meta := &ContentMetadata{
		Metadata:  make(map[string]any),
		UpdatedAt: time.Now().UTC(),
	}
	if c, err := RecordOf(m); err == nil {
		meta.ContentID = c.ID
		meta.CreatedAt = c.CreatedAt
	}
	for k, v := range m.TableAttributes().All() {
		if v != nil {
			meta.Metadata[k] = v
		}
	}
	return meta
}

// RemovedKeys returns the metadata keys that were present when the model
// was last synced and have since been cleared.
func RemovedKeys(m *attrmodel.Model) []string {
	original := m.OriginalTableAttributes()
	var removed []string
	for k, v := range m.TableAttributes().All() {
		if v != nil {
			continue
		}
		if prev, ok := original.Get(k); ok && prev != nil {
			removed = append(removed, k)
		}
	}
	return removed
}
