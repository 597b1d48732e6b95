package content

import "github.com/tendant/content-attrs/pkg/attrmodel"

// DefaultFields maps the attribute names content-backed models use by
// default onto Content fields.
var DefaultFields = map[string]string{
	"ID":          FieldID,
	"title":       FieldName,
	"description": FieldDescription,
	"status":      FieldStatus,
	"owner_id":    FieldOwnerID,
	"owner_type":  FieldOwnerType,
	"tenant_id":   FieldTenantID,
	"created_at":  FieldCreatedAt,
	"updated_at":  FieldUpdatedAt,
}

// RecordOptions returns the schema options for a model backed by Content
// with document type tag. Attribute names from DefaultFields are mapped
// unless fields overrides them; an empty field name in fields removes the
// default mapping.
func RecordOptions(tag string, fields map[string]string) []attrmodel.SchemaOption {
	merged := make(map[string]string, len(DefaultFields)+len(fields))
	for attr, field := range DefaultFields {
		merged[attr] = field
	}
	for attr, field := range fields {
		if field == "" {
			delete(merged, attr)
			continue
		}
		merged[attr] = field
	}

	options := []attrmodel.SchemaOption{attrmodel.WithRecord(NewRecord)}
	if tag != "" {
		options = append(options, attrmodel.WithRecordType(tag))
	}
	for _, attr := range sortedKeys(merged) {
		options = append(options, attrmodel.MapField(attr, merged[attr]))
	}
	return options
}

// NewSchema builds a Content-backed schema. Extra options such as key lists
// and computed attributes are applied after the record options.
func NewSchema(name, tag string, options ...attrmodel.SchemaOption) (*attrmodel.Schema, error) {
	return attrmodel.NewSchema(name, append(RecordOptions(tag, nil), options...)...)
}
