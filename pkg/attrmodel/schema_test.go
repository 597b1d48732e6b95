package attrmodel

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSchema_DeclaredKeys(t *testing.T) {
	keys := []string{"title", "text", "ID", "url"}

	for _, s := range []*Schema{defaultSchema, hiddenSchema, plainSchema} {
		t.Run(s.Name(), func(t *testing.T) {
			assert.Equal(t, keys, s.DeclaredKeys())
			assert.Equal(t, keys, s.DeclaredKeys())
		})
	}
}

func TestSchema_Partitions(t *testing.T) {
	assert.Equal(t, []string{"text"}, defaultSchema.TableKeys())
	assert.Equal(t, []string{"title", "ID"}, defaultSchema.RecordKeys())
	assert.Equal(t, []string{"url"}, defaultSchema.ComputedKeys())

	// Repeated calls are stable.
	assert.Equal(t, []string{"title", "ID"}, defaultSchema.RecordKeys())
}

func TestSchema_PartitionsCoverDeclaredKeys(t *testing.T) {
	for _, s := range []*Schema{defaultSchema, hiddenSchema, plainSchema, tableSchema, openSchema} {
		t.Run(s.Name(), func(t *testing.T) {
			var union []string
			union = append(union, s.TableKeys()...)
			union = append(union, s.RecordKeys()...)
			union = append(union, s.ComputedKeys()...)

			declared := s.DeclaredKeys()
			assert.Len(t, union, len(declared), "partitions must not overlap")

			slices.Sort(union)
			slices.Sort(declared)
			assert.Equal(t, declared, union)
		})
	}
}

func TestSchema_ReturnsCopies(t *testing.T) {
	keys := defaultSchema.DeclaredKeys()
	keys[0] = "mutated"

	assert.Equal(t, "title", defaultSchema.DeclaredKeys()[0])
}

func TestSchema_DuplicatesKeepFirstOccurrence(t *testing.T) {
	s := MustSchema("dups",
		WithFillable("a", "b"),
		WithGuarded("b", "c"),
		WithHidden("c", "a"),
		WithVisible("d", "b"),
	)

	assert.Equal(t, []string{"a", "b", "c", "d"}, s.DeclaredKeys())
}

func TestSchema_Open(t *testing.T) {
	assert.True(t, openSchema.IsOpen())
	assert.False(t, defaultSchema.IsOpen())
	assert.Empty(t, openSchema.DeclaredKeys())
}

func TestSchema_Bindings(t *testing.T) {
	field, ok := defaultSchema.RecordField("title")
	require.True(t, ok)
	assert.Equal(t, "post_title", field)

	_, ok = defaultSchema.RecordField("text")
	assert.False(t, ok)

	assert.True(t, defaultSchema.IsComputed("url"))
	assert.False(t, defaultSchema.IsComputed("title"))

	tag, ok := defaultSchema.RecordType()
	assert.True(t, ok)
	assert.Equal(t, "custom", tag)
	assert.True(t, defaultSchema.UsesRecord())
	assert.False(t, tableSchema.UsesRecord())
}

func TestNewSchema_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		schema  string
		options []SchemaOption
	}{
		{name: "empty name", schema: ""},
		{name: "nil record factory", schema: "s", options: []SchemaOption{WithRecord(nil)}},
		{name: "reserved type", schema: "s", options: []SchemaOption{MapField(TypeKey, "post_type")}},
		{name: "reserved record", schema: "s", options: []SchemaOption{Compute(RecordKey, computeURL)}},
		{name: "empty field", schema: "s", options: []SchemaOption{MapField("title", "")}},
		{name: "nil compute", schema: "s", options: []SchemaOption{Compute("url", nil)}},
		{name: "bound twice", schema: "s", options: []SchemaOption{
			MapField("title", "post_title"),
			Compute("title", computeURL),
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewSchema(tt.schema, tt.options...)
			assert.ErrorIs(t, err, ErrInvalidSchema)
		})
	}
}

func TestMustSchema_Panics(t *testing.T) {
	assert.Panics(t, func() { MustSchema("") })
}

func TestSchema_NewRecord(t *testing.T) {
	r, err := defaultSchema.NewRecord()
	require.NoError(t, err)
	assert.Equal(t, "custom", r.(*testPost).Type)

	_, err = tableSchema.NewRecord()
	assert.ErrorIs(t, err, ErrRecordNotPresent)
}
