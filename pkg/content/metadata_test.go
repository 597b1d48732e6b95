package content

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tendant/content-attrs/pkg/attrmodel"
)

func newDocumentSchema(t *testing.T) *attrmodel.Schema {
	t.Helper()

	s, err := NewSchema("document", "custom",
		attrmodel.WithFillable("title", "text"),
		attrmodel.WithGuarded("ID"),
		attrmodel.WithVisible("title", "text", "url"),
		attrmodel.Compute("url", func(m *attrmodel.Model) (any, error) {
			title, err := m.Get("title")
			if err != nil {
				return nil, err
			}
			return "example.com/" + title.(string), nil
		}),
	)
	require.NoError(t, err)
	return s
}

func TestNewSchema_MapsDefaultFields(t *testing.T) {
	s := newDocumentSchema(t)

	assert.Equal(t, []string{"title", "ID"}, s.RecordKeys())
	assert.Equal(t, []string{"text"}, s.TableKeys())
	assert.Equal(t, []string{"url"}, s.ComputedKeys())

	field, ok := s.RecordField("title")
	require.True(t, ok)
	assert.Equal(t, FieldName, field)
}

func TestRecordOptions_Overrides(t *testing.T) {
	s, err := attrmodel.NewSchema("s", RecordOptions("", map[string]string{
		"title": FieldDescription,
		"ID":    "",
	})...)
	require.NoError(t, err)

	field, ok := s.RecordField("title")
	require.True(t, ok)
	assert.Equal(t, FieldDescription, field)

	_, ok = s.RecordField("ID")
	assert.False(t, ok)

	_, hasType := s.RecordType()
	assert.False(t, hasType)
}

func TestModel_EndToEnd(t *testing.T) {
	s := newDocumentSchema(t)

	m, err := attrmodel.New(s, attrmodel.NewAttributes().With("title", "Title1"))
	require.NoError(t, err)

	c, err := RecordOf(m)
	require.NoError(t, err)
	assert.Equal(t, "custom", c.DocumentType)

	require.NoError(t, m.Set("title", "Title2"))
	title, err := m.Get("title")
	require.NoError(t, err)
	assert.Equal(t, "Title2", title)
	assert.Equal(t, "Title2", c.Name)

	assert.ErrorIs(t, m.Set("ID", uuid.New()), attrmodel.ErrGuardedAttribute)
}

func TestHydrate(t *testing.T) {
	s := newDocumentSchema(t)

	c := New()
	c.Name = "Loaded"
	meta := &ContentMetadata{
		ContentID: c.ID,
		Metadata: map[string]any{
			"text":  "body",
			"extra": "kept",
			"type":  "ignored",
		},
	}

	m, err := Hydrate(s, c, meta)
	require.NoError(t, err)

	assert.True(t, m.IsGuarded())
	assert.Same(t, c, m.Record())
	assert.Equal(t, "custom", c.DocumentType)

	text, err := m.Get("text")
	require.NoError(t, err)
	assert.Equal(t, "body", text)

	extra, err := m.Get("extra")
	require.NoError(t, err)
	assert.Equal(t, "kept", extra)

	dirty, err := m.IsDirty()
	require.NoError(t, err)
	assert.False(t, dirty)

	url, err := m.Get("url")
	require.NoError(t, err)
	assert.Equal(t, "example.com/Loaded", url)
}

func TestHydrate_NilInputs(t *testing.T) {
	s := newDocumentSchema(t)

	m, err := Hydrate(s, nil, nil)
	require.NoError(t, err)

	c, err := RecordOf(m)
	require.NoError(t, err)
	assert.Equal(t, "custom", c.DocumentType)
}

func TestMetadataOf(t *testing.T) {
	s := newDocumentSchema(t)

	c := New()
	m, err := Hydrate(s, c, &ContentMetadata{Metadata: map[string]any{"text": "body", "old": "x"}})
	require.NoError(t, err)

	m.Unguard()
	require.NoError(t, m.Set("old", nil))
	require.NoError(t, m.Set("text", "new body"))
	m.Reguard()

	meta := MetadataOf(m)
	assert.Equal(t, c.ID, meta.ContentID)
	assert.Equal(t, map[string]any{"text": "new body"}, meta.Metadata)
	assert.Equal(t, []string{"old"}, RemovedKeys(m))
}

func TestRecordOf_Errors(t *testing.T) {
	table, err := attrmodel.NewSchema("table", attrmodel.WithFillable("text"))
	require.NoError(t, err)

	m, err := attrmodel.New(table, nil)
	require.NoError(t, err)

	_, err = RecordOf(m)
	assert.ErrorIs(t, err, attrmodel.ErrRecordNotPresent)
}
