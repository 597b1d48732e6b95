package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tendant/content-attrs/pkg/attrmodel"
	"github.com/tendant/content-attrs/pkg/content"
)

const yamlSchema = `
models:
  - name: article
    record: true
    type: article
    fillable: [title, text]
    guarded: [ID]
    visible: [title, text, url]
    computed:
      url: 'example.com/{{.Attr "title"}}'
  - name: settings
    fillable: [theme, locale]
`

const tomlSchema = `
[[models]]
name = "note"
record = true
type = "note"
fillable = ["title", "body"]
hidden = ["ID"]

[models.fields]
body = "description"
`

const jsonSchema = `{"models": [{"name": "tags", "type": "tagset", "fillable": ["tags"]}]}`

func writeFile(t *testing.T, name, data string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(data), 0o600))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "info", cfg.LogLevel)
	assert.Empty(t, cfg.Models)

	level, err := cfg.Level()
	require.NoError(t, err)
	assert.Equal(t, slog.LevelInfo, level)
}

func TestLoad_YAMLFile(t *testing.T) {
	path := writeFile(t, "schema.yaml", yamlSchema)

	cfg, err := Load(WithFile(path))
	require.NoError(t, err)
	require.Len(t, cfg.Models, 2)
	assert.Equal(t, path, cfg.SchemaFile)

	registry, err := cfg.BuildRegistry()
	require.NoError(t, err)
	assert.Equal(t, []string{"article", "settings"}, registry.Names())

	article, err := registry.Get("article")
	require.NoError(t, err)
	assert.Equal(t, []string{"title", "text", "ID", "url"}, article.DeclaredKeys())
	assert.Equal(t, []string{"title", "ID"}, article.RecordKeys())
	assert.Equal(t, []string{"url"}, article.ComputedKeys())

	m, err := attrmodel.New(article, attrmodel.NewAttributes().With("title", "Hello").With("text", "World"))
	require.NoError(t, err)

	c, err := content.RecordOf(m)
	require.NoError(t, err)
	assert.Equal(t, "article", c.DocumentType)
	assert.Equal(t, "Hello", c.Name)

	out, err := m.Serialize()
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"title": "Hello", "text": "World", "url": "example.com/Hello"}, out.Map())

	settings, err := registry.Get("settings")
	require.NoError(t, err)
	assert.False(t, settings.UsesRecord())
	assert.Equal(t, []string{"theme", "locale"}, settings.TableKeys())
}

func TestLoad_TOMLFile(t *testing.T) {
	cfg, err := Load(WithFile(writeFile(t, "schema.toml", tomlSchema)))
	require.NoError(t, err)

	registry, err := cfg.BuildRegistry()
	require.NoError(t, err)

	note, err := registry.Get("note")
	require.NoError(t, err)

	field, ok := note.RecordField("body")
	require.True(t, ok)
	assert.Equal(t, content.FieldDescription, field)
	assert.Equal(t, []string{"title", "body", "ID"}, note.DeclaredKeys())
	assert.Empty(t, note.TableKeys())
}

func TestLoad_JSONFile(t *testing.T) {
	cfg, err := Load(WithFile(writeFile(t, "schema.json", jsonSchema)))
	require.NoError(t, err)

	registry, err := cfg.BuildRegistry()
	require.NoError(t, err)

	m, err := registry.New("tags", attrmodel.NewAttributes().With("tags", []any{"a"}))
	require.NoError(t, err)

	typ, err := m.Get(attrmodel.TypeKey)
	require.NoError(t, err)
	assert.Equal(t, "tagset", typ)
	assert.Nil(t, m.Record())
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(WithFile(filepath.Join(t.TempDir(), "missing.yaml")))
	assert.Error(t, err)
}

func TestWithEnv(t *testing.T) {
	path := writeFile(t, "schema.yaml", yamlSchema)
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("SCHEMA_FILE", path)

	cfg, err := Load(WithEnv())
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, path, cfg.SchemaFile)
	assert.Len(t, cfg.Models, 2)
}

func TestWithEnv_LeavesPortToServer(t *testing.T) {
	t.Setenv("PORT", "not-a-port")

	cfg, err := Load(WithEnv())
	require.NoError(t, err)
	assert.Equal(t, "info", cfg.LogLevel)
}

func TestWithEnv_ExplicitModelsWin(t *testing.T) {
	t.Setenv("SCHEMA_FILE", filepath.Join(t.TempDir(), "missing.yaml"))

	cfg, err := Load(WithModels(ModelConfig{Name: "inline"}), WithEnv())
	require.NoError(t, err)
	require.Len(t, cfg.Models, 1)
	assert.Equal(t, "inline", cfg.Models[0].Name)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name string
		opts []Option
	}{
		{name: "bad level", opts: []Option{func(c *Config) error { c.LogLevel = "loud"; return nil }}},
		{name: "unnamed model", opts: []Option{WithModels(ModelConfig{})}},
		{name: "duplicate model", opts: []Option{WithModels(ModelConfig{Name: "a"}, ModelConfig{Name: "a"})}},
		{name: "fields without record", opts: []Option{WithModels(ModelConfig{Name: "a", Fields: map[string]string{"x": "name"}})}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(tt.opts...)
			assert.Error(t, err)
		})
	}
}

func TestBuildRegistry_InvalidTemplate(t *testing.T) {
	cfg, err := Load(WithModels(ModelConfig{
		Name:     "broken",
		Computed: map[string]string{"url": "{{.Attr"},
	}))
	require.NoError(t, err)

	_, err = cfg.BuildRegistry()
	assert.Error(t, err)
}

func TestBuildRegistry_ComputedClashesWithField(t *testing.T) {
	cfg, err := Load(WithModels(ModelConfig{
		Name:     "clash",
		Record:   true,
		Computed: map[string]string{"title": "x"},
	}))
	require.NoError(t, err)

	_, err = cfg.BuildRegistry()
	assert.ErrorIs(t, err, attrmodel.ErrInvalidSchema)
}
