package attrmodel

import (
	"fmt"
	"strings"
)

// testPost is a minimal record with a post-like shape.
type testPost struct {
	ID      int
	Title   string
	Content string
	Type    string
}

func (p *testPost) Field(name string) (any, error) {
	switch name {
	case "ID":
		return p.ID, nil
	case "post_title":
		return p.Title, nil
	case "post_content":
		return p.Content, nil
	case "post_type":
		return p.Type, nil
	}
	return nil, fmt.Errorf("%w: %s", ErrRecordField, name)
}

func (p *testPost) SetField(name string, value any) error {
	switch name {
	case "ID":
		switch v := value.(type) {
		case nil:
			p.ID = 0
		case int:
			p.ID = v
		default:
			return fmt.Errorf("%w: ID expects int, got %T", ErrRecordField, value)
		}
		return nil
	case "post_title", "post_content", "post_type":
		var s string
		switch v := value.(type) {
		case nil:
		case string:
			s = v
		default:
			return fmt.Errorf("%w: %s expects string, got %T", ErrRecordField, name, value)
		}
		switch name {
		case "post_title":
			p.Title = s
		case "post_content":
			p.Content = s
		default:
			p.Type = s
		}
		return nil
	}
	return fmt.Errorf("%w: %s", ErrRecordField, name)
}

func (p *testPost) SetRecordType(tag string) { p.Type = tag }

func (p *testPost) Clone() Record {
	c := *p
	return &c
}

func newTestPost() Record { return &testPost{} }

func createPost() *testPost {
	return &testPost{ID: 1, Title: "Title"}
}

func createArgs() *Attributes {
	return NewAttributes().
		With("text", "Some text").
		With(RecordKey, createPost())
}

func computeURL(m *Model) (any, error) {
	title, err := m.Get("title")
	if err != nil {
		return nil, err
	}
	return "example.com/" + title.(string), nil
}

func postOptions() []SchemaOption {
	return []SchemaOption{
		WithRecord(newTestPost),
		WithRecordType("custom"),
		MapField("title", "post_title"),
		MapField("ID", "ID"),
		Compute("url", computeURL),
	}
}

var (
	defaultSchema = MustSchema("default", append(postOptions(),
		WithFillable("title", "text"),
		WithGuarded("ID"),
		WithVisible("title", "text", "url"),
	)...)

	hiddenSchema = MustSchema("hidden", append(postOptions(),
		WithFillable("title", "text"),
		WithGuarded("ID", "url"),
		WithHidden("ID"),
	)...)

	plainSchema = MustSchema("plain", append(postOptions(),
		WithFillable("title", "text", "ID", "url"),
	)...)

	tableSchema = MustSchema("table",
		WithFillable("text"),
	)

	openSchema = MustSchema("open")
)

func mustModel(s *Schema, attrs *Attributes) *Model {
	m, err := New(s, attrs)
	if err != nil {
		panic(strings.Join([]string{"new model", s.Name(), err.Error()}, ": "))
	}
	return m
}
