package content

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/tendant/content-attrs/pkg/attrmodel"
)

// ContentStatus is the domain type for content lifecycle states.
type ContentStatus string

// Content status constants (typed).
const (
	ContentStatusCreated    ContentStatus = "created"
	ContentStatusUploading  ContentStatus = "uploading"
	ContentStatusUploaded   ContentStatus = "uploaded"
	ContentStatusProcessing ContentStatus = "processing"
	ContentStatusProcessed  ContentStatus = "processed"
	ContentStatusFailed     ContentStatus = "failed"
	ContentStatusArchived   ContentStatus = "archived"
	ContentStatusDeleted    ContentStatus = "deleted"
)

func (s ContentStatus) String() string { return string(s) }

// IsValid reports whether s is a known content status.
func (s ContentStatus) IsValid() bool {
	switch s {
	case ContentStatusCreated, ContentStatusUploading, ContentStatusUploaded,
		ContentStatusProcessing, ContentStatusProcessed, ContentStatusFailed,
		ContentStatusArchived, ContentStatusDeleted:
		return true
	}
	return false
}

// Record field names, as accepted by Content.Field and Content.SetField.
const (
	FieldID             = "id"
	FieldTenantID       = "tenant_id"
	FieldOwnerID        = "owner_id"
	FieldOwnerType      = "owner_type"
	FieldName           = "name"
	FieldDescription    = "description"
	FieldDocumentType   = "document_type"
	FieldStatus         = "status"
	FieldDerivationType = "derivation_type"
	FieldCreatedAt      = "created_at"
	FieldUpdatedAt      = "updated_at"
	FieldDeletedAt      = "deleted_at"
)

// Content represents a logical content entity. It is the structured record
// behind content-backed models; DocumentType carries the model's type tag.
type Content struct {
	ID             uuid.UUID  `json:"id"`
	TenantID       uuid.UUID  `json:"tenant_id"`
	OwnerID        uuid.UUID  `json:"owner_id"`
	OwnerType      string     `json:"owner_type,omitempty"`
	Name           string     `json:"name,omitempty"`
	Description    string     `json:"description,omitempty"`
	DocumentType   string     `json:"document_type,omitempty"`
	Status         string     `json:"status"`
	DerivationType string     `json:"derivation_type,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
	DeletedAt      *time.Time `json:"deleted_at,omitempty"`
}

var _ attrmodel.Record = (*Content)(nil)

// New creates a blank content with a fresh ID, the created status and
// creation timestamps, the same defaults the content service assigns.
func New() *Content {
	now := time.Now().UTC()
	return &Content{
		ID:        uuid.New(),
		Status:    string(ContentStatusCreated),
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// NewRecord is an attrmodel.RecordFactory for Content.
func NewRecord() attrmodel.Record {
	return New()
}

// Field returns the named field.
func (c *Content) Field(name string) (any, error) {
	switch name {
	case FieldID:
		return c.ID, nil
	case FieldTenantID:
		return c.TenantID, nil
	case FieldOwnerID:
		return c.OwnerID, nil
	case FieldOwnerType:
		return c.OwnerType, nil
	case FieldName:
		return c.Name, nil
	case FieldDescription:
		return c.Description, nil
	case FieldDocumentType:
		return c.DocumentType, nil
	case FieldStatus:
		return c.Status, nil
	case FieldDerivationType:
		return c.DerivationType, nil
	case FieldCreatedAt:
		return c.CreatedAt, nil
	case FieldUpdatedAt:
		return c.UpdatedAt, nil
	case FieldDeletedAt:
		if c.DeletedAt == nil {
			return nil, nil
		}
		return *c.DeletedAt, nil
	}
	return nil, fmt.Errorf("%w: unknown content field %q", attrmodel.ErrRecordField, name)
}

// SetField writes the named field. UUID fields accept uuid.UUID or its
// string form, time fields accept time.Time or an RFC 3339 string, and nil
// resets any field to its zero value. Status must be a known ContentStatus.
// On error the content is unchanged.
func (c *Content) SetField(name string, value any) error {
	switch name {
	case FieldID:
		return setUUID(&c.ID, name, value)
	case FieldTenantID:
		return setUUID(&c.TenantID, name, value)
	case FieldOwnerID:
		return setUUID(&c.OwnerID, name, value)
	case FieldOwnerType:
		return setString(&c.OwnerType, name, value)
	case FieldName:
		return setString(&c.Name, name, value)
	case FieldDescription:
		return setString(&c.Description, name, value)
	case FieldDocumentType:
		return setString(&c.DocumentType, name, value)
	case FieldStatus:
		return setStatus(&c.Status, name, value)
	case FieldDerivationType:
		return setString(&c.DerivationType, name, value)
	case FieldCreatedAt:
		return setTime(&c.CreatedAt, name, value)
	case FieldUpdatedAt:
		return setTime(&c.UpdatedAt, name, value)
	case FieldDeletedAt:
		if value == nil {
			c.DeletedAt = nil
			return nil
		}
		var t time.Time
		if err := setTime(&t, name, value); err != nil {
			return err
		}
		c.DeletedAt = &t
		return nil
	}
	return fmt.Errorf("%w: unknown content field %q", attrmodel.ErrRecordField, name)
}

// SetRecordType stores the model type tag as the document type.
func (c *Content) SetRecordType(tag string) {
	c.DocumentType = tag
}

// Clone returns a deep copy of the content.
func (c *Content) Clone() attrmodel.Record {
	out := *c
	if c.DeletedAt != nil {
		deletedAt := *c.DeletedAt
		out.DeletedAt = &deletedAt
	}
	return &out
}

func setString(dst *string, name string, value any) error {
	switch v := value.(type) {
	case nil:
		*dst = ""
	case string:
		*dst = v
	case fmt.Stringer:
		*dst = v.String()
	default:
		return fieldTypeError(name, "string", value)
	}
	return nil
}

func setStatus(dst *string, name string, value any) error {
	var status string
	if err := setString(&status, name, value); err != nil {
		return err
	}
	if status != "" && !ContentStatus(status).IsValid() {
		return fmt.Errorf("%w: %s: unknown status %q", attrmodel.ErrRecordField, name, status)
	}
	*dst = status
	return nil
}

func setUUID(dst *uuid.UUID, name string, value any) error {
	switch v := value.(type) {
	case nil:
		*dst = uuid.Nil
	case uuid.UUID:
		*dst = v
	case string:
		id, err := uuid.Parse(v)
		if err != nil {
			return fmt.Errorf("%w: %s: %v", attrmodel.ErrRecordField, name, err)
		}
		*dst = id
	default:
		return fieldTypeError(name, "uuid", value)
	}
	return nil
}

func setTime(dst *time.Time, name string, value any) error {
	switch v := value.(type) {
	case nil:
		*dst = time.Time{}
	case time.Time:
		*dst = v
	case string:
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			return fmt.Errorf("%w: %s: %v", attrmodel.ErrRecordField, name, err)
		}
		*dst = t
	default:
		return fieldTypeError(name, "time", value)
	}
	return nil
}

func fieldTypeError(name, want string, value any) error {
	return fmt.Errorf("%w: %s expects %s, got %T", attrmodel.ErrRecordField, name, want, value)
}
