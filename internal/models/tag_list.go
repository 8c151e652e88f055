package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strings"
)

// TagList is an ordered set of category tags for a notice. Internally it is a
// slice; on the wire and in the store it is the comma-joined string the
// original schema used ("warning, payroll"). Conversion happens only at
// these boundaries.
type TagList []string

// ParseTagList splits the comma-joined form into individual tags, trimming
// whitespace and dropping empty entries. Order is preserved.
func ParseTagList(raw string) TagList {
	if strings.TrimSpace(raw) == "" {
		return nil
	}

	parts := strings.Split(raw, ",")
	tags := make(TagList, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		tags = append(tags, part)
	}
	if len(tags) == 0 {
		return nil
	}
	return tags
}

// String renders the comma-joined wire form.
func (t TagList) String() string {
	return strings.Join(t, ", ")
}

// Value implements driver.Valuer; tags persist as comma-joined text.
func (t TagList) Value() (driver.Value, error) {
	return t.String(), nil
}

// Scan implements sql.Scanner for text columns.
func (t *TagList) Scan(src interface{}) error {
	switch v := src.(type) {
	case nil:
		*t = nil
	case string:
		*t = ParseTagList(v)
	case []byte:
		*t = ParseTagList(string(v))
	default:
		return fmt.Errorf("tag list: unsupported column type %T", src)
	}
	return nil
}

// MarshalJSON emits the comma-joined wire form.
func (t TagList) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.String())
}

// UnmarshalJSON accepts either the comma-joined string or a JSON array of tags.
func (t *TagList) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err == nil {
		*t = ParseTagList(raw)
		return nil
	}

	var list []string
	if err := json.Unmarshal(data, &list); err != nil {
		return fmt.Errorf("tag list: expected string or array: %w", err)
	}
	*t = ParseTagList(strings.Join(list, ","))
	return nil
}
