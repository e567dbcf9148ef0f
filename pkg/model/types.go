package model

import "strings"

// FieldType is the input kind a field is rendered with.
type FieldType string

const (
	FieldTypeText   FieldType = "text"
	FieldTypeDate   FieldType = "date"
	FieldTypeTime   FieldType = "time"
	FieldTypeNumber FieldType = "number"
	FieldTypeSelect FieldType = "select"
)

// Option is a single choice of a select field. Value is the wire id, Label the
// text shown to the user.
type Option struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// Section groups fields under a heading.
type Section struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}

// Field models an individual input of the form.
type Field struct {
	Name        string            `json:"name"`
	Type        FieldType         `json:"type"`
	Label       string            `json:"label"`
	Section     string            `json:"section"`
	Required    bool              `json:"required"`
	Placeholder string            `json:"placeholder,omitempty"`
	Options     []Option          `json:"options,omitempty"`
	Metadata    map[string]string `json:"metadata,omitempty"`
}

// OptionLabel returns the label registered for value, or value itself when
// the field declares no such option.
func (f Field) OptionLabel(value string) string {
	for _, opt := range f.Options {
		if opt.Value == value {
			return opt.Label
		}
	}
	return value
}

// HasOption reports whether value is one of the declared options.
func (f Field) HasOption(value string) bool {
	for _, opt := range f.Options {
		if opt.Value == value {
			return true
		}
	}
	return false
}

// FormModel is the top-level representation renderers consume.
type FormModel struct {
	ID       string            `json:"id"`
	Title    string            `json:"title"`
	Action   string            `json:"action"`
	Method   string            `json:"method"`
	Submit   string            `json:"submit"`
	Sections []Section         `json:"sections"`
	Fields   []Field           `json:"fields"`
	Metadata map[string]string `json:"metadata,omitempty"`
}

// Field looks a field up by name.
func (m FormModel) Field(name string) (Field, bool) {
	name = strings.TrimSpace(name)
	for _, field := range m.Fields {
		if field.Name == name {
			return field, true
		}
	}
	return Field{}, false
}

// FieldNames lists field names in declaration order.
func (m FormModel) FieldNames() []string {
	out := make([]string, 0, len(m.Fields))
	for _, field := range m.Fields {
		out = append(out, field.Name)
	}
	return out
}

// SectionFields returns the fields declared under section id, in order.
func (m FormModel) SectionFields(id string) []Field {
	var out []Field
	for _, field := range m.Fields {
		if field.Section == id {
			out = append(out, field)
		}
	}
	return out
}

// Clone returns a deep copy so decorators can mutate safely.
func (m FormModel) Clone() FormModel {
	out := m
	out.Sections = append([]Section(nil), m.Sections...)
	out.Fields = make([]Field, len(m.Fields))
	for i, field := range m.Fields {
		cp := field
		cp.Options = append([]Option(nil), field.Options...)
		cp.Metadata = cloneMetadata(field.Metadata)
		out.Fields[i] = cp
	}
	out.Metadata = cloneMetadata(m.Metadata)
	return out
}

func cloneMetadata(in map[string]string) map[string]string {
	if in == nil {
		return nil
	}
	out := make(map[string]string, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}
