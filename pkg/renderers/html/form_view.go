package html

import (
	"github.com/goliatone/go-rentalcontract/pkg/model"
	"github.com/goliatone/go-rentalcontract/pkg/render"
)

type formView struct {
	ID         string        `json:"id"`
	Title      string        `json:"title"`
	Action     string        `json:"action"`
	Method     string        `json:"method"`
	Submit     string        `json:"submit"`
	Sections   []sectionView `json:"sections"`
	FormErrors []string      `json:"form_errors,omitempty"`
}

type sectionView struct {
	ID     string      `json:"id"`
	Title  string      `json:"title"`
	Fields []fieldView `json:"fields"`
}

type fieldView struct {
	Name        string       `json:"name"`
	Label       string       `json:"label"`
	Type        string       `json:"type"`
	Input       string       `json:"input"`
	Placeholder string       `json:"placeholder,omitempty"`
	Value       string       `json:"value"`
	Required    bool         `json:"required"`
	Options     []optionView `json:"options,omitempty"`
	Errors      []string     `json:"errors,omitempty"`
}

type optionView struct {
	Value    string `json:"value"`
	Label    string `json:"label"`
	Selected bool   `json:"selected"`
}

func buildFormView(form model.FormModel, options render.FormOptions) formView {
	view := formView{
		ID:         form.ID,
		Title:      form.Title,
		Action:     form.Action,
		Method:     form.Method,
		Submit:     form.Submit,
		FormErrors: options.FormErrors,
	}
	if view.Method == "" {
		view.Method = "post"
	}
	if view.Submit == "" {
		view.Submit = "Envoyer"
	}

	for _, section := range form.Sections {
		fields := form.SectionFields(section.ID)
		if len(fields) == 0 {
			continue
		}
		sv := sectionView{ID: section.ID, Title: section.Title}
		for _, field := range fields {
			sv.Fields = append(sv.Fields, buildFieldView(field, options))
		}
		view.Sections = append(view.Sections, sv)
	}
	return view
}

func buildFieldView(field model.Field, options render.FormOptions) fieldView {
	value := options.Values[field.Name]
	fv := fieldView{
		Name:        field.Name,
		Label:       field.Label,
		Type:        string(field.Type),
		Input:       inputType(field.Type),
		Placeholder: field.Placeholder,
		Value:       value,
		Required:    field.Required,
		Errors:      options.Errors[field.Name],
	}
	for _, opt := range field.Options {
		fv.Options = append(fv.Options, optionView{
			Value:    opt.Value,
			Label:    opt.Label,
			Selected: opt.Value == value,
		})
	}
	return fv
}

// Numbers stay text inputs: browsers reject the decimal comma in
// type=number.
func inputType(t model.FieldType) string {
	switch t {
	case model.FieldTypeDate:
		return "date"
	case model.FieldTypeTime:
		return "time"
	default:
		return "text"
	}
}
