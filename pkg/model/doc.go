// Package model defines the declarative form description shared by the HTML
// page, the terminal prompts and the validator. A FormModel is an ordered list
// of sections and fields; each Field names its wire key, input kind, French
// label, owning section, whether it is required and, for selects, the allowed
// options. Renderers walk the model instead of hard-coding markup per field.
package model
