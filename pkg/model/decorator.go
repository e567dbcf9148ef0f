package model

// Decorator enriches a form model after the canonical field table has been
// declared (for example to append the configured currency to price labels).
type Decorator interface {
	Decorate(*FormModel) error
}

// DecoratorFunc adapts a function into a Decorator.
type DecoratorFunc func(*FormModel) error

// Decorate calls the underlying function.
func (fn DecoratorFunc) Decorate(form *FormModel) error {
	return fn(form)
}

// Apply runs decorators in order against a copy of form. The input is never
// mutated.
func Apply(form FormModel, decorators ...Decorator) (FormModel, error) {
	out := form.Clone()
	for _, decorator := range decorators {
		if decorator == nil {
			continue
		}
		if err := decorator.Decorate(&out); err != nil {
			return FormModel{}, err
		}
	}
	return out, nil
}
