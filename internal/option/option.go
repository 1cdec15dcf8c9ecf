// Package option models presence settings as small trees of options that
// are resolved against an activity context at render time.
package option

import (
	"fmt"

	"github.com/watchfire-io/presence/internal/activity"
	"github.com/watchfire-io/presence/internal/template"
)

// Kind identifies the shape of an Option.
type Kind int

// Option kinds.
const (
	KindSimple Kind = iota
	KindToggle
	KindSelection
	KindTemplate
)

func (k Kind) String() string {
	switch k {
	case KindSimple:
		return "simple"
	case KindToggle:
		return "toggle"
	case KindSelection:
		return "selection"
	case KindTemplate:
		return "template"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Variant is one named choice of a selection option.
type Variant[R any] struct {
	ID      string
	Name    string
	Compute func(ctx *activity.Context) (R, error)
}

// Option is an immutable node producing an R for a context. Build one with
// Simple, Toggle, Selection or Template.
type Option[R any] struct {
	kind Kind
	name string

	// simple
	value Value[R]

	// toggle
	gate  func() bool
	gated *Option[R]

	// selection
	selector Value[string]
	variants []Variant[R]

	// template
	text   Value[string]
	engine template.Engine
	parse  func(string) (R, error)
}

// Name returns the option's name, used in error messages and logs.
func (o *Option[R]) Name() string { return o.name }

// Kind returns the option's shape.
func (o *Option[R]) Kind() Kind { return o.kind }

// Simple returns an option yielding the current value of v.
func Simple[R any](name string, v Value[R]) *Option[R] {
	return &Option[R]{kind: KindSimple, name: name, value: v}
}

// Predicate decides whether a toggle value enables its gated option.
type Predicate[T any] func(T) bool

// EnableOn passes when the toggle equals x.
func EnableOn[T comparable](x T) Predicate[T] {
	return func(v T) bool { return v == x }
}

// DisableOn passes when the toggle differs from x.
func DisableOn[T comparable](x T) Predicate[T] {
	return func(v T) bool { return v != x }
}

// Toggle returns an option that resolves gated only while pred accepts the
// current toggle value, and yields the zero R otherwise. gated is never
// touched while the predicate fails.
func Toggle[T, R any](name string, toggle Value[T], pred Predicate[T], gated *Option[R]) *Option[R] {
	return &Option[R]{
		kind:  KindToggle,
		name:  name,
		gate:  func() bool { return pred(toggle.Get()) },
		gated: gated,
	}
}

// Selection returns an option choosing among variants by the selector's
// current value. An unknown selector picks the first variant. It panics
// when variants is empty or ids repeat, since that is a programming error.
func Selection[R any](name string, selector Value[string], variants ...Variant[R]) *Option[R] {
	if len(variants) == 0 {
		panic(fmt.Sprintf("option %s: selection without variants", name))
	}
	seen := make(map[string]bool, len(variants))
	for _, v := range variants {
		if seen[v.ID] {
			panic(fmt.Sprintf("option %s: duplicate variant %q", name, v.ID))
		}
		seen[v.ID] = true
	}
	return &Option[R]{kind: KindSelection, name: name, selector: selector, variants: variants}
}

// Template returns an option executing the text held by v with engine and
// converting the output with parse.
func Template[R any](name string, text Value[string], engine template.Engine, parse func(string) (R, error)) *Option[R] {
	return &Option[R]{kind: KindTemplate, name: name, text: text, engine: engine, parse: parse}
}

// Text is Template for plain string results.
func Text(name string, text Value[string], engine template.Engine) *Option[string] {
	return Template(name, text, engine, func(s string) (string, error) { return s, nil })
}

// Enabled reports whether a toggle option currently passes its predicate.
// Other kinds are always enabled.
func (o *Option[R]) Enabled() bool {
	if o.kind != KindToggle {
		return true
	}
	return o.gate()
}

// Variants returns the declared variants of a selection option.
func (o *Option[R]) Variants() []Variant[R] {
	return append([]Variant[R](nil), o.variants...)
}

// Selected returns the variant a selection option resolves to for the
// current selector value.
func (o *Option[R]) Selected() Variant[R] {
	id := o.selector.Get()
	for _, v := range o.variants {
		if v.ID == id {
			return v
		}
	}
	return o.variants[0]
}

// Resolve computes the option's value for ctx.
func (o *Option[R]) Resolve(ctx *activity.Context) (R, error) {
	var zero R
	switch o.kind {
	case KindSimple:
		return o.value.Get(), nil

	case KindToggle:
		if !o.gate() {
			return zero, nil
		}
		return o.gated.Resolve(ctx)

	case KindSelection:
		v := o.Selected()
		r, err := v.Compute(ctx)
		if err != nil {
			return zero, fmt.Errorf("%s: variant %s: %w", o.name, v.ID, err)
		}
		return r, nil

	case KindTemplate:
		out, err := o.engine.Execute(o.text.Get(), ctx)
		if err != nil {
			return zero, fmt.Errorf("%s: %w", o.name, err)
		}
		r, err := o.parse(out)
		if err != nil {
			return zero, fmt.Errorf("%s: %w", o.name, err)
		}
		return r, nil

	default:
		return zero, fmt.Errorf("%s: unknown option kind %s", o.name, o.kind)
	}
}
