package option

// Value is a single configuration value as held by settings storage. Get
// returns the value currently in effect, including edits that have not been
// saved yet; Stored returns the last saved value.
type Value[T any] interface {
	Get() T
	Stored() T
}

type constValue[T any] struct{ v T }

func (c constValue[T]) Get() T    { return c.v }
func (c constValue[T]) Stored() T { return c.v }

// Const returns a Value that always yields v.
func Const[T any](v T) Value[T] {
	return constValue[T]{v: v}
}

// FuncValue adapts a pair of getters to a Value.
type FuncValue[T any] struct {
	GetFn    func() T
	StoredFn func() T
}

func (f FuncValue[T]) Get() T { return f.GetFn() }

func (f FuncValue[T]) Stored() T {
	if f.StoredFn == nil {
		return f.GetFn()
	}
	return f.StoredFn()
}

type storedValue[T any] struct{ v Value[T] }

func (s storedValue[T]) Get() T    { return s.v.Stored() }
func (s storedValue[T]) Stored() T { return s.v.Stored() }

// StoredOnly returns a view of v that ignores unsaved edits.
func StoredOnly[T any](v Value[T]) Value[T] {
	return storedValue[T]{v: v}
}
