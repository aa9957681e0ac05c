package pool

import (
	"context"
	"fmt"
	"reflect"
)

// Concat joins two slices into a new slice. Neither operand is modified or aliased.
func Concat[E any](a, b []E) ([]E, error) {
	out := make([]E, 0, len(a)+len(b))
	out = append(out, a...)
	return append(out, b...), nil
}

// MapConcat applies m to every element of xs and concatenates the results in
// input order. m must return a sequence: R has to be a slice or string type,
// otherwise the call fails with ErrNotConcatenable before any work is done.
//
// It is MapReduce with concatenation as the reduce function and takes the same
// call options.
//
// Example:
//
//	p, _ := NewPool[int, []int](WithWorkerCount(2))
//	out, err := p.MapConcat(ctx, []int{0, 1, 2}, MapOf(func(x int) []int { return []int{x + 1} }))
//	// out == []int{1, 2, 3}
func (p *Pool[T, R]) MapConcat(ctx context.Context, xs []T, m MapFunc[T, R], opts ...CallOption) (R, error) {
	if !concatenable[R]() {
		var zero R
		return zero, fmt.Errorf("%w: %T", ErrNotConcatenable, zero)
	}
	return p.MapReduce(ctx, xs, m, concatValues[R], opts...)
}

func concatenable[R any]() bool {
	switch reflect.TypeFor[R]().Kind() {
	case reflect.Slice, reflect.String:
		return true
	default:
		return false
	}
}

// concatValues concatenates two values of a slice or string type R into a new value.
func concatValues[R any](a, b R) (R, error) {
	va, vb := reflect.ValueOf(&a).Elem(), reflect.ValueOf(&b).Elem()

	switch va.Kind() {
	case reflect.Slice:
		out := reflect.MakeSlice(va.Type(), 0, va.Len()+vb.Len())
		out = reflect.AppendSlice(out, va)
		out = reflect.AppendSlice(out, vb)
		return out.Interface().(R), nil
	case reflect.String:
		out := reflect.New(va.Type()).Elem()
		out.SetString(va.String() + vb.String())
		return out.Interface().(R), nil
	default:
		return a, fmt.Errorf("%w: %T", ErrNotConcatenable, a)
	}
}
