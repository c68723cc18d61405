package icu4x

import (
	"context"
	"fmt"

	"github.com/wippyai/icu-bridge/binding"
	"github.com/wippyai/icu-bridge/errors"
	"github.com/wippyai/icu-bridge/resource"
	"github.com/wippyai/icu-bridge/transcoder"
)

// Binder binds a catalog to a loaded core. *runtime.Runtime implements it.
type Binder interface {
	Bind(catalog *binding.Catalog) (*binding.Invoker, error)
}

// Lib is the entry point of the typed API.
type Lib struct {
	inv *binding.Invoker
}

// New binds the typed API's catalog through b.
func New(b Binder) (*Lib, error) {
	cat, err := Catalog()
	if err != nil {
		return nil, err
	}
	inv, err := b.Bind(cat)
	if err != nil {
		return nil, err
	}
	return &Lib{inv: inv}, nil
}

// NewWithInvoker wraps an invoker that was bound to Catalog.
func NewWithInvoker(inv *binding.Invoker) *Lib {
	return &Lib{inv: inv}
}

// Invoker returns the underlying invoker.
func (l *Lib) Invoker() *binding.Invoker { return l.inv }

// object is the state shared by every wrapper type.
type object struct {
	lib *Lib
	obj *resource.Object
}

// Destroy releases the native object. It is deferred while other objects
// borrow from this one; a second call fails.
func (o object) Destroy() error { return o.obj.Destroy() }

// Resource exposes the handle wrapper.
func (o object) Resource() *resource.Object { return o.obj }

func call[T any](ctx context.Context, l *Lib, method string, self *resource.Object, args ...any) (T, error) {
	var zero T
	v, err := l.inv.Invoke(ctx, method, self, args...)
	if err != nil {
		if err == transcoder.ErrWriteableGrow {
			return zero, ErrWriteable
		}
		return zero, err
	}
	if v == nil {
		return zero, nil
	}
	t, ok := v.(T)
	if !ok {
		return zero, errors.TypeMismatch(errors.PhaseDecode, []string{method}, fmt.Sprintf("%T", v), fmt.Sprintf("%T", zero))
	}
	return t, nil
}

func (o object) text(ctx context.Context, method string, args ...any) (string, error) {
	return call[string](ctx, o.lib, method, o.obj, args...)
}

func (o object) void(ctx context.Context, method string, args ...any) error {
	_, err := call[any](ctx, o.lib, method, o.obj, args...)
	return err
}

func (l *Lib) construct(ctx context.Context, method string, self *resource.Object, args ...any) (object, error) {
	obj, err := call[*resource.Object](ctx, l, method, self, args...)
	if err != nil {
		return object{}, err
	}
	return object{lib: l, obj: obj}, nil
}
