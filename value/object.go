package value

import (
	"slices"
	"time"

	"golang.org/x/time/rate"
)

// adoptElement checks that e can be stored in v, binding v's class on first
// use. Only SetObject may store nil, to empty a slot.
func (v *Value) adoptElement(op string, e Element) error {
	if e == nil {
		return newError(op, ErrTypeMismatch).withKind(Object).withClass(v.class)
	}
	c := e.Class()
	if v.class == nil {
		v.bindClass(c)
		return nil
	}
	if c != v.class {
		return newError(op, ErrTypeMismatch).withKind(Object).withClass(c)
	}
	return nil
}

// checkFilled rejects dispatch over a vector with an empty slot.
func (v *Value) checkFilled(op, name string) error {
	if i := slices.Index(v.objs.items, nil); i >= 0 {
		return newError(op, ErrTypeMismatch).withName(name).withClass(v.class).withIndex(i)
	}
	return nil
}

func (v *Value) retainsElements() bool {
	return v.class != nil && v.class.UsesRetainRelease()
}

func (v *Value) retainElement(e Element) {
	if e == nil || !v.retainsElements() {
		return
	}
	if rr, ok := e.(RetainReleaser); ok {
		rr.Retain()
	}
}

func (v *Value) releaseElement(e Element) {
	if e == nil || !v.retainsElements() {
		return
	}
	if rr, ok := e.(RetainReleaser); ok {
		rr.Release()
	}
}

func (v *Value) releaseElements(elems []Element) {
	if !v.retainsElements() {
		return
	}
	for _, e := range elems {
		v.releaseElement(e)
	}
}

// appendAll pushes every element of src. Kinds must match.
func (v *Value) appendAll(src *Value) {
	for i := range src.Count() {
		v.appendFrom(src, i)
	}
}

// slowPathElements is the vector length above which a generic dispatch
// fallback is worth a warning.
const slowPathElements = 10000

var slowPathWarn = rate.Sometimes{First: 1, Interval: time.Minute}

func warnSlowPath(op, name string, c Class, n int) {
	if n < slowPathElements {
		return
	}
	slowPathWarn.Do(func() {
		settings().Logger.Warn("generic dispatch over large object vector",
			"op", op,
			"name", name,
			"class", c.Name(),
			"elements", n,
		)
	})
}

func observeDispatch(op string, n int, bulk bool, start time.Time, err error) {
	s := settings()
	if s.Observer != nil {
		s.Observer.ObserveDispatch(op, n, bulk, time.Since(start), err)
	}
}

// shaped gives r the dimensions of v when they line up element for element.
func shaped(r, v *Value) *Value {
	if v.dims == nil || r.Count() != v.Count() {
		return r
	}
	if r.IsPublished() {
		c := r.Copy()
		r.Release()
		r = c
	}
	r.dims = slices.Clone(v.dims)
	return r
}

func (v *Value) propertySignature(op, name string) (*PropertySignature, error) {
	if err := v.checkKind(op, Object); err != nil {
		return nil, err
	}
	if v.class == nil {
		return nil, newError(op, ErrUndeclaredCapability).withName(name)
	}
	sig := v.class.Property(name)
	if sig == nil {
		return nil, newError(op, ErrUndeclaredCapability).withName(name).withClass(v.class)
	}
	return sig, nil
}

func (sig *PropertySignature) checkResult(op string, r *Value) error {
	if r == nil {
		return newError(op, ErrTypeMismatch).withName(sig.Name).withClass(sig.Class)
	}
	if k := r.kind; !sig.Kinds.Has(k) {
		r.Release()
		return newError(op, ErrTypeMismatch).withName(sig.Name).withKind(k)
	}
	if c := r.class; r.kind == Object && sig.Class != nil && c != nil && c != sig.Class {
		r.Release()
		return newError(op, ErrTypeMismatch).withName(sig.Name).withClass(c)
	}
	return nil
}

// GetPropertyOfElements reads property name from every element and returns
// the results in element order. Properties declared singleton yield exactly
// one result per element, shaped like v. Without a bulk getter, every element
// of a vector longer than one must yield exactly one result, singleton or not.
// An empty vector yields an empty value of the property's declared kind.
func (v *Value) GetPropertyOfElements(name string) (*Value, error) {
	const op = "GetPropertyOfElements"
	start := time.Now()
	r, bulk, err := v.getPropertyOfElements(op, name)
	observeDispatch(op, v.Count(), bulk, start, err)
	return r, err
}

func (v *Value) getPropertyOfElements(op, name string) (*Value, bool, error) {
	sig, err := v.propertySignature(op, name)
	if err != nil {
		return nil, false, err
	}
	if err := v.checkFilled(op, name); err != nil {
		return nil, false, err
	}
	elems := v.objs.items
	n := len(elems)
	singleton := sig.Kinds.Singleton()
	log := settings().Logger

	switch {
	case n == 0:
		k, ok := sig.Kinds.Only()
		if !ok {
			return nil, false, newError(op, ErrTypeMismatch).withName(name).withClass(v.class)
		}
		return NewOfKind(k, sig.Class), false, nil

	case n == 1:
		r, err := elems[0].GetProperty(name)
		if err != nil {
			return nil, false, err
		}
		if err := sig.checkResult(op, r); err != nil {
			return nil, false, err
		}
		if singleton {
			if r.Count() != 1 {
				return nil, false, v.arityError(op, name, 0, r)
			}
			r = shaped(r, v)
		}
		return r, false, nil

	case sig.GetBulk != nil:
		log.Debug("property dispatch", "path", "bulk", "name", name, "elements", n)
		r, err := sig.GetBulk(elems)
		if err != nil {
			return nil, true, err
		}
		if err := sig.checkResult(op, r); err != nil {
			return nil, true, err
		}
		if singleton {
			if r.Count() != n {
				return nil, true, v.arityError(op, name, -1, r)
			}
			r = shaped(r, v)
		}
		return r, true, nil
	}

	log.Debug("property dispatch", "path", "generic", "name", name, "elements", n)
	warnSlowPath(op, name, v.class, n)

	// Without a bulk getter every element must yield exactly one value.
	if k, ok := sig.Kinds.Only(); ok {
		acc := NewOfKind(k, sig.Class)
		_ = acc.Reserve(n)
		for i, e := range elems {
			t, err := e.GetProperty(name)
			if err != nil {
				acc.Release()
				return nil, false, err
			}
			if err := sig.checkResult(op, t); err != nil {
				acc.Release()
				return nil, false, err
			}
			if t.Count() != 1 {
				acc.Release()
				return nil, false, v.arityError(op, name, i, t)
			}
			acc.appendFrom(t, 0)
			t.Release()
		}
		if singleton {
			acc = shaped(acc, v)
		}
		return acc, false, nil
	}

	results := make([]*Value, 0, n)
	defer func() {
		for _, t := range results {
			t.Release()
		}
	}()
	for i, e := range elems {
		t, err := e.GetProperty(name)
		if err != nil {
			return nil, false, err
		}
		if err := sig.checkResult(op, t); err != nil {
			return nil, false, err
		}
		if t.Count() != 1 {
			return nil, false, v.arityError(op, name, i, t)
		}
		results = append(results, t)
	}

	r, err := Concatenate(results...)
	if err != nil {
		return nil, false, err
	}
	if singleton {
		r = shaped(r, v)
	}
	return r, false, nil
}

// arityError releases the offending result r and reports its count. An
// index of -1 marks a bulk result.
func (v *Value) arityError(op, name string, i int, r *Value) error {
	c := r.Count()
	r.Release()
	return newError(op, ErrPropertyArity).withName(name).withClass(v.class).withIndex(i).withCount(c)
}

// SetPropertyOfElements assigns nv to property name of every element. nv
// must have one element, assigned to all, or one element per target.
func (v *Value) SetPropertyOfElements(name string, nv *Value) error {
	const op = "SetPropertyOfElements"
	start := time.Now()
	bulk, err := v.setPropertyOfElements(op, name, nv)
	observeDispatch(op, v.Count(), bulk, start, err)
	return err
}

func (v *Value) setPropertyOfElements(op, name string, nv *Value) (bool, error) {
	sig, err := v.propertySignature(op, name)
	if err != nil {
		return false, err
	}
	if err := v.checkFilled(op, name); err != nil {
		return false, err
	}
	if sig.ReadOnly {
		return false, newError(op, ErrUndeclaredCapability).withName(name).withClass(v.class)
	}
	if !sig.Kinds.Has(nv.kind) {
		return false, newError(op, ErrTypeMismatch).withName(name).withKind(nv.kind)
	}

	elems := v.objs.items
	n, c := len(elems), nv.Count()
	if c != 1 && c != n {
		return false, newError(op, ErrBroadcastMismatch).withName(name).withClass(v.class).withCount(c)
	}
	if n == 0 {
		return false, nil
	}

	if sig.SetBulk != nil && n > 1 {
		settings().Logger.Debug("property dispatch", "path", "bulk", "name", name, "elements", n)
		return true, sig.SetBulk(elems, nv)
	}

	if c == 1 {
		for _, e := range elems {
			if err := e.SetProperty(name, nv); err != nil {
				return false, err
			}
		}
		return false, nil
	}

	warnSlowPath(op, name, v.class, n)
	for i, e := range elems {
		t, err := nv.ValueAt(i)
		if err != nil {
			return false, err
		}
		err = e.SetProperty(name, t)
		t.Release()
		if err != nil {
			return false, err
		}
	}
	return false, nil
}

func (v *Value) methodSignature(op, name string) (*MethodSignature, error) {
	if err := v.checkKind(op, Object); err != nil {
		return nil, err
	}
	if v.class == nil {
		return nil, newError(op, ErrUndeclaredCapability).withName(name)
	}
	sig := v.class.Method(name)
	if sig == nil {
		return nil, newError(op, ErrUndeclaredCapability).withName(name).withClass(v.class)
	}
	return sig, nil
}

func (sig *MethodSignature) checkResult(op string, r *Value) error {
	if r == nil {
		return newError(op, ErrTypeMismatch).withName(sig.Name).withClass(sig.Class)
	}
	k := r.kind
	if k == Null || sig.Returns.Has(k) {
		return nil
	}
	r.Release()
	return newError(op, ErrTypeMismatch).withName(sig.Name).withKind(k)
}

// checkArity enforces MaskSingleton: a non-NULL result r must have want
// elements. On failure r is released. An index of -1 marks a bulk result.
func (sig *MethodSignature) checkArity(op string, c Class, i int, r *Value, want int) error {
	if !sig.Returns.Singleton() || r.kind == Null || r.Count() == want {
		return nil
	}
	n := r.Count()
	r.Release()
	return newError(op, ErrPropertyArity).withName(sig.Name).withClass(c).withIndex(i).withCount(n)
}

// ExecuteInstanceMethodOfElements calls method name on every element and
// returns the results in element order. NULL results are dropped. When the
// signature pins a single return kind the results are accumulated directly
// into a buffer of that kind.
func (v *Value) ExecuteInstanceMethodOfElements(name string, args []*Value) (*Value, error) {
	const op = "ExecuteInstanceMethodOfElements"
	start := time.Now()
	r, bulk, err := v.executeInstanceMethodOfElements(op, name, args)
	observeDispatch(op, v.Count(), bulk, start, err)
	return r, err
}

func (v *Value) executeInstanceMethodOfElements(op, name string, args []*Value) (*Value, bool, error) {
	sig, err := v.methodSignature(op, name)
	if err != nil {
		return nil, false, err
	}
	if err := v.checkFilled(op, name); err != nil {
		return nil, false, err
	}
	elems := v.objs.items
	n := len(elems)
	log := settings().Logger

	switch {
	case n == 0:
		k, ok := sig.Returns.Only()
		if !ok {
			return nil, false, newError(op, ErrTypeMismatch).withName(name).withClass(v.class)
		}
		return NewOfKind(k, sig.Class), false, nil

	case n == 1:
		r, err := elems[0].ExecuteInstanceMethod(name, args)
		if err != nil {
			return nil, false, err
		}
		if err := sig.checkResult(op, r); err != nil {
			return nil, false, err
		}
		if err := sig.checkArity(op, v.class, 0, r, 1); err != nil {
			return nil, false, err
		}
		return r, false, nil

	case sig.ExecuteBulk != nil:
		log.Debug("method dispatch", "path", "bulk", "name", name, "elements", n)
		r, err := sig.ExecuteBulk(elems, args)
		if err != nil {
			return nil, true, err
		}
		if err := sig.checkResult(op, r); err != nil {
			return nil, true, err
		}
		if err := sig.checkArity(op, v.class, -1, r, n); err != nil {
			return nil, true, err
		}
		return r, true, nil
	}

	if k, ok := sig.Returns.Only(); ok {
		log.Debug("method dispatch", "path", "accumulate", "name", name, "kind", k, "elements", n)
		r, err := v.accumulate(op, sig, k, args)
		return r, false, err
	}

	log.Debug("method dispatch", "path", "generic", "name", name, "elements", n)
	warnSlowPath(op, name, v.class, n)

	results := make([]*Value, 0, n)
	defer func() {
		for _, t := range results {
			t.Release()
		}
	}()
	for i, e := range elems {
		t, err := e.ExecuteInstanceMethod(name, args)
		if err != nil {
			return nil, false, err
		}
		if err := sig.checkResult(op, t); err != nil {
			return nil, false, err
		}
		if err := sig.checkArity(op, v.class, i, t, 1); err != nil {
			return nil, false, err
		}
		results = append(results, t)
	}

	r, err := Concatenate(results...)
	return r, false, err
}

// accumulate runs the method per element and appends each result to a
// buffer of kind k.
func (v *Value) accumulate(op string, sig *MethodSignature, k Kind, args []*Value) (*Value, error) {
	acc := NewOfKind(k, sig.Class)

	for i, e := range v.objs.items {
		t, err := e.ExecuteInstanceMethod(sig.Name, args)
		if err != nil {
			acc.Release()
			return nil, err
		}
		if err := sig.checkResult(op, t); err != nil {
			acc.Release()
			return nil, err
		}
		if err := sig.checkArity(op, v.class, i, t, 1); err != nil {
			acc.Release()
			return nil, err
		}

		switch {
		case t.kind == Null || t.Count() == 0:
		case t.kind != k:
			kind := t.kind
			t.Release()
			acc.Release()
			return nil, newError(op, ErrTypeMismatch).withName(sig.Name).withKind(kind)
		case k == Object:
			if acc.class != nil && t.class != acc.class {
				t.Release()
				acc.Release()
				return nil, newError(op, ErrTypeMismatch).withName(sig.Name).withClass(t.class)
			}
			acc.appendAll(t)
		default:
			acc.appendAll(t)
		}
		t.Release()
	}
	return acc, nil
}
