package model

import "fmt"

// Merge updates dst with every present property of src and reports whether
// src was compatible.
//
// A nil or ignored src is a no-op that succeeds. src must be an instance of
// dst's schema or of a descendant; otherwise Merge returns false and dst is
// left untouched. Only dst's own properties are visited, ignored properties
// are skipped, and absent source values never overwrite the destination.
// Nested models are replaced as a whole, not merged recursively.
func Merge(dst, src Model) bool {
	return MergeErr(dst, src) == nil
}

// MergeErr is Merge reporting the failure reason. It returns an error
// wrapping ErrTypeMismatch for incompatible schemas and ErrNilModel for a
// nil destination.
func MergeErr(dst, src Model) error {
	view, err := mergeSource(dst, src)
	if err != nil || view == nil {
		return err
	}

	applyMerge(dst, view)

	return nil
}

// mergeSource resolves the part of src that is merged into dst. A nil view
// with a nil error means there is nothing to do.
func mergeSource(dst, src Model) (Model, error) {
	if isNil(dst) {
		return nil, ErrNilModel
	}

	if isNil(src) {
		return nil, nil
	}

	if ig, ok := src.(Ignorable); ok && ig.Ignored() {
		return nil, nil
	}

	ds, ss := dst.Schema(), src.Schema()

	view, ok := ss.viewAs(src, ds)
	if !ok {
		return nil, fmt.Errorf("%w: %s is not a kind of %s", ErrTypeMismatch, ss.Name(), ds.Name())
	}

	if view == dst {
		return nil, nil
	}

	return view, nil
}

func applyMerge(dst, src Model) {
	s := dst.Schema()
	for _, f := range s.fields {
		if s.IsIgnored(f.Name) {
			continue
		}

		if f.Present(src) {
			f.assign(dst, src)
		}
	}
}

// Clone returns a copy of m owning its own lists, maps and nested models.
// Models held in lists and maps are cloned as well.
func Clone[M Model](m M) M {
	if isNil(m) {
		return m
	}

	return clone(m).(M)
}

func clone(m Model) Model {
	s := m.Schema()

	c := s.New()
	for _, f := range s.fields {
		f.assign(c, m)
	}

	return c
}
