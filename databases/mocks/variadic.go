package mocks

// callArgs flattens fixed and variadic arguments the way mockery does, so an
// expectation registered without options matches a call made without them.
func callArgs[T any](fixed []interface{}, opts []T) []interface{} {
	out := make([]interface{}, 0, len(fixed)+len(opts))
	out = append(out, fixed...)
	for _, o := range opts {
		out = append(out, o)
	}
	return out
}
