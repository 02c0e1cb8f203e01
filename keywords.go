package acdat

import "io"

// KeywordReader yields keyword entries one-by-one, in insertion order.
// It should return io.EOF when the stream is exhausted.
//
// Source parsing is intentionally outside this package; adapters wrap
// concrete formats (files, stores, wire payloads) and feed this API.
type KeywordReader[V any] interface {
	Next() (key string, value V, err error)
}

// BuildReader drains a streaming keyword source and constructs an
// automaton from the collected entries.
func BuildReader[V any](reader KeywordReader[V]) (*Automaton[V], error) {
	var keys []string
	var values []V
	for {
		key, value, err := reader.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		keys = append(keys, key)
		values = append(values, value)
	}
	tracer().Infof("collected %d keywords from stream", len(keys))
	return Build(keys, values)
}
