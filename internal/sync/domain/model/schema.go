package model

import "time"

// CollectionSchema is the attribute name to type map of a remote collection,
// fetched at runtime. It is immutable once built and cached for the duration of
// a single engine invocation.
type CollectionSchema struct {
	CollectionID string
	Attributes   map[string]AttributeType
	FetchedAt    time.Time
}

// Has reports whether the collection declares the attribute.
func (s *CollectionSchema) Has(name string) bool {
	_, ok := s.Attributes[name]
	return ok
}

// TypeOf returns the declared type of the attribute, or AttributeUnknown when
// the attribute is absent.
func (s *CollectionSchema) TypeOf(name string) AttributeType {
	if t, ok := s.Attributes[name]; ok {
		return t
	}
	return AttributeUnknown
}
