package gmaps

import (
	"fmt"
	"net/url"
	"sort"
	"strings"
)

// Query assembles a set of optional parameters into one canonical query string.
//
// A parameter is either set (present with a value) or unset (absent). Build
// materializes the query string and caches it; any later mutation drops the cached
// string, so a request can only be executed with a query that reflects its current
// parameters. Query is not safe for concurrent use; it belongs to the request that
// owns it.
type Query struct {
	params    map[string]string
	exclusive [][]string
	required  []string
	built     *string
}

// NewQuery creates an empty, unbuilt query.
func NewQuery() *Query {
	return &Query{
		params: make(map[string]string),
	}
}

// Set sets a parameter, replacing any previous value.
func (q *Query) Set(name, value string) *Query {
	q.params[name] = value
	q.built = nil

	return q
}

// Unset removes a parameter.
func (q *Query) Unset(name string) *Query {
	if _, ok := q.params[name]; ok {
		delete(q.params, name)
		q.built = nil
	}

	return q
}

// Get returns the value of a parameter and whether it is set.
func (q *Query) Get(name string) (string, bool) {
	value, ok := q.params[name]

	return value, ok
}

// Has reports whether a parameter is set.
func (q *Query) Has(name string) bool {
	_, ok := q.params[name]

	return ok
}

// Exclusive declares that at most one of names may be set when the query is built.
func (q *Query) Exclusive(names ...string) *Query {
	q.exclusive = append(q.exclusive, names)
	q.built = nil

	return q
}

// Require declares parameters that must be set when the query is built.
func (q *Query) Require(names ...string) *Query {
	q.required = append(q.required, names...)
	q.built = nil

	return q
}

// Build validates the parameters and materializes the canonical query string:
// parameters sorted by name, names and values URL-escaped.
//
// Setting more than one parameter of an exclusive group is rejected with
// ErrConflictingParameters; no precedence is applied. A failed build leaves the
// query unbuilt.
func (q *Query) Build() error {
	q.built = nil

	for _, name := range q.required {
		if !q.Has(name) {
			return missingParameter(name)
		}
	}

	for _, group := range q.exclusive {
		var set []string

		for _, name := range group {
			if q.Has(name) {
				set = append(set, name)
			}
		}

		if len(set) > 1 {
			return fmt.Errorf("%w: %s", ErrConflictingParameters, strings.Join(set, ", "))
		}
	}

	values := make(url.Values, len(q.params))
	for name, value := range q.params {
		values.Set(name, value)
	}

	encoded := values.Encode()
	q.built = &encoded

	return nil
}

// Encoded returns the built query string. The boolean is false when the query has
// not been built, which is distinct from a built query with no parameters.
func (q *Query) Encoded() (string, bool) {
	if q.built == nil {
		return "", false
	}

	return *q.built, true
}

// Built reports whether the query has been built since its last mutation.
func (q *Query) Built() bool {
	return q.built != nil
}

// Names returns the names of all set parameters in sorted order.
func (q *Query) Names() []string {
	names := make([]string, 0, len(q.params))
	for name := range q.params {
		names = append(names, name)
	}

	sort.Strings(names)

	return names
}

func missingParameter(name string) error {
	return fmt.Errorf("%w: %s", ErrMissingParameter, name)
}
