package util

import (
	"fmt"
	"reflect"

	"github.com/jmespath/go-jmespath"
)

// ValidateQuery reports whether expr is a valid JMESPath expression.
func ValidateQuery(expr string) error {
	if _, err := jmespath.Compile(expr); err != nil {
		return fmt.Errorf("invalid --query: %w", err)
	}
	return nil
}

// Query evaluates a JMESPath expression against input, which must be built
// from map[string]any, []any and scalars. Empty results (null, empty list,
// empty object) are returned as an empty list so the output is always valid
// JSON of a predictable shape.
func Query(expr string, input any) (any, error) {
	res, err := jmespath.Search(expr, input)
	if err != nil {
		return nil, fmt.Errorf("jmespath search failed: %w", err)
	}
	if isEmpty(res) {
		return []any{}, nil
	}
	return res, nil
}

func isEmpty(v any) bool {
	if v == nil {
		return true
	}
	switch t := v.(type) {
	case string:
		return false
	case []any:
		return len(t) == 0
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array, reflect.Map:
		return rv.Len() == 0
	}
	return false
}
