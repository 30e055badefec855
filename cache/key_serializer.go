package cache

import (
	"fmt"
	"strings"
	"time"
)

// KeySeparator defines the delimiter used between cache key segments.
const KeySeparator = "::"

// namespacedKeySerializer prefixes every key with a fixed namespace so that
// each cached repository owns a disjoint slice of the keyspace.
type namespacedKeySerializer struct {
	namespace string
}

// NewKeySerializer returns a KeySerializer that prefixes keys with namespace.
// An empty namespace produces keys that start with the method name.
func NewKeySerializer(namespace string) KeySerializer {
	return &namespacedKeySerializer{namespace: strings.TrimSpace(namespace)}
}

// SerializeKey joins namespace, method and args with KeySeparator.
func (s *namespacedKeySerializer) SerializeKey(method string, args ...any) string {
	parts := make([]string, 0, len(args)+2)
	if s.namespace != "" {
		parts = append(parts, s.namespace)
	}
	parts = append(parts, method)

	for _, arg := range args {
		parts = append(parts, serializeValue(arg))
	}

	return strings.Join(parts, KeySeparator)
}

func serializeValue(v any) string {
	switch val := v.(type) {
	case nil:
		return "nil"
	case string:
		return val
	case time.Time:
		return val.UTC().Format(time.RFC3339Nano)
	case fmt.Stringer:
		return val.String()
	case []string:
		return "[" + strings.Join(val, ",") + "]"
	case []any:
		parts := make([]string, len(val))
		for i, item := range val {
			parts[i] = serializeValue(item)
		}
		return "[" + strings.Join(parts, ",") + "]"
	default:
		return fmt.Sprintf("%v", val)
	}
}
