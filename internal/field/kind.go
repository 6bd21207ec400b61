package field

import (
	"fmt"
	"strings"
)

// Kind is the kind of a field value.
type Kind int

const (
	// KindString is a nullable text value.
	KindString Kind = iota
	// KindNumber is a nullable signed 32-bit integer.
	KindNumber
	// KindLargeNumber is a nullable signed 64-bit integer, used for sizes.
	KindLargeNumber
	// KindBool is a nullable boolean.
	KindBool
	// KindPath is a nullable path that also tracks its pre-resolution value.
	KindPath
)

var kindNames = [...]string{
	KindString:      "string",
	KindNumber:      "number",
	KindLargeNumber: "large_number",
	KindBool:        "bool",
	KindPath:        "path",
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return fmt.Sprintf("Kind(%d)", int(k))
	}
	return kindNames[k]
}

// Valid reports whether k is one of the declared kinds.
func (k Kind) Valid() bool {
	return k >= KindString && k <= KindPath
}

// ParseKind converts a catalog keyword such as "string" or "large_number" into
// a Kind. Matching is case-insensitive and accepts "largenumber" and "int64"
// as aliases for large numbers.
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "string":
		return KindString, nil
	case "number", "int", "int32":
		return KindNumber, nil
	case "large_number", "largenumber", "int64":
		return KindLargeNumber, nil
	case "bool", "boolean":
		return KindBool, nil
	case "path":
		return KindPath, nil
	default:
		return KindString, fmt.Errorf("unknown field kind %q", s)
	}
}

// Definition is one column of a symbol definition. It is immutable once the
// owning symbol definition is registered.
type Definition struct {
	Name     string
	Kind     Kind
	Nullable bool
}

// Def is shorthand for a nullable column definition.
func Def(name string, kind Kind) Definition {
	return Definition{Name: name, Kind: kind, Nullable: true}
}

// Required is shorthand for a non-nullable column definition.
func Required(name string, kind Kind) Definition {
	return Definition{Name: name, Kind: kind}
}
