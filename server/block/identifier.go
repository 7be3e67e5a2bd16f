package block

import (
	"errors"
	"fmt"
	"strings"
)

// DefaultNamespace is the namespace given to identifiers that do not specify
// one.
const DefaultNamespace = "voxel"

// ErrMalformedIdentifier is wrapped by every IdentifierError.
var ErrMalformedIdentifier = errors.New("block: malformed identifier")

// IdentifierError is returned when a material identifier cannot be parsed.
type IdentifierError struct {
	Input  string
	Reason string
}

// Error ...
func (e *IdentifierError) Error() string {
	return fmt.Sprintf("block: malformed identifier %q: %s", e.Input, e.Reason)
}

// Unwrap returns ErrMalformedIdentifier.
func (e *IdentifierError) Unwrap() error {
	return ErrMalformedIdentifier
}

// Identifier is a parsed material identifier in the format
// namespace::name[::variant].
type Identifier struct {
	Namespace string
	Name      string
	Variant   string
}

// String returns the canonical form of the identifier.
func (id Identifier) String() string {
	if id.Variant == "" {
		return id.Namespace + "::" + id.Name
	}
	return id.Namespace + "::" + id.Name + "::" + id.Variant
}

// ParseIdentifier parses s into an Identifier. A bare name is placed in the
// DefaultNamespace. Segments must be non-empty and consist of lower case
// letters, digits and underscores.
func ParseIdentifier(s string) (Identifier, error) {
	if s == "" {
		return Identifier{}, &IdentifierError{Input: s, Reason: "empty identifier"}
	}
	parts := strings.Split(s, "::")
	if len(parts) > 3 {
		return Identifier{}, &IdentifierError{Input: s, Reason: "too many segments"}
	}
	for _, part := range parts {
		if part == "" {
			return Identifier{}, &IdentifierError{Input: s, Reason: "empty segment"}
		}
		for _, r := range part {
			if (r < 'a' || r > 'z') && (r < '0' || r > '9') && r != '_' {
				return Identifier{}, &IdentifierError{Input: s, Reason: fmt.Sprintf("invalid character %q", r)}
			}
		}
	}
	switch len(parts) {
	case 1:
		return Identifier{Namespace: DefaultNamespace, Name: parts[0]}, nil
	case 2:
		return Identifier{Namespace: parts[0], Name: parts[1]}, nil
	}
	return Identifier{Namespace: parts[0], Name: parts[1], Variant: parts[2]}, nil
}
