package lookup

import (
	"fmt"
	"strings"
)

// KeyKind says which attribute a lookup key refers to.
type KeyKind int

const (
	// KeyAuto tries the name first and falls back to the id.
	KeyAuto KeyKind = iota
	KeyName
	KeyID
)

func (k KeyKind) String() string {
	switch k {
	case KeyName:
		return "name"
	case KeyID:
		return "id"
	default:
		return "auto"
	}
}

// ParseKeyKind maps "name", "id" or "" (auto) to a KeyKind.
func ParseKeyKind(raw string) (KeyKind, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "", "auto":
		return KeyAuto, nil
	case "name":
		return KeyName, nil
	case "id":
		return KeyID, nil
	default:
		return KeyAuto, fmt.Errorf("%w: unknown key kind %q", ErrInvalidParameter, raw)
	}
}

// Key is a single-card lookup request.
type Key struct {
	Kind  KeyKind
	Value string
}

// ByName, ByID and Auto build keys of the matching kind.
func ByName(name string) Key { return Key{Kind: KeyName, Value: name} }
func ByID(id string) Key { return Key{Kind: KeyID, Value: id} }
func Auto(value string) Key { return Key{Kind: KeyAuto, Value: value} }
