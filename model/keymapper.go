package model

import (
	"maps"

	"modelkit/internal/match"
)

// Convention is the default rule turning property names into wire keys.
type Convention int

const (
	// ConventionInherit uses the parent's convention, or identity for root
	// schemas.
	ConventionInherit Convention = iota
	// ConventionIdentity uses the property name as the wire key.
	ConventionIdentity
	// ConventionSnakeCase maps "isNew" to "is_new".
	ConventionSnakeCase
)

// String returns a human-readable convention name.
func (c Convention) String() string {
	switch c {
	case ConventionInherit:
		return "inherit"
	case ConventionIdentity:
		return "identity"
	case ConventionSnakeCase:
		return "snake_case"
	default:
		return "unknown"
	}
}

// KeyMapper translates property names to wire keys.
type KeyMapper struct {
	convention Convention
	exceptions map[string]string
}

// NewKeyMapper creates a mapper with the given convention and explicit
// property -> wire key exceptions.
func NewKeyMapper(convention Convention, exceptions map[string]string) *KeyMapper {
	if convention == ConventionInherit {
		convention = ConventionIdentity
	}

	return &KeyMapper{
		convention: convention,
		exceptions: maps.Clone(exceptions),
	}
}

// Extend returns a child mapper. Child exceptions override inherited entries
// for the same property; ConventionInherit keeps the receiver's convention.
func (k *KeyMapper) Extend(convention Convention, exceptions map[string]string) *KeyMapper {
	if convention == ConventionInherit {
		convention = k.convention
	}

	merged := maps.Clone(k.exceptions)
	if merged == nil {
		merged = make(map[string]string, len(exceptions))
	}

	maps.Copy(merged, exceptions)

	return &KeyMapper{
		convention: convention,
		exceptions: merged,
	}
}

// Convention returns the effective convention.
func (k *KeyMapper) Convention() Convention {
	return k.convention
}

// ToWire returns the wire key for a property.
func (k *KeyMapper) ToWire(property string) string {
	if key, ok := k.exceptions[property]; ok {
		return key
	}

	if k.convention == ConventionSnakeCase {
		return match.SnakeCase(property)
	}

	return property
}

// Exceptions returns a copy of the explicit property -> wire key entries.
func (k *KeyMapper) Exceptions() map[string]string {
	return maps.Clone(k.exceptions)
}
