package analyze

import "strings"

// Describe returns a short Go-like spelling of t for diagnostics. Types of
// the analyzed packages are written by bare name, external named types with
// their package path:
//   - "StaffEntity", "*AccountEntity"
//   - "[]string", "map[string]bool", "any"
func (t *TypeInfo) Describe() string {
	var b strings.Builder

	t.describe(&b)

	return b.String()
}

func (t *TypeInfo) describe(b *strings.Builder) {
	if t == nil {
		b.WriteString("<nil>")
		return
	}

	switch t.Kind {
	case TypeKindPointer:
		b.WriteString("*")
		t.ElemType.describe(b)
	case TypeKindSlice:
		b.WriteString("[]")
		t.ElemType.describe(b)
	case TypeKindMap:
		b.WriteString("map[")
		t.KeyType.describe(b)
		b.WriteString("]")
		t.ElemType.describe(b)
	case TypeKindExternal:
		if t.IsNamed() {
			b.WriteString(t.ID.String())
		} else {
			b.WriteString(t.GoType.String())
		}
	case TypeKindStruct, TypeKindInterface, TypeKindAlias:
		switch {
		case t.IsNamed():
			b.WriteString(t.ID.Name)
		case t.Kind == TypeKindStruct:
			b.WriteString("struct{...}")
		case t.Kind == TypeKindInterface:
			b.WriteString("any")
		default:
			t.Underlying.describe(b)
		}
	default:
		if t.GoType == nil {
			b.WriteString("<unknown>")
			return
		}

		b.WriteString(t.GoType.String())
	}
}

// FieldPath joins a type name and a chain of field names, e.g.
// "StaffEntity.Title".
func FieldPath(typeName string, fields ...string) string {
	return strings.Join(append([]string{typeName}, fields...), ".")
}
