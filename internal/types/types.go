package types

import "fmt"

// TypeID uniquely identifies a type inside the interner.
type TypeID uint32

// NoTypeID marks the absence of a type.
const NoTypeID TypeID = 0

// ClassID addresses a class symbol in the arena of the table that issued it.
// Class types carry it as payload, so two class types are equal exactly when
// they name the same symbol.
type ClassID uint32

// NoClassID marks the absence of a class reference (the root class has no
// superclass).
const NoClassID ClassID = 0

// IsValid reports whether the class ID refers to an allocated symbol.
func (id ClassID) IsValid() bool { return id != NoClassID }

// Kind enumerates all supported kinds of types.
type Kind uint8

const (
	KindInvalid Kind = iota
	KindBoolean
	KindByte
	KindShort
	KindChar
	KindInt
	KindLong
	KindFloat
	KindDouble
	KindVoid
	KindClass
	KindArray
	KindNull
	KindUnresolved
)

// BasicKinds lists the basic kinds in declaration order.
var BasicKinds = [...]Kind{
	KindBoolean, KindByte, KindShort, KindChar, KindInt, KindLong, KindFloat, KindDouble, KindVoid,
}

func (k Kind) String() string {
	switch k {
	case KindInvalid:
		return "invalid"
	case KindBoolean:
		return "boolean"
	case KindByte:
		return "byte"
	case KindShort:
		return "short"
	case KindChar:
		return "char"
	case KindInt:
		return "int"
	case KindLong:
		return "long"
	case KindFloat:
		return "float"
	case KindDouble:
		return "double"
	case KindVoid:
		return "void"
	case KindClass:
		return "class"
	case KindArray:
		return "array"
	case KindNull:
		return "null"
	case KindUnresolved:
		return "unresolved"
	default:
		return fmt.Sprintf("Kind(%d)", k)
	}
}

// IsBasic reports whether k is one of the primitive kinds, void included.
func (k Kind) IsBasic() bool {
	return k >= KindBoolean && k <= KindVoid
}

// IsReference reports whether values of kind k are object references.
func (k Kind) IsReference() bool {
	return k == KindClass || k == KindArray || k == KindNull
}

// BasicKindByName maps a source-level primitive name to its kind.
func BasicKindByName(name string) (Kind, bool) {
	for _, k := range BasicKinds {
		if k.String() == name {
			return k, true
		}
	}
	return KindInvalid, false
}

// Type is a compact descriptor for any supported type.
type Type struct {
	Kind  Kind
	Class ClassID // for KindClass
	Elem  TypeID  // for KindArray, never itself an array
	Dims  uint32  // for KindArray, >= 1
	Name  string  // for KindUnresolved
}
