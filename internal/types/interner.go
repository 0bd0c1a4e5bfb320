package types

import (
	"fmt"
	"sync"

	"fortio.org/safecast"
)

// Builtins stores TypeIDs for the basic types and null.
type Builtins struct {
	Boolean TypeID
	Byte    TypeID
	Short   TypeID
	Char    TypeID
	Int     TypeID
	Long    TypeID
	Float   TypeID
	Double  TypeID
	Void    TypeID
	Null    TypeID
}

// Interner provides stable TypeIDs by hashing structural descriptors.
// Basic kinds and null are interned once at construction, so every later
// request for them yields the same ID.
type Interner struct {
	mu       sync.RWMutex
	types    []Type
	index    map[Type]TypeID
	basic    [KindVoid + 1]TypeID
	builtins Builtins
}

// NewInterner constructs an interner seeded with the basic types.
func NewInterner() *Interner {
	in := &Interner{
		types: make([]Type, 1, 64), // 0 reserved for NoTypeID
		index: make(map[Type]TypeID, 64),
	}
	for _, k := range BasicKinds {
		in.basic[k] = in.internLocked(Type{Kind: k})
	}
	in.builtins = Builtins{
		Boolean: in.basic[KindBoolean],
		Byte:    in.basic[KindByte],
		Short:   in.basic[KindShort],
		Char:    in.basic[KindChar],
		Int:     in.basic[KindInt],
		Long:    in.basic[KindLong],
		Float:   in.basic[KindFloat],
		Double:  in.basic[KindDouble],
		Void:    in.basic[KindVoid],
		Null:    in.internLocked(Type{Kind: KindNull}),
	}
	return in
}

// Builtins returns TypeIDs for primitive types.
func (in *Interner) Builtins() Builtins {
	return in.builtins
}

// Basic returns the canonical TypeID of a basic kind.
func (in *Interner) Basic(k Kind) TypeID {
	if !k.IsBasic() {
		panic(fmt.Sprintf("types: %s is not a basic kind", k))
	}
	return in.basic[k]
}

// Null returns the TypeID of the null literal.
func (in *Interner) Null() TypeID {
	return in.builtins.Null
}

// Class returns the class type for the given symbol.
func (in *Interner) Class(id ClassID) TypeID {
	if !id.IsValid() {
		return NoTypeID
	}
	return in.Intern(Type{Kind: KindClass, Class: id})
}

// Array returns the array type with dims dimensions over elem. Nested arrays
// are flattened, so Array(Array(int, 1), 2) is Array(int, 3).
func (in *Interner) Array(elem TypeID, dims uint32) TypeID {
	if dims == 0 {
		return elem
	}
	if tt, ok := in.Lookup(elem); ok && tt.Kind == KindArray {
		elem = tt.Elem
		dims += tt.Dims
	}
	return in.Intern(Type{Kind: KindArray, Elem: elem, Dims: dims})
}

// Unresolved returns a placeholder for a class or array name that has not
// been looked up yet.
func (in *Interner) Unresolved(name string) TypeID {
	return in.Intern(Type{Kind: KindUnresolved, Name: name})
}

// Intern ensures the provided descriptor has a stable TypeID.
func (in *Interner) Intern(t Type) TypeID {
	if t.Kind == KindInvalid {
		return NoTypeID
	}
	in.mu.RLock()
	id, ok := in.index[t]
	in.mu.RUnlock()
	if ok {
		return id
	}
	in.mu.Lock()
	defer in.mu.Unlock()
	return in.internLocked(t)
}

func (in *Interner) internLocked(t Type) TypeID {
	if id, ok := in.index[t]; ok {
		return id
	}
	n, err := safecast.Conv[uint32](len(in.types))
	if err != nil {
		panic(fmt.Errorf("len(types) overflow: %w", err))
	}
	id := TypeID(n)
	in.types = append(in.types, t)
	in.index[t] = id
	return id
}

// Lookup returns the descriptor for a TypeID.
func (in *Interner) Lookup(id TypeID) (Type, bool) {
	in.mu.RLock()
	defer in.mu.RUnlock()
	if id == NoTypeID || int(id) >= len(in.types) {
		return Type{}, false
	}
	return in.types[id], true
}

// MustLookup panics when id is invalid.
func (in *Interner) MustLookup(id TypeID) Type {
	tt, ok := in.Lookup(id)
	if !ok {
		panic("types: invalid TypeID")
	}
	return tt
}

// KindOf returns the kind of id, KindInvalid for unknown IDs.
func (in *Interner) KindOf(id TypeID) Kind {
	tt, ok := in.Lookup(id)
	if !ok {
		return KindInvalid
	}
	return tt.Kind
}

// IsBasic reports whether id is a basic type (void included).
func (in *Interner) IsBasic(id TypeID) bool {
	return in.KindOf(id).IsBasic()
}

// ClassOf returns the class symbol behind a class type.
func (in *Interner) ClassOf(id TypeID) (ClassID, bool) {
	tt, ok := in.Lookup(id)
	if !ok || tt.Kind != KindClass {
		return NoClassID, false
	}
	return tt.Class, true
}
