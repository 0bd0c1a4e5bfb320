package diag

import "fmt"

type Code uint16

const (
	UnknownCode Code = 0

	// Семантические
	SemaInfo                  Code = 3000
	SemaClassNotFound         Code = 3001
	SemaCyclicLoad            Code = 3002
	SemaInvalidDecl           Code = 3003
	SemaCyclicHierarchy       Code = 3004
	SemaAmbiguousOverload     Code = 3005
	SemaNoApplicableMember    Code = 3006
	SemaNoSuchField           Code = 3007
	SemaTypeMismatch          Code = 3008
	SemaStaticMismatch        Code = 3009
	SemaMissingImplementation Code = 3010
	SemaFinalSuperclass       Code = 3011
	SemaDuplicateMember       Code = 3012

	// IO: declaration and metadata files
	IOLoadFileError Code = 4001

	// Проектные
	ProjInvalidManifest Code = 5001
	ProjInvalidBoxing   Code = 5002
)

var codeDescription = map[Code]string{
	UnknownCode:               "Unknown error",
	SemaInfo:                  "Semantic information",
	SemaClassNotFound:         "Class not found",
	SemaCyclicLoad:            "Cyclic superclass chain",
	SemaInvalidDecl:           "Invalid class declaration",
	SemaCyclicHierarchy:       "Cyclic interface hierarchy",
	SemaAmbiguousOverload:     "Ambiguous overload",
	SemaNoApplicableMember:    "No applicable member",
	SemaNoSuchField:           "No such field",
	SemaTypeMismatch:          "Type mismatch",
	SemaStaticMismatch:        "Static/instance member mismatch",
	SemaMissingImplementation: "Interface method not implemented",
	SemaFinalSuperclass:       "Cannot extend a final class",
	SemaDuplicateMember:       "Duplicate member declaration",
	IOLoadFileError:           "Cannot load declaration file",
	ProjInvalidManifest:       "Invalid onion.toml",
	ProjInvalidBoxing:         "Invalid boxing override",
}

func (c Code) ID() string {
	switch ic := int(c); {
	case ic >= 3000 && ic < 4000:
		return fmt.Sprintf("SEM%04d", ic)
	case ic >= 4000 && ic < 5000:
		return fmt.Sprintf("IO%04d", ic)
	case ic >= 5000 && ic < 6000:
		return fmt.Sprintf("PRJ%04d", ic)
	}
	return "E0000"
}

func (c Code) Title() string {
	desc, ok := codeDescription[c]
	if !ok {
		return codeDescription[UnknownCode]
	}
	return desc
}

func (c Code) String() string {
	return fmt.Sprintf("[%s]: %s", c.ID(), c.Title())
}
