package parser

import "strings"

type Flags uint16

const (
	// FlagParamAnnotations allows `name: type` in a parameter list; lambda
	// parameters end at the colon instead.
	FlagParamAnnotations Flags = 1 << iota
	// FlagParamStars allows `*args`, `**kwargs` and the bare `*` marker.
	FlagParamStars
)

// Has reports whether f includes all bits in mask.
func (f Flags) Has(mask Flags) bool {
	return f&mask == mask
}

func (f Flags) String() string {
	if f == 0 {
		return "0"
	}
	var parts []string
	if f.Has(FlagParamAnnotations) {
		parts = append(parts, "ParamAnnotations")
	}
	if f.Has(FlagParamStars) {
		parts = append(parts, "ParamStars")
	}
	return strings.Join(parts, "|")
}
