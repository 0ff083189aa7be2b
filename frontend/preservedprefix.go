package frontend

import (
	"fmt"
	"strings"
)

// PreservedPrefix starts every identifier the compiler invents. Source
// identifiers may not use it.
const PreservedPrefix = "__pyjs_"

var definedConsts = make(map[string]bool)

func defineConst(suffix string) string {
	for existing := range definedConsts {
		if strings.HasPrefix(suffix, existing) {
			panic(fmt.Sprintf("constant suffix %q starts with existing suffix %q", suffix, existing))
		}
		if strings.HasPrefix(existing, suffix) {
			panic(fmt.Sprintf("existing suffix %q starts with new suffix %q", existing, suffix))
		}
	}
	definedConsts[suffix] = true
	return PreservedPrefix + suffix
}

var (
	TEMP_PREFIX   = defineConst("t%d")
	LOOP_PREFIX   = defineConst("loop%d")
	MATCH_PREFIX  = defineConst("match%d")
	ERROR_PREFIX  = defineConst("err%d")
	RESULT_PREFIX = defineConst("r%d")
)
