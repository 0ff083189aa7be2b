package frontend

import (
	"maps"
	"slices"
)

// RuntimeModule is the import specifier of the runtime helper library.
const RuntimeModule = "@pyjs/runtime"

// builtins maps each language builtin to the runtime export that serves it.
var builtins = map[string]string{
	"print":      "print",
	"len":        "len",
	"range":      "range",
	"enumerate":  "enumerate",
	"zip":        "zip",
	"str":        "str",
	"int":        "int",
	"float":      "float",
	"bool":       "bool",
	"list":       "list",
	"dict":       "dict",
	"set":        "set",
	"tuple":      "tuple",
	"sorted":     "sorted",
	"reversed":   "reversed",
	"sum":        "sum",
	"min":        "min",
	"max":        "max",
	"abs":        "abs",
	"any":        "any",
	"all":        "all",
	"map":        "map",
	"filter":     "filter",
	"isinstance": "isinstance",
	"hasattr":    "hasattr",
	"getattr":    "getattr",
	"setattr":    "setattr",
	"repr":       "repr",
	"ascii":      "ascii",
	"round":      "round",
	"chr":        "chr",
	"ord":        "ord",
	"hex":        "hex",
	"bin":        "bin",
	"oct":        "oct",
	"input":      "input",
	"open":       "open",
	"iter":       "iter",
	"next":       "next",
	"type":       "typeOf",
	"callable":   "callable",
	"divmod":     "divmod",
	"pow":        "pow",
	"format":     "format",
	"id":         "id",
	"hash":       "hash",
	"slice":      "sliceOf",

	// method decorators, consumed by class lowering
	"staticmethod": "staticmethod",
	"classmethod":  "classmethod",
	"property":     "property",

	"Exception":           "Exception",
	"ValueError":          "ValueError",
	"KeyError":            "KeyError",
	"IndexError":          "IndexError",
	"RuntimeError":        "RuntimeError",
	"NotImplementedError": "NotImplementedError",
	"AttributeError":      "AttributeError",
	"ZeroDivisionError":   "ZeroDivisionError",
	"StopIteration":       "StopIteration",
	"AssertionError":      "AssertionError",
}

// hostGlobals are JavaScript globals a program may reference without
// binding them.
var hostGlobals = map[string]bool{
	"console":            true,
	"Math":               true,
	"JSON":               true,
	"Object":             true,
	"Array":              true,
	"String":             true,
	"Number":             true,
	"Boolean":            true,
	"Symbol":             true,
	"BigInt":             true,
	"Promise":            true,
	"Map":                true,
	"Set":                true,
	"WeakMap":            true,
	"WeakSet":            true,
	"Date":               true,
	"RegExp":             true,
	"Error":              true,
	"TypeError":          true,
	"RangeError":         true,
	"SyntaxError":        true,
	"Reflect":            true,
	"Proxy":              true,
	"Intl":               true,
	"globalThis":         true,
	"window":             true,
	"document":           true,
	"navigator":          true,
	"localStorage":       true,
	"process":            true,
	"setTimeout":         true,
	"clearTimeout":       true,
	"setInterval":        true,
	"clearInterval":      true,
	"queueMicrotask":     true,
	"structuredClone":    true,
	"fetch":              true,
	"URL":                true,
	"URLSearchParams":    true,
	"TextEncoder":        true,
	"TextDecoder":        true,
	"Uint8Array":         true,
	"ArrayBuffer":        true,
	"parseInt":           true,
	"parseFloat":         true,
	"isNaN":              true,
	"isFinite":           true,
	"NaN":                true,
	"Infinity":           true,
	"undefined":          true,
	"encodeURIComponent": true,
	"decodeURIComponent": true,
}

// constructors are host globals that must be called with `new`.
var constructors = map[string]bool{
	"Map":             true,
	"Set":             true,
	"WeakMap":         true,
	"WeakSet":         true,
	"Date":            true,
	"RegExp":          true,
	"Error":           true,
	"TypeError":       true,
	"RangeError":      true,
	"SyntaxError":     true,
	"Promise":         true,
	"Proxy":           true,
	"URL":             true,
	"URLSearchParams": true,
	"TextEncoder":     true,
	"TextDecoder":     true,
	"Uint8Array":      true,
	"ArrayBuffer":     true,
}

// BuiltinNames lists the builtins in sorted order.
func BuiltinNames() []string {
	return slices.Sorted(maps.Keys(builtins))
}

func IsBuiltin(name string) bool {
	_, ok := builtins[name]
	return ok
}

// BuiltinExport returns the runtime export serving the builtin name.
func BuiltinExport(name string) (string, bool) {
	export, ok := builtins[name]
	return export, ok
}

func IsHostGlobal(name string) bool {
	return hostGlobals[name]
}

// IsHostConstructor reports whether name is a JavaScript class that needs
// `new` when called.
func IsHostConstructor(name string) bool {
	return constructors[name]
}

// IsBuiltinClass reports whether the builtin name is an exception class
// exported by the runtime.
func IsBuiltinClass(name string) bool {
	switch name {
	case "Exception", "ValueError", "KeyError", "IndexError", "RuntimeError", "NotImplementedError",
		"AttributeError", "ZeroDivisionError", "StopIteration", "AssertionError":
		return true
	}
	return false
}
