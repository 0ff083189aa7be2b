package backend

import (
	"github.com/pyjs-lang/pyjs/frontend"
)

const PREFIX = frontend.PreservedPrefix

var (
	TEMP_PREFIX   = frontend.TEMP_PREFIX
	LOOP_PREFIX   = frontend.LOOP_PREFIX
	MATCH_PREFIX  = frontend.MATCH_PREFIX
	ERROR_PREFIX  = frontend.ERROR_PREFIX
	RESULT_PREFIX = frontend.RESULT_PREFIX
)

const (
	DefaultJSXFactory  = "h"
	DefaultJSXFragment = "Fragment"
)
