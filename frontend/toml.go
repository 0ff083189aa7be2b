package frontend

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/go-playground/validator/v10"
	"github.com/xyproto/env/v2"
)

// ConfigFile is the name of the project file at the root of every project.
const ConfigFile = "pyjs.toml"

type PyjsToml struct {
	Name            string   `toml:"name" validate:"required"`
	Version         string   `toml:"version" validate:"required"`
	Src             string   `toml:"src" validate:"required"`
	Out             string   `toml:"out" validate:"required"`
	Runtime         string   `toml:"runtime" validate:"required"`
	JSXFactory      string   `toml:"jsx_factory" validate:"required"`
	JSXFragment     string   `toml:"jsx_fragment" validate:"required"`
	JSXImportSource string   `toml:"jsx_import_source"`
	ImportExtension string   `toml:"import_extension" validate:"omitempty,startswith=."`
	TabWidth        int      `toml:"tab_width" validate:"min=1,max=16"`
	Jobs            int      `toml:"jobs" validate:"min=0"`
	Globals         []string `toml:"globals" validate:"dive,required"`
	Defines         []string `toml:"defines" validate:"dive,required"`

	// Debug turns on verbose logging. It only comes from PYJS_DEBUG.
	Debug bool `toml:"-"`
}

// DefaultToml is the configuration a project file starts from; keys the
// file leaves out keep these values.
func DefaultToml() PyjsToml {
	return PyjsToml{
		Src:             "src",
		Out:             "out",
		Runtime:         "@pyjs/runtime",
		JSXFactory:      "h",
		JSXFragment:     "Fragment",
		ImportExtension: ".js",
		TabWidth:        4,
	}
}

// StandaloneToml configures files compiled outside any project: the
// defaults plus the environment overrides.
func StandaloneToml() PyjsToml {
	pt := DefaultToml()
	pt.applyEnv()
	return pt
}

func HandlePyjsToml(tomlContent string) (PyjsToml, error) {
	pt := DefaultToml()
	md, err := toml.Decode(tomlContent, &pt)
	if err != nil {
		return pt, err
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return pt, fmt.Errorf("unknown key %q", undecoded[0].String())
	}
	pt.applyEnv()
	validate := validator.New()
	if err := validate.Struct(pt); err != nil {
		return pt, err
	}
	return pt, nil
}

// ReadPyjsToml loads the project file of the project rooted at dir.
func ReadPyjsToml(dir string) (PyjsToml, error) {
	path := filepath.Join(dir, ConfigFile)
	content, err := os.ReadFile(path)
	if err != nil {
		return PyjsToml{}, err
	}
	pt, err := HandlePyjsToml(string(content))
	if err != nil {
		return pt, fmt.Errorf("%s: %w", path, err)
	}
	return pt, nil
}

// applyEnv overrides build settings from PYJS_* variables.
func (pt *PyjsToml) applyEnv() {
	// the variables may have changed since env first cached them
	env.Load()
	pt.Runtime = env.Str("PYJS_RUNTIME", pt.Runtime)
	pt.JSXFactory = env.Str("PYJS_JSX_FACTORY", pt.JSXFactory)
	pt.Out = env.Str("PYJS_OUT", pt.Out)
	pt.Jobs = env.Int("PYJS_JOBS", pt.Jobs)
	pt.Debug = env.Bool("PYJS_DEBUG")
}
