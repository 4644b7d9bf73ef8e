package config

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	cueerrors "cuelang.org/go/cue/errors"
	"github.com/cockroachdb/errors"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Load error codes (E150-E159)
const (
	ErrCodeRead        = "E150" // file could not be read
	ErrCodeFormat      = "E151" // unsupported file extension
	ErrCodeDecode      = "E152" // malformed file
	ErrCodeDuplicate   = "E153" // symbol configured in two files
	ErrCodeNotConcrete = "E154" // CUE value is not concrete
)

// LoadError is a configuration file that could not be loaded. Err is the
// underlying read or decode failure, if any.
type LoadError struct {
	Path    string
	Code    string
	Message string
	Line    int
	Column  int
	Err     error
}

func (e *LoadError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("%s:%d:%d: %s: %s", e.Path, e.Line, e.Column, e.Code, e.Message)
	}
	return fmt.Sprintf("%s: %s: %s", e.Path, e.Code, e.Message)
}

func (e *LoadError) Unwrap() error { return e.Err }

type methodFile struct {
	Skipped bool  `toml:"skipped" json:"skipped,omitempty" yaml:"skipped"`
	Unsafe  *bool `toml:"unsafe" json:"unsafe,omitempty" yaml:"unsafe"`
}

type classFile struct {
	Skipped           bool                  `toml:"skipped" json:"skipped,omitempty" yaml:"skipped"`
	DefinitionSkipped bool                  `toml:"definition-skipped" json:"definition-skipped,omitempty" yaml:"definition-skipped"`
	Derives           *string               `toml:"derives" json:"derives,omitempty" yaml:"derives"`
	Methods           map[string]methodFile `toml:"methods" json:"methods,omitempty" yaml:"methods"`
}

type skipFile struct {
	Skipped bool `toml:"skipped" json:"skipped,omitempty" yaml:"skipped"`
}

type enumFile struct {
	Skipped   bool                `toml:"skipped" json:"skipped,omitempty" yaml:"skipped"`
	UseValue  bool                `toml:"use-value" json:"use-value,omitempty" yaml:"use-value"`
	Constants map[string]skipFile `toml:"constants" json:"constants,omitempty" yaml:"constants"`
}

// file is the on-disk shape shared by every format.
type file struct {
	Class    map[string]classFile `toml:"class" json:"class,omitempty" yaml:"class"`
	Protocol map[string]classFile `toml:"protocol" json:"protocol,omitempty" yaml:"protocol"`
	Struct   map[string]skipFile  `toml:"struct" json:"struct,omitempty" yaml:"struct"`
	Enum     map[string]enumFile  `toml:"enum" json:"enum,omitempty" yaml:"enum"`
	Fn       map[string]skipFile  `toml:"fn" json:"fn,omitempty" yaml:"fn"`
	Static   map[string]skipFile  `toml:"static" json:"static,omitempty" yaml:"static"`
	Typedef  map[string]skipFile  `toml:"typedef" json:"typedef,omitempty" yaml:"typedef"`
}

// Load reads and merges configuration files in order. A symbol configured in
// more than one file is an error. Load with no paths returns an empty config.
func Load(paths ...string) (*Config, error) {
	cfg := New()
	origin := map[string]string{}

	for _, path := range paths {
		f, err := loadFile(path)
		if err != nil {
			return nil, err
		}
		if err := merge(cfg, f, path, origin); err != nil {
			return nil, err
		}
	}
	return cfg, nil
}

// loadFile decodes one file, choosing the format by extension.
func loadFile(path string) (*file, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &LoadError{Path: path, Code: ErrCodeRead, Message: err.Error(), Err: err}
	}

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".toml":
		return decodeTOML(path, data)
	case ".cue":
		return decodeCUE(path, data)
	case ".yaml", ".yml":
		return decodeYAML(path, data)
	default:
		return nil, &LoadError{
			Path:    path,
			Code:    ErrCodeFormat,
			Message: fmt.Sprintf("unsupported config format %q (want .toml, .cue, .yaml)", ext),
		}
	}
}

// Parse decodes configuration text in the given format ("toml", "cue" or
// "yaml"). The name is only used in error messages.
func Parse(name, format string, data []byte) (*Config, error) {
	var (
		f   *file
		err error
	)
	switch format {
	case "toml":
		f, err = decodeTOML(name, data)
	case "cue":
		f, err = decodeCUE(name, data)
	case "yaml":
		f, err = decodeYAML(name, data)
	default:
		return nil, &LoadError{Path: name, Code: ErrCodeFormat, Message: fmt.Sprintf("unsupported config format %q", format)}
	}
	if err != nil {
		return nil, err
	}
	cfg := New()
	if err := merge(cfg, f, name, map[string]string{}); err != nil {
		return nil, err
	}
	return cfg, nil
}

func decodeTOML(path string, data []byte) (*file, error) {
	var f file
	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&f); err != nil {
		le := &LoadError{Path: path, Code: ErrCodeDecode, Message: err.Error(), Err: err}
		var de *toml.DecodeError
		if errors.As(err, &de) {
			le.Line, le.Column = de.Position()
		}
		return nil, le
	}
	return &f, nil
}

func decodeCUE(path string, data []byte) (*file, error) {
	ctx := cuecontext.New()
	v := ctx.CompileBytes(data, cue.Filename(path))
	if err := v.Err(); err != nil {
		return nil, cueLoadError(path, ErrCodeDecode, err)
	}
	if err := v.Validate(cue.Concrete(true)); err != nil {
		return nil, cueLoadError(path, ErrCodeNotConcrete, err)
	}
	var f file
	if err := v.Decode(&f); err != nil {
		return nil, cueLoadError(path, ErrCodeDecode, err)
	}
	return &f, nil
}

// cueLoadError extracts the position of the first CUE error.
func cueLoadError(path, code string, err error) error {
	le := &LoadError{Path: path, Code: code, Message: err.Error(), Err: err}
	errs := cueerrors.Errors(err)
	if len(errs) == 0 {
		return le
	}
	le.Message = errs[0].Error()
	if positions := cueerrors.Positions(errs[0]); len(positions) > 0 && positions[0].IsValid() {
		le.Line = positions[0].Line()
		le.Column = positions[0].Column()
	}
	return le
}

func decodeYAML(path string, data []byte) (*file, error) {
	var f file
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil {
		// An empty document is an empty configuration.
		if errors.Is(err, io.EOF) {
			return &f, nil
		}
		return nil, &LoadError{Path: path, Code: ErrCodeDecode, Message: err.Error(), Err: err}
	}
	return &f, nil
}

func merge(cfg *Config, f *file, path string, origin map[string]string) error {
	claim := func(section, name string) error {
		key := section + "." + name
		if prev, ok := origin[key]; ok {
			return &LoadError{
				Path:    path,
				Code:    ErrCodeDuplicate,
				Message: fmt.Sprintf("%s %s already configured in %s", section, name, prev),
			}
		}
		origin[key] = path
		return nil
	}

	for _, name := range sortedKeys(f.Class) {
		if err := claim("class", name); err != nil {
			return err
		}
		cfg.Classes[name] = f.Class[name].data()
	}
	for _, name := range sortedKeys(f.Protocol) {
		if err := claim("protocol", name); err != nil {
			return err
		}
		cfg.Protocols[name] = f.Protocol[name].data()
	}
	for _, name := range sortedKeys(f.Struct) {
		if err := claim("struct", name); err != nil {
			return err
		}
		cfg.Structs[name] = StructData{Skipped: f.Struct[name].Skipped}
	}
	for _, name := range sortedKeys(f.Enum) {
		if err := claim("enum", name); err != nil {
			return err
		}
		cfg.Enums[name] = f.Enum[name].data()
	}
	for _, name := range sortedKeys(f.Fn) {
		if err := claim("fn", name); err != nil {
			return err
		}
		cfg.Fns[name] = FnData{Skipped: f.Fn[name].Skipped}
	}
	for _, name := range sortedKeys(f.Static) {
		if err := claim("static", name); err != nil {
			return err
		}
		cfg.Statics[name] = StaticData{Skipped: f.Static[name].Skipped}
	}
	for _, name := range sortedKeys(f.Typedef) {
		if err := claim("typedef", name); err != nil {
			return err
		}
		cfg.Typedefs[name] = TypedefData{Skipped: f.Typedef[name].Skipped}
	}
	return nil
}

func (c classFile) data() ClassData {
	d := ClassData{
		Skipped:           c.Skipped,
		DefinitionSkipped: c.DefinitionSkipped,
		Derives:           c.Derives,
	}
	if len(c.Methods) > 0 {
		d.Methods = make(map[string]MethodData, len(c.Methods))
		for sel, m := range c.Methods {
			md := DefaultMethodData
			md.Skipped = m.Skipped
			if m.Unsafe != nil {
				md.Unsafe = *m.Unsafe
			}
			d.Methods[sel] = md
		}
	}
	return d
}

func (e enumFile) data() EnumData {
	d := EnumData{Skipped: e.Skipped, UseValue: e.UseValue}
	if len(e.Constants) > 0 {
		d.Constants = make(map[string]ConstantData, len(e.Constants))
		for name, c := range e.Constants {
			d.Constants[name] = ConstantData{Skipped: c.Skipped}
		}
	}
	return d
}

// sortedKeys keeps duplicate reporting deterministic.
func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
