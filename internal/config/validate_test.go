package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateClean(t *testing.T) {
	cfg := New()
	cfg.Classes["NSThread"] = ClassData{DefinitionSkipped: true}
	cfg.Enums["NSFoo"] = EnumData{UseValue: true}
	assert.Empty(t, Validate(cfg))
	assert.Empty(t, Validate(nil))
}

func TestValidateRules(t *testing.T) {
	blank := "  "
	tests := []struct {
		name  string
		cfg   func(*Config)
		code  string
		field string
	}{
		{
			name:  "empty derives",
			cfg:   func(c *Config) { c.Classes["NSThread"] = ClassData{Derives: &blank} },
			code:  ErrEmptyDerives,
			field: "class.NSThread.derives",
		},
		{
			name: "empty method key",
			cfg: func(c *Config) {
				c.Protocols["NSCopying"] = ClassData{Methods: map[string]MethodData{"": DefaultMethodData}}
			},
			code:  ErrEmptyMethodKey,
			field: "protocol.NSCopying.methods",
		},
		{
			name:  "redundant definition-skipped",
			cfg:   func(c *Config) { c.Classes["NSProxy"] = ClassData{Skipped: true, DefinitionSkipped: true} },
			code:  ErrRedundantDefinition,
			field: "class.NSProxy.definition-skipped",
		},
		{
			name:  "flags on skipped enum",
			cfg:   func(c *Config) { c.Enums["NSFoo"] = EnumData{Skipped: true, UseValue: true} },
			code:  ErrSkippedEnumFlags,
			field: "enum.NSFoo",
		},
		{
			name: "methods on skipped class",
			cfg: func(c *Config) {
				c.Classes["NSPort"] = ClassData{Skipped: true, Methods: map[string]MethodData{"init": {}}}
			},
			code:  ErrRedundantMethodConfig,
			field: "class.NSPort.methods",
		},
		{
			name:  "whitespace in symbol",
			cfg:   func(c *Config) { c.Fns["NS Log"] = FnData{Skipped: true} },
			code:  ErrInvalidSymbolName,
			field: `fn."NS Log"`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := New()
			tt.cfg(cfg)

			errs := Validate(cfg)
			require.Len(t, errs, 1)
			assert.Equal(t, tt.code, errs[0].Code)
			assert.Equal(t, tt.field, errs[0].Field)
			assert.Contains(t, errs[0].Error(), "["+tt.code+"]")
		})
	}
}

func TestValidateCollectsAllSorted(t *testing.T) {
	blank := ""
	cfg := New()
	cfg.Classes["B"] = ClassData{Derives: &blank}
	cfg.Classes["A"] = ClassData{Skipped: true, DefinitionSkipped: true}
	cfg.Enums["E"] = EnumData{Skipped: true, Constants: map[string]ConstantData{"X": {}}}

	errs := Validate(cfg)
	require.Len(t, errs, 3)
	assert.Equal(t, "class.A.definition-skipped", errs[0].Field)
	assert.Equal(t, "class.B.derives", errs[1].Field)
	assert.Equal(t, "enum.E", errs[2].Field)
}
