package config

import (
	"errors"
	"io/fs"
	"path/filepath"
	"testing"

	"github.com/pelletier/go-toml/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadTOML(t *testing.T) {
	cfg, err := Load(filepath.Join("testdata", "foundation.toml"))
	require.NoError(t, err)

	thread, ok := cfg.Class("NSThread")
	require.True(t, ok)
	require.NotNil(t, thread.Derives)
	assert.Equal(t, "PartialEq, Eq, Hash", *thread.Derives)
	assert.True(t, thread.Method("detachNewThreadWithBlock:").Skipped)
	assert.True(t, thread.Method("detachNewThreadWithBlock:").Unsafe, "unsafe defaults to true")
	assert.False(t, thread.Method("setStackSize:").Unsafe)

	proxy, _ := cfg.Class("NSProxy")
	assert.True(t, proxy.DefinitionSkipped)

	skipped, _ := cfg.Class("NSAppleEventDescriptor")
	assert.True(t, skipped.Skipped)

	proto, _ := cfg.Protocol("NSPortDelegate")
	assert.True(t, proto.Skipped)

	anon, ok := cfg.Enum("")
	require.True(t, ok)
	assert.True(t, anon.UseValue)

	qos, _ := cfg.Enum("NSQualityOfService")
	assert.True(t, qos.ConstantSkipped("NSQualityOfServiceDefault"))

	s, _ := cfg.Struct("NSDecimal")
	assert.True(t, s.Skipped)
	fn, _ := cfg.Fn("NSLogv")
	assert.True(t, fn.Skipped)
	st, _ := cfg.Static("NSFoundationVersionNumber")
	assert.True(t, st.Skipped)
	td, _ := cfg.Typedef("NSZone")
	assert.True(t, td.Skipped)

	assert.Equal(t, 10, cfg.Symbols())
}

func TestLoadCUE(t *testing.T) {
	cfg, err := Load(filepath.Join("testdata", "appkit.cue"))
	require.NoError(t, err)

	view, ok := cfg.Class("NSView")
	require.True(t, ok)
	assert.True(t, view.DefinitionSkipped)
	assert.False(t, view.Method("initWithFrame:").Unsafe)

	mask, ok := cfg.Enum("NSWindowStyleMask")
	require.True(t, ok)
	assert.True(t, mask.UseValue)
}

func TestLoadYAML(t *testing.T) {
	cfg, err := Load(filepath.Join("testdata", "uikit.yaml"))
	require.NoError(t, err)

	view, ok := cfg.Class("UIView")
	require.True(t, ok)
	assert.Equal(t, "Debug", *view.Derives)
	fn, _ := cfg.Fn("UIApplicationMain")
	assert.True(t, fn.Skipped)
}

func TestLoadMergesFiles(t *testing.T) {
	cfg, err := Load(
		filepath.Join("testdata", "appkit.cue"),
		filepath.Join("testdata", "uikit.yaml"),
	)
	require.NoError(t, err)
	_, ok := cfg.Class("NSView")
	assert.True(t, ok)
	_, ok = cfg.Class("UIView")
	assert.True(t, ok)
}

func TestLoadRejectsDuplicateSymbols(t *testing.T) {
	_, err := Load(
		filepath.Join("testdata", "foundation.toml"),
		filepath.Join("testdata", "duplicate.yaml"),
	)
	require.Error(t, err)

	var le *LoadError
	require.True(t, errors.As(err, &le))
	assert.Equal(t, ErrCodeDuplicate, le.Code)
	assert.Contains(t, le.Message, "class NSThread already configured in")
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name string
		path string
		code string
	}{
		{"missing file", filepath.Join("testdata", "missing.toml"), ErrCodeRead},
		{"missing file of unknown format", filepath.Join("testdata", "foundation.ini"), ErrCodeRead},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(tt.path)
			var le *LoadError
			require.ErrorAs(t, err, &le)
			assert.Equal(t, tt.code, le.Code)
		})
	}
}

func TestLoadErrorKeepsCause(t *testing.T) {
	_, err := Load(filepath.Join("testdata", "missing.toml"))
	require.Error(t, err)
	assert.ErrorIs(t, err, fs.ErrNotExist)

	_, err = Parse("inline.toml", "toml", []byte("[class.NSFoo\n"))
	var de *toml.DecodeError
	require.ErrorAs(t, err, &de)
	var le *LoadError
	require.ErrorAs(t, err, &le)
	assert.Equal(t, ErrCodeDecode, le.Code)
	assert.Positive(t, le.Line)
}

func TestParseFormats(t *testing.T) {
	t.Run("toml unknown key", func(t *testing.T) {
		_, err := Parse("inline.toml", "toml", []byte("[class.NSFoo]\nskiped = true\n"))
		var le *LoadError
		require.ErrorAs(t, err, &le)
		assert.Equal(t, ErrCodeDecode, le.Code)
	})

	t.Run("toml syntax error has position", func(t *testing.T) {
		_, err := Parse("inline.toml", "toml", []byte("[class.NSFoo\n"))
		var le *LoadError
		require.ErrorAs(t, err, &le)
		assert.Equal(t, 1, le.Line)
	})

	t.Run("cue conflict", func(t *testing.T) {
		_, err := Parse("inline.cue", "cue", []byte("fn: NSLog: skipped: true\nfn: NSLog: skipped: false\n"))
		var le *LoadError
		require.ErrorAs(t, err, &le)
		assert.Equal(t, "inline.cue", le.Path)
		assert.Contains(t, le.Message, "conflicting values")
	})

	t.Run("cue incomplete", func(t *testing.T) {
		_, err := Parse("inline.cue", "cue", []byte("fn: NSLog: skipped: bool\n"))
		var le *LoadError
		require.ErrorAs(t, err, &le)
		assert.Equal(t, ErrCodeNotConcrete, le.Code)
	})

	t.Run("yaml empty document", func(t *testing.T) {
		cfg, err := Parse("inline.yaml", "yaml", nil)
		require.NoError(t, err)
		assert.Equal(t, 0, cfg.Symbols())
	})

	t.Run("unsupported", func(t *testing.T) {
		_, err := Parse("inline.ini", "ini", nil)
		var le *LoadError
		require.ErrorAs(t, err, &le)
		assert.Equal(t, ErrCodeFormat, le.Code)
	})
}
