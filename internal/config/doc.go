// Package config holds the per-symbol translation configuration.
//
// A configuration is read from one or more TOML, CUE or YAML files shaped
// like:
//
//	[class.NSThread]
//	definition-skipped = true
//	methods.detachNewThreadWithBlock.skipped = true
//
//	[enum.anonymous]
//	use-value = true
//
// Lookups never fail: an unconfigured symbol yields zero-value data.
package config
