package config

import (
	"fmt"
	"sort"
	"strings"
)

// Validation error codes (E100-E149)
const (
	ErrEmptyDerives          = "E101" // derives override is blank
	ErrEmptyMethodKey        = "E102" // method override with an empty selector
	ErrRedundantDefinition   = "E103" // definition-skipped on a skipped class
	ErrSkippedEnumFlags      = "E104" // constant or use-value flags on a skipped enum
	ErrRedundantMethodConfig = "E105" // method overrides on a skipped class or protocol
	ErrInvalidSymbolName     = "E106" // symbol key is empty or contains whitespace
)

// ValidationError is a configuration entry that is well-formed but
// contradictory or useless.
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Code    string `json:"code"`
}

// Error implements the error interface.
func (e ValidationError) Error() string {
	return fmt.Sprintf("[%s] %s: %s", e.Code, e.Field, e.Message)
}

// Validate checks a loaded configuration.
// Returns all errors found (does not fail-fast), ordered by field.
func Validate(cfg *Config) []ValidationError {
	if cfg == nil {
		return nil
	}
	var errs []ValidationError

	for _, name := range sortedKeys(cfg.Classes) {
		errs = append(errs, validateClass("class", name, cfg.Classes[name])...)
	}
	for _, name := range sortedKeys(cfg.Protocols) {
		errs = append(errs, validateClass("protocol", name, cfg.Protocols[name])...)
	}
	for _, name := range sortedKeys(cfg.Enums) {
		errs = append(errs, validateEnum(name, cfg.Enums[name])...)
	}

	for section, names := range map[string][]string{
		"struct":  sortedKeys(cfg.Structs),
		"fn":      sortedKeys(cfg.Fns),
		"static":  sortedKeys(cfg.Statics),
		"typedef": sortedKeys(cfg.Typedefs),
	} {
		for _, name := range names {
			if err, bad := checkSymbolName(section, name); bad {
				errs = append(errs, err)
			}
		}
	}

	sortErrors(errs)
	return errs
}

func validateClass(section, name string, d ClassData) []ValidationError {
	var errs []ValidationError
	field := section + "." + name

	if err, bad := checkSymbolName(section, name); bad {
		errs = append(errs, err)
	}

	// E101: derives override must list something
	if d.Derives != nil && strings.TrimSpace(*d.Derives) == "" {
		errs = append(errs, ValidationError{
			Field:   field + ".derives",
			Message: "derives override is empty; remove it to use the default",
			Code:    ErrEmptyDerives,
		})
	}

	// E102: method keys must be non-empty
	for _, sel := range sortedKeys(d.Methods) {
		if strings.TrimSpace(sel) == "" {
			errs = append(errs, ValidationError{
				Field:   field + ".methods",
				Message: "method override has an empty selector",
				Code:    ErrEmptyMethodKey,
			})
		}
	}

	if d.Skipped {
		// E103: definition-skipped has no effect when the whole class is skipped
		if d.DefinitionSkipped {
			errs = append(errs, ValidationError{
				Field:   field + ".definition-skipped",
				Message: "redundant: " + section + " is already skipped",
				Code:    ErrRedundantDefinition,
			})
		}
		// E105: method overrides are never consulted
		if len(d.Methods) > 0 {
			errs = append(errs, ValidationError{
				Field:   field + ".methods",
				Message: fmt.Sprintf("%d method override(s) ignored: %s is skipped", len(d.Methods), section),
				Code:    ErrRedundantMethodConfig,
			})
		}
	}
	return errs
}

func validateEnum(name string, d EnumData) []ValidationError {
	var errs []ValidationError
	field := "enum." + name

	if err, bad := checkSymbolName("enum", name); bad {
		errs = append(errs, err)
	}

	// E104: constant flags are never consulted on a skipped enum
	if d.Skipped && (d.UseValue || len(d.Constants) > 0) {
		errs = append(errs, ValidationError{
			Field:   field,
			Message: "use-value and constants are ignored: enum is skipped",
			Code:    ErrSkippedEnumFlags,
		})
	}
	return errs
}

// checkSymbolName reports E106 for keys that cannot name a symbol.
func checkSymbolName(section, name string) (ValidationError, bool) {
	if name != "" && !strings.ContainsAny(name, " \t\n") {
		return ValidationError{}, false
	}
	return ValidationError{
		Field:   fmt.Sprintf("%s.%q", section, name),
		Message: "symbol name must be non-empty and contain no whitespace",
		Code:    ErrInvalidSymbolName,
	}, true
}

func sortErrors(errs []ValidationError) {
	sort.SliceStable(errs, func(i, j int) bool {
		if errs[i].Field != errs[j].Field {
			return errs[i].Field < errs[j].Field
		}
		return errs[i].Code < errs[j].Code
	})
}
