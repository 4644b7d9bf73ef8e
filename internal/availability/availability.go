// Package availability normalizes platform availability reported by the
// frontend into ir.Availability.
package availability

import (
	"fmt"
	"sort"
	"strings"

	"github.com/Masterminds/semver/v3"
	"github.com/cockroachdb/errors"

	"github.com/roach88/headergen/internal/ast"
	"github.com/roach88/headergen/internal/ir"
)

// Platforms in rendering order.
var platformOrder = []string{"macos", "ios", "maccatalyst", "tvos", "watchos"}

var aliases = map[string]string{
	"macos":       "macos",
	"macosx":      "macos",
	"ios":         "ios",
	"maccatalyst": "maccatalyst",
	"tvos":        "tvos",
	"watchos":     "watchos",
}

// ignored platforms carry no information for bindings.
var ignored = map[string]bool{
	"swift":                     true,
	"ios_app_extension":         true,
	"macos_app_extension":       true,
	"maccatalyst_app_extension": true,
	"tvos_app_extension":        true,
	"watchos_app_extension":     true,
	"driverkit":                 true,
}

// Parse converts raw availability into normalized, sorted availability.
// Invalid versions, unknown and duplicate platforms are errors.
func Parse(raw []ast.PlatformAvailability) (ir.Availability, error) {
	seen := map[string]bool{}
	var out []ir.PlatformVersion

	for _, p := range raw {
		key := strings.ToLower(p.Platform)
		if ignored[key] {
			continue
		}
		platform, ok := aliases[key]
		if !ok {
			return ir.Availability{}, errors.Newf("unknown platform %q", p.Platform)
		}
		if seen[platform] {
			return ir.Availability{}, errors.Newf("duplicate availability for %s", platform)
		}
		seen[platform] = true

		pv := ir.PlatformVersion{Platform: platform, Unavailable: p.Unavailable}
		var err error
		if pv.Introduced, err = Version(p.Introduced); err != nil {
			return ir.Availability{}, errors.Wrapf(err, "%s introduced", platform)
		}
		if pv.Deprecated, err = Version(p.Deprecated); err != nil {
			return ir.Availability{}, errors.Wrapf(err, "%s deprecated", platform)
		}
		if pv.Obsoleted, err = Version(p.Obsoleted); err != nil {
			return ir.Availability{}, errors.Wrapf(err, "%s obsoleted", platform)
		}
		out = append(out, pv)
	}

	sort.SliceStable(out, func(i, j int) bool {
		return rank(out[i].Platform) < rank(out[j].Platform)
	})
	return ir.Availability{Platforms: out}, nil
}

// Version normalizes a version string to "major.minor", or
// "major.minor.patch" when the patch is non-zero. Empty stays empty.
func Version(v string) (string, error) {
	v = strings.TrimSpace(v)
	if v == "" {
		return "", nil
	}
	sv, err := semver.NewVersion(v)
	if err != nil {
		return "", errors.Wrapf(err, "invalid version %q", v)
	}
	if sv.Prerelease() != "" || sv.Metadata() != "" {
		return "", errors.Newf("invalid version %q: platform versions are numeric", v)
	}
	if sv.Patch() != 0 {
		return fmt.Sprintf("%d.%d.%d", sv.Major(), sv.Minor(), sv.Patch()), nil
	}
	return fmt.Sprintf("%d.%d", sv.Major(), sv.Minor()), nil
}

func rank(platform string) int {
	for i, p := range platformOrder {
		if p == platform {
			return i
		}
	}
	return len(platformOrder)
}
