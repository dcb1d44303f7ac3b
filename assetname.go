package hdsprite

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// baseTargetMarker identifies player-base sprite sheets, the only targets
// that accept wholesale replacement.
const baseTargetMarker = "farmer_"

// NormalizeAssetName converts backslashes to forward slashes and removes
// empty path segments. Case is preserved.
func NormalizeAssetName(name string) string {
	name = strings.ReplaceAll(name, `\`, "/")
	if !strings.Contains(name, "//") && !strings.HasPrefix(name, "/") && !strings.HasSuffix(name, "/") {
		return name
	}
	parts := strings.Split(name, "/")
	kept := parts[:0]
	for _, p := range parts {
		if p != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, "/")
}

// BaseName returns the normalized asset name without a trailing locale
// suffix, so "Characters/Abigail.fr-FR" becomes "Characters/Abigail".
func BaseName(name string) string {
	name = NormalizeAssetName(name)
	dot := strings.LastIndexByte(name, '.')
	if dot < 0 || dot < strings.LastIndexByte(name, '/') {
		return name
	}
	suffix := name[dot+1:]
	// Only region-qualified tags count; bare "png" parses as a language too.
	if !strings.Contains(suffix, "-") {
		return name
	}
	if _, err := language.Parse(suffix); err != nil {
		return name
	}
	return name[:dot]
}

// assetKey is the comparison key for asset names: base name, case-folded.
// A fresh Caser is used per call; Casers are not safe for concurrent use.
func assetKey(name string) string {
	return cases.Fold().String(BaseName(name))
}

// Equivalent reports whether two asset names refer to the same asset,
// ignoring separator style, case and locale suffix.
func Equivalent(a, b string) bool {
	return assetKey(a) == assetKey(b)
}

// isBaseTarget reports whether key (an assetKey) names a player-base sheet.
func isBaseTarget(key string) bool {
	leaf := key
	if i := strings.LastIndexByte(key, '/'); i >= 0 {
		leaf = key[i+1:]
	}
	return strings.Contains(leaf, baseTargetMarker)
}
