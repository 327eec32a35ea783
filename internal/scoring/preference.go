package scoring

import "carpool/internal/domain"

// PreferencesCompatible reports whether two preference tags can share a ride:
// either side is the wildcard, or both tags are identical.
func PreferencesCompatible(a, b domain.Preference) bool {
	return a == domain.PreferenceAny || b == domain.PreferenceAny || a == b
}
