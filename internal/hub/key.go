package hub

import "strings"

const (
	keySeparator = "|"
	keyWildcard  = "*"
)

// defaultVendorAliases maps alternate brand names onto canonical vendor
// ids. Config.VendorAliases entries are merged over this set.
var defaultVendorAliases = map[string]string{
	"google": "gemini",
}

func normalizeToken(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// normalizeVendor canonicalizes a vendor name for key derivation and
// filtering. Empty input stays empty and means "unspecified".
func (h *Hub) normalizeVendor(vendor string) string {
	v := normalizeToken(vendor)
	if canonical, ok := h.aliases[v]; ok {
		return canonical
	}
	return v
}

// storedKey derives the composite snapshot key for a (vendor, node, task)
// tuple. Missing components become wildcards so partially-specified tuples
// stay well-formed and distinct from each other.
func (h *Hub) storedKey(vendor, nodeID, taskID string) string {
	parts := [3]string{
		h.normalizeVendor(vendor),
		strings.TrimSpace(nodeID),
		strings.TrimSpace(taskID),
	}
	for i, p := range parts {
		if p == "" {
			parts[i] = keyWildcard
		}
	}
	return strings.Join(parts[:], keySeparator)
}
