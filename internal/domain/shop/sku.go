package shop

import "strings"

// CompositeSKUDelimiter joins the component SKUs of a bundle into a single
// catalog SKU string (e.g. "CUP-01|LID-01").
const CompositeSKUDelimiter = "|"

// IsCompositeSKU returns true if the SKU encodes multiple physical SKUs
func IsCompositeSKU(sku string) bool {
	return strings.Contains(sku, CompositeSKUDelimiter)
}

// SplitSKU splits a possibly composite SKU into its trimmed component SKUs.
// A simple SKU yields a single-element slice; empty components are dropped.
func SplitSKU(sku string) []string {
	parts := strings.Split(sku, CompositeSKUDelimiter)
	components := make([]string, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		components = append(components, part)
	}
	return components
}
