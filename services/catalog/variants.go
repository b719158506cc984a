package catalog

import "github.com/MarcGrol/storefront/services/storefront/storefrontclient"

// findVariant returns the first variant that has all selected options.
func findVariant(product storefrontclient.Product, selectedOptions map[string]string) (storefrontclient.Variant, bool) {
	for _, e := range product.Variants.Edges {
		if hasOptions(e.Node, selectedOptions) {
			return e.Node, true
		}
	}
	return storefrontclient.Variant{}, false
}

func hasOptions(variant storefrontclient.Variant, selectedOptions map[string]string) bool {
	for name, value := range selectedOptions {
		found := false
		for _, o := range variant.SelectedOptions {
			if o.Name == name && o.Value == value {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}
