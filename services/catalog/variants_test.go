package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/MarcGrol/storefront/services/storefront/storefrontclient"
)

func variant(id string, options ...string) storefrontclient.VariantEdge {
	v := storefrontclient.Variant{ID: id}
	for i := 0; i+1 < len(options); i += 2 {
		v.SelectedOptions = append(v.SelectedOptions, storefrontclient.SelectedOption{Name: options[i], Value: options[i+1]})
	}
	return storefrontclient.VariantEdge{Node: v}
}

func TestFindVariant(t *testing.T) {
	product := storefrontclient.Product{
		Handle: "shirt",
		Variants: storefrontclient.VariantConnection{
			Edges: []storefrontclient.VariantEdge{
				variant("s-blue", "Size", "S", "Color", "Blue"),
				variant("m-blue", "Size", "M", "Color", "Blue"),
				variant("m-red", "Size", "M", "Color", "Red"),
			},
		},
	}

	testCases := []struct {
		name    string
		options map[string]string
		found   bool
		want    string
	}{
		{name: "all options match", options: map[string]string{"Size": "M", "Color": "Red"}, found: true, want: "m-red"},
		{name: "first of several partial matches", options: map[string]string{"Size": "M"}, found: true, want: "m-blue"},
		{name: "no options selects first", options: map[string]string{}, found: true, want: "s-blue"},
		{name: "unknown value", options: map[string]string{"Size": "XL"}, found: false},
		{name: "unknown option", options: map[string]string{"Material": "Wool"}, found: false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, found := findVariant(product, tc.options)
			assert.Equal(t, tc.found, found)
			assert.Equal(t, tc.want, got.ID)
		})
	}
}
