// SPDX-License-Identifier: MIT
package handle_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/katalvlaran/hiercluster/handle"
)

func TestParse(t *testing.T) {
	cases := []struct {
		in   string
		name string
		kind handle.Kind
	}{
		{"=proj/src<com.acme{Shop.java[Shop~total~QString;~I", "total", handle.Method},
		{"=proj/src<com.acme{Shop.java[Shop~run", "run", handle.Method},
		{"=proj/src<com.acme{Shop.java[Shop~run!2", "run", handle.Method},
		{"=proj/src<com.acme{Shop.java[Shop^count", "count", handle.Field},
		{"=proj/src<com.acme{Shop.java[Shop|1", "initializer", handle.Initializer},
		{"=proj/src<com.acme{Shop.java[Shop[Cart", "Cart", handle.Type},
		{"=proj/src<com.acme{Shop.java[Shop", "Shop", handle.Type},
		{"=proj/src<{A.java[A~my\\~odd", "my~odd", handle.Method},
		{"getName", "getName", handle.Plain},
		{"", "", handle.Plain},
	}
	for _, tc := range cases {
		name, kind := handle.Parse(tc.in)
		assert.Equal(t, tc.name, name, tc.in)
		assert.Equal(t, tc.kind, kind, tc.in)
		assert.Equal(t, tc.name, handle.Name(tc.in), tc.in)
	}
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "method", handle.Method.String())
	assert.Equal(t, "plain", handle.Plain.String())
	assert.Equal(t, "initializer", handle.Initializer.String())
}
