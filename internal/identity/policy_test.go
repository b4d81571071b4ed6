package identity_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"feria/internal/identity"
)

func TestParsePolicy(t *testing.T) {
	cases := []struct {
		in   string
		want identity.Policy
	}{
		{"strict", identity.PolicyStrict},
		{"auto", identity.PolicyAutoProvision},
		{"auto-provision", identity.PolicyAutoProvision},
	}
	for _, tc := range cases {
		got, err := identity.ParsePolicy(tc.in)
		require.NoError(t, err, tc.in)
		assert.Equal(t, tc.want, got, tc.in)
	}

	_, err := identity.ParsePolicy("lenient")
	assert.Error(t, err)
}

func TestPolicyString(t *testing.T) {
	assert.Equal(t, "strict", identity.PolicyStrict.String())
	assert.Equal(t, "auto", identity.PolicyAutoProvision.String())
}
