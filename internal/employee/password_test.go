package employee

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTempPassword_ShapeAndAlphabet(t *testing.T) {
	got, err := tempPassword()
	require.NoError(t, err)
	assert.Len(t, got, tempPasswordLength)
	for _, r := range got {
		assert.True(t, strings.ContainsRune(tempPasswordAlphabet, r),
			"caractere fora do alfabeto: %q", r)
	}

	// Sem caracteres que se confundem ao ditar a senha.
	for _, r := range "0O1lI" {
		assert.NotContains(t, got, string(r))
	}
}

func TestTempPassword_VariesBetweenCalls(t *testing.T) {
	a, err := tempPassword()
	require.NoError(t, err)
	b, err := tempPassword()
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
}
