package security

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndVerify(t *testing.T) {
	a := New()

	hash, err := a.GenerateFromPassword("correct horse")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(hash, "$argon2id$"))

	ok, err := a.VerifyPasswd("correct horse", hash)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = a.VerifyPasswd("wrong horse", hash)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestHashesAreSalted(t *testing.T) {
	a := New()

	h1, err := a.GenerateFromPassword("same")
	require.NoError(t, err)
	h2, err := a.GenerateFromPassword("same")
	require.NoError(t, err)

	assert.NotEqual(t, h1, h2)
}

func TestVerifyRejectsMalformedHash(t *testing.T) {
	a := New()

	_, err := a.VerifyPasswd("x", "not-a-phc-string")
	assert.Error(t, err)

	_, err = a.VerifyPasswd("x", "$argon2id$v=19$bad$parts$here$extra$way")
	assert.Error(t, err)
}
