package security

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestArgonRoundTrip(t *testing.T) {
	a := New()

	encoded, err := a.GenerateFromPassword("correct horse battery staple")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(encoded, "$argon2id$"))

	ok, err := a.VerifyPasswd("correct horse battery staple", encoded)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = a.VerifyPasswd("wrong password", encoded)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestArgonUniqueSalts(t *testing.T) {
	a := New()

	one, err := a.GenerateFromPassword("same password")
	require.NoError(t, err)
	two, err := a.GenerateFromPassword("same password")
	require.NoError(t, err)

	assert.NotEqual(t, one, two)
}

func TestArgonMalformedHash(t *testing.T) {
	a := New()

	_, err := a.VerifyPasswd("anything", "not a phc string")
	assert.Error(t, err)
}
