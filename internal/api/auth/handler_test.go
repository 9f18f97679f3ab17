package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsPasswordStrong(t *testing.T) {
	assert.True(t, isPasswordStrong("abc123"))
	assert.True(t, isPasswordStrong("Str0ngPass"))

	assert.False(t, isPasswordStrong("ab12"))   // too short
	assert.False(t, isPasswordStrong("abcdef")) // no digit
	assert.False(t, isPasswordStrong("123456")) // no letter
	assert.False(t, isPasswordStrong(""))
}

func TestIsEmailValid(t *testing.T) {
	assert.True(t, isEmailValid("artist@example.com"))
	assert.True(t, isEmailValid("a.b+c@sub.domain.org"))

	assert.False(t, isEmailValid("not-an-email"))
	assert.False(t, isEmailValid("missing@tld"))
	assert.False(t, isEmailValid("@example.com"))
	assert.False(t, isEmailValid(""))
}

func TestGenerateRegistrationToken(t *testing.T) {
	a := generateRegistrationToken()
	b := generateRegistrationToken()

	assert.Len(t, a, 64)
	assert.NotEqual(t, a, b)
}
