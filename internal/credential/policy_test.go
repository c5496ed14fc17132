package credential

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPasswordComplexity(t *testing.T) {
	rule := DefaultPolicy().Password

	valid := []string{"password!1", "Abcdefg1@", "12345678a$", "a1&a1&a1&", strings.Repeat("a", MaxPasswordBytes-2) + "1!"}
	for _, p := range valid {
		assert.True(t, rule(p), p)
	}

	invalid := []string{
		"",
		"pass!1",       // too short
		"password1",    // no symbol
		"password!",    // no digit
		"12345678!",    // no letter
		"password!1 ",  // space outside the allowed set
		"pässword!1",   // non-ascii letter
		"password^1aa", // symbol outside the set
		strings.Repeat("a", MaxPasswordBytes-2) + "1!!", // longer than bcrypt accepts
	}
	for _, p := range invalid {
		assert.False(t, rule(p), p)
	}
}

func TestEmailShape(t *testing.T) {
	rule := DefaultPolicy().Email

	assert.True(t, rule("admin@admin.com"))
	assert.True(t, rule("a.b@c.co.uk"))
	assert.False(t, rule("admin.admin.com"))
	assert.False(t, rule("admin@admin"))
	assert.False(t, rule("ad min@admin.com"))
}

func TestNewPolicyOverrides(t *testing.T) {
	p, err := NewPolicy(`^[a-z]+@example\.org$`, "-", 4)
	require.NoError(t, err)

	assert.True(t, p.Email("bob@example.org"))
	assert.False(t, p.Email("bob@example.com"))
	assert.True(t, p.Password("a-1b"))
	assert.False(t, p.Password("a!1b"))
}

func TestNewPolicyRejectsBadPattern(t *testing.T) {
	_, err := NewPolicy("([", "", 0)
	require.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "invalid email pattern"))
}
