package validators

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsEmailDomainValidRejectsGarbage(t *testing.T) {
	assert.False(t, IsEmailDomainValid("no-at-sign"))
	assert.False(t, IsEmailDomainValid(""))
	assert.False(t, IsEmailDomainValid("user@"))
	assert.False(t, IsEmailDomainValid("user@domain-that-does-not-exist.invalid"))
}

func TestIsOptionalEmailDomainValid(t *testing.T) {
	// A venue without a contact email is fine.
	assert.True(t, IsOptionalEmailDomainValid(""))

	assert.False(t, IsOptionalEmailDomainValid("no-at-sign"))
	assert.False(t, IsOptionalEmailDomainValid("info@domain-that-does-not-exist.invalid"))
}
