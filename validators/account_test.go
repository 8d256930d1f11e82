package validators

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNameValidator(t *testing.T) {
	assert.NoError(t, NameValidator("alice"))
	assert.ErrorIs(t, NameValidator(""), ErrNameEmpty)
	assert.ErrorIs(t, NameValidator(strings.Repeat("a", 65)), ErrNameTooLong)
}

func TestPasswordValidator(t *testing.T) {
	assert.NoError(t, PasswordValidator("p1"))
	assert.ErrorIs(t, PasswordValidator(""), ErrPasswordEmpty)
	assert.ErrorIs(t, PasswordValidator(strings.Repeat("a", 256)), ErrPasswordTooLong)
}
