package validators

import "errors"

var (
	ErrNameEmpty       = errors.New("name field can't be empty")
	ErrNameTooLong     = errors.New("name is too long")
	ErrPasswordEmpty   = errors.New("password field can't be empty")
	ErrPasswordTooLong = errors.New("password is too long")
)

// NameValidator checks an account name. Anything non-empty and of sane
// length is accepted, names are display strings, not emails.
func NameValidator(n string) error {
	if n == "" {
		return ErrNameEmpty
	}

	if len(n) > 64 {
		return ErrNameTooLong
	}

	return nil
}

func PasswordValidator(p string) error {
	if p == "" {
		return ErrPasswordEmpty
	}

	if len(p) > 255 {
		return ErrPasswordTooLong
	}

	return nil
}
