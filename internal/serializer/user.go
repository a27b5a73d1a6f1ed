package serializer

import (
	"regexp"

	"github.com/go-playground/validator/v10"

	"github.com/iliyamo/little-lemon/internal/model"
)

// Credentials is the validated body of a token request.
type Credentials struct {
	Username string
	Password string
}

// ValidateCredentials checks a login form.  Both fields come from a bound
// struct, so an empty value and a missing one are reported the same way.
func ValidateCredentials(username, password string) Result[Credentials] {
	errs := FieldErrors{}
	if username == "" {
		errs.Add("username", msgRequired)
	}
	if password == "" {
		errs.Add("password", msgRequired)
	}
	return result(Credentials{Username: username, Password: password}, errs)
}

// Registration is the validated body of a sign-up request.
type Registration struct {
	Username string
	Password string
	Email    string
}

const maxPasswordBytes = 72

var usernamePattern = regexp.MustCompile(`^[\w.@+-]+$`)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	_ = v.RegisterValidation("username", func(fl validator.FieldLevel) bool {
		return usernamePattern.MatchString(fl.Field().String())
	})
	return v
}

var (
	usernameField = CharField{MaxLength: 150}
	passwordField = CharField{NoTrim: true}
	emailField    = CharField{MaxLength: 254, AllowBlank: true}
)

// ValidateRegistration checks a sign-up body.  email is optional.
func ValidateRegistration(body Body) Result[Registration] {
	errs := FieldErrors{}
	var reg Registration
	if u := Field[string](body, "username", false, errs, usernameField); u != nil {
		if validate.Var(*u, "username") == nil {
			reg.Username = *u
		} else {
			errs.Add("username", "Enter a valid username. This value may contain only letters, numbers, and @/./+/-/_ characters.")
		}
	}
	if p := Field[string](body, "password", false, errs, passwordField); p != nil {
		// bcrypt only looks at the first 72 bytes.
		if len(*p) > maxPasswordBytes {
			errs.Add("password", "Ensure this field has no more than 72 bytes.")
		} else {
			reg.Password = *p
		}
	}
	if e := Field[string](body, "email", true, errs, emailField); e != nil && *e != "" {
		if validate.Var(*e, "email") != nil {
			errs.Add("email", "Enter a valid email address.")
		} else {
			reg.Email = *e
		}
	}
	return result(reg, errs)
}

// UserJSON is the public view of an account.
type UserJSON struct {
	ID       uint64 `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

func UserToJSON(u model.User) UserJSON {
	return UserJSON{ID: u.ID, Username: u.Username, Email: u.Email}
}
