package descriptor

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

// ErrInvalid wraps every descriptor validation failure.
var ErrInvalid = errors.New("invalid descriptor")

var (
	appIDRe       = regexp.MustCompile(`^[a-zA-Z][a-zA-Z0-9_]*(\.[a-zA-Z][a-zA-Z0-9_]*)+$`)
	javaVersionRe = regexp.MustCompile(`^(1\.[6-8]|[1-9][0-9]?)$`)
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	_ = v.RegisterValidation("appid", func(fl validator.FieldLevel) bool {
		return appIDRe.MatchString(fl.Field().String())
	})
	_ = v.RegisterValidation("javaversion", func(fl validator.FieldLevel) bool {
		return javaVersionRe.MatchString(fl.Field().String())
	})
	v.RegisterStructValidation(validateReferences, Descriptor{})
	return v
}

// validateReferences checks that every build type points at a signing config
// the descriptor defines.
func validateReferences(sl validator.StructLevel) {
	d := sl.Current().Interface().(Descriptor)
	for name, bt := range d.BuildTypes {
		if _, ok := d.SigningConfigs[bt.SigningConfig]; !ok {
			sl.ReportError(bt.SigningConfig, "BuildTypes["+name+"].SigningConfig", "SigningConfig", "signingref", bt.SigningConfig)
		}
	}
	if _, ok := d.BuildTypes[BuildTypeRelease]; !ok {
		sl.ReportError(d.BuildTypes, "BuildTypes", "BuildTypes", "hasrelease", "")
	}
}

// Validate checks d for structural problems. The keystore file is not
// inspected; the packaging toolchain reports unusable credentials.
func Validate(d *Descriptor) error {
	if d == nil {
		return fmt.Errorf("%w: nil descriptor", ErrInvalid)
	}
	err := validate.Struct(d)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, describe(fe))
	}
	return fmt.Errorf("%w: %s", ErrInvalid, strings.Join(msgs, "; "))
}

func describe(fe validator.FieldError) string {
	field := strings.TrimPrefix(fe.Namespace(), "Descriptor.")
	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "appid":
		return fmt.Sprintf("%s %q is not a valid application id", field, fe.Value())
	case "javaversion":
		return fmt.Sprintf("%s %q is not a Java language level", field, fe.Value())
	case "ltefield":
		return fmt.Sprintf("%s (%v) must not exceed %s", field, fe.Value(), fe.Param())
	case "gte":
		return fmt.Sprintf("%s must be >= %s", field, fe.Param())
	case "signingref":
		return fmt.Sprintf("%s references unknown signing config %q", field, fe.Value())
	case "hasrelease":
		return "release build type is missing"
	default:
		return fmt.Sprintf("%s failed %s", field, fe.Tag())
	}
}
