// Package validation holds the field-level rules for the three submit
// surfaces: registration, login, and food entry. Each profile returns a
// map of field name to messages; an empty map means the submission is
// acceptable.
package validation

import (
	"strconv"
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"
)

// Errors maps a form field to its validation messages.
type Errors map[string][]string

// OK reports whether the form passed validation.
func (e Errors) OK() bool { return len(e) == 0 }

func (e Errors) add(field, message string) {
	e[field] = append(e[field], message)
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	// Letters and digits only, with at least one of each. Length is a
	// separate rule so short passwords get the length message.
	if err := v.RegisterValidation("userpassword", func(fl validator.FieldLevel) bool {
		var hasLetter, hasDigit bool
		for _, r := range fl.Field().String() {
			switch {
			case unicode.IsLetter(r):
				hasLetter = true
			case unicode.IsDigit(r):
				hasDigit = true
			default:
				return false
			}
		}
		return hasLetter && hasDigit
	}); err != nil {
		panic(err)
	}
	return v
}

// RegisterForm carries a registration submission.
type RegisterForm struct {
	Username string `validate:"required,min=4"`
	Password string `validate:"required,min=6,userpassword"`
}

// Validate checks the registration profile.
func (f RegisterForm) Validate() Errors {
	errs := Errors{}
	verrs := validate.Struct(f)
	if verrs == nil {
		return errs
	}
	for _, fe := range verrs.(validator.ValidationErrors) {
		switch fe.StructField() {
		case "Username":
			switch fe.Tag() {
			case "required":
				errs.add("username", "This field is required.")
			case "min":
				errs.add("username", "Username must be at least 4 characters.")
			}
		case "Password":
			switch fe.Tag() {
			case "required":
				errs.add("password", "This field is required.")
			case "min":
				errs.add("password", "Password must be at least 6 characters.")
			case "userpassword":
				errs.add("password", "Password must contain at least one letter and one number.")
			}
		}
	}
	return errs
}

// LoginForm carries a login submission. Only presence is checked; the
// registration format rules are not re-applied.
type LoginForm struct {
	Username string `validate:"required"`
	Password string `validate:"required"`
}

// Validate checks the login profile.
func (f LoginForm) Validate() Errors {
	errs := Errors{}
	verrs := validate.Struct(f)
	if verrs == nil {
		return errs
	}
	for _, fe := range verrs.(validator.ValidationErrors) {
		switch fe.StructField() {
		case "Username":
			errs.add("username", "This field is required.")
		case "Password":
			errs.add("password", "This field is required.")
		}
	}
	return errs
}

// FoodForm carries a parsed food-entry submission. The numeric fields
// default to zero when left blank.
type FoodForm struct {
	FoodName    string `validate:"required"`
	Ingredients string `validate:"required"`
	Calories    float64
	Protein     float64
	Carbs       float64
	Fats        float64
}

// ParseFoodForm builds a FoodForm from raw form values, collecting
// number-parse failures as field errors alongside the presence checks.
func ParseFoodForm(values map[string]string) (FoodForm, Errors) {
	form := FoodForm{
		FoodName:    strings.TrimSpace(values["food_name"]),
		Ingredients: strings.TrimSpace(values["ingredients"]),
	}
	errs := Errors{}

	for field, dst := range map[string]*float64{
		"calories": &form.Calories,
		"protein":  &form.Protein,
		"carbs":    &form.Carbs,
		"fats":     &form.Fats,
	} {
		raw := strings.TrimSpace(values[field])
		if raw == "" {
			continue
		}
		f, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			errs.add(field, "Not a valid float value.")
			continue
		}
		*dst = f
	}

	verrs := validate.Struct(form)
	if verrs != nil {
		for _, fe := range verrs.(validator.ValidationErrors) {
			switch fe.StructField() {
			case "FoodName":
				errs.add("food_name", "This field is required.")
			case "Ingredients":
				errs.add("ingredients", "This field is required.")
			}
		}
	}
	return form, errs
}
