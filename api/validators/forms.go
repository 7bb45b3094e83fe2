package validators

import (
	"net/url"
	"reflect"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	pkgerrors "github.com/angelmondragon/storefront/pkg/errors"
)

// maxPrice is the largest value numeric(12,2) can hold.
var maxPrice = decimal.RequireFromString("9999999999.99")

const priceScale = 2

// Rule enumerates the checks a form field can fail.
type Rule string

const (
	RuleRequired Rule = "required"
	RuleMin      Rule = "min"
	RuleMax      Rule = "max"
	RuleEmail    Rule = "email"
	RuleEqField  Rule = "eqfield"
	RuleDecimal  Rule = "decimal"
	RuleGTE      Rule = "gte"
	RuleLTE      Rule = "lte"
	RuleScale    Rule = "scale"
	RuleInvalid  Rule = "invalid"
)

// FieldError names one failed rule on one form field.
type FieldError struct {
	Field string `json:"field"`
	Rule  Rule   `json:"rule"`
	Param string `json:"param,omitempty"`
}

// ValidationResult collects every failed rule of a submission.
type ValidationResult struct {
	Errors []FieldError `json:"errors"`
}

func (v *ValidationResult) add(fe FieldError) {
	v.Errors = append(v.Errors, fe)
}

// Err converts the result into a typed validation error, or nil when clean.
func (v *ValidationResult) Err() error {
	if v == nil || len(v.Errors) == 0 {
		return nil
	}
	return pkgerrors.New(pkgerrors.CodeValidation, "validation failed").WithDetails(v.Errors)
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		tag := strings.SplitN(f.Tag.Get("form"), ",", 2)[0]
		if tag == "" {
			return f.Name
		}
		return tag
	})
	return v
}

// RegisterForm is the sign-up submission.
type RegisterForm struct {
	Username string `form:"username" validate:"required,min=4,max=80"`
	Email    string `form:"email" validate:"required,max=254,email"`
	Password string `form:"password" validate:"required,min=6"`
	Confirm  string `form:"confirm" validate:"eqfield=Password"`
}

// RegisterInput is a validated sign-up.
type RegisterInput struct {
	Username string
	Email    string
	Password string
}

// LoginForm is the login submission.
type LoginForm struct {
	Username string `form:"username" validate:"required,max=80"`
	Password string `form:"password" validate:"required"`
}

// ProductForm is the admin add-product submission. Price stays a string so
// the decimal check reports on exactly what was typed.
type ProductForm struct {
	Name        string `form:"name" validate:"required,max=200"`
	Description string `form:"description" validate:"max=5000"`
	Price       string `form:"price" validate:"required"`
	Category    string `form:"category" validate:"max=100"`
}

// ProductInput is a validated product submission.
type ProductInput struct {
	Name        string
	Description *string
	Price       decimal.Decimal
	Category    *string
}

func RegisterFormFrom(values url.Values) RegisterForm {
	return RegisterForm{
		Username: SanitizeString(values.Get("username")),
		Email:    SanitizeString(values.Get("email")),
		Password: values.Get("password"),
		Confirm:  values.Get("confirm"),
	}
}

func LoginFormFrom(values url.Values) LoginForm {
	return LoginForm{
		Username: SanitizeString(values.Get("username")),
		Password: values.Get("password"),
	}
}

func ProductFormFrom(values url.Values) ProductForm {
	return ProductForm{
		Name:        SanitizeString(values.Get("name")),
		Description: SanitizeString(values.Get("description")),
		Price:       strings.TrimSpace(values.Get("price")),
		Category:    SanitizeString(values.Get("category")),
	}
}

func ValidateRegister(form RegisterForm) (RegisterInput, *ValidationResult) {
	result := structErrors(form)
	if result != nil {
		return RegisterInput{}, result
	}
	return RegisterInput{
		Username: form.Username,
		Email:    strings.ToLower(form.Email),
		Password: form.Password,
	}, nil
}

func ValidateLogin(form LoginForm) *ValidationResult {
	return structErrors(form)
}

func ValidateProduct(form ProductForm) (ProductInput, *ValidationResult) {
	result := structErrors(form)
	if result == nil {
		result = &ValidationResult{}
	}

	var price decimal.Decimal
	if form.Price != "" {
		parsed, err := decimal.NewFromString(form.Price)
		switch {
		case err != nil:
			result.add(FieldError{Field: "price", Rule: RuleDecimal})
		case parsed.IsNegative():
			result.add(FieldError{Field: "price", Rule: RuleGTE, Param: "0"})
		case parsed.GreaterThan(maxPrice):
			result.add(FieldError{Field: "price", Rule: RuleLTE, Param: maxPrice.String()})
		case !parsed.Equal(parsed.Round(priceScale)):
			result.add(FieldError{Field: "price", Rule: RuleScale, Param: "2"})
		default:
			price = parsed
		}
	}

	if len(result.Errors) > 0 {
		sortErrors(result)
		return ProductInput{}, result
	}
	return ProductInput{
		Name:        form.Name,
		Description: OptionalString(form.Description),
		Price:       price,
		Category:    OptionalString(form.Category),
	}, nil
}

func structErrors(form any) *ValidationResult {
	err := validate.Struct(form)
	if err == nil {
		return nil
	}
	result := &ValidationResult{}
	errs, ok := err.(validator.ValidationErrors)
	if !ok {
		result.add(FieldError{Field: "form", Rule: RuleInvalid})
		return result
	}
	for _, fe := range errs {
		result.add(FieldError{Field: fe.Field(), Rule: ruleFor(fe.Tag()), Param: fe.Param()})
	}
	sortErrors(result)
	return result
}

func ruleFor(tag string) Rule {
	switch tag {
	case "required":
		return RuleRequired
	case "min":
		return RuleMin
	case "max":
		return RuleMax
	case "email":
		return RuleEmail
	case "eqfield":
		return RuleEqField
	case "gte":
		return RuleGTE
	}
	return RuleInvalid
}

func sortErrors(result *ValidationResult) {
	sort.SliceStable(result.Errors, func(i, j int) bool {
		return result.Errors[i].Field < result.Errors[j].Field
	})
}
