package validators

import (
	"net/url"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgerrors "github.com/angelmondragon/storefront/pkg/errors"
)

func TestValidateRegister(t *testing.T) {
	valid := RegisterForm{Username: "alice", Email: "Alice@Example.com", Password: "secret1", Confirm: "secret1"}
	input, result := ValidateRegister(valid)
	require.Nil(t, result)
	assert.Equal(t, "alice", input.Username)
	assert.Equal(t, "alice@example.com", input.Email)

	cases := []struct {
		name  string
		form  RegisterForm
		field string
		rule  Rule
	}{
		{"short username", RegisterForm{Username: "abc", Email: "a@x.com", Password: "secret1", Confirm: "secret1"}, "username", RuleMin},
		{"missing username", RegisterForm{Email: "a@x.com", Password: "secret1", Confirm: "secret1"}, "username", RuleRequired},
		{"bad email", RegisterForm{Username: "alice", Email: "nope", Password: "secret1", Confirm: "secret1"}, "email", RuleEmail},
		{"short password", RegisterForm{Username: "alice", Email: "a@x.com", Password: "12345", Confirm: "12345"}, "password", RuleMin},
		{"long username", RegisterForm{Username: strings.Repeat("a", 81), Email: "a@x.com", Password: "secret1", Confirm: "secret1"}, "username", RuleMax},
		{"long email", RegisterForm{Username: "alice", Email: strings.Repeat("a", 250) + "@x.com", Password: "secret1", Confirm: "secret1"}, "email", RuleMax},
		{"mismatched confirm", RegisterForm{Username: "alice", Email: "a@x.com", Password: "secret1", Confirm: "secret2"}, "confirm", RuleEqField},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, result := ValidateRegister(tc.form)
			require.NotNil(t, result)
			assert.True(t, hasError(result, tc.field, tc.rule), "errors: %+v", result.Errors)
			assert.Equal(t, pkgerrors.CodeValidation, pkgerrors.CodeOf(result.Err()))
		})
	}
}

func TestValidateLogin(t *testing.T) {
	assert.Nil(t, ValidateLogin(LoginForm{Username: "alice", Password: "x"}))

	result := ValidateLogin(LoginForm{})
	require.NotNil(t, result)
	assert.True(t, hasError(result, "username", RuleRequired))
	assert.True(t, hasError(result, "password", RuleRequired))
}

func TestValidateProduct(t *testing.T) {
	input, result := ValidateProduct(ProductFormFrom(url.Values{
		"name":        {"  Lamp  "},
		"price":       {"12.50"},
		"description": {"   "},
		"category":    {" Home "},
	}))
	require.Nil(t, result)
	assert.Equal(t, "Lamp", input.Name)
	assert.True(t, input.Price.Equal(decimal.RequireFromString("12.5")))
	assert.Nil(t, input.Description)
	require.NotNil(t, input.Category)
	assert.Equal(t, "Home", *input.Category)

	_, result = ValidateProduct(ProductForm{Price: "abc"})
	require.NotNil(t, result)
	assert.True(t, hasError(result, "name", RuleRequired))
	assert.True(t, hasError(result, "price", RuleDecimal))

	_, result = ValidateProduct(ProductForm{Name: "Lamp", Price: "-1"})
	require.NotNil(t, result)
	assert.True(t, hasError(result, "price", RuleGTE))

	_, result = ValidateProduct(ProductForm{Name: "Lamp"})
	require.NotNil(t, result)
	assert.True(t, hasError(result, "price", RuleRequired))

	input, result = ValidateProduct(ProductForm{Name: "Free", Price: "0"})
	require.Nil(t, result)
	assert.True(t, input.Price.IsZero())

	input, result = ValidateProduct(ProductForm{Name: "Top", Price: "9999999999.99"})
	require.Nil(t, result)
	assert.Equal(t, "9999999999.99", input.Price.StringFixed(2))

	_, result = ValidateProduct(ProductForm{Name: "Lamp", Price: "10000000000"})
	require.NotNil(t, result)
	assert.True(t, hasError(result, "price", RuleLTE))
	assert.Equal(t, pkgerrors.CodeValidation, pkgerrors.CodeOf(result.Err()))

	_, result = ValidateProduct(ProductForm{Name: "Lamp", Price: "1.005"})
	require.NotNil(t, result)
	assert.True(t, hasError(result, "price", RuleScale))

	input, result = ValidateProduct(ProductForm{Name: "Lamp", Price: "1.500"})
	require.Nil(t, result)
	assert.Equal(t, "1.50", input.Price.StringFixed(2))
}

func TestValidateProductLengthLimits(t *testing.T) {
	_, result := ValidateProduct(ProductForm{
		Name:        strings.Repeat("n", 201),
		Description: strings.Repeat("d", 5001),
		Category:    strings.Repeat("c", 101),
		Price:       "1",
	})
	require.NotNil(t, result)
	assert.True(t, hasError(result, "name", RuleMax))
	assert.True(t, hasError(result, "description", RuleMax))
	assert.True(t, hasError(result, "category", RuleMax))
}

func TestLongUsernamesAreRejectedNotTruncated(t *testing.T) {
	prefix := strings.Repeat("a", 80)
	for _, username := range []string{prefix + "-first", prefix + "-second"} {
		form := RegisterFormFrom(url.Values{
			"username": {username},
			"email":    {"a@x.com"},
			"password": {"secret1"},
			"confirm":  {"secret1"},
		})
		assert.Equal(t, username, form.Username)

		_, result := ValidateRegister(form)
		require.NotNil(t, result)
		assert.True(t, hasError(result, "username", RuleMax), "errors: %+v", result.Errors)
	}

	result := ValidateLogin(LoginFormFrom(url.Values{"username": {prefix + "-first"}, "password": {"x"}}))
	require.NotNil(t, result)
	assert.True(t, hasError(result, "username", RuleMax))
}

func TestSanitizeStringKeepsFullInput(t *testing.T) {
	long := strings.Repeat("x", 6000)
	assert.Equal(t, long, SanitizeString("  "+long+"\n"))
	assert.Nil(t, OptionalString("   "))
	require.NotNil(t, OptionalString(" Home "))
	assert.Equal(t, "Home", *OptionalString(" Home "))
}

func hasError(result *ValidationResult, field string, rule Rule) bool {
	if result == nil {
		return false
	}
	for _, fe := range result.Errors {
		if fe.Field == field && fe.Rule == rule {
			return true
		}
	}
	return false
}

func TestValidationResultErrNilWhenClean(t *testing.T) {
	var result *ValidationResult
	assert.NoError(t, result.Err())
	assert.NoError(t, (&ValidationResult{}).Err())
}
