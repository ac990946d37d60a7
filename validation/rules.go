package validation

import (
	"regexp"

	ozzo "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	// CurrencyCodePattern matches three uppercase letters.
	CurrencyCodePattern = regexp.MustCompile(`^[A-Z]{3}$`)

	// TitleCasePattern matches words that each start with an uppercase
	// letter, contain only letters and are separated by single spaces.
	TitleCasePattern = regexp.MustCompile(`^[A-Z][A-Za-z]*( [A-Z][A-Za-z]*)*$`)

	// ProductNamePattern matches capitalized words whose remaining letters
	// are lowercase, separated by single spaces.
	ProductNamePattern = regexp.MustCompile(`^[A-Z][a-z]*( [A-Z][a-z]*)*$`)

	// CategoryPattern matches a single capitalized word.
	CategoryPattern = regexp.MustCompile(`^[A-Z][a-z]*$`)
)

// Field length limits.
const (
	CurrencyCodeMax   = 3
	CurrencyNameMax   = 50
	CurrencySymbolMax = 10
	ProductNameMax    = 100
	ProductCategory   = 50
	PriceMaxDigits    = 10
	PriceDecimals     = 2
)

var required = ozzo.Required.Error("This field is required.")

func maxLength(n int) ozzo.Rule {
	return ozzo.RuneLength(0, n).Error("Ensure this value has at most {{.max}} characters.")
}

func titleCase(pattern *regexp.Regexp) ozzo.Rule {
	return ozzo.Match(pattern).Error("must be capitalized words separated by single spaces")
}

var (
	priceLimit = decimal.New(1, PriceMaxDigits-PriceDecimals)
)

// price checks a decimal against decimal(10,2).
func price(value any) error {
	d, ok := value.(decimal.NullDecimal)
	if !ok || !d.Valid {
		return nil
	}

	if !d.Decimal.Equal(d.Decimal.Round(PriceDecimals)) {
		return ozzo.NewError("validation_price_decimals", "Ensure that there are no more than 2 decimal places.")
	}
	if d.Decimal.Abs().GreaterThanOrEqual(priceLimit) {
		return ozzo.NewError("validation_price_digits", "Ensure that there are no more than 10 digits in total.")
	}
	return nil
}

// present fails when a nullable decimal has no value.
func present(value any) error {
	if d, ok := value.(decimal.NullDecimal); ok && !d.Valid {
		return ozzo.NewError("validation_required", "This field is required.")
	}
	return nil
}

// reference fails on the zero UUID, which Required cannot detect on arrays.
func reference(value any) error {
	if id, ok := value.(uuid.UUID); ok && id == uuid.Nil {
		return ozzo.NewError("validation_required", "This field is required.")
	}
	return nil
}
