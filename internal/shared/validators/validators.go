package validators

import (
	"errors"
	"math"
	"strconv"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/shopspring/decimal"
)

var (
	ErrInteger  = validation.NewError("validation_integer", "Enter a whole number.")
	ErrSmallInt = validation.NewError("validation_smallint", "Ensure this value is between -32768 and 32767.")
	ErrDecimal  = validation.NewError("validation_decimal", "Enter a number.")
	ErrChoice   = validation.NewError("validation_choice", "Select a valid choice. That choice is not one of the available choices.")
)

// SmallInt accepts a string holding an integer that fits a SMALLINT column.
var SmallInt = validation.By(func(value interface{}) error {
	s, _ := value.(string)
	if s == "" {
		return nil
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return ErrInteger
	}
	if n < math.MinInt16 || n > math.MaxInt16 {
		return ErrSmallInt
	}
	return nil
})

// IntRange accepts a string integer within [min, max].
func IntRange(min, max int) validation.Rule {
	return validation.By(func(value interface{}) error {
		s, _ := value.(string)
		if s == "" {
			return nil
		}
		n, err := strconv.Atoi(s)
		if err != nil {
			return ErrInteger
		}
		if n < min {
			return validation.NewError("validation_min", "Ensure this value is greater than or equal to "+strconv.Itoa(min)+".")
		}
		if n > max {
			return validation.NewError("validation_max", "Ensure this value is less than or equal to "+strconv.Itoa(max)+".")
		}
		return nil
	})
}

// Decimal mirrors NUMERIC(maxDigits, places): at most places fractional digits
// and maxDigits digits in total.
func Decimal(maxDigits, places int) validation.Rule {
	return validation.By(func(value interface{}) error {
		s, _ := value.(string)
		if s == "" {
			return nil
		}
		d, err := decimal.NewFromString(s)
		if err != nil {
			return ErrDecimal
		}

		digits := strings.TrimLeft(d.Abs().Coefficient().String(), "0")
		exp := -int(d.Exponent())
		if exp < 0 {
			digits += strings.Repeat("0", -exp)
			exp = 0
		}
		// trailing zeros after the point don't count
		for exp > 0 && strings.HasSuffix(digits, "0") {
			digits = digits[:len(digits)-1]
			exp--
		}
		whole := len(digits) - exp
		if whole < 0 {
			whole = 0
		}

		if exp > places {
			return validation.NewError("validation_decimal_places", "Ensure that there are no more than "+strconv.Itoa(places)+" decimal places.")
		}
		if whole > maxDigits-places {
			return validation.NewError("validation_decimal_whole", "Ensure that there are no more than "+strconv.Itoa(maxDigits-places)+" digits before the decimal point.")
		}
		return nil
	})
}

// Choice accepts a string id that exists in ids.
func Choice(ids map[int64]bool) validation.Rule {
	return validation.By(func(value interface{}) error {
		s, _ := value.(string)
		if s == "" {
			return nil
		}
		id, err := strconv.ParseInt(s, 10, 64)
		if err != nil || !ids[id] {
			return ErrChoice
		}
		return nil
	})
}

// AsErrors extracts field errors produced by a form's Validate.
func AsErrors(err error) (validation.Errors, bool) {
	var verrs validation.Errors
	if errors.As(err, &verrs) {
		return verrs, true
	}
	return nil, false
}
