package coupon

import (
	"errors"
	"strings"

	"github.com/shopspring/decimal"
)

var (
	ErrInvalidCouponCode      = errors.New("coupon code must not be empty")
	ErrCouponCodeTooLong      = errors.New("coupon code must be at most 255 characters")
	ErrInvalidCouponType      = errors.New("invalid coupon type")
	ErrInvalidCouponValue     = errors.New("coupon value cannot be negative")
	ErrInvalidPercentageValue = errors.New("percentage value must be between 0 and 100")
)

const maxCodeLength = 255

var hundred = decimal.NewFromInt(100)

type Code string

func NewCode(code string) (Code, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return Code(""), ErrInvalidCouponCode
	}
	if len(code) > maxCodeLength {
		return Code(""), ErrCouponCodeTooLong
	}
	return Code(code), nil
}

func (c Code) String() string {
	return string(c)
}

type Type string

const (
	TypeMonetary        Type = "monetary"
	TypePercentage      Type = "percentage"
	TypeVirtualCurrency Type = "virtual_currency"
)

func (t Type) String() string {
	return string(t)
}

func (t Type) IsValid() bool {
	switch t {
	case TypeMonetary, TypePercentage, TypeVirtualCurrency:
		return true
	default:
		return false
	}
}

func NewType(s string) (Type, error) {
	t := Type(strings.TrimSpace(s))
	if !t.IsValid() {
		return "", ErrInvalidCouponType
	}
	return t, nil
}

// ParseTypes reads a comma-delimited type list. Blank input means no restriction and
// yields nil; unknown entries are kept so they simply never match.
func ParseTypes(s string) []Type {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	var types []Type
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			types = append(types, Type(p))
		}
	}
	return types
}

// ParseNames reads a comma-delimited product list, nil when blank.
func ParseNames(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	var names []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			names = append(names, p)
		}
	}
	return names
}

func validateValue(t Type, v decimal.Decimal) error {
	if v.IsNegative() {
		return ErrInvalidCouponValue
	}
	if t == TypePercentage && v.GreaterThan(hundred) {
		return ErrInvalidPercentageValue
	}
	return nil
}

// DisplayValue renders a value for humans. Percentages are bounded to 0..100 here only;
// the stored value is never altered.
func DisplayValue(t Type, v decimal.Decimal) string {
	if t == TypePercentage {
		if v.GreaterThan(hundred) {
			v = hundred
		}
		if v.IsNegative() {
			v = decimal.Zero
		}
		return v.String() + "%"
	}
	return v.StringFixed(2)
}
