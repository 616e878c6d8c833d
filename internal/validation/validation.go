// Package validation holds the input rules shared by the signup, login,
// deposit, withdrawal and messaging flows. Every rule is pure: it returns a
// Result describing the first failed check instead of an error, so the same
// value can fill a JSON error payload or an inline form message.
package validation

import (
	"strings"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

type Code string

const (
	TooShort       Code = "too_short"
	TooLong        Code = "too_long"
	BadPrefix      Code = "bad_prefix"
	BadCharset     Code = "bad_charset"
	NoLetter       Code = "no_letter"
	NoDigit        Code = "no_digit"
	BadEmail       Code = "bad_email"
	NotNumeric     Code = "not_numeric"
	BelowMinimum   Code = "below_minimum"
	TooLarge       Code = "too_large"
	BadPrecision   Code = "bad_precision"
	Required       Code = "required"
	BadMessageType Code = "bad_message_type"
)

// Result is the outcome of a single rule. The zero value means valid.
type Result struct {
	Code    Code
	Message string
}

func (r Result) Valid() bool {
	return r.Code == ""
}

func fail(code Code, message string) Result {
	return Result{Code: code, Message: message}
}

const (
	UsernamePrefix    = "MUC"
	usernameMinLength = 7
	usernameMaxLength = 13
	passwordMinLength = 6
	passwordMaxLength = 16

	// PasswordSymbols is the punctuation allowed in passwords besides letters and digits.
	PasswordSymbols = `!@#$%^&*()_+-=[]{};':"\|,.<>/?`
)

var (
	DepositMinimum    = decimal.NewFromInt(10)
	WithdrawalMinimum = decimal.NewFromInt(20)
)

// Amounts are stored as NUMERIC(14,2).
const (
	amountMaxInput  = 32
	amountScale     = 2
	amountIntDigits = 12
)

var amountCeiling = decimal.New(1, amountIntDigits)

var validate = validator.New()

func isLetter(r rune) bool {
	return (r >= 'A' && r <= 'Z') || (r >= 'a' && r <= 'z')
}

func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}

func containsFunc(s string, f func(rune) bool) bool {
	return strings.IndexFunc(s, f) >= 0
}

// Username checks, in order: length 7..13, the MUC prefix, alphanumeric
// charset, at least one letter, at least one digit.
func Username(s string) Result {
	n := utf8.RuneCountInString(s)
	switch {
	case n < usernameMinLength:
		return fail(TooShort, "Username must be at least 7 characters")
	case n > usernameMaxLength:
		return fail(TooLong, "Username must be at most 13 characters")
	case !strings.HasPrefix(s, UsernamePrefix):
		return fail(BadPrefix, "Username must begin with MUC")
	case containsFunc(s, func(r rune) bool { return !isLetter(r) && !isDigit(r) }):
		return fail(BadCharset, "Username can only contain letters and numbers")
	case !containsFunc(s, isLetter):
		return fail(NoLetter, "Username must contain at least one letter")
	case !containsFunc(s, isDigit):
		return fail(NoDigit, "Username must contain at least one number")
	}
	return Result{}
}

// Password checks, in order: length 6..16, at least one letter, at least one
// digit, charset limited to letters, digits and PasswordSymbols.
func Password(s string) Result {
	n := utf8.RuneCountInString(s)
	switch {
	case n < passwordMinLength:
		return fail(TooShort, "Password must be at least 6 characters")
	case n > passwordMaxLength:
		return fail(TooLong, "Password must be at most 16 characters")
	case !containsFunc(s, isLetter):
		return fail(NoLetter, "Password must contain at least one letter")
	case !containsFunc(s, isDigit):
		return fail(NoDigit, "Password must contain at least one number")
	case containsFunc(s, func(r rune) bool {
		return !isLetter(r) && !isDigit(r) && !strings.ContainsRune(PasswordSymbols, r)
	}):
		return fail(BadCharset, "Password contains invalid characters")
	}
	return Result{}
}

// Email accepts local@domain where the domain has at least one dot.
func Email(s string) Result {
	bad := fail(BadEmail, "Please enter a valid email address")
	if err := validate.Var(s, "required,email"); err != nil {
		return bad
	}
	at := strings.LastIndexByte(s, '@')
	domain := s[at+1:]
	if !strings.Contains(domain, ".") || strings.HasPrefix(domain, ".") || strings.HasSuffix(domain, ".") {
		return bad
	}
	return Result{}
}

// Errors maps a field name to the reason it was rejected.
type Errors map[string]string

func (e Errors) add(field string, r Result) {
	if !r.Valid() {
		e[field] = r.Message
	}
}

// Signup runs the username, email and password rules and collects every
// field that failed. Each field reports only its own first failure.
func Signup(username, email, password string) Errors {
	errs := Errors{}
	errs.add("username", Username(username))
	errs.add("email", Email(email))
	errs.add("password", Password(password))
	if len(errs) == 0 {
		return nil
	}
	return errs
}

// Amount parses raw as a decimal and requires it to be at least minimum.
// Values must fit in whole cents below 10^12. The exponent is checked before
// any arithmetic so that inputs like 1e100000000 never get expanded.
func Amount(raw string, minimum decimal.Decimal) (decimal.Decimal, Result) {
	raw = strings.TrimSpace(raw)
	notNumeric := fail(NotNumeric, "Amount must be a number")
	if len(raw) > amountMaxInput {
		return decimal.Zero, notNumeric
	}
	value, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, notNumeric
	}

	exp := value.Exponent()
	switch {
	case exp > amountIntDigits:
		return decimal.Zero, fail(TooLarge, "Amount is too large")
	case exp < -amountMaxInput:
		return decimal.Zero, fail(BadPrecision, "Amount can have at most 2 decimal places")
	}
	if !value.Truncate(amountScale).Equal(value) {
		return decimal.Zero, fail(BadPrecision, "Amount can have at most 2 decimal places")
	}
	if value.Abs().GreaterThanOrEqual(amountCeiling) {
		return decimal.Zero, fail(TooLarge, "Amount is too large")
	}

	if value.LessThan(minimum) {
		return value, fail(BelowMinimum, "Amount must be at least "+minimum.String())
	}
	return value, Result{}
}

// MessageTypes lists the accepted inbox message kinds.
var MessageTypes = []string{"info", "alert", "promotion", "deposit"}

const DefaultMessageType = "info"

// MessageType returns the normalised type, defaulting an empty value to info.
func MessageType(s string) (string, Result) {
	s = strings.TrimSpace(s)
	if s == "" {
		return DefaultMessageType, Result{}
	}
	for _, t := range MessageTypes {
		if s == t {
			return s, Result{}
		}
	}
	return s, fail(BadMessageType, "Message type must be one of info, alert, promotion, deposit")
}

// Message validates the admin-composed title, content and type.
func Message(title, content, messageType string) (string, Errors) {
	errs := Errors{}
	if strings.TrimSpace(title) == "" {
		errs.add("title", fail(Required, "Title is required"))
	}
	if strings.TrimSpace(content) == "" {
		errs.add("content", fail(Required, "Content is required"))
	}
	kind, r := MessageType(messageType)
	errs.add("messageType", r)
	if len(errs) == 0 {
		return kind, nil
	}
	return kind, errs
}
