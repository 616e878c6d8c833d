package validation

import (
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func TestUsername(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  Code
	}{
		{"valid minimum length", "MUC1234", ""},
		{"valid maximum length", "MUC1234567890", ""},
		{"valid mixed", "MUCplayer7", ""},
		{"too short", "MUC123", TooShort},
		{"empty", "", TooShort},
		{"too long", "MUC12345678901", TooLong},
		{"wrong prefix", "ABC12345", BadPrefix},
		{"lowercase prefix", "muc12345", BadPrefix},
		{"symbol", "MUC123_45", BadCharset},
		{"space", "MUC 12345", BadCharset},
		{"all letters", "MUCABCDEF", NoDigit},
		{"too short beats prefix", "ABC12", TooShort},
		{"prefix beats charset", "AB!12345", BadPrefix},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := Username(tt.input)
			require.Equal(t, tt.want, r.Code)
			require.Equal(t, tt.want == "", r.Valid())
			if tt.want != "" {
				require.NotEmpty(t, r.Message)
			}
		})
	}
}

func TestUsername_MutationsFlipToSpecificReason(t *testing.T) {
	base := "MUC12345"
	require.True(t, Username(base).Valid())

	require.Equal(t, TooShort, Username(base[:6]).Code)
	require.Equal(t, BadPrefix, Username("ABC"+base[3:]).Code)
	require.Equal(t, BadCharset, Username(base+"$").Code)
	require.Equal(t, NoDigit, Username("MUCABCDE").Code)
}

func TestUsername_Messages(t *testing.T) {
	require.Equal(t, "Username must be at least 7 characters", Username("MUC1").Message)
	require.Equal(t, "Username must begin with MUC", Username("XYZ12345").Message)
	require.Equal(t, "Username can only contain letters and numbers", Username("MUC-1234").Message)
}

func TestPassword(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  Code
	}{
		{"valid", "abc123", ""},
		{"valid with symbols", `a1!@#$%^&*()`, ""},
		{"valid max", "abcdefgh12345678", ""},
		{"valid brackets and quotes", `a1[]{};':"\|`, ""},
		{"too short", "ab1", TooShort},
		{"too long", "abcdefgh123456789", TooLong},
		{"no letter", "123456", NoLetter},
		{"no digit", "abcdef", NoDigit},
		{"bad charset space", "abc 123", BadCharset},
		{"bad charset tilde", "abc123~", BadCharset},
		{"bad charset unicode", "abc123é", BadCharset},
		{"no letter beats charset", "12345 ", NoLetter},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, Password(tt.input).Code)
		})
	}
}

func TestPassword_EverySymbolAllowed(t *testing.T) {
	for _, r := range PasswordSymbols {
		pw := "ab12" + string(r) + "x"
		require.True(t, Password(pw).Valid(), "symbol %q should be allowed", r)
	}
}

func TestEmail(t *testing.T) {
	require.True(t, Email("a@b.com").Valid())
	require.True(t, Email("player.one+vip@casino.example.org").Valid())

	for _, bad := range []string{"", "plain", "a@b", "@b.com", "a@.com", "a@b.", "a b@c.com"} {
		require.Equal(t, BadEmail, Email(bad).Code, "input %q", bad)
	}
}

func TestSignup_AggregatesAcrossFields(t *testing.T) {
	errs := Signup("ABC", "nope", "short")
	require.Len(t, errs, 3)
	require.Equal(t, "Username must be at least 7 characters", errs["username"])
	require.Equal(t, "Please enter a valid email address", errs["email"])
	require.Equal(t, "Password must be at least 6 characters", errs["password"])

	errs = Signup("MUC12345", "a@b.com", "abcdef")
	require.Equal(t, Errors{"password": "Password must contain at least one number"}, errs)

	require.Nil(t, Signup("MUC12345", "a@b.com", "abc123"))
}

func TestAmount(t *testing.T) {
	value, r := Amount("10", DepositMinimum)
	require.True(t, r.Valid())
	require.True(t, value.Equal(decimal.NewFromInt(10)))

	_, r = Amount("9.99", DepositMinimum)
	require.Equal(t, BelowMinimum, r.Code)

	_, r = Amount("20", WithdrawalMinimum)
	require.True(t, r.Valid())

	_, r = Amount("19.99", WithdrawalMinimum)
	require.Equal(t, BelowMinimum, r.Code)
	require.Equal(t, "Amount must be at least 20", r.Message)

	value, r = Amount(" 25.50 ", DepositMinimum)
	require.True(t, r.Valid())
	require.Equal(t, "25.5", value.String())

	for _, bad := range []string{"", "abc", "10$", "NaN", "1,000"} {
		_, r = Amount(bad, DepositMinimum)
		require.Equal(t, NotNumeric, r.Code, "input %q", bad)
	}

	_, r = Amount("-50", DepositMinimum)
	require.Equal(t, BelowMinimum, r.Code)
}

func TestAmount_Bounds(t *testing.T) {
	testCases := []struct {
		raw  string
		code Code
	}{
		{"999999999999.99", ""},
		{"25.500", ""},
		{"1.5e2", ""},
		{"1e9", ""},
		{"1e12", TooLarge},
		{"1000000000000", TooLarge},
		{"1e100000000", TooLarge},
		{"-1e100000000", TooLarge},
		{"0e100000000", TooLarge},
		{"10.001", BadPrecision},
		{"1e-3", BadPrecision},
		{"1e-100000000", BadPrecision},
		{"12345678901234567890123456789012345", NotNumeric},
	}

	for _, tc := range testCases {
		t.Run(tc.raw, func(t *testing.T) {
			start := time.Now()
			_, r := Amount(tc.raw, DepositMinimum)
			require.Equal(t, tc.code, r.Code)
			require.Less(t, time.Since(start), 100*time.Millisecond)
		})
	}
}

func TestMessage(t *testing.T) {
	kind, errs := Message("Bonus", "Free spins today", "")
	require.Nil(t, errs)
	require.Equal(t, "info", kind)

	kind, errs = Message("Bonus", "Free spins today", "promotion")
	require.Nil(t, errs)
	require.Equal(t, "promotion", kind)

	_, errs = Message(" ", "", "spam")
	require.Len(t, errs, 3)
	require.True(t, strings.HasPrefix(errs["messageType"], "Message type must be one of"))
}
