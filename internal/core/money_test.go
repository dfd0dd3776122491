package core

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseMoney(t *testing.T) {
	cases := []struct {
		in  string
		out int64
		ok  bool
	}{
		{"1", 100, true},
		{"1.0", 100, true},
		{"1.23", 123, true},
		{"1,23", 123, true},
		{"0.01", 1, true},
		{"1.005", 101, true}, // half away from zero
		{" 2.50 ", 250, true},
		{"-1", -100, true},
		{"-0.005", -1, true},
		{"0", 0, true},
		{"abc", 0, false},
		{"1.2.3", 0, false},
		{"", 0, false},
		{"1e20", 0, false},
		{"100000000000", 10000000000000, true},
		{"100000000000.01", 0, false},
	}
	for _, tc := range cases {
		got, err := ParseMoney(tc.in)
		if !tc.ok {
			assert.ErrorIs(t, err, ErrInvalidArgument, "input %q", tc.in)
			continue
		}
		require.NoError(t, err, "input %q", tc.in)
		assert.Equal(t, tc.out, got.Cents, "input %q", tc.in)
	}
}

func TestMoneyFromFloat(t *testing.T) {
	m, err := MoneyFromFloat(0.1 + 0.2)
	require.NoError(t, err)
	assert.Equal(t, int64(30), m.Cents)

	m, err = MoneyFromFloat(49.999)
	require.NoError(t, err)
	assert.Equal(t, int64(5000), m.Cents)
}

func TestMoneyJSON(t *testing.T) {
	out, err := json.Marshal(map[string]Money{"a": {Cents: 5000}, "b": {Cents: 1234}, "c": {Cents: -5}})
	require.NoError(t, err)
	assert.JSONEq(t, `{"a":50,"b":12.34,"c":-0.05}`, string(out))
}

func TestMoneyPercent(t *testing.T) {
	assert.InDelta(t, 30.0, Money{Cents: 3000}.Percent(Money{Cents: 10000}), 1e-9)
	assert.InDelta(t, 150.0, Money{Cents: 150}.Percent(Money{Cents: 100}), 1e-9)
	assert.Zero(t, Money{Cents: 3000}.Percent(Money{}))
	assert.Zero(t, Money{Cents: 3000}.Percent(Money{Cents: -100}))
}

func TestMoneyString(t *testing.T) {
	assert.Equal(t, "50.00", Money{Cents: 5000}.String())
	assert.Equal(t, "-0.07", Money{Cents: -7}.String())
	assert.True(t, Money{Cents: 1234}.Decimal().Equal(decimal.RequireFromString("12.34")))
}

func TestMoneyArithmeticRange(t *testing.T) {
	sum, err := Money{Cents: 150}.Add(Money{Cents: -50})
	require.NoError(t, err)
	assert.Equal(t, int64(100), sum.Cents)

	diff, err := Money{Cents: 100}.Sub(Money{Cents: 250})
	require.NoError(t, err)
	assert.Equal(t, int64(-150), diff.Cents)

	_, err = Money{Cents: math.MaxInt64}.Add(Money{Cents: 1})
	assert.ErrorIs(t, err, ErrInvalidArgument)
	_, err = Money{Cents: math.MinInt64}.Add(Money{Cents: -1})
	assert.ErrorIs(t, err, ErrInvalidArgument)
	_, err = Money{Cents: math.MinInt64}.Sub(Money{Cents: 1})
	assert.ErrorIs(t, err, ErrInvalidArgument)
	_, err = Money{Cents: math.MaxInt64}.Sub(Money{Cents: -1})
	assert.ErrorIs(t, err, ErrInvalidArgument)
}
