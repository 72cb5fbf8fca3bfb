package money_test

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/pocketbook/internal/money"
)

func TestAmount_MarshalJSON(t *testing.T) {
	tests := []struct {
		name  string
		cents money.Amount
		want  string
	}{
		{name: "Whole", cents: 1200, want: "12.00"},
		{name: "Fraction", cents: 1250, want: "12.50"},
		{name: "Cents", cents: 7, want: "0.07"},
		{name: "Zero", cents: 0, want: "0.00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := json.Marshal(tt.cents)
			require.NoError(t, err)
			assert.Equal(t, tt.want, string(got))
		})
	}
}

func TestAmount_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    money.Amount
		wantErr bool
	}{
		{name: "Number", input: `12.5`, want: 1250},
		{name: "Integer", input: `40`, want: 4000},
		{name: "String", input: `"3.99"`, want: 399},
		{name: "RoundsHalfUp", input: `0.125`, want: 13},
		{name: "Null", input: `null`, want: 0},
		{name: "Garbage", input: `"abc"`, wantErr: true},
		{name: "Overflow", input: `184467440737095516.17`, wantErr: true},
		{name: "NegativeOverflow", input: `"-92233720368547758.09"`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got money.Amount

			err := json.Unmarshal([]byte(tt.input), &got)
			if tt.wantErr {
				assert.ErrorIs(t, err, money.ErrInvalidAmount)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParse(t *testing.T) {
	got, err := money.Parse("12,34")
	require.NoError(t, err)
	assert.Equal(t, int64(1234), got)

	got, err = money.Parse(" 7.5 ")
	require.NoError(t, err)
	assert.Equal(t, int64(750), got)

	_, err = money.Parse("")
	assert.ErrorIs(t, err, money.ErrInvalidAmount)

	_, err = money.Parse("1.234,56")
	assert.ErrorIs(t, err, money.ErrInvalidAmount)

	_, err = money.Parse("184467440737095516.17")
	assert.ErrorIs(t, err, money.ErrInvalidAmount)

	got, err = money.Parse("92233720368547758.07")
	require.NoError(t, err)
	assert.Equal(t, int64(math.MaxInt64), got)
}

func TestParseEuropean(t *testing.T) {
	got, err := money.ParseEuropean("1.234,56")
	require.NoError(t, err)
	assert.Equal(t, int64(123456), got)

	got, err = money.ParseEuropean("-588,74")
	require.NoError(t, err)
	assert.Equal(t, int64(-58874), got)

	_, err = money.ParseEuropean("184.467.440.737.095.516,17")
	assert.ErrorIs(t, err, money.ErrInvalidAmount)
}

func TestFormat(t *testing.T) {
	assert.Equal(t, "12.50 €", money.Format(1250))
	assert.Equal(t, "-3.00 €", money.Format(-300))
}
