package payment

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliamunaev/doorstep/internal/apperr"
)

func TestParseMethod(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in      string
		want    Method
		wantErr bool
	}{
		{in: "upi", want: UPI},
		{in: "CARD", want: Card},
		{in: " cash ", want: Cash},
		{in: "cod", want: Cash},
		{in: "cashOnDelivery", want: Cash},
		{in: "wallet", wantErr: true},
		{in: "", wantErr: true},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.in, func(t *testing.T) {
			t.Parallel()

			got, err := ParseMethod(tt.in)
			if tt.wantErr {
				require.ErrorIs(t, err, apperr.ErrUnknownMethod)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestMethodLabels(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "UPI", UPI.Label())
	assert.Equal(t, "CARD", Card.Label())
	assert.Equal(t, "CASH", Cash.Label())
	assert.Equal(t, "Cash on Delivery", Cash.Name())
	assert.Equal(t, []Method{UPI, Card, Cash}, Methods())
	assert.False(t, Method("wallet").Valid())
}

func TestValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		d         Details
		wantField string
		wantErr   error
	}{
		{name: "upi_no_option", d: Details{Method: UPI}, wantField: "upi_option"},
		{name: "upi_id_empty", d: Details{Method: UPI, UPIOption: UPIByID}, wantField: "upi_id"},
		{name: "upi_id_blank", d: Details{Method: UPI, UPIOption: UPIByID, UPIID: "  "}, wantField: "upi_id"},
		{name: "upi_id_ok", d: Details{Method: UPI, UPIOption: UPIByID, UPIID: "user@bank"}},
		{name: "upi_qr_ok", d: Details{Method: UPI, UPIOption: UPIByQR}},
		{name: "card_no_number", d: Details{Method: Card, CardHolder: "A Kumar"}, wantField: "card_number"},
		{name: "card_no_holder", d: Details{Method: Card, CardNumber: "4111111111111111"}, wantField: "card_holder"},
		{name: "card_ok", d: Details{Method: Card, CardNumber: "4111", CardHolder: "A Kumar"}},
		{name: "cash_ok", d: Details{Method: Cash}},
		{name: "no_method", d: Details{}, wantErr: apperr.ErrUnknownMethod},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := tt.d.Validate()
			switch {
			case tt.wantField != "":
				require.True(t, errors.Is(err, apperr.ErrMissingPaymentField), "got %v", err)
				assert.Equal(t, tt.wantField, apperr.Field(err))
			case tt.wantErr != nil:
				require.ErrorIs(t, err, tt.wantErr)
			default:
				require.NoError(t, err)
			}
		})
	}
}

func TestSelectMethodResetsUPIState(t *testing.T) {
	t.Parallel()

	d := Details{Method: UPI, UPIOption: UPIByID, UPIID: "user@bank"}
	d.SelectMethod(Card)

	assert.Equal(t, Card, d.Method)
	assert.Empty(t, d.UPIOption)
	assert.Empty(t, d.UPIID)
}

func TestSetCardNumberTruncates(t *testing.T) {
	t.Parallel()

	var d Details
	d.SetCardNumber("41111111111111112222")
	assert.Equal(t, "4111111111111111", d.CardNumber)

	d.SetCardNumber("4111")
	assert.Equal(t, "4111", d.CardNumber)
}
