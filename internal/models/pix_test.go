package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeChargeValue(t *testing.T) {
	tests := []struct {
		name  string
		value float64
		want  string
	}{
		{"whole number gains trailing zeros", 10, "10.00"},
		{"half rounds away from zero", 10.005, "10.01"},
		{"already two decimals", 123.45, "123.45"},
		{"three decimals round", 123.456, "123.46"},
		{"single decimal padded", 0.1, "0.10"},
		{"rounding carries over", 999999.999, "1000000.00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeChargeValue(tt.value))
		})
	}
}

// The payload field names are the PSP's wire contract; renaming any of
// them breaks charge creation.
func TestPixChargePayload_WireFormat(t *testing.T) {
	payload := PixChargePayload{
		Calendar:    PixCalendar{Expiration: 3600},
		Debtor:      PixDebtor{CPF: "77777777777", Name: "Fulano de Tal"},
		Value:       PixValue{Original: "123.45"},
		Key:         "k@pix",
		RequestType: "Cobrança",
	}

	b, err := json.Marshal(payload)
	assert.NoError(t, err)
	assert.JSONEq(t, `{
		"calendario": {"expiracao": 3600},
		"devedor": {"cpf": "77777777777", "nome": "Fulano de Tal"},
		"valor": {"original": "123.45"},
		"chave": "k@pix",
		"solicitacaoPagador": "Cobrança"
	}`, string(b))
}
