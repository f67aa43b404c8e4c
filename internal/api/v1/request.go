package v1

import (
	"bytes"
	"encoding/json"
)

type InitiatePaymentRequest struct {
	Amount    json.RawMessage `json:"amount"`
	OriginURL string          `json:"origin_url" validate:"required,origin_url"`
}

// AmountText returns the amount as sent, whether it was a JSON number or a
// string. Range and format checks belong to the payment service.
func (r InitiatePaymentRequest) AmountText() string {
	raw := bytes.TrimSpace(r.Amount)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return ""
	}

	var text string
	if err := json.Unmarshal(raw, &text); err == nil {
		return text
	}

	return string(raw)
}
