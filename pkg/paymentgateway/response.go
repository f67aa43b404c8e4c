package paymentgateway

import (
	"encoding/json"
	"strings"
)

const StatusSuccess = "success"

type CheckoutResponse struct {
	Status      string   `json:"status"`
	RedirectURL string   `json:"redirect_url"`
	Message     Messages `json:"message"`

	// Raw is the undecoded response body, kept for audit.
	Raw []byte `json:"-"`
}

func (r CheckoutResponse) Succeeded() bool {
	return strings.EqualFold(r.Status, StatusSuccess) && r.RedirectURL != ""
}

// Messages accepts either a JSON string or an array of strings.
type Messages []string

func (m *Messages) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*m = nil
		return nil
	}

	var list []string
	if err := json.Unmarshal(data, &list); err == nil {
		*m = list
		return nil
	}

	var single string
	if err := json.Unmarshal(data, &single); err != nil {
		return err
	}

	*m = Messages{single}
	return nil
}

func (m Messages) String() string {
	return strings.Join(m, "; ")
}
