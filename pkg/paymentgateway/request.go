package paymentgateway

import (
	"net/url"

	"github.com/shopspring/decimal"
)

type Customer struct {
	FirstName string
	LastName  string
	Email     string
	Mobile    string
}

type CheckoutRequest struct {
	Identifier    string
	Currency      string
	Amount        decimal.Decimal
	Details       string
	IPNURL        string
	SuccessURL    string
	CancelURL     string
	SiteName      string
	SiteLogo      string
	CheckoutTheme string
	Customer      Customer
}

func (r CheckoutRequest) form(cfg Config) url.Values {
	form := url.Values{}
	form.Set("public_key", cfg.PublicKey)
	form.Set("secret_key", cfg.SecretKey)
	form.Set("identifier", r.Identifier)
	form.Set("currency", r.Currency)
	form.Set("amount", r.Amount.StringFixed(2))
	form.Set("details", r.Details)
	form.Set("ipn_url", r.IPNURL)
	form.Set("success_url", r.SuccessURL)
	form.Set("cancel_url", r.CancelURL)
	form.Set("site_name", r.SiteName)
	form.Set("site_logo", r.SiteLogo)
	form.Set("checkout_theme", r.CheckoutTheme)
	form.Set("customer[first_name]", r.Customer.FirstName)
	form.Set("customer[last_name]", r.Customer.LastName)
	form.Set("customer[email]", r.Customer.Email)
	form.Set("customer[mobile]", r.Customer.Mobile)
	return form
}
