package validator

import (
	"net/url"

	"github.com/go-playground/validator/v10"
)

const (
	OriginURLTag = "origin_url"
)

var valid = map[string]func(fl validator.FieldLevel) bool{
	OriginURLTag: ValidateOriginURL,
}

// ValidateOriginURL accepts absolute http(s) URLs with a host.
func ValidateOriginURL(fl validator.FieldLevel) bool {
	parsed, err := url.Parse(fl.Field().String())
	if err != nil {
		return false
	}

	return (parsed.Scheme == "http" || parsed.Scheme == "https") && parsed.Host != ""
}
