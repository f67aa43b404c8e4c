package service

import (
	"bytes"
	"encoding/json"
	"fmt"
	"mime"
	"net/url"
	"strconv"
	"strings"

	"github.com/Behyna/storefront-payments/internal/model"
	"gorm.io/datatypes"
)

type StatusBucket string

const (
	BucketSuccess       StatusBucket = "success"
	BucketFailure       StatusBucket = "failure"
	BucketIndeterminate StatusBucket = "indeterminate"
)

type payloadFormat int

const (
	formatUnknown payloadFormat = iota
	formatJSON
	formatForm
)

// Gateways disagree on field names; the first non-empty alias wins.
var (
	identifierAliases    = []string{"identifier", "payment_id"}
	statusAliases        = []string{"status", "payment_status"}
	transactionIDAliases = []string{"transaction_id", "trx_id", "api_transaction_id"}
	gatewayAliases       = []string{"gateway", "payment_gateway", "method"}
)

type Notification struct {
	Identifier    string
	Status        string
	TransactionID string
	Gateway       string
	Fields        map[string]string
}

// Raw is the normalized payload as stored on the transaction row.
func (n Notification) Raw() datatypes.JSON {
	raw, err := json.Marshal(n.Fields)
	if err != nil {
		return nil
	}
	return datatypes.JSON(raw)
}

// Bucket lower-cases the reported status and sorts it into the three
// outcomes the ledger understands, with the terminal status to record.
func (n Notification) Bucket() (StatusBucket, model.PaymentStatus) {
	switch strings.ToLower(strings.TrimSpace(n.Status)) {
	case "completed", "success", "paid":
		return BucketSuccess, model.PaymentStatusCompleted
	case "failed":
		return BucketFailure, model.PaymentStatusFailed
	case "cancelled", "canceled":
		return BucketFailure, model.PaymentStatusCancelled
	default:
		return BucketIndeterminate, ""
	}
}

// ParseNotification decodes a gateway callback body. The declared content
// type is tried first; unless strict, JSON and then URL encoding are tried
// as fallbacks.
func ParseNotification(body []byte, contentType string, strict bool) (Notification, error) {
	declared := detectFormat(contentType)

	var (
		fields map[string]string
		err    error
	)

	switch {
	case declared != formatUnknown:
		fields, err = decodeAs(declared, body)
		if err != nil && !strict {
			fields, err = decodeFallback(body)
		}
	case strict:
		err = fmt.Errorf("unsupported content type %q", contentType)
	default:
		fields, err = decodeFallback(body)
	}

	if err != nil {
		return Notification{}, fmt.Errorf("%w: %v", ErrInvalidPayload, err)
	}

	return Notification{
		Identifier:    firstOf(fields, identifierAliases),
		Status:        firstOf(fields, statusAliases),
		TransactionID: firstOf(fields, transactionIDAliases),
		Gateway:       firstOf(fields, gatewayAliases),
		Fields:        fields,
	}, nil
}

func detectFormat(contentType string) payloadFormat {
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return formatUnknown
	}

	switch {
	case mediaType == "application/json", strings.HasSuffix(mediaType, "+json"):
		return formatJSON
	case mediaType == "application/x-www-form-urlencoded":
		return formatForm
	default:
		return formatUnknown
	}
}

func decodeAs(format payloadFormat, body []byte) (map[string]string, error) {
	if format == formatJSON {
		return decodeJSON(body)
	}
	return decodeForm(body)
}

func decodeFallback(body []byte) (map[string]string, error) {
	if fields, err := decodeJSON(body); err == nil {
		return fields, nil
	}
	return decodeForm(body)
}

func decodeJSON(body []byte) (map[string]string, error) {
	decoder := json.NewDecoder(bytes.NewReader(body))
	decoder.UseNumber()

	var payload map[string]any
	if err := decoder.Decode(&payload); err != nil {
		return nil, err
	}
	if payload == nil {
		return nil, fmt.Errorf("empty json object")
	}

	fields := make(map[string]string, len(payload))
	for key, value := range payload {
		switch v := value.(type) {
		case nil:
			fields[key] = ""
		case string:
			fields[key] = v
		case json.Number:
			fields[key] = v.String()
		case bool:
			fields[key] = strconv.FormatBool(v)
		default:
			nested, err := json.Marshal(v)
			if err != nil {
				return nil, err
			}
			fields[key] = string(nested)
		}
	}

	return fields, nil
}

func decodeForm(body []byte) (map[string]string, error) {
	trimmed := strings.TrimSpace(string(body))
	if trimmed == "" {
		return nil, fmt.Errorf("empty body")
	}
	if !strings.Contains(trimmed, "=") {
		return nil, fmt.Errorf("body is not url-encoded")
	}

	values, err := url.ParseQuery(trimmed)
	if err != nil {
		return nil, err
	}

	fields := make(map[string]string, len(values))
	for key := range values {
		fields[key] = values.Get(key)
	}

	return fields, nil
}

func firstOf(fields map[string]string, aliases []string) string {
	for _, alias := range aliases {
		if v := strings.TrimSpace(fields[alias]); v != "" {
			return v
		}
	}
	return ""
}
