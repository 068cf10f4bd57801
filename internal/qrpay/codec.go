// Package qrpay translates between scanned QR payloads and payment intents.
// Three wire shapes are recognised: the cuzdanpay:// payment URI, a JSON
// object, and a bare phone number.
package qrpay

import (
	"encoding/json"
	"net/url"
	"regexp"
	"strconv"
	"strings"
)

// Scheme is the URI scheme carried by payment QR codes.
const Scheme = "cuzdanpay"

const uriPrefix = Scheme + "://pay"

// IntentType discriminates what a scanned code asks for.
type IntentType string

const (
	TypePayment IntentType = "payment"
	TypeContact IntentType = "contact"
)

// PaymentIntent is the transient result of parsing a scanned code. It is
// consumed by the transfer flow and never persisted.
type PaymentIntent struct {
	Type        IntentType `json:"type"`
	Recipient   string     `json:"recipient"`
	Amount      *float64   `json:"amount,omitempty"`
	Description string     `json:"description,omitempty"`
	Valid       bool       `json:"is_valid"`
}

// phonePattern matches a 10-digit local number with an optional leading
// zero or +country-code prefix.
var phonePattern = regexp.MustCompile(`^(\+\d{1,3}|0)?\d{10}$`)

// Parse decodes raw scanned text into a payment intent. It returns nil when
// the input matches none of the known shapes, and never panics on malformed
// input; Valid is false when no recipient could be extracted.
func Parse(raw string) *PaymentIntent {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return nil
	}

	switch {
	case strings.HasPrefix(trimmed, uriPrefix):
		return parseURI(trimmed)
	case strings.HasPrefix(trimmed, "{"):
		return parseJSON(trimmed)
	case phonePattern.MatchString(trimmed):
		return &PaymentIntent{Type: TypeContact, Recipient: trimmed, Valid: true}
	default:
		return nil
	}
}

// Generate encodes a payment request as the URI wire form. Amount and
// description are optional; the result round-trips through Parse.
func Generate(phone string, amount *float64, description string) string {
	params := url.Values{}
	params.Set("to", phone)
	if amount != nil {
		params.Set("amount", strconv.FormatFloat(*amount, 'f', -1, 64))
	}
	if description != "" {
		params.Set("desc", description)
	}
	return uriPrefix + "?" + params.Encode()
}

func parseURI(raw string) *PaymentIntent {
	parsed, err := url.Parse(raw)
	if err != nil {
		return nil
	}
	params, err := url.ParseQuery(parsed.RawQuery)
	if err != nil {
		return nil
	}

	intent := &PaymentIntent{
		Type:        TypePayment,
		Recipient:   params.Get("to"),
		Description: params.Get("desc"),
	}
	if v := params.Get("amount"); v != "" {
		if amount, err := strconv.ParseFloat(v, 64); err == nil {
			intent.Amount = &amount
		}
	}
	intent.Valid = intent.Recipient != ""
	return intent
}

func parseJSON(raw string) *PaymentIntent {
	var payload map[string]any
	if err := json.Unmarshal([]byte(raw), &payload); err != nil {
		return nil
	}

	intent := &PaymentIntent{
		Type:        TypePayment,
		Recipient:   firstString(payload, "recipient", "to", "phone"),
		Description: firstString(payload, "description", "desc"),
	}
	if t := firstString(payload, "type"); t == string(TypeContact) {
		intent.Type = TypeContact
	}
	if amount, ok := numberField(payload, "amount"); ok {
		intent.Amount = &amount
	}
	intent.Valid = intent.Recipient != ""
	return intent
}

// firstString returns the first present non-empty string among the aliases.
func firstString(payload map[string]any, keys ...string) string {
	for _, key := range keys {
		if v, ok := payload[key].(string); ok && v != "" {
			return v
		}
	}
	return ""
}

// numberField reads a JSON number or numeric string.
func numberField(payload map[string]any, key string) (float64, bool) {
	switch v := payload[key].(type) {
	case float64:
		return v, true
	case string:
		if parsed, err := strconv.ParseFloat(v, 64); err == nil {
			return parsed, true
		}
	}
	return 0, false
}
