package apperrors

import (
	"errors"
	"fmt"
	"net/http"
	"sort"
	"strings"
)

// FieldMessage maps a field name found in a 400 payload to a readable message.
type FieldMessage struct {
	Fields  []string
	Message string
}

// MessagePolicy turns an error from a flow into the single string shown to the user.
// Each flow carries its own policy so the wording matches the screen it belongs to.
type MessagePolicy struct {
	SessionExpired string
	Network        string
	Unexpected     string
	// Fallback is used for 400 replies nothing else matched.
	Fallback string
	// Fields are checked in order before MessageKeys.
	Fields []FieldMessage
	// MessageKeys are payload keys whose string value is shown as is, e.g. "error".
	MessageKeys []string
	// LateFields are checked after MessageKeys.
	LateFields []FieldMessage
	// JoinValues joins every payload value with " | " when no key matched.
	JoinValues bool
	// AnyStatusKeys applies MessageKeys to every non-2xx status, not only 400.
	AnyStatusKeys bool
}

// DefaultPolicy is the wording used by the deposit screens.
var DefaultPolicy = MessagePolicy{
	SessionExpired: "Session expired. Please login again.",
	Network:        "Network error. Please check your connection.",
	Unexpected:     "An unexpected error occurred. Please try again.",
	Fallback:       "API failed. Please check your data.",
	Fields: []FieldMessage{
		{Fields: []string{"transaction_id"}, Message: "This transaction ID already exists or is invalid."},
	},
	MessageKeys: []string{"error"},
	LateFields: []FieldMessage{
		{Fields: []string{"bank_name", "account_owner", "amount"}, Message: "Please check all fields. Some input is invalid."},
	},
}

// Describe picks the message for err. Validation errors raised locally carry their own text.
func (p MessagePolicy) Describe(err error) string {
	if err == nil {
		return ""
	}

	if apiErr, ok := AsAPIError(err); ok {
		return p.describeAPIError(apiErr)
	}

	switch {
	case errors.Is(err, ErrUnauthorized):
		return p.SessionExpired
	case errors.Is(err, ErrNetwork):
		return p.Network
	case errors.Is(err, ErrValidation):
		return ValidationMessage(err)
	}
	return p.Unexpected
}

func (p MessagePolicy) describeAPIError(apiErr *APIError) string {
	if apiErr.Status == http.StatusUnauthorized {
		if p.AnyStatusKeys {
			if msg := p.keyMessage(apiErr.Payload); msg != "" {
				return msg
			}
		}
		return p.SessionExpired
	}

	if apiErr.Status != http.StatusBadRequest && !p.AnyStatusKeys {
		return p.Unexpected
	}

	if msg := fieldMessage(p.Fields, apiErr.Payload); msg != "" {
		return msg
	}

	if msg := p.keyMessage(apiErr.Payload); msg != "" {
		return msg
	}

	if msg := fieldMessage(p.LateFields, apiErr.Payload); msg != "" {
		return msg
	}

	if p.JoinValues && len(apiErr.Payload) > 0 {
		return joinPayloadValues(apiErr.Payload)
	}

	return p.Fallback
}

func (p MessagePolicy) keyMessage(payload map[string]any) string {
	for _, key := range p.MessageKeys {
		if v, ok := payload[key]; ok {
			if s := flatten(v); s != "" {
				return s
			}
		}
	}
	return ""
}

func fieldMessage(rules []FieldMessage, payload map[string]any) string {
	for _, fm := range rules {
		for _, f := range fm.Fields {
			if _, ok := payload[f]; ok {
				return fm.Message
			}
		}
	}
	return ""
}

// ValidationMessage strips the sentinel prefix from a locally raised validation error.
func ValidationMessage(err error) string {
	msg := err.Error()
	prefix := ErrValidation.Error() + ": "
	if idx := strings.LastIndex(msg, prefix); idx >= 0 {
		return msg[idx+len(prefix):]
	}
	return msg
}

// Validationf builds an ErrValidation carrying a user facing message.
func Validationf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}

func joinPayloadValues(payload map[string]any) string {
	keys := make([]string, 0, len(payload))
	for k := range payload {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		if s := flatten(payload[k]); s != "" {
			parts = append(parts, s)
		}
	}
	return strings.Join(parts, " | ")
}

func flatten(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case []any:
		parts := make([]string, 0, len(t))
		for _, item := range t {
			if s := flatten(item); s != "" {
				parts = append(parts, s)
			}
		}
		return strings.Join(parts, " | ")
	case nil:
		return ""
	default:
		return fmt.Sprint(t)
	}
}
