package validators

import (
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/go-chi/chi/v5"

	"github.com/angelmondragon/kitchenboard/pkg/enums"
	pkgerrors "github.com/angelmondragon/kitchenboard/pkg/errors"
)

// Length limits for identifiers taken from URLs. Group keys embed a table number and a phone.
const (
	MaxIDLength       = 64
	MaxGroupKeyLength = 255
)

// SanitizeString trims input and truncates it to maxLen bytes without splitting a rune.
func SanitizeString(input string, maxLen int) string {
	trimmed := strings.TrimSpace(input)
	if maxLen <= 0 || len(trimmed) <= maxLen {
		return trimmed
	}
	cut := trimmed[:maxLen]
	for !utf8.ValidString(cut) {
		cut = cut[:len(cut)-1]
	}
	return cut
}

// PathParam returns a required chi URL parameter, decoded and within maxLen bytes.
// chi matches on RawPath when the request carried escapes such as %2F, so those values arrive
// still encoded.
func PathParam(r *http.Request, name string, maxLen int) (string, error) {
	value := chi.URLParam(r, name)
	if r.URL != nil && r.URL.RawPath != "" {
		decoded, err := url.PathUnescape(value)
		if err != nil {
			return "", pkgerrors.Wrap(pkgerrors.CodeValidation, err, name+" is not a valid path segment").
				WithDetails(map[string]any{"field": name})
		}
		value = decoded
	}
	value = strings.TrimSpace(value)
	if value == "" {
		return "", pkgerrors.Newf(pkgerrors.CodeValidation, "%s is required", name).
			WithDetails(map[string]any{"field": name})
	}
	if maxLen > 0 && len(value) > maxLen {
		return "", pkgerrors.Newf(pkgerrors.CodeValidation, "%s is too long", name).
			WithDetails(map[string]any{"field": name, "max": maxLen})
	}
	return value, nil
}

// QueryString returns a trimmed, bounded query value; missing keys yield "".
func QueryString(r *http.Request, key string, maxLen int) string {
	return SanitizeString(r.URL.Query().Get(key), maxLen)
}

func ParseQueryInt(r *http.Request, key string, defaultVal, min, max int) (int, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(key))
	if raw == "" {
		return defaultVal, nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, pkgerrors.New(pkgerrors.CodeValidation, "query parameter must be numeric").
			WithDetails(map[string]any{"field": key})
	}
	if value < min || value > max {
		return 0, pkgerrors.New(pkgerrors.CodeValidation, "query parameter out of range").
			WithDetails(map[string]any{"field": key, "min": min, "max": max})
	}
	return value, nil
}

// ParseQueryStatus reads an optional order status filter.
func ParseQueryStatus(r *http.Request, key string) (*enums.OrderStatus, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(key))
	if raw == "" {
		return nil, nil
	}
	status, err := enums.ParseOrderStatus(raw)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid status filter").
			WithDetails(map[string]any{"field": key, "allowed": enums.OrderStatusNames()})
	}
	return &status, nil
}
