package forge

import (
	"encoding/json"
	"strings"

	perr "codescout/internal/platform/errors"
)

// apiErrorBody covers the error payload shapes the upstream has been seen
// returning: a nested error object, a flat message, or an errors array
type apiErrorBody struct {
	Error *struct {
		Message string            `json:"message"`
		Detail  string            `json:"detail"`
		Fields  map[string]string `json:"fields"`
	} `json:"error"`
	Message string `json:"message"`
	Errors  []struct {
		Message string `json:"message"`
	} `json:"errors"`
}

// vendorMessage extracts the most specific human message from an error body
// returns "" when nothing parseable is present
func vendorMessage(body []byte) string {
	var b apiErrorBody
	if err := json.Unmarshal(body, &b); err != nil {
		return ""
	}
	if b.Error != nil && b.Error.Message != "" {
		if b.Error.Detail != "" {
			return b.Error.Message + ": " + b.Error.Detail
		}
		return b.Error.Message
	}
	if b.Message != "" {
		return b.Message
	}
	if len(b.Errors) > 0 && b.Errors[0].Message != "" {
		return b.Errors[0].Message
	}
	return ""
}

// classifyStatus maps an upstream non-200 into a coded platform error
// pagination-shaped 400s become invalid cursor so callers can tell a stale
// token apart from a bad query
func classifyStatus(status int, body []byte, path string) error {
	msg := vendorMessage(body)
	if msg == "" {
		msg = "forge returned status"
	}

	switch {
	case status == 400:
		if isCursorComplaint(msg) {
			return perr.InvalidCursorf("forge rejected pagination token for %s: %s", path, msg)
		}
		return perr.Validationf("forge rejected request for %s: %s", path, msg)
	case status == 401:
		return perr.Unauthorizedf("forge credentials rejected for %s: %s", path, msg)
	case status == 403:
		return perr.Forbiddenf("forge denied access to %s: %s", path, msg)
	case status == 404:
		return perr.NotFoundf("forge resource missing at %s: %s", path, msg)
	case status == 429:
		return perr.TooManyRequestsf("forge rate limited %s: %s", path, msg)
	case status >= 500:
		return perr.Unavailablef("forge upstream error %d for %s: %s", status, path, msg)
	default:
		return perr.Internalf("forge unexpected status %d for %s: %s", status, path, msg)
	}
}

// isCursorComplaint sniffs whether a 400 message is about pagination rather
// than the query itself
func isCursorComplaint(msg string) bool {
	m := strings.ToLower(msg)
	for _, kw := range []string{"cursor", "page token", "pagination token", "invalid page", "ctx parameter"} {
		if strings.Contains(m, kw) {
			return true
		}
	}
	return false
}
