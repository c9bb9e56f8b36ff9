package probe

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
)

// verify checks a response against the record's expected outcome.
func verify(rec Record, status int, body []byte) error {
	if rec.Valid {
		if status != http.StatusOK {
			return fmt.Errorf("valid record answered with %d: %s", status, strings.TrimSpace(string(body)))
		}
		var res Result
		if err := json.Unmarshal(body, &res); err != nil {
			return fmt.Errorf("decode prediction: %w", err)
		}
		if res.Salary <= 0 {
			return fmt.Errorf("non-positive salary %v", res.Salary)
		}
		if !strings.HasPrefix(res.Formatted, "Rp ") {
			return fmt.Errorf("unexpected salary format %q", res.Formatted)
		}
		return nil
	}

	if status != http.StatusBadRequest {
		return fmt.Errorf("%s: expected 400, got %d", rec.Reason, status)
	}
	var eb errorBody
	if err := json.Unmarshal(body, &eb); err != nil || eb.Code == "" {
		return fmt.Errorf("%s: missing error code in %q", rec.Reason, strings.TrimSpace(string(body)))
	}
	return nil
}
