package mineru

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
)

// classifyResponse drains and closes the body of a non-success response and
// turns it into an *Error. Unreadable or malformed bodies only reduce the
// detail of the result, they never fail classification.
func classifyResponse(resp *http.Response) *Error {
	defer resp.Body.Close()

	data, _ := io.ReadAll(resp.Body)

	result := &Error{
		StatusCode: resp.StatusCode,
		Message:    statusMessage(resp.StatusCode),

		Body: string(data),
	}

	if resp.StatusCode == http.StatusUnprocessableEntity {
		result.ValidationErrors = parseValidationErrors(data)
	}

	return result
}

type validationDetail struct {
	Loc  []any  `json:"loc"`
	Msg  string `json:"msg"`
	Type string `json:"type"`
}

func parseValidationErrors(data []byte) []ValidationError {
	var body struct {
		Detail json.RawMessage `json:"detail"`
	}

	if err := json.Unmarshal(data, &body); err != nil {
		return nil
	}

	detail := bytes.TrimSpace(body.Detail)

	if len(detail) == 0 || detail[0] != '[' {
		return nil
	}

	dec := json.NewDecoder(bytes.NewReader(detail))
	dec.UseNumber()

	var items []validationDetail

	if err := dec.Decode(&items); err != nil {
		return nil
	}

	result := make([]ValidationError, 0, len(items))

	for _, item := range items {
		result = append(result, ValidationError{
			Location: convertLocation(item.Loc),

			Message: item.Msg,
			Type:    item.Type,
		})
	}

	return result
}

func convertLocation(loc []any) []any {
	result := make([]any, 0, len(loc))

	for _, segment := range loc {
		switch v := segment.(type) {
		case string:
			result = append(result, v)

		case json.Number:
			if i, err := v.Int64(); err == nil {
				result = append(result, int(i))
			}
		}
	}

	return result
}
