package transport

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"strconv"

	"github.com/wirecall/wirecall/internal/domain"
)

// RawInput is a call input before transformer decoding. It is an explicit
// tri-state: absent (Present false), present-null (Present true, Value nil),
// or present-value. "Not provided" is never conflated with JSON null.
type RawInput struct {
	Present bool
	Value   any
}

// absentInput is the shared sentinel for calls that carry no input.
var absentInput = RawInput{}

// extractRawInput pulls the still-encoded input out of the request. Query
// kind reads the "input" query parameter; every other kind parses the body.
// Extraction happens once per request, before batch splitting.
func extractRawInput(r *http.Request, kind domain.ProcedureKind) (RawInput, *domain.Error) {
	if kind == domain.KindQuery {
		q := r.URL.Query()
		if !q.Has("input") {
			return absentInput, nil
		}
		return parseJSONInput([]byte(q.Get("input")))
	}

	body, err := io.ReadAll(r.Body)
	if err != nil {
		return absentInput, domain.ErrParse(err)
	}
	if len(bytes.TrimSpace(body)) == 0 {
		return absentInput, nil
	}
	return parseJSONInput(body)
}

func parseJSONInput(raw []byte) (RawInput, *domain.Error) {
	var value any
	if err := json.Unmarshal(raw, &value); err != nil {
		return absentInput, domain.ErrParse(err)
	}
	return RawInput{Present: true, Value: value}, nil
}

// splitBatchInput reinterprets the request-level RawInput as an index-keyed
// mapping and returns one RawInput per path, in path order. The mapping must
// be a JSON object whose keys are decimal strings parsing to non-negative
// indexes; anything else rejects the whole request.
func splitBatchInput(raw RawInput, n int) ([]RawInput, *domain.Error) {
	inputs := make([]RawInput, n)
	if !raw.Present {
		return inputs, nil
	}

	indexed, ok := raw.Value.(map[string]any)
	if !ok || indexed == nil {
		return nil, domain.ErrBadRequest("input must be an object for batch calls")
	}
	for key := range indexed {
		idx, err := strconv.Atoi(key)
		if err != nil || idx < 0 {
			return nil, domain.ErrBadRequest("invalid batch input key: " + strconv.Quote(key))
		}
	}

	for i := 0; i < n; i++ {
		if value, ok := indexed[strconv.Itoa(i)]; ok {
			inputs[i] = RawInput{Present: true, Value: value}
		}
	}
	return inputs, nil
}
