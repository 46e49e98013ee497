package mineru

import (
	"bytes"
	"encoding/json"
	"errors"
	"iter"
)

// ResponseBody is the JSON document returned for non-archive responses.
type ResponseBody struct {
	Backend string `json:"backend"`
	Version string `json:"version"`

	Results Results `json:"results"`
}

// FileResult holds the outputs for one submitted file. Empty fields were not
// requested.
type FileResult struct {
	Markdown string `json:"md_content,omitempty"`

	MiddleJSON  json.RawMessage `json:"middle_json,omitempty"`
	ModelOutput json.RawMessage `json:"model_output,omitempty"`
	ContentList json.RawMessage `json:"content_list,omitempty"`

	// Images maps image file names to base64 data URIs.
	Images map[string]string `json:"images,omitempty"`
}

// Results maps file keys ("file0", "file1", ...) to their results and keeps
// the order in which the service sent them.
type Results struct {
	keys   []string
	values map[string]FileResult
}

func (r *Results) Set(key string, value FileResult) {
	if r.values == nil {
		r.values = make(map[string]FileResult)
	}

	if _, ok := r.values[key]; !ok {
		r.keys = append(r.keys, key)
	}

	r.values[key] = value
}

func (r Results) Len() int {
	return len(r.keys)
}

func (r Results) Keys() []string {
	return append([]string(nil), r.keys...)
}

func (r Results) Get(key string) (FileResult, bool) {
	v, ok := r.values[key]
	return v, ok
}

// First returns the earliest entry in wire order.
func (r Results) First() (string, FileResult, bool) {
	if len(r.keys) == 0 {
		return "", FileResult{}, false
	}

	key := r.keys[0]
	return key, r.values[key], true
}

func (r Results) All() iter.Seq2[string, FileResult] {
	return func(yield func(string, FileResult) bool) {
		for _, key := range r.keys {
			if !yield(key, r.values[key]) {
				return
			}
		}
	}
}

func (r *Results) UnmarshalJSON(data []byte) error {
	*r = Results{}

	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		return nil
	}

	dec := json.NewDecoder(bytes.NewReader(data))

	tok, err := dec.Token()

	if err != nil {
		return err
	}

	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return errors.New("results: expected object")
	}

	for dec.More() {
		tok, err := dec.Token()

		if err != nil {
			return err
		}

		key, ok := tok.(string)

		if !ok {
			return errors.New("results: expected key")
		}

		var value FileResult

		if err := dec.Decode(&value); err != nil {
			return err
		}

		r.Set(key, value)
	}

	_, err = dec.Token()
	return err
}

func (r Results) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteByte('{')

	for i, key := range r.keys {
		if i > 0 {
			buf.WriteByte(',')
		}

		k, err := json.Marshal(key)

		if err != nil {
			return nil, err
		}

		v, err := json.Marshal(r.values[key])

		if err != nil {
			return nil, err
		}

		buf.Write(k)
		buf.WriteByte(':')
		buf.Write(v)
	}

	buf.WriteByte('}')

	return buf.Bytes(), nil
}
