package model

import (
	"encoding/json"
	"fmt"
	"mime"
	"net/http"
	"strconv"
)

// Response is the raw result of a network request, as handed to the model by
// a Source. Body is fully read; the model may decode it more than once.
type Response struct {
	StatusCode int
	Header     http.Header
	Body       []byte
}

// ContentType returns the media type from the Content-Type header, without
// parameters, or "" if it cannot be determined.
func (r *Response) ContentType() string {
	ct := r.Header.Get("Content-Type")
	if ct == "" {
		return ""
	}
	mediaType, _, err := mime.ParseMediaType(ct)
	if err != nil {
		return ""
	}
	return mediaType
}

// Charset returns the charset parameter of the Content-Type header, or def
// if it cannot be determined.
func (r *Response) Charset(def string) string {
	ct := r.Header.Get("Content-Type")
	if ct == "" {
		return def
	}
	_, params, err := mime.ParseMediaType(ct)
	if err != nil {
		return def
	}
	if cs, ok := params["charset"]; ok && cs != "" {
		return cs
	}
	return def
}

// IntHeader parses the named header as an integer
func (r *Response) IntHeader(name string) (int, bool) {
	v := r.Header.Get(name)
	if v == "" {
		return 0, false
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, false
	}
	return n, true
}

// decodeListJSON is the default list decoder: a JSON array of objects, or a
// single object which is treated as a one-element list.
func decodeListJSON(resp *Response) ([]map[string]any, error) {
	if len(resp.Body) == 0 {
		return nil, fmt.Errorf("empty response body")
	}
	var list []map[string]any
	if err := json.Unmarshal(resp.Body, &list); err == nil {
		return list, nil
	}
	var obj map[string]any
	if err := json.Unmarshal(resp.Body, &obj); err != nil {
		return nil, fmt.Errorf("decode item list: %w", err)
	}
	return []map[string]any{obj}, nil
}

// decodeObjectJSON is the default object decoder used for detail data
func decodeObjectJSON(resp *Response) (map[string]any, error) {
	if len(resp.Body) == 0 {
		return nil, fmt.Errorf("empty response body")
	}
	var obj map[string]any
	if err := json.Unmarshal(resp.Body, &obj); err != nil {
		return nil, fmt.Errorf("decode item details: %w", err)
	}
	return obj, nil
}
