package core

// Attribute is a key/value pair attached to an acknowledgement
type Attribute struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// Response acknowledges a successful contract call. It is returned to the
// caller and logged by the host, never persisted as contract state.
type Response struct {
	Attributes []Attribute `json:"attributes"`
}

// NewResponse returns an empty acknowledgement
func NewResponse() *Response {
	return &Response{Attributes: []Attribute{}}
}

// AddAttribute appends an attribute and returns the response for chaining
func (r *Response) AddAttribute(key, value string) *Response {
	r.Attributes = append(r.Attributes, Attribute{Key: key, Value: value})
	return r
}

// Attribute returns the first value stored under key
func (r *Response) Attribute(key string) (string, bool) {
	for _, attr := range r.Attributes {
		if attr.Key == key {
			return attr.Value, true
		}
	}
	return "", false
}

// KeyValues flattens the attributes into slog-style alternating key/value pairs
func (r *Response) KeyValues() []any {
	kv := make([]any, 0, len(r.Attributes)*2)
	for _, attr := range r.Attributes {
		kv = append(kv, attr.Key, attr.Value)
	}
	return kv
}
