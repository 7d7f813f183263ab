package masking

import (
	"encoding/json"
	"fmt"
)

const mask = "*****"

// Secret holds a sensitive string. Its printed representation is always
// masked; the raw value is reachable only through Expose. JSON encoding
// carries the plaintext so API responses can return the content.
type Secret struct {
	value string
}

func NewSecret(value string) Secret {
	return Secret{value: value}
}

func (s Secret) Expose() string {
	return s.value
}

func (s Secret) String() string {
	return mask
}

func (s Secret) GoString() string {
	return mask
}

func (s Secret) Format(f fmt.State, verb rune) {
	_, _ = f.Write([]byte(mask))
}

func (s Secret) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.value)
}

func (s *Secret) UnmarshalJSON(b []byte) error {
	return json.Unmarshal(b, &s.value)
}

// Header is a single header name/value pair. The value is sensitive.
type Header struct {
	Name  string
	Value Secret
}

func (h Header) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]string{h.Name, h.Value.Expose()})
}

func (h *Header) UnmarshalJSON(b []byte) error {
	var pair [2]string
	if err := json.Unmarshal(b, &pair); err != nil {
		return err
	}
	h.Name = pair[0]
	h.Value = NewSecret(pair[1])
	return nil
}

// Headers is an ordered list of header pairs, serialized as two-element
// arrays: [["content-type", "application/json"], ...]
type Headers []Header

func (hs Headers) Map() map[string]string {
	m := make(map[string]string, len(hs))
	for _, h := range hs {
		m[h.Name] = h.Value.Expose()
	}
	return m
}
