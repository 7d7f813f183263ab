package types

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTime(t *testing.T) {
	parsed, err := time.Parse(time.RFC3339Nano, "2006-01-02T15:04:05.999Z")
	assert.Nil(t, err)
	t1 := NewTime(parsed)
	s, err := json.Marshal(t1)
	assert.Nil(t, err)
	assert.EqualValues(t, "1136214245999", string(s))

	var t2 Time
	assert.Nil(t, json.Unmarshal([]byte("1136214245999"), &t2))
	assert.True(t, t1.Equal(t2))
}

func TestTimeZero(t *testing.T) {
	var t1 Time
	s, err := json.Marshal(t1)
	assert.Nil(t, err)
	assert.EqualValues(t, "0", string(s))
}
