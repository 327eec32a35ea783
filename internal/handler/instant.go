package handler

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"
)

// Instant is a departure time on the wire. It accepts an RFC 3339 string or
// epoch milliseconds and always encodes as RFC 3339 in UTC.
type Instant struct {
	time.Time
}

func (i *Instant) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		i.Time = time.Time{}
		return nil
	}

	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		if s == "" {
			i.Time = time.Time{}
			return nil
		}
		t, err := time.Parse(time.RFC3339Nano, s)
		if err != nil {
			return fmt.Errorf("invalid time %q: %w", s, err)
		}
		i.Time = t.UTC()
		return nil
	}

	var ms json.Number
	if err := json.Unmarshal(data, &ms); err != nil {
		return fmt.Errorf("invalid time %s", data)
	}
	n, err := ms.Int64()
	if err != nil {
		return fmt.Errorf("invalid epoch milliseconds %s", data)
	}
	i.Time = time.UnixMilli(n).UTC()
	return nil
}

func (i Instant) MarshalJSON() ([]byte, error) {
	return json.Marshal(i.Time.UTC().Format(time.RFC3339Nano))
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339Nano)
}
