package validators

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
)

// FlexInt64 accepts a JSON number or a numeric JSON string. HTML forms tend
// to submit select values as strings, so product references arrive both ways.
type FlexInt64 int64

func (f *FlexInt64) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 1 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		v, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
		if err != nil {
			return err
		}
		*f = FlexInt64(v)
		return nil
	}
	var v int64
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*f = FlexInt64(v)
	return nil
}

func (f FlexInt64) Int64() int64 {
	return int64(f)
}
