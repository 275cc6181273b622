package handler

import (
	"bytes"
	"encoding/json"
)

// NullableID is an optional, nullable ID in a request body. Set reports
// whether the field was present at all; Value is nil when it was sent as null.
type NullableID struct {
	Set   bool
	Value *uint
}

func (n *NullableID) UnmarshalJSON(data []byte) error {
	n.Set = true
	if bytes.Equal(data, []byte("null")) {
		n.Value = nil
		return nil
	}

	var id uint
	if err := json.Unmarshal(data, &id); err != nil {
		return err
	}
	n.Value = &id
	return nil
}
