package domain

import (
	"bytes"
	"encoding/json"
)

// Asset defaults applied when a field is missing or malformed.
const (
	DefaultAssetName = "Unknown file"
	DefaultAssetType = "application/octet-stream"
)

// Asset is the canonical metadata record of a file attached to a task.
// LastModified is expressed in Unix milliseconds.
type Asset struct {
	Name         string `json:"name" bson:"name"`
	Size         int64  `json:"size" bson:"size"`
	Type         string `json:"type" bson:"type"`
	LastModified int64  `json:"lastModified" bson:"lastModified"`
}

// RawAssetKind tells which shape an incoming asset value had.
type RawAssetKind int

const (
	RawAssetUnknown RawAssetKind = iota
	RawAssetText
	RawAssetRecord
)

// RawAsset is an asset value as received from a client or read from storage,
// before normalization. Text holds the legacy filename-only form; the pointer
// fields hold whichever record fields were present with a usable type.
type RawAsset struct {
	Kind         RawAssetKind
	Text         string
	Name         *string
	Size         *float64
	Type         *string
	LastModified *float64
}

// TextAsset builds the legacy filename-only form.
func TextAsset(name string) RawAsset {
	return RawAsset{Kind: RawAssetText, Text: name}
}

// RecordAsset lifts a normalized asset back into raw form.
func RecordAsset(a Asset) RawAsset {
	size := float64(a.Size)
	lastModified := float64(a.LastModified)
	return RawAsset{
		Kind:         RawAssetRecord,
		Name:         &a.Name,
		Size:         &size,
		Type:         &a.Type,
		LastModified: &lastModified,
	}
}

// UnmarshalJSON never fails: values that are neither strings nor objects
// decode as RawAssetUnknown, and record fields of the wrong type are dropped.
func (r *RawAsset) UnmarshalJSON(data []byte) error {
	*r = RawAsset{}

	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return nil
	}

	switch data[0] {
	case '"':
		var s string
		if err := json.Unmarshal(data, &s); err == nil {
			r.Kind = RawAssetText
			r.Text = s
		}
	case '{':
		var fields map[string]json.RawMessage
		if err := json.Unmarshal(data, &fields); err != nil {
			return nil
		}
		r.Kind = RawAssetRecord
		r.Name = jsonField[string](fields, "name")
		r.Size = jsonField[float64](fields, "size")
		r.Type = jsonField[string](fields, "type")
		r.LastModified = jsonField[float64](fields, "lastModified")
	}

	return nil
}

// RawAssets is an incoming asset list. A JSON value that is not an array,
// null included, decodes as an empty list.
type RawAssets []RawAsset

func (l *RawAssets) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || data[0] != '[' {
		*l = RawAssets{}
		return nil
	}

	var items []RawAsset
	if err := json.Unmarshal(data, &items); err != nil {
		return err
	}
	*l = items
	return nil
}

func jsonField[T any](fields map[string]json.RawMessage, key string) *T {
	raw, ok := fields[key]
	if !ok {
		return nil
	}
	var v T
	if err := json.Unmarshal(raw, &v); err != nil {
		return nil
	}
	return &v
}
