package entities

import (
	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// fields maps JSON keys to decode targets
type fields map[string]interface{}

// decodeObject decodes each known key of a JSON object into its target.
// A value of the wrong shape leaves its target at the zero value and
// never fails the object. Anything but an object leaves every target
// untouched.
func decodeObject(data []byte, targets fields) {
	var obj map[string]jsoniter.RawMessage
	if err := json.Unmarshal(data, &obj); err != nil {
		return
	}
	for key, target := range targets {
		raw, ok := obj[key]
		if !ok {
			continue
		}
		_ = json.Unmarshal(raw, target)
	}
}

// IsObject reports whether data holds a JSON object
func IsObject(data []byte) bool {
	for _, c := range data {
		switch c {
		case ' ', '\t', '\r', '\n':
			continue
		case '{':
			return true
		default:
			return false
		}
	}
	return false
}
