package testutil

import (
	"encoding/json"
	"testing"

	"github.com/m-mizutani/gt"
)

func Transcode(t *testing.T, dst, src any) {
	t.Helper()

	raw := gt.R1(json.Marshal(src)).NoError(t)
	gt.NoError(t, json.Unmarshal(raw, dst))
}

// ToMap returns the JSON object representation of src.
func ToMap(t *testing.T, src any) map[string]any {
	t.Helper()

	var data map[string]any
	Transcode(t, &data, src)
	return data
}
