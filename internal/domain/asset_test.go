package domain_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mtlprog/taskboard/internal/domain"
)

func TestRawAsset_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name string
		body string
		kind domain.RawAssetKind
	}{
		{"string", `"file.txt"`, domain.RawAssetText},
		{"object", `{"name": "file.txt"}`, domain.RawAssetRecord},
		{"empty object", `{}`, domain.RawAssetRecord},
		{"null", `null`, domain.RawAssetUnknown},
		{"number", `12`, domain.RawAssetUnknown},
		{"array", `["x"]`, domain.RawAssetUnknown},
		{"bool", `false`, domain.RawAssetUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var r domain.RawAsset
			require.NoError(t, json.Unmarshal([]byte(tt.body), &r))
			assert.Equal(t, tt.kind, r.Kind)
		})
	}
}

func TestRawAsset_RecordFieldsOfWrongTypeAreDropped(t *testing.T) {
	var r domain.RawAsset
	require.NoError(t, json.Unmarshal([]byte(`{"name": 5, "size": "big", "type": "text/plain", "lastModified": 99}`), &r))

	assert.Equal(t, domain.RawAssetRecord, r.Kind)
	assert.Nil(t, r.Name)
	assert.Nil(t, r.Size)
	require.NotNil(t, r.Type)
	assert.Equal(t, "text/plain", *r.Type)
	require.NotNil(t, r.LastModified)
	assert.Equal(t, float64(99), *r.LastModified)
}

func TestParseStageAndPriority(t *testing.T) {
	stage, err := domain.ParseStage("IN PROGRESS")
	require.NoError(t, err)
	assert.Equal(t, domain.StageInProgress, stage)

	_, err = domain.ParseStage("blocked")
	assert.ErrorIs(t, err, domain.ErrInvalidStage)

	priority, err := domain.ParsePriority("High")
	require.NoError(t, err)
	assert.Equal(t, domain.PriorityHigh, priority)

	_, err = domain.ParsePriority("")
	assert.ErrorIs(t, err, domain.ErrInvalidPriority)
}

func TestKindOf(t *testing.T) {
	kind, ok := domain.KindOf(domain.ErrTaskNotFound)
	assert.True(t, ok)
	assert.Equal(t, domain.KindNotFound, kind)

	_, ok = domain.KindOf(assert.AnError)
	assert.False(t, ok)
}

func TestCaller_ActorID(t *testing.T) {
	var anonymous *domain.Caller
	assert.Equal(t, domain.AnonymousUserID, anonymous.ActorID())
	assert.Equal(t, "u1", (&domain.Caller{UserID: "u1"}).ActorID())
}

func TestRawAssets_NonArrayDecodesEmpty(t *testing.T) {
	tests := []struct {
		name string
		body string
		want int
	}{
		{"array", `["a.pdf", {"name": "b"}, 3]`, 3},
		{"empty array", `[]`, 0},
		{"string", `"x.pdf"`, 0},
		{"object", `{"name": "x.pdf"}`, 0},
		{"number", `7`, 0},
		{"null", `null`, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var body struct {
				Assets domain.RawAssets `json:"assets"`
			}
			require.NoError(t, json.Unmarshal([]byte(`{"assets": `+tt.body+`}`), &body))
			assert.NotNil(t, body.Assets)
			assert.Len(t, body.Assets, tt.want)
		})
	}
}
