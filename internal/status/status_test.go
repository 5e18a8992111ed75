package status

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr(v int) *int { return &v }

func TestClassifyBan(t *testing.T) {
	tests := []struct {
		name string
		code *int
		want Classification
	}{
		{"confirmed cheater", ptr(1), Classification{"confirmed cheater", Critical}},
		{"unprocessed", ptr(0), Classification{"unprocessed", Warning}},
		{"awaiting self-proof", ptr(2), Classification{"awaiting self-proof", Warning}},
		{"appeal", ptr(9), Classification{"under appeal", Info}},
		{"absent", nil, NoRecord},
		{"community-only code", ptr(12), Unknown},
		{"unknown", ptr(99), Unknown},
		{"negative", ptr(-1), Unknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ClassifyBan(tt.code))
		})
	}
}

func TestClassifyCommunity(t *testing.T) {
	tests := []struct {
		name string
		code *int
		want Classification
	}{
		{"normal", ptr(0), Classification{"data normal", Info}},
		{"abnormal weapons", ptr(2), Classification{"abnormal weapon data", Critical}},
		{"previously abnormal", ptr(6), Classification{"currently normal (past abnormal weapon data)", Warning}},
		{"anti-cheat", ptr(12), Classification{"global blacklist (automatic anti-cheat)", Critical}},
		{"absent", nil, NoRecord},
		{"unknown", ptr(99), Unknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ClassifyCommunity(tt.code))
		})
	}
}

func TestVocabulariesAreDisjoint(t *testing.T) {
	// code 1 is a confirmed cheater on the ban site but a dismissed report
	// for the community robot
	assert.Equal(t, Critical, ClassifyBan(ptr(1)).Severity)
	assert.Equal(t, Info, ClassifyCommunity(ptr(1)).Severity)
	assert.NotEqual(t, ClassifyBan(ptr(1)).Label, ClassifyCommunity(ptr(1)).Label)
}

func TestSeverityColor(t *testing.T) {
	assert.Equal(t, "Green", Info.Color())
	assert.Equal(t, "Yellow", Warning.Color())
	assert.Equal(t, "Red", Critical.Color())
	assert.Equal(t, "critical", Critical.String())
}

func TestSeverityJSON(t *testing.T) {
	b, err := json.Marshal(map[string]Severity{"ban": Critical, "community": Warning})
	require.NoError(t, err)
	assert.JSONEq(t, `{"ban":"critical","community":"warning"}`, string(b))

	var got struct{ Severity Severity }
	require.NoError(t, json.Unmarshal([]byte(`{"Severity":"info"}`), &got))
	assert.Equal(t, Info, got.Severity)

	assert.Error(t, json.Unmarshal([]byte(`{"Severity":"fatal"}`), &got))
}
