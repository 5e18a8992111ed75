package telegram

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
)

func TestParseCommand(t *testing.T) {
	tests := []struct {
		text    string
		wantCmd command
		wantArg string
	}{
		{"cx=Tester", cmdPlayer, "Tester"},
		{"CX=Tester", cmdPlayer, "Tester"},
		{"cx＝Tester", cmdPlayer, "Tester"},
		{"CX＝ Tester ", cmdPlayer, "Tester"},
		{"cx=0", cmdPlayer, "0"},
		{"cx=", cmdPlayer, ""},
		{"/cx Tester", cmdPlayer, "Tester"},
		{"/cx@BfvBot Tester", cmdPlayer, "Tester"},
		{"ban=Tester", cmdBans, "Tester"},
		{"/ban Tester", cmdBans, "Tester"},
		{"server=[ABC] Hardcore", cmdServers, "[ABC] Hardcore"},
		{"/server ABC", cmdServers, "ABC"},
		{"/help", cmdHelp, ""},
		{"/start", cmdHelp, ""},
		{"hello", cmdNone, ""},
		{"cx Tester", cmdNone, ""},
		{"/unknown x", cmdNone, ""},
		{"", cmdNone, ""},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			cmd, arg := parseCommand(tt.text)
			assert.Equal(t, tt.wantCmd, cmd)
			assert.Equal(t, tt.wantArg, arg)
		})
	}
}

func TestStripNameSuffix(t *testing.T) {
	tests := []struct{ in, want string }{
		{"Tester", "Tester"},
		{"Tester（Clan）", "Tester"},
		{"Tester (clan)", "Tester"},
		{"Tester（A）(B)", "Tester"},
		{"(only suffix)", ""},
		{"  Spaced  ", "Spaced"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, stripNameSuffix(tt.in), tt.in)
	}
}

func TestSplitMessage(t *testing.T) {
	assert.Nil(t, splitMessage("", 10))
	assert.Equal(t, []string{"short"}, splitMessage("short", 10))

	text := "line one\nline two\nline three"
	chunks := splitMessage(text, 12)
	assert.Equal(t, []string{"line one", "line two", "line three"}, chunks)

	long := strings.Repeat("字", 10) // 3 bytes each
	chunks = splitMessage(long, 10)
	for _, c := range chunks {
		assert.LessOrEqual(t, len(c), 10)
		assert.True(t, utf8.ValidString(c))
	}
	assert.Equal(t, long, strings.Join(chunks, ""))
}
