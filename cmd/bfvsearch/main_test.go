package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"testing"

	"bfv-tracker/internal/report"
	"bfv-tracker/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubSearcher struct {
	lastCall, lastName string
	err                error
}

func (s *stubSearcher) answer(call, name string) (*report.Report, error) {
	s.lastCall, s.lastName = call, name
	if s.err != nil {
		return nil, s.err
	}
	return &report.Report{
		ID:       "id",
		Title:    call + " " + name,
		Sections: []report.Section{{Text: &report.TextBlock{Lines: []string{"body"}}}},
	}, nil
}

func (s *stubSearcher) PlayerReport(_ context.Context, name string) (*report.Report, error) {
	return s.answer("player", name)
}

func (s *stubSearcher) BanHistory(_ context.Context, name string) (*report.Report, error) {
	return s.answer("bans", name)
}

func (s *stubSearcher) ServerSearch(_ context.Context, name string) (*report.Report, error) {
	return s.answer("servers", name)
}

func run(t *testing.T, stub *stubSearcher, args ...string) (string, error) {
	t.Helper()
	closed := false
	cmd := newRootCmd(func(context.Context) (searcher, func(), error) {
		return stub, func() { closed = true }, nil
	})

	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(args)

	err := cmd.ExecuteContext(context.Background())
	if err == nil {
		assert.True(t, closed, "service must be released")
	}
	return out.String(), err
}

func TestSubcommands(t *testing.T) {
	tests := []struct {
		args     []string
		wantCall string
		wantName string
	}{
		{[]string{"player", "Tester"}, "player", "Tester"},
		{[]string{"bans", "Tester"}, "bans", "Tester"},
		{[]string{"servers", "[ABC]", "Hardcore"}, "servers", "[ABC] Hardcore"},
	}

	for _, tt := range tests {
		t.Run(tt.wantCall, func(t *testing.T) {
			stub := &stubSearcher{}
			out, err := run(t, stub, tt.args...)
			require.NoError(t, err)

			assert.Equal(t, tt.wantCall, stub.lastCall)
			assert.Equal(t, tt.wantName, stub.lastName)
			assert.Equal(t, "## "+tt.wantCall+" "+tt.wantName+"\n\nbody\n", out)
		})
	}
}

func TestJSONOutput(t *testing.T) {
	out, err := run(t, &stubSearcher{}, "player", "Tester", "--json")
	require.NoError(t, err)

	var r report.Report
	require.NoError(t, json.Unmarshal([]byte(out), &r))
	assert.Equal(t, "player Tester", r.Title)
}

func TestFailureReturnsUserMessage(t *testing.T) {
	_, err := run(t, &stubSearcher{err: service.ErrPlayerNotFound}, "player", "ghost")
	require.Error(t, err)
	assert.EqualError(t, err, "player not found")
}

func TestMissingArgument(t *testing.T) {
	stub := &stubSearcher{}
	_, err := run(t, stub, "player")
	assert.Error(t, err)
	assert.Empty(t, stub.lastCall)
}

func TestOpenFailure(t *testing.T) {
	cmd := newRootCmd(func(context.Context) (searcher, func(), error) {
		return nil, nil, errors.New("no config")
	})
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"player", "Tester"})

	assert.EqualError(t, cmd.Execute(), "no config")
}
