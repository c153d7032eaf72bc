package ffmpeg

import (
	"context"
	"strings"
)

// mockRunner records commands and replays canned results
type mockRunner struct {
	calls  [][]string
	output []byte
	err    error
	// byArg returns output for a call whose arguments contain the key
	byArg map[string][]byte
}

func (m *mockRunner) record(name string, args []string) []byte {
	m.calls = append(m.calls, append([]string{name}, args...))
	joined := strings.Join(args, " ")
	for key, out := range m.byArg {
		if strings.Contains(joined, key) {
			return out
		}
	}
	return m.output
}

func (m *mockRunner) Run(ctx context.Context, name string, args ...string) error {
	m.record(name, args)
	return m.err
}

func (m *mockRunner) Output(ctx context.Context, name string, args ...string) ([]byte, error) {
	out := m.record(name, args)
	return out, m.err
}

func (m *mockRunner) CombinedOutput(ctx context.Context, name string, args ...string) ([]byte, error) {
	out := m.record(name, args)
	return out, m.err
}

func (m *mockRunner) lastArgs() []string {
	if len(m.calls) == 0 {
		return nil
	}
	return m.calls[len(m.calls)-1]
}

func hasArgPair(args []string, flag, value string) bool {
	for i := 0; i+1 < len(args); i++ {
		if args[i] == flag && args[i+1] == value {
			return true
		}
	}
	return false
}
