package sysexec

import "context"

// MockExecutor is a configurable executor for tests. Any func left nil
// falls back to a permissive default.
type MockExecutor struct {
	LookPathFunc       func(file string) (string, error)
	RunFunc            func(name string, args ...string) (string, error)
	CombinedOutputFunc func(name string, args ...string) ([]byte, error)
	FileExistsFunc     func(path string) bool

	// Calls records every Run/RunContext/CombinedOutput invocation.
	Calls [][]string
}

func (m *MockExecutor) LookPath(file string) (string, error) {
	if m.LookPathFunc != nil {
		return m.LookPathFunc(file)
	}
	return "/usr/bin/" + file, nil
}

func (m *MockExecutor) Run(name string, args ...string) (string, error) {
	m.record(name, args)
	if m.RunFunc != nil {
		return m.RunFunc(name, args...)
	}
	return "", nil
}

func (m *MockExecutor) RunContext(_ context.Context, name string, args ...string) (string, error) {
	m.record(name, args)
	if m.RunFunc != nil {
		return m.RunFunc(name, args...)
	}
	return "", nil
}

func (m *MockExecutor) CombinedOutput(_ context.Context, name string, args ...string) ([]byte, error) {
	m.record(name, args)
	if m.CombinedOutputFunc != nil {
		return m.CombinedOutputFunc(name, args...)
	}
	return nil, nil
}

func (m *MockExecutor) FileExists(path string) bool {
	if m.FileExistsFunc != nil {
		return m.FileExistsFunc(path)
	}
	return true
}

func (m *MockExecutor) record(name string, args []string) {
	call := append([]string{name}, args...)
	m.Calls = append(m.Calls, call)
}
