package logger

import "testing"

type recordingLogger struct {
	entries []string
	keyvals [][]any
}

func (r *recordingLogger) record(level, message string, keyvals []any) {
	r.entries = append(r.entries, level+":"+message)
	r.keyvals = append(r.keyvals, keyvals)
}

func (r *recordingLogger) Log(m string, kv ...any)   { r.record("log", m, kv) }
func (r *recordingLogger) Debug(m string, kv ...any) { r.record("debug", m, kv) }
func (r *recordingLogger) Info(m string, kv ...any)  { r.record("info", m, kv) }
func (r *recordingLogger) Warn(m string, kv ...any)  { r.record("warn", m, kv) }
func (r *recordingLogger) Error(m string, kv ...any) { r.record("error", m, kv) }
func (r *recordingLogger) Fatal(m string, kv ...any) { r.record("fatal", m, kv) }

func TestDispatchToAllInstances(t *testing.T) {
	a := &recordingLogger{}
	b := &recordingLogger{}
	Init(a, b)
	t.Cleanup(func() { Init() })

	Info("hello", "k", 1)
	Log("plain", "k", 2)
	Warn("careful")

	for _, r := range []*recordingLogger{a, b} {
		if len(r.entries) != 3 {
			t.Fatalf("expected 3 entries, got %v", r.entries)
		}
		if r.entries[0] != "info:hello" || r.entries[1] != "log:plain" || r.entries[2] != "warn:careful" {
			t.Fatalf("unexpected entries %v", r.entries)
		}
		if len(r.keyvals[1]) != 2 || r.keyvals[1][1] != 2 {
			t.Fatalf("expected keyvals to be forwarded for Log, got %v", r.keyvals[1])
		}
	}
}

func TestNoInitIsNoop(t *testing.T) {
	Init()
	Info("dropped")
	Error("dropped")
}
