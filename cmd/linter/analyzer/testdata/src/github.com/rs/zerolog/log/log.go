// Package log is a minimal stand-in for zerolog's global logger, enough for
// the analyzer to resolve the import path.
package log

type Event struct{}

func (e *Event) Msg(string) {}

func Info() *Event  { return &Event{} }
func Fatal() *Event { return &Event{} }
func Panic() *Event { return &Event{} }
