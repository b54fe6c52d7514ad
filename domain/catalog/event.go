package catalog

import (
	"fmt"
	"sort"
	"strings"

	"gamestats/domain/core"
)

// Stage names the pipeline step that emitted an event.
type Stage string

const (
	StageLoad   Stage = "load"
	StageClean  Stage = "clean"
	StageEnrich Stage = "enrich"
)

// Event is a structured processing log entry returned with pipeline results.
type Event struct {
	RunID   core.RunID
	Stage   Stage
	Message string
	Attrs   map[string]any
}

// NewEvent builds an event from alternating key/value attribute pairs.
func NewEvent(stage Stage, msg string, kv ...any) Event {
	e := Event{Stage: stage, Message: msg}
	if len(kv) > 0 {
		e.Attrs = make(map[string]any, len(kv)/2)
		for i := 0; i+1 < len(kv); i += 2 {
			e.Attrs[fmt.Sprint(kv[i])] = kv[i+1]
		}
	}
	return e
}

// String renders the event as "stage: message key=value ..." with sorted keys.
func (e Event) String() string {
	var b strings.Builder
	b.WriteString(string(e.Stage))
	b.WriteString(": ")
	b.WriteString(e.Message)
	keys := make([]string, 0, len(e.Attrs))
	for k := range e.Attrs {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(&b, " %s=%v", k, e.Attrs[k])
	}
	return b.String()
}
