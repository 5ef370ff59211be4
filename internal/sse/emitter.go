package sse

import (
	"bufio"
	"encoding/json"

	"github.com/gofiber/fiber/v2/log"
)

// Emitter writes event frames to a buffered stream, flushing after each
// frame so clients see events as they happen.
type Emitter struct {
	w     *bufio.Writer
	flush func() error
	name  string
}

// NewBufioEmitter wraps a fasthttp stream writer. name labels the stream
// in log output.
func NewBufioEmitter(bw *bufio.Writer, name string) *Emitter {
	return &Emitter{w: bw, flush: bw.Flush, name: name}
}

func (e *Emitter) Send(ev Event) error {
	if _, err := e.w.Write(ev.Format()); err != nil {
		return err
	}
	return e.flush()
}

// SendJSON marshals v as the event payload. Marshal failures are
// recoverable; a failed write means the client disconnected and the stream
// should stop.
func (e *Emitter) SendJSON(id, typ string, v any) *FlowError {
	b, err := json.Marshal(v)
	if err != nil {
		log.Errorf("stream %s: cannot marshal event payload: %v", e.name, err)
		return NewFlowError(err, true)
	}
	if err := e.Send(Event{ID: id, Type: typ, Data: b}); err != nil {
		log.Errorf("stream %s: client gone: %v", e.name, err)
		return NewFlowError(err, false)
	}
	return NewFlowError(nil, true)
}

// Heartbeat writes an SSE comment frame to keep the connection alive.
func (e *Emitter) Heartbeat() error {
	if _, err := e.w.WriteString(": ping\n\n"); err != nil {
		return err
	}
	return e.flush()
}
