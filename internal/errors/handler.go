package errors

import (
	"io"
)

// Handler receives diagnostics in the order they are found
type Handler interface {
	Handle(d Diagnostic)
}

// HandlerFunc adapts a function to the Handler interface
type HandlerFunc func(d Diagnostic)

func (f HandlerFunc) Handle(d Diagnostic) { f(d) }

// Discard drops every diagnostic
var Discard Handler = HandlerFunc(func(Diagnostic) {})

// Collector records diagnostics for later inspection
type Collector struct {
	diagnostics []Diagnostic
}

func (c *Collector) Handle(d Diagnostic) {
	c.diagnostics = append(c.diagnostics, d)
}

// Diagnostics returns everything recorded so far
func (c *Collector) Diagnostics() []Diagnostic {
	return c.diagnostics
}

// Len returns the number of recorded diagnostics
func (c *Collector) Len() int {
	return len(c.diagnostics)
}

// WriterHandler renders each diagnostic to w as soon as it arrives
type WriterHandler struct {
	w        io.Writer
	reporter *ErrorReporter
}

// NewWriterHandler creates a handler printing through reporter
func NewWriterHandler(w io.Writer, reporter *ErrorReporter) *WriterHandler {
	return &WriterHandler{w: w, reporter: reporter}
}

func (h *WriterHandler) Handle(d Diagnostic) {
	// Diagnostics are a side channel; a failed write must not stop parsing.
	_, _ = io.WriteString(h.w, h.reporter.Report(d)+"\n")
}

type multiHandler []Handler

func (m multiHandler) Handle(d Diagnostic) {
	for _, h := range m {
		h.Handle(d)
	}
}

// Multi fans a diagnostic out to every handler. Nil handlers are skipped.
func Multi(handlers ...Handler) Handler {
	var m multiHandler
	for _, h := range handlers {
		if h != nil {
			m = append(m, h)
		}
	}
	return m
}

// Limiter forwards at most max diagnostics and counts the rest.
// Fatal diagnostics are always forwarded.
type Limiter struct {
	next       Handler
	max        int
	forwarded  int
	suppressed int
}

// Limit wraps next; max <= 0 means unlimited
func Limit(next Handler, max int) *Limiter {
	return &Limiter{next: next, max: max}
}

func (l *Limiter) Handle(d Diagnostic) {
	if l.max > 0 && l.forwarded >= l.max && !d.Fatal() {
		l.suppressed++
		return
	}
	l.forwarded++
	l.next.Handle(d)
}

// Suppressed returns how many diagnostics were dropped
func (l *Limiter) Suppressed() int {
	return l.suppressed
}
