package trace

import "time"

// Span is one operation in flight: a pass, a unit load or check, a class
// load. The matching end event repeats the identity of the begin event.
type Span struct {
	tracer Tracer
	open   Event
	attrs  map[string]string
}

// Begin emits SpanBegin under parent (0 for a root) and returns the span.
// When the tracer's level drops the scope, the span is inert: it emits
// nothing and its ID is 0.
func Begin(t Tracer, scope Scope, name string, parent uint64) *Span {
	t = orNop(t)
	if !t.Enabled() || !t.Level().ShouldEmit(scope, KindSpanBegin) {
		return &Span{}
	}
	s := &Span{tracer: t, open: Event{
		Kind:     KindSpanBegin,
		Scope:    scope,
		SpanID:   NextSpanID(),
		ParentID: parent,
		Name:     name,
	}}
	s.open.Time = time.Now()
	s.open.Seq = NextSeq()
	t.Emit(s.open)
	return s
}

func (s *Span) live() bool {
	return s != nil && s.tracer != nil && s.tracer.Enabled()
}

// End emits SpanEnd with detail and the attributes collected so far and
// returns the time since Begin.
func (s *Span) End(detail string) time.Duration {
	if !s.live() {
		return 0
	}
	ev := s.open
	ev.Kind = KindSpanEnd
	ev.Time = time.Now()
	ev.Seq = NextSeq()
	ev.Detail = detail
	ev.Extra = s.attrs
	s.tracer.Emit(ev)
	return ev.Time.Sub(s.open.Time)
}

// WithExtra records an attribute for the end event.
func (s *Span) WithExtra(key, value string) *Span {
	if !s.live() {
		return s
	}
	if s.attrs == nil {
		s.attrs = map[string]string{}
	}
	s.attrs[key] = value
	return s
}

func (s *Span) ID() uint64 {
	if s == nil {
		return 0
	}
	return s.open.SpanID
}
