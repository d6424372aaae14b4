package lambda

type RuleKind int

const (
	RuleUnknown RuleKind = iota
	RuleBeta
	RuleAdd
	RuleLookup
)

func (k RuleKind) String() string {
	switch k {
	case RuleBeta:
		return "beta"
	case RuleAdd:
		return "add"
	case RuleLookup:
		return "lookup"
	default:
		return "unknown"
	}
}

// TraceEvent records one reduction: the rule applied and the redex it
// was applied to, rendered with Display.
type TraceEvent struct {
	Step  uint64
	Rule  RuleKind
	Redex string
}

// EnableTrace starts recording the first capacity reductions.
func (r *Reducer) EnableTrace(capacity int) {
	if capacity <= 0 {
		capacity = 1
	}
	r.traceBuf = make([]TraceEvent, 0, capacity)
	r.traceOn = true
}

func (r *Reducer) DisableTrace() {
	r.traceOn = false
}

func (r *Reducer) TraceSnapshot() []TraceEvent {
	if !r.traceOn {
		return nil
	}
	res := make([]TraceEvent, len(r.traceBuf))
	copy(res, r.traceBuf)
	return res
}

func (r *Reducer) recordTrace(rule RuleKind, redex Term) {
	if !r.traceOn || len(r.traceBuf) == cap(r.traceBuf) {
		return
	}
	r.traceBuf = append(r.traceBuf, TraceEvent{
		Step:  r.stats.TotalReductions - 1,
		Rule:  rule,
		Redex: Display(redex),
	})
}
