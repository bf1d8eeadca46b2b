package interpreter

import "github.com/BUGO07/lang/pkg/runtime"

type FlowKind int

const (
	FlowNone FlowKind = iota
	FlowReturn
	FlowBreak
	FlowContinue
)

func (k FlowKind) String() string {
	switch k {
	case FlowReturn:
		return "return"
	case FlowBreak:
		return "break"
	case FlowContinue:
		return "continue"
	default:
		return "none"
	}
}

// ControlFlow is returned up the execution chain until a loop (break,
// continue) or a call boundary (return) absorbs it.
type ControlFlow struct {
	Kind  FlowKind
	Value runtime.Value
}

var (
	flowNone     = ControlFlow{Kind: FlowNone}
	flowBreak    = ControlFlow{Kind: FlowBreak}
	flowContinue = ControlFlow{Kind: FlowContinue}
)

func flowReturn(value runtime.Value) ControlFlow {
	return ControlFlow{Kind: FlowReturn, Value: value}
}

func (f ControlFlow) IsNone() bool { return f.Kind == FlowNone }
