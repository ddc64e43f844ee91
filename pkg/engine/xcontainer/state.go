package xcontainer

import "fmt"

// State 是容器的生命周期状态。
type State string

// 容器运行时报告的全部状态。
const (
	StateCreated    State = "created"
	StateRestarting State = "restarting"
	StateRunning    State = "running"
	StateRemoving   State = "removing"
	StatePaused     State = "paused"
	StateExited     State = "exited"
	StateDead       State = "dead"
)

// ParseState 校验并转换状态文本，未知状态返回 [ErrInvalidState]。
func ParseState(s string) (State, error) {
	st := State(s)
	if !st.IsValid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidState, s)
	}
	return st, nil
}

// IsValid 报告 s 是否为已知状态。
func (s State) IsValid() bool {
	switch s {
	case StateCreated, StateRestarting, StateRunning, StateRemoving,
		StatePaused, StateExited, StateDead:
		return true
	default:
		return false
	}
}

// IsActive 报告容器进程是否存在（running、paused、restarting）。
func (s State) IsActive() bool {
	switch s {
	case StateRunning, StatePaused, StateRestarting:
		return true
	default:
		return false
	}
}

func (s State) String() string { return string(s) }
