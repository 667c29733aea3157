package events

import "github.com/atomicstack/tmux-session-tree/internal/logging"

type SessionTracer struct{}

type sessionReason string

const (
	SessionReasonEscape    sessionReason = "escape"
	SessionReasonEmpty     sessionReason = "empty"
	SessionReasonUnchanged sessionReason = "unchanged"
	SessionReasonDeclined  sessionReason = "declined"
)

var Session = SessionTracer{}

func (SessionTracer) Refresh(sessions int, err error) {
	payload := map[string]interface{}{"sessions": sessions}
	if err != nil {
		payload["error"] = err.Error()
	}
	logging.Trace("session.refresh", payload)
}

func (SessionTracer) Create(name string) {
	logging.Trace("session.create", map[string]interface{}{"name": name})
}

func (SessionTracer) Rename(target, name string) {
	logging.Trace("session.rename", map[string]interface{}{"target": target, "name": name})
}

func (SessionTracer) Kill(target string) {
	logging.Trace("session.kill", map[string]interface{}{"target": target})
}

func (SessionTracer) CancelCreate(reason sessionReason) {
	logging.Trace("session.create.cancel", map[string]interface{}{"reason": string(reason)})
}

func (SessionTracer) CancelRename(target string, reason sessionReason) {
	logging.Trace("session.rename.cancel", map[string]interface{}{"target": target, "reason": string(reason)})
}

func (SessionTracer) CancelKill(target string, reason sessionReason) {
	logging.Trace("session.kill.cancel", map[string]interface{}{"target": target, "reason": string(reason)})
}
