package events

import "github.com/atomicstack/tmux-session-tree/internal/logging"

type UITracer struct{}

type FilterTracer struct{}

var (
	UI     = UITracer{}
	Filter = FilterTracer{}
)

func (UITracer) Select(path []string) {
	logging.Trace("ui.select", map[string]interface{}{"path": path})
}

func (UITracer) Mode(mode string) {
	logging.Trace("ui.mode", map[string]interface{}{"mode": mode})
}

func (UITracer) Flash(text string, isError bool) {
	logging.Trace("ui.flash", map[string]interface{}{"text": text, "error": isError})
}

func (FilterTracer) Changed(filter string) {
	logging.Trace("filter.changed", map[string]interface{}{"filter": filter})
}

func (FilterTracer) Cleared() {
	logging.Trace("filter.cleared", nil)
}
