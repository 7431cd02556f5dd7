package hub

import (
	"strings"
	"time"

	"progressd/pkg/types"
)

// validate is the single parse boundary between loose producer input and
// the typed event the rest of the hub works with. Everything downstream
// may assume a well-formed event.
func (h *Hub) validate(in types.ProgressUpdate) (types.ProgressEvent, bool) {
	status, ok := ParseStatus(strings.TrimSpace(in.Status))
	if !ok {
		return types.ProgressEvent{}, false
	}
	ev := types.ProgressEvent{
		Vendor:    strings.TrimSpace(in.Vendor),
		NodeID:    strings.TrimSpace(in.NodeID),
		NodeKind:  strings.TrimSpace(in.NodeKind),
		TaskID:    strings.TrimSpace(in.TaskID),
		TaskKind:  strings.TrimSpace(in.TaskKind),
		Status:    string(status),
		Message:   in.Message,
		Assets:    in.Assets,
		Raw:       in.Raw,
		Timestamp: in.Timestamp,
	}
	if in.Progress != nil {
		p := *in.Progress
		if p < 0 {
			p = 0
		}
		if p > 100 {
			p = 100
		}
		ev.Progress = &p
	}
	if ev.Timestamp == 0 {
		ev.Timestamp = time.Now().UnixMilli()
	}
	return ev, true
}
