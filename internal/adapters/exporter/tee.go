package exporter

import (
	"chat-viewer/internal/ports"
	"chat-viewer/internal/viewer/view"
)

type teeThreadView []ports.ThreadView

// TeeThreadView передает каждое обновление во все views по порядку.
func TeeThreadView(views ...ports.ThreadView) ports.ThreadView {
	return teeThreadView(views)
}

func (t teeThreadView) ShowHeader(header view.Header) {
	for _, v := range t {
		v.ShowHeader(header)
	}
}

func (t teeThreadView) ShowStatus(status string) {
	for _, v := range t {
		v.ShowStatus(status)
	}
}

func (t teeThreadView) ShowThread(state view.ThreadState) {
	for _, v := range t {
		v.ShowThread(state)
	}
}
