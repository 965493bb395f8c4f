package app

import "strings"

func (m *Model) appendLog(line string) {
	m.logs = append(m.logs, strings.TrimRight(line, "\n"))
	if over := len(m.logs) - maxLogLines; over > 0 {
		m.logs = m.logs[over:]
	}
	if m.showLogs {
		m.refreshLogView()
	}
}

func (m *Model) refreshLogView() {
	if m.logView.Width <= 0 {
		m.logView.Width, m.logView.Height = overlaySize(defaultWidth, defaultHeight)
	}
	if len(m.logs) == 0 {
		m.logView.SetContent("no log entries yet")
		return
	}
	m.logView.SetContent(strings.Join(m.logs, "\n"))
	m.logView.GotoBottom()
}
