package studio

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"pdc/internal/api"
	"pdc/internal/log"
	"pdc/internal/pubsub"
)

// pollInterval is the delay between task status polls.
const pollInterval = time.Second

func (m *Model) generateDiagramCmd(req api.DiagramRequest) tea.Cmd {
	return func() tea.Msg {
		resp, err := m.client.GenerateDiagram(m.ctx, req)
		return diagramMsg{resp: resp, err: err}
	}
}

func (m *Model) generateIntegrationCmd(req api.IntegrationRequest) tea.Cmd {
	return func() tea.Msg {
		resp, err := m.client.GenerateIntegration(m.ctx, req)
		return integrationMsg{resp: resp, err: err}
	}
}

// submitTaskCmd submits an async diagram task and starts the poll loop.
// Progress arrives through the broker, not through this command.
func (m *Model) submitTaskCmd(req api.DiagramRequest) tea.Cmd {
	return func() tea.Msg {
		resp, err := m.client.SubmitDiagramTask(m.ctx, req)
		if err != nil {
			m.broker.Publish(pubsub.TaskFailedEvent, TaskEvent{Err: err})
			return nil
		}
		m.broker.Publish(pubsub.TaskSubmittedEvent, TaskEvent{TaskID: resp.TaskID, State: "pending"})
		go pollTask(m.ctx, m.client, m.broker, resp.TaskID)
		return submittedMsg{taskID: resp.TaskID}
	}
}

// pollTask polls the backend until the task reaches a terminal state or the
// context is cancelled, publishing every transition on the broker.
func pollTask(ctx context.Context, client *api.Client, broker *pubsub.Broker[TaskEvent], taskID string) {
	ticker := time.NewTicker(pollInterval)
	defer ticker.Stop()

	lastState := ""
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}

		status, err := client.TaskStatus(ctx, taskID)
		if err != nil {
			log.ErrorErr(log.CatTask, "Task poll failed", err, "task_id", taskID)
			broker.Publish(pubsub.TaskFailedEvent, TaskEvent{TaskID: taskID, Err: err})
			return
		}

		event := TaskEvent{TaskID: taskID, State: status.State, Result: status.Result}
		switch status.State {
		case "succeeded", "completed", "done":
			broker.Publish(pubsub.TaskCompletedEvent, event)
			return
		case "failed", "error":
			broker.Publish(pubsub.TaskFailedEvent, event)
			return
		default:
			if status.State != lastState {
				lastState = status.State
				broker.Publish(pubsub.TaskUpdatedEvent, event)
			}
		}
	}
}

// renderMarkdownCmd styles markdown for the result viewport off the update loop.
func (m *Model) renderMarkdownCmd(src string) tea.Cmd {
	return func() tea.Msg {
		if m.markdown == nil {
			return renderedMsg{content: src}
		}
		out, err := m.markdown.Render(src)
		if err != nil {
			log.ErrorErr(log.CatUI, "Markdown render failed", err)
			return renderedMsg{content: src}
		}
		return renderedMsg{content: out}
	}
}
