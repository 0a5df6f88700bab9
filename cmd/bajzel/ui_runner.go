package main

import (
	"context"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"bajzel/internal/driver"
	"bajzel/internal/eval"
	"bajzel/internal/ui"
)

type batchOutcome struct {
	result *driver.BatchResult
	err    error
}

// runBatchWithUI runs GenerateBatch while a Bubble Tea progress view on
// stderr consumes one event per finished sample.
func runBatchWithUI(ctx context.Context, title string, env *eval.ProgramEnv, opts driver.BatchOptions) (*driver.BatchResult, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	events := make(chan ui.Event, 256)
	outcomeCh := make(chan batchOutcome, 1)

	go func() {
		o := opts
		o.OnSample = func(s driver.Sample) {
			events <- sampleEvent(s)
		}
		res, err := driver.GenerateBatch(ctx, env, o)
		if err != nil {
			events <- ui.Event{Index: -1, Label: err.Error(), Status: ui.StatusError}
		}
		outcomeCh <- batchOutcome{result: res, err: err}
		close(events)
	}()

	model := ui.NewProgressModel(title, opts.Count, events)
	program := tea.NewProgram(model, tea.WithOutput(os.Stderr))
	_, uiErr := program.Run()

	// ctrl+c закрывает UI раньше времени: останавливаем генерацию и дочитываем канал
	cancel()
	go func() {
		for range events {
		}
	}()
	outcome := <-outcomeCh
	if uiErr != nil {
		return outcome.result, uiErr
	}
	return outcome.result, outcome.err
}

func sampleEvent(s driver.Sample) ui.Event {
	label := s.Path
	if label == "" {
		label = fmt.Sprintf("#%d", s.Index)
	}
	return ui.Event{Index: s.Index, Label: label, Bytes: s.Size, Short: s.Short, Status: ui.StatusDone}
}
