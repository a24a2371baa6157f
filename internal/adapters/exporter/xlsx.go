package exporter

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"

	"chat-viewer/internal/ports"
	"chat-viewer/internal/viewer/view"

	"github.com/xuri/excelize/v2"
)

const messagesSheet = "Messages"

// ErrNothingToExport возвращается, когда в области сообщений нет загруженной переписки.
var ErrNothingToExport = errors.New("no loaded thread to export")

// ExcelExporter сохраняет отрисованную переписку в книгу Excel.
type ExcelExporter struct {
	out    io.Writer
	logger *slog.Logger
}

var _ ports.ThreadExporter = (*ExcelExporter)(nil)

// NewExcelExporter создает экспортер, который пишет книгу в out.
func NewExcelExporter(out io.Writer, logger *slog.Logger) *ExcelExporter {
	return &ExcelExporter{out: out, logger: logger}
}

// Export записывает заголовок чата и все сообщения в лист "Messages".
// Пустая переписка дает лист только с заголовками колонок.
func (e *ExcelExporter) Export(header view.Header, state view.ThreadState) error {
	if state.Placeholder.Visible() && state.Placeholder.Kind != view.PlaceholderEmpty {
		return fmt.Errorf("%w: %s", ErrNothingToExport, state.Placeholder.Text)
	}

	f := excelize.NewFile()
	defer func() {
		if err := f.Close(); err != nil {
			e.logger.Error("failed to close excel file", slog.String("error", err.Error()))
		}
	}()

	index, err := f.NewSheet(messagesSheet)
	if err != nil {
		return fmt.Errorf("failed to create sheet: %w", err)
	}
	f.SetActiveSheet(index)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return fmt.Errorf("failed to delete default sheet: %w", err)
	}

	if err := f.SetSheetRow(messagesSheet, "A1", &[]any{"Chat", header.Title, header.Status}); err != nil {
		return fmt.Errorf("failed to write title row: %w", err)
	}

	headers := []any{"Sender", "Timestamp", "Message", "Own"}
	if err := f.SetSheetRow(messagesSheet, "A3", &headers); err != nil {
		return fmt.Errorf("failed to write header row: %w", err)
	}

	for i, msg := range state.Messages {
		cell, err := excelize.CoordinatesToCellName(1, i+4)
		if err != nil {
			return fmt.Errorf("failed to compute cell name: %w", err)
		}
		row := []any{msg.Sender, msg.Timestamp, msg.Text, msg.Own}
		if err := f.SetSheetRow(messagesSheet, cell, &row); err != nil {
			return fmt.Errorf("failed to write message row %d: %w", i+1, err)
		}
	}

	if err := f.SetColWidth(messagesSheet, "C", "C", 80); err != nil {
		return fmt.Errorf("failed to set column width: %w", err)
	}

	if err := f.Write(e.out); err != nil {
		return fmt.Errorf("failed to write excel: %w", err)
	}
	return nil
}

// ThreadCapture запоминает последнее состояние заголовка и области сообщений.
// Позволяет прогнать MessageLoader без интерфейса и затем экспортировать результат.
type ThreadCapture struct {
	mu     sync.Mutex
	header view.Header
	state  view.ThreadState
}

var _ ports.ThreadView = (*ThreadCapture)(nil)

// ShowHeader реализует ports.ThreadView
func (c *ThreadCapture) ShowHeader(header view.Header) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.header = header
}

// ShowStatus реализует ports.ThreadView
func (c *ThreadCapture) ShowStatus(status string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.header.Status = status
}

// ShowThread реализует ports.ThreadView
func (c *ThreadCapture) ShowThread(state view.ThreadState) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state = state
}

// Snapshot возвращает последнее запомненное состояние.
func (c *ThreadCapture) Snapshot() (view.Header, view.ThreadState) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.header, c.state
}
