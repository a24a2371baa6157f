package exporter

import (
	"bytes"
	"io"
	"log/slog"
	"testing"

	"chat-viewer/internal/domain"
	"chat-viewer/internal/viewer/view"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestExcelExporter_Export(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	t.Run("writes messages", func(t *testing.T) {
		var buf bytes.Buffer
		state, _ := view.RenderThread([]domain.Message{
			{Sender: "Ana", Date: "01/02/2024", Time: "10:00", Text: "hola"},
			{Sender: "Beto", Date: "01/02/2024", Time: "10:01", Text: "sí"},
		})

		err := NewExcelExporter(&buf, logger).Export(view.Header{Title: "Familia", Status: "2 messages"}, state)
		require.NoError(t, err)

		f, err := excelize.OpenReader(&buf)
		require.NoError(t, err)
		defer f.Close()

		assert.Equal(t, []string{messagesSheet}, f.GetSheetList())

		get := func(cell string) string {
			v, err := f.GetCellValue(messagesSheet, cell)
			require.NoError(t, err)
			return v
		}
		assert.Equal(t, "Familia", get("B1"))
		assert.Equal(t, "Sender", get("A3"))
		assert.Equal(t, "Ana", get("A4"))
		assert.Equal(t, "01/02/2024 10:00", get("B4"))
		assert.Equal(t, "TRUE", get("D4"))
		assert.Equal(t, "sí", get("C5"))
		assert.Equal(t, "FALSE", get("D5"))
	})

	t.Run("error placeholder is rejected", func(t *testing.T) {
		var buf bytes.Buffer
		err := NewExcelExporter(&buf, logger).Export(view.Header{}, view.FailedThread())

		assert.ErrorIs(t, err, ErrNothingToExport)
		assert.Zero(t, buf.Len())
	})

	t.Run("empty thread gives header only", func(t *testing.T) {
		var buf bytes.Buffer
		state, _ := view.RenderThread(nil)

		require.NoError(t, NewExcelExporter(&buf, logger).Export(view.Header{Title: "Vacío"}, state))
		assert.NotZero(t, buf.Len())
	})
}

func TestThreadCapture(t *testing.T) {
	c := &ThreadCapture{}
	tee := TeeThreadView(c)

	tee.ShowHeader(view.Header{Title: "A", Avatar: "A", Status: view.StatusLoading})
	tee.ShowThread(view.LoadingThread())
	tee.ShowStatus("Error")
	tee.ShowThread(view.FailedThread())

	header, state := c.Snapshot()
	assert.Equal(t, view.Header{Title: "A", Avatar: "A", Status: "Error"}, header)
	assert.Equal(t, view.PlaceholderError, state.Placeholder.Kind)
}
