package statement

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestRegistryLookup(t *testing.T) {
	r := DefaultRegistry()

	assert.IsType(t, &TextReader{}, r.Get(".csv"))
	assert.IsType(t, &TextReader{}, r.Get("TXT"))
	assert.IsType(t, &WorkbookReader{}, r.Get(".xlsx"))
	assert.Nil(t, r.Get(".pdf"))
}

func TestRegistryDuplicatePanics(t *testing.T) {
	r := NewRegistry()
	r.Register(&TextReader{})
	assert.Panics(t, func() { r.Register(&TextReader{}) })
}

func TestTextReaderPassthrough(t *testing.T) {
	text := "Fecha,Concepto,Importe\n01/10/2025,Cobro,100\n"
	got, err := (&TextReader{}).ReadText(strings.NewReader(text))
	require.NoError(t, err)
	assert.Equal(t, text, got)
}

func TestWorkbookReaderFlattensFirstSheet(t *testing.T) {
	f := excelize.NewFile()
	rows := [][]string{
		{"Fecha", "Concepto", "Importe"},
		{"01/10/2025", "Factura cliente", "1200,50"},
		{"02/10/2025", "Nomina Octubre", "-2000"},
	}
	sheet := f.GetSheetName(0)
	for i, row := range rows {
		for j, cell := range row {
			ref, err := excelize.CoordinatesToCellName(j+1, i+1)
			require.NoError(t, err)
			require.NoError(t, f.SetCellStr(sheet, ref, cell))
		}
	}

	buf, err := f.WriteToBuffer()
	require.NoError(t, err)

	text, err := (&WorkbookReader{}).ReadText(buf)
	require.NoError(t, err)

	// The flattened text goes through the same tokenizer as a CSV would.
	txns, err := newTestParser(t).Parse(text)
	require.NoError(t, err)
	require.Len(t, txns, 2)
	assert.Equal(t, "Factura cliente", txns[0].Description)
	assert.True(t, txns[0].Amount.Equal(dec("1200.50")))
}

func TestWorkbookReaderRejectsGarbage(t *testing.T) {
	_, err := (&WorkbookReader{}).ReadText(strings.NewReader("not a zip archive"))
	assert.Error(t, err)
}
