package collection

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

var items = []ShoppingItem{
	{Name: "egg", MeasurementUnit: "pcs", Amount: 3},
	{Name: "flour", MeasurementUnit: "g", Amount: 150},
}

func TestRenderText(t *testing.T) {
	doc := RenderText(items)

	assert.Equal(t, "shoplist.txt", doc.Filename)
	assert.Equal(t, "egg - 3 pcs\nflour - 150 g\n", string(doc.Data))
}

func TestRenderText_Empty(t *testing.T) {
	assert.Empty(t, RenderText(nil).Data)
}

func TestRenderXLSX(t *testing.T) {
	doc, err := RenderXLSX(items)
	require.NoError(t, err)
	assert.Equal(t, "shoplist.xlsx", doc.Filename)

	f, err := excelize.OpenReader(bytes.NewReader(doc.Data))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(sheetName)
	require.NoError(t, err)
	assert.Equal(t, [][]string{
		{"Ingredient", "Amount", "Unit"},
		{"egg", "3", "pcs"},
		{"flour", "150", "g"},
	}, rows)
}
