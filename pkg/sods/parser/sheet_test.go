package parser

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hrk/sods/pkg/sods/models"
)

const cellStyles = `<office:automatic-styles>
<style:style style:name="ceD" style:family="table-cell"><style:text-properties fo:font-weight="bold"/></style:style>
<style:style style:name="ceR" style:family="table-cell"><style:text-properties fo:font-style="italic"/></style:style>
<style:style style:name="ceE" style:family="table-cell"><style:text-properties fo:color="#0000ff"/></style:style>
<style:style style:name="co1" style:family="table-column"><style:table-column-properties style:column-width="1in"/></style:style>
<style:style style:name="ro1" style:family="table-row"><style:table-row-properties style:row-height="0.5cm"/></style:style>
<style:style style:name="ta1" style:family="table"><style:table-properties table:display="false"/></style:style>
</office:automatic-styles>`

func decodeTable(t *testing.T, styles *StyleTable, cfg Config, doc string) *models.Sheet {
	t.Helper()
	if styles == nil {
		styles = NewStyleTable(nil)
	}
	root := openXML(t, doc)
	table := root.Next("table:table")
	require.NotNil(t, table)
	name, _ := table.Attr("table:name")
	sheet := models.NewSheet(name)
	DecodeSheet(table, sheet, styles, cfg)
	require.NoError(t, root.Err())
	return sheet
}

func TestDecodeSheetRepeatedRows(t *testing.T) {
	sheet := decodeTable(t, nil, Config{}, `<table:table table:name="S">
<table:table-row table:number-rows-repeated="5">
  <table:table-cell office:value-type="float" office:value="1"/>
  <table:table-cell office:value-type="float" office:value="2"/>
</table:table-row>
</table:table>`)

	assert.Equal(t, "S", sheet.Name)
	assert.Equal(t, 5, sheet.MaxRows())
	assert.Equal(t, 2, sheet.MaxColumns())
	for row := 0; row < 5; row++ {
		assert.Equal(t, 1.0, sheet.Cell(row, 0).Value, "row %d", row)
		assert.Equal(t, 2.0, sheet.Cell(row, 1).Value, "row %d", row)
	}
}

func TestDecodeSheetRepeatedColumns(t *testing.T) {
	sheet := decodeTable(t, nil, Config{}, `<table:table>
<table:table-row>
  <table:table-cell table:number-columns-repeated="3" office:value-type="string" office:string-value="x"/>
  <table:table-cell/>
  <table:table-cell office:value-type="boolean" office:boolean-value="false"/>
</table:table-row>
</table:table>`)

	assert.Equal(t, 5, sheet.MaxColumns())
	for col := 0; col < 3; col++ {
		assert.Equal(t, "x", sheet.Cell(0, col).Value)
	}
	assert.Nil(t, sheet.Cell(0, 3).Value)
	assert.Equal(t, false, sheet.Cell(0, 4).Value)
}

func TestDecodeSheetMerge(t *testing.T) {
	sheet := decodeTable(t, nil, Config{}, `<table:table>
<table:table-row>
  <table:table-cell table:number-columns-spanned="2" table:number-rows-spanned="2" office:value-type="float" office:value="1"/>
  <table:covered-table-cell/>
  <table:table-cell office:value-type="float" office:value="3"/>
</table:table-row>
<table:table-row>
  <table:covered-table-cell table:number-columns-repeated="2"/>
  <table:table-cell office:value-type="float" office:value="4"/>
</table:table-row>
</table:table>`)

	assert.Equal(t, []models.CellRange{{Row: 0, Column: 0, Rows: 2, Columns: 2}}, sheet.MergedRegions())
	assert.Equal(t, 1.0, sheet.Cell(0, 0).Value)
	assert.Equal(t, 3.0, sheet.Cell(0, 2).Value)
	assert.Equal(t, 4.0, sheet.Cell(1, 2).Value)
	assert.Nil(t, sheet.Cell(1, 0).Value)
}

func TestDecodeSheetNoMergeInRepeatedRow(t *testing.T) {
	sheet := decodeTable(t, nil, Config{}, `<table:table>
<table:table-row table:number-rows-repeated="3">
  <table:table-cell table:number-columns-spanned="2" table:number-rows-spanned="2" office:value-type="float" office:value="1"/>
  <table:covered-table-cell/>
</table:table-row>
<table:table-row>
  <table:covered-table-cell table:number-columns-repeated="2"/>
</table:table-row>
</table:table>`)

	assert.Empty(t, sheet.MergedRegions())
	assert.Equal(t, 4, sheet.MaxRows())
}

func TestDecodeSheetMergeOutsideTableSkipped(t *testing.T) {
	sheet := decodeTable(t, nil, Config{}, `<table:table>
<table:table-row>
  <table:table-cell table:number-rows-spanned="3" office:value-type="float" office:value="1"/>
</table:table-row>
</table:table>`)

	assert.Empty(t, sheet.MergedRegions())
	assert.Equal(t, 1.0, sheet.Cell(0, 0).Value)
}

func TestDecodeSheetOversizedRepeatDropped(t *testing.T) {
	sheet := decodeTable(t, nil, Config{}, `<table:table>
<table:table-row>
  <table:table-cell office:value-type="float" office:value="1"/>
  <table:table-cell table:number-columns-repeated="20000" table:number-columns-spanned="2" office:value-type="float" office:value="9"/>
  <table:table-cell office:value-type="float" office:value="2"/>
</table:table-row>
<table:table-row table:number-rows-repeated="20000"/>
<table:table-row>
  <table:table-cell office:value-type="float" office:value="3"/>
</table:table-row>
<table:table-row>
  <table:covered-table-cell table:number-columns-repeated="20000"/>
  <table:table-cell office:value-type="float" office:value="7"/>
</table:table-row>
</table:table>`)

	assert.Equal(t, 3, sheet.MaxRows())
	assert.Equal(t, 20001, sheet.MaxColumns())
	assert.Equal(t, 1.0, sheet.Cell(0, 0).Value)
	assert.Equal(t, 2.0, sheet.Cell(0, 1).Value)
	assert.Nil(t, sheet.Cell(0, 2).Value)
	assert.Equal(t, 3.0, sheet.Cell(1, 0).Value)
	assert.Equal(t, 7.0, sheet.Cell(2, 20000).Value)
	assert.Empty(t, sheet.MergedRegions())
}

func TestDecodeSheetCoveredCellsAdvancePastCeiling(t *testing.T) {
	sheet := decodeTable(t, nil, Config{MaxRepeat: 3}, `<table:table>
<table:table-row>
  <table:covered-table-cell table:number-columns-repeated="5"/>
  <table:table-cell office:value-type="float" office:value="7"/>
</table:table-row>
</table:table>`)

	assert.Equal(t, 6, sheet.MaxColumns())
	assert.Nil(t, sheet.Cell(0, 0).Value)
	assert.Equal(t, 7.0, sheet.Cell(0, 5).Value)
}

func TestDecodeSheetCustomMaxRepeat(t *testing.T) {
	sheet := decodeTable(t, nil, Config{MaxRepeat: 4}, `<table:table>
<table:table-row table:number-rows-repeated="5">
  <table:table-cell office:value-type="float" office:value="1"/>
</table:table-row>
<table:table-row table:number-rows-repeated="4">
  <table:table-cell office:value-type="float" office:value="2"/>
</table:table-row>
</table:table>`)

	assert.Equal(t, 4, sheet.MaxRows())
	assert.Equal(t, 2.0, sheet.Cell(0, 0).Value)
}

func TestDecodeSheetInvalidCounts(t *testing.T) {
	sheet := decodeTable(t, nil, Config{}, `<table:table>
<table:table-row table:number-rows-repeated="many">
  <table:table-cell table:number-columns-repeated="-2" office:value-type="float" office:value="1"/>
  <table:table-cell table:number-columns-spanned="0" office:value-type="float" office:value="2"/>
</table:table-row>
</table:table>`)

	assert.Equal(t, 1, sheet.MaxRows())
	assert.Equal(t, 2, sheet.MaxColumns())
	assert.Equal(t, 2.0, sheet.Cell(0, 1).Value)
	assert.Empty(t, sheet.MergedRegions())
}

func TestDecodeSheetCellStylePrecedence(t *testing.T) {
	styles := parseStyles(t, cellStyles)
	sheet := decodeTable(t, styles, Config{}, `<table:table>
<table:table-column table:default-cell-style-name="ceD"/>
<table:table-column table:number-columns-repeated="2"/>
<table:table-row table:default-cell-style-name="ceR">
  <table:table-cell office:value-type="float" office:value="1"/>
  <table:table-cell office:value-type="float" office:value="2"/>
  <table:table-cell table:style-name="ceE" office:value-type="float" office:value="3"/>
</table:table-row>
<table:table-row>
  <table:table-cell/>
  <table:table-cell office:value-type="float" office:value="4"/>
</table:table-row>
<table:table-row table:number-rows-repeated="2" table:default-cell-style-name="ceR">
  <table:table-cell/>
  <table:table-cell office:value-type="float" office:value="5"/>
</table:table-row>
</table:table>`)

	assert.Same(t, styles.CellStyle("ceD"), sheet.Cell(0, 0).Style, "column default before row default")
	assert.Same(t, styles.CellStyle("ceR"), sheet.Cell(0, 1).Style, "row default")
	assert.Same(t, styles.CellStyle("ceE"), sheet.Cell(0, 2).Style, "explicit style")
	assert.Same(t, styles.CellStyle("ceD"), sheet.Cell(1, 0).Style)
	assert.Nil(t, sheet.Cell(1, 1).Style, "no default")

	// The default of a repeated row is keyed by its first row only.
	assert.Nil(t, sheet.Cell(2, 1).Style)
	assert.Nil(t, sheet.Cell(3, 1).Style)
	assert.Same(t, styles.CellStyle("ceD"), sheet.DefaultColumnStyle(0))
}

func TestDecodeSheetText(t *testing.T) {
	sheet := decodeTable(t, nil, Config{}, `<table:table>
<table:table-row>
  <table:table-cell><text:p>a</text:p><text:p>b</text:p></table:table-cell>
  <table:table-cell office:value-type="float" office:value="42"><text:p>a</text:p><text:p>b</text:p></table:table-cell>
  <table:table-cell office:value-type="string"><text:p>x<text:s text:c="3"/>y<text:tab/>z<text:line-break/><text:span text:style-name="T1">w<text:a xlink:href="http://example.com">link</text:a></text:span></text:p></table:table-cell>
  <table:table-cell office:value-type="string" office:string-value="stored"><text:p>shown</text:p></table:table-cell>
  <table:table-cell><text:p>one<text:s/>two</text:p></table:table-cell>
</table:table-row>
</table:table>`)

	assert.Equal(t, "a\nb", sheet.Cell(0, 0).Value)
	assert.Equal(t, 42.0, sheet.Cell(0, 1).Value)
	assert.Equal(t, "x   y\tz\nwlink", sheet.Cell(0, 2).Value)
	assert.Equal(t, "shown", sheet.Cell(0, 3).Value)
	assert.Equal(t, "one two", sheet.Cell(0, 4).Value)
}

func TestDecodeSheetTextWhitespace(t *testing.T) {
	tests := []struct {
		name     string
		cell     string
		expected string
	}{
		{"span between runs", `<text:p>Total: <text:span text:style-name="T1">5</text:span> items</text:p>`, "Total: 5 items"},
		{"link between runs", `<text:p>see <text:a xlink:href="http://example.com">here</text:a> now</text:p>`, "see here now"},
		{"spaces around text:s", `<text:p> a <text:s text:c="2"/>b </text:p>`, " a   b "},
		{"comment inside paragraph", `<text:p>a<!-- c -->b</text:p>`, "ab"},
		{"processing instruction inside paragraph", `<text:p>a<?pi data?>b</text:p>`, "ab"},
		{"whitespace only paragraph", `<text:p>   </text:p>`, "   "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sheet := decodeTable(t, nil, Config{}, `<table:table><table:table-row><table:table-cell>`+
				tt.cell+`</table:table-cell></table:table-row></table:table>`)
			assert.Equal(t, tt.expected, sheet.Cell(0, 0).Value)
		})
	}
}

func TestDecodeSheetAnnotationWhitespace(t *testing.T) {
	sheet := decodeTable(t, nil, Config{}, `<table:table><table:table-row><table:table-cell>
<office:annotation><text:p>see <text:span>note</text:span></text:p></office:annotation>
</table:table-cell></table:table-row></table:table>`)

	require.NotNil(t, sheet.Cell(0, 0).Annotation)
	assert.Equal(t, "see note", sheet.Cell(0, 0).Annotation.Msg)
}

func TestDecodeSheetAnnotation(t *testing.T) {
	sheet := decodeTable(t, nil, Config{}, `<table:table>
<table:table-row>
  <table:table-cell office:value-type="float" office:value="7">
    <office:annotation>
      <dc:creator>someone</dc:creator>
      <dc:date>2020-01-01T00:00:00</dc:date>
      <text:p>note</text:p>
    </office:annotation>
    <text:p>7</text:p>
  </table:table-cell>
  <table:table-cell>
    <office:annotation><dc:date>garbage</dc:date><text:p>first</text:p><text:p>second</text:p></office:annotation>
  </table:table-cell>
</table:table-row>
</table:table>`)

	cell := sheet.Cell(0, 0)
	assert.Equal(t, 7.0, cell.Value)
	require.NotNil(t, cell.Annotation)
	assert.Equal(t, "note", cell.Annotation.Msg)
	require.NotNil(t, cell.Annotation.LastModified)
	assert.Equal(t, time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC), *cell.Annotation.LastModified)

	cell = sheet.Cell(0, 1)
	assert.Nil(t, cell.Value)
	require.NotNil(t, cell.Annotation)
	assert.Equal(t, "first\nsecond", cell.Annotation.Msg)
	assert.Nil(t, cell.Annotation.LastModified)
}

func TestDecodeSheetFormula(t *testing.T) {
	sheet := decodeTable(t, nil, Config{}, `<table:table>
<table:table-row>
  <table:table-cell table:formula="of:=SUM([.A2:.A3])" office:value-type="float" office:value="3"><text:p>3</text:p></table:table-cell>
</table:table-row>
</table:table>`)

	assert.Equal(t, "of:=SUM([.A2:.A3])", sheet.Cell(0, 0).Formula)
	assert.Equal(t, 3.0, sheet.Cell(0, 0).Value)
}

func TestDecodeSheetLayout(t *testing.T) {
	styles := parseStyles(t, cellStyles)
	sheet := decodeTable(t, styles, Config{}, `<table:table table:name="Hidden" table:style-name="ta1" table:protected="true" table:protection-key="c2VjcmV0" table:print-ranges="Hidden.A1:Hidden.B2">
<table:table-column table:style-name="co1" table:number-columns-repeated="2" table:visibility="collapse"/>
<table:table-column/>
<table:table-header-rows>
  <table:table-row table:style-name="ro1">
    <table:table-cell office:value-type="string" office:string-value="head"/>
  </table:table-row>
</table:table-header-rows>
<table:table-row-group>
  <table:table-row table:visibility="collapse" table:number-rows-repeated="2">
    <table:table-cell office:value-type="float" office:value="1"/>
  </table:table-row>
</table:table-row-group>
<table:table-row table:visibility="filter"/>
</table:table>`)

	assert.True(t, sheet.Hidden)
	require.NotNil(t, sheet.Protection)
	assert.Equal(t, "c2VjcmV0", sheet.Protection.Key)
	assert.Equal(t, DefaultDigestAlgorithm, sheet.Protection.Algorithm)
	assert.Equal(t, []models.PrintArea{{R1: 1, C1: 1, R2: 2, C2: 2}}, sheet.PrintAreas)

	assert.Equal(t, 3, sheet.MaxColumns())
	assert.True(t, sheet.IsColumnHidden(0))
	assert.True(t, sheet.IsColumnHidden(1))
	assert.False(t, sheet.IsColumnHidden(2))
	require.NotNil(t, sheet.ColumnWidth(1))
	assert.Equal(t, "1in", sheet.ColumnWidth(1).String())
	assert.Nil(t, sheet.ColumnWidth(2))

	assert.Equal(t, 4, sheet.MaxRows())
	assert.Equal(t, "head", sheet.Cell(0, 0).Value)
	require.NotNil(t, sheet.RowHeight(0))
	assert.Equal(t, "0.5cm", sheet.RowHeight(0).String())
	assert.False(t, sheet.IsRowHidden(0))
	assert.True(t, sheet.IsRowHidden(1))
	assert.True(t, sheet.IsRowHidden(2))
	assert.False(t, sheet.IsRowHidden(3))
	assert.Equal(t, 1.0, sheet.Cell(2, 0).Value)
}

func TestDecodeSheetProtectionAlgorithm(t *testing.T) {
	sheet := decodeTable(t, nil, Config{}, `<table:table table:protected="true" table:protection-key="abc" table:protection-key-digest-algorithm="http://www.w3.org/2000/09/xmldsig#sha256"/>`)

	require.NotNil(t, sheet.Protection)
	assert.Equal(t, "http://www.w3.org/2000/09/xmldsig#sha256", sheet.Protection.Algorithm)
	assert.True(t, sheet.IsEmpty())
}
