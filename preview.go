package main

import (
	"fmt"
	"strconv"
	"strings"

	c "git.cmcode.dev/cmcode/invoice-planner/constants"
	"git.cmcode.dev/cmcode/invoice-planner/lib"
	"git.cmcode.dev/cmcode/invoice-planner/models"
	"git.cmcode.dev/cmcode/invoice-planner/render"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
	"github.com/samber/lo"
)

// Returns a list, representing the ordered columns to be shown in the
// preview table, alongside their configured colors.
func getPreviewTableHeaders(t, colors map[string]string) []models.TableCell {
	return []models.TableCell{
		{Text: t["PreviewColumnInvoice"], Color: colors["PreviewHeader"]},
		{Text: t["PreviewColumnDate"], Color: colors["PreviewHeader"]},
		{Text: t["PreviewColumnDueDate"], Color: colors["PreviewHeader"]},
		{Text: t["PreviewColumnLines"], Color: colors["PreviewHeader"], Align: tview.AlignRight},
		{Text: t["PreviewColumnHours"], Color: colors["PreviewHeader"], Align: tview.AlignRight},
		{Text: t["PreviewColumnSubtotal"], Color: colors["PreviewHeader"], Align: tview.AlignRight},
		{Text: t["PreviewColumnTax"], Color: colors["PreviewHeader"], Align: tview.AlignRight},
		{Text: t["PreviewColumnTotal"], Color: colors["PreviewHeader"], Align: tview.AlignRight, Expand: 1},
	}
}

func billedHours(lines []models.BillableLine) int {
	return lo.SumBy(lines, func(line models.BillableLine) int {
		h, err := strconv.Atoi(line.Hours)
		if err != nil {
			return 0
		}

		return h
	})
}

// Returns the cells of one invoice's row in the preview table.
func getPreviewTableCells(doc *render.Document, colors map[string]string) []models.TableCell {
	marker := doc.Config.CurrencyMarker

	return []models.TableCell{
		{Text: doc.Number(), Color: colors["PreviewInvoice"]},
		{Text: doc.Date.String(), Color: colors["PreviewDate"]},
		{Text: doc.Config.Bill.DueDate, Color: colors["PreviewDate"]},
		{Text: strconv.Itoa(len(doc.Config.Billables)), Color: colors["PreviewNumber"], Align: tview.AlignRight},
		{Text: strconv.Itoa(billedHours(doc.Config.Billables)), Color: colors["PreviewNumber"], Align: tview.AlignRight},
		{Text: lib.FormatCurrency(marker, doc.Totals.Subtotal), Color: colors["PreviewMoney"], Align: tview.AlignRight},
		{Text: lib.FormatCurrency(marker, doc.Totals.Tax), Color: colors["PreviewMoney"], Align: tview.AlignRight},
		{Text: lib.FormatCurrency(marker, doc.Totals.Total), Color: colors["PreviewTotal"], Align: tview.AlignRight, Expand: 1},
	}
}

func newPreviewCell(tc models.TableCell) *tview.TableCell {
	cell := tview.NewTableCell(fmt.Sprintf("%v%v%v", tc.Color, tc.Text, c.Reset)).
		SetAlign(tc.Align)
	if tc.Expand > 0 {
		cell.SetExpansion(tc.Expand)
	}

	return cell
}

// getPreviewTable builds a table with a header row and one row per invoice.
func getPreviewTable(docs []*render.Document, t, colors map[string]string) *tview.Table {
	table := tview.NewTable().SetFixed(1, 1)
	table.SetBorder(true)
	table.SetTitle(fmt.Sprintf("%v %v %v", colors["PreviewTitle"], t["PreviewTitle"], c.Reset))
	table.SetTitleAlign(tview.AlignLeft)
	table.SetBorders(false).
		SetSelectable(true, false).
		SetSeparator(' ')

	for j, th := range getPreviewTableHeaders(t, colors) {
		table.SetCell(0, j, newPreviewCell(th).SetSelectable(false))
	}

	for i, doc := range docs {
		for j, td := range getPreviewTableCells(doc, colors) {
			table.SetCell(i+1, j, newPreviewCell(td))
		}
	}

	return table
}

// getPreviewDescription lists the work notes and billable lines of one
// invoice, shown under the table for the selected row.
func getPreviewDescription(doc *render.Document, colors map[string]string) string {
	var sb strings.Builder

	for _, item := range doc.Config.WorkDone {
		sb.WriteString(fmt.Sprintf("- %v\n", item.Work))
	}

	sb.WriteString("\n")

	for _, line := range doc.Config.Billables {
		sb.WriteString(fmt.Sprintf("%v%-28v%v %4v h  %v  %v%v%v\n",
			colors["PreviewDate"],
			line.Description,
			c.Reset,
			line.Hours,
			line.Rate,
			colors["PreviewMoney"],
			lib.FormatCurrency(doc.Config.CurrencyMarker, lib.LineCost(line)),
			c.Reset,
		))
	}

	return sb.String()
}

// runPreview shows the computed invoices in the terminal until q or escape is
// pressed. Nothing is written to disk.
func runPreview(docs []*render.Document, t, colors map[string]string) error {
	app := tview.NewApplication()

	table := getPreviewTable(docs, t, colors)

	description := tview.NewTextView().SetDynamicColors(true)
	description.SetBorder(true)

	status := tview.NewTextView().SetDynamicColors(true)
	status.SetText(t["PreviewStatusText"])

	table.SetSelectionChangedFunc(func(row, _ int) {
		if row <= 0 || row > len(docs) {
			return
		}

		description.SetText(getPreviewDescription(docs[row-1], colors))
		description.ScrollToBeginning()
	})

	if len(docs) > 0 {
		table.Select(1, 0)
		description.SetText(getPreviewDescription(docs[0], colors))
	}

	layout := tview.NewFlex().SetDirection(tview.FlexRow).
		AddItem(table, 0, 1, true).
		AddItem(description, 0, 2, false).
		AddItem(status, 1, 0, false)

	app.SetInputCapture(func(e *tcell.EventKey) *tcell.EventKey {
		if e.Key() == tcell.KeyEscape || e.Key() == tcell.KeyCtrlC || e.Rune() == 'q' {
			app.Stop()

			return nil
		}

		return e
	})

	return app.SetRoot(layout, true).EnableMouse(true).Run()
}
