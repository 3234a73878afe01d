// Package report renders a PeriodSummary into a spreadsheet. It is pure
// presentation: nothing here recomputes or adjusts the aggregation numbers.
package report

import (
	"fmt"
	"strconv"
	"time"

	"github.com/xuri/excelize/v2"

	"warungku/analytics/domain"
)

const sheet = "Laporan"

var monthNames = []string{
	"Januari", "Februari", "Maret", "April", "Mei", "Juni",
	"Juli", "Agustus", "September", "Oktober", "November", "Desember",
}

// Filename names the exported workbook the way the old PDF downloads were
// named.
func Filename(year, month int) string {
	return fmt.Sprintf("Laporan_WarungKu_%d_%02d.xlsx", year, month)
}

// BuildWorkbook lays out the monthly report: a header, a summary box and a
// table of the most recent transactions, with a footnote when the excerpt was
// truncated.
func BuildWorkbook(summary domain.PeriodSummary) (*excelize.File, error) {
	if summary.Month < 1 || summary.Month > 12 {
		return nil, fmt.Errorf("month out of range: %d", summary.Month)
	}

	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return nil, err
	}

	titleStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true, Size: 14}})
	if err != nil {
		return nil, err
	}
	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"059669"}},
	})
	if err != nil {
		return nil, err
	}
	boldStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, err
	}

	setCell := func(cell string, value interface{}) {
		_ = f.SetCellValue(sheet, cell, value)
	}

	setCell("A1", "WARUNGKU - Laporan Penjualan")
	_ = f.SetCellStyle(sheet, "A1", "A1", titleStyle)
	setCell("A2", "Dicetak pada: "+time.Now().Format("02 Jan 2006, 15:04"))
	setCell("A3", fmt.Sprintf("Periode: %s %d", monthNames[summary.Month-1], summary.Year))
	_ = f.SetCellStyle(sheet, "A3", "A3", boldStyle)

	setCell("A5", "Total Transaksi:")
	setCell("B5", fmt.Sprintf("%d trx", summary.TransactionCount))
	setCell("A6", "Total Diskon Diberikan:")
	setCell("B6", formatRupiah(summary.TotalDiscount))
	setCell("A7", "Total Pendapatan Kotor:")
	setCell("B7", formatRupiah(summary.TotalRevenue))
	_ = f.SetCellStyle(sheet, "B5", "B7", boldStyle)

	headerRow := 9
	headers := []string{"Waktu", "ID Transaksi", "Pembayaran", "Barang", "Total"}
	for i, title := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, headerRow)
		setCell(cell, title)
	}
	last, _ := excelize.CoordinatesToCellName(len(headers), headerRow)
	first, _ := excelize.CoordinatesToCellName(1, headerRow)
	_ = f.SetCellStyle(sheet, first, last, headerStyle)

	row := headerRow + 1
	for _, tx := range summary.Transactions {
		setCell("A"+strconv.Itoa(row), tx.CreatedAt.Format("02-01-2006 15:04"))
		setCell("B"+strconv.Itoa(row), shortID(tx.ID))
		setCell("C"+strconv.Itoa(row), tx.PaymentMethod)
		setCell("D"+strconv.Itoa(row), fmt.Sprintf("%d jenis", tx.ItemCount))
		setCell("E"+strconv.Itoa(row), formatRupiah(tx.Total))
		row++
	}

	if summary.Truncated {
		row++
		setCell("A"+strconv.Itoa(row), fmt.Sprintf("* Menampilkan %d dari %d transaksi di bulan ini.",
			len(summary.Transactions), summary.TransactionCount))
	}
	if summary.SkippedRecords > 0 {
		row++
		setCell("A"+strconv.Itoa(row), fmt.Sprintf("* %d baris dilewati karena stempel waktu tidak valid.",
			summary.SkippedRecords))
	}

	_ = f.SetColWidth(sheet, "A", "A", 20)
	_ = f.SetColWidth(sheet, "B", "B", 18)
	_ = f.SetColWidth(sheet, "C", "D", 14)
	_ = f.SetColWidth(sheet, "E", "E", 16)

	return f, nil
}

// shortID trims the opaque primary key for column width, like the old report
// did. Display only; the JSON API returns IDs whole.
func shortID(id string) string {
	if len(id) <= 10 {
		return id
	}
	return id[:10] + "..."
}

// formatRupiah renders an amount in the smallest currency unit as
// "Rp 1.234.567".
func formatRupiah(amount int64) string {
	digits := strconv.FormatInt(amount, 10)
	var out []byte
	for i, d := range []byte(digits) {
		if i > 0 && (len(digits)-i)%3 == 0 {
			out = append(out, '.')
		}
		out = append(out, d)
	}
	return "Rp " + string(out)
}
