package report

import (
	"context"
	"fmt"
	"strings"

	"github.com/nnazuaff/LaporanKeuangan/internal/dateutil"
	"github.com/nnazuaff/LaporanKeuangan/internal/money"
	"github.com/nnazuaff/LaporanKeuangan/internal/transaction"
)

// Markdown renders a report as a markdown document, one section per
// calendar day.
type Markdown struct{}

func (Markdown) Generate(_ context.Context, in Input) ([]byte, error) {
	var sb strings.Builder

	today := dateutil.Today()

	sb.WriteString("# Laporan Keuangan\n\n")
	fmt.Fprintf(&sb, "Periode: %s\n\n", periodLabel(in.Filter))

	sb.WriteString("## Ringkasan\n\n")
	sb.WriteString("| | Jumlah |\n")
	sb.WriteString("|---|---|\n")
	fmt.Fprintf(&sb, "| Total Pemasukan | %s |\n", money.Format(in.Summary.Income))
	fmt.Fprintf(&sb, "| Total Pengeluaran | %s |\n", money.Format(in.Summary.Expense))
	fmt.Fprintf(&sb, "| Saldo Akhir | %s |\n\n", money.Format(in.Summary.Balance))

	if len(in.Sources) > 0 {
		sb.WriteString("## Sumber Saldo\n\n")

		for _, src := range in.Sources {
			fmt.Fprintf(&sb, "* %s: %s\n", src.Name, money.Format(src.Amount))
		}

		sb.WriteString("\n")
	}

	sb.WriteString("## Transaksi\n\n")

	if len(in.View) == 0 {
		sb.WriteString("Tidak ada transaksi.\n")
		return []byte(sb.String()), nil
	}

	for _, group := range transaction.GroupByDay(in.View) {
		fmt.Fprintf(&sb, "### %s\n\n", dateutil.FormatLong(group.Day, today))

		for _, tx := range group.Transactions {
			fmt.Fprintf(&sb, "* %s | %s | %s\n",
				tx.Description,
				tx.Category,
				money.FormatSigned(tx.Amount, tx.Kind == transaction.KindIncome),
			)
		}

		sb.WriteString("\n")
	}

	return []byte(sb.String()), nil
}

func periodLabel(f transaction.Filter) string {
	label := f.Period.String()

	if f.Period == transaction.PeriodCustom && f.Start != nil && f.End != nil {
		label = fmt.Sprintf("%s s.d. %s", dateutil.FormatShort(*f.Start), dateutil.FormatShort(*f.End))
	}

	if f.Kind != nil {
		label += ", " + f.Kind.Label()
	}

	return label
}

var _ Generator = Markdown{}
