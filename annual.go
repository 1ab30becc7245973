package fundsim

// AnnualRow aggregates the monthly series over one calendar year for the
// annual income statement.
type AnnualRow struct {
	Year int

	AssetIncome float64
	CashIncome  float64

	RegularExpenses float64
	PerformanceFee  float64
	CreditLosses    float64

	// NetIncome is the year's income after all expenses, fees and loss
	// provisions.
	NetIncome float64

	Contributions float64
	Withdrawals   float64
	Dividends     float64

	// ClosingNAV is the fund's NAV at the last projected month of the year.
	ClosingNAV float64
}

// AnnualStatement aggregates a completed period series by calendar year, in
// chronological order. The month-0 seed record counts toward its start year
// (it carries the initial contribution).
func AnnualStatement(p *Projection) []AnnualRow {
	var rows []AnnualRow
	for _, r := range p.Records {
		year := r.Month.Year()
		if len(rows) == 0 || rows[len(rows)-1].Year != year {
			rows = append(rows, AnnualRow{Year: year})
		}
		row := &rows[len(rows)-1]

		row.AssetIncome += r.AssetIncome
		row.CashIncome += r.CashIncome
		row.RegularExpenses += r.TotalExpenses - r.PerformanceFee - r.CreditLoss
		row.PerformanceFee += r.PerformanceFee
		row.CreditLosses += r.CreditLoss
		row.NetIncome += r.AssetIncome + r.CashIncome - r.TotalExpenses
		row.Contributions += r.Contribution
		row.Withdrawals += r.Withdrawal
		row.Dividends += r.Dividend
		row.ClosingNAV = r.ClosingNAV
	}
	return rows
}
