package fundsim

// ExpenseItem is one itemized charge of a period.
type ExpenseItem struct {
	Name   string
	Amount float64
}

// accrueExpenses computes the period's charge of every expense rule, in list
// order. navBasis is the period's NAV after contributions and withdrawals but
// before income and fee accrual: expenses are computed off that snapshot, not
// off the closing NAV, which would be circular.
func accrueExpenses(rules []ExpenseRule, navBasis float64) (total float64, items []ExpenseItem) {
	items = make([]ExpenseItem, 0, len(rules))
	for _, rule := range rules {
		var charge float64
		switch rule.Kind {
		case PercentOfNAV:
			charge = navBasis * rule.Annual.Rate() / 12
		case FixedMonthly:
			charge = rule.Amount
		}
		items = append(items, ExpenseItem{Name: rule.Name, Amount: charge})
		total += charge
	}
	return total, items
}
