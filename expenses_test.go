package fundsim

import "testing"

func TestAccrueExpenses(t *testing.T) {
	rules := []ExpenseRule{
		{Name: "Administration", Kind: PercentOfNAV, Annual: 1.2},
		{Name: "Custody", Kind: FixedMonthly, Amount: 2500},
		{Name: "Audit", Kind: PercentOfNAV, Annual: 0.3},
	}

	total, items := accrueExpenses(rules, 1200000)
	// 1.2%/12 of 1.2M = 1200; fixed 2500; 0.3%/12 of 1.2M = 300
	almostEqual(t, "total", total, 1200+2500+300)

	if len(items) != 3 {
		t.Fatalf("itemized %d charges, want 3", len(items))
	}
	almostEqual(t, "administration", items[0].Amount, 1200)
	almostEqual(t, "custody", items[1].Amount, 2500)
	almostEqual(t, "audit", items[2].Amount, 300)
	if items[0].Name != "Administration" {
		t.Errorf("item order must follow rule order, got %q first", items[0].Name)
	}
}

func TestAccrueExpenses_FixedChargesIgnoreNAV(t *testing.T) {
	rules := []ExpenseRule{{Name: "Custody", Kind: FixedMonthly, Amount: 1000}}
	// fixed amounts are charged unconditionally, even on a zero or negative basis
	for _, basis := range []float64{0, -50000, 1e9} {
		total, _ := accrueExpenses(rules, basis)
		if total != 1000 {
			t.Errorf("basis %v: total = %v, want 1000", basis, total)
		}
	}
}
