package appointment

import "testing"

func fptr(v float64) *float64 { return &v }

func TestReconcile(t *testing.T) {
	tests := []struct {
		name      string
		owed      float64
		paid      float64
		flag      bool
		isNew     bool
		suggested *float64
		wantOwed  float64
		wantPaid  float64
		wantFlag  bool
	}{
		{
			name: "new zero-priced takes suggested fee",
			owed: 0, paid: 0, isNew: true, suggested: fptr(1500),
			wantOwed: 1500, wantPaid: 0, wantFlag: false,
		},
		{
			name: "new zero-priced without fee entry stays free",
			owed: 0, paid: 0, isNew: true, suggested: nil,
			wantOwed: 0, wantPaid: 0, wantFlag: false,
		},
		{
			name: "explicit price wins over suggested",
			owed: 2000, paid: 0, isNew: true, suggested: fptr(1500),
			wantOwed: 2000, wantPaid: 0, wantFlag: false,
		},
		{
			name: "existing appointment never re-prices",
			owed: 0, paid: 0, isNew: false, suggested: fptr(1500),
			wantOwed: 0, wantPaid: 0, wantFlag: false,
		},
		{
			name: "manual flag tops payment up to the price",
			owed: 1500, paid: 500, flag: true,
			wantOwed: 1500, wantPaid: 1500, wantFlag: true,
		},
		{
			name: "manual flag on unpaid settles in full",
			owed: 1500, paid: 0, flag: true,
			wantOwed: 1500, wantPaid: 1500, wantFlag: true,
		},
		{
			name: "full payment derives the flag",
			owed: 1500, paid: 1500,
			wantOwed: 1500, wantPaid: 1500, wantFlag: true,
		},
		{
			name: "overpayment derives the flag and is kept",
			owed: 1500, paid: 2000,
			wantOwed: 1500, wantPaid: 2000, wantFlag: true,
		},
		{
			name: "partial payment leaves the flag off",
			owed: 1500, paid: 700,
			wantOwed: 1500, wantPaid: 700, wantFlag: false,
		},
		{
			name: "zero-priced appointment never auto-flags",
			owed: 0, paid: 0,
			wantOwed: 0, wantPaid: 0, wantFlag: false,
		},
		{
			name: "new appointment with suggested fee and matching payment flags paid",
			owed: 0, paid: 1500, isNew: true, suggested: fptr(1500),
			wantOwed: 1500, wantPaid: 1500, wantFlag: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			owed, paid, flag := Reconcile(tt.owed, tt.paid, tt.flag, tt.isNew, tt.suggested)
			if owed != tt.wantOwed || paid != tt.wantPaid || flag != tt.wantFlag {
				t.Errorf("Reconcile() = (%v, %v, %v), want (%v, %v, %v)",
					owed, paid, flag, tt.wantOwed, tt.wantPaid, tt.wantFlag)
			}
		})
	}
}

func TestBalance(t *testing.T) {
	a := &Appointment{AmountOwed: 1500, AmountPaid: 600}
	if got := a.Balance(); got != 900 {
		t.Errorf("Balance() = %v, want 900", got)
	}
}
