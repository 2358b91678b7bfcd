package txbuilder

import "testing"

func TestEstimateFeeFormula(t *testing.T) {
	got := EstimateFee(2, 2, 1000)
	want := uint64(2*150+2*35+10) * 1000
	if got != want {
		t.Fatalf("EstimateFee(2,2,1000) = %d, want %d", got, want)
	}
}

func TestCheckFeeBounds(t *testing.T) {
	if err := CheckFee(500, 100, 1000); err != nil {
		t.Fatalf("500 should be within [100,1000]: %v", err)
	}
	if err := CheckFee(50, 100, 1000); err == nil {
		t.Fatal("expected InvalidFee below minimum")
	}
	if err := CheckFee(2000, 100, 1000); err == nil {
		t.Fatal("expected InvalidFee above maximum")
	}
}

func TestSplitChangeDustRule(t *testing.T) {
	// Property 9: if change < 1000 sompi, output count is 1 (no change
	// output); otherwise it's 2.
	_, has := SplitChange(10000, 5000, 4500)
	if has {
		t.Fatal("a 500-sompi residual is below dust and must not become a change output")
	}
	amount, has := SplitChange(10000, 5000, 3000)
	if !has || amount != 2000 {
		t.Fatalf("a 2000-sompi residual must become a change output of 2000, got has=%v amount=%d", has, amount)
	}
}

func TestSplitChangeExactlyAtDustThreshold(t *testing.T) {
	amount, has := SplitChange(DustThreshold+5000, 5000, 0)
	if !has || amount != DustThreshold {
		t.Fatalf("a residual exactly at the dust threshold must become change: has=%v amount=%d", has, amount)
	}
}
