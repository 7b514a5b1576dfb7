package status

import "testing"

func TestSetZeroNegative(t *testing.T) {
	tests := []struct {
		name     string
		v        uint8
		wantZero bool
		wantNeg  bool
	}{
		{"zero", 0x00, true, false},
		{"positive", 0x42, false, false},
		{"negative", 0x80, false, true},
		{"negative max", 0xFF, false, true},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			var r Register
			r.SetZeroNegative(test.v)
			if got := r.Test(Zero); got != test.wantZero {
				t.Errorf("SetZeroNegative(0x%.2X) Zero. Got %v want %v", test.v, got, test.wantZero)
			}
			if got := r.Test(Negative); got != test.wantNeg {
				t.Errorf("SetZeroNegative(0x%.2X) Negative. Got %v want %v", test.v, got, test.wantNeg)
			}
		})
	}
}

func TestSetCompare(t *testing.T) {
	tests := []struct {
		name       string
		reg, val   uint8
		wantCarry  bool
		wantZero   bool
		wantNeg    bool
	}{
		{"equal", 0x40, 0x40, true, true, false},
		{"reg greater", 0x50, 0x10, true, false, false},
		{"reg less", 0x10, 0x50, false, false, true},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			var r Register
			r.SetCompare(test.reg, test.val)
			if got := r.Test(Carry); got != test.wantCarry {
				t.Errorf("SetCompare(0x%.2X,0x%.2X) Carry. Got %v want %v", test.reg, test.val, got, test.wantCarry)
			}
			if got := r.Test(Zero); got != test.wantZero {
				t.Errorf("SetCompare(0x%.2X,0x%.2X) Zero. Got %v want %v", test.reg, test.val, got, test.wantZero)
			}
			if got := r.Test(Negative); got != test.wantNeg {
				t.Errorf("SetCompare(0x%.2X,0x%.2X) Negative. Got %v want %v", test.reg, test.val, got, test.wantNeg)
			}
		})
	}
}

func TestSetBit(t *testing.T) {
	var r Register
	r.SetBit(0xF0, 0xC0)
	if r.Test(Zero) {
		t.Errorf("SetBit(0xF0,0xC0) Zero got true want false")
	}
	if !r.Test(Overflow) {
		t.Errorf("SetBit(0xF0,0xC0) Overflow got false want true")
	}
	if !r.Test(Negative) {
		t.Errorf("SetBit(0xF0,0xC0) Negative got false want true")
	}

	r.SetBit(0x0F, 0x30)
	if !r.Test(Zero) {
		t.Errorf("SetBit(0x0F,0x30) Zero got false want true")
	}
}

func TestPushValue(t *testing.T) {
	var r Register
	r.Set(Carry | Negative)

	if got, want := r.PushValue(true), Carry|Negative|Unused|Break; got != want {
		t.Errorf("PushValue(true). Got 0x%.2X want 0x%.2X", got, want)
	}
	if got, want := r.PushValue(false), Carry|Negative|Unused; got != want {
		t.Errorf("PushValue(false). Got 0x%.2X want 0x%.2X", got, want)
	}
	if got := r.Get(); got != Carry|Negative {
		t.Errorf("PushValue must not mutate the register. Got 0x%.2X want 0x%.2X", got, Carry|Negative)
	}
}

func TestAssignRoundTrip(t *testing.T) {
	var r Register
	r.Assign(DecimalMode, true)
	if !r.Test(DecimalMode) {
		t.Errorf("Assign(DecimalMode, true) then Test. Got false want true")
	}
	r.Assign(DecimalMode, false)
	if r.Test(DecimalMode) {
		t.Errorf("Assign(DecimalMode, false) then Test. Got true want false")
	}
}
