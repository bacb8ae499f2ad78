package input

import "testing"

func TestDetectFamily(t *testing.T) {
	tests := []struct {
		button Button
		want   Family
	}{
		{ButtonWest, FamilyXbox},
		{ButtonSouth, FamilyPlayStation},
		{ButtonNorth, FamilyNintendo},
		{ButtonEast, FamilyGameCube},
		{ButtonRT, FamilySega},
		{ButtonStart, FamilyUnknown},
		{ButtonUnknown, FamilyUnknown},
	}
	for _, tt := range tests {
		if got := DetectFamily(tt.button); got != tt.want {
			t.Errorf("DetectFamily(%v) = %v, want %v", tt.button, got, tt.want)
		}
	}
}

func TestParseButton(t *testing.T) {
	tests := []struct {
		name string
		want Button
		ok   bool
	}{
		{"South", ButtonSouth, true},
		{"start", ButtonStart, true},
		{"A", ButtonSouth, true},
		{"x", ButtonWest, true},
		{" Guide ", ButtonGuide, true},
		{"Turbo", ButtonUnknown, false},
	}
	for _, tt := range tests {
		got, ok := ParseButton(tt.name)
		if got != tt.want || ok != tt.ok {
			t.Errorf("ParseButton(%q) = %v, %t, want %v, %t", tt.name, got, ok, tt.want, tt.ok)
		}
	}
}

func TestButtonFromCode(t *testing.T) {
	if b, ok := ButtonFromCode(11); !ok || b != ButtonUp {
		t.Errorf("ButtonFromCode(11) = %v, %t, want Up", b, ok)
	}
	for _, code := range []int{-1, 99} {
		if _, ok := ButtonFromCode(code); ok {
			t.Errorf("ButtonFromCode(%d) should not map", code)
		}
	}
}

func TestHotkeyEligible(t *testing.T) {
	eligible := map[Button]bool{
		ButtonGuide: true, ButtonStart: true,
		ButtonUp: true, ButtonDown: true, ButtonLeft: true, ButtonRight: true,
		ButtonNorth: true, ButtonSouth: true, ButtonEast: true, ButtonWest: true,
		ButtonLB: true, ButtonRB: true,
	}
	for b := ButtonSouth; b < numButtons; b++ {
		if b.HotkeyEligible() != eligible[b] {
			t.Errorf("%v.HotkeyEligible() = %t, want %t", b, b.HotkeyEligible(), eligible[b])
		}
	}
}

func TestParseFamily(t *testing.T) {
	if f, ok := ParseFamily("xbox"); !ok || f != FamilyXbox {
		t.Errorf("ParseFamily(xbox) = %v, %t", f, ok)
	}
	if _, ok := ParseFamily("UNKNOWN"); ok {
		t.Error("ParseFamily(UNKNOWN) should be rejected")
	}
	if len(FamilyNames()) != 5 {
		t.Errorf("FamilyNames() = %v, want 5 names", FamilyNames())
	}
}

func TestAxisFromCode(t *testing.T) {
	if a, ok := AxisFromCode(5); !ok || a != AxisTriggerRight {
		t.Errorf("AxisFromCode(5) = %v, %t", a, ok)
	}
	if _, ok := AxisFromCode(6); ok {
		t.Error("AxisFromCode(6) should not map")
	}
	if a, ok := ParseAxis("leftx"); !ok || a != AxisLeftX {
		t.Errorf("ParseAxis(leftx) = %v, %t", a, ok)
	}
}
