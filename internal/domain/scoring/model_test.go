package scoring

import "testing"

func TestParseMethod(t *testing.T) {
	cases := []struct {
		input string
		want  Method
		ok    bool
	}{
		{"ABSOLUTE", MethodAbsolute, true},
		{"absolute", MethodAbsolute, true},
		{"  Sixteen_Down  ", MethodSixteenDown, true},
		{"SIXTEEN_DOWN", MethodSixteenDown, true},
		{"BEST_BALL", "", false},
		{"", "", false},
	}

	for _, tc := range cases {
		got, ok := ParseMethod(tc.input)
		if ok != tc.ok || got != tc.want {
			t.Fatalf("ParseMethod(%q): got=(%q,%v) want=(%q,%v)", tc.input, got, ok, tc.want, tc.ok)
		}
	}
}

func TestConfidenceValues_Absolute(t *testing.T) {
	values, ok := MethodAbsolute.ConfidenceValues(4)
	if !ok {
		t.Fatal("expected ABSOLUTE to produce values")
	}
	if len(values) != 4 {
		t.Fatalf("unexpected length: got=%d want=4", len(values))
	}
	for i, v := range values {
		if v != 1 {
			t.Fatalf("values[%d]: got=%d want=1", i, v)
		}
	}
}

func TestConfidenceValues_SixteenDownStartsAtSixteen(t *testing.T) {
	values, ok := MethodSixteenDown.ConfidenceValues(4)
	if !ok {
		t.Fatal("expected SIXTEEN_DOWN to produce values")
	}
	want := []int{16, 15, 14, 13}
	if len(values) != len(want) {
		t.Fatalf("unexpected length: got=%d want=%d", len(values), len(want))
	}
	for i := range want {
		if values[i] != want[i] {
			t.Fatalf("values[%d]: got=%d want=%d", i, values[i], want[i])
		}
	}
}

func TestConfidenceValues_SixteenDownFullSlate(t *testing.T) {
	values, _ := MethodSixteenDown.ConfidenceValues(16)
	if len(values) != 16 {
		t.Fatalf("unexpected length: got=%d want=16", len(values))
	}
	if values[0] != 16 || values[15] != 1 {
		t.Fatalf("unexpected bounds: first=%d last=%d", values[0], values[15])
	}
}

func TestConfidenceValues_UnknownMethod(t *testing.T) {
	if _, ok := Method("BEST_BALL").ConfidenceValues(4); ok {
		t.Fatal("expected unknown method to fail")
	}
}

func intPtr(v int) *int { return &v }

func TestConfidencesValid_AbsoluteAcceptsAnything(t *testing.T) {
	if !MethodAbsolute.ConfidencesValid([]*int{intPtr(99), nil, intPtr(-3)}) {
		t.Fatal("ABSOLUTE should ignore confidence values entirely")
	}
}

func TestConfidencesValid_SixteenDown(t *testing.T) {
	cases := []struct {
		name        string
		confidences []*int
		want        bool
	}{
		{"all nil", []*int{nil, nil, nil, nil}, true},
		{"distinct in range", []*int{intPtr(16), intPtr(15), nil, intPtr(13)}, true},
		{"above top", []*int{intPtr(17), nil, nil, nil}, false},
		{"below floor", []*int{intPtr(12), nil, nil, nil}, false},
		{"duplicate", []*int{intPtr(16), intPtr(16), nil, nil}, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := MethodSixteenDown.ConfidencesValid(tc.confidences); got != tc.want {
				t.Fatalf("ConfidencesValid: got=%v want=%v", got, tc.want)
			}
		})
	}
}

func TestConfidencesValid_UnknownMethod(t *testing.T) {
	if Method("BEST_BALL").ConfidencesValid(nil) {
		t.Fatal("unknown method must never validate")
	}
}
