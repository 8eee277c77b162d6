package catalog

import "testing"

func TestValidLocation(t *testing.T) {
	cases := []struct {
		state, district string
		want            bool
	}{
		{"Selangor", "Klang", true},
		{"Johor", "Johor Bahru", true},
		{"Selangor", "Johor Bahru", false},
		{"Perlis", "Kangar", true},
		{"Nonexistent", "Klang", false},
		{"Selangor", "", false},
	}
	for _, c := range cases {
		if got := ValidLocation(c.state, c.district); got != c.want {
			t.Errorf("ValidLocation(%q, %q) = %v, want %v", c.state, c.district, got, c.want)
		}
	}
}

func TestValidGrade(t *testing.T) {
	if !ValidGrade("Pegawai Tadbir", "N41") {
		t.Fatalf("expected N41 to be valid for Pegawai Tadbir")
	}
	if ValidGrade("Pegawai Tadbir", "DG41") {
		t.Fatalf("DG41 must not be valid for Pegawai Tadbir")
	}
	if ValidGrade("Unknown Title", "N41") {
		t.Fatalf("unknown title must have no grades")
	}
}

func TestDistrictsCopy(t *testing.T) {
	ds := Districts("Melaka")
	if len(ds) != 3 {
		t.Fatalf("expected 3 districts for Melaka, got %d", len(ds))
	}
	ds[0] = "changed"
	if Districts("Melaka")[0] == "changed" {
		t.Fatalf("Districts must return a copy")
	}
}

func TestStatesSorted(t *testing.T) {
	st := States()
	if len(st) != 16 {
		t.Fatalf("expected 16 states, got %d", len(st))
	}
	for i := 1; i < len(st); i++ {
		if st[i-1] >= st[i] {
			t.Fatalf("states not sorted: %q before %q", st[i-1], st[i])
		}
	}
}
