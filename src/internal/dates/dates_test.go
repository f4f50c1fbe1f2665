package dates

import (
	"reflect"
	"testing"
)

func TestParts(t *testing.T) {
	cases := []struct {
		in   string
		want []int
	}{
		{"2020", []int{2020}},
		{"2020-05", []int{2020, 5}},
		{"2020-05-01", []int{2020, 5, 1}},
		{"2019/11/03/Fall meeting", []int{2019, 11, 3}},
		{"2018///", []int{2018}},
		{"Spring 1987", []int{1987}},
		{"2020-13-01", []int{2020}},
		{"n.d.", nil},
		{"", nil},
	}
	for _, c := range cases {
		if got := Parts(c.in); !reflect.DeepEqual(got, c.want) {
			t.Fatalf("Parts(%q): want %v, got %v", c.in, c.want, got)
		}
	}
}

func TestMonth(t *testing.T) {
	for in, want := range map[string]int{"jan": 1, "February": 2, " 7 ": 7, "sept": 9, "13": 0, "xx": 0, "": 0, "ma": 0} {
		if got := Month(in); got != want {
			t.Fatalf("Month(%q): want %d, got %d", in, want, got)
		}
	}
}

func TestYearFromDate(t *testing.T) {
	if got := YearFromDate("2020-05-01"); got != 2020 {
		t.Fatalf("YearFromDate: want 2020, got %d", got)
	}
	if got := YearFromDate(""); got != 0 {
		t.Fatalf("YearFromDate empty: want 0, got %d", got)
	}
}

func TestExtractYear(t *testing.T) {
	if y := ExtractYear("Published in 1987 by X"); y != 1987 {
		t.Fatalf("ExtractYear: want 1987, got %d", y)
	}
	// Should not return years far in the future
	if y := ExtractYear("year 9999"); y != 0 {
		t.Fatalf("ExtractYear invalid: want 0, got %d", y)
	}
}
