package dates

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Parts parses loose date strings into CSL date-parts (year, month, day).
// Accepted shapes: "2020", "2020-05", "2020-05-01", "2020/05/01/extra"
// (RIS), and free text containing a plausible year ("Spring 1987").
// It returns nil when no year can be found.
func Parts(s string) []int {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	sep := func(r rune) bool { return r == '-' || r == '/' }
	fields := strings.FieldsFunc(s, sep)
	if len(fields) > 0 {
		if f0 := strings.TrimSpace(fields[0]); len(f0) == 4 && isDigits(f0) {
			y := YearFromDate(f0)
			parts := []int{y}
			for _, f := range fields[1:] {
				if len(parts) == 3 {
					break
				}
				v, err := strconv.Atoi(strings.TrimSpace(f))
				if err != nil || v <= 0 {
					break
				}
				parts = append(parts, v)
			}
			if len(parts) >= 2 && parts[1] > 12 {
				parts = parts[:1]
			}
			return parts
		}
	}
	if y := ExtractYear(s); y > 0 {
		return []int{y}
	}
	return nil
}

var months = []string{"jan", "feb", "mar", "apr", "may", "jun", "jul", "aug", "sep", "oct", "nov", "dec"}

// Month parses a month given as a number or an English (abbreviated) name.
// It returns 0 when s is not a month.
func Month(s string) int {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return 0
	}
	if v, err := strconv.Atoi(s); err == nil {
		if v >= 1 && v <= 12 {
			return v
		}
		return 0
	}
	if len(s) < 3 {
		return 0
	}
	for i, m := range months {
		if strings.HasPrefix(s, m) {
			return i + 1
		}
	}
	return 0
}

// YearFromDate parses the first 4 characters of a YYYY or YYYY-MM-DD string.
func YearFromDate(date string) int {
	date = strings.TrimSpace(date)
	if len(date) >= 4 {
		var y int
		if _, err := fmt.Sscanf(date[:4], "%d", &y); err == nil {
			return y
		}
	}
	return 0
}

// ExtractYear scans a string and returns a plausible 4-digit year if found.
func ExtractYear(s string) int {
	s = strings.TrimSpace(s)
	for i := 0; i+4 <= len(s); i++ {
		if !isDigits(s[i : i+4]) {
			continue
		}
		if i > 0 && isDigits(s[i-1:i]) {
			continue
		}
		y, _ := strconv.Atoi(s[i : i+4])
		if y >= 1000 && y <= time.Now().Year()+1 {
			return y
		}
	}
	return 0
}

func isDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return s != ""
}
