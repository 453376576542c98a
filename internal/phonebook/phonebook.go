// Package phonebook resolves staff display names to contact addresses.
package phonebook

import (
	"encoding/csv"
	"fmt"
	"os"
	"strings"
)

// Phonebook maps staff display names to mobile numbers, sourced from the
// staff roster CSV. Lookups are by exact display name, whitespace-trimmed.
type Phonebook struct {
	numbers map[string]string
}

// Load reads a roster CSV with "Full Name" and "Mobile Number" columns.
func Load(path string) (*Phonebook, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open staff roster: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read staff roster: %w", err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("staff roster %s is empty", path)
	}

	nameCol, numberCol := -1, -1
	for i, col := range records[0] {
		switch strings.TrimSpace(col) {
		case "Full Name":
			nameCol = i
		case "Mobile Number":
			numberCol = i
		}
	}
	if nameCol < 0 || numberCol < 0 {
		return nil, fmt.Errorf("staff roster %s missing Full Name / Mobile Number columns", path)
	}

	numbers := make(map[string]string, len(records)-1)
	for _, row := range records[1:] {
		if len(row) <= nameCol || len(row) <= numberCol {
			continue
		}
		name := strings.TrimSpace(row[nameCol])
		number := strings.TrimSpace(row[numberCol])
		if name == "" || number == "" {
			continue
		}
		numbers[name] = number
	}

	return &Phonebook{numbers: numbers}, nil
}

// Lookup returns the mobile number on file for a staff member.
func (p *Phonebook) Lookup(staffName string) (string, bool) {
	number, ok := p.numbers[strings.TrimSpace(staffName)]
	return number, ok
}

// Len returns the number of roster entries.
func (p *Phonebook) Len() int {
	return len(p.numbers)
}

// ToE164 converts an Australian mobile number (04xx...) to E.164 form
// (+614xx...). Already-canonical input passes through unchanged.
func ToE164(number string) string {
	number = strings.NewReplacer(" ", "", "-", "").Replace(strings.TrimSpace(number))
	switch {
	case strings.HasPrefix(number, "+"):
		return number
	case strings.HasPrefix(number, "0"):
		return "+61" + number[1:]
	default:
		return "+61" + number
	}
}
