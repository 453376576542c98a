// Package seed generates a messy shift-export CSV from a fixed scenario
// pool, for exercising the audit and remediation pipeline locally.
package seed

import (
	_ "embed"
	"encoding/csv"
	"fmt"
	"math/rand"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

//go:embed scenarios.yaml
var scenariosYAML []byte

type scenario struct {
	Label    string `yaml:"label"`
	Note     string `yaml:"note"`
	Goals    string `yaml:"goals"`
	Incident string `yaml:"incident"`
}

type definitions struct {
	Staff      []string   `yaml:"staff"`
	Clients    []string   `yaml:"clients"`
	ShiftTypes []string   `yaml:"shift_types"`
	Scenarios  []scenario `yaml:"scenarios"`
}

var exportHeader = []string{
	"Shift ID", "Date", "Client", "Staff Member", "Shift Type",
	"Start Time", "End Time", "Progress Note", "Goals Referenced",
	"Incident Flag (Manual)",
}

// Generate writes a shift export with the given number of rows. The same
// seed yields the same file, so test fixtures stay reproducible.
func Generate(path string, rows int, randSeed int64) error {
	var defs definitions
	if err := yaml.Unmarshal(scenariosYAML, &defs); err != nil {
		return fmt.Errorf("parse embedded scenarios: %w", err)
	}
	if len(defs.Scenarios) == 0 {
		return fmt.Errorf("embedded scenario pool is empty")
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create export %s: %w", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(exportHeader); err != nil {
		return fmt.Errorf("write export header: %w", err)
	}

	rng := rand.New(rand.NewSource(randSeed))
	start := time.Now().AddDate(0, 0, -7)

	for i := 0; i < rows; i++ {
		sc := defs.Scenarios[rng.Intn(len(defs.Scenarios))]
		row := []string{
			fmt.Sprintf("SC-%d", 1000+i),
			start.AddDate(0, 0, i%3).Format("2006-01-02"),
			defs.Clients[rng.Intn(len(defs.Clients))],
			defs.Staff[rng.Intn(len(defs.Staff))],
			defs.ShiftTypes[rng.Intn(len(defs.ShiftTypes))],
			"09:00",
			"17:00",
			sc.Note,
			sc.Goals,
			sc.Incident,
		}
		if err := w.Write(row); err != nil {
			return fmt.Errorf("write export row: %w", err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("flush export: %w", err)
	}
	return nil
}

// Staff returns the seeded roster as (name, number) pairs so a matching
// staff_list.csv can be generated alongside the export.
func Staff() [][2]string {
	var defs definitions
	if err := yaml.Unmarshal(scenariosYAML, &defs); err != nil {
		return nil
	}
	pairs := make([][2]string, 0, len(defs.Staff))
	for i, name := range defs.Staff {
		pairs = append(pairs, [2]string{name, fmt.Sprintf("04%08d", 10000000+i*1111111)})
	}
	return pairs
}

// GenerateRoster writes a staff_list.csv matching the scenario roster.
func GenerateRoster(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create roster %s: %w", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write([]string{"Full Name", "Mobile Number"}); err != nil {
		return fmt.Errorf("write roster header: %w", err)
	}
	for _, pair := range Staff() {
		if err := w.Write([]string{pair[0], pair[1]}); err != nil {
			return fmt.Errorf("write roster row: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("flush roster: %w", err)
	}
	return nil
}
