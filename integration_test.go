package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/arcticlab23/resto2026/internal"
	"github.com/xuri/excelize/v2"
)

// runCLI runs a resto2026 subcommand with the given args and returns stdout.
// It uses an empty config to avoid interference from the user's config.
func runCLI(t *testing.T, command string, args ...string) string {
	t.Helper()
	return runCLIWithConfig(t, "", command, args...)
}

// runCLIWithConfig runs a subcommand with a custom config file
func runCLIWithConfig(t *testing.T, configContent, command string, args ...string) string {
	t.Helper()

	output, err := execCLI(t, configContent, command, args...)
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			t.Fatalf("CLI failed: %v\nStderr: %s", err, exitErr.Stderr)
		}
		t.Fatalf("CLI failed: %v", err)
	}
	return output
}

func execCLI(t *testing.T, configContent, command string, args ...string) (string, error) {
	t.Helper()

	configPath := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(configPath, []byte(configContent), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	fullArgs := append([]string{"run", ".", command, "--config", configPath}, args...)
	cmd := exec.Command("go", fullArgs...)
	cmd.Env = append(os.Environ(), "NO_COLOR=1")

	// Capture stdout only (stderr has go download messages)
	output, err := cmd.Output()
	return string(output), err
}

// runCLIJSON runs a subcommand with JSON output and parses the result
func runCLIJSON(t *testing.T, command string, args ...string) internal.JSONOutput {
	t.Helper()
	output := runCLI(t, command, append(args, "--output", "json")...)

	var result internal.JSONOutput
	if err := json.Unmarshal([]byte(output), &result); err != nil {
		t.Fatalf("failed to parse JSON output: %v\nOutput: %s", err, output)
	}
	return result
}

func TestCLI_CalcMixedCurrency(t *testing.T) {
	result := runCLIJSON(t, "calc", "--price", "5", "--paid-bgn", "19,5583")

	if result.Settlement != "pending" {
		t.Errorf("expected pending, got %q", result.Settlement)
	}
	if result.Formatted.RemainingChangeEUR != "5.00" {
		t.Errorf("expected 5.00 €, got %s", result.Formatted.RemainingChangeEUR)
	}
	if result.Formatted.RemainingChangeBGN != "9.78" {
		t.Errorf("expected 9.78 лв, got %s", result.Formatted.RemainingChangeBGN)
	}
	if result.Inputs.PaidBGN != "19,5583" {
		t.Errorf("raw input should be kept, got %q", result.Inputs.PaidBGN)
	}
	if result.SessionID == "" {
		t.Error("expected a session id")
	}
}

func TestCLI_CalcBalanced(t *testing.T) {
	result := runCLIJSON(t, "calc", "--price", "10", "--paid-eur", "20", "--returned-eur", "10")
	if result.Settlement != "balanced" {
		t.Errorf("expected balanced, got %q", result.Settlement)
	}
}

func TestCLI_CalcRejectsInvalidAmount(t *testing.T) {
	_, err := execCLI(t, "", "calc", "--price", "12.3.4")

	var exitErr *exec.ExitError
	if !errors.As(err, &exitErr) {
		t.Fatalf("expected exit error, got %v", err)
	}
	if !strings.Contains(string(exitErr.Stderr), "invalid amount for --price") {
		t.Errorf("unexpected stderr: %s", exitErr.Stderr)
	}
}

func TestCLI_CalcTable(t *testing.T) {
	output := runCLIWithConfig(t, "language: en\n", "calc", "--price", "10", "--paid-eur", "10", "--returned-eur", "11", "--no-color")

	for _, want := range []string{"Change calculator 2026", "€ -11.00", "-21.51 лв", "More was returned than needed"} {
		if !strings.Contains(output, want) {
			t.Errorf("expected %q in output:\n%s", want, output)
		}
	}
}

func TestCLI_ConfigOutputFormat(t *testing.T) {
	output := runCLIWithConfig(t, "output: json\n", "calc", "--price", "1", "--paid-eur", "2")

	var result internal.JSONOutput
	if err := json.Unmarshal([]byte(output), &result); err != nil {
		t.Fatalf("config output: json was ignored: %v\nOutput: %s", err, output)
	}
}

func TestCLI_InvalidConfig(t *testing.T) {
	_, err := execCLI(t, "output: xml\n", "calc", "--price", "1")

	var exitErr *exec.ExitError
	if !errors.As(err, &exitErr) {
		t.Fatalf("expected exit error, got %v", err)
	}
	if !strings.Contains(string(exitErr.Stderr), "invalid config") {
		t.Errorf("unexpected stderr: %s", exitErr.Stderr)
	}
}

func TestCLI_ReplayFormatsAgree(t *testing.T) {
	for _, script := range []string{"testdata/till.txt", "testdata/till.json"} {
		t.Run(filepath.Base(script), func(t *testing.T) {
			result := runCLIJSON(t, "replay", script)

			want := internal.FormState{PriceEUR: "12.40", PaidEUR: "20", PaidBGN: "10", ReturnedEUR: "10", ReturnedBGN: "2"}
			if result.Inputs != want {
				t.Errorf("inputs = %+v, want %+v", result.Inputs, want)
			}
			if result.Formatted.RemainingChangeEUR != "1.69" {
				t.Errorf("expected 1.69 €, got %s", result.Formatted.RemainingChangeEUR)
			}
			if result.Formatted.RemainingChangeBGN != "3.31" {
				t.Errorf("expected 3.31 лв, got %s", result.Formatted.RemainingChangeBGN)
			}
		})
	}
}

func TestCLI_ReplayTrace(t *testing.T) {
	output := runCLIWithConfig(t, "language: en\n", "replay", "testdata/till.txt", "--trace", "--no-color")

	if !strings.Contains(output, "rejected") {
		t.Errorf("expected the 10x edit to be reported as rejected:\n%s", output)
	}
	if !strings.Contains(output, "undone") {
		t.Errorf("expected the undo to be reported:\n%s", output)
	}
}

func TestCLI_ReplayExport(t *testing.T) {
	exportPath := filepath.Join(t.TempDir(), "receipt.xlsx")
	runCLIWithConfig(t, "language: en\n", "replay", "testdata/till.json", "--export", exportPath)

	f, err := excelize.OpenFile(exportPath)
	if err != nil {
		t.Fatalf("failed to open receipt: %v", err)
	}
	defer f.Close()

	rows, err := f.GetRows("Receipt")
	if err != nil {
		t.Fatalf("failed to read receipt: %v", err)
	}
	last := len(rows)
	label, _ := f.GetCellValue("Receipt", fmt.Sprintf("A%d", last))
	status, _ := f.GetCellValue("Receipt", fmt.Sprintf("C%d", last))
	if label != "Status" || status != "" {
		t.Errorf("pending receipt should have an empty status, got %q = %q", label, status)
	}
}

func TestCLI_CalcPendingHasNoStatusText(t *testing.T) {
	output := runCLIWithConfig(t, "language: bg\n", "calc", "--price", "10", "--paid-eur", "20", "--returned-eur", "5", "--no-color")

	if !strings.Contains(output, "€ 5.00") {
		t.Errorf("expected € 5.00 in output:\n%s", output)
	}
	for _, unwanted := range []string{"Остава ресто за връщане", "Балансът е точен", "Върнато е повече от нужното"} {
		if strings.Contains(output, unwanted) {
			t.Errorf("unexpected %q in output:\n%s", unwanted, output)
		}
	}
}

func TestCLI_InitConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "resto", "config.yaml")

	cmd := exec.Command("go", "run", ".", "init-config", "--config", path)
	if out, err := cmd.CombinedOutput(); err != nil {
		t.Fatalf("init-config failed: %v\n%s", err, out)
	}

	cfg, err := internal.LoadConfig(path)
	if err != nil {
		t.Fatalf("written config does not load: %v", err)
	}
	if cfg.OutputFormat() != internal.OutputTable {
		t.Errorf("expected table output, got %s", cfg.OutputFormat())
	}

	// a second run refuses to overwrite
	cmd = exec.Command("go", "run", ".", "init-config", "--config", path)
	if err := cmd.Run(); err == nil {
		t.Error("expected init-config to fail when the file exists")
	}
}
