package cmd

import (
	"bufio"
	"bytes"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

var sample = []string{
	"VOL1173922                               100101                                1",
	"HDR1A100101S  11001011739220001000108194 08192 000000                           ",
	"HDR2F0051200106                                   00                            ",
	"UHL1 14308999999    AA0000BB4 MULTI  001       AUD0000                          ",
	"0100390105996309940202421315692/00000000000055BSDSAF 00000000055REF&LT 00000000055NAME   00000000055 14308",
	"4020242131569201740202421315692/00000000000055OSTEXT 09         CONTRA            OA NAME 09         16116",
	"EOF1A100101S  11001011739220001000108194 08192 000000                           ",
	"EOF2F0051200106                                   00                            ",
	"UTL10000000000055000000000005500000010000001        0000000                     ",
}

// execute runs the root command with args and fresh flag values.
func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	t.Setenv("STD18_CONFIG", "")

	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })

	cfgFile, envFile, verbose = "", "", false
	parseRows, parseFormat = nil, "json"
	dryRun, filePath = false, ""

	var stdout, stderr bytes.Buffer
	rootCmd.SetOut(&stdout)
	rootCmd.SetErr(&stderr)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return stdout.String(), stderr.String(), err
}

func writeSample(t *testing.T, dir, name string, lines []string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(strings.Join(lines, "\n")+"\n"), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestParseJSON(t *testing.T) {
	path := writeSample(t, t.TempDir(), "payments.std18", sample)

	stdout, stderr, err := execute(t, "parse", path, "--rows", "INSTR,CONTRA")
	if err != nil {
		t.Fatalf("parse: %v\n%s", err, stderr)
	}

	var envs []struct {
		Row    string         `json:"row"`
		Record map[string]any `json:"record"`
	}
	sc := bufio.NewScanner(strings.NewReader(stdout))
	for sc.Scan() {
		var env struct {
			Row    string         `json:"row"`
			Record map[string]any `json:"record"`
		}
		if err := json.Unmarshal(sc.Bytes(), &env); err != nil {
			t.Fatalf("bad JSON line %q: %v", sc.Text(), err)
		}
		envs = append(envs, env)
	}

	if len(envs) != 2 || envs[0].Row != "INSTR" || envs[1].Row != "CONTRA" {
		t.Fatalf("rows = %+v", envs)
	}
	if envs[0].Record["lineNo"] != float64(5) || envs[1].Record["index"] != float64(2) {
		t.Errorf("numbering = %v / %v", envs[0].Record, envs[1].Record)
	}
	if envs[0].Record["amount"] != "0.55" {
		t.Errorf("amount = %v", envs[0].Record["amount"])
	}
	if !strings.Contains(stderr, "lines=9 records=2 skipped=0 ignored=7") {
		t.Errorf("summary = %q", stderr)
	}
}

func TestParseText(t *testing.T) {
	path := writeSample(t, t.TempDir(), "payments.std18", sample)

	stdout, _, err := execute(t, "parse", path, "--format", "text", "--rows", "HDR1")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if !strings.HasPrefix(stdout, "HDR1  ") || !strings.Contains(stdout, "created=1992-06-06") {
		t.Errorf("stdout = %q", stdout)
	}
}

func TestParseUnidentifiedRecord(t *testing.T) {
	lines := append([]string{}, sample...)
	lines[1] = "XXX1" + lines[1][4:]
	path := writeSample(t, t.TempDir(), "broken.std18", lines)

	_, _, err := execute(t, "parse", path)
	if err == nil || !strings.Contains(err.Error(), "line 2") {
		t.Fatalf("err = %v, want unidentified record at line 2", err)
	}
}

func TestParseBadFlags(t *testing.T) {
	path := writeSample(t, t.TempDir(), "payments.std18", sample)

	if _, _, err := execute(t, "parse", path, "--format", "xml"); err == nil {
		t.Error("expected error for unknown format")
	}
	if _, _, err := execute(t, "parse", path, "--rows", "HDR7"); err == nil {
		t.Error("expected error for unknown row")
	}
}

func TestProcess(t *testing.T) {
	root := t.TempDir()
	in := filepath.Join(root, "in")
	out := filepath.Join(root, "out")
	if err := os.MkdirAll(in, 0755); err != nil {
		t.Fatal(err)
	}
	writeSample(t, in, "a.std18", sample)
	writeSample(t, in, "b.std18", sample)
	bad := append([]string{}, sample...)
	bad[3] = "ZZZ1" + bad[3][4:]
	writeSample(t, in, "c.std18", bad)

	cfgPath := filepath.Join(root, "std18.yaml")
	doc := "input_dir: " + in + "\noutput_dir: " + out + "\nmax_concurrency: 2\n"
	if err := os.WriteFile(cfgPath, []byte(doc), 0644); err != nil {
		t.Fatal(err)
	}

	stdout, _, err := execute(t, "process", "--config", cfgPath)
	if err == nil || !strings.Contains(err.Error(), "1 of 3 files failed") {
		t.Fatalf("err = %v", err)
	}
	if !strings.Contains(stdout, "Successful:      2") {
		t.Errorf("stdout = %s", stdout)
	}

	workbooks, _ := filepath.Glob(filepath.Join(out, "*.xlsx"))
	if len(workbooks) != 2 {
		t.Errorf("workbooks = %v, want 2", workbooks)
	}
	summaries, _ := filepath.Glob(filepath.Join(out, "processing_summary_*.txt"))
	if len(summaries) != 1 {
		t.Errorf("summaries = %v", summaries)
	}
}

func TestProcessDryRunSingleFile(t *testing.T) {
	root := t.TempDir()
	path := writeSample(t, root, "only.std18", sample)
	out := filepath.Join(root, "out")

	cfgPath := filepath.Join(root, "std18.yaml")
	if err := os.WriteFile(cfgPath, []byte("output_dir: "+out+"\n"), 0644); err != nil {
		t.Fatal(err)
	}

	stdout, _, err := execute(t, "process", "--config", cfgPath, "--file", path, "--dry-run")
	if err != nil {
		t.Fatalf("process: %v", err)
	}
	if !strings.Contains(stdout, "only.std18 -> (dry run) (9 records, 0 skipped)") {
		t.Errorf("stdout = %s", stdout)
	}
	if _, err := os.Stat(out); !os.IsNotExist(err) {
		t.Errorf("dry run created the output directory")
	}
}

func TestLayouts(t *testing.T) {
	stdout, _, err := execute(t, "layouts", "contra")
	if err != nil {
		t.Fatalf("layouts: %v", err)
	}
	if !strings.HasPrefix(stdout, "CONTRA (106 columns)") {
		t.Errorf("stdout = %q", stdout)
	}
	if !strings.Contains(stdout, "narrative") || strings.Contains(stdout, "reference") {
		t.Errorf("wrong field list:\n%s", stdout)
	}

	if _, _, err := execute(t, "layouts", "NOPE"); err == nil {
		t.Error("expected error for unknown row")
	}
}

func TestVersion(t *testing.T) {
	stdout, _, err := execute(t, "version")
	if err != nil {
		t.Fatalf("version: %v", err)
	}
	if !strings.Contains(stdout, "Standard 18 Reader") {
		t.Errorf("stdout = %q", stdout)
	}
}
