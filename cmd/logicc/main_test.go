package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/liamcoop/logicgraph/model"
)

func runCLI(t *testing.T, args ...string) (int, string, string) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	code := run(append([]string{"-no-color"}, args...), &stdout, &stderr)
	return code, stdout.String(), stderr.String()
}

func TestCompileCommand(t *testing.T) {
	code, out, errOut := runCLI(t,
		"-premise", "Socrates is human.",
		"-premise", "All humans are mortal.",
		"-conclusion", "Socrates is mortal",
		"-lemmatize",
	)
	if code != 0 {
		t.Fatalf("exit code %d, stderr %s", code, errOut)
	}
	for _, want := range []string{
		"predicate: socrates / human",
		"s.add(ForAll([x], Implies(human(x), mortal(x))))",
		"# Conclusion:\nmortal(socrates)",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestExampleCommand(t *testing.T) {
	code, out, errOut := runCLI(t, "-example", "socrates")
	if code != 0 {
		t.Fatalf("exit code %d, stderr %s", code, errOut)
	}
	if !strings.Contains(out, "s.add(Human(socrates))") {
		t.Errorf("unexpected output:\n%s", out)
	}
	if strings.Contains(out, "warning:") {
		t.Errorf("example should lint clean:\n%s", out)
	}
}

func TestModelCommandJSON(t *testing.T) {
	data, err := json.Marshal(model.FamilyExample())
	if err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(t.TempDir(), "family.json")
	if err := os.WriteFile(path, data, 0o600); err != nil {
		t.Fatal(err)
	}

	code, out, errOut := runCLI(t, "-model", path, "-json")
	if code != 0 {
		t.Fatalf("exit code %d, stderr %s", code, errOut)
	}

	var res struct {
		Conclusion string `json:"conclusion"`
	}
	if err := json.Unmarshal([]byte(out), &res); err != nil {
		t.Fatalf("output is not JSON: %v\n%s", err, out)
	}
	if res.Conclusion != "Ancestor(alice)" {
		t.Errorf("conclusion = %q", res.Conclusion)
	}
}

func TestScriptCommand(t *testing.T) {
	gen, err := model.Generate(model.SocratesExample(), "")
	if err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(t.TempDir(), "socrates.py")
	if err := os.WriteFile(path, []byte(strings.Join(gen.Premises, "\n")), 0o600); err != nil {
		t.Fatal(err)
	}

	code, out, errOut := runCLI(t, "-script", path, "-conclusion", gen.Conclusion)
	if code != 0 {
		t.Fatalf("exit code %d, stderr %s", code, errOut)
	}
	if !strings.Contains(out, "round trip is lossless") {
		t.Errorf("unexpected output:\n%s", out)
	}
}

func TestRelationCommand(t *testing.T) {
	code, out, errOut := runCLI(t, "-relation", "A->{B,C}", "-layout", "tree")
	if code != 0 {
		t.Fatalf("exit code %d, stderr %s", code, errOut)
	}
	if !strings.Contains(out, "Nodes (tree layout):") || !strings.Contains(out, "A → B") {
		t.Errorf("unexpected output:\n%s", out)
	}
}

func TestErrors(t *testing.T) {
	testCases := []struct {
		name string
		args []string
		code int
	}{
		{"Nothing to do", nil, 1},
		{"Unknown flag", []string{"-frobnicate"}, 2},
		{"Unknown example", []string{"-example", "plato"}, 1},
		{"Missing conclusion", []string{"-premise", "a is b"}, 1},
		{"Missing model file", []string{"-model", "/nonexistent/model.json"}, 1},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			code, _, errOut := runCLI(t, tc.args...)
			if code != tc.code {
				t.Errorf("exit code = %d, want %d (stderr %s)", code, tc.code, errOut)
			}
		})
	}
}
