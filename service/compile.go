package service

import (
	"context"
	"regexp"
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"

	"github.com/liamcoop/logicgraph/internal/logger"
	"github.com/liamcoop/logicgraph/logic"
	"github.com/liamcoop/logicgraph/model"
	"github.com/liamcoop/logicgraph/scriptcheck"
)

// CompileResult is the analyzed document and the script synthesized from it
type CompileResult struct {
	Document logic.Document `json:"document"`
	Script   logic.Script   `json:"script"`
	Code     string         `json:"code"`
}

// Compile analyzes natural-language premises and a conclusion
func (s *Service) Compile(_ context.Context, premises []string, conclusion string) (CompileResult, error) {
	if err := logic.ValidateInput(premises, conclusion); err != nil {
		return CompileResult{}, err
	}

	doc, ok := s.compiler.Compile(premises, conclusion)
	if !ok {
		logger.Debug("Compile produced no document", "premises", len(premises))
		return CompileResult{}, ErrNotCompiled
	}

	script := logic.Synthesize(doc)
	logger.Info("Compiled argument",
		"premises", len(doc.Premises),
		"conclusion_kind", doc.Conclusion.Kind,
		"script_lines", len(script.Premises),
	)
	return CompileResult{
		Document: doc,
		Script:   script,
		Code:     logic.FullText(script.Premises, script.Conclusion),
	}, nil
}

// GenerateResult is a generated script and its lint report
type GenerateResult struct {
	model.Generated
	Lint scriptcheck.Report `json:"lint"`
}

// Generate compiles a structured model into a solver script
func (s *Service) Generate(_ context.Context, m model.SimpleModel, customDomain string) (GenerateResult, error) {
	gen, err := model.Generate(m, customDomain)
	if err != nil {
		return GenerateResult{}, err
	}

	report := s.checker.Check(gen.Premises, gen.Conclusion)
	if !report.Valid {
		logger.Warn("Generated script failed lint", "issues", len(report.Issues))
	}
	return GenerateResult{Generated: gen, Lint: report}, nil
}

// Check lints a script without proving it
func (s *Service) Check(_ context.Context, premises []string, conclusion string) scriptcheck.Report {
	return s.checker.Check(premises, conclusion)
}

// Example returns a canonical model by name
func (s *Service) Example(name string) (model.SimpleModel, error) {
	m, ok := model.Example(name)
	if !ok {
		return model.SimpleModel{}, ErrUnknownExample
	}
	return m, nil
}

// Diff operations
const (
	DiffEqual  = "equal"
	DiffInsert = "insert"
	DiffDelete = "delete"
)

// DiffLine is one script line and whether the regenerated script kept it
type DiffLine struct {
	Op   string `json:"op"`
	Text string `json:"text"`
}

// RoundTripReport shows what survives reconstruct then generate
type RoundTripReport struct {
	Model       model.SimpleModel `json:"model"`
	Regenerated *model.Generated  `json:"regenerated,omitempty"`
	Diff        []DiffLine        `json:"diff,omitempty"`
	Lost        []string          `json:"lost,omitempty"`
	Lossless    bool              `json:"lossless"`
	Error       string            `json:"error,omitempty"`
}

var conclusionCall = regexp.MustCompile(`^\s*(\w+)\((\w+)\)\s*$`)

// RoundTrip reconstructs a model from script lines, regenerates the script
// and diffs the two line by line. A model that cannot be regenerated is
// reported, not returned as an error.
func (s *Service) RoundTrip(_ context.Context, premises []string, conclusion string) RoundTripReport {
	m := model.Reconstruct(premises)
	if sm := conclusionCall.FindStringSubmatch(conclusion); sm != nil {
		m.ConclusionPredicate, m.ConclusionObject = sm[1], sm[2]
	} else {
		m.ConclusionPredicate, m.ConclusionObject = m.Predicates[0].Name, m.Objects[0]
	}

	report := RoundTripReport{Model: m}
	gen, err := model.Generate(m, "")
	if err != nil {
		report.Error = err.Error()
		return report
	}
	report.Regenerated = &gen

	report.Diff = diffLines(premises, gen.Premises)
	for _, d := range report.Diff {
		if d.Op == DiffDelete {
			report.Lost = append(report.Lost, d.Text)
		}
	}
	report.Lossless = len(report.Lost) == 0 && strings.TrimSpace(conclusion) == gen.Conclusion
	return report
}

func diffLines(before, after []string) []DiffLine {
	dmp := diffmatchpatch.New()
	a, b, lines := dmp.DiffLinesToChars(joinLines(before), joinLines(after))
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(a, b, false), lines)

	var out []DiffLine
	for _, d := range diffs {
		op := DiffEqual
		switch d.Type {
		case diffmatchpatch.DiffInsert:
			op = DiffInsert
		case diffmatchpatch.DiffDelete:
			op = DiffDelete
		}
		for _, line := range strings.SplitAfter(d.Text, "\n") {
			if line = strings.TrimSuffix(line, "\n"); line != "" {
				out = append(out, DiffLine{Op: op, Text: line})
			}
		}
	}
	return out
}

func joinLines(lines []string) string {
	var b strings.Builder
	for _, l := range lines {
		if l = strings.TrimSpace(l); l != "" {
			b.WriteString(l)
			b.WriteByte('\n')
		}
	}
	return b.String()
}
