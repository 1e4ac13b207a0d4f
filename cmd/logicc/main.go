// Command logicc compiles arguments and relation expressions from the
// command line.
//
//	logicc -premise "Socrates is human." -premise "All humans are mortal." -conclusion "Socrates is mortal."
//	logicc -example family -prove
//	logicc -model model.json
//	logicc -script socrates.py -conclusion "Mortal(socrates)"
//	logicc -relation "A→{B,C}" -layout tree
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"

	"github.com/liamcoop/logicgraph/internal/config"
	"github.com/liamcoop/logicgraph/logic"
	"github.com/liamcoop/logicgraph/model"
	"github.com/liamcoop/logicgraph/prover"
	"github.com/liamcoop/logicgraph/scriptcheck"
	"github.com/liamcoop/logicgraph/service"
)

// stringList collects a repeatable flag
type stringList []string

func (l *stringList) String() string { return strings.Join(*l, "; ") }

func (l *stringList) Set(v string) error {
	*l = append(*l, v)
	return nil
}

type options struct {
	premises   stringList
	conclusion string
	modelPath  string
	example    string
	domain     string
	scriptPath string
	relation   string
	layout     string
	nodeSize   float64
	bySize     bool
	prove      bool
	lemmatize  bool
	asJSON     bool
	noColor    bool
}

var (
	headerColor  = color.New(color.Bold)
	commentColor = color.New(color.FgBlue)
	declColor    = color.New(color.FgCyan)
	assertColor  = color.New(color.FgGreen)
	errorColor   = color.New(color.FgRed)
	warnColor    = color.New(color.FgYellow)
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("logicc", flag.ContinueOnError)
	fs.SetOutput(stderr)

	var o options
	fs.Var(&o.premises, "premise", "Premise sentence (repeatable)")
	fs.StringVar(&o.conclusion, "conclusion", "", "Conclusion sentence, or conclusion expression with -script")
	fs.StringVar(&o.modelPath, "model", "", "Generate from a SimpleModel JSON file")
	fs.StringVar(&o.example, "example", "", "Generate from a built-in model ("+strings.Join(model.ExampleNames(), ", ")+")")
	fs.StringVar(&o.domain, "domain", "", "Custom domain name for models whose domain is Custom")
	fs.StringVar(&o.scriptPath, "script", "", "Round-trip a solver script file (one line per statement)")
	fs.StringVar(&o.relation, "relation", "", "Relation expression to lay out, e.g. A→{B,C}")
	fs.StringVar(&o.layout, "layout", "force", "Layout for -relation: force, circular, tree, grid")
	fs.Float64Var(&o.nodeSize, "node-size", 10, "Base node size for -relation")
	fs.BoolVar(&o.bySize, "size-by-connections", false, "Grow nodes with their degree")
	fs.BoolVar(&o.prove, "prove", false, "Send the script to the solver at SOLVER_URL")
	fs.BoolVar(&o.lemmatize, "lemmatize", false, "Reduce common plurals before analysis")
	fs.BoolVar(&o.asJSON, "json", false, "Print JSON instead of text")
	fs.BoolVar(&o.noColor, "no-color", false, "Disable colour output")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if o.noColor || o.asJSON {
		color.NoColor = true
	}

	c := &cli{o: o, out: stdout}
	if err := c.execute(context.Background()); err != nil {
		errorColor.Fprintf(stderr, "error: %v\n", err)
		return 1
	}
	return 0
}

type cli struct {
	o   options
	out io.Writer
	svc *service.Service
}

func (c *cli) execute(ctx context.Context) error {
	svcOpts := []service.Option{}
	if c.o.lemmatize {
		svcOpts = append(svcOpts, service.WithNormalizer(logic.NewNormalizer(logic.WithLemmatizer(logic.CommonPlurals()))))
	}
	if c.o.prove {
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		svcOpts = append(svcOpts, service.WithProver(prover.NewHTTPProver(cfg.SolverURL)))
	}

	svc, err := service.New(svcOpts...)
	if err != nil {
		return err
	}
	c.svc = svc

	switch {
	case c.o.relation != "":
		return c.relationGraph(ctx)
	case c.o.scriptPath != "":
		return c.roundTrip(ctx)
	case c.o.modelPath != "" || c.o.example != "":
		return c.generate(ctx)
	case len(c.o.premises) > 0 || c.o.conclusion != "":
		return c.compile(ctx)
	default:
		return errors.New("nothing to do: pass -premise/-conclusion, -model, -example, -script or -relation")
	}
}

func (c *cli) compile(ctx context.Context) error {
	res, err := c.svc.Compile(ctx, c.o.premises, c.o.conclusion)
	if err != nil {
		return err
	}
	if c.o.asJSON {
		return c.printJSON(res)
	}

	headerColor.Fprintln(c.out, "Premises:")
	for i, st := range res.Document.Premises {
		fmt.Fprintf(c.out, "  %d. %s\n", i+1, describe(st))
	}
	headerColor.Fprintln(c.out, "Conclusion:")
	fmt.Fprintf(c.out, "  %s\n\n", describe(res.Document.Conclusion))

	c.printScript(res.Script.Premises, res.Script.Conclusion)
	return c.maybeProve(ctx, res.Script.Premises, res.Script.Conclusion)
}

func (c *cli) generate(ctx context.Context) error {
	m, err := c.loadModel()
	if err != nil {
		return err
	}

	res, err := c.svc.Generate(ctx, m, c.o.domain)
	if err != nil {
		return err
	}
	if c.o.asJSON {
		return c.printJSON(res)
	}

	c.printScript(res.Premises, res.Conclusion)
	c.printIssues(res.Lint.Issues)
	return c.maybeProve(ctx, res.Premises, res.Conclusion)
}

func (c *cli) loadModel() (model.SimpleModel, error) {
	if c.o.example != "" {
		return c.svc.Example(c.o.example)
	}

	data, err := os.ReadFile(c.o.modelPath)
	if err != nil {
		return model.SimpleModel{}, fmt.Errorf("failed to read model: %w", err)
	}
	var m model.SimpleModel
	if err := json.Unmarshal(data, &m); err != nil {
		return model.SimpleModel{}, fmt.Errorf("failed to parse model %s: %w", c.o.modelPath, err)
	}
	return m, nil
}

func (c *cli) roundTrip(ctx context.Context) error {
	data, err := os.ReadFile(c.o.scriptPath)
	if err != nil {
		return fmt.Errorf("failed to read script: %w", err)
	}

	report := c.svc.RoundTrip(ctx, strings.Split(string(data), "\n"), c.o.conclusion)
	if c.o.asJSON {
		return c.printJSON(report)
	}
	if report.Error != "" {
		return errors.New(report.Error)
	}

	for _, d := range report.Diff {
		switch d.Op {
		case service.DiffDelete:
			errorColor.Fprintf(c.out, "- %s\n", d.Text)
		case service.DiffInsert:
			assertColor.Fprintf(c.out, "+ %s\n", d.Text)
		default:
			fmt.Fprintf(c.out, "  %s\n", d.Text)
		}
	}
	if report.Lossless {
		headerColor.Fprintln(c.out, "\nround trip is lossless")
	} else {
		warnColor.Fprintf(c.out, "\n%d line(s) lost in round trip\n", len(report.Lost))
	}
	return nil
}

func (c *cli) relationGraph(ctx context.Context) error {
	g, err := c.svc.Graph(ctx, service.GraphRequest{
		Expression:        c.o.relation,
		Layout:            c.o.layout,
		NodeSize:          c.o.nodeSize,
		SizeByConnections: c.o.bySize,
	})
	if err != nil {
		return err
	}
	if c.o.asJSON {
		return c.printJSON(g)
	}

	headerColor.Fprintf(c.out, "Nodes (%s layout):\n", c.o.layout)
	for _, n := range g.Nodes() {
		fmt.Fprintf(c.out, "  %-12s x=%8.2f y=%8.2f size=%g\n", n.ID, n.X, n.Y, n.Size)
	}
	headerColor.Fprintln(c.out, "Edges:")
	for _, e := range g.Edges() {
		fmt.Fprintf(c.out, "  %s %s %s\n", e.From, e.Label, e.To)
	}
	return nil
}

func (c *cli) maybeProve(ctx context.Context, premises []string, conclusion string) error {
	if !c.o.prove {
		return nil
	}

	res, err := c.svc.Prove(ctx, premises, conclusion)
	var lintErr *service.LintError
	if errors.As(err, &lintErr) {
		c.printIssues(lintErr.Report.Issues)
		return errors.New("script not sent to the solver")
	}
	if err != nil {
		return err
	}

	fmt.Fprintln(c.out)
	switch res.Verdict {
	case prover.VerdictProven:
		assertColor.Fprintln(c.out, res.Message)
	case prover.VerdictNotProven, prover.VerdictUndetermined:
		warnColor.Fprintln(c.out, res.Message)
	default:
		errorColor.Fprintln(c.out, res.Message)
	}
	return nil
}

func (c *cli) printScript(premises []string, conclusion string) {
	for _, line := range premises {
		switch {
		case strings.HasPrefix(line, "#"):
			commentColor.Fprintln(c.out, line)
		case strings.HasPrefix(line, "s.add("):
			assertColor.Fprintln(c.out, line)
		default:
			declColor.Fprintln(c.out, line)
		}
	}
	commentColor.Fprintln(c.out, logic.ConclusionMarker)
	fmt.Fprintln(c.out, conclusion)
}

func (c *cli) printIssues(issues []scriptcheck.Issue) {
	for _, issue := range issues {
		warnColor.Fprintf(c.out, "warning: %s\n", issue)
	}
}

func (c *cli) printJSON(v any) error {
	enc := json.NewEncoder(c.out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func describe(st logic.Statement) string {
	switch st.Kind {
	case logic.KindRelation:
		return fmt.Sprintf("%s: %s(%s, %s)", st.Kind, st.Relation, st.Subject, st.Object)
	case logic.KindUnknown:
		return string(st.Kind)
	default:
		return fmt.Sprintf("%s: %s / %s", st.Kind, st.Subject, st.Predicate)
	}
}
