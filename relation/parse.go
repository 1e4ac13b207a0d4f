// Package relation parses the compact arrow notation used to describe
// directed graphs, e.g. "A→{B,C}, {D,E}→F, G↔H, I→J→K".
package relation

import (
	"regexp"
	"strings"
)

const (
	Arrow         = "→"
	BidirectArrow = "↔"
)

// Edge is a directed edge between two named nodes. A bidirectional edge
// stands for the pair of edges in both directions.
type Edge struct {
	From          string `json:"from"`
	To            string `json:"to"`
	Bidirectional bool   `json:"bidirectional"`
}

// asciiArrows is applied in order so "<->" is not half-consumed by "->"
var asciiArrows = strings.NewReplacer("<->", BidirectArrow, "->", Arrow)

// clauseParser is one entry of the clause cascade
type clauseParser struct {
	pattern *regexp.Regexp
	build   func(m []string) []Edge
}

// clauses is tried top to bottom, first match wins. Brace groups come before
// the plain chain so "A→{B,C}" is never read as a two-step chain.
var clauses = []clauseParser{
	{regexp.MustCompile(`^\{([^{}]*)\}\s*→\s*\{([^{}]*)\}$`), func(m []string) []Edge {
		return fan(members(m[1]), members(m[2]))
	}},
	{regexp.MustCompile(`^([^{}→↔]+?)\s*→\s*\{([^{}]*)\}$`), func(m []string) []Edge {
		return fan([]string{strings.TrimSpace(m[1])}, members(m[2]))
	}},
	{regexp.MustCompile(`^\{([^{}]*)\}\s*→\s*([^{}→↔]+)$`), func(m []string) []Edge {
		return fan(members(m[1]), []string{strings.TrimSpace(m[2])})
	}},
	{regexp.MustCompile(`^[^{}]*(→|↔)[^{}]*$`), func(m []string) []Edge {
		return chain(m[0])
	}},
	{regexp.MustCompile(`^` + step + `(?:\s*[→↔]\s*` + step + `)+$`), func(m []string) []Edge {
		return groupChain(m[0])
	}},
}

// step is one stop of a chain mixing names and brace groups, e.g. "A→B→{C,D}"
const step = `(?:\{[^{}→↔]*\}|[^{}→↔]+)`

var chainArrow = regexp.MustCompile(`→|↔`)

// Parse returns the edges of every comma-separated clause in order.
// Clauses that match no form are skipped, as are edges with a blank end.
func Parse(expression string) []Edge {
	var edges []Edge
	for _, clause := range splitClauses(asciiArrows.Replace(expression)) {
		edges = append(edges, parseClause(clause)...)
	}
	return edges
}

func parseClause(clause string) []Edge {
	clause = strings.TrimSpace(clause)
	if clause == "" {
		return nil
	}
	for _, c := range clauses {
		if m := c.pattern.FindStringSubmatch(clause); m != nil {
			return c.build(m)
		}
	}
	return nil
}

// splitClauses splits on commas outside braces
func splitClauses(s string) []string {
	var (
		out   []string
		depth int
		start int
	)
	for i, r := range s {
		switch r {
		case '{':
			depth++
		case '}':
			if depth > 0 {
				depth--
			}
		case ',':
			if depth == 0 {
				out = append(out, s[start:i])
				start = i + 1
			}
		}
	}
	return append(out, s[start:])
}

func members(group string) []string {
	var out []string
	for _, name := range strings.Split(group, ",") {
		if name = strings.TrimSpace(name); name != "" {
			out = append(out, name)
		}
	}
	return out
}

func fan(from, to []string) []Edge {
	var edges []Edge
	for _, f := range from {
		for _, t := range to {
			if f != "" && t != "" {
				edges = append(edges, Edge{From: f, To: t})
			}
		}
	}
	return edges
}

// groupChain fans each stop out to the next; a stop is a name or a brace group
func groupChain(clause string) []Edge {
	stops := chainArrow.Split(clause, -1)
	arrows := chainArrow.FindAllString(clause, -1)

	var edges []Edge
	for i, arrow := range arrows {
		for _, e := range fan(stopMembers(stops[i]), stopMembers(stops[i+1])) {
			e.Bidirectional = arrow == BidirectArrow
			edges = append(edges, e)
		}
	}
	return edges
}

func stopMembers(stop string) []string {
	stop = strings.TrimSpace(stop)
	if strings.HasPrefix(stop, "{") {
		return members(strings.Trim(stop, "{}"))
	}
	if stop == "" {
		return nil
	}
	return []string{stop}
}

// chain links consecutive names; the arrow between each pair decides the direction kind
func chain(clause string) []Edge {
	names := chainArrow.Split(clause, -1)
	arrows := chainArrow.FindAllString(clause, -1)

	var edges []Edge
	for i := 0; i < len(arrows); i++ {
		from, to := strings.TrimSpace(names[i]), strings.TrimSpace(names[i+1])
		if from == "" || to == "" {
			continue
		}
		edges = append(edges, Edge{From: from, To: to, Bidirectional: arrows[i] == BidirectArrow})
	}
	return edges
}
