// Package extract turns reaction records into classified evidence. Two
// sources are supported: rendered HTML summary documents and decoded
// structured records. The two paths classify differently on purpose; see
// classify.FirstCategory vs classify.Classify.
package extract

import (
	"regexp"
	"strings"

	"github.com/ordlabs/ordscan/internal/classify"
	"github.com/ordlabs/ordscan/internal/model"
	"golang.org/x/net/html"
)

// roleLabels are the cell values recognized as a row's role label.
var roleLabels = map[string]bool{
	"solvent":  true,
	"reagent":  true,
	"reactant": true,
	"ligand":   true,
	"metal":    true,
	"base":     true,
}

// numericCellPattern matches cells that are purely amounts/percentages,
// optionally with a trailing unit ("1.0 eq", "50 %", "2 mmol"), and
// therefore cannot be an entity name.
var numericCellPattern = regexp.MustCompile(`(?i)^[0-9][0-9 .%]*(eq|equiv|mmol|mol|mg|g|ml|l)?$`)

// textLabels drive the free-text pass: "<Label> : v1, v2" occurrences are
// tallied under the mapped category. Catalyst lines count as Metal.
var textLabels = []struct {
	pattern  *regexp.Regexp
	category model.Category
}{
	{regexp.MustCompile(`(?i)Base\s*:\s*([^\n\r<]+)`), model.CategoryBase},
	{regexp.MustCompile(`(?i)Solvent\s*:\s*([^\n\r<]+)`), model.CategorySolvent},
	{regexp.MustCompile(`(?i)Ligand\s*:\s*([^\n\r<]+)`), model.CategoryLigand},
	{regexp.MustCompile(`(?i)Catalyst\s*:\s*([^\n\r<]+)`), model.CategoryMetal},
}

var listSplitPattern = regexp.MustCompile(`[;,]\s*`)

// ExtractComponents scans a reaction summary document for (category, name)
// evidence and returns per-category name counts. The tabular pass and the
// free-text pass run independently; a value found by both is counted twice.
func ExtractComponents(htmlContent string) (map[model.Category]map[string]int, error) {
	doc, err := html.Parse(strings.NewReader(htmlContent))
	if err != nil {
		return nil, err
	}

	out := make(map[model.Category]map[string]int)
	add := func(cat model.Category, name string) {
		if out[cat] == nil {
			out[cat] = make(map[string]int)
		}
		out[cat][name]++
	}

	for _, tr := range findAll(doc, "tr") {
		cells := cellTexts(tr)
		if len(cells) == 0 {
			continue
		}

		// The role label is the last cell whose text is a known label;
		// rows without one carry no evidence.
		label := ""
		for i := len(cells) - 1; i >= 0; i-- {
			if roleLabels[strings.ToLower(cells[i])] {
				label = cells[i]
				break
			}
		}
		if label == "" {
			continue
		}

		name := pickNameFromCells(cells[:len(cells)-1])
		if name == "" {
			if link := firstLink(tr); link != nil {
				name = nodeText(link)
			}
		}
		if name == "" {
			continue
		}

		if cat, ok := classify.FirstCategory(name, label); ok {
			add(cat, name)
		}
	}

	text := visibleText(doc)
	for _, lab := range textLabels {
		for _, m := range lab.pattern.FindAllStringSubmatch(text, -1) {
			for _, part := range listSplitPattern.Split(m[1], -1) {
				part = strings.TrimSpace(part)
				if part != "" {
					add(lab.category, part)
				}
			}
		}
	}

	return out, nil
}

// pickNameFromCells returns the first cell that can plausibly be an entity
// name: non-empty, not purely numeric/percentage, not itself a role label.
func pickNameFromCells(cells []string) string {
	for _, v := range cells {
		if v == "" {
			continue
		}
		if numericCellPattern.MatchString(v) {
			continue
		}
		if roleLabels[strings.ToLower(v)] {
			continue
		}
		return v
	}
	return ""
}

// findAll returns all element nodes with the given tag, in document order.
func findAll(n *html.Node, tag string) []*html.Node {
	var nodes []*html.Node
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && n.Data == tag {
			nodes = append(nodes, n)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return nodes
}

// cellTexts returns the trimmed text of each td in the row, left to right.
func cellTexts(tr *html.Node) []string {
	var cells []string
	for _, td := range findAll(tr, "td") {
		cells = append(cells, nodeText(td))
	}
	return cells
}

// firstLink returns the first anchor element in the row, if any.
func firstLink(tr *html.Node) *html.Node {
	links := findAll(tr, "a")
	if len(links) == 0 {
		return nil
	}
	return links[0]
}

// nodeText concatenates the trimmed text nodes under n.
func nodeText(n *html.Node) string {
	var buf strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			buf.WriteString(strings.TrimSpace(n.Data))
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return buf.String()
}

// visibleText extracts the document's visible text, space-joined, skipping
// script and style subtrees.
func visibleText(n *html.Node) string {
	var buf strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch n.Data {
			case "script", "style", "noscript":
				return
			}
		}
		if n.Type == html.TextNode {
			if text := strings.TrimSpace(n.Data); text != "" {
				if buf.Len() > 0 {
					buf.WriteString(" ")
				}
				buf.WriteString(text)
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return buf.String()
}
