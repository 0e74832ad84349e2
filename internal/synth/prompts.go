package synth

import (
	"fmt"
	"os"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// DefaultPrompts are the system prompts of the built-in experiment, from a
// bare instruction to a detailed classifier persona.
var DefaultPrompts = []string{
	"Classify the intent of this patient message into: appointment request, medication question, billing inquiry, test results, general question, complaint. Respond with only the intent category.",
	"You are a patient communication intent classifier. Analyze the following patient message and categorize its intent as: appointment request (scheduling), medication question (prescriptions), billing inquiry (payments), test results (lab work), general question (information), complaint (dissatisfaction). Consider tone, urgency, and medical terminology. Respond with intent only.",
	"You are an expert patient communication intent classifier. Categorize this patient message's intent: appointment request (scheduling needs), medication question (prescription issues), billing inquiry (payment concerns), test results (lab inquiries), general question (information seeking), complaint (dissatisfaction). Analyze: medical terminology, urgency indicators, tone, and context. Return intent category only.",
	"You are a specialized healthcare communication intent classifier. Analyze this patient message and classify intent as: appointment request (scheduling), medication question (prescriptions), billing inquiry (payments), test results (lab work), general question (information), complaint (dissatisfaction). Consider: medical terminology, urgency indicators, emotional tone, context clues, and patient demographics. Provide only the intent category as response.",
	"You are an advanced healthcare communication intent classifier with deep expertise in patient interactions. Analyze this patient message and classify intent as: appointment request (scheduling), medication question (prescriptions), billing inquiry (payments), test results (lab work), general question (information), complaint (dissatisfaction). Consider: medical terminology, urgency indicators, emotional tone, context clues, patient demographics, and communication patterns. Provide only the intent category as response.",
}

// LoadPrompts reads a markdown prompt file. See ParsePrompts.
func LoadPrompts(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading prompts: %w", err)
	}
	prompts, err := ParsePrompts(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return prompts, nil
}

// ParsePrompts extracts one prompt per level-2-or-deeper heading section of a
// markdown document, joining the section's paragraphs with blank lines. A
// document without such headings yields one prompt per paragraph.
func ParsePrompts(source []byte) ([]string, error) {
	doc := goldmark.New().Parser().Parse(text.NewReader(source))

	var (
		sections   [][]string
		paragraphs []string
		inSection  bool
	)
	for n := doc.FirstChild(); n != nil; n = n.NextSibling() {
		switch v := n.(type) {
		case *ast.Heading:
			if v.Level < 2 {
				inSection = false
				continue
			}
			sections = append(sections, nil)
			inSection = true
		case *ast.Paragraph:
			p := paragraphText(v, source)
			if p == "" {
				continue
			}
			paragraphs = append(paragraphs, p)
			if inSection {
				sections[len(sections)-1] = append(sections[len(sections)-1], p)
			}
		}
	}

	var prompts []string
	if len(sections) == 0 {
		prompts = paragraphs
	} else {
		for _, s := range sections {
			if len(s) > 0 {
				prompts = append(prompts, strings.Join(s, "\n\n"))
			}
		}
	}
	if len(prompts) == 0 {
		return nil, fmt.Errorf("no prompts found")
	}
	return prompts, nil
}

func paragraphText(p *ast.Paragraph, source []byte) string {
	lines := p.Lines()
	parts := make([]string, 0, lines.Len())
	for i := 0; i < lines.Len(); i++ {
		seg := lines.At(i)
		if line := strings.TrimSpace(string(seg.Value(source))); line != "" {
			parts = append(parts, line)
		}
	}
	return strings.Join(parts, " ")
}
