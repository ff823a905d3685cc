// Package observability provides formatted output utilities for the CLI's text mode.
package observability

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/jonathan/skillmatrix/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for text mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// truncate shortens s to at most n runes, marking the cut with "...".
func truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	runes := []rune(s)
	return string(runes[:n-3]) + "..."
}

// pad right-pads s with spaces to n runes.
func pad(s string, n int) string {
	if gap := n - utf8.RuneCountInString(s); gap > 0 {
		return s + strings.Repeat(" ", gap)
	}
	return s
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	inner := boxWidth - 4
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %s │\n", pad(truncate(title, inner), inner))
	fmt.Fprintf(p.out, "├%s┤\n", border)

	for _, line := range strings.Split(content, "\n") {
		fmt.Fprintf(p.out, "│ %s │\n", pad(truncate(line, inner), inner))
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// writeList writes up to limit bullet items under heading.
func writeList(sb *strings.Builder, heading string, items []string, limit int) {
	if len(items) == 0 {
		return
	}
	sb.WriteString(heading + ":\n")
	count := min(len(items), limit)
	for i := 0; i < count; i++ {
		fmt.Fprintf(sb, "  • %s\n", items[i])
	}
	if len(items) > limit {
		fmt.Fprintf(sb, "  ... and %d more\n", len(items)-limit)
	}
	sb.WriteString("\n")
}

// PrintSkills outputs the skills recognized in a resume.
func (p *Printer) PrintSkills(skills types.SkillSet) {
	if skills.Len() == 0 {
		p.printBox("RECOGNIZED SKILLS", "No catalog skills found")
		return
	}
	p.printBox("RECOGNIZED SKILLS", fmt.Sprintf("%d skills:\n\n%s", skills.Len(), strings.Join(skills.Sorted(), ", ")))
}

// PrintQuestions outputs generated interview questions, one block per question.
func (p *Printer) PrintQuestions(questions []types.GeneratedQuestion) {
	if len(questions) == 0 {
		p.printBox("INTERVIEW QUESTIONS", "No questions generated")
		return
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Generated %d questions:\n\n", len(questions))
	for i, q := range questions {
		fmt.Fprintf(&sb, "#%d  [%s · %s · %s]\n", i+1, q.Skill, q.Type, q.Difficulty)
		for _, line := range wrap(q.Question, boxWidth-8) {
			fmt.Fprintf(&sb, "    %s\n", line)
		}
		if i < len(questions)-1 {
			sb.WriteString("\n")
		}
	}

	p.printBox("INTERVIEW QUESTIONS", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintGrade outputs a grading result.
func (p *Printer) PrintGrade(result types.GradeResult) {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Grade:  %s\n\n", result.Grade)
	writeList(&sb, "Strengths", result.Strengths, maxItemsToShow)
	writeList(&sb, "Weaknesses", result.Weaknesses, maxItemsToShow)
	writeList(&sb, "Suggestions", result.Suggestions, maxItemsToShow)
	if result.ModelAnswer != "" {
		sb.WriteString("Model answer:\n")
		for _, line := range wrap(result.ModelAnswer, boxWidth-6) {
			fmt.Fprintf(&sb, "  %s\n", line)
		}
	}

	p.printBox("ANSWER GRADE", strings.TrimRight(sb.String(), "\n"))
}

// PrintAnalysis outputs resume scores, skill gaps and the highest-priority suggestions.
func (p *Printer) PrintAnalysis(analysis types.ResumeAnalysis) {
	var sb strings.Builder
	fmt.Fprintf(&sb, "ATS score:        %3d\n", analysis.ATSScore)
	fmt.Fprintf(&sb, "Job match score:  %3d\n", analysis.JobMatchScore)
	fmt.Fprintf(&sb, "  skills %d · experience %d · education %d\n\n",
		analysis.ScoreBreakdown.SkillsMatch, analysis.ScoreBreakdown.ExperienceMatch, analysis.ScoreBreakdown.EducationMatch)

	writeList(&sb, "Matching skills", analysis.MatchingSkills, maxItemsToShow)
	writeList(&sb, "Missing skills", analysis.MissingSkills, maxItemsToShow)
	writeList(&sb, "ATS issues", analysis.ATSIssues, 3)

	if len(analysis.Suggestions) > 0 {
		sb.WriteString("Suggestions:\n")
		count := min(len(analysis.Suggestions), maxItemsToShow)
		for i := 0; i < count; i++ {
			s := analysis.Suggestions[i]
			fmt.Fprintf(&sb, "  ⚑ [%s/%s] %s\n", s.Priority, s.Category, s.Suggestion)
		}
		if len(analysis.Suggestions) > maxItemsToShow {
			fmt.Fprintf(&sb, "  ... and %d more\n", len(analysis.Suggestions)-maxItemsToShow)
		}
	}

	p.printBox("RESUME ANALYSIS", strings.TrimRight(sb.String(), "\n"))
}

// wrap breaks text into lines of at most width runes on word boundaries.
// Existing line breaks are kept.
func wrap(text string, width int) []string {
	var lines []string
	for _, para := range strings.Split(text, "\n") {
		words := strings.Fields(para)
		if len(words) == 0 {
			lines = append(lines, "")
			continue
		}
		line := words[0]
		for _, w := range words[1:] {
			if utf8.RuneCountInString(line)+1+utf8.RuneCountInString(w) > width {
				lines = append(lines, line)
				line = w
				continue
			}
			line += " " + w
		}
		lines = append(lines, line)
	}
	return lines
}
