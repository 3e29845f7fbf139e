package llm

import (
	_ "embed"
	"fmt"
	"strings"

	"github.com/scribehq/scribe-api/pkg/github"
	"gopkg.in/yaml.v3"
)

//go:embed prompt.yaml
var promptTemplateYAML []byte

// promptTemplate holds the drafting policy: how commits are categorized,
// which commits the model should ignore, and the tone instructions.
type promptTemplate struct {
	Categories   []string `yaml:"categories"`
	Skip         []string `yaml:"skip"`
	Instructions []string `yaml:"instructions"`
}

var template = mustLoadTemplate()

func mustLoadTemplate() promptTemplate {
	var tpl promptTemplate
	if err := yaml.Unmarshal(promptTemplateYAML, &tpl); err != nil {
		panic(fmt.Sprintf("invalid embedded prompt template: %v", err))
	}
	return tpl
}

// BuildPrompt renders a single prompt embedding every commit message with
// the drafting policy from the embedded template.
func BuildPrompt(commits []github.CommitRecord) string {
	var b strings.Builder

	b.WriteString("You are writing a changelog for a software project from its recent commits.\n\n")
	b.WriteString("Categories: " + strings.Join(template.Categories, " / ") + "\n")
	b.WriteString("Skip commits that are not user-facing: " + strings.Join(template.Skip, ", ") + "\n")
	for _, line := range template.Instructions {
		b.WriteString("- " + line + "\n")
	}

	b.WriteString("\nCommits (most recent first):\n")
	for _, commit := range commits {
		sha := commit.SHA
		if len(sha) > 7 {
			sha = sha[:7]
		}
		b.WriteString(fmt.Sprintf("- %s %s\n", sha, strings.TrimSpace(commit.Message)))
	}

	return b.String()
}
