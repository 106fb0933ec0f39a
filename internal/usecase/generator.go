package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/naka-gawa/readme-bot/internal/domain"
	"github.com/naka-gawa/readme-bot/internal/gateway"
)

// promptTemplate takes the repository name (%[1]s) and the code context (%[2]s).
const promptTemplate = `
You are an expert technical writer. Your task is to generate a comprehensive and professional README.md file for a GitHub repository.

Analyze the following code context from the repository named '%[1]s'. The context contains the content of multiple files.

**Code Context:**
%[2]s

**Instructions:**
Based on the code provided, create a complete README.md file. The README should be well-structured, easy to understand, and include the following sections:

1.  **Project Title:** Use the repository name ` + "`%[1]s`" + ` as the main title.
2.  **Description:** A detailed explanation of what the project does. Infer the primary purpose from the code.
3.  **Features:** A bulleted list of the key features or capabilities of the project.
4.  **Getting Started:**
    * **Prerequisites:** List any languages, frameworks, or tools that need to be installed. Mention dependency manifests if present.
    * **Installation:** Provide a simple, step-by-step guide on how to set up the project locally.
5.  **Usage:** Explain how to run the application or use the library. Provide code examples if applicable.
6.  **File Structure (Optional):** Briefly describe the purpose of the most important files and directories.

Use Markdown formatting. Do not include any introductory phrases like "Here is the README I generated for you." Only output the raw Markdown content for the README.md file starting with the ` + "`# %[1]s`" + ` title.
`

// Generator writes README documents with a generative model.
type Generator struct {
	model  gateway.TextGenerator
	logger logrus.FieldLogger
}

// NewGenerator creates a new Generator instance.
func NewGenerator(model gateway.TextGenerator, logger logrus.FieldLogger) *Generator {
	return &Generator{
		model:  model,
		logger: logger,
	}
}

// Generate returns the model's README for repoName. It never fails: without
// files a placeholder is returned, and a model error yields a fallback document.
func (g *Generator) Generate(ctx context.Context, repoName string, files domain.SourceFiles) string {
	log := g.logger.WithField("repository", repoName)
	if len(files) == 0 {
		log.Warn("No code content was provided to the model. Cannot generate README.")
		return PlaceholderReadme(repoName)
	}

	log.Info("Model is analyzing the code and generating the README...")
	text, err := g.model.Generate(ctx, BuildPrompt(repoName, files))
	if err != nil {
		log.Errorf("An error occurred with the README generation: %v", err)
		return FallbackReadme(repoName)
	}
	log.Info("README content generated successfully.")
	return text
}

// BuildPrompt embeds every file under a "--- File: <path> ---" header into the instruction template.
func BuildPrompt(repoName string, files domain.SourceFiles) string {
	var b strings.Builder
	for _, f := range files {
		fmt.Fprintf(&b, "--- File: %s ---\n%s\n\n", f.Path, f.Content)
	}
	return fmt.Sprintf(promptTemplate, repoName, b.String())
}

// PlaceholderReadme is returned when there was nothing to analyze.
func PlaceholderReadme(repoName string) string {
	return fmt.Sprintf("# %s\n\nProject description could not be generated as no code was found.", repoName)
}

// FallbackReadme is returned when the model call failed.
func FallbackReadme(repoName string) string {
	return fmt.Sprintf("# %s\n\nError generating README. The AI model failed to produce a response.", repoName)
}
