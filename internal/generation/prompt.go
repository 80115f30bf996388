package generation

import (
	"bytes"
	"fmt"
	"text/template"
)

// SystemPrompt is the shared system message sent to backends that support
// one. It pins the model to bare JSONL output.
const SystemPrompt = "You are an expert in creating training data pairs. " +
	"Respond only with valid JSON objects having 'instruction' and 'response' fields, " +
	"one per line. Do not include any prefixes, suffixes, or explanations."

// targetedPromptText asks for a specific number of pairs. Used by remote
// backends that treat the requested count as a target.
const targetedPromptText = `Carefully read the following text and create training data pairs to fine-tune an LLM. The goal is to inject all the knowledge from the given text into the LLM.

Create instruction-response pairs that cover various aspects of the text, including:
- Key concepts and definitions
- Technical details and specifications
- Use cases and applications
- Best practices and guidelines
- Relationships between different components

Important guidelines:
1. Generate at least {{.PairCount}} unique instruction-response pairs
2. Ensure comprehensive coverage of the entire text
3. Create a mix of direct knowledge, scenario-based, implementation, and analytical questions
4. Make responses detailed but concise
5. Avoid redundant or overlapping questions

Text to analyze:
{{.SourceText}}

Generate ONLY valid JSON objects, one per line, each in the format: {"instruction":"question","response":"answer"}
Do not include any explanations or additional text.`

// focusedPromptText favors fewer, higher-quality pairs. Used by the local
// backend, which must never pad its output to hit a count.
const focusedPromptText = `Carefully read the following text and create high-quality training data pairs to fine-tune an LLM. The goal is to inject the most important knowledge from the given text into the LLM.

Create focused instruction-response pairs that cover the key aspects of the text: key concepts and definitions, technical details, use cases, best practices, and relationships between components.

Important guidelines:
1. Focus on quality over quantity; generate at most {{.PairCount}} pairs
2. Ensure each pair is highly relevant and accurate
3. Make responses detailed and precise
4. Avoid redundant or superficial questions

Text to analyze:
{{.SourceText}}

Generate ONLY valid JSON objects, one per line, each in the format: {"instruction":"question","response":"answer"}
Do not include any explanations or additional text.`

var (
	targetedPromptTmpl = template.Must(template.New("targeted").Parse(targetedPromptText))
	focusedPromptTmpl  = template.Must(template.New("focused").Parse(focusedPromptText))
)

// promptData is the data passed to the prompt templates.
type promptData struct {
	SourceText string
	PairCount  int
}

// BuildPrompt renders the targeted prompt for req.
func BuildPrompt(req Request) (string, error) {
	return renderPrompt(targetedPromptTmpl, req)
}

// BuildFocusedPrompt renders the quality-over-quantity prompt for req.
func BuildFocusedPrompt(req Request) (string, error) {
	return renderPrompt(focusedPromptTmpl, req)
}

func renderPrompt(tmpl *template.Template, req Request) (string, error) {
	if req.SourceText == "" {
		return "", fmt.Errorf("%w: source text is required", ErrEmptySource)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, promptData{SourceText: req.SourceText, PairCount: req.PairCount}); err != nil {
		return "", fmt.Errorf("failed to execute prompt template: %w", err)
	}

	return buf.String(), nil
}
