package breakdown

import (
	"fmt"
	"strings"

	"github.com/mohammad-safakhou/breakdown/internal/research"
)

const (
	maxPromptSources     = 3
	maxSourceChars       = 2500
	noContextPlaceholder = "No web context was available for this task. Rely on your own knowledge."
)

// ComposePrompt renders the single instruction string sent to the completion
// backend. The schema description is a contract with the model: the
// normalizer reads exactly the shape requested here.
func ComposePrompt(task string, pages []research.Page) string {
	webContext := noContextPlaceholder
	if len(pages) > 0 {
		var blocks []string
		for i, p := range pages {
			if i >= maxPromptSources {
				break
			}
			text := p.Text
			if len(text) > maxSourceChars {
				text = text[:maxSourceChars]
			}
			blocks = append(blocks, fmt.Sprintf("Source %d: %s (%s)\n%s", i+1, p.Title, p.URL, text))
		}
		webContext = strings.Join(blocks, "\n\n")
	}

	return fmt.Sprintf(`You are a planning assistant that breaks a task down into concrete micro-tasks.

TASK: %s

WEB CONTEXT:
%s

Break the task into 8-15 micro-tasks. Each micro-task should take between 15 and 120 minutes. Order them so that earlier tasks unblock later ones.

Respond ONLY with valid JSON in the following format:
{
  "tasks": [
    {
      "text": "what to do, as a short imperative sentence",
      "estimatedTimeMinutes": 30,
      "priority": "high" | "medium" | "low",
      "dependsOn": [1, 2]
    }
  ]
}
"dependsOn" is optional and lists the 1-based positions of prerequisite tasks. Do not include any other text, explanation or markdown.`, task, webContext)
}
