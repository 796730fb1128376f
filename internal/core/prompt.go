// ABOUTME: Fixed prompt text for grounded answers
// ABOUTME: System instruction, user template, and the no-context placeholder
package core

import (
	"fmt"

	"github.com/harper/searchqa/internal/models"
)

// MaxTokens is the completion ceiling sent with every question
const MaxTokens = 1000

// DefaultQuestion is asked when the caller supplies none
const DefaultQuestion = "What are things to do when the games slow down my computer or crash it?"

// NoContextPlaceholder is substituted when retrieval found nothing.
// The model sees the literal word instead of an omitted section.
const NoContextPlaceholder = "None"

// SystemPrompt instructs the model to stay within the retrieved context
const SystemPrompt = `
You are an AI Assistant tasked with helping the users of Contoso Gaming with their queries

Refer to the context provided before answering the question
If the provided context is insufficient to answer the question, state so
**DO NOT MAKE STUFF UP**
`

const userPromptTemplate = "(\n Content: \n %s \n Refer to the context above to answer the user query below \n User Query: \n %s \n )"

// BuildUserPrompt places the context and the query into the user template
func BuildUserPrompt(query string, retrieved models.RetrievedContext) string {
	contextText := retrieved.Text
	if !retrieved.Found {
		contextText = NoContextPlaceholder
	}
	return fmt.Sprintf(userPromptTemplate, contextText, query)
}

// BuildMessages returns the system instruction followed by the user prompt
func BuildMessages(query string, retrieved models.RetrievedContext) []models.ChatMessage {
	return []models.ChatMessage{
		models.SystemMessage(SystemPrompt),
		models.UserMessage(BuildUserPrompt(query, retrieved)),
	}
}
