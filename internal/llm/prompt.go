package llm

import "strings"

// ChatML markers for Qwen-family models.
const (
	chatMLStart = "<|im_start|>"
	chatMLEnd   = "<|im_end|>"
	endOfText   = "<|endoftext|>"
)

const (
	titleMaxTokens   = 50
	titleTemperature = 0.5
	titleInputChars  = 2000
)

const summarizeSystem = `You are a helpful assistant that processes documents. Your tasks are:
1. Correct any spelling and grammar errors (especially for Bahasa Indonesia and English)
2. Reformat the markdown if needed for better readability
3. Summarize the content into concise, well-structured paragraphs
4. Maintain the original meaning and important details

Output only the corrected and summarized content in markdown format.`

const correctSystem = `You are a helpful assistant that corrects documents. Your tasks are:
1. Correct any spelling and grammar errors (especially for Bahasa Indonesia and English)
2. Reformat the markdown if needed for better readability
3. Maintain all original content without summarizing

Output only the corrected content in markdown format.`

const titleSystem = `You are a helpful assistant that generates concise document titles. Your task is to:
1. Read the document content carefully
2. Identify the main topic and purpose
3. Generate a clear, descriptive title (max 10-15 words)
4. Output ONLY the title without any additional text or formatting

For documents in Bahasa Indonesia, provide the title in Bahasa Indonesia.
For documents in English, provide the title in English.`

// BuildPrompt renders the ChatML prompt for a processing task.
func BuildPrompt(task Task, content string) string {
	system := summarizeSystem
	user := "Process this document:"
	if task == TaskCorrectOnly {
		system = correctSystem
		user = "Correct this document:"
	}
	return chatML(system, user+"\n\n"+content)
}

// BuildTitlePrompt renders the ChatML prompt for title generation.
func BuildTitlePrompt(content string) string {
	return chatML(titleSystem, "Generate a title for this document:\n\n"+content)
}

func chatML(system, user string) string {
	var b strings.Builder
	b.WriteString(chatMLStart)
	b.WriteString("system\n")
	b.WriteString(system)
	b.WriteString(chatMLEnd)
	b.WriteString("\n")
	b.WriteString(chatMLStart)
	b.WriteString("user\n")
	b.WriteString(user)
	b.WriteString(chatMLEnd)
	b.WriteString("\n")
	b.WriteString(chatMLStart)
	b.WriteString("assistant\n")
	return b.String()
}

// cleanupTitle strips surrounding quotes and whitespace from a generated
// title.
func cleanupTitle(s string) string {
	s = strings.TrimSpace(s)
	s = strings.Trim(s, `"'`)
	return strings.TrimSpace(s)
}
