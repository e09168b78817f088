package summarizer

import "strings"

const systemPrompt = "You are an assistant that analyzes the contents of a website " +
	"and provides a comprehensive summary of the website's content, ignoring navigation " +
	"elements and focusing on the main information. Respond in markdown format with " +
	"clear headings and bullet points."

func buildUserPrompt(input Input) string {
	var b strings.Builder

	b.WriteString("You are looking at a website titled '")
	b.WriteString(strings.TrimSpace(input.Title))
	b.WriteString("'\n\n")

	if sourceURL := strings.TrimSpace(input.URL); sourceURL != "" {
		b.WriteString("Source: ")
		b.WriteString(sourceURL)
		b.WriteString("\n\n")
	}

	b.WriteString("The contents of this website are as follows; please provide a detailed summary " +
		"of this website in markdown. If it includes news or announcements, then " +
		"summarize these too. Focus on the main content and key information.\n\n")
	b.WriteString(strings.TrimSpace(input.Text))

	return b.String()
}
