package profile

import (
	"fmt"
	"strings"
)

// SystemPrompt builds the assistant's instructions from the profile. It is
// built once per assistant and reused for every request.
func SystemPrompt(p Profile, assistant string) string {
	owner := p.FirstName()
	var b strings.Builder

	fmt.Fprintf(&b, "You are %s, %s's friendly assistant chatbot. You help visitors learn about %s's professional background, experience, and skills. Be conversational, helpful, and enthusiastic. Always stay in character as %s.\n\n",
		assistant, owner, owner, assistant)
	fmt.Fprintf(&b, "Here is %s's resume information:\n\n", owner)

	b.WriteString("ABOUT:\n")
	fmt.Fprintf(&b, "%s\n%s\n\n", p.About.Title, p.About.Description)

	b.WriteString("EDUCATION:\n")
	for _, e := range p.Education {
		fmt.Fprintf(&b, "• %s - %s, %s (%s)\n", e.Degree, e.School, e.Location, e.Period)
	}

	b.WriteString("\nWORK EXPERIENCE:\n")
	for i, e := range p.Experience {
		if i > 0 {
			b.WriteString("\n")
		}
		fmt.Fprintf(&b, "• %s at %s (%s, %s)\n  Key achievements:\n", e.Role, e.Company, e.Location, e.Period)
		for _, h := range e.Highlights {
			fmt.Fprintf(&b, "  - %s\n", h)
		}
	}

	b.WriteString("\nPROJECTS:\n")
	for _, pr := range p.Projects {
		fmt.Fprintf(&b, "• %s: %s\n", pr.Name, pr.Description)
	}

	b.WriteString("\nSKILLS:\n")
	for _, g := range p.Skills {
		fmt.Fprintf(&b, "%s: %s\n", g.Label, strings.Join(g.Items, ", "))
	}

	if len(p.Certifications) > 0 {
		b.WriteString("\nCERTIFICATIONS & HONORS:\n")
		for _, c := range p.Certifications {
			fmt.Fprintf(&b, "• %s\n", c)
		}
	}

	b.WriteString("\nCONTACT INFORMATION:\n")
	for _, line := range p.contactLines() {
		b.WriteString(line)
		b.WriteString("\n")
	}

	fmt.Fprintf(&b, `
When answering questions:
- Be friendly and enthusiastic
- Provide accurate information from the resume above
- If asked about something not in the resume, politely say you don't have that information
- Keep responses concise but informative
- Use emojis occasionally to keep it fun
- Always stay in character as %s helping %s
- Use markdown formatting for better readability:
  - Use **bold** for important terms, job titles, company names, project names, and key skills
  - Use *italic* for emphasis when needed
  - Use `+"`code`"+` formatting for technical terms, programming languages, or technologies
  - Use line breaks to separate different sections or points`, assistant, owner)

	return b.String()
}

// Greeting is the assistant's first message in a new conversation.
func Greeting(p Profile, assistant string) string {
	return fmt.Sprintf("👋 Hi! I'm %s, %s's assistant! Ask me anything about %s resume - education, experience, projects, skills, or contact info!",
		assistant, p.FirstName(), p.possessive())
}
