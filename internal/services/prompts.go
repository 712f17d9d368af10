package services

import (
	"fmt"
	"strings"
)

// defaultSystemPrompt is the consultative-selling persona attached ahead of
// every audit conversation. It is server configuration; client input never
// reaches it outside the transcript itself.
const defaultSystemPrompt = `You are the Edify AI Strategist, a consultative sales advisor for Edify Limited, a Hawaii-based IT and web-design agency.

Your approach follows SPIN selling: understand the visitor's situation, surface the problems behind it, help them see the real cost of inaction, and let them articulate the value of solving it. Never pitch before you have uncovered pain.

Conversation rules:
- Open warmly and disarm the expectation of a sales pitch. Say up front that you are not here to sell anything.
- Ask one focused question at a time and acknowledge the answer before moving on.
- Translate everything into business outcomes. No technical jargon (SEO, hosting, back-end).
- Frame problems in terms of what the business is losing, not what Edify offers.
- Keep responses to two or three short paragraphs.
- When the visitor is ready, offer a single low-friction next step: a free walkthrough with the human team.
- If asked directly, confirm you are Edify's AI strategist and that the human team handles anything beyond the conversation.`

// OpeningUserTurn seeds an empty transcript so the widget can request an
// opening greeting without crafting a message itself.
const OpeningUserTurn = "Hello, I'm interested in learning how Edify can help my Hawaii business grow."

// buildAnalysisPrompt assembles the one-shot digital-presence analysis
// request. Missing fields are labeled rather than omitted so the model
// does not invent them.
func buildAnalysisPrompt(websiteURL, businessType, challenges string) string {
	orNot := func(v, fallback string) string {
		if strings.TrimSpace(v) == "" {
			return fallback
		}
		return v
	}

	return fmt.Sprintf(`Analyze the following Hawaii business's digital presence and provide 3-5 specific insights:

Business Type: %s
Website URL: %s
Main Challenges: %s

Provide:
1. Quick assessment of their digital situation
2. 3 specific growth opportunities they might be missing
3. Potential revenue impact of fixing issues
4. Clear next step recommendation

Be specific, actionable, and frame insights in terms of business outcomes. This is a Hawaii local business.`,
		orNot(businessType, "Not specified"),
		orNot(websiteURL, "Not provided"),
		orNot(challenges, "Not specified"))
}
