package message

// Шаблоны ответов для классификатора. Тексты согласованы с HR:
// менять только вместе с ними.
const (
	tmplDecline = "Thank you for letting us know! We'll keep your profile on file for future opportunities that might be a better fit. Best of luck!"

	tmplCompensation = "Thanks for asking about compensation! The role offers a competitive package. Would you be available for a quick call to discuss details?"

	tmplWorkArrangement = "Great question about work arrangements! We offer flexible options. Would you prefer remote, hybrid, or in-office?"

	tmplTeam = "Thanks for asking about the team! You'd be joining a small, experienced group of engineers. Would you like me to schedule a call with the hiring manager to tell you more?"

	tmplQuestionGeneric = "Thanks for your question! Let me get you the information you need. Could we schedule a quick call to discuss further?"

	tmplScheduling = "That's great to hear! Would you be available for a short intro call this week? Let me know what time works best for you."

	tmplClarification = "Of course, happy to clarify! [подставить детали вручную] Let me know if there's anything else you'd like to know."

	tmplAcknowledgment = "Thanks for your reply! I'll get back to you shortly with the next steps."
)
