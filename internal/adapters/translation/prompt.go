package translation

import "strings"

const legalPromptTemplate = `
You are a legal translation expert specializing in Indian legal documents. Your task is to:

1. Translate the given legal text from {sourceLang} to {targetLang}
2. Simplify complex legal terms and provide explanations
3. Make the text accessible to non-legal professionals
4. Maintain accuracy while improving clarity

Source Text: {text}

Please provide:
1. A clear translation
2. Simplified explanations for legal terms
3. Alternative ways to express complex concepts

Target Language: {targetLang}
Source Language: {sourceLang}

Response format:
Translation: [translated text]
Simplified: [simplified version with explanations]
Alternatives: [2-3 alternative expressions]
`

const summaryPromptPrefix = "Summarize the following document section in detail. " +
	"Include: Purpose, Requirements, Step-by-step Instructions, and Next Steps. " +
	"Format the summary as Markdown with headings and bullet points.\n\n"

// LegalPrompt renders the explanation prompt sent to generative models
func LegalPrompt(text, sourceLang, targetLang string) string {
	r := strings.NewReplacer(
		"{text}", text,
		"{sourceLang}", LanguageName(sourceLang),
		"{targetLang}", LanguageName(targetLang),
	)
	return r.Replace(legalPromptTemplate)
}
