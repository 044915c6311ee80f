package rag

import (
	"fmt"

	"github.com/sanskar800/Nepali-Legal-Assistant-RAG-System-for-Nepal-s-Laws/internal/legal"
	"github.com/sanskar800/Nepali-Legal-Assistant-RAG-System-for-Nepal-s-Laws/internal/llm"
)

const (
	systemPromptEnglish = "You are a legal assistant for Nepali law. " +
		"Follow legal hierarchy strictly: 1) Constitution 2) Muluki Act 3) Acts 4) Rules (procedure only). " +
		"Always cite law name, part, chapter (परिच्छेद), and section (दफा). " +
		"Do not hallucinate. If you're not certain about something, say so. " +
		"Respond in English."

	systemPromptNepali = "तपाईं नेपालको कानुनमा आधारित सहायक हुनुहुन्छ। " +
		"कानुनी प्राथमिकता पालना गर्नुहोस्। " +
		"सधैं कानुनको नाम, भाग, परिच्छेद र दफा उल्लेख गर्नुहोस्। " +
		"यदि तपाईं निश्चित हुनुहुन्न भने, त्यसो भन्नुहोस्। " +
		"नेपालीमा मात्र जवाफ दिनुहोस्।"

	instructionEnglish = "\n\nIMPORTANT: Please respond in ENGLISH only, even though the legal documents above are in Nepali. " +
		"Translate and explain the provisions in English."

	instructionNepali = "\n\nमहत्वपूर्ण: कृपया नेपालीमा मात्र जवाफ दिनुहोस्।"

	warningEnglish = "This response has low confidence. Please consult with a legal expert."
	warningNepali  = "यो जवाफको विश्वसनीयता कम छ। कृपया कानुनी विशेषज्ञसँग परामर्श गर्नुहोस्।"
)

// buildMessages assembles the system prompt and the user turn for lang.
func buildMessages(lang, contextText, question string) []llm.Message {
	system, instruction := systemPromptEnglish, instructionEnglish
	if lang == legal.LanguageNepali {
		system, instruction = systemPromptNepali, instructionNepali
	}

	return []llm.Message{
		{Role: llm.RoleSystem, Content: system},
		{Role: llm.RoleUser, Content: fmt.Sprintf("Context:\n%s\n\nQuestion:\n%s%s", contextText, question, instruction)},
	}
}

// lowConfidenceWarning returns the warning text in lang.
func lowConfidenceWarning(lang string) string {
	if lang == legal.LanguageNepali {
		return warningNepali
	}
	return warningEnglish
}
