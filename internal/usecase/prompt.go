package usecase

import (
	"strings"

	"github.com/SukarnBharadwaj/Krishi-Mitra/internal/domain/entity"
)

// SystemPrompt is the persona sent ahead of every question
const SystemPrompt = `
You are Krishi Mitra, a friendly agricultural assistant for Indian farmers.
- Answer briefly and clearly.
- Focus on crops, pests, irrigation, soil, and Indian government schemes.
- If you are not sure, say so and suggest contacting a local agriculture officer.
- Always end with: "Kripya local krishi visheshagya se bhi salaah lein."
`

// Canned replies
const (
	ReplyEmptyMessage = "Kripya koi prashn likhiye."
	ReplyNoAnswer     = "Maaf kijiye, main jawaab generate nahi kar paaya."
	ReplyUnavailable  = "Maaf kijiye, abhi system mein kuch samasya aa rahi hai. Thodi der baad dobara koshish karein."
	ReplyInvalidInput = "Kripya prashn sahi roop mein bhejiye."
)

// BuildPrompt assembles the single-turn prompt for a question
func BuildPrompt(message string, lang entity.Language) string {
	var b strings.Builder
	b.WriteString(SystemPrompt)
	b.WriteString("\n\nLanguage instruction: ")
	b.WriteString(lang.Directive())
	b.WriteString("\n\nUser question:\n")
	b.WriteString(message)
	b.WriteString("\n\nAnswer:")
	return b.String()
}
