package assistant

import (
	"context"
	"fmt"
	"log"
	"strings"

	"cyber_champions/internal/platform/config"

	"google.golang.org/genai"
)

// SystemInstruction is sent with every prompt; replies are shown verbatim.
const SystemInstruction = "Siz CyberChampions platformasining AI yordamchisiz. Kiberxavfsizlik, CTF, Bug Bounty va dasturlash bo'yicha mutaxassissiz. Foydalanuvchilarga o'zbek tilida qisqa va aniq javob bering. Hacking bo'yicha noqonuniy so'rovlarni rad eting va etik hakerlikni targ'ib qiling."

// FallbackReply is returned when the model answers with no text.
const FallbackReply = "Kechirasiz, javob olishda xatolik yuz berdi."

type Responder interface {
	Reply(ctx context.Context, message string) (string, error)
}

type GeminiResponder struct {
	client *genai.Client
	model  string
}

// New returns nil when no API key is configured; callers treat a nil
// Responder as "assistant unavailable".
func New(ctx context.Context, cfg *config.Config) (Responder, error) {
	if cfg.GeminiAPIKey == "" {
		log.Println("GEMINI_API_KEY not set, assistant disabled.")
		return nil, nil
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.GeminiAPIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("assistant: create client: %w", err)
	}
	return &GeminiResponder{client: client, model: cfg.GeminiModel}, nil
}

func (g *GeminiResponder) Reply(ctx context.Context, message string) (string, error) {
	resp, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(message), &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(SystemInstruction, genai.RoleUser),
	})
	if err != nil {
		return "", fmt.Errorf("assistant: generate content: %w", err)
	}
	text := strings.TrimSpace(resp.Text())
	if text == "" {
		return FallbackReply, nil
	}
	return text, nil
}
