package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"bugana-shop/internal/models"
)

// Translator es el colaborador de traducción. Best-effort: ante un
// error el llamador sustituye un fallback, nunca propaga la falla.
type Translator interface {
	Translate(ctx context.Context, text, targetLang string) (string, error)
}

// Generator produce descripciones de producto (solo lado vendedor).
type Generator interface {
	GenerateDescription(ctx context.Context, productName, category string) (string, error)
}

// Chatter responde mensajes del chatbot. Sin estado desde el punto de
// vista del núcleo: la continuidad de la conversación es del colaborador.
type Chatter interface {
	Chat(ctx context.Context, message string) (string, error)
}

const (
	geminiEndpoint = "https://generativelanguage.googleapis.com/v1beta/models/%s:generateContent"
	geminiModel    = "gemini-2.5-flash"
)

const chatSystemInstruction = `You are "Bugana Bot," a friendly and helpful customer service assistant for Bugana, an e-commerce store specializing in authentic Filipino products, particularly from the Aklan region. Your goal is to provide excellent support in either English or Tagalog.

- Be conversational and polite.
- You can answer questions about products, shipping, returns, and store policies.
- If you don't know an answer, politely say so and suggest contacting human support at support@bugana.ph.
- Respond in the language of the user's query (English or Tagalog).`

// Gemini llama a la API REST de Gemini. Sin API key los métodos
// devuelven los textos de "servicio deshabilitado" en vez de fallar,
// para que la tienda siga usable offline.
type Gemini struct {
	apiKey string
	model  string
	client *http.Client
}

func NewGemini(apiKey string) *Gemini {
	return &Gemini{
		apiKey: apiKey,
		model:  geminiModel,
		client: &http.Client{Timeout: 30 * time.Second},
	}
}

// Enabled indica si hay API key configurada.
func (g *Gemini) Enabled() bool {
	return g.apiKey != ""
}

// Translate traduce una descripción de producto al idioma pedido.
func (g *Gemini) Translate(ctx context.Context, text, targetLang string) (string, error) {
	if !g.Enabled() {
		return "(Translation disabled) " + text, nil
	}
	if text == "" {
		return "", nil
	}

	langName := "English"
	if targetLang == models.LangTL {
		langName = "Tagalog"
	}
	prompt := fmt.Sprintf("Translate the following product description to %s. Keep the translation natural and appealing for an e-commerce site. Do not add any extra text or labels, just the translation itself:\n\n%q", langName, text)

	return g.generate(ctx, prompt, "", 0.3)
}

// GenerateDescription redacta una descripción corta para un producto.
func (g *Gemini) GenerateDescription(ctx context.Context, productName, category string) (string, error) {
	if !g.Enabled() {
		return fmt.Sprintf("(AI Description disabled) A wonderful %s in the %s category.", productName, category), nil
	}
	if productName == "" || category == "" {
		return "", nil
	}

	prompt := fmt.Sprintf(`You are a creative copywriter for "Bugana", an e-commerce store specializing in authentic Filipino products from the Aklan region.

Write a short, appealing, and natural-sounding product description (around 25-40 words) for an e-commerce site.

Do not use markdown or headings. Just return the paragraph of text for the description.

Product Name: %q
Category: %q

Highlight its craftsmanship, authenticity, or unique qualities.`, productName, category)

	return g.generate(ctx, prompt, "", 0.7)
}

// Chat responde un mensaje del cliente.
func (g *Gemini) Chat(ctx context.Context, message string) (string, error) {
	if !g.Enabled() {
		return "I'm sorry, my connection is currently offline. Please try again later.", nil
	}
	return g.generate(ctx, message, chatSystemInstruction, 1)
}

type generateRequest struct {
	Contents          []content         `json:"contents"`
	SystemInstruction *content          `json:"systemInstruction,omitempty"`
	GenerationConfig  *generationConfig `json:"generationConfig,omitempty"`
}

type content struct {
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

type generationConfig struct {
	Temperature float64 `json:"temperature"`
}

type generateResponse struct {
	Candidates []struct {
		Content content `json:"content"`
	} `json:"candidates"`
}

func (g *Gemini) generate(ctx context.Context, prompt, system string, temperature float64) (string, error) {
	reqBody := generateRequest{
		Contents:         []content{{Parts: []part{{Text: prompt}}}},
		GenerationConfig: &generationConfig{Temperature: temperature},
	}
	if system != "" {
		reqBody.SystemInstruction = &content{Parts: []part{{Text: system}}}
	}

	payload, err := json.Marshal(reqBody)
	if err != nil {
		return "", err
	}

	url := fmt.Sprintf(geminiEndpoint, g.model)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", g.apiKey)

	resp, err := g.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("gemini: status %d: %s", resp.StatusCode, body)
	}

	var out generateResponse
	if err := json.Unmarshal(body, &out); err != nil {
		return "", err
	}
	if len(out.Candidates) == 0 || len(out.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("gemini: empty response")
	}
	return strings.TrimSpace(out.Candidates[0].Content.Parts[0].Text), nil
}
