package services

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// TextGenerator là capability sinh text. Orchestrator chỉ thấy interface này
// nên test được bằng fake, không cần mạng.
type TextGenerator interface {
	GenerateText(ctx context.Context, prompt string) (string, error)
}

// GeminiClient gọi Gemini đúng một lần mỗi run, có timeout, không retry —
// policy retry (nếu có) là việc của tầng trên.
type GeminiClient struct {
	APIKey  string
	Model   string
	Timeout time.Duration
}

func NewGeminiClientFromEnv() *GeminiClient {
	model := os.Getenv("GEMINI_MODEL")
	if model == "" {
		model = "gemini-2.0-flash"
	}
	timeout := 60 * time.Second
	if s := os.Getenv("GEMINI_TIMEOUT_SECONDS"); s != "" {
		if n, err := strconv.Atoi(s); err == nil && n > 0 {
			timeout = time.Duration(n) * time.Second
		}
	}
	return &GeminiClient{
		APIKey:  os.Getenv("GEMINI_API_KEY"),
		Model:   model,
		Timeout: timeout,
	}
}

func (g *GeminiClient) GenerateText(ctx context.Context, prompt string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, g.Timeout)
	defer cancel()

	client, err := genai.NewClient(ctx, option.WithAPIKey(g.APIKey))
	if err != nil {
		return "", fmt.Errorf("không thể tạo Gemini client: %w", err)
	}
	defer client.Close()

	model := client.GenerativeModel(g.Model)
	resp, err := model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", fmt.Errorf("lỗi Gemini xử lý: %w", err)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("gemini không trả kết quả hợp lệ")
	}
	return fmt.Sprintf("%v", resp.Candidates[0].Content.Parts[0]), nil
}
