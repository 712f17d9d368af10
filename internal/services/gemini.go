package services

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/iterator"
	"google.golang.org/api/option"

	"edify-backend/internal/models"
)

// ReplyStream yields incremental text fragments of one model reply.
// Next returns io.EOF after the final fragment.
type ReplyStream interface {
	Next() (string, error)
}

type GeminiService struct {
	client       *genai.Client
	model        *genai.GenerativeModel
	systemPrompt string
	rateChan     chan struct{} // Token bucket
}

func NewGeminiService(apiKey, modelName, systemPrompt string, concurrentReqs int) (*GeminiService, error) {
	ctx := context.Background()
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	if systemPrompt == "" {
		systemPrompt = defaultSystemPrompt
	}

	model := client.GenerativeModel(modelName)
	model.SetTemperature(0.7)
	model.SetTopP(0.95)
	model.SetMaxOutputTokens(1024)
	model.SystemInstruction = &genai.Content{
		Parts: []genai.Part{genai.Text(systemPrompt)},
	}

	// Token bucket for concurrent upstream calls
	rateChan := make(chan struct{}, concurrentReqs)
	for i := 0; i < concurrentReqs; i++ {
		rateChan <- struct{}{}
	}

	return &GeminiService{
		client:       client,
		model:        model,
		systemPrompt: systemPrompt,
		rateChan:     rateChan,
	}, nil
}

func (s *GeminiService) Close() {
	s.client.Close()
}

// acquireRate blocks until a rate slot is available
func (s *GeminiService) acquireRate(ctx context.Context) error {
	select {
	case <-s.rateChan:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(time.Minute):
		return fmt.Errorf("timeout waiting for Gemini rate slot")
	}
}

func (s *GeminiService) releaseRate() {
	s.rateChan <- struct{}{}
}

// StreamConversation opens a streaming completion call for the given
// transcript. All turns but the last become chat history; the last turn's
// content is the message sent. The rate slot is held until the returned
// stream finishes or fails.
func (s *GeminiService) StreamConversation(ctx context.Context, stage int, transcript []models.ChatMessage) (ReplyStream, error) {
	if len(transcript) == 0 {
		return nil, fmt.Errorf("empty transcript")
	}

	if err := s.acquireRate(ctx); err != nil {
		return nil, err
	}

	cs := s.model.StartChat()
	for _, turn := range transcript[:len(transcript)-1] {
		cs.History = append(cs.History, &genai.Content{
			Role:  geminiRole(turn.Role),
			Parts: []genai.Part{genai.Text(turn.Content)},
		})
	}

	last := transcript[len(transcript)-1]
	iter := cs.SendMessageStream(ctx, genai.Text(last.Content))

	return &geminiReplyStream{svc: s, iter: iter}, nil
}

type geminiReplyStream struct {
	svc  *GeminiService
	iter *genai.GenerateContentResponseIterator
	done bool
}

func (r *geminiReplyStream) Next() (string, error) {
	if r.done {
		return "", io.EOF
	}

	resp, err := r.iter.Next()
	if err == iterator.Done {
		r.finish()
		return "", io.EOF
	}
	if err != nil {
		r.finish()
		return "", err
	}

	return responseText(resp), nil
}

func (r *geminiReplyStream) finish() {
	if !r.done {
		r.done = true
		r.svc.releaseRate()
	}
}

// Analyze runs the one-shot digital-presence analysis.
func (s *GeminiService) Analyze(ctx context.Context, req models.AnalyzeRequest) (string, error) {
	if err := s.acquireRate(ctx); err != nil {
		return "", err
	}
	defer s.releaseRate()

	prompt := buildAnalysisPrompt(req.WebsiteURL, req.BusinessType, req.Challenges)

	resp, err := s.model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", fmt.Errorf("Gemini API error: %w", err)
	}

	return responseText(resp), nil
}

// geminiRole maps transcript roles onto the upstream API's role names.
func geminiRole(role string) string {
	if role == "assistant" {
		return "model"
	}
	return "user"
}

func responseText(resp *genai.GenerateContentResponse) string {
	var b strings.Builder
	for _, cand := range resp.Candidates {
		if cand.Content == nil {
			continue
		}
		for _, part := range cand.Content.Parts {
			if text, ok := part.(genai.Text); ok {
				b.WriteString(string(text))
			}
		}
	}
	return b.String()
}
