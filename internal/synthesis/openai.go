package synthesis

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"TradeScope/internal/model"
)

const systemPrompt = `You are a keen financial analyst specializing in daily trading opportunities.
Given the structured market data in the user message, produce a JSON analysis report with:
- fundamentals_summary, technicals_summary, news_summary: each {"rationale": string, "score": number in [0,1]}
- trading_signal: {"action": "BUY"|"SELL"|"HOLD", "confidence": number in [0,1], optional entry_price/exit_price/stop_loss/take_profit, "time_horizon": "intraday"|"swing"|"position", reason lists}
- market_alerts: list of {"alert_type", "severity", "description", "root_cause", "impact_analysis"}
- risk_factors, catalyst_events, key_drivers: string lists
- overall_commentary, overall_analysis: strings; contrarian_views: string
Echo back symbol, as_of and security_type exactly as given. Respond with the JSON object only.`

// OpenAIGenerator implements Generator against the OpenAI chat completions
// API.
type OpenAIGenerator struct {
	APIKey  string
	Model   string
	BaseURL string
	Client  *http.Client
}

// NewOpenAIGenerator creates a generator. model defaults to gpt-4o-mini.
func NewOpenAIGenerator(apiKey, model string) *OpenAIGenerator {
	if model == "" {
		model = "gpt-4o-mini"
	}
	return &OpenAIGenerator{
		APIKey:  apiKey,
		Model:   model,
		BaseURL: "https://api.openai.com/v1",
		Client:  &http.Client{Timeout: 30 * time.Second},
	}
}

type chatRequest struct {
	Model          string            `json:"model"`
	Temperature    float64           `json:"temperature"`
	ResponseFormat map[string]string `json:"response_format"`
	Messages       []chatMessage     `json:"messages"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error"`
}

// Generate sends the payload and decodes the structured report from the
// model's JSON reply.
func (g *OpenAIGenerator) Generate(ctx context.Context, payload *Payload) (*model.AnalysisReport, error) {
	user, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal payload: %w", err)
	}

	body, err := json.Marshal(chatRequest{
		Model:          g.Model,
		Temperature:    0.2,
		ResponseFormat: map[string]string{"type": "json_object"},
		Messages: []chatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: string(user)},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		g.BaseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+g.APIKey)

	resp, err := g.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("openai request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("openai read body: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("openai: status %d, body: %s", resp.StatusCode, string(respBody))
	}

	var chat chatResponse
	if err := json.Unmarshal(respBody, &chat); err != nil {
		return nil, fmt.Errorf("openai decode: %w", err)
	}
	if chat.Error != nil {
		return nil, fmt.Errorf("openai api error: %s", chat.Error.Message)
	}
	if len(chat.Choices) == 0 {
		return nil, fmt.Errorf("openai: empty choices")
	}

	var report model.AnalysisReport
	if err := json.Unmarshal([]byte(chat.Choices[0].Message.Content), &report); err != nil {
		return nil, fmt.Errorf("decode report: %w", err)
	}
	return &report, nil
}
