// Package ai talks to a Gemini-style generateContent endpoint. The service
// is an opaque collaborator: requests go out, text or structured JSON comes
// back, and failures surface as errors without touching any financial data.
package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/quangdm/finvi/internal/models"
)

var (
	// ErrUnavailable marks transport failures and non-2xx responses.
	ErrUnavailable = errors.New("ai service unavailable")
	// ErrUnparseable marks responses that are not the expected shape.
	ErrUnparseable = errors.New("ai response unparseable")
)

type Client struct {
	baseURL string
	model   string
	apiKey  string
	client  *http.Client
}

func NewClient(baseURL, model, apiKey string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		model:   model,
		apiKey:  apiKey,
		client: &http.Client{
			Timeout: 60 * time.Second,
		},
	}
}

// BillScan is the structured result of reading a receipt image. Fields the
// model could not determine are nil.
type BillScan struct {
	Description *string          `json:"description,omitempty"`
	Amount      *decimal.Decimal `json:"amount,omitempty"`
	Category    *string          `json:"category,omitempty"`
}

// Forecast is a 30-day cash flow prediction.
type Forecast struct {
	PredictedIncome   decimal.Decimal `json:"predictedIncome"`
	PredictedExpenses decimal.Decimal `json:"predictedExpenses"`
	PredictedSavings  decimal.Decimal `json:"predictedSavings"`
	Analysis          string          `json:"analysis"`
}

const advisePrompt = `**System Instruction:**
You are an expert financial advisor named 'Fin-Bot'. Your goal is to provide helpful, clear, and encouraging financial advice to the user.
- Analyze the user's financial data provided below.
- Answer the user's question directly and concisely.
- Use the provided data to support your advice with specific examples.
- All monetary values are in Vietnamese Dong (VND). Format large numbers with commas for readability (e.g., 1,000,000 VND).
- Your tone should be professional yet friendly. Avoid jargon.
- Structure your response using markdown for better readability (headings, lists, bold text).
- Do not lecture or criticize the user's spending habits. Instead, focus on positive suggestions and potential improvements.

**User's Financial Data (JSON):**
` + "```json\n%s\n```" + `

**User's Question:**
%q

**Your Analysis and Advice:**
`

// Advise answers a free-form question against a snapshot of the user's
// financial data and returns markdown text.
func (c *Client) Advise(ctx context.Context, question string, snapshot any) (string, error) {
	data, err := json.MarshalIndent(snapshot, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encode snapshot: %w", err)
	}

	req := generateRequest{
		Contents: []content{{Parts: []part{{Text: fmt.Sprintf(advisePrompt, data, question)}}}},
	}
	return c.generate(ctx, req)
}

const scanBillPrompt = `Analyze this receipt/bill image and extract the following information in JSON format:
1. "description": A short, suitable description for the transaction (e.g., "Grocery shopping", "Dinner at restaurant"). Infer this from the store name or items.
2. "amount": The final total amount paid. It must be a number, without any currency symbols or commas.
3. "category": Suggest a relevant expense category from this list: %s.

If any field cannot be determined, omit it from the JSON. The response must be a valid JSON object.`

// ScanBill reads a base64-encoded receipt image and extracts a transaction
// draft, suggesting a category from the given list.
func (c *Client) ScanBill(ctx context.Context, imageB64, mimeType string, categories []string) (BillScan, error) {
	categoryList, err := json.Marshal(categories)
	if err != nil {
		return BillScan{}, fmt.Errorf("encode categories: %w", err)
	}

	req := generateRequest{
		Contents: []content{{Parts: []part{
			{InlineData: &inlineData{MimeType: mimeType, Data: imageB64}},
			{Text: fmt.Sprintf(scanBillPrompt, categoryList)},
		}}},
		GenerationConfig: &generationConfig{
			ResponseMimeType: "application/json",
			ResponseSchema: &schema{
				Type: "OBJECT",
				Properties: map[string]*schema{
					"description": {Type: "STRING"},
					"amount":      {Type: "NUMBER"},
					"category":    {Type: "STRING"},
				},
			},
		},
	}

	text, err := c.generate(ctx, req)
	if err != nil {
		return BillScan{}, err
	}

	var scan BillScan
	if err := json.Unmarshal([]byte(strings.TrimSpace(text)), &scan); err != nil {
		return BillScan{}, fmt.Errorf("%w: %v", ErrUnparseable, err)
	}
	return scan, nil
}

const forecastPrompt = `**System Instruction:**
You are a financial analyst AI. Your task is to predict cash flow for the next 30 days based on the user's past transaction history provided in JSON format. All monetary values are in Vietnamese Dong (VND).

**User's Transaction History (last 90 days):**
` + "```json\n%s\n```" + `

**Task:**
Based on the provided transaction history, analyze spending and income patterns. Then, predict the total income, total expenses, and the resulting net savings for the **next 30 days**. Provide a brief, insightful analysis (2-3 sentences) of the forecast, mentioning any notable patterns or suggestions.

**Output Format:**
The response must be a valid JSON object matching the provided schema. Do not include any markdown or other text outside of the JSON object.`

const noRecentDataAnalysis = "Không có dữ liệu giao dịch gần đây để phân tích."

// ForecastCashFlow predicts the next 30 days from the last 90 days of
// history. With no recent transactions it returns the zero forecast locally
// without calling the service.
func (c *Client) ForecastCashFlow(ctx context.Context, transactions []models.Transaction, now time.Time) (Forecast, error) {
	cutoff := now.AddDate(0, 0, -90)
	var recent []models.Transaction
	for _, tx := range transactions {
		if !tx.Date.Before(cutoff) {
			recent = append(recent, tx)
		}
	}

	if len(recent) == 0 {
		return Forecast{Analysis: noRecentDataAnalysis}, nil
	}

	history, err := json.MarshalIndent(recent, "", "  ")
	if err != nil {
		return Forecast{}, fmt.Errorf("encode history: %w", err)
	}

	req := generateRequest{
		Contents: []content{{Parts: []part{{Text: fmt.Sprintf(forecastPrompt, history)}}}},
		GenerationConfig: &generationConfig{
			ResponseMimeType: "application/json",
			ResponseSchema: &schema{
				Type: "OBJECT",
				Properties: map[string]*schema{
					"predictedIncome":   {Type: "NUMBER"},
					"predictedExpenses": {Type: "NUMBER"},
					"predictedSavings":  {Type: "NUMBER"},
					"analysis":          {Type: "STRING"},
				},
				Required: []string{"predictedIncome", "predictedExpenses", "predictedSavings", "analysis"},
			},
		},
	}

	text, err := c.generate(ctx, req)
	if err != nil {
		return Forecast{}, err
	}

	var forecast Forecast
	if err := json.Unmarshal([]byte(strings.TrimSpace(text)), &forecast); err != nil {
		return Forecast{}, fmt.Errorf("%w: %v", ErrUnparseable, err)
	}
	return forecast, nil
}

type generateRequest struct {
	Contents         []content         `json:"contents"`
	GenerationConfig *generationConfig `json:"generationConfig,omitempty"`
}

type content struct {
	Parts []part `json:"parts"`
}

type part struct {
	Text       string      `json:"text,omitempty"`
	InlineData *inlineData `json:"inline_data,omitempty"`
}

type inlineData struct {
	MimeType string `json:"mime_type"`
	Data     string `json:"data"`
}

type generationConfig struct {
	ResponseMimeType string  `json:"responseMimeType,omitempty"`
	ResponseSchema   *schema `json:"responseSchema,omitempty"`
}

type schema struct {
	Type       string             `json:"type"`
	Properties map[string]*schema `json:"properties,omitempty"`
	Required   []string           `json:"required,omitempty"`
}

type generateResponse struct {
	Candidates []struct {
		Content struct {
			Parts []struct {
				Text string `json:"text"`
			} `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

// generate posts one generateContent request and returns the first
// candidate's concatenated text.
func (c *Client) generate(ctx context.Context, request generateRequest) (string, error) {
	body, err := json.Marshal(request)
	if err != nil {
		return "", fmt.Errorf("encode request: %w", err)
	}

	url := fmt.Sprintf("%s/v1beta/models/%s:generateContent", c.baseURL, c.model)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("x-goog-api-key", c.apiKey)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("%w: status %d", ErrUnavailable, resp.StatusCode)
	}

	var decoded generateResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return "", fmt.Errorf("%w: %v", ErrUnparseable, err)
	}
	if len(decoded.Candidates) == 0 || len(decoded.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("%w: empty response", ErrUnparseable)
	}

	var sb strings.Builder
	for _, p := range decoded.Candidates[0].Content.Parts {
		sb.WriteString(p.Text)
	}
	return sb.String(), nil
}
