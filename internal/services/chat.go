package services

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/BilalK61/saticim.com.tr-sub001/internal/models"
)

// ChatService proxies the marketplace assistant to an OpenAI-compatible
// chat completion API. The model is given one tool, search_listings,
// which is executed against the listing service when called.
type ChatService struct {
	httpClient *http.Client
	apiKey     string
	apiURL     string
	model      string
	listings   *ListingService
	lookups    *LookupService
}

func NewChatService(apiKey, apiURL, model string, listings *ListingService, lookups *LookupService) *ChatService {
	return &ChatService{
		httpClient: &http.Client{Timeout: 60 * time.Second},
		apiKey:     apiKey,
		apiURL:     apiURL,
		model:      model,
		listings:   listings,
		lookups:    lookups,
	}
}

func (s *ChatService) IsAvailable() bool {
	return s.apiKey != ""
}

type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatAPIMessage struct {
	Role       string        `json:"role"`
	Content    string        `json:"content"`
	ToolCalls  []chatToolCall `json:"tool_calls,omitempty"`
	ToolCallID string        `json:"tool_call_id,omitempty"`
}

type chatToolCall struct {
	ID       string `json:"id"`
	Type     string `json:"type"`
	Function struct {
		Name      string `json:"name"`
		Arguments string `json:"arguments"`
	} `json:"function"`
}

type chatAPIRequest struct {
	Model    string           `json:"model"`
	Messages []chatAPIMessage `json:"messages"`
	Tools    []chatTool       `json:"tools,omitempty"`
}

type chatTool struct {
	Type     string       `json:"type"`
	Function chatToolSpec `json:"function"`
}

type chatToolSpec struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	Parameters  map[string]interface{} `json:"parameters"`
}

type chatAPIResponse struct {
	Choices []struct {
		Message chatAPIMessage `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

const chatSystemPrompt = `You are the assistant of a Turkish classifieds marketplace.
Help users find listings and answer questions about the site. When the user is
looking for something to buy, use the search_listings tool. Answer in the language
of the user's message. Keep answers short and concrete. Never invent listings.`

var searchListingsTool = chatTool{
	Type: "function",
	Function: chatToolSpec{
		Name:        "search_listings",
		Description: "Search approved marketplace listings by category, price range, city and keyword.",
		Parameters: map[string]interface{}{
			"type": "object",
			"properties": map[string]interface{}{
				"category":  map[string]interface{}{"type": "string", "description": "Listing category, e.g. vasita, telefon, emlak, spor"},
				"min_price": map[string]interface{}{"type": "number"},
				"max_price": map[string]interface{}{"type": "number"},
				"city":      map[string]interface{}{"type": "string", "description": "City name"},
				"query":     map[string]interface{}{"type": "string", "description": "Free-text keyword"},
			},
		},
	},
}

type searchListingsArgs struct {
	Category string  `json:"category"`
	MinPrice float64 `json:"min_price"`
	MaxPrice float64 `json:"max_price"`
	City     string  `json:"city"`
	Query    string  `json:"query"`
}

// Reply answers one user message. history is the prior turns of the
// conversation, oldest first.
func (s *ChatService) Reply(message string, history []ChatMessage) (string, error) {
	if !s.IsAvailable() {
		return "Asistan şu anda yapılandırılmamış. Lütfen arama sayfasını kullanın.", nil
	}

	messages := []chatAPIMessage{{Role: "system", Content: chatSystemPrompt}}
	for _, m := range history {
		role := m.Role
		if role != "user" && role != "assistant" {
			continue
		}
		messages = append(messages, chatAPIMessage{Role: role, Content: m.Content})
	}
	messages = append(messages, chatAPIMessage{Role: "user", Content: message})

	resp, err := s.complete(chatAPIRequest{
		Model:    s.model,
		Messages: messages,
		Tools:    []chatTool{searchListingsTool},
	})
	if err != nil {
		return "", err
	}

	if len(resp.ToolCalls) == 0 {
		return resp.Content, nil
	}

	// One round of tool execution, then a final completion.
	messages = append(messages, *resp)
	for _, tc := range resp.ToolCalls {
		if tc.Function.Name != "search_listings" {
			messages = append(messages, chatAPIMessage{
				Role: "tool", ToolCallID: tc.ID, Content: `{"error":"unknown tool"}`,
			})
			continue
		}
		result := s.runSearch(tc.Function.Arguments)
		messages = append(messages, chatAPIMessage{
			Role: "tool", ToolCallID: tc.ID, Content: result,
		})
	}

	final, err := s.complete(chatAPIRequest{Model: s.model, Messages: messages})
	if err != nil {
		return "", err
	}
	return final.Content, nil
}

func (s *ChatService) runSearch(rawArgs string) string {
	var args searchListingsArgs
	if err := json.Unmarshal([]byte(rawArgs), &args); err != nil {
		return `{"error":"bad tool arguments"}`
	}

	filter := ListingFilter{
		Category: args.Category,
		MinPrice: args.MinPrice,
		MaxPrice: args.MaxPrice,
		Query:    args.Query,
		PageSize: 5,
	}
	if args.City != "" {
		cities, err := s.lookups.Cities()
		if err == nil {
			for _, c := range cities {
				if strings.EqualFold(c.Name, args.City) {
					filter.CityID = c.ID
					break
				}
			}
		}
	}

	listings, err := s.listings.Search(filter)
	if err != nil {
		return `{"error":"search failed"}`
	}

	type hit struct {
		ID       uint    `json:"id"`
		Title    string  `json:"title"`
		Price    float64 `json:"price"`
		Currency string  `json:"currency"`
		Category string  `json:"category"`
	}
	hits := make([]hit, 0, len(listings))
	for _, l := range listings {
		hits = append(hits, hit{ID: l.ID, Title: l.Title, Price: l.Price, Currency: l.Currency, Category: l.Category})
	}

	out, err := json.Marshal(map[string]interface{}{"results": hits, "count": len(hits)})
	if err != nil {
		return `{"error":"encode failed"}`
	}
	return string(out)
}

func (s *ChatService) complete(req chatAPIRequest) (*chatAPIMessage, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, err
	}

	httpReq, err := http.NewRequest(http.MethodPost, s.apiURL, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+s.apiKey)

	httpResp, err := s.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("chat API request failed: %w", err)
	}
	defer httpResp.Body.Close()

	respBody, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return nil, err
	}

	var parsed chatAPIResponse
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		return nil, fmt.Errorf("chat API returned invalid JSON (status %d)", httpResp.StatusCode)
	}
	if parsed.Error != nil {
		return nil, fmt.Errorf("chat API error: %s", parsed.Error.Message)
	}
	if len(parsed.Choices) == 0 {
		return nil, fmt.Errorf("chat API returned no choices (status %d)", httpResp.StatusCode)
	}

	return &parsed.Choices[0].Message, nil
}

// SearchCategories lists the category identifiers the tool accepts;
// exposed so the docs endpoint can render them.
func SearchCategories() []string {
	return []string{
		models.CategoryVehicle, models.CategoryRealEstate, models.CategoryPhone,
		models.CategorySport, models.CategoryElectronics, models.CategoryFurniture,
		models.CategoryOther,
	}
}
