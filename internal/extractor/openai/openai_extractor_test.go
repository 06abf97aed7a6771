package openai

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"nebenscan/internal/config"
	"nebenscan/internal/extractor"
	"nebenscan/internal/port"
)

func testConfig() *config.ExtractorConfig {
	return &config.ExtractorConfig{
		Provider:     "openai",
		APIKey:       "test-key",
		DefaultModel: "gpt-4o",
		TimeoutSecs:  5,
	}
}

func chatResponse(content string) map[string]interface{} {
	return map[string]interface{}{
		"choices": []map[string]interface{}{
			{
				"message":       map[string]interface{}{"content": content},
				"finish_reason": "stop",
			},
		},
	}
}

func TestExtract_Success(t *testing.T) {
	billJSON := `{
		"billing_period": "01.01.2023 - 31.12.2023",
		"total_square_meters": 85,
		"total_cost": 2400.00,
		"heating_costs": 1200.00,
		"water_costs": 450.00,
		"line_items": [
			{"name": "Heizkosten", "total_cost": 1200.00, "category": "heating"},
			{"name": "Wasserversorgung", "total_cost": 450.00, "category": "water"}
		]
	}`

	var gotAuth string
	var gotReq map[string]interface{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotReq))
		w.Header().Set("Content-Type", "application/json")
		require.NoError(t, json.NewEncoder(w).Encode(chatResponse(billJSON)))
	}))
	defer srv.Close()

	e := NewExtractorWithEndpoint(testConfig(), srv.URL)
	out, err := e.Extract(context.Background(), port.ExtractInput{
		FileBytes:   []byte("%PDF-1.4 fake"),
		ContentType: "application/pdf",
	})
	require.NoError(t, err)
	require.NotNil(t, out.Bill)

	assert.Equal(t, "Bearer test-key", gotAuth)
	assert.Equal(t, "gpt-4o", gotReq["model"])
	assert.Equal(t, "gpt-4o", out.ModelUsed)
	assert.Equal(t, "01.01.2023 - 31.12.2023", out.Bill.BillingPeriod)
	assert.Equal(t, 85.0, out.Bill.TotalSquareMeters)
	require.Len(t, out.Bill.LineItems, 2)
	assert.Equal(t, "Heizkosten", out.Bill.LineItems[0].Name)
	assert.Equal(t, "heating", out.Bill.LineItems[0].Category)

	// json_object mode must be requested
	rf, ok := gotReq["response_format"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "json_object", rf["type"])
}

func TestExtract_ImageContentBlock(t *testing.T) {
	var gotReq map[string]interface{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotReq))
		require.NoError(t, json.NewEncoder(w).Encode(chatResponse(`{"line_items": []}`)))
	}))
	defer srv.Close()

	e := NewExtractorWithEndpoint(testConfig(), srv.URL)
	_, err := e.Extract(context.Background(), port.ExtractInput{
		FileBytes:   []byte{0xFF, 0xD8, 0xFF},
		ContentType: "image/jpeg",
	})
	require.NoError(t, err)

	messages := gotReq["messages"].([]interface{})
	content := messages[0].(map[string]interface{})["content"].([]interface{})
	require.Len(t, content, 2)
	first := content[0].(map[string]interface{})
	assert.Equal(t, "image_url", first["type"])
	url := first["image_url"].(map[string]interface{})["url"].(string)
	assert.Contains(t, url, "data:image/jpeg;base64,")
}

func TestExtract_UnsupportedContentType(t *testing.T) {
	e := NewExtractorWithEndpoint(testConfig(), "http://unused")
	_, err := e.Extract(context.Background(), port.ExtractInput{
		FileBytes:   []byte("hello"),
		ContentType: "text/plain",
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported content type")
}

func TestExtract_RateLimited(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Retry-After", "30")
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()

	e := NewExtractorWithEndpoint(testConfig(), srv.URL)
	_, err := e.Extract(context.Background(), port.ExtractInput{
		FileBytes:   []byte("%PDF-1.4"),
		ContentType: "application/pdf",
	})
	require.Error(t, err)

	var rle *extractor.RateLimitError
	require.True(t, errors.As(err, &rle))
	assert.Equal(t, "openai", rle.Provider)
	assert.Equal(t, float64(30), rle.RetryAfter.Seconds())
}

func TestExtract_APIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	e := NewExtractorWithEndpoint(testConfig(), srv.URL)
	_, err := e.Extract(context.Background(), port.ExtractInput{
		FileBytes:   []byte("%PDF-1.4"),
		ContentType: "application/pdf",
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 500")
}

func TestExtract_TruncatedOutput(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		resp := map[string]interface{}{
			"choices": []map[string]interface{}{
				{
					"message":       map[string]interface{}{"content": `{"line_items": [`},
					"finish_reason": "length",
				},
			},
		}
		require.NoError(t, json.NewEncoder(w).Encode(resp))
	}))
	defer srv.Close()

	e := NewExtractorWithEndpoint(testConfig(), srv.URL)
	_, err := e.Extract(context.Background(), port.ExtractInput{
		FileBytes:   []byte("%PDF-1.4"),
		ContentType: "application/pdf",
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "truncated")
}

func TestExtract_MalformedLLMOutput(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewEncoder(w).Encode(chatResponse("not json at all")))
	}))
	defer srv.Close()

	e := NewExtractorWithEndpoint(testConfig(), srv.URL)
	_, err := e.Extract(context.Background(), port.ExtractInput{
		FileBytes:   []byte("%PDF-1.4"),
		ContentType: "application/pdf",
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parsing LLM JSON output")
}
