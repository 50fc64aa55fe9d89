package ollama

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestGenerateEmbeddings_MapsBlankInputsToZeroVectors(t *testing.T) {
	var gotInputs []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/embed" {
			http.NotFound(w, r)
			return
		}
		var req struct {
			Input []string `json:"input"`
		}
		_ = json.NewDecoder(r.Body).Decode(&req)
		gotInputs = req.Input

		embeddings := make([][]float32, len(req.Input))
		for i := range embeddings {
			embeddings[i] = []float32{float32(i + 1), 0.5}
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"model":             "embed",
			"embeddings":        embeddings,
			"prompt_eval_count": 4,
		})
	}))
	defer srv.Close()

	client, err := NewAuditOllamaClient(NewAuditOllamaClientParams{
		EmbeddingModel: "embed",
		EmbeddingDim:   3,
		BaseURL:        srv.URL,
	})
	if err != nil {
		t.Fatalf("NewAuditOllamaClient() error = %v", err)
	}

	out, err := client.GenerateEmbeddings(context.Background(), [][]byte{
		[]byte("renewable energy"),
		[]byte(" "),
		[]byte("water usage"),
	})
	if err != nil {
		t.Fatalf("GenerateEmbeddings() error = %v", err)
	}

	if len(gotInputs) != 2 {
		t.Fatalf("expected 2 inputs sent, got %v", gotInputs)
	}
	if len(out) != 3 {
		t.Fatalf("expected 3 vectors, got %d", len(out))
	}
	if out[0][0] != 1 || out[2][0] != 2 {
		t.Fatalf("vectors not mapped back to input order: %v", out)
	}
	for _, v := range out[1] {
		if v != 0 {
			t.Fatalf("expected zero vector for blank input, got %v", out[1])
		}
	}
	if len(out[0]) != 3 {
		t.Fatalf("expected padded vector of 3, got %d", len(out[0]))
	}
	if m := client.GetMetrics(); m.Requests != 1 || m.InputTokens != 4 {
		t.Fatalf("unexpected metrics %+v", m)
	}
}

func TestFitDimension(t *testing.T) {
	if got := fitDimension([]float32{1, 2, 3}, 2); len(got) != 2 {
		t.Fatalf("expected truncation, got %v", got)
	}
	if got := fitDimension([]float32{1, 2, 3}, 0); len(got) != 3 {
		t.Fatalf("expected unchanged vector, got %v", got)
	}
}
