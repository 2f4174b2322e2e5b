package foundation

import (
	"context"
	"fmt"
	"math"
	"strings"

	"github.com/cloudwego/eino/components/embedding"
)

// Keyword families used for principle alignment scoring.
var (
	mollickKeywords = []string{"partner", "collaboration", "human agency", "trust", "amplify", "cognitive partner"}
	swissKeywords   = []string{"transparency", "human dignity", "privacy", "ethical", "explainable", "human-centered"}
	peopleKeywords  = []string{"user experience", "training", "support", "diversity", "human impact", "adaptive"}
)

// AlignmentScores breaks foundation alignment down by source framework.
type AlignmentScores struct {
	Mollick      float64 `json:"mollick"`
	SwissAI      float64 `json:"swissAi"`
	PeopleFactor float64 `json:"peopleFactor"`
	Overall      float64 `json:"overall"`
}

func keywordScore(response string, keywords []string) float64 {
	matches := 0
	for _, kw := range keywords {
		if strings.Contains(response, kw) {
			matches++
		}
	}
	return float64(matches) / float64(len(keywords))
}

// Alignment scores a response against the three principle frameworks using
// keyword presence. Scores land in [0,1].
func Alignment(response string) AlignmentScores {
	lower := strings.ToLower(response)
	s := AlignmentScores{
		Mollick:      keywordScore(lower, mollickKeywords),
		SwissAI:      keywordScore(lower, swissKeywords),
		PeopleFactor: keywordScore(lower, peopleKeywords),
	}
	s.Overall = (s.Mollick + s.SwissAI + s.PeopleFactor) / 3
	return s
}

// EmbeddingAligner computes semantic alignment against the combined
// foundation context with a configured embedding model. The reference vector
// is computed once and reused for every response.
type EmbeddingAligner struct {
	embedder  embedding.Embedder
	reference []float64
}

// NewEmbeddingAligner embeds the combined foundation context as the
// reference vector.
func NewEmbeddingAligner(ctx context.Context, embedder embedding.Embedder) (*EmbeddingAligner, error) {
	vectors, err := embedder.EmbedStrings(ctx, []string{Combined()})
	if err != nil {
		return nil, fmt.Errorf("embed foundation context: %w", err)
	}
	if len(vectors) == 0 || len(vectors[0]) == 0 {
		return nil, fmt.Errorf("embedding model returned no vector for foundation context")
	}
	return &EmbeddingAligner{embedder: embedder, reference: vectors[0]}, nil
}

// Score returns the cosine similarity between the response and the
// foundation reference, clamped to [0,1].
func (a *EmbeddingAligner) Score(ctx context.Context, response string) (float64, error) {
	vectors, err := a.embedder.EmbedStrings(ctx, []string{response})
	if err != nil {
		return 0, fmt.Errorf("embed response: %w", err)
	}
	if len(vectors) == 0 {
		return 0, fmt.Errorf("embedding model returned no vector for response")
	}
	sim := cosine(a.reference, vectors[0])
	if sim < 0 {
		sim = 0
	}
	return sim, nil
}

func cosine(a, b []float64) float64 {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	var dot, na, nb float64
	for i := 0; i < n; i++ {
		dot += a[i] * b[i]
		na += a[i] * a[i]
		nb += b[i] * b[i]
	}
	if na == 0 || nb == 0 {
		return 0
	}
	return dot / (math.Sqrt(na) * math.Sqrt(nb))
}
