package services

import (
	"context"
	"fmt"
	"os"
	"sort"
	"strings"
	"sync"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/freddy-ai/freddy-backend/internal/apperr"
	"github.com/freddy-ai/freddy-backend/internal/logger"
	"github.com/freddy-ai/freddy-backend/internal/utils"
)

type KnowledgeEntry struct {
	ID      uuid.UUID `json:"id" yaml:"-"`
	Title   string    `json:"title" yaml:"title"`
	Content string    `json:"content" yaml:"content"`
	Source  string    `json:"source" yaml:"source"`
}

type RAGResult struct {
	Title   string  `json:"title"`
	Content string  `json:"content"`
	Source  string  `json:"source"`
	Score   float64 `json:"score"`
}

// RAGService is a deliberately naive in-memory knowledge base: scoring is
// term overlap, not embeddings. It exists so the chat proxy has real
// retrieval plumbing to exercise.
type RAGService interface {
	Search(ctx context.Context, query string, limit int) ([]RAGResult, error)
	Add(ctx context.Context, entry KnowledgeEntry) (*KnowledgeEntry, error)
	Update(ctx context.Context, entry KnowledgeEntry) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type ragService struct {
	mu      sync.RWMutex
	entries map[uuid.UUID]KnowledgeEntry
	log     *logger.Logger
}

func NewRAGService(baseLog *logger.Logger) (RAGService, error) {
	log := baseLog.With("service", "RAGService")
	s := &ragService{entries: map[uuid.UUID]KnowledgeEntry{}, log: log}
	for _, entry := range builtinEntries() {
		entry.ID = uuid.New()
		s.entries[entry.ID] = entry
	}
	if seedPath := utils.GetEnv("RAG_SEED_PATH", "", log); seedPath != "" {
		if err := s.loadSeedFile(seedPath); err != nil {
			return nil, err
		}
	}
	log.Info("Knowledge base ready", "entries", len(s.entries))
	return s, nil
}

func (s *ragService) loadSeedFile(path string) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read knowledge seed: %w", err)
	}
	var seeded []KnowledgeEntry
	if err := yaml.Unmarshal(raw, &seeded); err != nil {
		return fmt.Errorf("parse knowledge seed: %w", err)
	}
	for _, entry := range seeded {
		entry.ID = uuid.New()
		s.entries[entry.ID] = entry
	}
	return nil
}

func (s *ragService) Search(ctx context.Context, query string, limit int) ([]RAGResult, error) {
	if strings.TrimSpace(query) == "" {
		return []RAGResult{}, nil
	}
	if limit <= 0 {
		limit = 3
	}
	terms := strings.Fields(strings.ToLower(query))

	s.mu.RLock()
	defer s.mu.RUnlock()
	results := []RAGResult{}
	for _, entry := range s.entries {
		haystack := strings.ToLower(entry.Title + " " + entry.Content)
		matched := 0
		for _, term := range terms {
			if strings.Contains(haystack, term) {
				matched++
			}
		}
		if matched == 0 {
			continue
		}
		results = append(results, RAGResult{
			Title:   entry.Title,
			Content: entry.Content,
			Source:  entry.Source,
			Score:   float64(matched) / float64(len(terms)),
		})
	}
	sort.Slice(results, func(i, j int) bool {
		if results[i].Score == results[j].Score {
			return results[i].Title < results[j].Title
		}
		return results[i].Score > results[j].Score
	})
	if len(results) > limit {
		results = results[:limit]
	}
	return results, nil
}

func (s *ragService) Add(ctx context.Context, entry KnowledgeEntry) (*KnowledgeEntry, error) {
	if entry.Title == "" {
		return nil, fmt.Errorf("%w: title is required", apperr.ErrValidation)
	}
	entry.ID = uuid.New()
	s.mu.Lock()
	s.entries[entry.ID] = entry
	s.mu.Unlock()
	return &entry, nil
}

func (s *ragService) Update(ctx context.Context, entry KnowledgeEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.entries[entry.ID]; !ok {
		return apperr.ErrNotFound
	}
	s.entries[entry.ID] = entry
	return nil
}

func (s *ragService) Delete(ctx context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.entries[id]; !ok {
		return apperr.ErrNotFound
	}
	delete(s.entries, id)
	return nil
}

func builtinEntries() []KnowledgeEntry {
	return []KnowledgeEntry{
		{
			Title:   "Present Perfect vs Simple Past",
			Content: "Use the present perfect for experiences without a fixed time (I have visited London) and the simple past for finished moments (I visited London in 2019).",
			Source:  "grammar/tenses",
		},
		{
			Title:   "Common Phrasal Verbs",
			Content: "Phrasal verbs combine a verb and a particle: give up means to quit, look after means to take care of, run into means to meet by chance.",
			Source:  "vocabulary/phrasal-verbs",
		},
		{
			Title:   "Ordering Food Politely",
			Content: "In restaurants, soften requests with could or would: Could I have the soup, please? I'd like the salmon, please.",
			Source:  "conversation/restaurants",
		},
		{
			Title:   "Small Talk Starters",
			Content: "Safe small-talk topics include the weather, travel, food and weekend plans. Open with questions like How was your weekend?",
			Source:  "conversation/small-talk",
		},
	}
}
