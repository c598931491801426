package curriculum

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/abhisek/studyloop/internal/llm"
)

// Generator produces chapter lists and course structures.
type Generator struct {
	provider llm.Provider
	cfg      Config
}

// NewGenerator creates a curriculum generator.
func NewGenerator(provider llm.Provider, cfg Config) *Generator {
	return &Generator{provider: provider, cfg: cfg}
}

type chapterListOutput struct {
	Chapters []string `json:"chapters"`
}

// GenerateChapters proposes chapter titles for a course. At most
// cfg.MaxChapters titles are returned; the caller picks a subset before
// the course is created.
func (g *Generator) GenerateChapters(ctx context.Context, course string) ([]string, error) {
	ctx = llm.WithPurpose(ctx, "chapters")

	req := llm.Request{
		System: chaptersSystemPrompt,
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: buildChaptersUserMessage(course, g.cfg.MaxChapters)},
		},
		Schema:      ChapterListSchema,
		MaxTokens:   g.cfg.MaxTokens,
		Temperature: g.cfg.Temperature,
	}

	resp, err := g.provider.Generate(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("chapter generation: %w", err)
	}

	var out chapterListOutput
	if err := json.Unmarshal(resp.Content, &out); err != nil {
		return nil, fmt.Errorf("parse chapter response: %w", err)
	}

	chapters := dedupeTitles(out.Chapters)
	if len(chapters) == 0 {
		return nil, fmt.Errorf("chapter generation: %w", llm.NewGenerationError(llm.ReasonEmptyOutput, nil))
	}
	if len(chapters) > g.cfg.MaxChapters {
		chapters = chapters[:g.cfg.MaxChapters]
	}
	return chapters, nil
}

type structureOutput struct {
	Chapters []struct {
		Title   string   `json:"title"`
		Lessons []string `json:"lessons"`
	} `json:"chapters"`
}

// GenerateStructure expands the selected chapters into lessons. Every
// selected chapter must come back with at least one lesson and unique
// lesson titles, otherwise the output counts as schema-invalid.
func (g *Generator) GenerateStructure(ctx context.Context, course string, selected []string) (Structure, error) {
	ctx = llm.WithPurpose(ctx, "lessons")

	req := llm.Request{
		System: lessonsSystemPrompt,
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: buildLessonsUserMessage(course, selected, g.cfg.LessonsPerChapter)},
		},
		Schema:      StructureSchema,
		MaxTokens:   g.cfg.MaxTokens,
		Temperature: g.cfg.Temperature,
	}

	resp, err := g.provider.Generate(ctx, req)
	if err != nil {
		return Structure{}, fmt.Errorf("lesson generation: %w", err)
	}

	var out structureOutput
	if err := json.Unmarshal(resp.Content, &out); err != nil {
		return Structure{}, fmt.Errorf("parse lesson response: %w", err)
	}

	byTitle := make(map[string][]string, len(out.Chapters))
	for _, ch := range out.Chapters {
		byTitle[normalizeTitle(ch.Title)] = ch.Lessons
	}

	// Rebuild in the selection order so a model that reorders chapters
	// cannot reorder the course.
	structure := Structure{Chapters: make([]Chapter, 0, len(selected))}
	for _, title := range selected {
		lessons := dedupeTitles(byTitle[normalizeTitle(title)])
		if len(lessons) == 0 {
			return Structure{}, fmt.Errorf("lesson generation: %w", llm.NewGenerationError(
				llm.ReasonInvalidSchema,
				fmt.Errorf("no lessons returned for chapter %q", title),
			))
		}
		structure.Chapters = append(structure.Chapters, Chapter{Title: title, Lessons: lessons})
	}

	return structure, nil
}

// dedupeTitles drops empty and repeated titles, keeping first occurrences.
func dedupeTitles(titles []string) []string {
	seen := make(map[string]bool, len(titles))
	out := make([]string, 0, len(titles))
	for _, t := range titles {
		t = strings.TrimSpace(t)
		key := normalizeTitle(t)
		if t == "" || seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, t)
	}
	return out
}

func normalizeTitle(t string) string {
	return strings.ToLower(strings.TrimSpace(t))
}
