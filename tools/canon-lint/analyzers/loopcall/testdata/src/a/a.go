package a

import "context"

type Change struct {
	Field string
}

type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
	EmbedBatch(ctx context.Context, texts []string) ([][]float32, error)
}

type VectorDB interface {
	Save(ctx context.Context, id string) error
	Search(ctx context.Context, query string) ([]string, error)
	Delete(ctx context.Context, id string) error
}

type Analyzer interface {
	AnalyzeChanges(ctx context.Context, changes []Change) (string, error)
	ExtractCanon(ctx context.Context, transcript string) (string, error)
}

func embedEntriesOneByOne(ctx context.Context, summaries []string, e Embedder, db VectorDB) {
	for _, summary := range summaries {
		e.Embed(ctx, summary) // want "potential N\\+1: Embed called inside loop"
		db.Save(ctx, summary) // want "potential N\\+1: Save called inside loop"
	}
}

func analyzePerChange(ctx context.Context, changes []Change, a Analyzer) {
	for _, change := range changes {
		a.AnalyzeChanges(ctx, []Change{change}) // want "potential N\\+1: AnalyzeChanges called inside loop"
	}
}

func extractPerSegment(ctx context.Context, segments []string, a Analyzer) {
	for i := 0; i < len(segments); i++ {
		a.ExtractCanon(ctx, segments[i]) // want "potential N\\+1: ExtractCanon called inside loop"
	}
}

func embedBatched(ctx context.Context, summaries []string, e Embedder) {
	// One call for the whole world - should not flag
	e.EmbedBatch(ctx, summaries)
	for _, summary := range summaries {
		_ = len(summary)
	}
}
