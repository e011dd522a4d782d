package extract

import (
	"context"
	"io"
	"sort"

	"github.com/baditaflorin/go_fuzzy_compare/internal/adapters/stream"
	"github.com/baditaflorin/go_fuzzy_compare/internal/core/domain"
)

// TopReader ranks the lines of r against query without holding every line in memory.
// Only the best limit matches are retained; a limit <= 0 keeps all passing lines.
// Blank lines are skipped and do not count towards Match.Index. The second return
// value is the number of lines scored.
func (e *Extractor) TopReader(ctx context.Context, query string, r io.Reader, limit int) ([]domain.Match, int, error) {
	p := e.algo.Preprocessor()
	lines := stream.NewLineReader(e.logger, stream.Config{})

	var matches []domain.Match
	var scores []int
	n, err := lines.Batches(ctx, r, func(offset int, batch []string) error {
		if cap(scores) < len(batch) {
			scores = make([]int, len(batch))
		}
		scores = scores[:len(batch)]
		if err := e.score(ctx, query, batch, p, scores); err != nil {
			return err
		}

		for i, choice := range batch {
			if e.passes(scores[i]) {
				matches = append(matches, domain.Match{Choice: choice, Index: offset + i, Score: scores[i]})
			}
		}
		sort.SliceStable(matches, func(i, j int) bool {
			return e.better(matches[i].Score, matches[j].Score)
		})
		if limit > 0 && len(matches) > limit {
			matches = matches[:limit]
		}
		return nil
	})
	if err != nil {
		e.logger.Error("Extraction cancelled", "error", err)
		return nil, n, err
	}

	e.logger.Debug("Extracted matches from reader",
		"query", query,
		"lines", n,
		"matches", len(matches),
	)
	return matches, n, nil
}
