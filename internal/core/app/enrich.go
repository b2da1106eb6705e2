package app

import (
	"context"

	"github.com/akulikov/reviewdeck/internal/core/domain"
	"golang.org/x/sync/errgroup"
)

// EnrichAll populates conflicts and comment threads for every pull
// request in prs. The input is processed in consecutive chunks of the
// configured batch size: chunks run strictly one after another, calls
// inside a chunk run concurrently. This bounds the number of
// simultaneous outbound calls without serializing everything.
//
// Every input record appears in the output at its input position.
// A record whose enrichment fails keeps empty conflicts and threads.
func (a *App) EnrichAll(ctx context.Context, prs []*domain.PullRequest) []*domain.PullRequest {
	out := make([]*domain.PullRequest, len(prs))

	for start := 0; start < len(prs); start += a.batchSize {
		end := start + a.batchSize
		if end > len(prs) {
			end = len(prs)
		}

		g, gctx := errgroup.WithContext(ctx)
		for i := start; i < end; i++ {
			g.Go(func() error {
				enriched, err := a.enrichOne(gctx, prs[i])
				if err != nil {
					// Best effort: the summary record stands in.
					out[i] = prs[i]

					return nil
				}
				out[i] = enriched

				return nil
			})
		}
		// Chunk N+1 must not start before chunk N has fully resolved.
		_ = g.Wait()
	}

	return out
}

// enrichOne fetches conflicts and threads for one pull request and
// returns a copy with the detail fields replaced. Re-enriching an
// already enriched record just installs the latest fetch.
func (a *App) enrichOne(ctx context.Context, pr *domain.PullRequest) (*domain.PullRequest, error) {
	callCtx, cancel := context.WithTimeout(ctx, a.callTimeout)
	defer cancel()

	g, gctx := errgroup.WithContext(callCtx)

	var (
		conflicts []domain.MergeConflict
		threads   []domain.CommentThread
	)

	g.Go(func() error {
		var err error
		conflicts, err = a.source.GetConflicts(gctx, pr.Project.ID, pr.Repository.ID, pr.ID)

		return err
	})
	g.Go(func() error {
		var err error
		threads, err = a.source.GetThreads(gctx, pr.Project.ID, pr.Repository.ID, pr.ID)

		return err
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	enriched := *pr
	enriched.MergeConflicts = conflicts
	enriched.Threads = threads
	if len(conflicts) > 0 {
		enriched.MergeStatus = domain.MergeConflicts
	}
	enriched.CommentCount = countComments(threads)

	return &enriched, nil
}

// countComments counts human comments across meaningful threads.
func countComments(threads []domain.CommentThread) int {
	count := 0
	for _, t := range threads {
		if !t.IsMeaningful() {
			continue
		}
		count += len(t.Comments)
	}

	return count
}
