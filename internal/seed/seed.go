package seed

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"
	appModels "github.com/yigit/campus-election/internal/app/models"
	appRepos "github.com/yigit/campus-election/internal/app/repositories"
	"github.com/yigit/campus-election/internal/pkg/apperrors"
	"github.com/yigit/campus-election/internal/pkg/dberrors"
)

type seedPosition struct {
	position   appModels.Position
	candidates []appModels.Candidate
}

// defaultCatalog is the student council ballot created on an empty store
var defaultCatalog = []seedPosition{
	{
		position: appModels.Position{Name: "President", VoteLimit: 1, DisplayOrder: 1},
		candidates: []appModels.Candidate{
			{Name: "Ada Lovelace", Department: "Computer Engineering"},
			{Name: "Grace Hopper", Department: "Mathematics"},
		},
	},
	{
		position: appModels.Position{Name: "Vice President", VoteLimit: 1, DisplayOrder: 2},
		candidates: []appModels.Candidate{
			{Name: "Alan Turing", Department: "Mathematics"},
			{Name: "Barbara Liskov", Department: "Computer Engineering"},
		},
	},
	{
		position: appModels.Position{Name: "Senate", VoteLimit: 3, DisplayOrder: 3},
		candidates: []appModels.Candidate{
			{Name: "Claude Shannon", Department: "Electrical Engineering"},
			{Name: "Edsger Dijkstra", Department: "Computer Engineering"},
			{Name: "Frances Allen", Department: "Computer Engineering"},
			{Name: "John Backus", Department: "Mathematics"},
		},
	},
}

// defaultVoters are demo accounts for local runs
var defaultVoters = []appModels.Voter{
	{StudentID: "20260001", FullName: "Demo Voter One", Department: "Computer Engineering"},
	{StudentID: "20260002", FullName: "Demo Voter Two", Department: "Mathematics"},
	{StudentID: "20260003", FullName: "Demo Voter Three", Department: "Electrical Engineering"},
}

// CreateDefaultData creates the default positions, candidates and demo voters when the
// catalog is empty. A non-empty catalog is left untouched.
func CreateDefaultData(ctx context.Context, q appRepos.Queries, lgr zerolog.Logger) error {
	count, err := q.CountPositions(ctx)
	if err != nil {
		return fmt.Errorf("failed to count positions: %w", err)
	}
	if count > 0 {
		lgr.Info().Int64("positions", count).Msg("Catalog already present, skipping default data")
		return nil
	}

	lgr.Info().Msg("Creating default catalog...")
	var finalErr error

	for _, entry := range defaultCatalog {
		position := entry.position
		if err := q.CreatePosition(ctx, &position); err != nil {
			lgr.Error().Err(err).Str("position", position.Name).Msg("Error creating position")
			finalErr = errors.Join(finalErr, err)
			continue
		}

		for _, candidate := range entry.candidates {
			candidate.PositionID = position.ID
			if err := q.CreateCandidate(ctx, &candidate); err != nil {
				lgr.Error().Err(err).Str("candidate", candidate.Name).Msg("Error creating candidate")
				finalErr = errors.Join(finalErr, err)
			}
		}
	}

	for _, voter := range defaultVoters {
		err := q.CreateVoter(ctx, &voter)
		if err != nil && apperrors.Kind(dberrors.Classify("create voter", err)) != apperrors.KindConflict {
			lgr.Error().Err(err).Str("studentID", voter.StudentID).Msg("Error creating voter")
			finalErr = errors.Join(finalErr, err)
		}
	}

	if finalErr == nil {
		lgr.Info().
			Int("positions", len(defaultCatalog)).
			Int("voters", len(defaultVoters)).
			Msg("Default catalog created")
	}
	return finalErr
}
