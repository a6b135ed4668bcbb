package services

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quixjob/backend/api-svc/internal/domain"
	"github.com/quixjob/backend/api-svc/internal/dto"
	"github.com/quixjob/backend/api-svc/internal/helper/utils"
)

func TestRateUser_OncePerPair(t *testing.T) {
	f := newFixture(t)
	svc := NewRatingService(f.ratings, f.users)
	a := f.user(t, "a")
	b := f.user(t, "b")
	c := f.user(t, "c")

	_, err := svc.RateUser(context.Background(), b.ID, dto.RateUserRequest{UserID: a.ID, Rating: 5})
	require.NoError(t, err)

	_, err = svc.RateUser(context.Background(), b.ID, dto.RateUserRequest{UserID: a.ID, Rating: 1})
	require.Error(t, err)
	assert.Equal(t, http.StatusBadRequest, utils.StatusOf(err))

	_, err = svc.RateUser(context.Background(), c.ID, dto.RateUserRequest{UserID: a.ID, Rating: 2})
	require.NoError(t, err)

	res, err := svc.GetRatings(context.Background(), a.ID)
	require.NoError(t, err)
	assert.Len(t, res.Ratings, 2)
	assert.InDelta(t, 3.5, res.AverageRating, 1e-9)
	assert.ElementsMatch(t, []string{"b", "c"}, []string{res.Ratings[0].RatedBy.Username, res.Ratings[1].RatedBy.Username})
}

func TestRateUser_Self(t *testing.T) {
	f := newFixture(t)
	svc := NewRatingService(f.ratings, f.users)
	a := f.user(t, "a")

	_, err := svc.RateUser(context.Background(), a.ID, dto.RateUserRequest{UserID: a.ID, Rating: 5})
	assert.Equal(t, http.StatusBadRequest, utils.StatusOf(err))
}

func TestGetRatings_NoneIsZero(t *testing.T) {
	f := newFixture(t)
	svc := NewRatingService(f.ratings, f.users)

	res, err := svc.GetRatings(context.Background(), "nobody")
	require.NoError(t, err)
	assert.Empty(t, res.Ratings)
	assert.Zero(t, res.AverageRating)
}

func TestAverageRating(t *testing.T) {
	assert.Zero(t, AverageRating(nil))
	assert.Equal(t, 2.0, AverageRating([]domain.Rating{{Rating: 1}, {Rating: 3}}))
}
