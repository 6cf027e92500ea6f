package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"asistencia/internal/service"
	"asistencia/mocks"
)

func TestSheetSweeper_SweepUsesIdleCutoff(t *testing.T) {
	store := new(mocks.MockSheetStore)
	sweeper := service.NewSheetSweeper(store, service.SheetSweeperConfig{
		Interval:    time.Minute,
		IdleTimeout: time.Hour,
	})

	before := time.Now().Add(-time.Hour)
	store.On("PurgeIdle", mock.Anything, mock.MatchedBy(func(cutoff time.Time) bool {
		return !cutoff.Before(before) && cutoff.Before(time.Now().Add(-59*time.Minute))
	})).Return(3, nil)

	assert.Equal(t, 3, sweeper.Sweep(context.Background()))
	store.AssertExpectations(t)
}

func TestSheetSweeper_SweepErrorReportsZero(t *testing.T) {
	store := new(mocks.MockSheetStore)
	sweeper := service.NewSheetSweeper(store, service.SheetSweeperConfig{Interval: time.Minute, IdleTimeout: time.Hour})

	store.On("PurgeIdle", mock.Anything, mock.Anything).Return(0, errors.New("boom"))

	assert.Equal(t, 0, sweeper.Sweep(context.Background()))
}

func TestSheetSweeper_StartPollsUntilCanceled(t *testing.T) {
	store := new(mocks.MockSheetStore)
	sweeper := service.NewSheetSweeper(store, service.SheetSweeperConfig{
		Interval:    20 * time.Millisecond,
		IdleTimeout: time.Hour,
	})
	store.On("PurgeIdle", mock.Anything, mock.Anything).Return(0, nil).Maybe()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		sweeper.Start(ctx)
		close(done)
	}()

	time.Sleep(100 * time.Millisecond)
	cancel()
	<-done

	store.AssertCalled(t, "PurgeIdle", mock.Anything, mock.Anything)
}
