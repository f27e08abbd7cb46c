//go:build unit

package commands_test

import (
	"context"
	"testing"
	"time"

	"cinebook/internal/domain/reservation"
	"cinebook/internal/domain/room"
	"cinebook/internal/infra/repository"
	"cinebook/internal/infra/store"
	"cinebook/internal/pkg/clock"
	"cinebook/internal/pkg/config"
	"cinebook/internal/pkg/errs"
	"cinebook/internal/usecase/commands"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)

type fixture struct {
	commands commands.ReservationCommands
	clock    *clock.MockClock
	repo     *repository.ReservationRepository
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	s, err := store.New(config.StoreConfig{Dir: t.TempDir()})
	require.NoError(t, err)

	repo := repository.NewReservationRepository(s)
	clk := clock.NewMockClock(now)
	return &fixture{
		commands: commands.NewReservationCommands(repo, room.DefaultCatalog(), clk),
		clock:    clk,
		repo:     repo,
	}
}

// eveningShow is the 16:00 screening in room 1 (capacity 120).
func eveningShow(movieID int64) commands.SessionSelection {
	start := time.Date(2026, 3, 14, 16, 0, 0, 0, time.UTC)
	return commands.SessionSelection{
		MovieID:    movieID,
		RoomID:     1,
		StartTime:  start,
		EndTime:    start.Add(2 * time.Hour),
		Version:    reservation.VersionVO,
		MovieTitle: "Heat",
	}
}

// morningShow is the 10:45 screening in room 10 (capacity 80).
func morningShow(movieID int64) commands.SessionSelection {
	start := time.Date(2026, 3, 14, 10, 45, 0, 0, time.UTC)
	return commands.SessionSelection{
		MovieID:   movieID,
		RoomID:    10,
		StartTime: start,
		EndTime:   start.Add(2 * time.Hour),
		Version:   reservation.VersionVOSTFR,
	}
}

func TestCreatePending(t *testing.T) {
	ctx := context.Background()

	t.Run("creates a default pending booking", func(t *testing.T) {
		f := newFixture(t)

		view, err := f.commands.CreatePending(ctx, 42, eveningShow(550))
		require.NoError(t, err)

		assert.Equal(t, int64(1), view.ID)
		assert.Equal(t, "PENDING", view.Status)
		assert.Equal(t, "ADULT", view.TicketCategory)
		assert.Equal(t, 1, view.Quantity)
		assert.Equal(t, int64(1000), view.PriceCents)
		assert.Equal(t, now, view.CreatedAt)
	})

	t.Run("persists across repository reads", func(t *testing.T) {
		f := newFixture(t)

		view, err := f.commands.CreatePending(ctx, 42, eveningShow(550))
		require.NoError(t, err)

		stored, err := f.repo.FindByID(ctx, view.ID)
		require.NoError(t, err)
		assert.Equal(t, reservation.StatusPending, stored.Status())
	})

	t.Run("rejects a session that has started", func(t *testing.T) {
		f := newFixture(t)
		f.clock.Set(time.Date(2026, 3, 14, 16, 0, 0, 0, time.UTC))

		_, err := f.commands.CreatePending(ctx, 42, eveningShow(550))
		assert.ErrorIs(t, err, errs.ErrSessionPassed)
	})

	t.Run("rejects an invalid slot", func(t *testing.T) {
		f := newFixture(t)
		sel := eveningShow(550)
		sel.EndTime = sel.StartTime

		_, err := f.commands.CreatePending(ctx, 42, sel)
		assert.ErrorIs(t, err, errs.ErrInvalidTimeSlot)
	})

	t.Run("rejects an active booking at the same session", func(t *testing.T) {
		f := newFixture(t)

		_, err := f.commands.CreatePending(ctx, 42, eveningShow(550))
		require.NoError(t, err)

		_, err = f.commands.CreatePending(ctx, 42, eveningShow(550))
		assert.ErrorIs(t, err, errs.ErrDuplicateReservation)
	})

	t.Run("rejects a booking overlapping another movie", func(t *testing.T) {
		f := newFixture(t)

		_, err := f.commands.CreatePending(ctx, 42, eveningShow(550))
		require.NoError(t, err)

		// 17:00-19:00 cuts into the 16:00-18:00 screening.
		overlapping := eveningShow(99)
		overlapping.StartTime = overlapping.StartTime.Add(time.Hour)
		overlapping.EndTime = overlapping.EndTime.Add(time.Hour)

		_, err = f.commands.CreatePending(ctx, 42, overlapping)
		assert.ErrorIs(t, err, errs.ErrOverlap)
	})

	t.Run("allows a back-to-back booking", func(t *testing.T) {
		f := newFixture(t)

		_, err := f.commands.CreatePending(ctx, 42, eveningShow(550))
		require.NoError(t, err)

		next := eveningShow(99)
		next.StartTime = next.StartTime.Add(2 * time.Hour)
		next.EndTime = next.EndTime.Add(2 * time.Hour)

		_, err = f.commands.CreatePending(ctx, 42, next)
		assert.NoError(t, err)
	})

	t.Run("other users are not constrained", func(t *testing.T) {
		f := newFixture(t)

		_, err := f.commands.CreatePending(ctx, 42, eveningShow(550))
		require.NoError(t, err)

		view, err := f.commands.CreatePending(ctx, 43, eveningShow(550))
		require.NoError(t, err)
		assert.Equal(t, int64(2), view.ID)
	})

	t.Run("resurrects a cancelled booking under the same id", func(t *testing.T) {
		f := newFixture(t)

		created, err := f.commands.CreatePending(ctx, 42, eveningShow(550))
		require.NoError(t, err)
		_, err = f.commands.ConfirmReservation(ctx, created.ID, reservation.CategoryStudent, 2)
		require.NoError(t, err)
		_, err = f.commands.CancelReservation(ctx, created.ID)
		require.NoError(t, err)

		again, err := f.commands.CreatePending(ctx, 42, eveningShow(550))
		require.NoError(t, err)

		assert.Equal(t, created.ID, again.ID)
		assert.Equal(t, "PENDING", again.Status)
		// Category and quantity survive the cancellation.
		assert.Equal(t, "STUDENT", again.TicketCategory)
		assert.Equal(t, 2, again.Quantity)
		assert.Equal(t, int64(1700), again.PriceCents)
	})

	t.Run("a cancelled booking does not block an overlapping one", func(t *testing.T) {
		f := newFixture(t)

		created, err := f.commands.CreatePending(ctx, 42, eveningShow(550))
		require.NoError(t, err)
		_, err = f.commands.CancelReservation(ctx, created.ID)
		require.NoError(t, err)

		overlapping := eveningShow(99)
		overlapping.StartTime = overlapping.StartTime.Add(time.Hour)
		overlapping.EndTime = overlapping.EndTime.Add(time.Hour)

		_, err = f.commands.CreatePending(ctx, 42, overlapping)
		assert.NoError(t, err)
	})
}

func TestConfirmReservation(t *testing.T) {
	ctx := context.Background()

	t.Run("settles category, quantity and price", func(t *testing.T) {
		f := newFixture(t)

		created, err := f.commands.CreatePending(ctx, 42, eveningShow(550))
		require.NoError(t, err)

		f.clock.Add(time.Minute)
		view, err := f.commands.ConfirmReservation(ctx, created.ID, reservation.CategorySenior, 3)
		require.NoError(t, err)

		assert.Equal(t, "CONFIRMED", view.Status)
		assert.Equal(t, "SENIOR", view.TicketCategory)
		assert.Equal(t, 3, view.Quantity)
		assert.Equal(t, int64(2700), view.PriceCents)
		assert.Equal(t, now.Add(time.Minute), view.UpdatedAt)
	})

	t.Run("re-confirming with identical values changes nothing", func(t *testing.T) {
		f := newFixture(t)

		created, err := f.commands.CreatePending(ctx, 42, eveningShow(550))
		require.NoError(t, err)

		first, err := f.commands.ConfirmReservation(ctx, created.ID, reservation.CategoryAdult, 2)
		require.NoError(t, err)

		f.clock.Add(time.Hour)
		second, err := f.commands.ConfirmReservation(ctx, created.ID, reservation.CategoryAdult, 2)
		require.NoError(t, err)

		assert.Empty(t, cmp.Diff(first, second))
	})

	t.Run("after session start is a silent no-op", func(t *testing.T) {
		f := newFixture(t)

		created, err := f.commands.CreatePending(ctx, 42, eveningShow(550))
		require.NoError(t, err)

		f.clock.Set(time.Date(2026, 3, 14, 18, 30, 0, 0, time.UTC))
		view, err := f.commands.ConfirmReservation(ctx, created.ID, reservation.CategorySenior, 5)
		require.NoError(t, err)
		assert.Equal(t, "PENDING", view.Status)
		assert.Equal(t, 1, view.Quantity)
	})

	t.Run("rejects confirming a cancelled reservation", func(t *testing.T) {
		f := newFixture(t)

		created, err := f.commands.CreatePending(ctx, 42, eveningShow(550))
		require.NoError(t, err)
		_, err = f.commands.CancelReservation(ctx, created.ID)
		require.NoError(t, err)

		_, err = f.commands.ConfirmReservation(ctx, created.ID, reservation.CategoryAdult, 1)
		assert.ErrorIs(t, err, reservation.ErrReservationCancelled)
	})

	t.Run("enforces room capacity across users", func(t *testing.T) {
		f := newFixture(t)

		// Room 10 holds 80 seats; the first user takes all of them.
		first, err := f.commands.CreatePending(ctx, 42, morningShow(550))
		require.NoError(t, err)
		_, err = f.commands.ConfirmReservation(ctx, first.ID, reservation.CategoryAdult, 80)
		require.NoError(t, err)

		second, err := f.commands.CreatePending(ctx, 43, morningShow(550))
		require.NoError(t, err)
		_, err = f.commands.ConfirmReservation(ctx, second.ID, reservation.CategoryAdult, 1)
		assert.ErrorIs(t, err, errs.ErrCapacityExceeded)
	})

	t.Run("re-confirming a full room with its own seats succeeds", func(t *testing.T) {
		f := newFixture(t)

		created, err := f.commands.CreatePending(ctx, 42, morningShow(550))
		require.NoError(t, err)
		_, err = f.commands.ConfirmReservation(ctx, created.ID, reservation.CategoryAdult, 80)
		require.NoError(t, err)

		// The holder's own seats are excluded from the capacity count.
		view, err := f.commands.ConfirmReservation(ctx, created.ID, reservation.CategoryStudent, 80)
		require.NoError(t, err)
		assert.Equal(t, "STUDENT", view.TicketCategory)
	})

	t.Run("pending bookings reserve no seats", func(t *testing.T) {
		f := newFixture(t)

		first, err := f.commands.CreatePending(ctx, 42, morningShow(550))
		require.NoError(t, err)
		_, err = f.commands.UpdateReservation(ctx,
			commands.MatchKeys{ID: first.ID, UserID: 42, MovieID: 550},
			quantityPatch(80),
		)
		require.NoError(t, err)

		// 80 pending seats do not block another user's confirmation.
		second, err := f.commands.CreatePending(ctx, 43, morningShow(550))
		require.NoError(t, err)
		_, err = f.commands.ConfirmReservation(ctx, second.ID, reservation.CategoryAdult, 80)
		assert.NoError(t, err)
	})

	t.Run("unknown id", func(t *testing.T) {
		f := newFixture(t)
		_, err := f.commands.ConfirmReservation(ctx, 999, reservation.CategoryAdult, 1)
		assert.ErrorIs(t, err, errs.ErrReservationNotFound)
	})
}

func TestCancelReservation(t *testing.T) {
	ctx := context.Background()

	t.Run("cancels an active booking", func(t *testing.T) {
		f := newFixture(t)

		created, err := f.commands.CreatePending(ctx, 42, eveningShow(550))
		require.NoError(t, err)

		view, err := f.commands.CancelReservation(ctx, created.ID)
		require.NoError(t, err)
		assert.Equal(t, "CANCELLED", view.Status)
	})

	t.Run("cancelling twice is a no-op", func(t *testing.T) {
		f := newFixture(t)

		created, err := f.commands.CreatePending(ctx, 42, eveningShow(550))
		require.NoError(t, err)

		first, err := f.commands.CancelReservation(ctx, created.ID)
		require.NoError(t, err)

		f.clock.Add(time.Hour)
		second, err := f.commands.CancelReservation(ctx, created.ID)
		require.NoError(t, err)
		assert.Empty(t, cmp.Diff(first, second))
	})

	t.Run("after session start is a silent no-op", func(t *testing.T) {
		f := newFixture(t)

		created, err := f.commands.CreatePending(ctx, 42, eveningShow(550))
		require.NoError(t, err)

		f.clock.Set(time.Date(2026, 3, 14, 18, 30, 0, 0, time.UTC))
		view, err := f.commands.CancelReservation(ctx, created.ID)
		require.NoError(t, err)
		assert.Equal(t, "PENDING", view.Status)
	})
}

func TestReserveAgain(t *testing.T) {
	ctx := context.Background()

	t.Run("restores a cancelled booking to confirmed", func(t *testing.T) {
		f := newFixture(t)

		created, err := f.commands.CreatePending(ctx, 42, eveningShow(550))
		require.NoError(t, err)
		_, err = f.commands.ConfirmReservation(ctx, created.ID, reservation.CategoryUnder26, 2)
		require.NoError(t, err)
		_, err = f.commands.CancelReservation(ctx, created.ID)
		require.NoError(t, err)

		view, err := f.commands.ReserveAgain(ctx, created.ID)
		require.NoError(t, err)
		assert.Equal(t, "CONFIRMED", view.Status)
		assert.Equal(t, "-26", view.TicketCategory)
		assert.Equal(t, 2, view.Quantity)
		assert.Equal(t, int64(1600), view.PriceCents)
	})

	t.Run("rejects once the session has started", func(t *testing.T) {
		f := newFixture(t)

		created, err := f.commands.CreatePending(ctx, 42, eveningShow(550))
		require.NoError(t, err)
		_, err = f.commands.CancelReservation(ctx, created.ID)
		require.NoError(t, err)

		f.clock.Set(time.Date(2026, 3, 14, 18, 30, 0, 0, time.UTC))
		_, err = f.commands.ReserveAgain(ctx, created.ID)
		assert.ErrorIs(t, err, errs.ErrSessionPassed)
	})

	t.Run("rejects when the slot was taken meanwhile", func(t *testing.T) {
		f := newFixture(t)

		created, err := f.commands.CreatePending(ctx, 42, eveningShow(550))
		require.NoError(t, err)
		_, err = f.commands.CancelReservation(ctx, created.ID)
		require.NoError(t, err)

		overlapping := eveningShow(99)
		overlapping.StartTime = overlapping.StartTime.Add(time.Hour)
		overlapping.EndTime = overlapping.EndTime.Add(time.Hour)
		_, err = f.commands.CreatePending(ctx, 42, overlapping)
		require.NoError(t, err)

		_, err = f.commands.ReserveAgain(ctx, created.ID)
		assert.ErrorIs(t, err, errs.ErrOverlap)
	})

	t.Run("rejects an active booking", func(t *testing.T) {
		f := newFixture(t)

		created, err := f.commands.CreatePending(ctx, 42, eveningShow(550))
		require.NoError(t, err)

		_, err = f.commands.ReserveAgain(ctx, created.ID)
		assert.ErrorIs(t, err, reservation.ErrNotCancelled)
	})
}

func TestUpdateReservation(t *testing.T) {
	ctx := context.Background()

	t.Run("patches mutable fields and recomputes price", func(t *testing.T) {
		f := newFixture(t)

		created, err := f.commands.CreatePending(ctx, 42, eveningShow(550))
		require.NoError(t, err)

		category := reservation.CategorySenior
		quantity := 2
		p := commands.ReservationPatch{}
		p.TicketCategory = &category
		p.Quantity = &quantity

		view, err := f.commands.UpdateReservation(ctx,
			commands.MatchKeys{ID: created.ID, UserID: 42, MovieID: 550}, p)
		require.NoError(t, err)

		assert.Equal(t, "SENIOR", view.TicketCategory)
		assert.Equal(t, 2, view.Quantity)
		assert.Equal(t, int64(1800), view.PriceCents)
	})

	t.Run("key mismatch reads as not found", func(t *testing.T) {
		f := newFixture(t)

		created, err := f.commands.CreatePending(ctx, 42, eveningShow(550))
		require.NoError(t, err)

		_, err = f.commands.UpdateReservation(ctx,
			commands.MatchKeys{ID: created.ID, UserID: 43, MovieID: 550},
			commands.ReservationPatch{})
		assert.ErrorIs(t, err, errs.ErrReservationNotFound)
	})

	t.Run("rejects identity changes", func(t *testing.T) {
		f := newFixture(t)

		created, err := f.commands.CreatePending(ctx, 42, eveningShow(550))
		require.NoError(t, err)

		otherUser := int64(43)
		_, err = f.commands.UpdateReservation(ctx,
			commands.MatchKeys{ID: created.ID, UserID: 42, MovieID: 550},
			commands.ReservationPatch{UserID: &otherUser})
		assert.ErrorIs(t, err, errs.ErrImmutableKeys)
	})

	t.Run("echoing unchanged identity values is allowed", func(t *testing.T) {
		f := newFixture(t)

		created, err := f.commands.CreatePending(ctx, 42, eveningShow(550))
		require.NoError(t, err)

		sameUser := int64(42)
		_, err = f.commands.UpdateReservation(ctx,
			commands.MatchKeys{ID: created.ID, UserID: 42, MovieID: 550},
			commands.ReservationPatch{UserID: &sameUser})
		assert.NoError(t, err)
	})

	t.Run("rejects once the session has started", func(t *testing.T) {
		f := newFixture(t)

		created, err := f.commands.CreatePending(ctx, 42, eveningShow(550))
		require.NoError(t, err)

		f.clock.Set(time.Date(2026, 3, 14, 18, 30, 0, 0, time.UTC))
		_, err = f.commands.UpdateReservation(ctx,
			commands.MatchKeys{ID: created.ID, UserID: 42, MovieID: 550},
			quantityPatch(2))
		assert.ErrorIs(t, err, errs.ErrSessionPassed)
	})

	t.Run("moving the slot onto another booking is rejected", func(t *testing.T) {
		f := newFixture(t)

		first, err := f.commands.CreatePending(ctx, 42, eveningShow(550))
		require.NoError(t, err)
		_ = first

		next := eveningShow(99)
		next.StartTime = next.StartTime.Add(2 * time.Hour)
		next.EndTime = next.EndTime.Add(2 * time.Hour)
		second, err := f.commands.CreatePending(ctx, 42, next)
		require.NoError(t, err)

		// Pull the 18:00 booking back by an hour into the 16:00-18:00 one.
		newStart := next.StartTime.Add(-time.Hour)
		newEnd := next.EndTime.Add(-time.Hour)
		p := commands.ReservationPatch{}
		p.StartTime = &newStart
		p.EndTime = &newEnd

		_, err = f.commands.UpdateReservation(ctx,
			commands.MatchKeys{ID: second.ID, UserID: 42, MovieID: 99}, p)
		assert.ErrorIs(t, err, errs.ErrOverlap)
	})

	t.Run("confirming via patch enforces capacity", func(t *testing.T) {
		f := newFixture(t)

		first, err := f.commands.CreatePending(ctx, 42, morningShow(550))
		require.NoError(t, err)
		_, err = f.commands.ConfirmReservation(ctx, first.ID, reservation.CategoryAdult, 80)
		require.NoError(t, err)

		second, err := f.commands.CreatePending(ctx, 43, morningShow(550))
		require.NoError(t, err)

		status := reservation.StatusConfirmed
		p := commands.ReservationPatch{}
		p.Status = &status

		_, err = f.commands.UpdateReservation(ctx,
			commands.MatchKeys{ID: second.ID, UserID: 43, MovieID: 550}, p)
		assert.ErrorIs(t, err, errs.ErrCapacityExceeded)
	})
}

func quantityPatch(quantity int) commands.ReservationPatch {
	p := commands.ReservationPatch{}
	p.Quantity = &quantity
	return p
}
