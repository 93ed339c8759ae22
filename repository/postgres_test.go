package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"conciergerie-backend/models"
	"conciergerie-backend/testutil/pgtest"
)

func TestPostgres_LockPropertyBlocksOtherTransactions(t *testing.T) {
	db := pgtest.NewDB(t)
	_, property := pgtest.Seed(t, db)
	repo := NewBookingRepository(db)
	ctx := context.Background()

	locked := make(chan struct{})
	release := make(chan struct{})
	done := make(chan error, 1)
	go func() {
		done <- repo.Transaction(ctx, func(tx BookingStore) error {
			if err := tx.LockProperty(ctx, property.ID); err != nil {
				close(locked)
				return err
			}
			close(locked)
			<-release
			return nil
		})
	}()
	<-locked

	waitCtx, cancel := context.WithTimeout(ctx, 300*time.Millisecond)
	defer cancel()
	err := repo.Transaction(waitCtx, func(tx BookingStore) error {
		return tx.LockProperty(waitCtx, property.ID)
	})
	if err == nil {
		t.Error("second transaction took the property lock while the first still held it")
	}

	close(release)
	if err := <-done; err != nil {
		t.Fatalf("holder transaction: %v", err)
	}

	// free again once the holder committed
	if err := repo.Transaction(ctx, func(tx BookingStore) error {
		return tx.LockProperty(ctx, property.ID)
	}); err != nil {
		t.Errorf("lock after release: %v", err)
	}
}

func TestPostgres_ExclusionConstraint(t *testing.T) {
	db := pgtest.NewDB(t)
	user, property := pgtest.Seed(t, db)
	repo := NewBookingRepository(db)
	ctx := context.Background()

	insert := func(from, to int, status models.BookingStatus) error {
		return repo.Create(ctx, &models.Booking{
			PropertyID: property.ID,
			UserID:     user.ID,
			CheckIn:    july(from),
			CheckOut:   july(to),
			Guests:     2,
			TotalPrice: 1000,
			Status:     status,
		})
	}

	if err := insert(15, 22, models.BookingConfirmed); err != nil {
		t.Fatalf("first booking: %v", err)
	}
	// written without going through the checker: only the constraint stands in the way
	if err := insert(20, 25, models.BookingPending); !errors.Is(err, ErrOverlap) {
		t.Errorf("overlapping insert: expected ErrOverlap, got %v", err)
	}
	if err := insert(22, 29, models.BookingPending); err != nil {
		t.Errorf("turnover insert: %v", err)
	}
	if err := insert(16, 18, models.BookingCancelled); err != nil {
		t.Errorf("cancelled rows are outside the constraint: %v", err)
	}
}
