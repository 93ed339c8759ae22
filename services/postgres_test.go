package services

import (
	"context"
	"sync"
	"testing"
	"time"

	"conciergerie-backend/apperrors"
	"conciergerie-backend/models"
	"conciergerie-backend/repository"
	"conciergerie-backend/testutil/pgtest"

	"go.uber.org/zap"
)

func TestPostgres_ConcurrentOverlappingRequests(t *testing.T) {
	db := pgtest.NewDB(t)
	user, property := pgtest.Seed(t, db)
	svc := NewBookingService(repository.NewBookingRepository(db), zap.NewNop())

	const n = 12
	var wg sync.WaitGroup
	start := make(chan struct{})
	results := make(chan error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			<-start
			_, err := svc.Create(context.Background(), CreateBookingInput{
				PropertyID: property.ID,
				UserID:     user.ID,
				CheckIn:    july(10 - i%3),
				CheckOut:   july(15 + i%4),
				Guests:     2,
				TotalPrice: 2450,
			})
			results <- err
		}(i)
	}
	close(start)
	wg.Wait()
	close(results)

	successes := 0
	for err := range results {
		if err == nil {
			successes++
			continue
		}
		assertCode(t, err, apperrors.CodeConflict)
	}
	if successes != 1 {
		t.Errorf("successes = %d, want exactly 1", successes)
	}
}

// A booking committed by a transaction holding the property lock must be seen by
// the availability check, not only by the exclusion constraint.
func TestPostgres_CreateWaitsForPropertyLock(t *testing.T) {
	db := pgtest.NewDB(t)
	user, property := pgtest.Seed(t, db)
	repo := repository.NewBookingRepository(db)
	svc := NewBookingService(repo, zap.NewNop())
	ctx := context.Background()

	held := make(chan *models.Booking)
	release := make(chan struct{})
	holder := make(chan error, 1)
	go func() {
		holder <- repo.Transaction(ctx, func(tx repository.BookingStore) error {
			if err := tx.LockProperty(ctx, property.ID); err != nil {
				close(held)
				return err
			}
			b := &models.Booking{
				PropertyID: property.ID, UserID: user.ID,
				CheckIn: july(15), CheckOut: july(22),
				Guests: 2, TotalPrice: 2450, Status: models.BookingConfirmed,
			}
			if err := tx.Create(ctx, b); err != nil {
				close(held)
				return err
			}
			held <- b
			<-release
			return nil
		})
	}()

	existing, ok := <-held
	if !ok {
		t.Fatalf("holder transaction failed: %v", <-holder)
	}

	created := make(chan error, 1)
	go func() {
		_, err := svc.Create(ctx, CreateBookingInput{
			PropertyID: property.ID, UserID: user.ID,
			CheckIn: july(20), CheckOut: july(25),
			Guests: 2, TotalPrice: 1000,
		})
		created <- err
	}()

	time.Sleep(200 * time.Millisecond)
	close(release)
	if err := <-holder; err != nil {
		t.Fatalf("holder transaction: %v", err)
	}

	err := <-created
	assertCode(t, err, apperrors.CodeConflict)
	appErr, _ := apperrors.As(err)
	ids, _ := appErr.Details["conflictingBookingIds"].([]string)
	if len(ids) != 1 || ids[0] != existing.ID {
		t.Errorf("conflict should come from the availability check after the lock, details = %v", appErr.Details)
	}
}
