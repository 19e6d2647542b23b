package services

import (
	"errors"
	"testing"
	"time"

	"travelex-backend/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptrTo[T any](v T) *T { return &v }

func TestAuthenticateUser(t *testing.T) {
	store := NewMemoryStore()
	created, err := store.CreateUser(&UpsertUser{Username: "mia", Password: "sekrit42"})
	require.NoError(t, err)
	assert.NotEqual(t, "sekrit42", created.Password, "password must be stored hashed")

	// Wrong password: no user, and last login stays untouched.
	_, err = store.AuthenticateUser("mia", "wrong")
	assert.ErrorIs(t, err, ErrNotFound)
	fresh, err := store.GetUser(created.ID)
	require.NoError(t, err)
	assert.Nil(t, fresh.LastLoginAt)

	// Unknown username is indistinguishable from a bad password.
	_, err = store.AuthenticateUser("nobody", "sekrit42")
	assert.ErrorIs(t, err, ErrNotFound)

	// Correct credentials stamp last login.
	user, err := store.AuthenticateUser("mia", "sekrit42")
	require.NoError(t, err)
	require.NotNil(t, user.LastLoginAt)
	assert.WithinDuration(t, time.Now(), *user.LastLoginAt, time.Minute)
}

func TestUpsertUser(t *testing.T) {
	store := NewMemoryStore()
	first, err := store.UpsertUser(&UpsertUser{ID: "ext-1", Username: "remote", Email: "a@example.com"})
	require.NoError(t, err)
	assert.Equal(t, "ext-1", first.ID)

	second, err := store.UpsertUser(&UpsertUser{ID: "ext-1", Email: "b@example.com"})
	require.NoError(t, err)
	assert.Equal(t, "ext-1", second.ID)
	assert.Equal(t, "remote", second.Username)
	assert.Equal(t, "b@example.com", second.Email)

	all, err := store.GetAllUsers()
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestUpsertUserWithoutPasswordKeepsCredentials(t *testing.T) {
	store := NewMemoryStore()
	created, err := store.CreateUser(&UpsertUser{Username: "mia", Password: "sekrit42"})
	require.NoError(t, err)

	// An upsert that omits the password must not blank the stored hash.
	_, err = store.UpsertUser(&UpsertUser{ID: created.ID, Email: "mia@example.com"})
	require.NoError(t, err)

	user, err := store.AuthenticateUser("mia", "sekrit42")
	require.NoError(t, err)
	assert.Equal(t, "mia@example.com", user.Email)
}

func TestCreateDestinationImageURLConflict(t *testing.T) {
	store := NewMemoryStore()
	first := models.Destination{Name: "Bali Beach Retreat", ImageURL: "https://img/a.jpg", IsActive: true}
	require.NoError(t, store.CreateDestination(&first))

	// Same image URL on a different row is rejected, naming the holder.
	dup := models.Destination{Name: "Copycat Resort", ImageURL: "https://img/a.jpg"}
	err := store.CreateDestination(&dup)
	var conflict *ImageURLConflictError
	require.ErrorAs(t, err, &conflict)
	assert.Equal(t, "Bali Beach Retreat", conflict.Name)
	assert.Contains(t, err.Error(), "Bali Beach Retreat")

	// A unique URL goes through.
	ok := models.Destination{Name: "Other Place", ImageURL: "https://img/b.jpg"}
	assert.NoError(t, store.CreateDestination(&ok))

	// Updating a row with its own URL is not a conflict with itself.
	_, err = store.UpdateDestination(first.ID, &DestinationPatch{ImageURL: ptrTo("https://img/a.jpg")})
	assert.NoError(t, err)

	// Updating onto someone else's URL is.
	_, err = store.UpdateDestination(ok.ID, &DestinationPatch{ImageURL: ptrTo("https://img/a.jpg")})
	require.ErrorAs(t, err, &conflict)
	assert.Equal(t, "Bali Beach Retreat", conflict.Name)
}

func TestUpdateDestinationAppliesFalseAndZero(t *testing.T) {
	store := NewMemoryStore()
	dest := models.Destination{
		Name:               "Bali Beach Retreat",
		Country:            "Indonesia",
		Price:              "1500.00",
		IsActive:           true,
		FlashSale:          true,
		DiscountPercentage: 15,
		ImageURL:           "https://img/bali.jpg",
	}
	require.NoError(t, store.CreateDestination(&dest))

	// Deactivation pulls the row from the public catalog without deleting it.
	updated, err := store.UpdateDestination(dest.ID, &DestinationPatch{IsActive: ptrTo(false)})
	require.NoError(t, err)
	assert.False(t, updated.IsActive)

	list, err := store.GetAllDestinations()
	require.NoError(t, err)
	assert.Empty(t, list)
	got, err := store.GetDestination(dest.ID)
	require.NoError(t, err)
	assert.Equal(t, "Bali Beach Retreat", got.Name)

	// Untouched fields survive; false and zero land like any other value.
	assert.True(t, got.FlashSale)
	updated, err = store.UpdateDestination(dest.ID, &DestinationPatch{
		FlashSale:          ptrTo(false),
		DiscountPercentage: ptrTo(0),
	})
	require.NoError(t, err)
	assert.False(t, updated.FlashSale)
	assert.Zero(t, updated.DiscountPercentage)
	assert.Equal(t, "1500.00", updated.Price)
	assert.Equal(t, "Indonesia", updated.Country)
}

func TestGetAllDestinationsActiveOnlyByRating(t *testing.T) {
	store := NewMemoryStore()
	require.NoError(t, store.CreateDestination(&models.Destination{Name: "low", Rating: "3.1", IsActive: true, ImageURL: "https://img/1.jpg"}))
	require.NoError(t, store.CreateDestination(&models.Destination{Name: "hidden", Rating: "5.0", IsActive: false, ImageURL: "https://img/2.jpg"}))
	require.NoError(t, store.CreateDestination(&models.Destination{Name: "high", Rating: "4.9", IsActive: true, ImageURL: "https://img/3.jpg"}))

	list, err := store.GetAllDestinations()
	require.NoError(t, err)
	assert.Equal(t, []string{"high", "low"}, names(list))
}

func TestCheckDuplicateBooking(t *testing.T) {
	store := NewMemoryStore()
	user, err := store.CreateUser(&UpsertUser{Username: "kai", Password: "pw"})
	require.NoError(t, err)
	dest := models.Destination{Name: "Paris City Tour", IsActive: true}
	require.NoError(t, store.CreateDestination(&dest))

	booking := models.Booking{
		UserID:        user.ID,
		DestinationID: dest.ID,
		CheckIn:       "2026-10-01",
		CheckOut:      "2026-10-08",
		TotalAmount:   "2500.00",
	}
	require.NoError(t, store.CreateBooking(&booking))

	dup, err := store.CheckDuplicateBooking(user.ID, dest.ID, "2026-10-01", "2026-10-08")
	require.NoError(t, err)
	assert.True(t, dup)

	// Different dates are not duplicates.
	dup, err = store.CheckDuplicateBooking(user.ID, dest.ID, "2026-11-01", "2026-11-08")
	require.NoError(t, err)
	assert.False(t, dup)

	// A second create for the same tuple is refused outright.
	again := booking
	again.ID = 0
	assert.ErrorIs(t, store.CreateBooking(&again), ErrDuplicateBooking)

	// Once cancelled, the slot opens up.
	require.NoError(t, store.CancelBooking(booking.ID))
	dup, err = store.CheckDuplicateBooking(user.ID, dest.ID, "2026-10-01", "2026-10-08")
	require.NoError(t, err)
	assert.False(t, dup)
	again.ID = 0
	assert.NoError(t, store.CreateBooking(&again))
}

func TestCancelBookingKeepsRow(t *testing.T) {
	store := NewMemoryStore()
	booking := models.Booking{UserID: "u1", DestinationID: 1, CheckIn: "2026-01-01", CheckOut: "2026-01-05", TotalAmount: "900.00"}
	require.NoError(t, store.CreateBooking(&booking))
	require.NoError(t, store.CancelBooking(booking.ID))

	got, err := store.GetBooking(booking.ID)
	require.NoError(t, err)
	assert.Equal(t, models.BookingStatusCancelled, got.Booking.Status)
}

func TestBookingListsNewestFirstWithDetails(t *testing.T) {
	store := NewMemoryStore()
	user, err := store.CreateUser(&UpsertUser{Username: "zoe", Password: "pw"})
	require.NoError(t, err)
	dest := models.Destination{Name: "Kenya Safari Adventure", IsActive: true}
	require.NoError(t, store.CreateDestination(&dest))

	for i, checkIn := range []string{"2026-01-01", "2026-02-01", "2026-03-01"} {
		b := models.Booking{
			UserID:        user.ID,
			DestinationID: dest.ID,
			CheckIn:       checkIn,
			CheckOut:      checkIn[:8] + "09",
			TotalAmount:   "1000.00",
		}
		require.NoError(t, store.CreateBooking(&b), "booking %d", i)
	}

	mine, err := store.GetUserBookings(user.ID)
	require.NoError(t, err)
	require.Len(t, mine, 3)
	assert.Equal(t, "2026-03-01", mine[0].Booking.CheckIn)
	assert.Equal(t, "Kenya Safari Adventure", mine[0].Destination.Name)
	assert.Equal(t, "zoe", mine[0].User.Username)

	all, err := store.GetAllBookings()
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestDestinationsWithStats(t *testing.T) {
	store := NewMemoryStore()
	booked := models.Destination{Name: "busy", IsActive: true, ImageURL: "https://img/busy.jpg"}
	idle := models.Destination{Name: "idle", IsActive: true, ImageURL: "https://img/idle.jpg"}
	require.NoError(t, store.CreateDestination(&booked))
	require.NoError(t, store.CreateDestination(&idle))

	require.NoError(t, store.CreateBooking(&models.Booking{UserID: "u1", DestinationID: booked.ID, CheckIn: "2026-01-01", CheckOut: "2026-01-05", TotalAmount: "1000.00"}))
	require.NoError(t, store.CreateBooking(&models.Booking{UserID: "u2", DestinationID: booked.ID, CheckIn: "2026-02-01", CheckOut: "2026-02-05", TotalAmount: "1500.50"}))

	stats, err := store.GetDestinationsWithStats()
	require.NoError(t, err)
	require.Len(t, stats, 2)

	byName := map[string]models.DestinationWithStats{}
	for _, s := range stats {
		byName[s.Name] = s
	}
	assert.Equal(t, 2, byName["busy"].BookingCount)
	assert.Equal(t, "2500.50", byName["busy"].Revenue)
	assert.Equal(t, 0, byName["idle"].BookingCount)
	assert.Equal(t, "0", byName["idle"].Revenue)
}

func TestReviewStats(t *testing.T) {
	store := NewMemoryStore()
	user, err := store.CreateUser(&UpsertUser{Username: "ana", Password: "pw"})
	require.NoError(t, err)

	// No reviews yet: zero average, zero count.
	stats, err := store.GetReviewStats(7)
	require.NoError(t, err)
	assert.Zero(t, stats.AverageRating)
	assert.Zero(t, stats.TotalReviews)

	require.NoError(t, store.CreateReview(&models.Review{DestinationID: 7, UserID: user.ID, Rating: 4}))
	require.NoError(t, store.CreateReview(&models.Review{DestinationID: 7, UserID: user.ID, Rating: 5}))
	require.NoError(t, store.CreateReview(&models.Review{DestinationID: 9, UserID: user.ID, Rating: 1}))

	stats, err = store.GetReviewStats(7)
	require.NoError(t, err)
	assert.Equal(t, 4.5, stats.AverageRating)
	assert.Equal(t, 2, stats.TotalReviews)

	reviews, err := store.GetDestinationReviews(7)
	require.NoError(t, err)
	require.Len(t, reviews, 2)
	assert.Equal(t, "ana", reviews[0].User.Username)
}

func TestActivityLogsLimitAndOrder(t *testing.T) {
	store := NewMemoryStore()
	for _, action := range []string{"first", "second", "third"} {
		_, err := store.CreateActivityLog(&models.ActivityLog{Action: action})
		require.NoError(t, err)
	}

	logs, err := store.GetActivityLogs(2)
	require.NoError(t, err)
	require.Len(t, logs, 2)
	assert.Equal(t, "third", logs[0].Action)
	assert.Equal(t, "second", logs[1].Action)

	// Non-positive limit falls back to the default of 50.
	logs, err = store.GetActivityLogs(0)
	require.NoError(t, err)
	assert.Len(t, logs, 3)
}

func TestGetUserNotFound(t *testing.T) {
	store := NewMemoryStore()
	_, err := store.GetUser("missing")
	assert.True(t, errors.Is(err, ErrNotFound))
}
