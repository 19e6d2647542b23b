package services

import (
	"fmt"
	"sort"
	"strconv"
	"sync"
	"time"

	"travelex-backend/models"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// MemoryStore is the in-memory implementation of every storage interface.
// It mirrors the relational adapter's contracts so handler and service
// tests run without a database.
type MemoryStore struct {
	mu sync.Mutex

	users        map[string]*models.User
	destinations map[uint]*models.Destination
	bookings     map[uint]*models.Booking
	logs         []models.ActivityLog
	reviews      map[uint]*models.Review

	nextDestinationID uint
	nextBookingID     uint
	nextLogID         uint
	nextReviewID      uint

	now func() time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		users:             make(map[string]*models.User),
		destinations:      make(map[uint]*models.Destination),
		bookings:          make(map[uint]*models.Booking),
		reviews:           make(map[uint]*models.Review),
		nextDestinationID: 1,
		nextBookingID:     1,
		nextLogID:         1,
		nextReviewID:      1,
		now:               time.Now,
	}
}

var (
	_ UserStore        = (*MemoryStore)(nil)
	_ DestinationStore = (*MemoryStore)(nil)
	_ BookingStore     = (*MemoryStore)(nil)
	_ ActivityLogStore = (*MemoryStore)(nil)
	_ ReviewStore      = (*MemoryStore)(nil)
	_ AnalyticsStore   = (*MemoryStore)(nil)
)

// ---------------- users ----------------

func (m *MemoryStore) GetUser(id string) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[id]
	if !ok {
		return nil, ErrNotFound
	}
	copied := *u
	return &copied, nil
}

func (m *MemoryStore) GetUserByUsername(username string) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.Username == username {
			copied := *u
			return &copied, nil
		}
	}
	return nil, ErrNotFound
}

func (m *MemoryStore) AuthenticateUser(username, password string) (*models.User, error) {
	user, err := m.GetUserByUsername(username)
	if err != nil {
		return nil, err
	}
	if user.Password == "" ||
		bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)) != nil {
		return nil, ErrNotFound
	}
	if err := m.UpdateUserLastLogin(user.ID); err != nil {
		return nil, err
	}
	return m.GetUser(user.ID)
}

func (m *MemoryStore) userFromInput(input *UpsertUser) (*models.User, error) {
	user := &models.User{
		ID:              input.ID,
		Username:        input.Username,
		Email:           input.Email,
		FirstName:       input.FirstName,
		LastName:        input.LastName,
		ProfileImageURL: input.ProfileImageURL,
		Role:            input.Role,
		CreatedAt:       m.now(),
		UpdatedAt:       m.now(),
	}
	if user.ID == "" {
		user.ID = uuid.NewString()
	}
	if user.Role == "" {
		user.Role = "user"
	}
	if input.Password != "" {
		hash, err := hashPassword(input.Password)
		if err != nil {
			return nil, err
		}
		user.Password = hash
	}
	return user, nil
}

func (m *MemoryStore) CreateUser(input *UpsertUser) (*models.User, error) {
	user, err := m.userFromInput(input)
	if err != nil {
		return nil, err
	}
	m.mu.Lock()
	m.users[user.ID] = user
	m.mu.Unlock()
	copied := *user
	return &copied, nil
}

func (m *MemoryStore) UpdateUser(id string, input *UpsertUser) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	user, ok := m.users[id]
	if !ok {
		return nil, ErrNotFound
	}
	if input.Username != "" {
		user.Username = input.Username
	}
	if input.Password != "" {
		hash, err := hashPassword(input.Password)
		if err != nil {
			return nil, err
		}
		user.Password = hash
	}
	if input.Email != "" {
		user.Email = input.Email
	}
	if input.FirstName != "" {
		user.FirstName = input.FirstName
	}
	if input.LastName != "" {
		user.LastName = input.LastName
	}
	if input.ProfileImageURL != "" {
		user.ProfileImageURL = input.ProfileImageURL
	}
	if input.Role != "" {
		user.Role = input.Role
	}
	user.UpdatedAt = m.now()
	copied := *user
	return &copied, nil
}

func (m *MemoryStore) UpsertUser(input *UpsertUser) (*models.User, error) {
	if input.ID != "" {
		m.mu.Lock()
		_, exists := m.users[input.ID]
		m.mu.Unlock()
		if exists {
			return m.UpdateUser(input.ID, input)
		}
	}
	return m.CreateUser(input)
}

func (m *MemoryStore) GetAllUsers() ([]models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]models.User, 0, len(m.users))
	for _, u := range m.users {
		out = append(out, *u)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (m *MemoryStore) UpdateUserLastLogin(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	user, ok := m.users[id]
	if !ok {
		return ErrNotFound
	}
	now := m.now()
	user.LastLoginAt = &now
	return nil
}

func (m *MemoryStore) DeleteUser(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.users, id)
	return nil
}

// ---------------- destinations ----------------

func (m *MemoryStore) GetAllDestinations() ([]models.Destination, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]models.Destination, 0, len(m.destinations))
	for _, d := range m.destinations {
		if d.IsActive {
			out = append(out, *d)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return ratingValue(out[i]) > ratingValue(out[j])
	})
	return out, nil
}

func (m *MemoryStore) GetDestination(id uint) (*models.Destination, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	d, ok := m.destinations[id]
	if !ok {
		return nil, ErrNotFound
	}
	copied := *d
	return &copied, nil
}

func (m *MemoryStore) imageHolderLocked(imageURL string, excludeID uint) *models.Destination {
	if imageURL == "" {
		return nil
	}
	for _, d := range m.destinations {
		if d.ImageURL == imageURL && d.ID != excludeID {
			return d
		}
	}
	return nil
}

func (m *MemoryStore) CreateDestination(d *models.Destination) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if holder := m.imageHolderLocked(d.ImageURL, 0); holder != nil {
		return &ImageURLConflictError{Name: holder.Name}
	}
	d.ID = m.nextDestinationID
	m.nextDestinationID++
	d.CreatedAt = m.now()
	d.UpdatedAt = d.CreatedAt
	copied := *d
	m.destinations[d.ID] = &copied
	return nil
}

func (m *MemoryStore) UpdateDestination(id uint, patch *DestinationPatch) (*models.Destination, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	existing, ok := m.destinations[id]
	if !ok {
		return nil, ErrNotFound
	}
	if patch.ImageURL != nil && *patch.ImageURL != "" {
		if holder := m.imageHolderLocked(*patch.ImageURL, id); holder != nil {
			return nil, &ImageURLConflictError{Name: holder.Name}
		}
	}
	if patch.Name != nil {
		existing.Name = *patch.Name
	}
	if patch.Country != nil {
		existing.Country = *patch.Country
	}
	if patch.Description != nil {
		existing.Description = *patch.Description
	}
	if patch.Price != nil {
		existing.Price = *patch.Price
	}
	if patch.OriginalPrice != nil {
		existing.OriginalPrice = *patch.OriginalPrice
	}
	if patch.Duration != nil {
		existing.Duration = *patch.Duration
	}
	if patch.MaxGuests != nil {
		existing.MaxGuests = *patch.MaxGuests
	}
	if patch.Rating != nil {
		existing.Rating = *patch.Rating
	}
	if patch.ImageURL != nil {
		existing.ImageURL = *patch.ImageURL
	}
	if patch.IsActive != nil {
		existing.IsActive = *patch.IsActive
	}
	if patch.PromoTag != nil {
		existing.PromoTag = *patch.PromoTag
	}
	if patch.DiscountPercentage != nil {
		existing.DiscountPercentage = *patch.DiscountPercentage
	}
	if patch.PromoExpiry != nil {
		existing.PromoExpiry = patch.PromoExpiry
	}
	if patch.SeasonalTag != nil {
		existing.SeasonalTag = *patch.SeasonalTag
	}
	if patch.FlashSale != nil {
		existing.FlashSale = *patch.FlashSale
	}
	if patch.FlashSaleEnd != nil {
		existing.FlashSaleEnd = patch.FlashSaleEnd
	}
	if patch.CouponCode != nil {
		existing.CouponCode = *patch.CouponCode
	}
	if patch.DiscountType != nil {
		existing.DiscountType = *patch.DiscountType
	}
	if patch.GroupDiscountMin != nil {
		existing.GroupDiscountMin = *patch.GroupDiscountMin
	}
	if patch.LoyaltyDiscount != nil {
		existing.LoyaltyDiscount = *patch.LoyaltyDiscount
	}
	if patch.BundleDeal != nil {
		existing.BundleDeal = *patch.BundleDeal
	}
	existing.UpdatedAt = m.now()
	copied := *existing
	return &copied, nil
}

func (m *MemoryStore) DeleteDestination(id uint) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.destinations, id)
	return nil
}

func (m *MemoryStore) CheckImageURLExists(imageURL string, excludeID uint) (*models.Destination, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if holder := m.imageHolderLocked(imageURL, excludeID); holder != nil {
		copied := *holder
		return &copied, nil
	}
	return nil, nil
}

func (m *MemoryStore) GetDestinationsWithStats() ([]models.DestinationWithStats, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	counts := make(map[uint]int)
	revenue := make(map[uint]float64)
	for _, b := range m.bookings {
		counts[b.DestinationID]++
		if amount, err := strconv.ParseFloat(b.TotalAmount, 64); err == nil {
			revenue[b.DestinationID] += amount
		}
	}

	out := make([]models.DestinationWithStats, 0, len(m.destinations))
	for _, d := range m.destinations {
		stats := models.DestinationWithStats{Destination: *d, Revenue: "0"}
		if n := counts[d.ID]; n > 0 {
			stats.BookingCount = n
			stats.Revenue = fmt.Sprintf("%.2f", revenue[d.ID])
		}
		out = append(out, stats)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// ---------------- bookings ----------------

func (m *MemoryStore) CreateBooking(b *models.Booking) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, row := range m.bookings {
		if row.UserID == b.UserID && row.DestinationID == b.DestinationID &&
			row.CheckIn == b.CheckIn && row.CheckOut == b.CheckOut &&
			row.Status != models.BookingStatusCancelled {
			return ErrDuplicateBooking
		}
	}
	if b.Status == "" {
		b.Status = models.BookingStatusActive
	}
	if b.PaymentStatus == "" {
		b.PaymentStatus = models.PaymentStatusPending
	}
	b.ID = m.nextBookingID
	m.nextBookingID++
	b.CreatedAt = m.now()
	b.UpdatedAt = b.CreatedAt
	copied := *b
	m.bookings[b.ID] = &copied
	return nil
}

func (m *MemoryStore) detailLocked(b models.Booking) models.BookingWithDetails {
	detail := models.BookingWithDetails{Booking: b}
	if d, ok := m.destinations[b.DestinationID]; ok {
		detail.Destination = *d
	}
	if u, ok := m.users[b.UserID]; ok {
		detail.User = *u
	}
	return detail
}

func (m *MemoryStore) listBookings(filter func(models.Booking) bool) []models.BookingWithDetails {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]models.BookingWithDetails, 0, len(m.bookings))
	for _, b := range m.bookings {
		if filter == nil || filter(*b) {
			out = append(out, m.detailLocked(*b))
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID > out[j].ID
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out
}

func (m *MemoryStore) GetUserBookings(userID string) ([]models.BookingWithDetails, error) {
	return m.listBookings(func(b models.Booking) bool { return b.UserID == userID }), nil
}

func (m *MemoryStore) GetAllBookings() ([]models.BookingWithDetails, error) {
	return m.listBookings(nil), nil
}

func (m *MemoryStore) GetBooking(id uint) (*models.BookingWithDetails, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	b, ok := m.bookings[id]
	if !ok {
		return nil, ErrNotFound
	}
	detail := m.detailLocked(*b)
	return &detail, nil
}

func (m *MemoryStore) UpdateBooking(id uint, patch *models.Booking) (*models.Booking, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	existing, ok := m.bookings[id]
	if !ok {
		return nil, ErrNotFound
	}
	if patch.CheckIn != "" {
		existing.CheckIn = patch.CheckIn
	}
	if patch.CheckOut != "" {
		existing.CheckOut = patch.CheckOut
	}
	if patch.Guests != 0 {
		existing.Guests = patch.Guests
	}
	if patch.TravelClass != "" {
		existing.TravelClass = patch.TravelClass
	}
	if len(patch.Upgrades) > 0 {
		existing.Upgrades = patch.Upgrades
	}
	if patch.TotalAmount != "" {
		existing.TotalAmount = patch.TotalAmount
	}
	if patch.OriginalAmount != "" {
		existing.OriginalAmount = patch.OriginalAmount
	}
	if patch.AppliedCouponCode != "" {
		existing.AppliedCouponCode = patch.AppliedCouponCode
	}
	if patch.CouponDiscount != "" {
		existing.CouponDiscount = patch.CouponDiscount
	}
	if patch.Status != "" {
		existing.Status = patch.Status
	}
	if patch.PaymentStatus != "" {
		existing.PaymentStatus = patch.PaymentStatus
	}
	if patch.StripePaymentIntentID != "" {
		existing.StripePaymentIntentID = patch.StripePaymentIntentID
	}
	existing.UpdatedAt = m.now()
	copied := *existing
	return &copied, nil
}

func (m *MemoryStore) CancelBooking(id uint) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	b, ok := m.bookings[id]
	if !ok {
		return ErrNotFound
	}
	b.Status = models.BookingStatusCancelled
	b.UpdatedAt = m.now()
	return nil
}

func (m *MemoryStore) CheckDuplicateBooking(userID string, destinationID uint, checkIn, checkOut string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, b := range m.bookings {
		if b.UserID == userID && b.DestinationID == destinationID &&
			b.CheckIn == checkIn && b.CheckOut == checkOut &&
			b.Status != models.BookingStatusCancelled {
			return true, nil
		}
	}
	return false, nil
}

// ---------------- activity logs ----------------

func (m *MemoryStore) CreateActivityLog(entry *models.ActivityLog) (*models.ActivityLog, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	entry.ID = m.nextLogID
	m.nextLogID++
	entry.CreatedAt = m.now()
	m.logs = append(m.logs, *entry)
	copied := *entry
	return &copied, nil
}

func (m *MemoryStore) GetActivityLogs(limit int) ([]models.ActivityLog, error) {
	if limit <= 0 {
		limit = defaultActivityLogLimit
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]models.ActivityLog, len(m.logs))
	copy(out, m.logs)
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID > out[j].ID
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// ---------------- reviews ----------------

func (m *MemoryStore) GetDestinationReviews(destinationID uint) ([]models.ReviewWithUser, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]models.ReviewWithUser, 0)
	for _, r := range m.reviews {
		if r.DestinationID != destinationID {
			continue
		}
		item := models.ReviewWithUser{Review: *r}
		if u, ok := m.users[r.UserID]; ok {
			item.User = *u
		}
		out = append(out, item)
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID > out[j].ID
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (m *MemoryStore) CreateReview(r *models.Review) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	r.ID = m.nextReviewID
	m.nextReviewID++
	r.CreatedAt = m.now()
	r.UpdatedAt = r.CreatedAt
	copied := *r
	m.reviews[r.ID] = &copied
	return nil
}

func (m *MemoryStore) GetReviewStats(destinationID uint) (models.ReviewStats, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var sum, n int
	for _, r := range m.reviews {
		if r.DestinationID == destinationID {
			sum += r.Rating
			n++
		}
	}
	if n == 0 {
		return models.ReviewStats{}, nil
	}
	avg := float64(sum) / float64(n)
	rounded, _ := strconv.ParseFloat(fmt.Sprintf("%.1f", avg), 64)
	return models.ReviewStats{AverageRating: rounded, TotalReviews: n}, nil
}

// ---------------- analytics ----------------

func (m *MemoryStore) GetRevenue() (RevenueSummary, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	thisMonth := monthStart(m.now())
	lastMonth := thisMonth.AddDate(0, -1, 0)

	var total, current, previous float64
	for _, b := range m.bookings {
		if b.Status == models.BookingStatusCancelled {
			continue
		}
		amount, err := strconv.ParseFloat(b.TotalAmount, 64)
		if err != nil {
			continue
		}
		total += amount
		if !b.CreatedAt.Before(thisMonth) {
			current += amount
		} else if !b.CreatedAt.Before(lastMonth) {
			previous += amount
		}
	}
	growth := growthPercent(int64(current), int64(previous))
	return RevenueSummary{
		Total:  fmt.Sprintf("%.2f", total),
		Period: fmt.Sprintf("%+d%% from last month", growth),
	}, nil
}

func (m *MemoryStore) GetBookingStats() (BookingStatsSummary, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	thisMonth := monthStart(m.now())
	lastMonth := thisMonth.AddDate(0, -1, 0)

	var current, previous int64
	for _, b := range m.bookings {
		if !b.CreatedAt.Before(thisMonth) {
			current++
		} else if !b.CreatedAt.Before(lastMonth) {
			previous++
		}
	}
	return BookingStatsSummary{
		Total:     len(m.bookings),
		ThisMonth: int(current),
		Growth:    growthPercent(current, previous),
	}, nil
}

func (m *MemoryStore) GetUserStats() (UserStatsSummary, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	now := m.now()
	thisMonth := monthStart(now)
	lastMonth := thisMonth.AddDate(0, -1, 0)
	activeSince := now.AddDate(0, 0, -30)

	var active int
	var current, previous int64
	for _, u := range m.users {
		if u.LastLoginAt != nil && u.LastLoginAt.After(activeSince) {
			active++
		}
		if !u.CreatedAt.Before(thisMonth) {
			current++
		} else if !u.CreatedAt.Before(lastMonth) {
			previous++
		}
	}
	return UserStatsSummary{
		Total:  len(m.users),
		Active: active,
		Growth: growthPercent(current, previous),
	}, nil
}
