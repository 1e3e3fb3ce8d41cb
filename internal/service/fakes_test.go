package service

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/pinswap/api/internal/domain"
	"github.com/pinswap/api/internal/pkg/mailer"
	"github.com/pinswap/api/internal/repository"
)

type resetToken struct {
	hash    string
	expires time.Time
}

// fakeUserRepo is an in-memory account store whose point updates are guarded
// the same way the SQL ones are.
type fakeUserRepo struct {
	mu        sync.Mutex
	nextID    uint
	users     map[uint]domain.User
	tokens    map[uint]resetToken
	creditErr error
	credits   []int
}

func newFakeUserRepo(users ...domain.User) *fakeUserRepo {
	r := &fakeUserRepo{users: map[uint]domain.User{}, tokens: map[uint]resetToken{}}
	for _, u := range users {
		if u.ID > r.nextID {
			r.nextID = u.ID
		}
		r.users[u.ID] = u
	}

	return r
}

func (r *fakeUserRepo) Create(_ context.Context, user domain.User) (domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, u := range r.users {
		if u.Email == user.Email {
			return domain.User{}, repository.ErrUserEmailExists
		}
	}
	r.nextID++
	user.ID = r.nextID
	user.CreatedAt = time.Now()
	r.users[user.ID] = user

	return user, nil
}

func (r *fakeUserRepo) FindByID(_ context.Context, id uint) (domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.users[id]
	if !ok {
		return domain.User{}, repository.ErrUserNotFound
	}

	return u, nil
}

func (r *fakeUserRepo) FindByEmail(_ context.Context, email string) (domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, u := range r.users {
		if u.Email == email {
			return u, nil
		}
	}

	return domain.User{}, repository.ErrUserNotFound
}

func (r *fakeUserRepo) FindByResetToken(_ context.Context, hash string, now time.Time) (domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for id, t := range r.tokens {
		if t.hash == hash && t.expires.After(now) {
			return r.users[id], nil
		}
	}

	return domain.User{}, repository.ErrUserNotFound
}

func (r *fakeUserRepo) SetResetToken(_ context.Context, id uint, hash *string, expires *time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if hash == nil {
		delete(r.tokens, id)
		return nil
	}
	r.tokens[id] = resetToken{hash: *hash, expires: *expires}

	return nil
}

func (r *fakeUserRepo) ResetPassword(_ context.Context, id uint, hash string) (domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.users[id]
	if !ok {
		return domain.User{}, repository.ErrUserNotFound
	}
	u.Password = hash
	r.users[id] = u
	delete(r.tokens, id)

	return u, nil
}

func (r *fakeUserRepo) List(_ context.Context, page domain.Page) ([]domain.User, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	all := make([]domain.User, 0, len(r.users))
	for _, u := range r.users {
		all = append(all, u)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].ID > all[j].ID })

	start := page.Offset()
	if start > len(all) {
		start = len(all)
	}
	end := start + page.Limit
	if end > len(all) {
		end = len(all)
	}

	return all[start:end], int64(len(all)), nil
}

func (r *fakeUserRepo) Update(_ context.Context, id uint, update domain.UserUpdate) (domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.users[id]
	if !ok {
		return domain.User{}, repository.ErrUserNotFound
	}
	if update.Name != nil {
		u.Name = *update.Name
	}
	if update.Email != nil {
		u.Email = *update.Email
	}
	if update.Phone != nil {
		u.Phone = *update.Phone
	}
	if update.Address != nil {
		u.Address = *update.Address
	}
	if update.Password != nil {
		u.Password = *update.Password
	}
	if update.Role != nil {
		u.Role = *update.Role
	}
	if update.Status != nil {
		u.Status = *update.Status
	}
	r.users[id] = u

	return u, nil
}

func (r *fakeUserRepo) Delete(_ context.Context, id uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.users[id]; !ok {
		return repository.ErrUserNotFound
	}
	delete(r.users, id)

	return nil
}

func (r *fakeUserRepo) DebitPoints(_ context.Context, id uint, amount int) (domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.users[id]
	if !ok || u.Points < amount {
		return domain.User{}, repository.ErrInsufficientPoints
	}
	u.Points -= amount
	r.users[id] = u

	return u, nil
}

func (r *fakeUserRepo) CreditPoints(_ context.Context, id uint, amount int) (domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.credits = append(r.credits, amount)
	if r.creditErr != nil {
		return domain.User{}, r.creditErr
	}
	u, ok := r.users[id]
	if !ok {
		return domain.User{}, repository.ErrUserNotFound
	}
	u.Points += amount
	r.users[id] = u

	return u, nil
}

func (r *fakeUserRepo) Count(_ context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	return int64(len(r.users)), nil
}

func (r *fakeUserRepo) SumPoints(_ context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var total int64
	for _, u := range r.users {
		total += int64(u.Points)
	}

	return total, nil
}

func (r *fakeUserRepo) points(id uint) int {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.users[id].Points
}

// fakeVoucherRepo keeps vouchers and redemption records in memory.
type fakeVoucherRepo struct {
	mu          sync.Mutex
	nextID      uint
	vouchers    map[uint]domain.Voucher
	redemptions []domain.RedemptionRecord

	// beforeDecrement runs outside the lock, between the debit and the stock update.
	beforeDecrement func()
	decrementErr    error
	redemptionErr   error
}

func newFakeVoucherRepo(vouchers ...domain.Voucher) *fakeVoucherRepo {
	r := &fakeVoucherRepo{vouchers: map[uint]domain.Voucher{}}
	for _, v := range vouchers {
		if v.ID > r.nextID {
			r.nextID = v.ID
		}
		r.vouchers[v.ID] = v
	}

	return r
}

func (r *fakeVoucherRepo) Create(_ context.Context, v domain.Voucher) (domain.Voucher, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.nextID++
	v.ID = r.nextID
	r.vouchers[v.ID] = v

	return v, nil
}

func (r *fakeVoucherRepo) FindByID(_ context.Context, id uint) (domain.Voucher, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	v, ok := r.vouchers[id]
	if !ok {
		return domain.Voucher{}, repository.ErrVoucherNotFound
	}

	return v, nil
}

func (r *fakeVoucherRepo) FindRedeemable(_ context.Context) ([]domain.Voucher, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []domain.Voucher
	for _, v := range r.vouchers {
		if v.Redeemable() {
			out = append(out, v)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })

	return out, nil
}

func (r *fakeVoucherRepo) FindAll(_ context.Context) ([]domain.Voucher, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]domain.Voucher, 0, len(r.vouchers))
	for _, v := range r.vouchers {
		out = append(out, v)
	}

	return out, nil
}

func (r *fakeVoucherRepo) FindByBusinessID(_ context.Context, businessID uint) ([]domain.Voucher, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []domain.Voucher
	for _, v := range r.vouchers {
		if v.BusinessID == businessID {
			out = append(out, v)
		}
	}

	return out, nil
}

func (r *fakeVoucherRepo) Update(_ context.Context, id uint, update domain.VoucherUpdate) (domain.Voucher, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	v, ok := r.vouchers[id]
	if !ok {
		return domain.Voucher{}, repository.ErrVoucherNotFound
	}
	if update.Title != nil {
		v.Title = *update.Title
	}
	if update.Quantity != nil {
		v.Quantity = *update.Quantity
	}
	if update.PointsRequired != nil {
		v.PointsRequired = *update.PointsRequired
	}
	if update.Status != nil {
		v.Status = *update.Status
	}
	r.vouchers[id] = v

	return v, nil
}

func (r *fakeVoucherRepo) Delete(_ context.Context, id uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.vouchers[id]; !ok {
		return repository.ErrVoucherNotFound
	}
	delete(r.vouchers, id)

	return nil
}

func (r *fakeVoucherRepo) DecrementQuantity(_ context.Context, id uint) (domain.Voucher, error) {
	if r.beforeDecrement != nil {
		r.beforeDecrement()
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.decrementErr != nil {
		return domain.Voucher{}, r.decrementErr
	}
	v, ok := r.vouchers[id]
	if !ok || v.Quantity <= 0 {
		return domain.Voucher{}, repository.ErrVoucherUnavailable
	}
	v.Quantity--
	r.vouchers[id] = v

	// The UPDATE ... RETURNING row carries no owner join.
	v.CompanyName = ""

	return v, nil
}

func (r *fakeVoucherRepo) CreateRedemption(_ context.Context, record domain.RedemptionRecord) (domain.RedemptionRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.redemptionErr != nil {
		return domain.RedemptionRecord{}, r.redemptionErr
	}
	record.ID = uint(len(r.redemptions) + 1)
	record.CreatedAt = time.Now().Add(time.Duration(record.ID) * time.Millisecond)
	r.redemptions = append(r.redemptions, record)

	return record, nil
}

func (r *fakeVoucherRepo) FindRedemptionsByUser(_ context.Context, userID uint) ([]domain.RedemptionRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []domain.RedemptionRecord
	for i := len(r.redemptions) - 1; i >= 0; i-- {
		rec := r.redemptions[i]
		if rec.UserID == userID {
			v := r.vouchers[rec.VoucherID]
			rec.Voucher = &v
			out = append(out, rec)
		}
	}

	return out, nil
}

func (r *fakeVoucherRepo) quantity(id uint) int {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.vouchers[id].Quantity
}

func (r *fakeVoucherRepo) redemptionCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	return len(r.redemptions)
}

// fakeMailer records sent messages and fails for recipients in failFor.
type fakeMailer struct {
	mu       sync.Mutex
	sent     []mailer.Message
	failFor  map[string]bool
	err      error
	delay    time.Duration
	inFlight int
	maxSeen  int
}

func (m *fakeMailer) Send(_ context.Context, msg mailer.Message) error {
	m.mu.Lock()
	m.inFlight++
	if m.inFlight > m.maxSeen {
		m.maxSeen = m.inFlight
	}
	m.mu.Unlock()

	if m.delay > 0 {
		time.Sleep(m.delay)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.inFlight--

	if m.err != nil || m.failFor[msg.To] {
		if m.err != nil {
			return m.err
		}
		return errSendFailed
	}
	m.sent = append(m.sent, msg)

	return nil
}

func (m *fakeMailer) sentTo() []string {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]string, 0, len(m.sent))
	for _, msg := range m.sent {
		out = append(out, msg.To)
	}
	sort.Strings(out)

	return out
}

func (m *fakeMailer) last() mailer.Message {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.sent[len(m.sent)-1]
}

type fakeBusinessRepo struct {
	mu         sync.Mutex
	nextID     uint
	businesses map[uint]domain.Business
	createErr  error
}

func newFakeBusinessRepo() *fakeBusinessRepo {
	return &fakeBusinessRepo{businesses: map[uint]domain.Business{}}
}

func (r *fakeBusinessRepo) Create(_ context.Context, b domain.Business) (domain.Business, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.createErr != nil {
		return domain.Business{}, r.createErr
	}
	for _, existing := range r.businesses {
		if existing.TaxCode == b.TaxCode {
			return domain.Business{}, repository.ErrBusinessTaxCodeExists
		}
	}
	r.nextID++
	b.ID = r.nextID
	r.businesses[b.ID] = b

	return b, nil
}

func (r *fakeBusinessRepo) FindByID(_ context.Context, id uint) (domain.Business, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	b, ok := r.businesses[id]
	if !ok {
		return domain.Business{}, repository.ErrBusinessNotFound
	}

	return b, nil
}

func (r *fakeBusinessRepo) List(_ context.Context, pendingOnly bool) ([]domain.Business, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []domain.Business
	for _, b := range r.businesses {
		if !pendingOnly || !b.Verified {
			out = append(out, b)
		}
	}

	return out, nil
}

func (r *fakeBusinessRepo) Update(_ context.Context, id uint, companyName, taxCode *string, verified *bool) (domain.Business, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	b, ok := r.businesses[id]
	if !ok {
		return domain.Business{}, repository.ErrBusinessNotFound
	}
	if companyName != nil {
		b.CompanyName = *companyName
	}
	if taxCode != nil {
		b.TaxCode = *taxCode
	}
	if verified != nil {
		b.Verified = *verified
	}
	r.businesses[id] = b

	return b, nil
}

func (r *fakeBusinessRepo) Delete(_ context.Context, id uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.businesses, id)

	return nil
}

func (r *fakeBusinessRepo) Count(_ context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	return int64(len(r.businesses)), nil
}

type fixedCounter int64

func (c fixedCounter) Count(context.Context) (int64, error) { return int64(c), nil }

type fakeSubscriberRepo struct {
	mu          sync.Mutex
	nextID      uint
	subscribers map[uint]domain.Subscriber
}

func newFakeSubscriberRepo(subs ...domain.Subscriber) *fakeSubscriberRepo {
	r := &fakeSubscriberRepo{subscribers: map[uint]domain.Subscriber{}}
	for _, s := range subs {
		r.nextID++
		s.ID = r.nextID
		r.subscribers[s.ID] = s
	}

	return r
}

func (r *fakeSubscriberRepo) Create(_ context.Context, email, token string, expires time.Time) (domain.Subscriber, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.nextID++
	s := domain.Subscriber{ID: r.nextID, Email: email, Token: token, TokenExpires: &expires}
	r.subscribers[s.ID] = s

	return s, nil
}

func (r *fakeSubscriberRepo) FindByEmail(_ context.Context, email string) (domain.Subscriber, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, s := range r.subscribers {
		if s.Email == email {
			return s, nil
		}
	}

	return domain.Subscriber{}, repository.ErrSubscriberNotFound
}

func (r *fakeSubscriberRepo) FindByToken(_ context.Context, token string, now time.Time) (domain.Subscriber, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, s := range r.subscribers {
		if s.Token == token && s.TokenExpires != nil && s.TokenExpires.After(now) {
			return s, nil
		}
	}

	return domain.Subscriber{}, repository.ErrSubscriberNotFound
}

func (r *fakeSubscriberRepo) FindConfirmed(_ context.Context) ([]domain.Subscriber, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []domain.Subscriber
	for _, s := range r.subscribers {
		if s.Confirmed {
			out = append(out, s)
		}
	}

	return out, nil
}

func (r *fakeSubscriberRepo) List(_ context.Context, email string, _ domain.Page) ([]domain.Subscriber, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []domain.Subscriber
	for _, s := range r.subscribers {
		if strings.Contains(s.Email, email) {
			out = append(out, s)
		}
	}

	return out, int64(len(out)), nil
}

func (r *fakeSubscriberRepo) Confirm(_ context.Context, id uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	s := r.subscribers[id]
	s.Confirmed = true
	s.Token = ""
	s.TokenExpires = nil
	r.subscribers[id] = s

	return nil
}

func (r *fakeSubscriberRepo) RenewToken(_ context.Context, id uint, token string, expires time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	s := r.subscribers[id]
	s.Token = token
	s.TokenExpires = &expires
	r.subscribers[id] = s

	return nil
}

func (r *fakeSubscriberRepo) Delete(_ context.Context, id uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.subscribers, id)

	return nil
}

type checkInKey struct {
	userID, locationID uint
	day                string
}

type fakeLocationRepo struct {
	mu        sync.Mutex
	nextID    uint
	locations map[uint]domain.Location
	checkIns  map[checkInKey]domain.CheckIn
}

func newFakeLocationRepo(locations ...domain.Location) *fakeLocationRepo {
	r := &fakeLocationRepo{locations: map[uint]domain.Location{}, checkIns: map[checkInKey]domain.CheckIn{}}
	for _, l := range locations {
		if l.ID > r.nextID {
			r.nextID = l.ID
		}
		r.locations[l.ID] = l
	}

	return r
}

func (r *fakeLocationRepo) Create(_ context.Context, l domain.Location) (domain.Location, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.nextID++
	l.ID = r.nextID
	r.locations[l.ID] = l

	return l, nil
}

func (r *fakeLocationRepo) FindByID(_ context.Context, id uint) (domain.Location, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	l, ok := r.locations[id]
	if !ok {
		return domain.Location{}, repository.ErrLocationNotFound
	}

	return l, nil
}

func (r *fakeLocationRepo) FindActiveByQRCode(_ context.Context, code string) (domain.Location, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, l := range r.locations {
		if l.QRCode == code && l.Status == domain.LocationStatusActive {
			return l, nil
		}
	}

	return domain.Location{}, repository.ErrLocationNotFound
}

func (r *fakeLocationRepo) List(_ context.Context, filter domain.LocationFilter) ([]domain.Location, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []domain.Location
	for _, l := range r.locations {
		if filter.Type != "" && l.Type != filter.Type {
			continue
		}
		if filter.Status != "" && l.Status != filter.Status {
			continue
		}
		out = append(out, l)
	}

	return out, nil
}

func (r *fakeLocationRepo) Update(_ context.Context, id uint, update domain.LocationUpdate) (domain.Location, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	l, ok := r.locations[id]
	if !ok {
		return domain.Location{}, repository.ErrLocationNotFound
	}
	if update.Name != nil {
		l.Name = *update.Name
	}
	if update.Status != nil {
		l.Status = *update.Status
	}
	if update.Type != nil {
		l.Type = *update.Type
	}
	r.locations[id] = l

	return l, nil
}

func (r *fakeLocationRepo) CreateCheckIn(_ context.Context, userID, locationID uint, points int, at time.Time) (domain.CheckIn, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := checkInKey{userID: userID, locationID: locationID, day: at.UTC().Format(time.DateOnly)}
	if _, ok := r.checkIns[key]; ok {
		return domain.CheckIn{}, repository.ErrAlreadyCheckedIn
	}
	c := domain.CheckIn{
		ID:           uint(len(r.checkIns) + 1),
		UserID:       userID,
		LocationID:   locationID,
		PointsEarned: points,
		CheckInTime:  at,
	}
	r.checkIns[key] = c

	return c, nil
}

type fakeCollectionRepo struct {
	mu          sync.Mutex
	collections []domain.Collection
	users       *fakeUserRepo
}

func (r *fakeCollectionRepo) Create(_ context.Context, c domain.Collection) (domain.Collection, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	c.ID = uint(len(r.collections) + 1)
	if c.CreatedAt.IsZero() {
		c.CreatedAt = time.Now()
	}
	r.collections = append(r.collections, c)

	return c, nil
}

func (r *fakeCollectionRepo) FindByUserID(_ context.Context, userID uint, limit int) ([]domain.Collection, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []domain.Collection
	for i := len(r.collections) - 1; i >= 0 && len(out) < limit; i-- {
		if r.collections[i].UserID == userID {
			out = append(out, r.collections[i])
		}
	}

	return out, nil
}

func (r *fakeCollectionRepo) Leaderboard(
	_ context.Context, role domain.Role, since time.Time, by domain.LeaderboardOrder, limit int,
) ([]domain.LeaderboardEntry, error) {
	r.mu.Lock()
	pins := map[uint]int{}
	for _, c := range r.collections {
		if !c.CreatedAt.Before(since) {
			pins[c.UserID] += c.Pins()
		}
	}
	r.mu.Unlock()

	r.users.mu.Lock()
	var entries []domain.LeaderboardEntry
	for _, u := range r.users.users {
		if u.Role != role || (pins[u.ID] == 0 && u.Points == 0) {
			continue
		}
		entries = append(entries, domain.LeaderboardEntry{
			UserID: u.ID, Name: u.Name, Email: u.Email, Points: u.Points, TotalPins: pins[u.ID],
		})
	}
	r.users.mu.Unlock()

	sort.Slice(entries, func(i, j int) bool {
		a, b := entries[i], entries[j]
		if by == domain.OrderByPoints && a.Points != b.Points {
			return a.Points > b.Points
		}
		if a.TotalPins != b.TotalPins {
			return a.TotalPins > b.TotalPins
		}
		if a.Points != b.Points {
			return a.Points > b.Points
		}
		return a.UserID < b.UserID
	})
	if len(entries) > limit {
		entries = entries[:limit]
	}

	return entries, nil
}

type fakeEventRepo struct {
	mu            sync.Mutex
	nextID        uint
	events        map[uint]domain.Event
	registrations []domain.EventRegistration
}

func newFakeEventRepo(events ...domain.Event) *fakeEventRepo {
	r := &fakeEventRepo{events: map[uint]domain.Event{}}
	for _, e := range events {
		if e.ID > r.nextID {
			r.nextID = e.ID
		}
		r.events[e.ID] = e
	}

	return r
}

func (r *fakeEventRepo) Create(_ context.Context, e domain.Event) (domain.Event, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.nextID++
	e.ID = r.nextID
	r.events[e.ID] = e

	return e, nil
}

func (r *fakeEventRepo) FindByID(_ context.Context, id uint) (domain.Event, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	e, ok := r.events[id]
	if !ok {
		return domain.Event{}, repository.ErrEventNotFound
	}

	return e, nil
}

func (r *fakeEventRepo) List(_ context.Context, search string, _ domain.Page) ([]domain.Event, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []domain.Event
	for _, e := range r.events {
		if strings.Contains(strings.ToLower(e.Title), strings.ToLower(search)) {
			out = append(out, e)
		}
	}

	return out, int64(len(out)), nil
}

func (r *fakeEventRepo) Update(_ context.Context, id uint, update domain.EventUpdate) (domain.Event, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	e, ok := r.events[id]
	if !ok {
		return domain.Event{}, repository.ErrEventNotFound
	}
	if update.Title != nil {
		e.Title = *update.Title
	}
	r.events[id] = e

	return e, nil
}

func (r *fakeEventRepo) Delete(_ context.Context, id uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.events[id]; !ok {
		return repository.ErrEventNotFound
	}
	delete(r.events, id)

	return nil
}

func (r *fakeEventRepo) CreateRegistration(_ context.Context, eventID, userID uint) (domain.EventRegistration, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, reg := range r.registrations {
		if reg.EventID == eventID && reg.UserID == userID {
			return domain.EventRegistration{}, repository.ErrRegistrationExists
		}
	}
	reg := domain.EventRegistration{
		ID:      uint(len(r.registrations) + 1),
		EventID: eventID,
		UserID:  userID,
		Status:  domain.RegistrationRegistered,
	}
	r.registrations = append(r.registrations, reg)

	return reg, nil
}

func (r *fakeEventRepo) FindRegistration(_ context.Context, eventID, userID uint) (domain.EventRegistration, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, reg := range r.registrations {
		if reg.EventID == eventID && reg.UserID == userID {
			return reg, nil
		}
	}

	return domain.EventRegistration{}, repository.ErrRegistrationNotFound
}

func (r *fakeEventRepo) FindRegistrationByID(_ context.Context, id uint) (domain.EventRegistration, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, reg := range r.registrations {
		if reg.ID == id {
			return reg, nil
		}
	}

	return domain.EventRegistration{}, repository.ErrRegistrationNotFound
}

func (r *fakeEventRepo) UpdateRegistrationStatus(_ context.Context, id uint, status domain.RegistrationStatus) (domain.EventRegistration, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, reg := range r.registrations {
		if reg.ID == id {
			r.registrations[i].Status = status
			return r.registrations[i], nil
		}
	}

	return domain.EventRegistration{}, repository.ErrRegistrationNotFound
}

func (r *fakeEventRepo) FindRegistrationsByEvent(_ context.Context, eventID uint, _ domain.Page) ([]domain.EventRegistration, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []domain.EventRegistration
	for _, reg := range r.registrations {
		if reg.EventID == eventID {
			out = append(out, reg)
		}
	}

	return out, int64(len(out)), nil
}

func (r *fakeEventRepo) FindRegistrationsByUser(_ context.Context, userID uint, _ domain.Page) ([]domain.EventRegistration, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []domain.EventRegistration
	for _, reg := range r.registrations {
		if reg.UserID == userID {
			out = append(out, reg)
		}
	}

	return out, int64(len(out)), nil
}

type fakeGenerator struct {
	prompt string
	reply  string
	err    error
}

func (g *fakeGenerator) GenerateContent(_ context.Context, prompt string) (string, error) {
	g.prompt = prompt
	return g.reply, g.err
}
