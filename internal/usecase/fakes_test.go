package usecase

import (
	"bytes"
	"context"
	"sort"
	"sync"
	"testing"
	"time"

	"cinema-ticketing/internal/clock"
	"cinema-ticketing/internal/data/entity"
	"cinema-ticketing/internal/data/repository"
	"cinema-ticketing/internal/pricing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// memDB backs every fake repository. One mutex stands in for the database's
// unique (session_id, seat_id) constraint.
type memDB struct {
	mu       sync.Mutex
	users    map[uuid.UUID]*entity.User
	movies   map[uuid.UUID]*entity.Movie
	halls    map[uuid.UUID]*entity.Hall
	seats    map[uuid.UUID]*entity.Seat
	sessions map[uuid.UUID]*entity.Session
	tickets  map[uuid.UUID]*entity.Ticket
	activity []*entity.ActivityEntry

	// returned, in order, by the next ClaimSeats calls
	claimErrors []error
	claimCalls  int

	// returned by every session Delete while set
	sessionDeleteErr error
}

func newMemDB() *memDB {
	return &memDB{
		users:    map[uuid.UUID]*entity.User{},
		movies:   map[uuid.UUID]*entity.Movie{},
		halls:    map[uuid.UUID]*entity.Hall{},
		seats:    map[uuid.UUID]*entity.Seat{},
		sessions: map[uuid.UUID]*entity.Session{},
		tickets:  map[uuid.UUID]*entity.Ticket{},
	}
}

func (db *memDB) repository() *repository.Repository {
	return &repository.Repository{
		User:     memUsers{db},
		Movie:    memMovies{db},
		Hall:     memHalls{db},
		Seat:     memSeats{db},
		Session:  memSessions{db},
		Ticket:   memTickets{db},
		Activity: memActivity{db},
	}
}

func (db *memDB) ticketCount(sessionID uuid.UUID) int {
	db.mu.Lock()
	defer db.mu.Unlock()
	n := 0
	for _, t := range db.tickets {
		if t.SessionID == sessionID {
			n++
		}
	}
	return n
}

type memUsers struct{ db *memDB }

func (r memUsers) FindByID(_ context.Context, id uuid.UUID) (*entity.User, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	return r.db.users[id], nil
}

type memMovies struct{ db *memDB }

func (r memMovies) FindByID(_ context.Context, id uuid.UUID) (*entity.Movie, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	return r.db.movies[id], nil
}

type memHalls struct{ db *memDB }

func (r memHalls) FindByID(_ context.Context, id uuid.UUID) (*entity.Hall, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	return r.db.halls[id], nil
}

func (r memHalls) FindAll(_ context.Context) ([]*entity.Hall, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	var halls []*entity.Hall
	for _, h := range r.db.halls {
		halls = append(halls, h)
	}
	sort.Slice(halls, func(i, j int) bool { return halls[i].HallNumber < halls[j].HallNumber })
	return halls, nil
}

type memSeats struct{ db *memDB }

func sortSeats(seats []*entity.Seat) {
	sort.Slice(seats, func(i, j int) bool {
		if seats[i].RowNumber != seats[j].RowNumber {
			return seats[i].RowNumber < seats[j].RowNumber
		}
		return seats[i].SeatNumber < seats[j].SeatNumber
	})
}

func (r memSeats) FindByHallID(_ context.Context, hallID uuid.UUID) ([]*entity.Seat, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	seats := []*entity.Seat{}
	for _, s := range r.db.seats {
		if s.HallID == hallID {
			seats = append(seats, s)
		}
	}
	sortSeats(seats)
	return seats, nil
}

func (r memSeats) FindSeatsForBooking(_ context.Context, hallID uuid.UUID, ids []uuid.UUID) ([]*entity.Seat, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	seats := []*entity.Seat{}
	for _, id := range ids {
		if s, ok := r.db.seats[id]; ok && s.HallID == hallID {
			seats = append(seats, s)
		}
	}
	sortSeats(seats)
	return seats, nil
}

func (r memSeats) FindAvailableBySession(_ context.Context, sessionID uuid.UUID) ([]*entity.Seat, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	session, ok := r.db.sessions[sessionID]
	if !ok {
		return []*entity.Seat{}, nil
	}
	taken := map[uuid.UUID]bool{}
	for _, t := range r.db.tickets {
		if t.SessionID == sessionID {
			taken[t.SeatID] = true
		}
	}
	seats := []*entity.Seat{}
	for _, s := range r.db.seats {
		if s.HallID == session.HallID && !taken[s.ID] {
			seats = append(seats, s)
		}
	}
	sortSeats(seats)
	return seats, nil
}

type memSessions struct{ db *memDB }

func (r memSessions) Create(_ context.Context, s *entity.Session) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	if _, ok := r.db.halls[s.HallID]; !ok {
		return repository.ErrNotFound
	}
	for _, other := range r.db.sessions {
		if other.HallID == s.HallID && other.StartTime.Before(s.EndTime) && other.EndTime.After(s.StartTime) {
			return &repository.SessionOverlapError{HallID: s.HallID, ConflictingID: other.ID}
		}
	}
	cp := *s
	r.db.sessions[s.ID] = &cp
	return nil
}

func (r memSessions) FindByID(_ context.Context, id uuid.UUID) (*entity.Session, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	return r.db.sessions[id], nil
}

func (r memSessions) list(match func(*entity.Session) bool) []*entity.Session {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	out := []*entity.Session{}
	for _, s := range r.db.sessions {
		if match(s) {
			out = append(out, s)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StartTime.Before(out[j].StartTime) })
	return out
}

func (r memSessions) FindByHallID(_ context.Context, hallID uuid.UUID) ([]*entity.Session, error) {
	return r.list(func(s *entity.Session) bool { return s.HallID == hallID }), nil
}

func (r memSessions) FindByMovieID(_ context.Context, movieID uuid.UUID) ([]*entity.Session, error) {
	return r.list(func(s *entity.Session) bool { return s.MovieID == movieID }), nil
}

func (r memSessions) Delete(_ context.Context, id uuid.UUID) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	if r.db.sessionDeleteErr != nil {
		return r.db.sessionDeleteErr
	}
	if _, ok := r.db.sessions[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.db.sessions, id)
	for tid, t := range r.db.tickets {
		if t.SessionID == id {
			delete(r.db.tickets, tid)
		}
	}
	return nil
}

type memTickets struct{ db *memDB }

func (r memTickets) ClaimSeats(_ context.Context, tickets []*entity.Ticket) ([]uuid.UUID, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	r.db.claimCalls++
	if len(r.db.claimErrors) > 0 {
		err := r.db.claimErrors[0]
		r.db.claimErrors = r.db.claimErrors[1:]
		if err != nil {
			return nil, err
		}
	}

	var taken []uuid.UUID
	for _, t := range tickets {
		for _, existing := range r.db.tickets {
			if existing.SessionID == t.SessionID && existing.SeatID == t.SeatID {
				taken = append(taken, t.SeatID)
				break
			}
		}
	}
	if len(taken) > 0 {
		sort.Slice(taken, func(i, j int) bool { return bytes.Compare(taken[i][:], taken[j][:]) < 0 })
		return taken, nil
	}
	for _, t := range tickets {
		cp := *t
		r.db.tickets[t.ID] = &cp
	}
	return nil, nil
}

func (r memTickets) view(t *entity.Ticket) *entity.TicketView {
	session := r.db.sessions[t.SessionID]
	movie := r.db.movies[session.MovieID]
	hall := r.db.halls[session.HallID]
	seat := r.db.seats[t.SeatID]
	user := r.db.users[t.HolderID]
	return &entity.TicketView{
		Ticket:       *t,
		HolderName:   user.Username,
		MovieTitle:   movie.Title,
		HallNumber:   hall.HallNumber,
		HallName:     hall.Name,
		HallCategory: hall.Category,
		StartTime:    session.StartTime,
		RowNumber:    seat.RowNumber,
		SeatNumber:   seat.SeatNumber,
	}
}

func (r memTickets) FindViewByID(_ context.Context, id uuid.UUID) (*entity.TicketView, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	t, ok := r.db.tickets[id]
	if !ok {
		return nil, nil
	}
	return r.view(t), nil
}

func (r memTickets) views(match func(*entity.Ticket) bool) []*entity.TicketView {
	views := []*entity.TicketView{}
	for _, t := range r.db.tickets {
		if match(t) {
			views = append(views, r.view(t))
		}
	}
	sort.Slice(views, func(i, j int) bool {
		if views[i].RowNumber != views[j].RowNumber {
			return views[i].RowNumber < views[j].RowNumber
		}
		return views[i].SeatNumber < views[j].SeatNumber
	})
	return views
}

func (r memTickets) FindViewsByUserID(_ context.Context, userID uuid.UUID, limit, offset int) ([]*entity.TicketView, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	all := r.views(func(t *entity.Ticket) bool { return t.HolderID == userID })
	if offset >= len(all) {
		return []*entity.TicketView{}, nil
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end], nil
}

func (r memTickets) CountByUserID(_ context.Context, userID uuid.UUID) (int64, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	var n int64
	for _, t := range r.db.tickets {
		if t.HolderID == userID {
			n++
		}
	}
	return n, nil
}

func (r memTickets) FindViewsBySessionID(_ context.Context, sessionID uuid.UUID) ([]*entity.TicketView, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	return r.views(func(t *entity.Ticket) bool { return t.SessionID == sessionID }), nil
}

func (r memTickets) TakenSeatIDs(_ context.Context, sessionID uuid.UUID) ([]uuid.UUID, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	var ids []uuid.UUID
	for _, t := range r.db.tickets {
		if t.SessionID == sessionID {
			ids = append(ids, t.SeatID)
		}
	}
	return ids, nil
}

func (r memTickets) Delete(_ context.Context, id uuid.UUID) (*entity.Ticket, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	t, ok := r.db.tickets[id]
	if !ok {
		return nil, nil
	}
	delete(r.db.tickets, id)
	return t, nil
}

type memActivity struct{ db *memDB }

func (r memActivity) Create(_ context.Context, e *entity.ActivityEntry) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	e.ID = int64(len(r.db.activity) + 1)
	cp := *e
	r.db.activity = append(r.db.activity, &cp)
	return nil
}

func (r memActivity) FindRecent(_ context.Context, limit, offset int) ([]*entity.ActivityEntry, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	out := []*entity.ActivityEntry{}
	for i := len(r.db.activity) - 1 - offset; i >= 0 && len(out) < limit; i-- {
		out = append(out, r.db.activity[i])
	}
	return out, nil
}

func (r memActivity) Count(_ context.Context) (int64, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	return int64(len(r.db.activity)), nil
}

// recordingLedger keeps everything it is told.
type recordingLedger struct {
	mu      sync.Mutex
	entries    []entity.ActivityEntry
	errors     []string
	errorRoles []entity.ActorRole
}

func (l *recordingLedger) Record(_ context.Context, e entity.ActivityEntry) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries = append(l.entries, e)
}

func (l *recordingLedger) RecordError(_ context.Context, _ *uuid.UUID, role entity.ActorRole, op string, err error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.errors = append(l.errors, op+": "+err.Error())
	l.errorRoles = append(l.errorRoles, role)
}

func (l *recordingLedger) byType(t entity.ActivityType) []entity.ActivityEntry {
	l.mu.Lock()
	defer l.mu.Unlock()
	var out []entity.ActivityEntry
	for _, e := range l.entries {
		if e.EventType == t {
			out = append(out, e)
		}
	}
	return out
}

// fixture is one hall with a 2x3 seat grid, a second hall with one seat,
// a movie, a session three hours from now and three users.
type fixture struct {
	db     *memDB
	ledger *recordingLedger
	svc    *Service
	now    time.Time

	hall, otherHall   uuid.UUID
	movie             uuid.UUID
	session           uuid.UUID
	seats             [][]uuid.UUID // [row][seat]
	foreignSeat       uuid.UUID
	alice, bob, admin uuid.UUID
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	f := &fixture{
		db:     newMemDB(),
		ledger: &recordingLedger{},
		now:    time.Date(2026, 5, 20, 15, 0, 0, 0, time.UTC),
	}
	ts := f.now.Add(-24 * time.Hour)

	f.hall, f.otherHall, f.movie, f.session = uuid.New(), uuid.New(), uuid.New(), uuid.New()
	f.db.halls[f.hall] = &entity.Hall{
		Base: entity.Base{ID: f.hall, CreatedAt: ts, UpdatedAt: ts}, HallNumber: 1,
		Name: "Hall 1", Category: "vip", Surcharge: decimal.NewFromInt(50),
	}
	f.db.halls[f.otherHall] = &entity.Hall{
		Base: entity.Base{ID: f.otherHall, CreatedAt: ts, UpdatedAt: ts}, HallNumber: 2,
		Name: "Hall 2", Category: "regular", Surcharge: decimal.Zero,
	}
	f.db.movies[f.movie] = &entity.Movie{
		Base: entity.Base{ID: f.movie, CreatedAt: ts, UpdatedAt: ts}, Title: "Stalker",
		BasePrice: decimal.NewFromInt(300), DurationInMinutes: 160,
	}

	for row := 1; row <= 2; row++ {
		var ids []uuid.UUID
		for n := 1; n <= 3; n++ {
			id := uuid.New()
			f.db.seats[id] = &entity.Seat{
				Base:   entity.Base{ID: id, CreatedAt: ts, UpdatedAt: ts},
				HallID: f.hall, RowNumber: row, SeatNumber: n,
				Surcharge: decimal.NewFromInt(int64(10 * row)),
			}
			ids = append(ids, id)
		}
		f.seats = append(f.seats, ids)
	}
	f.foreignSeat = uuid.New()
	f.db.seats[f.foreignSeat] = &entity.Seat{
		Base: entity.Base{ID: f.foreignSeat}, HallID: f.otherHall, RowNumber: 1, SeatNumber: 1,
	}

	start := f.now.Add(3 * time.Hour)
	f.db.sessions[f.session] = &entity.Session{
		Base:    entity.Base{ID: f.session, CreatedAt: ts, UpdatedAt: ts},
		MovieID: f.movie, HallID: f.hall,
		StartTime: start, EndTime: start.Add(160 * time.Minute),
	}

	f.alice, f.bob, f.admin = uuid.New(), uuid.New(), uuid.New()
	f.db.users[f.alice] = &entity.User{Base: entity.Base{ID: f.alice}, Username: "alice", Role: entity.RoleCustomer, IsActive: true}
	f.db.users[f.bob] = &entity.User{Base: entity.Base{ID: f.bob}, Username: "bob", Role: entity.RoleCustomer, IsActive: true}
	f.db.users[f.admin] = &entity.User{Base: entity.Base{ID: f.admin}, Username: "root", Role: entity.RoleAdmin, IsActive: true}

	f.svc = NewService(f.db.repository(), f.ledger, Options{
		Clock:              clock.Func(func() time.Time { return f.now }),
		Pricing:            pricing.NewCalculator(2),
		CancellationCutoff: 60 * time.Minute,
		DefaultRuntime:     90 * time.Minute,
	}, zap.NewNop())

	return f
}

func (f *fixture) reserve(t *testing.T, user uuid.UUID, seats ...uuid.UUID) []*entity.Ticket {
	t.Helper()
	tickets, err := f.svc.Reservation.Reserve(context.Background(), ReservationRequest{
		SessionID: f.session,
		SeatIDs:   seats,
		UserID:    user,
	})
	if err != nil {
		t.Fatalf("reserve: unexpected error: %v", err)
	}
	return tickets
}
