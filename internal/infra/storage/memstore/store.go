package memstore

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	"github.com/m04kA/SMC-SalonBooking/internal/infra/storage/catalog"
	"github.com/m04kA/SMC-SalonBooking/internal/infra/storage/reservation"
	"github.com/m04kA/SMC-SalonBooking/internal/infra/storage/schedule"
	"github.com/m04kA/SMC-SalonBooking/pkg/interval"
)

// Store хранилище в памяти с той же семантикой, что и репозитории Postgres,
// включая уникальность неотмененных бронирований по (мастер, начало) и (кабинет, начало)
type Store struct {
	mu sync.RWMutex

	services      map[int64]domain.Service
	staff         map[int64]domain.Staff
	staffServices map[int64][]int64
	openingHours  map[time.Weekday]domain.OpeningHours
	overrides     map[string]domain.DateOverride
	globalMinutes *int
	hasSettings   bool
	shifts        []domain.Shift
	reservations  []domain.Reservation
	nextID        int64

	// Calls счетчик обращений по имени метода
	Calls map[string]int
	// FailWith если задан, каждый метод чтения возвращает эту ошибку
	FailWith error
}

// New создает пустое хранилище
func New() *Store {
	return &Store{
		services:      make(map[int64]domain.Service),
		staff:         make(map[int64]domain.Staff),
		staffServices: make(map[int64][]int64),
		openingHours:  make(map[time.Weekday]domain.OpeningHours),
		overrides:     make(map[string]domain.DateOverride),
		Calls:         make(map[string]int),
	}
}

// AddService добавляет услугу
func (s *Store) AddService(service domain.Service) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.services[service.ID] = service
}

// AddStaff добавляет мастера и привязывает его к услугам
func (s *Store) AddStaff(staff domain.Staff, serviceIDs ...int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.staff[staff.ID] = staff
	for _, id := range serviceIDs {
		s.staffServices[id] = append(s.staffServices[id], staff.ID)
	}
}

// SetOpeningHours задает недельное правило
func (s *Store) SetOpeningHours(hours domain.OpeningHours) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.openingHours[hours.Weekday] = hours
}

// SetDateOverride задает исключение на дату
func (s *Store) SetDateOverride(override domain.DateOverride) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.overrides[override.Date.Format(domain.DateFormat)] = override
}

// SetGlobalSlotInterval задает строку глобальных настроек
func (s *Store) SetGlobalSlotInterval(minutes *int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.hasSettings = true
	s.globalMinutes = minutes
}

// AddShift добавляет смену
func (s *Store) AddShift(shift domain.Shift) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.shifts = append(s.shifts, shift)
}

// Reservations возвращает копию всех бронирований
func (s *Store) Reservations() []domain.Reservation {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]domain.Reservation(nil), s.reservations...)
}

func (s *Store) call(name string) error {
	s.Calls[name]++
	return s.FailWith
}

// GetService реализует catalog.Repository.GetService
func (s *Store) GetService(_ context.Context, id int64) (*domain.Service, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.call("GetService"); err != nil {
		return nil, err
	}
	service, ok := s.services[id]
	if !ok {
		return nil, catalog.ErrServiceNotFound
	}
	return &service, nil
}

// GetActiveStaffIDsForService реализует catalog.Repository.GetActiveStaffIDsForService
func (s *Store) GetActiveStaffIDsForService(_ context.Context, serviceID int64) ([]int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.call("GetActiveStaffIDsForService"); err != nil {
		return nil, err
	}
	ids := make([]int64, 0)
	for _, id := range s.staffServices[serviceID] {
		if s.staff[id].IsActive {
			ids = append(ids, id)
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids, nil
}

// GetStaff реализует catalog.Repository.GetStaff
func (s *Store) GetStaff(_ context.Context, id int64) (*domain.Staff, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.call("GetStaff"); err != nil {
		return nil, err
	}
	staff, ok := s.staff[id]
	if !ok {
		return nil, catalog.ErrStaffNotFound
	}
	return &staff, nil
}

// GetOpeningHours реализует schedule.Repository.GetOpeningHours
func (s *Store) GetOpeningHours(_ context.Context, weekday time.Weekday) (*domain.OpeningHours, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.call("GetOpeningHours"); err != nil {
		return nil, err
	}
	hours, ok := s.openingHours[weekday]
	if !ok {
		return nil, schedule.ErrOpeningHoursNotFound
	}
	return &hours, nil
}

// GetDateOverride реализует schedule.Repository.GetDateOverride
func (s *Store) GetDateOverride(_ context.Context, date time.Time) (*domain.DateOverride, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.call("GetDateOverride"); err != nil {
		return nil, err
	}
	override, ok := s.overrides[date.Format(domain.DateFormat)]
	if !ok {
		return nil, schedule.ErrDateOverrideNotFound
	}
	return &override, nil
}

// GetGlobalSlotIntervalSetting реализует schedule.Repository.GetGlobalSlotIntervalSetting
func (s *Store) GetGlobalSlotIntervalSetting(_ context.Context) (*int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.call("GetGlobalSlotIntervalSetting"); err != nil {
		return nil, err
	}
	if !s.hasSettings {
		return nil, schedule.ErrSettingsNotFound
	}
	return s.globalMinutes, nil
}

// GetShifts реализует schedule.Repository.GetShifts
func (s *Store) GetShifts(_ context.Context, staffIDs []int64, from, to time.Time) ([]domain.Shift, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.call("GetShifts"); err != nil {
		return nil, err
	}
	result := make([]domain.Shift, 0)
	for _, shift := range s.shifts {
		if contains(staffIDs, shift.StaffID) && shift.StartAt.Before(to) && shift.EndAt.After(from) {
			result = append(result, shift)
		}
	}
	return result, nil
}

// GetNonCanceledByStaff реализует reservation.Repository.GetNonCanceledByStaff
func (s *Store) GetNonCanceledByStaff(_ context.Context, staffIDs []int64, from, to time.Time) ([]*domain.Reservation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.call("GetNonCanceledByStaff"); err != nil {
		return nil, err
	}
	return s.selectNonCanceled(from, to, func(r *domain.Reservation) bool {
		return r.StaffID != nil && contains(staffIDs, *r.StaffID)
	}), nil
}

// GetNonCanceledForResource реализует reservation.Repository.GetNonCanceledForResource
func (s *Store) GetNonCanceledForResource(_ context.Context, staffID, roomID *int64, from, to time.Time) ([]*domain.Reservation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.call("GetNonCanceledForResource"); err != nil {
		return nil, err
	}
	return s.selectNonCanceled(from, to, func(r *domain.Reservation) bool {
		return sameID(staffID, r.StaffID) || sameID(roomID, r.RoomID)
	}), nil
}

// GetByCode реализует reservation.Repository.GetByCode
func (s *Store) GetByCode(_ context.Context, code string) (*domain.Reservation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.call("GetByCode"); err != nil {
		return nil, err
	}
	for _, r := range s.reservations {
		if r.Code != code {
			continue
		}
		if service, ok := s.services[r.ServiceID]; ok {
			r.BufferBeforeMin = service.BufferBeforeMin
			r.BufferAfterMin = service.BufferAfterMin
		}
		return &r, nil
	}
	return nil, reservation.ErrReservationNotFound
}

// Create реализует reservation.Repository.Create
func (s *Store) Create(_ context.Context, r *domain.Reservation) (*domain.Reservation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Calls["Create"]++

	for _, existing := range s.reservations {
		if existing.Code == r.Code {
			return nil, reservation.ErrDuplicateCode
		}
		if existing.IsCanceled() || !existing.StartAt.Equal(r.StartAt) {
			continue
		}
		if sameID(r.StaffID, existing.StaffID) || sameID(r.RoomID, existing.RoomID) {
			return nil, fmt.Errorf("%w: duplicate start", reservation.ErrSlotTaken)
		}
	}

	s.nextID++
	created := *r
	created.ID = s.nextID
	created.CreatedAt = time.Now()
	created.UpdatedAt = created.CreatedAt
	s.reservations = append(s.reservations, created)

	*r = created
	return r, nil
}

// AddReservation добавляет бронирование в обход проверок
// Буферы берутся из услуги, как при чтении из Postgres
func (s *Store) AddReservation(r domain.Reservation) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	r.ID = s.nextID
	if r.Code == "" {
		r.Code = fmt.Sprintf("SEED-%d", r.ID)
	}
	s.reservations = append(s.reservations, r)
}

func (s *Store) selectNonCanceled(from, to time.Time, match func(r *domain.Reservation) bool) []*domain.Reservation {
	window := interval.New(from, to)
	result := make([]*domain.Reservation, 0)
	for i := range s.reservations {
		r := s.reservations[i]
		if r.IsCanceled() || !match(&r) {
			continue
		}
		if service, ok := s.services[r.ServiceID]; ok {
			r.BufferBeforeMin = service.BufferBeforeMin
			r.BufferAfterMin = service.BufferAfterMin
		}
		if interval.Overlaps(r.Padded(), window) {
			result = append(result, &r)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].StartAt.Before(result[j].StartAt) })
	return result
}

func contains(ids []int64, id int64) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}

func sameID(a, b *int64) bool {
	return a != nil && b != nil && *a == *b
}
