package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"salon-booking/internal/domain/entity"
	"salon-booking/internal/domain/repository"
	"salon-booking/internal/metrics"

	"github.com/sirupsen/logrus"
)

var ErrDuplicateAppointmentID = errors.New("appointment id already exists")

// LoadState records what the last Load found in the slot.
type LoadState string

const (
	LoadStateNotLoaded   LoadState = "not_loaded"
	LoadStateEmpty       LoadState = "empty"
	LoadStateLoaded      LoadState = "loaded"
	LoadStateCorrupt     LoadState = "corrupt"
	LoadStateUnavailable LoadState = "unavailable"
)

// BookingStore owns the appointment list of one client profile and mirrors it,
// in full, to a single key of a SlotRepository.
//
// Append and Cancel only keep their change when the slot write succeeds, so the
// list always matches what callers were told.
type BookingStore struct {
	mu           sync.RWMutex
	slotRepo     repository.SlotRepository
	key          string
	log          *logrus.Logger
	metrics      *metrics.BookingMetrics
	appointments []entity.Appointment
	loadState    LoadState
}

func NewBookingStore(slotRepo repository.SlotRepository, key string, log *logrus.Logger, m *metrics.BookingMetrics) *BookingStore {
	return &BookingStore{
		slotRepo:     slotRepo,
		key:          key,
		log:          log,
		metrics:      m,
		appointments: []entity.Appointment{},
		loadState:    LoadStateNotLoaded,
	}
}

// Load replaces the in-memory list with the slot's content. A missing,
// unreadable or unparsable slot yields an empty list; it is never an error.
func (s *BookingStore) Load(ctx context.Context) []entity.Appointment {
	s.mu.Lock()
	defer s.mu.Unlock()

	appointments, state := s.read(ctx)
	s.appointments = appointments
	s.loadState = state
	s.metrics.ObserveSlotLoad(string(state))

	return cloneAppointments(appointments)
}

// Append adds an appointment and persists the full list.
func (s *BookingStore) Append(ctx context.Context, appointment entity.Appointment) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.indexOf(appointment.ID) >= 0 {
		return ErrDuplicateAppointmentID
	}

	s.appointments = append(s.appointments, appointment)
	if err := s.persistLocked(ctx); err != nil {
		s.appointments = s.appointments[:len(s.appointments)-1]
		return err
	}
	return nil
}

// Cancel marks the appointment with id as cancelled and persists. It reports
// whether a status changed; an unknown id or an already cancelled appointment
// leaves the store untouched.
func (s *BookingStore) Cancel(ctx context.Context, id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return false, nil
	}
	previous := s.appointments[i]
	if !s.appointments[i].Cancel() {
		return false, nil
	}

	if err := s.persistLocked(ctx); err != nil {
		// The cancellation never reached the slot, so it did not happen.
		s.appointments[i] = previous
		return false, err
	}
	return true, nil
}

// Persist writes the entire list to the slot.
func (s *BookingStore) Persist(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.persistLocked(ctx)
}

// Appointments returns a copy of the current list, cancelled ones included.
func (s *BookingStore) Appointments() []entity.Appointment {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return cloneAppointments(s.appointments)
}

func (s *BookingStore) Find(id string) (entity.Appointment, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i := s.indexOf(id)
	if i < 0 {
		return entity.Appointment{}, false
	}
	return s.appointments[i], true
}

func (s *BookingStore) LoadState() LoadState {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.loadState
}

func (s *BookingStore) read(ctx context.Context) ([]entity.Appointment, LoadState) {
	data, err := s.slotRepo.Get(ctx, s.key)
	if err != nil {
		s.log.Warnf("Failed to read appointment slot %s, starting with an empty list: %+v", s.key, err)
		return []entity.Appointment{}, LoadStateUnavailable
	}

	if len(bytes.TrimSpace(data)) == 0 {
		s.log.Debugf("Appointment slot %s is empty", s.key)
		return []entity.Appointment{}, LoadStateEmpty
	}

	var appointments []entity.Appointment
	if err := json.Unmarshal(data, &appointments); err != nil {
		s.log.Warnf("Appointment slot %s is corrupt, starting with an empty list: %+v", s.key, err)
		return []entity.Appointment{}, LoadStateCorrupt
	}
	if appointments == nil {
		return []entity.Appointment{}, LoadStateEmpty
	}

	s.log.Infof("Loaded %d appointments from slot %s", len(appointments), s.key)
	return appointments, LoadStateLoaded
}

func (s *BookingStore) persistLocked(ctx context.Context) error {
	data, err := json.Marshal(s.appointments)
	if err != nil {
		return fmt.Errorf("encode appointments: %w", err)
	}

	if err := s.slotRepo.Set(ctx, s.key, data); err != nil {
		s.metrics.ObserveSlotWriteFailure()
		s.log.Errorf("Failed to persist appointment slot %s: %+v", s.key, err)
		return fmt.Errorf("persist appointments: %w", err)
	}
	return nil
}

func (s *BookingStore) indexOf(id string) int {
	for i := range s.appointments {
		if s.appointments[i].ID == id {
			return i
		}
	}
	return -1
}

func cloneAppointments(appointments []entity.Appointment) []entity.Appointment {
	cloned := make([]entity.Appointment, len(appointments))
	copy(cloned, appointments)
	return cloned
}
