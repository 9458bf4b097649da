package domain

// BarberRef identifies a service provider. Immutable once fetched;
// the backend owns the barber catalog.
type BarberRef struct {
	ID              string
	Name            string
	Specialization  string
	Rating          float64
	ExperienceYears int
	Services        []Service
}

// Service is a bookable service offered by a barber.
// Selected, never edited, by this client; prices are in Birr.
type Service struct {
	ID              string
	Name            string
	DurationMinutes int
	Price           float64
}

// Validate checks the service snapshot is usable for booking.
func (s Service) Validate() error {
	if s.DurationMinutes <= 0 {
		return ErrInvalidServiceDuration
	}
	if s.Price < 0 {
		return ErrInvalidServicePrice
	}
	return nil
}

// FindService returns the barber's service with the given ID.
func (b *BarberRef) FindService(serviceID string) (Service, bool) {
	for _, svc := range b.Services {
		if svc.ID == serviceID {
			return svc, true
		}
	}
	return Service{}, false
}
