package barberapi

import (
	"fmt"
	"time"

	"github.com/m04kA/HBS-BookingFlow/internal/domain"
	"github.com/m04kA/HBS-BookingFlow/pkg/types"
)

// Wire-модели backend'а и функции нормализации.
// Ответы backend'а непоследовательны: часть endpoint'ов заворачивает payload
// в {data: ...}, идентификаторы приходят то как "_id", то как "id". Вся эта
// вариативность гасится здесь, на границе - внутренние слои работают только
// с доменными типами.

// ErrorResponse модель ошибки backend'а
type ErrorResponse struct {
	Message string `json:"message"`
	Error   string `json:"error,omitempty"`
}

// Text возвращает первое непустое текстовое поле ошибки
func (e *ErrorResponse) Text() string {
	if e.Message != "" {
		return e.Message
	}
	return e.Error
}

type serviceWire struct {
	ID       string  `json:"_id"`
	AltID    string  `json:"id"`
	Name     string  `json:"name"`
	Duration int     `json:"duration"`
	Price    float64 `json:"price"`
}

func (w *serviceWire) toDomain() domain.Service {
	return domain.Service{
		ID:              firstNonEmpty(w.ID, w.AltID),
		Name:            w.Name,
		DurationMinutes: w.Duration,
		Price:           w.Price,
	}
}

type barberWire struct {
	ID    string `json:"_id"`
	AltID string `json:"id"`
	User  struct {
		Name string `json:"name"`
	} `json:"user"`
	Name           string        `json:"name"`
	Specialization string        `json:"specialization"`
	Rating         float64       `json:"rating"`
	Experience     int           `json:"experience"`
	Services       []serviceWire `json:"services"`
}

func (w *barberWire) toDomain() domain.BarberRef {
	services := make([]domain.Service, 0, len(w.Services))
	for i := range w.Services {
		services = append(services, w.Services[i].toDomain())
	}
	return domain.BarberRef{
		ID:              firstNonEmpty(w.ID, w.AltID),
		Name:            firstNonEmpty(w.User.Name, w.Name),
		Specialization:  w.Specialization,
		Rating:          w.Rating,
		ExperienceYears: w.Experience,
		Services:        services,
	}
}

// barbersEnvelope терпит оба формата списка: голый массив и {data:[...]}
type barbersEnvelope struct {
	Data []barberWire `json:"data"`
}

type slotWire struct {
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
}

func (w *slotWire) toDomain() (domain.TimeSlot, error) {
	start, err := types.NewTimeStringFromString(w.StartTime)
	if err != nil {
		return domain.TimeSlot{}, fmt.Errorf("startTime: %v", err)
	}
	end, err := types.NewTimeStringFromString(w.EndTime)
	if err != nil {
		return domain.TimeSlot{}, fmt.Errorf("endTime: %v", err)
	}
	return domain.TimeSlot{StartTime: start, EndTime: end}, nil
}

// availabilityEnvelope терпит {data:{availableTimes:[...]}} и {availableTimes:[...]}
type availabilityEnvelope struct {
	Data *struct {
		AvailableTimes []slotWire `json:"availableTimes"`
	} `json:"data"`
	AvailableTimes []slotWire `json:"availableTimes"`
}

func (e *availabilityEnvelope) slots() []slotWire {
	if e.Data != nil {
		return e.Data.AvailableTimes
	}
	return e.AvailableTimes
}

// ValidateAvailabilityRequest запрос проверки актуальности слота
type ValidateAvailabilityRequest struct {
	BarberID        string `json:"barberId"`
	Date            string `json:"date"` // YYYY-MM-DD
	StartTime       string `json:"startTime"`
	ServiceDuration int    `json:"serviceDuration"`
}

// bookingServiceWire снапшот услуги в теле создания бронирования
type bookingServiceWire struct {
	Name      string  `json:"name"`
	Duration  int     `json:"duration"`
	Price     float64 `json:"price"`
	ServiceID string  `json:"serviceId"`
}

// CreateBookingRequest тело POST /bookings
// Каноничное имя поля даты - "bookingdate": именно его ждёт create endpoint
type CreateBookingRequest struct {
	BarberID     string             `json:"barberId"`
	BookingDate  string             `json:"bookingdate"` // YYYY-MM-DD
	StartTime    string             `json:"startTime"`
	Service      bookingServiceWire `json:"service"`
	CustomerNote string             `json:"customerNote"`
}

// NewCreateBookingRequest собирает wire-запрос из доменного черновика
func NewCreateBookingRequest(draft *domain.BookingDraft) CreateBookingRequest {
	note := ""
	if draft.CustomerNote != nil {
		note = *draft.CustomerNote
	}
	startTime := ""
	if draft.Slot != nil {
		startTime = draft.Slot.StartTime.String()
	}
	return CreateBookingRequest{
		BarberID:    draft.BarberID,
		BookingDate: draft.Date.Format(domain.DateFormat),
		StartTime:   startTime,
		Service: bookingServiceWire{
			Name:      draft.Service.Name,
			Duration:  draft.Service.DurationMinutes,
			Price:     draft.Service.Price,
			ServiceID: draft.Service.ID,
		},
		CustomerNote: note,
	}
}

// CreatedBooking ответ backend'а на успешное создание
type CreatedBooking struct {
	ID     string `json:"_id"`
	AltID  string `json:"id"`
	Status string `json:"status"`
}

// BookingID возвращает идентификатор созданного бронирования
func (c *CreatedBooking) BookingID() string {
	return firstNonEmpty(c.ID, c.AltID)
}

// RegisterRequest тело POST /auth/register
type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Phone    string `json:"phone"`
}

type userWire struct {
	ID    string `json:"_id"`
	AltID string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

func (w *userWire) toDomain() domain.User {
	return domain.User{
		ID:    firstNonEmpty(w.ID, w.AltID),
		Name:  w.Name,
		Email: w.Email,
		Role:  domain.UserRole(w.Role),
	}
}

// authEnvelope ответ login/register
type authEnvelope struct {
	Token string   `json:"token"`
	User  userWire `json:"user"`
}

func (e *authEnvelope) toDomain() (domain.Session, error) {
	if e.Token == "" {
		return domain.Session{}, fmt.Errorf("missing token in auth response")
	}
	return domain.Session{Token: e.Token, User: e.User.toDomain()}, nil
}

type userBookingWire struct {
	ID          string  `json:"_id"`
	AltID       string  `json:"id"`
	Date        string  `json:"date"`
	Status      string  `json:"status"`
	ServiceName string  `json:"serviceName"`
	BarberName  string  `json:"barberName"`
	PaymentURL  *string `json:"paymentUrl"`
}

func (w *userBookingWire) toDomain() domain.UserBooking {
	date, err := time.Parse(domain.DateFormat, w.Date)
	if err != nil {
		// Некоторые версии backend'а отдают полный timestamp
		date, _ = time.Parse(time.RFC3339, w.Date)
	}
	return domain.UserBooking{
		ID:          firstNonEmpty(w.ID, w.AltID),
		Date:        date,
		Status:      w.Status,
		ServiceName: w.ServiceName,
		BarberName:  w.BarberName,
		PaymentURL:  w.PaymentURL,
	}
}

// userBookingsEnvelope терпит голый массив и {data:[...]}
type userBookingsEnvelope struct {
	Data []userBookingWire `json:"data"`
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
