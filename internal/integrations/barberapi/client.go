package barberapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/m04kA/HBS-BookingFlow/internal/domain"
)

// Client клиент для работы с backend API барбершопа
type Client struct {
	baseURL     string
	httpClient  *http.Client
	tokenSource TokenSource
	log         Logger
}

// NewClient создает новый экземпляр клиента
// transport может быть nil (используется http.DefaultTransport) или обёрнут
// сбором метрик через metrics.InstrumentRoundTripper
func NewClient(baseURL string, timeout time.Duration, tokenSource TokenSource, transport http.RoundTripper, log Logger) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout:   timeout,
			Transport: transport,
		},
		tokenSource: tokenSource,
		log:         log,
	}
}

// GetBarbers получает список барберов с каталогами услуг
func (c *Client) GetBarbers(ctx context.Context) ([]domain.BarberRef, error) {
	url := c.baseURL + "/barbers"

	resp, err := c.do(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read response: %v", ErrInternal, err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, c.statusError(resp.StatusCode, body)
	}

	// Нормализация: голый массив или {data:[...]}
	var wires []barberWire
	if err := json.Unmarshal(body, &wires); err != nil {
		var envelope barbersEnvelope
		if err := json.Unmarshal(body, &envelope); err != nil {
			return nil, fmt.Errorf("%w: failed to decode barbers response: %v", ErrInvalidResponse, err)
		}
		wires = envelope.Data
	}

	barbers := make([]domain.BarberRef, 0, len(wires))
	for i := range wires {
		barbers = append(barbers, wires[i].toDomain())
	}
	return barbers, nil
}

// GetAvailability получает доступные слоты барбера на дату
func (c *Client) GetAvailability(ctx context.Context, barberID string, date time.Time, serviceDuration int) ([]domain.TimeSlot, error) {
	url := fmt.Sprintf("%s/availability/barber/%s?date=%s&serviceDuration=%d",
		c.baseURL, barberID, date.Format(domain.DateFormat), serviceDuration)

	resp, err := c.do(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read response: %v", ErrInternal, err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, c.statusError(resp.StatusCode, body)
	}

	var envelope availabilityEnvelope
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, fmt.Errorf("%w: failed to decode availability response: %v", ErrInvalidResponse, err)
	}

	wires := envelope.slots()
	slots := make([]domain.TimeSlot, 0, len(wires))
	for i := range wires {
		slot, err := wires[i].toDomain()
		if err != nil {
			return nil, fmt.Errorf("%w: malformed slot: %v", ErrInvalidResponse, err)
		}
		slots = append(slots, slot)
	}
	return slots, nil
}

// ValidateAvailability проверяет, что слот всё ещё свободен
// Возвращает nil при 200, ErrConflict если слот уже занят
func (c *Client) ValidateAvailability(ctx context.Context, req ValidateAvailabilityRequest) error {
	url := c.baseURL + "/availability/validate"

	resp, err := c.do(ctx, http.MethodPost, url, req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)

	switch resp.StatusCode {
	case http.StatusOK:
		return nil
	case http.StatusConflict:
		return fmt.Errorf("%w: %s", ErrConflict, errorText(body))
	case http.StatusBadRequest:
		// Часть версий backend'а отвечает 400 на занятый слот
		return fmt.Errorf("%w: %s", ErrConflict, errorText(body))
	default:
		return c.statusError(resp.StatusCode, body)
	}
}

// CreateBooking создает бронирование
func (c *Client) CreateBooking(ctx context.Context, req CreateBookingRequest) (*CreatedBooking, error) {
	url := c.baseURL + "/bookings"

	resp, err := c.do(ctx, http.MethodPost, url, req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read response: %v", ErrInternal, err)
	}

	switch resp.StatusCode {
	case http.StatusCreated, http.StatusOK:
		// Продолжаем обработку
	case http.StatusConflict:
		return nil, fmt.Errorf("%w: %s", ErrConflict, errorText(body))
	default:
		return nil, c.statusError(resp.StatusCode, body)
	}

	var created CreatedBooking
	if err := json.Unmarshal(body, &created); err != nil {
		return nil, fmt.Errorf("%w: failed to decode created booking: %v", ErrInvalidResponse, err)
	}
	return &created, nil
}

// Login выполняет вход по email и паролю
func (c *Client) Login(ctx context.Context, email, password string) (domain.Session, error) {
	url := c.baseURL + "/auth/login"

	payload := map[string]string{"email": email, "password": password}
	resp, err := c.do(ctx, http.MethodPost, url, payload)
	if err != nil {
		return domain.Session{}, err
	}
	defer resp.Body.Close()

	return c.decodeAuthResponse(resp)
}

// Register регистрирует нового пользователя
func (c *Client) Register(ctx context.Context, req RegisterRequest) (domain.Session, error) {
	url := c.baseURL + "/auth/register"

	resp, err := c.do(ctx, http.MethodPost, url, req)
	if err != nil {
		return domain.Session{}, err
	}
	defer resp.Body.Close()

	return c.decodeAuthResponse(resp)
}

// GetMyBookings получает историю бронирований текущего пользователя
func (c *Client) GetMyBookings(ctx context.Context) ([]domain.UserBooking, error) {
	url := c.baseURL + "/bookings/my-bookings"

	resp, err := c.do(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read response: %v", ErrInternal, err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, c.statusError(resp.StatusCode, body)
	}

	var wires []userBookingWire
	if err := json.Unmarshal(body, &wires); err != nil {
		var envelope userBookingsEnvelope
		if err := json.Unmarshal(body, &envelope); err != nil {
			return nil, fmt.Errorf("%w: failed to decode bookings response: %v", ErrInvalidResponse, err)
		}
		wires = envelope.Data
	}

	bookings := make([]domain.UserBooking, 0, len(wires))
	for i := range wires {
		bookings = append(bookings, wires[i].toDomain())
	}
	return bookings, nil
}

// do выполняет HTTP-запрос с JSON-телом и bearer-токеном (если сессия есть)
func (c *Client) do(ctx context.Context, method, url string, payload interface{}) (*http.Response, error) {
	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("%w: failed to marshal request: %v", ErrInternal, err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}

	req.Header.Set("Content-Type", "application/json")
	if c.tokenSource != nil {
		if token := c.tokenSource.Token(); token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to execute request: %v", ErrInternal, err)
	}
	return resp, nil
}

func (c *Client) decodeAuthResponse(resp *http.Response) (domain.Session, error) {
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return domain.Session{}, fmt.Errorf("%w: failed to read response: %v", ErrInternal, err)
	}

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return domain.Session{}, c.statusError(resp.StatusCode, body)
	}

	var envelope authEnvelope
	if err := json.Unmarshal(body, &envelope); err != nil {
		return domain.Session{}, fmt.Errorf("%w: failed to decode auth response: %v", ErrInvalidResponse, err)
	}

	session, err := envelope.toDomain()
	if err != nil {
		return domain.Session{}, fmt.Errorf("%w: %v", ErrInvalidResponse, err)
	}
	return session, nil
}

// statusError маппит статус-код в sentinel error с сообщением backend'а
func (c *Client) statusError(statusCode int, body []byte) error {
	switch statusCode {
	case http.StatusUnauthorized:
		return fmt.Errorf("%w: %s", ErrUnauthorized, errorText(body))
	case http.StatusNotFound:
		return fmt.Errorf("%w: %s", ErrNotFound, errorText(body))
	case http.StatusConflict:
		return fmt.Errorf("%w: %s", ErrConflict, errorText(body))
	case http.StatusBadRequest, http.StatusUnprocessableEntity:
		return fmt.Errorf("%w: %s", ErrBadRequest, errorText(body))
	default:
		return fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, statusCode, string(body))
	}
}

// errorText извлекает текст ошибки из тела ответа
func errorText(body []byte) string {
	var e ErrorResponse
	if err := json.Unmarshal(body, &e); err == nil {
		if text := e.Text(); text != "" {
			return text
		}
	}
	if len(body) == 0 {
		return "no error details"
	}
	return string(body)
}

// EndpointName возвращает нормализованное имя endpoint'а для метрик
// Матчинг по суффиксу: base URL может нести префикс вроде "/api".
// ID в пути заменяются шаблоном, чтобы не раздувать кардинальность.
func EndpointName(r *http.Request) string {
	path := r.URL.Path
	switch {
	case strings.Contains(path, "/availability/barber/"):
		return "/availability/barber/{barberId}"
	case strings.HasSuffix(path, "/availability/validate"):
		return "/availability/validate"
	case strings.HasSuffix(path, "/bookings/my-bookings"):
		return "/bookings/my-bookings"
	case strings.HasSuffix(path, "/bookings"):
		return "/bookings"
	case strings.HasSuffix(path, "/barbers"):
		return "/barbers"
	case strings.HasSuffix(path, "/auth/login"):
		return "/auth/login"
	case strings.HasSuffix(path, "/auth/register"):
		return "/auth/register"
	default:
		return "other"
	}
}
