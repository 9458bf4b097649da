package main

import (
	"bufio"
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/m04kA/HBS-BookingFlow/internal/config"
	"github.com/m04kA/HBS-BookingFlow/internal/domain"
	"github.com/m04kA/HBS-BookingFlow/internal/infra/sessionstore"
	"github.com/m04kA/HBS-BookingFlow/internal/integrations/barberapi"
	sessionService "github.com/m04kA/HBS-BookingFlow/internal/service/session"
	bookingSession "github.com/m04kA/HBS-BookingFlow/internal/usecase/booking_session"
	confirmBooking "github.com/m04kA/HBS-BookingFlow/internal/usecase/confirm_booking"
	resolveAvailability "github.com/m04kA/HBS-BookingFlow/internal/usecase/resolve_availability"
	"github.com/m04kA/HBS-BookingFlow/pkg/logger"
	"github.com/m04kA/HBS-BookingFlow/pkg/metrics"
)

// tokenSource поздняя привязка сервиса сессии к API-клиенту
// (клиент нужен сервису сессии для login, сервис - клиенту для токена)
type tokenSource struct {
	sessions *sessionService.Service
}

func (t *tokenSource) Token() string {
	if t.sessions == nil {
		return ""
	}
	return t.sessions.Token()
}

func main() {
	// Переменные окружения из .env (если есть) перекрывают умолчания
	_ = godotenv.Load()

	configPath := os.Getenv("HBS_CONFIG")
	if configPath == "" {
		configPath = "config.toml"
	}

	// Загружаем конфигурацию
	cfg, err := config.Load(configPath)
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}
	if url := os.Getenv("HBS_API_URL"); url != "" {
		cfg.API.BaseURL = url
	}

	// Инициализируем логгер
	log, err := logger.New(cfg.Logs.File, cfg.Logs.Level)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Close()

	log.Info("Starting HBS-BookingFlow...")
	log.Info("Configuration loaded from %s, backend=%s", configPath, cfg.API.BaseURL)

	// Инициализируем метрики (если включены)
	var metricsCollector *metrics.Metrics
	var apiTransport http.RoundTripper
	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		apiTransport = metrics.InstrumentRoundTripper(nil, metricsCollector, func(r *http.Request) string {
			return barberapi.EndpointName(r)
		})

		metricsMux := http.NewServeMux()
		metricsMux.Handle(cfg.Metrics.Path, promhttp.Handler())
		go func() {
			addr := fmt.Sprintf(":%d", cfg.Metrics.Port)
			log.Info("Prometheus metrics exposed at %s%s", addr, cfg.Metrics.Path)
			if err := http.ListenAndServe(addr, metricsMux); err != nil {
				log.Error("Metrics server stopped: %v", err)
			}
		}()
	}

	// Инициализируем API-клиент и сервис сессии
	ts := &tokenSource{}
	apiClient := barberapi.NewClient(
		cfg.API.BaseURL,
		time.Duration(cfg.API.Timeout)*time.Second,
		ts,
		apiTransport,
		log,
	)

	store := sessionstore.New(cfg.Session.File)
	sessions := sessionService.NewService(store, apiClient, log)
	ts.sessions = sessions

	// Инициализируем use cases booking flow
	resolver := resolveAvailability.NewUseCase(apiClient, log)
	submitter := confirmBooking.NewUseCase(apiClient, log)

	app := &cli{
		in:       bufio.NewScanner(os.Stdin),
		api:      apiClient,
		sessions: sessions,
		resolver: resolver,
	}

	// Типизированный nil *metrics.Metrics в интерфейсе не был бы nil
	var flowMetrics bookingSession.FlowMetrics
	if metricsCollector != nil {
		flowMetrics = metricsCollector
	}

	controller := bookingSession.NewController(submitter, resolver, sessions, app, flowMetrics, log)
	app.controller = controller

	// Graceful shutdown по SIGINT/SIGTERM: чтение stdin прервать нельзя,
	// поэтому сигнал завершает процесс после сброса буферов логгера
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		log.Info("Received signal %v, shutting down", sig)
		log.Close()
		os.Exit(0)
	}()

	if err := app.run(context.Background()); err != nil {
		log.Fatal("Booking flow failed: %v", err)
	}

	log.Info("HBS-BookingFlow finished")
}

// cli интерактивный терминальный интерфейс booking flow
// Реализует booking_session.AuthPrompter: auth-промпт открывается инлайн
type cli struct {
	in         *bufio.Scanner
	api        *barberapi.Client
	sessions   *sessionService.Service
	resolver   *resolveAvailability.UseCase
	controller *bookingSession.Controller
}

// PromptLogin открывает форму входа в режиме login
// Закрытие формы без входа отменяет намерение бронирования целиком
func (c *cli) PromptLogin() {
	fmt.Println("\nSign in to finish your booking.")
	for {
		choice := c.ask("[1] Sign in  [2] Create account  [3] Cancel: ")
		switch choice {
		case "1":
			email := c.ask("Email: ")
			password := c.ask("Password: ")
			if _, err := c.sessions.Login(context.Background(), email, password); err != nil {
				fmt.Printf("Sign in failed: %v\n", err)
				continue
			}
			fmt.Println("Signed in.")
			return
		case "2":
			form := sessionService.RegisterForm{
				Name:     c.ask("Name: "),
				Phone:    c.ask("Phone: "),
				Email:    c.ask("Email: "),
				Password: c.ask("Password: "),
			}
			form.ConfirmPassword = c.ask("Confirm password: ")
			if _, err := c.sessions.Register(context.Background(), form); err != nil {
				fmt.Printf("Registration failed: %v\n", err)
				continue
			}
			fmt.Println("Account created.")
			return
		case "3", "":
			c.controller.CancelAuth()
			return
		}
	}
}

func (c *cli) run(ctx context.Context) error {
	if current := c.sessions.Current(); current != nil {
		fmt.Printf("Welcome back, %s!\n", current.User.Name)
	}

	for {
		choice := c.ask("\n[1] Book an appointment  [2] My bookings  [3] Quit: ")
		switch choice {
		case "1":
			if err := c.bookAppointment(ctx); err != nil {
				fmt.Printf("Booking flow ended: %v\n", err)
			}
		case "2":
			c.showMyBookings(ctx)
		case "3", "":
			return nil
		}
	}
}

func (c *cli) bookAppointment(ctx context.Context) error {
	barbers, err := c.api.GetBarbers(ctx)
	if err != nil {
		return fmt.Errorf("failed to load barbers: %w", err)
	}
	if len(barbers) == 0 {
		fmt.Println("No barbers available right now.")
		return nil
	}

	// Выбор барбера
	fmt.Println("\nOur barbers:")
	for i, b := range barbers {
		fmt.Printf("  [%d] %s - %s (%.1f stars, %d years)\n",
			i+1, b.Name, b.Specialization, b.Rating, b.ExperienceYears)
	}
	barber, ok := pickIndex(barbers, c.ask("Barber: "))
	if !ok {
		return nil
	}

	// Выбор услуги
	if len(barber.Services) == 0 {
		fmt.Println("This barber has no services listed.")
		return nil
	}
	fmt.Printf("\nServices by %s:\n", barber.Name)
	for i, svc := range barber.Services {
		fmt.Printf("  [%d] %s - %d min - %.0f %s\n",
			i+1, svc.Name, svc.DurationMinutes, svc.Price, domain.CurrencyLabel)
	}
	service, ok := pickIndex(barber.Services, c.ask("Service: "))
	if !ok {
		return nil
	}

	// Выбор даты: окно из 14 дней, первый пункт - сегодня
	today := time.Now()
	fmt.Println("\nPick a date:")
	for i := 0; i < domain.BookingWindowDays; i++ {
		day := today.AddDate(0, 0, i)
		marker := ""
		if i == 0 {
			marker = " (today)"
		}
		fmt.Printf("  [%d] %s%s\n", i+1, day.Format("Mon, Jan 2"), marker)
	}
	offset, err := strconv.Atoi(c.ask("Date: "))
	if err != nil || offset < 1 || offset > domain.BookingWindowDays {
		return nil
	}
	date := today.AddDate(0, 0, offset-1)

	// Загрузка и выбор слота
	slot, ok := c.pickSlot(ctx, barber, service, date)
	if !ok {
		return nil
	}

	if err := c.controller.ChooseSlot(barber, service, date, slot); err != nil {
		return err
	}

	if note := c.ask("Add a note (optional): "); note != "" {
		if err := c.controller.SetNote(note); err != nil {
			fmt.Printf("Note skipped: %v\n", err)
		}
	}

	// Запуск оформления: при отсутствии сессии контроллер откроет auth-промпт
	if err := c.controller.RequestBooking(); err != nil {
		return err
	}

	switch c.controller.State() {
	case domain.StateReadyToSubmit:
		return c.confirm(ctx)
	case domain.StateIdle:
		// Пользователь закрыл auth-промпт - намерение отменено
		fmt.Println("Booking cancelled.")
		return nil
	case domain.StateConfirmed:
		// Автоматический retry после re-login уже завершил бронирование
		c.printConfirmation()
		return nil
	default:
		return nil
	}
}

func (c *cli) confirm(ctx context.Context) error {
	draft := c.controller.Draft()
	fmt.Printf("\nConfirm: %s with %s on %s at %s (%.0f %s)\n",
		draft.Service.Name, draft.BarberName,
		draft.Date.Format(domain.DateFormat), draft.Slot.StartTime.Format12Hour(),
		draft.Service.Price, domain.CurrencyLabel)
	if c.ask("Create booking? [y/N]: ") != "y" {
		c.controller.Cancel()
		return nil
	}

	if _, err := c.controller.Confirm(ctx); err != nil {
		switch c.controller.State() {
		case domain.StateSlotChosen:
			fmt.Println("That time was just taken. The slot list has been refreshed - please pick another time.")
		case domain.StateConfirmed:
			// Сессия истекала, но автоматический retry после re-login успел
			c.printConfirmation()
			return nil
		case domain.StateFailed:
			fmt.Printf("Booking failed: %v\nYour selection is kept - try again from the menu.\n", err)
		case domain.StateIdle:
			// Auth-промпт закрыт во время переотправки - намерение отменено
			fmt.Println("Booking cancelled.")
		}
		return nil
	}

	c.printConfirmation()
	return nil
}

func (c *cli) printConfirmation() {
	result := c.controller.Result()
	if result == nil {
		return
	}
	fmt.Printf("\nBooking confirmed! Reference: %s\n", result.Reference)
	fmt.Printf("%s with %s on %s at %s\n",
		result.Service.Name, result.BarberName,
		result.Date.Format(domain.DateFormat), result.StartTime.Format12Hour())
	c.controller.AcknowledgeConfirmed()
}

func (c *cli) pickSlot(ctx context.Context, barber domain.BarberRef, service domain.Service, date time.Time) (domain.TimeSlot, bool) {
	for {
		slots, err := c.resolver.LoadSlots(ctx, barber.ID, date, service.DurationMinutes)
		if err != nil {
			// Ошибка загрузки - это не "нет слотов": предлагаем retry
			fmt.Printf("Failed to load time slots: %v\n", err)
			if c.ask("Try again? [y/N]: ") == "y" {
				continue
			}
			return domain.TimeSlot{}, false
		}
		if len(slots) == 0 {
			fmt.Printf("No available slots on %s.\n", date.Format(domain.DateFormat))
			return domain.TimeSlot{}, false
		}

		fmt.Printf("\nAvailable times on %s:\n", date.Format(domain.DateFormat))
		for i, s := range slots {
			fmt.Printf("  [%d] %s - %s\n", i+1, s.StartTime.Format12Hour(), s.EndTime.Format12Hour())
		}
		slot, ok := pickIndex(slots, c.ask("Time: "))
		if !ok {
			return domain.TimeSlot{}, false
		}
		if err := c.resolver.SelectSlot(slot); err != nil {
			fmt.Printf("Could not select that time: %v\n", err)
			continue
		}
		return slot, true
	}
}

func (c *cli) showMyBookings(ctx context.Context) {
	if !c.sessions.IsAuthenticated() {
		fmt.Println("Sign in to see your bookings.")
		return
	}
	bookings, err := c.api.GetMyBookings(ctx)
	if err != nil {
		fmt.Printf("Failed to load bookings: %v\n", err)
		return
	}
	if len(bookings) == 0 {
		fmt.Println("No bookings yet.")
		return
	}
	fmt.Println("\nYour bookings:")
	for _, b := range bookings {
		line := fmt.Sprintf("  %s - %s", b.Date.Format(domain.DateFormat), b.Status)
		if b.ServiceName != "" {
			line += " - " + b.ServiceName
		}
		if b.PaymentURL != nil {
			line += " (receipt: " + *b.PaymentURL + ")"
		}
		fmt.Println(line)
	}
}

func (c *cli) ask(prompt string) string {
	fmt.Print(prompt)
	if !c.in.Scan() {
		return ""
	}
	return strings.TrimSpace(c.in.Text())
}

// pickIndex разбирает 1-based ввод пользователя и возвращает элемент списка
func pickIndex[T any](items []T, input string) (T, bool) {
	var zero T
	idx, err := strconv.Atoi(input)
	if err != nil || idx < 1 || idx > len(items) {
		return zero, false
	}
	return items[idx-1], true
}
