package handler

import (
	"context"
	"database/sql"
	"errors"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
	"github.com/golang-jwt/jwt/v5"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/redis/go-redis/v9"

	"github.com/parlour-hub/parlour/backend/internal/auth"
	"github.com/parlour-hub/parlour/backend/internal/config"
	"github.com/parlour-hub/parlour/backend/internal/domain"
	"github.com/parlour-hub/parlour/backend/internal/repository"
)

type Handler struct {
	validate    *validator.Validate
	config      *config.Config
	repository  *repository.Repository
	translator  ut.Translator
	mailChannel *amqp.Channel
	redisClient *redis.Client
	issuer      *auth.Issuer

	adminFlow    *auth.Flow[*domain.AdminUser]
	employeeFlow *auth.Flow[*domain.Employee]
	customerFlow *auth.Flow[*domain.Customer]

	Mux *chi.Mux
}

func NewHandler(cfg *config.Config, repo *repository.Repository, mailCh *amqp.Channel, rdb *redis.Client) (*Handler, error) {
	validate := validator.New(validator.WithRequiredStructEnabled())
	en := en.New()
	uni := ut.New(en, en)
	trans, _ := uni.GetTranslator("en")
	if err := en_translations.RegisterDefaultTranslations(validate, trans); err != nil {
		return nil, err
	}

	h := &Handler{
		validate:    validate,
		config:      cfg,
		repository:  repo,
		translator:  trans,
		mailChannel: mailCh,
		redisClient: rdb,
		issuer:      auth.NewIssuer(cfg.JWT.Secret),

		Mux: chi.NewRouter(),
	}

	// 三类主体的登录流程同形，差异全部收敛在各自的 Flow 配置里
	h.adminFlow = &auth.Flow[*domain.AdminUser]{
		Kind:   auth.KindAdmin,
		TTL:    time.Duration(cfg.JWT.AdminExpiration) * time.Second,
		Issuer: h.issuer,
		Lookup: func(ctx context.Context, email string) (*domain.AdminUser, bool, error) {
			admin, err := repo.GetAdminByEmail(email)
			if errors.Is(err, sql.ErrNoRows) {
				return nil, false, nil
			}
			if err != nil {
				return nil, false, err
			}
			return admin, true, nil
		},
		PasswordHash: func(admin *domain.AdminUser) string { return admin.PasswordHash },
		Claims: func(admin *domain.AdminUser) auth.Claims {
			return auth.Claims{
				Email: admin.Email,
				Role:  string(admin.Role),
				Name:  admin.Name,
				RegisteredClaims: jwt.RegisteredClaims{
					Subject: strconv.FormatInt(admin.ID, 10),
				},
			}
		},
	}

	h.employeeFlow = &auth.Flow[*domain.Employee]{
		Kind:   auth.KindEmployee,
		TTL:    time.Duration(cfg.JWT.EmployeeExpiration) * time.Second,
		Issuer: h.issuer,
		Lookup: func(ctx context.Context, email string) (*domain.Employee, bool, error) {
			employee, err := repo.GetActiveEmployeeByEmail(email)
			if errors.Is(err, sql.ErrNoRows) {
				return nil, false, nil
			}
			if err != nil {
				return nil, false, err
			}
			return employee, true, nil
		},
		PasswordHash: func(employee *domain.Employee) string {
			if employee.PasswordHash == nil {
				return ""
			}
			return *employee.PasswordHash
		},
		Claims: func(employee *domain.Employee) auth.Claims {
			return auth.Claims{
				Email:    employee.Email,
				Name:     employee.Name,
				Position: employee.Position,
				RegisteredClaims: jwt.RegisteredClaims{
					Subject: strconv.FormatInt(employee.ID, 10),
				},
			}
		},
		// 员工登录自动打一条上班卡，失败只记录日志，不阻断登录
		AfterLogin: func(ctx context.Context, employee *domain.Employee) error {
			return repo.CreateAttendanceRecord(&domain.AttendanceRecord{
				EmployeeID:   employee.ID,
				EmployeeName: employee.Name,
				Action:       domain.ActionPunchIn,
				Timestamp:    time.Now(),
			})
		},
	}

	h.customerFlow = &auth.Flow[*domain.Customer]{
		Kind:   auth.KindCustomer,
		TTL:    time.Duration(cfg.JWT.CustomerExpiration) * time.Second,
		Issuer: h.issuer,
		Lookup: func(ctx context.Context, email string) (*domain.Customer, bool, error) {
			customer, err := repo.GetCustomerByEmail(email)
			if errors.Is(err, sql.ErrNoRows) {
				return nil, false, nil
			}
			if err != nil {
				return nil, false, err
			}
			return customer, true, nil
		},
		PasswordHash: func(customer *domain.Customer) string { return customer.PasswordHash },
		Claims: func(customer *domain.Customer) auth.Claims {
			return auth.Claims{
				Email: customer.Email,
				Name:  customer.Name,
				RegisteredClaims: jwt.RegisteredClaims{
					Subject: strconv.FormatInt(customer.ID, 10),
				},
			}
		},
	}

	return h, nil
}

func (h *Handler) RegisterRoutes() {
	h.Mux.Use(h.logger)
	h.Mux.Use(h.recoverer)

	// 认证相关，无需令牌
	h.Mux.Post("/auth/login", h.AdminLogin)
	h.Mux.Route("/employees/auth", func(r chi.Router) {
		r.Post("/login", h.EmployeeLogin)
		r.Post("/signup", h.EmployeeSignup)
	})
	h.Mux.Route("/customers/auth", func(r chi.Router) {
		r.Post("/login", h.CustomerLogin)
		r.Post("/signup", h.CustomerSignup)
		r.Route("/reset-password", func(r chi.Router) {
			r.Post("/require", h.RequireCustomerResetPassword)
			r.Post("/confirm", h.ConfirmCustomerResetPassword)
		})
	})

	// 后台 API，需要管理员令牌；所有写操作只开放给超级管理员
	h.Mux.Group(func(r chi.Router) {
		r.Use(h.authenticate(auth.KindAdmin))

		r.Get("/employees", h.GetAllEmployees)
		r.With(h.requiredRole(domain.RoleSuperAdmin)).Post("/employees", h.CreateEmployee)
		r.Route("/employees/{id}", func(r chi.Router) {
			r.Use(h.requiredRole(domain.RoleSuperAdmin))
			r.Use(h.employeeInfo)
			r.Put("/", h.UpdateEmployee)
			r.Delete("/", h.DeleteEmployee)
		})

		r.Get("/tasks", h.GetAllTasks)
		r.With(h.requiredRole(domain.RoleSuperAdmin)).Post("/tasks", h.CreateTask)
		r.Route("/tasks/{id}", func(r chi.Router) {
			r.Use(h.requiredRole(domain.RoleSuperAdmin))
			r.Use(h.taskInfo)
			r.Put("/", h.UpdateTask)
			r.Delete("/", h.DeleteTask)
		})

		r.Get("/attendance", h.GetAttendanceRecords)

		r.Get("/appointments", h.GetAllAppointments)
		r.Route("/appointments/{id}", func(r chi.Router) {
			r.Use(h.requiredRole(domain.RoleSuperAdmin))
			r.Use(h.appointmentInfo)
			r.Put("/", h.UpdateAppointment)
		})
	})

	// 员工打卡，需要员工令牌
	h.Mux.Group(func(r chi.Router) {
		r.Use(h.authenticate(auth.KindEmployee))
		r.Post("/attendance", h.CreateAttendanceRecord)
	})

	// 顾客自己的预约，需要顾客令牌
	h.Mux.Group(func(r chi.Router) {
		r.Use(h.authenticate(auth.KindCustomer))
		r.Get("/customers/appointments", h.GetCustomerAppointments)
		r.Post("/customers/appointments", h.CreateCustomerAppointment)
	})
}
