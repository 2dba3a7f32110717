package seed

import (
	"log/slog"
	"time"

	"github.com/parlour-hub/parlour/backend/internal/auth"
	"github.com/parlour-hub/parlour/backend/internal/domain"
	"github.com/parlour-hub/parlour/backend/internal/repository"
	"github.com/parlour-hub/parlour/backend/internal/utils"
)

// SeedDemoAdmins 插入演示用的两个管理员账号，密码来自配置
func SeedDemoAdmins(r *repository.Repository, password string) {
	admins := []*domain.AdminUser{
		{Email: "superadmin@parlour.com", Name: "Super Admin", Role: domain.RoleSuperAdmin},
		{Email: "admin@parlour.com", Name: "Admin", Role: domain.RoleAdmin},
	}

	cnt := 0
	for _, admin := range admins {
		passwordHash, err := auth.HashPassword(password)
		if err != nil {
			slog.Error("无法生成密码哈希", "email", admin.Email, "error", err)
			continue
		}
		admin.PasswordHash = passwordHash

		if err := r.CreateAdmin(admin); err != nil {
			slog.Error("无法插入管理员", "email", admin.Email, "error", err)
			continue
		}
		cnt++
	}

	slog.Info("插入管理员成功", "count", cnt)
}

// SeedDemoEmployees 插入演示员工。前三位是管理端录入的员工，
// 没有密码，无法登录员工端；最后一位有密码，用于演示员工登录和打卡
func SeedDemoEmployees(r *repository.Repository, password string) {
	employees := []*domain.Employee{
		{Name: "Sarah Johnson", Position: "Hair Stylist", Email: "sarah.johnson@parlour.com"},
		{Name: "Mike Chen", Position: "Barber", Email: "mike.chen@parlour.com"},
		{Name: "Emma Davis", Position: "Nail Technician", Email: "emma.davis@parlour.com"},
	}

	cnt := 0
	for _, employee := range employees {
		employee.Phone = utils.GenerateRandomPhone()
		employee.IsActive = true

		if err := r.CreateEmployee(employee); err != nil {
			slog.Error("无法插入员工", "email", employee.Email, "error", err)
			continue
		}
		cnt++
	}

	passwordHash, err := auth.HashPassword(password)
	if err != nil {
		slog.Error("无法生成密码哈希", "error", err)
	} else {
		credentialed := &domain.Employee{
			Name:         "Lisa Wong",
			Position:     "Massage Therapist",
			Email:        "lisa.wong@parlour.com",
			Phone:        utils.GenerateRandomPhone(),
			PasswordHash: &passwordHash,
			IsActive:     true,
		}
		if err := r.CreateEmployee(credentialed); err != nil {
			slog.Error("无法插入员工", "email", credentialed.Email, "error", err)
		} else {
			cnt++
		}
	}

	slog.Info("插入员工成功", "count", cnt)
}

func SeedDemoTasks(r *repository.Repository) {
	tasks := []*domain.Task{
		{Title: "Restock hair products", AssignedTo: "Sarah Johnson", Status: domain.TaskStatusPending, Priority: domain.TaskPriorityHigh},
		{Title: "Clean styling stations", AssignedTo: "Mike Chen", Status: domain.TaskStatusInProgress, Priority: domain.TaskPriorityMedium},
		{Title: "Sterilize nail equipment", AssignedTo: "Emma Davis", Status: domain.TaskStatusCompleted, Priority: domain.TaskPriorityHigh},
		{Title: "Update appointment board", AssignedTo: "Lisa Wong", Status: domain.TaskStatusPending, Priority: domain.TaskPriorityLow},
	}

	cnt := 0
	for _, task := range tasks {
		if err := r.CreateTask(task); err != nil {
			slog.Error("无法插入任务", "title", task.Title, "error", err)
			continue
		}
		cnt++
	}

	slog.Info("插入任务成功", "count", cnt)
}

// SeedDemoCustomers 插入演示顾客和他们的预约
func SeedDemoCustomers(r *repository.Repository, password string) {
	passwordHash, err := auth.HashPassword(password)
	if err != nil {
		slog.Error("无法生成密码哈希", "error", err)
		return
	}

	customers := []*domain.Customer{
		{
			Name:         "Alice Brown",
			Email:        "alice.brown@example.com",
			Phone:        utils.GenerateRandomPhone(),
			PasswordHash: passwordHash,
			Preferences:  &domain.CustomerPreferences{Services: []string{"Haircut", "Coloring"}},
		},
		{
			Name:         "James Wilson",
			Email:        "james.wilson@example.com",
			Phone:        utils.GenerateRandomPhone(),
			PasswordHash: passwordHash,
		},
	}

	cnt := 0
	for _, customer := range customers {
		if err := r.CreateCustomer(customer); err != nil {
			slog.Error("无法插入顾客", "email", customer.Email, "error", err)
			continue
		}
		cnt++
	}

	slog.Info("插入顾客成功", "count", cnt)

	if cnt == 0 {
		return
	}

	appointments := []*domain.Appointment{
		{
			CustomerID:    customers[0].ID,
			CustomerName:  customers[0].Name,
			CustomerEmail: customers[0].Email,
			Service:       "Haircut",
			AssignedStaff: "Sarah Johnson",
			Date:          time.Now().AddDate(0, 0, 3),
			Time:          "10:00",
			Duration:      45,
			Status:        domain.AppointmentScheduled,
		},
		{
			CustomerID:    customers[1].ID,
			CustomerName:  customers[1].Name,
			CustomerEmail: customers[1].Email,
			Service:       "Beard Trim",
			AssignedStaff: "Mike Chen",
			Date:          time.Now().AddDate(0, 0, 1),
			Time:          "15:30",
			Duration:      30,
			Status:        domain.AppointmentScheduled,
		},
	}

	cnt = 0
	for _, appointment := range appointments {
		if err := r.CreateAppointment(appointment); err != nil {
			slog.Error("无法插入预约", "customer", appointment.CustomerName, "error", err)
			continue
		}
		cnt++
	}

	slog.Info("插入预约成功", "count", cnt)
}
