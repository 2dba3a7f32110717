package main

import (
	"context"
	"database/sql"
	"flag"
	"log/slog"
	"os"
	"time"

	"github.com/parlour-hub/parlour/backend/internal/config"
	"github.com/parlour-hub/parlour/backend/internal/repository"
	"github.com/parlour-hub/parlour/backend/internal/seed"

	_ "github.com/jackc/pgx/v5/stdlib"
)

func main() {
	var op int

	flag.IntVar(&op, "op", 0, "要执行的操作 (1: 插入演示管理员, 2: 插入演示员工, 3: 插入演示任务, 4: 插入演示顾客和预约, 5: 插入全部演示数据)")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	// 读取配置文件
	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("无法读取配置文件", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// 创建数据库连接池
	dbpool, err := sql.Open("pgx", cfg.Database.DSN)
	if err != nil {
		logger.Error("无法创建数据库连接池", "error", err)
		return
	}
	defer dbpool.Close()

	dbpool.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	dbpool.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	dbpool.SetConnMaxIdleTime(time.Duration(cfg.Database.MaxIdleTime) * time.Second)

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Database.ConnectTimeout)*time.Second)
	defer cancel()

	// sql.Open 只是创建数据库连接池对象，并不会立即连接到数据库，因此需要显式地 ping 一下
	if err := dbpool.PingContext(ctx); err != nil {
		logger.Error("无法连接到数据库", "error", err)
		return
	}

	// 创建 repository
	repo := repository.NewRepository(cfg, dbpool)

	// 执行操作
	switch op {
	case 0:
		slog.Error("未指定操作")
	case 1:
		seed.SeedDemoAdmins(repo, cfg.Seed.User.Password)
	case 2:
		seed.SeedDemoEmployees(repo, cfg.Seed.User.Password)
	case 3:
		seed.SeedDemoTasks(repo)
	case 4:
		seed.SeedDemoCustomers(repo, cfg.Seed.User.Password)
	case 5:
		seed.SeedDemoAdmins(repo, cfg.Seed.User.Password)
		seed.SeedDemoEmployees(repo, cfg.Seed.User.Password)
		seed.SeedDemoTasks(repo)
		seed.SeedDemoCustomers(repo, cfg.Seed.User.Password)
	default:
		slog.Error("指定的操作非法")
	}
}
