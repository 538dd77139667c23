package handlers

import (
	"context"

	"github.com/gudang-mitra/gudang-api/internal/auth"
	"github.com/gudang-mitra/gudang-api/internal/redissvc"
	"github.com/gudang-mitra/gudang-api/internal/repo"
	"github.com/redis/go-redis/v9"
)

var (
	itemRepo         repo.ItemRepository
	userRepo         repo.UserRepository
	categoryRepo     repo.CategoryRepository
	requestRepo      repo.RequestRepository
	loanRepo         repo.LoanRepository
	movementRepo     repo.MovementRepository
	notificationRepo repo.NotificationRepository
	statsRepo        repo.StatsRepository

	refreshStore *auth.RefreshStore

	Rdb *redis.Client
	Ctx context.Context
)

func SetItemRepo(r repo.ItemRepository) {
	itemRepo = r
}

func SetUserRepo(r repo.UserRepository) {
	userRepo = r
}

func SetCategoryRepo(r repo.CategoryRepository) {
	categoryRepo = r
}

func SetRequestRepo(r repo.RequestRepository) {
	requestRepo = r
}

func SetLoanRepo(r repo.LoanRepository) {
	loanRepo = r
}

func SetMovementRepo(r repo.MovementRepository) {
	movementRepo = r
}

func SetNotificationRepo(r repo.NotificationRepository) {
	notificationRepo = r
}

func SetStatsRepo(r repo.StatsRepository) {
	statsRepo = r
}

func SetRefreshStore(s *auth.RefreshStore) {
	refreshStore = s
}

func SetRedisService(rs *redissvc.RedisService) {
	Rdb = rs.Rdb()
	Ctx = rs.Ctx()
}
