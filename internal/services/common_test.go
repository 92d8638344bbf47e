package services

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"

	"github.com/reelkit/reelkit-backend/internal/data/db"
	"github.com/reelkit/reelkit-backend/internal/data/repos"
	"github.com/reelkit/reelkit-backend/internal/pkg/logger"
	"github.com/reelkit/reelkit-backend/internal/types"
)

var testDBSeq int

// newTestDB opens a fresh in-memory store with the full schema. Shared cache
// with a single connection keeps the database alive across gorm's pool.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	testDBSeq++
	dsn := fmt.Sprintf("file:servicetest%d?mode=memory&cache=shared", testDBSeq)
	gdb, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		DisableForeignKeyConstraintWhenMigrating: true,
		Logger:                                   gormLogger.Default.LogMode(gormLogger.Silent),
	})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	sqlDB, err := gdb.DB()
	if err != nil {
		t.Fatalf("unwrap test db: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := db.AutoMigrateAll(gdb); err != nil {
		t.Fatalf("automigrate: %v", err)
	}
	if err := db.EnsureIndexes(gdb); err != nil {
		t.Fatalf("ensure indexes: %v", err)
	}
	t.Cleanup(func() { _ = sqlDB.Close() })
	return gdb
}

type testEnv struct {
	db  *gorm.DB
	log *logger.Logger

	accountRepo     repos.AccountRepo
	videoRepo       repos.VideoRepo
	videoMetricRepo repos.VideoMetricRepo
	videoNoteRepo   repos.VideoNoteRepo
	accMetricRepo   repos.AccountMetricRepo
	ideaRepo        repos.IdeaRepo
	folderRepo      repos.IdeaFolderRepo
	taskRepo        repos.TaskRepo
	streakRepo      repos.StreakRepo
	reportRepo      repos.TrendReportRepo
	convRepo        repos.ConversationRepo
	messageRepo     repos.MessageRepo
	settingsRepo    repos.UserSettingsRepo
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	gdb := newTestDB(t)
	log := logger.NewNop()
	return &testEnv{
		db:  gdb,
		log: log,

		accountRepo:     repos.NewAccountRepo(gdb, log),
		videoRepo:       repos.NewVideoRepo(gdb, log),
		videoMetricRepo: repos.NewVideoMetricRepo(gdb, log),
		videoNoteRepo:   repos.NewVideoNoteRepo(gdb, log),
		accMetricRepo:   repos.NewAccountMetricRepo(gdb, log),
		ideaRepo:        repos.NewIdeaRepo(gdb, log),
		folderRepo:      repos.NewIdeaFolderRepo(gdb, log),
		taskRepo:        repos.NewTaskRepo(gdb, log),
		streakRepo:      repos.NewStreakRepo(gdb, log),
		reportRepo:      repos.NewTrendReportRepo(gdb, log),
		convRepo:        repos.NewConversationRepo(gdb, log),
		messageRepo:     repos.NewMessageRepo(gdb, log),
		settingsRepo:    repos.NewUserSettingsRepo(gdb, log),
	}
}

func (e *testEnv) accountService() AccountService {
	return NewAccountService(
		e.db, e.log,
		e.accountRepo, e.streakRepo, e.accMetricRepo,
		e.videoRepo, e.videoMetricRepo, e.videoNoteRepo,
		e.ideaRepo, e.folderRepo, e.taskRepo,
		e.reportRepo, e.convRepo, e.messageRepo,
	)
}

func (e *testEnv) videoService() VideoService {
	return NewVideoService(e.db, e.log, e.videoRepo, e.videoMetricRepo, e.videoNoteRepo, e.taskRepo)
}

func (e *testEnv) metricsService() MetricsService {
	return NewMetricsService(e.db, e.log, e.accMetricRepo, e.videoMetricRepo, e.videoRepo)
}

func (e *testEnv) exportService() ExportService {
	return NewExportService(e.db, e.log, e.accountRepo, e.videoRepo, e.videoMetricRepo, e.videoNoteRepo, e.ideaRepo, e.streakRepo)
}

func (e *testEnv) mustAccount(t *testing.T, name string) *types.Account {
	t.Helper()
	account, err := e.accountService().Create(context.Background(), CreateAccountInput{
		Name:  name,
		Niche: types.NicheFitness,
	})
	if err != nil {
		t.Fatalf("create account: %v", err)
	}
	return account
}

func (e *testEnv) mustVideo(t *testing.T, accountID uuid.UUID, title, status string, postedAt *time.Time) *types.Video {
	t.Helper()
	video, err := e.videoService().Create(context.Background(), CreateVideoInput{
		AccountID:   accountID,
		Title:       title,
		DurationSec: 30,
		Status:      status,
		PostedAt:    postedAt,
	})
	if err != nil {
		t.Fatalf("create video %q: %v", title, err)
	}
	return video
}

func timePtr(t time.Time) *time.Time { return &t }
