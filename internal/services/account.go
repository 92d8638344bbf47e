package services

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/reelkit/reelkit-backend/internal/data/repos"
	"github.com/reelkit/reelkit-backend/internal/pkg/apierr"
	"github.com/reelkit/reelkit-backend/internal/pkg/logger"
	"github.com/reelkit/reelkit-backend/internal/types"
)

// InitialPlatformMetric is the optional per-platform snapshot captured at
// onboarding; it seeds the first AccountMetric row for each platform.
type InitialPlatformMetric struct {
	Followers int64  `json:"followers"`
	Reach     *int64 `json:"reach,omitempty"`
}

type CreateAccountInput struct {
	Name           string                           `json:"name"`
	Niche          string                           `json:"niche"`
	Platforms      []string                         `json:"platforms"`
	Keywords       []string                         `json:"keywords"`
	InitialMetrics map[string]InitialPlatformMetric `json:"initial_metrics"`
}

type UpdateAccountInput struct {
	Name      *string   `json:"name"`
	Niche     *string   `json:"niche"`
	Platforms *[]string `json:"platforms"`
	Keywords  *[]string `json:"keywords"`
}

type AccountService interface {
	Create(ctx context.Context, input CreateAccountInput) (*types.Account, error)
	GetByID(ctx context.Context, id uuid.UUID) (*types.Account, error)
	List(ctx context.Context) ([]*types.Account, error)
	Update(ctx context.Context, id uuid.UUID, patch UpdateAccountInput) (*types.Account, error)
	// Delete soft-deletes the account row. Owned records stay in place so
	// the lifecycle is recoverable; Purge is the hard path.
	Delete(ctx context.Context, id uuid.UUID) error
	// Purge hard-deletes the account and every record it owns in one
	// transaction.
	Purge(ctx context.Context, id uuid.UUID) error
}

type accountService struct {
	db              *gorm.DB
	log             *logger.Logger
	now             clock
	accountRepo     repos.AccountRepo
	streakRepo      repos.StreakRepo
	accMetricRepo   repos.AccountMetricRepo
	videoRepo       repos.VideoRepo
	videoMetricRepo repos.VideoMetricRepo
	noteRepo        repos.VideoNoteRepo
	ideaRepo        repos.IdeaRepo
	folderRepo      repos.IdeaFolderRepo
	taskRepo        repos.TaskRepo
	reportRepo      repos.TrendReportRepo
	convRepo        repos.ConversationRepo
	messageRepo     repos.MessageRepo
}

func NewAccountService(
	db *gorm.DB,
	log *logger.Logger,
	accountRepo repos.AccountRepo,
	streakRepo repos.StreakRepo,
	accMetricRepo repos.AccountMetricRepo,
	videoRepo repos.VideoRepo,
	videoMetricRepo repos.VideoMetricRepo,
	noteRepo repos.VideoNoteRepo,
	ideaRepo repos.IdeaRepo,
	folderRepo repos.IdeaFolderRepo,
	taskRepo repos.TaskRepo,
	reportRepo repos.TrendReportRepo,
	convRepo repos.ConversationRepo,
	messageRepo repos.MessageRepo,
) AccountService {
	serviceLog := log.With("service", "AccountService")
	return &accountService{
		db:              db,
		log:             serviceLog,
		now:             utcNow,
		accountRepo:     accountRepo,
		streakRepo:      streakRepo,
		accMetricRepo:   accMetricRepo,
		videoRepo:       videoRepo,
		videoMetricRepo: videoMetricRepo,
		noteRepo:        noteRepo,
		ideaRepo:        ideaRepo,
		folderRepo:      folderRepo,
		taskRepo:        taskRepo,
		reportRepo:      reportRepo,
		convRepo:        convRepo,
		messageRepo:     messageRepo,
	}
}

func (s *accountService) Create(ctx context.Context, input CreateAccountInput) (*types.Account, error) {
	if input.Name == "" {
		return nil, apierr.Validation("account name is required")
	}
	if input.Niche == "" {
		return nil, apierr.Validation("account niche is required")
	}
	if !types.ValidNiche(input.Niche) {
		return nil, apierr.Validation("unknown niche %q", input.Niche)
	}

	now := s.now()
	initialJSON, err := jsonObject(input.InitialMetrics)
	if err != nil {
		return nil, apierr.Validation("initial metrics not serializable: %v", err)
	}

	account := &types.Account{
		ID:             uuid.New(),
		Name:           input.Name,
		Niche:          input.Niche,
		Platforms:      jsonList(input.Platforms),
		Keywords:       jsonList(input.Keywords),
		InitialMetrics: initialJSON,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	// Account, its zero-value streak and any onboarding metric snapshots
	// land together or not at all.
	err = s.db.Transaction(func(tx *gorm.DB) error {
		if _, err := s.accountRepo.Create(ctx, tx, []*types.Account{account}); err != nil {
			return err
		}
		streak := &types.Streak{
			ID:        uuid.New(),
			AccountID: account.ID,
			CreatedAt: now,
			UpdatedAt: now,
		}
		if _, err := s.streakRepo.Create(ctx, tx, streak); err != nil {
			return err
		}
		if len(input.InitialMetrics) > 0 {
			snapshots := make([]*types.AccountMetric, 0, len(input.InitialMetrics))
			for platform, m := range input.InitialMetrics {
				snapshots = append(snapshots, &types.AccountMetric{
					ID:         uuid.New(),
					AccountID:  account.ID,
					Platform:   platform,
					Followers:  m.Followers,
					Reach:      m.Reach,
					RecordedAt: now,
					CreatedAt:  now,
				})
			}
			if _, err := s.accMetricRepo.Create(ctx, tx, snapshots); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		s.log.Error("Account creation failed", "error", err)
		return nil, apierr.Persistence(err)
	}

	s.log.Info("Account created", "account_id", account.ID, "niche", account.Niche)
	return account, nil
}

func (s *accountService) GetByID(ctx context.Context, id uuid.UUID) (*types.Account, error) {
	account, err := s.accountRepo.GetByID(ctx, nil, id)
	if err != nil {
		return nil, notFoundOr(err, "account %s not found", id)
	}
	return account, nil
}

func (s *accountService) List(ctx context.Context) ([]*types.Account, error) {
	accounts, err := s.accountRepo.List(ctx, nil)
	if err != nil {
		return nil, apierr.Persistence(err)
	}
	return accounts, nil
}

func (s *accountService) Update(ctx context.Context, id uuid.UUID, patch UpdateAccountInput) (*types.Account, error) {
	if _, err := s.accountRepo.GetByID(ctx, nil, id); err != nil {
		return nil, notFoundOr(err, "account %s not found", id)
	}

	fields := map[string]interface{}{}
	if patch.Name != nil {
		if *patch.Name == "" {
			return nil, apierr.Validation("account name cannot be empty")
		}
		fields["name"] = *patch.Name
	}
	if patch.Niche != nil {
		if !types.ValidNiche(*patch.Niche) {
			return nil, apierr.Validation("unknown niche %q", *patch.Niche)
		}
		fields["niche"] = *patch.Niche
	}
	if patch.Platforms != nil {
		fields["platforms"] = jsonList(*patch.Platforms)
	}
	if patch.Keywords != nil {
		fields["keywords"] = jsonList(*patch.Keywords)
	}
	if len(fields) > 0 {
		fields["updated_at"] = s.now()
		if err := s.accountRepo.UpdateFields(ctx, nil, id, fields); err != nil {
			return nil, apierr.Persistence(err)
		}
	}

	account, err := s.accountRepo.GetByID(ctx, nil, id)
	if err != nil {
		return nil, apierr.Persistence(err)
	}
	return account, nil
}

func (s *accountService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.accountRepo.GetByID(ctx, nil, id); err != nil {
		return notFoundOr(err, "account %s not found", id)
	}
	if err := s.accountRepo.Delete(ctx, nil, id); err != nil {
		return apierr.Persistence(err)
	}
	return nil
}

func (s *accountService) Purge(ctx context.Context, id uuid.UUID) error {
	if _, err := s.accountRepo.GetByID(ctx, nil, id); err != nil {
		return notFoundOr(err, "account %s not found", id)
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		videoIDs, err := s.videoRepo.IDsByAccount(ctx, tx, id)
		if err != nil {
			return err
		}
		if err := s.videoMetricRepo.DeleteByVideoIDs(ctx, tx, videoIDs); err != nil {
			return err
		}
		if err := s.noteRepo.DeleteByVideoIDs(ctx, tx, videoIDs); err != nil {
			return err
		}
		if err := s.videoRepo.DeleteByIDs(ctx, tx, videoIDs); err != nil {
			return err
		}

		convIDs, err := s.convRepo.IDsByAccount(ctx, tx, id)
		if err != nil {
			return err
		}
		if err := s.messageRepo.DeleteByConversationIDs(ctx, tx, convIDs); err != nil {
			return err
		}
		if err := s.convRepo.DeleteByIDs(ctx, tx, convIDs); err != nil {
			return err
		}

		if err := s.taskRepo.DeleteByAccountID(ctx, tx, id); err != nil {
			return err
		}
		if err := s.ideaRepo.DeleteByAccountID(ctx, tx, id); err != nil {
			return err
		}
		if err := s.folderRepo.DeleteByAccountID(ctx, tx, id); err != nil {
			return err
		}
		if err := s.accMetricRepo.DeleteByAccountID(ctx, tx, id); err != nil {
			return err
		}
		if err := s.reportRepo.DeleteByAccountID(ctx, tx, id); err != nil {
			return err
		}
		if err := s.streakRepo.DeleteByAccountID(ctx, tx, id); err != nil {
			return err
		}

		// Unscoped removes the row even if it was soft-deleted earlier.
		return tx.WithContext(ctx).Unscoped().
			Where("id = ?", id).
			Delete(&types.Account{}).Error
	})
	if err != nil {
		s.log.Error("Account purge failed", "account_id", id, "error", err)
		return apierr.Persistence(err)
	}

	s.log.Info("Account purged", "account_id", id)
	return nil
}
