package services

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/reelkit/reelkit-backend/internal/data/repos"
	"github.com/reelkit/reelkit-backend/internal/pkg/apierr"
	"github.com/reelkit/reelkit-backend/internal/pkg/logger"
	"github.com/reelkit/reelkit-backend/internal/types"
)

// Activity types recognized by the XP table. Anything else earns the
// fallback amount.
const (
	ActionCheckin = "checkin"
	ActionPost    = "post"
	ActionMetrics = "metrics"
)

const (
	xpCheckin  = 5
	xpPost     = 50
	xpMetrics  = 20
	xpFallback = 10

	// Awarded on top of the base amount when the streak continues on the
	// very next calendar day.
	xpStreakBonus = 10
)

func BaseXP(action string) int {
	switch action {
	case ActionCheckin:
		return xpCheckin
	case ActionPost:
		return xpPost
	case ActionMetrics:
		return xpMetrics
	default:
		return xpFallback
	}
}

// Milestone is a presentation-layer decoration: callers compare the current
// streak returned by RecordActivity against this fixed table. It is never
// part of engine state.
type Milestone struct {
	Days    int    `json:"days"`
	BonusXP int    `json:"bonus_xp"`
	Label   string `json:"label"`
}

var milestones = []Milestone{
	{Days: 7, BonusXP: 50, Label: "One week strong"},
	{Days: 14, BonusXP: 100, Label: "Two week titan"},
	{Days: 30, BonusXP: 250, Label: "Monthly master"},
	{Days: 60, BonusXP: 500, Label: "Two month machine"},
	{Days: 100, BonusXP: 1000, Label: "Century club"},
	{Days: 365, BonusXP: 5000, Label: "Year-long legend"},
}

// MilestoneFor returns the milestone hit exactly at the given streak
// length, or nil.
func MilestoneFor(current int) *Milestone {
	for i := range milestones {
		if milestones[i].Days == current {
			m := milestones[i]
			return &m
		}
	}
	return nil
}

type ActivityResult struct {
	Streak   *types.Streak `json:"streak"`
	XPGained int           `json:"xp_gained"`
	IsNewDay bool          `json:"is_new_day"`
}

type StreakService interface {
	// RecordActivity advances the per-account streak state machine. Streak
	// rows are keyed by account id with no foreign-key enforcement, so
	// check-ins work even before the account row lands.
	RecordActivity(ctx context.Context, accountID uuid.UUID, action string) (*ActivityResult, error)
	// Get returns the streak, lazily creating a zero-value row the first
	// time an account is read.
	Get(ctx context.Context, accountID uuid.UUID) (*types.Streak, error)
}

type streakService struct {
	db         *gorm.DB
	log        *logger.Logger
	now        clock
	streakRepo repos.StreakRepo

	// recordActivity is read-compute-write; per-account locks serialize
	// in-process callers so two concurrent check-ins cannot both read the
	// same "before" state. The conditional update in the repo is the
	// cross-process backstop.
	mu    sync.Mutex
	locks map[uuid.UUID]*sync.Mutex
}

func NewStreakService(db *gorm.DB, log *logger.Logger, streakRepo repos.StreakRepo) StreakService {
	serviceLog := log.With("service", "StreakService")
	return &streakService{
		db:         db,
		log:        serviceLog,
		now:        utcNow,
		streakRepo: streakRepo,
		locks:      map[uuid.UUID]*sync.Mutex{},
	}
}

func (s *streakService) lockFor(accountID uuid.UUID) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	l, ok := s.locks[accountID]
	if !ok {
		l = &sync.Mutex{}
		s.locks[accountID] = l
	}
	return l
}

func (s *streakService) Get(ctx context.Context, accountID uuid.UUID) (*types.Streak, error) {
	if accountID == uuid.Nil {
		return nil, apierr.Validation("account id is required")
	}
	return s.getOrCreate(ctx, accountID)
}

func (s *streakService) getOrCreate(ctx context.Context, accountID uuid.UUID) (*types.Streak, error) {
	streak, err := s.streakRepo.GetByAccountID(ctx, nil, accountID)
	if err == nil {
		return streak, nil
	}
	if !isNotFound(err) {
		return nil, apierr.Persistence(err)
	}

	now := s.now()
	created, err := s.streakRepo.Create(ctx, nil, &types.Streak{
		ID:        uuid.New(),
		AccountID: accountID,
		CreatedAt: now,
		UpdatedAt: now,
	})
	if err != nil {
		return nil, apierr.Persistence(err)
	}
	return created, nil
}

const recordActivityAttempts = 3

func (s *streakService) RecordActivity(ctx context.Context, accountID uuid.UUID, action string) (*ActivityResult, error) {
	if accountID == uuid.Nil {
		return nil, apierr.Validation("account id is required")
	}

	lock := s.lockFor(accountID)
	lock.Lock()
	defer lock.Unlock()

	for attempt := 0; attempt < recordActivityAttempts; attempt++ {
		streak, err := s.getOrCreate(ctx, accountID)
		if err != nil {
			return nil, err
		}

		now := s.now()
		prev := streak.LastActivityAt

		isNewDay := prev == nil || !sameCalendarDay(*prev, now)
		gained := BaseXP(action)
		current := streak.Current

		if isNewDay {
			switch {
			case prev == nil:
				current = 1
			default:
				switch diff := calendarDaysBetween(*prev, now); {
				case diff == 1:
					current++
					gained += xpStreakBonus
				case diff > 1:
					current = 1
				default:
					// diff == 0 cannot happen when the calendar date
					// changed; treat as continuation if it ever does.
				}
			}
		}

		if current > streak.Longest {
			streak.Longest = current
		}
		streak.Current = current
		streak.LastActivityAt = &now
		streak.XP += int64(gained)
		streak.UpdatedAt = now

		rows, err := s.streakRepo.UpdateIfUnchanged(ctx, nil, streak, prev)
		if err != nil {
			return nil, apierr.Persistence(err)
		}
		if rows == 0 {
			// Lost the race against another process; reload and redo.
			s.log.Warn("Streak write conflicted, retrying", "account_id", accountID, "attempt", attempt+1)
			continue
		}

		s.log.Debug("Activity recorded",
			"account_id", accountID,
			"action", action,
			"current", streak.Current,
			"xp_gained", gained,
			"new_day", isNewDay,
		)
		return &ActivityResult{Streak: streak, XPGained: gained, IsNewDay: isNewDay}, nil
	}

	return nil, apierr.Conflict("streak for account %s is being updated concurrently", accountID)
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func sameCalendarDay(a, b time.Time) bool {
	return startOfDay(a).Equal(startOfDay(b))
}

// calendarDaysBetween counts whole calendar days from a to b, independent
// of the time of day on either side.
func calendarDaysBetween(a, b time.Time) int {
	return int(startOfDay(b).Sub(startOfDay(a)) / (24 * time.Hour))
}
