package app

import (
	"gorm.io/gorm"

	"github.com/reelkit/reelkit-backend/internal/data/repos"
	"github.com/reelkit/reelkit-backend/internal/pkg/logger"
)

type Repos struct {
	Account       repos.AccountRepo
	Video         repos.VideoRepo
	VideoMetric   repos.VideoMetricRepo
	VideoNote     repos.VideoNoteRepo
	AccountMetric repos.AccountMetricRepo
	Idea          repos.IdeaRepo
	IdeaFolder    repos.IdeaFolderRepo
	Task          repos.TaskRepo
	Streak        repos.StreakRepo
	TrendReport   repos.TrendReportRepo
	Conversation  repos.ConversationRepo
	Message       repos.MessageRepo
	UserSettings  repos.UserSettingsRepo
}

func wireRepos(db *gorm.DB, log *logger.Logger) Repos {
	log.Info("Wiring repos...")
	return Repos{
		Account:       repos.NewAccountRepo(db, log),
		Video:         repos.NewVideoRepo(db, log),
		VideoMetric:   repos.NewVideoMetricRepo(db, log),
		VideoNote:     repos.NewVideoNoteRepo(db, log),
		AccountMetric: repos.NewAccountMetricRepo(db, log),
		Idea:          repos.NewIdeaRepo(db, log),
		IdeaFolder:    repos.NewIdeaFolderRepo(db, log),
		Task:          repos.NewTaskRepo(db, log),
		Streak:        repos.NewStreakRepo(db, log),
		TrendReport:   repos.NewTrendReportRepo(db, log),
		Conversation:  repos.NewConversationRepo(db, log),
		Message:       repos.NewMessageRepo(db, log),
		UserSettings:  repos.NewUserSettingsRepo(db, log),
	}
}
