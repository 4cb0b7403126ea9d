package app

import (
	"github.com/yungbote/payona-backend/internal/data/repos"
	"github.com/yungbote/payona-backend/internal/platform/logger"
	"gorm.io/gorm"
)

type Repos struct {
	User        repos.UserRepo
	Profile     repos.ProfileRepo
	Fingerprint repos.FingerprintRepo
	MealRequest repos.MealRequestRepo
	Match       repos.MatchRepo
}

func wireRepos(db *gorm.DB, log *logger.Logger) Repos {
	log.Info("Wiring repos...")
	return Repos{
		User:        repos.NewUserRepo(db, log),
		Profile:     repos.NewProfileRepo(db, log),
		Fingerprint: repos.NewFingerprintRepo(db, log),
		MealRequest: repos.NewMealRequestRepo(db, log),
		Match:       repos.NewMatchRepo(db, log),
	}
}
