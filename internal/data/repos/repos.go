package repos

import (
	"github.com/yungbote/payona-backend/internal/data/repos/meals"
	"github.com/yungbote/payona-backend/internal/data/repos/user"
	"github.com/yungbote/payona-backend/internal/platform/logger"
	"gorm.io/gorm"
)

type UserRepo = user.UserRepo
type ProfileRepo = user.ProfileRepo

type FingerprintRepo = meals.FingerprintRepo
type MealRequestRepo = meals.MealRequestRepo
type MatchRepo = meals.MatchRepo

type ListingFilter = meals.ListingFilter

func NewUserRepo(db *gorm.DB, baseLog *logger.Logger) UserRepo {
	return user.NewUserRepo(db, baseLog)
}

func NewProfileRepo(db *gorm.DB, baseLog *logger.Logger) ProfileRepo {
	return user.NewProfileRepo(db, baseLog)
}

func NewFingerprintRepo(db *gorm.DB, baseLog *logger.Logger) FingerprintRepo {
	return meals.NewFingerprintRepo(db, baseLog)
}

func NewMealRequestRepo(db *gorm.DB, baseLog *logger.Logger) MealRequestRepo {
	return meals.NewMealRequestRepo(db, baseLog)
}

func NewMatchRepo(db *gorm.DB, baseLog *logger.Logger) MatchRepo {
	return meals.NewMatchRepo(db, baseLog)
}
