package database

import (
	"fmt"
	"log"

	"akademisi_backend/internal/config"
	"akademisi_backend/internal/model"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func InitDB(cfg *config.DatabaseConfig, migrate bool) (*gorm.DB, error) {
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=%s&parseTime=%t&loc=Local",
		cfg.User,
		cfg.Password,
		cfg.Host,
		cfg.Port,
		cfg.DBName,
		cfg.Charset,
		cfg.ParseTime,
	)

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Info),
		TranslateError: true,
	})

	if err != nil {
		return nil, err
	}

	log.Println("Database connection established")

	if !migrate {
		return db, nil
	}

	err = db.AutoMigrate(
		&model.User{},
		&model.RawRegistrationLog{},
		&model.Question{},
		&model.Exam{},
		&model.ExamResult{},
		&model.ResultAnswer{},
	)

	if err != nil {
		return nil, err
	}

	log.Println("Database migration completed")

	// 空库时插入演示账号，便于本地联调
	var count int64
	db.Model(&model.User{}).Count(&count)
	if count == 0 {
		demoUsers := []model.User{
			{Name: "Demo Teacher", Email: "teacher@akademisi.local", Password: "teacher123", Role: model.Teacher},
			{Name: "Demo Student", Email: "student@akademisi.local", Password: "student123", Role: model.Student, Kelas: "XII IPA 1"},
			{Name: "Demo Admin", Email: "admin@akademisi.local", Password: "admin123", Role: model.Admin},
		}
		for _, u := range demoUsers {
			hashed, err := bcrypt.GenerateFromPassword([]byte(u.Password), bcrypt.DefaultCost)
			if err != nil {
				continue
			}
			u.Password = string(hashed)
			db.Create(&u)
		}
	}

	return db, nil
}
