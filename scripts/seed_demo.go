// 手动灌入演示数据脚本
//
// 插入一套示例题库和一场进行中的考试，便于前端联调和本地演示。
// 已有同名考试时跳过，不会重复插入。
//
// 用法: go run scripts/seed_demo.go

package main

import (
	"log"
	"os"
	"time"

	"akademisi_backend/internal/config"
	"akademisi_backend/internal/model"
	"akademisi_backend/pkg/database"
	"akademisi_backend/pkg/logger"

	"gopkg.in/yaml.v3"
)

func main() {
	data, err := os.ReadFile("configs/config.yaml")
	if err != nil {
		log.Fatalf("无法读取配置文件: %v", err)
	}

	var cfg config.Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		log.Fatalf("解析配置文件失败: %v", err)
	}

	logger.InitLogger(&cfg)

	db, err := database.InitDB(&cfg.Database, false)
	if err != nil {
		log.Fatalf("数据库连接失败: %v", err)
	}

	const demoTitle = "Ujian Demo Matematika"

	var count int64
	db.Model(&model.Exam{}).Where("title = ?", demoTitle).Count(&count)
	if count > 0 {
		log.Println("演示考试已存在，跳过")
		return
	}

	var teacher model.User
	if err := db.Where("role = ?", model.Teacher).First(&teacher).Error; err != nil {
		log.Fatalf("没有可用的教师账号，请先启动主程序完成初始化: %v", err)
	}

	questions := []model.Question{
		{
			Content:       "2 + 2 = ?",
			Options:       []string{"3", "4", "5", "6"},
			CorrectAnswer: 1,
			Explanation:   "基础加法",
			TeacherID:     teacher.ID,
		},
		{
			Content:       "一个三角形的内角和是多少度？",
			Options:       []string{"90", "180", "270", "360"},
			CorrectAnswer: 1,
			TeacherID:     teacher.ID,
		},
		{
			Content:       "√144 = ?",
			Options:       []string{"10", "11", "12", "14"},
			CorrectAnswer: 2,
			TeacherID:     teacher.ID,
		},
	}

	ids := make([]uint, 0, len(questions))
	for i := range questions {
		if err := db.Create(&questions[i]).Error; err != nil {
			log.Fatalf("插入题目失败: %v", err)
		}
		ids = append(ids, questions[i].ID)
	}

	exam := model.Exam{
		Title:           demoTitle,
		Description:     "演示用数学小测，提交后立即出分",
		StartTime:       time.Now().Add(-5 * time.Minute),
		DurationMinutes: 60,
		QuestionIDs:     ids,
		TeacherID:       teacher.ID,
		IsActive:        true,
	}
	if err := db.Create(&exam).Error; err != nil {
		log.Fatalf("插入考试失败: %v", err)
	}

	log.Printf("演示数据写入完成，考试ID=%d，共%d道题", exam.ID, len(ids))
}
