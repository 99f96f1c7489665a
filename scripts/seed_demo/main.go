package main

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"time"

	"github.com/prakriti/internal/ayurveda"
	"github.com/prakriti/internal/config"
	"github.com/prakriti/internal/db"
	"github.com/prakriti/internal/service"
	"gorm.io/gorm"
)

// 演示数据生成器：创建一个已完成问卷的患者，并写入最近一周的用餐记录
func main() {
	email := flag.String("email", "demo@prakriti.local", "demo patient email")
	password := flag.String("password", "demo123", "demo patient password")
	flag.Parse()

	cfg := config.Load()
	if err := db.Init(cfg.DatabaseDriver, cfg.DatabaseTarget()); err != nil {
		log.Fatal("数据库初始化失败:", err)
	}

	kb, err := ayurveda.LoadKnowledge(cfg.FoodDataPath)
	if err != nil {
		log.Fatal("加载食物数据失败:", err)
	}

	fmt.Println("开始生成演示数据...")
	patient, created, err := seedDemo(db.DB, kb, *email, *password, time.Now())
	if err != nil {
		log.Fatal("生成演示数据失败:", err)
	}
	if !created {
		fmt.Println("患者已存在，跳过创建")
		return
	}

	fmt.Println("演示数据生成完成！")
	fmt.Printf("邮箱: %s (密码: %s)\n", patient.Email, *password)
	fmt.Printf("体质: %s / %s / %s\n", patient.Constitution, patient.DigestiveStrength, patient.ToxinPresence)
}

// seedDemo 创建演示患者并按计划写入 7 天的用餐记录，已存在时不做任何修改
func seedDemo(gdb *gorm.DB, kb *ayurveda.KnowledgeBase, email, password string, now time.Time) (*db.Patient, bool, error) {
	patients := service.NewPatientService(gdb)
	if existing, err := patients.FindByEmail(email); err == nil {
		return existing, false, nil
	} else if !errors.Is(err, service.ErrPatientNotFound) {
		return nil, false, err
	}

	patient, err := patients.Register(service.RegistrationInput{
		Name:     "Demo Patient",
		Age:      "32",
		Email:    email,
		Password: password,
		Allergy:  "peanut",
	})
	if err != nil {
		return nil, false, err
	}

	patient, err = patients.SubmitQuestionnaire(patient.ID, ayurveda.Answers{
		Sleep:           "light",
		Skin:            "dry",
		Digestion:       "irregular",
		Appetite:        "variable",
		BodyBuild:       "thin",
		TempSensitivity: "cold",
		Mood:            "calm",
	})
	if err != nil {
		return nil, false, err
	}

	plan := kb.GeneratePlanFor(service.ProfileOf(*patient))
	meals := service.NewMealLogService(gdb)
	for offset := 6; offset >= 0; offset-- {
		day := now.AddDate(0, 0, -offset)
		for _, slot := range plan.Slots {
			if len(slot.Foods) == 0 {
				continue
			}
			food := slot.Foods[offset%len(slot.Foods)]
			entry, err := meals.Log(service.MealLogInput{PatientID: patient.ID, Meal: food, MealType: string(slot.Slot), Date: day})
			if err != nil {
				return nil, false, err
			}
			// 今天之前的记录视为已食用
			if offset > 0 {
				if _, err := meals.MarkEaten(patient.ID, []uint{entry.ID}); err != nil {
					return nil, false, err
				}
			}
		}
	}

	return patient, true, nil
}
