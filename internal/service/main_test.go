package service

import (
	"fmt"
	"strings"
	"testing"

	"github.com/prakriti/internal/ayurveda"
	"github.com/prakriti/internal/db"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupServiceTestDB 为每个测试打开独立的内存数据库
func setupServiceTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	gdb, err := gorm.Open(sqlite.Open(fmt.Sprintf("file:%s?mode=memory&cache=shared", name)), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	if err := db.Migrate(gdb); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	t.Cleanup(func() {
		if sqlDB, err := gdb.DB(); err == nil {
			sqlDB.Close()
		}
	})
	return gdb
}

func testKnowledge(t *testing.T) *ayurveda.KnowledgeBase {
	t.Helper()
	kb, err := ayurveda.DefaultKnowledge()
	if err != nil {
		t.Fatalf("load knowledge: %v", err)
	}
	return kb
}

func registerTestPatient(t *testing.T, svc *PatientService, email string) *db.Patient {
	t.Helper()
	patient, err := svc.Register(RegistrationInput{Name: "Asha", Age: "34", Email: email, Password: "secret"})
	if err != nil {
		t.Fatalf("Register returned error: %v", err)
	}
	return patient
}
