package db

import (
	"errors"
	"strings"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Patient 定义了患者模型
// Constitution/DigestiveStrength/ToxinPresence 由问卷分析写入，提交问卷前为空
// Allergy 为逗号分隔的过敏原列表
type Patient struct {
	gorm.Model
	Name              string `gorm:"size:150;not null"`
	Age               *int
	Email             string `gorm:"size:150;uniqueIndex;not null"`
	Password          string `gorm:"size:200;not null"`
	Constitution      string `gorm:"size:100"`
	DigestiveStrength string `gorm:"size:50"`
	ToxinPresence     string `gorm:"size:50"`
	Allergy           string `gorm:"size:250"`
	MealLogs          []MealLog
}

// HasProfile reports whether the questionnaire has been analysed at least once.
func (p Patient) HasProfile() bool {
	return strings.TrimSpace(p.Constitution) != ""
}

// AllergyList splits the stored allergy text into trimmed, non-blank entries.
func (p Patient) AllergyList() []string {
	parts := strings.Split(p.Allergy, ",")
	allergies := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			allergies = append(allergies, trimmed)
		}
	}
	return allergies
}

// NormalizeEmail lower-cases and trims an address so uniqueness is case-insensitive.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// EnsurePatient 存在性检查：若邮箱与密码均非空且不存在对应账号，则创建一个 bcrypt 哈希的患者。
func EnsurePatient(name, email, password string) error {
	trimmedEmail := NormalizeEmail(email)
	trimmedPassword := strings.TrimSpace(password)
	if trimmedEmail == "" || trimmedPassword == "" {
		return nil
	}

	if DB == nil {
		return errors.New("database not initialized")
	}

	var existing Patient
	if err := DB.Where("email = ?", trimmedEmail).First(&existing).Error; err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		hashed, err := bcrypt.GenerateFromPassword([]byte(trimmedPassword), bcrypt.DefaultCost)
		if err != nil {
			return err
		}

		name = strings.TrimSpace(name)
		if name == "" {
			name = "Demo Patient"
		}
		return DB.Create(&Patient{Name: name, Email: trimmedEmail, Password: string(hashed)}).Error
	}

	return nil
}
