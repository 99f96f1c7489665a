package service

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/prakriti/internal/ayurveda"
	"github.com/prakriti/internal/db"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	// ErrPatientNotFound 在指定患者不存在时返回
	ErrPatientNotFound = errors.New("patient not found")
	// ErrRegistrationIncomplete 缺少姓名、邮箱或密码
	ErrRegistrationIncomplete = errors.New("name, email and password are required")
	// ErrEmailTaken 邮箱已注册
	ErrEmailTaken = errors.New("email already registered")
	// ErrInvalidAge 年龄不是非负整数
	ErrInvalidAge = errors.New("age must be a whole number")
	// ErrInvalidCredentials 邮箱或密码错误
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrInvalidDigestiveOverride 手动填写的 Agni 超出可保存的长度
	ErrInvalidDigestiveOverride = fmt.Errorf("agni must be at most %d characters", maxProfileLabelLength)
)

// maxProfileLabelLength 与 patients 表中体质标签列的宽度一致
const maxProfileLabelLength = 50

// PatientService 负责患者注册、登录校验以及体质分析结果的保存
type PatientService struct {
	db *gorm.DB
}

// RegistrationInput 定义注册表单字段，Age 保留原始文本以便校验
type RegistrationInput struct {
	Name     string `form:"name" json:"name"`
	Age      string `form:"age" json:"age"`
	Email    string `form:"email" json:"email"`
	Password string `form:"password" json:"password"`
	Allergy  string `form:"allergy" json:"allergy"`
}

// NewPatientService 构造 PatientService
func NewPatientService(gdb *gorm.DB) *PatientService {
	return &PatientService{db: gdb}
}

// Register 创建新患者，密码以 bcrypt 哈希保存
func (s *PatientService) Register(input RegistrationInput) (*db.Patient, error) {
	name := cleanText(input.Name)
	email := db.NormalizeEmail(input.Email)
	if name == "" || email == "" || input.Password == "" {
		return nil, ErrRegistrationIncomplete
	}

	age, err := parseAge(input.Age)
	if err != nil {
		return nil, err
	}

	var count int64
	if err := s.db.Model(&db.Patient{}).Where("email = ?", email).Count(&count).Error; err != nil {
		return nil, fmt.Errorf("check email: %w", err)
	}
	if count > 0 {
		return nil, ErrEmailTaken
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	patient := db.Patient{
		Name:     name,
		Age:      age,
		Email:    email,
		Password: string(hashed),
		Allergy:  cleanText(input.Allergy),
	}
	if err := s.db.Create(&patient).Error; err != nil {
		return nil, fmt.Errorf("create patient: %w", err)
	}
	return &patient, nil
}

// Authenticate 校验邮箱与密码，失败统一返回 ErrInvalidCredentials
func (s *PatientService) Authenticate(email, password string) (*db.Patient, error) {
	patient, err := s.FindByEmail(email)
	if err != nil {
		if errors.Is(err, ErrPatientNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(patient.Password), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	return patient, nil
}

// Get 根据 ID 获取患者
func (s *PatientService) Get(id uint) (*db.Patient, error) {
	var patient db.Patient
	if err := s.db.First(&patient, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPatientNotFound
		}
		return nil, fmt.Errorf("get patient: %w", err)
	}
	return &patient, nil
}

// FindByEmail 根据邮箱（不区分大小写）查找患者
func (s *PatientService) FindByEmail(email string) (*db.Patient, error) {
	var patient db.Patient
	if err := s.db.Where("email = ?", db.NormalizeEmail(email)).First(&patient).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPatientNotFound
		}
		return nil, fmt.Errorf("find patient: %w", err)
	}
	return &patient, nil
}

// SaveProfile 写入体质分析结果，这是派生字段唯一的修改入口
func (s *PatientService) SaveProfile(id uint, profile ayurveda.Profile) (*db.Patient, error) {
	result := s.db.Model(&db.Patient{}).Where("id = ?", id).Updates(map[string]any{
		"constitution":       profile.Constitution,
		"digestive_strength": profile.DigestiveStrength,
		"toxin_presence":     profile.ToxinPresence,
	})
	if result.Error != nil {
		return nil, fmt.Errorf("save profile: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return nil, ErrPatientNotFound
	}
	return s.Get(id)
}

// SubmitQuestionnaire 分析问卷并保存结果
func (s *PatientService) SubmitQuestionnaire(id uint, answers ayurveda.Answers) (*db.Patient, error) {
	answers.DigestiveOverride = cleanText(answers.DigestiveOverride)
	if utf8.RuneCountInString(answers.DigestiveOverride) > maxProfileLabelLength {
		return nil, ErrInvalidDigestiveOverride
	}
	return s.SaveProfile(id, ayurveda.Classify(answers))
}

// ProfileOf 返回患者当前保存的体质标签
func ProfileOf(p db.Patient) ayurveda.Profile {
	return ayurveda.Profile{
		Constitution:      p.Constitution,
		DigestiveStrength: p.DigestiveStrength,
		ToxinPresence:     p.ToxinPresence,
	}
}

func parseAge(raw string) (*int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	age, err := strconv.Atoi(raw)
	if err != nil || age < 0 {
		return nil, fmt.Errorf("%w: %q", ErrInvalidAge, raw)
	}
	return &age, nil
}
