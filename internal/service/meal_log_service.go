package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/prakriti/internal/ayurveda"
	"github.com/prakriti/internal/db"
	"gorm.io/gorm"
)

// ErrMealNameMissing 记录用餐时未填写食物名称
var ErrMealNameMissing = errors.New("meal name is required")

// MealLogService 负责用餐记录的创建、查询与“已食用”标记
type MealLogService struct {
	db  *gorm.DB
	now func() time.Time
}

// MealLogInput 定义记录用餐时的输入；Date 为零值时使用当天
type MealLogInput struct {
	PatientID uint
	Meal      string
	MealType  string
	Date      time.Time
}

// NewMealLogService 构造 MealLogService
func NewMealLogService(gdb *gorm.DB) *MealLogService {
	return &MealLogService{db: gdb, now: time.Now}
}

// Today 返回服务时钟下的当天零点
func (s *MealLogService) Today() time.Time {
	return normalizeToDate(s.now())
}

// Log 新建一条用餐记录，未知餐次归入 Snack
func (s *MealLogService) Log(input MealLogInput) (*db.MealLog, error) {
	meal := cleanText(input.Meal)
	if meal == "" {
		return nil, ErrMealNameMissing
	}

	slot, ok := ayurveda.ParseSlot(input.MealType)
	if !ok {
		slot = ayurveda.SlotSnack
	}

	date := input.Date
	if date.IsZero() {
		date = s.now()
	}

	entry := db.MealLog{
		PatientID: input.PatientID,
		Date:      normalizeToDate(date),
		Meal:      meal,
		MealType:  string(slot),
	}
	if err := s.db.Create(&entry).Error; err != nil {
		return nil, fmt.Errorf("create meal log: %w", err)
	}
	return &entry, nil
}

// ListForDay 返回某天的用餐记录，按记录顺序
func (s *MealLogService) ListForDay(patientID uint, day time.Time) ([]db.MealLog, error) {
	start := normalizeToDate(day)

	var logs []db.MealLog
	if err := s.db.Where("patient_id = ?", patientID).
		Where("date >= ? AND date < ?", start, start.AddDate(0, 0, 1)).
		Order("id ASC").
		Find(&logs).Error; err != nil {
		return nil, fmt.Errorf("list meal logs for day: %w", err)
	}
	return logs, nil
}

// ListBetween 返回 [start, end] 区间（包含首尾两天）内的用餐记录，日期倒序
func (s *MealLogService) ListBetween(patientID uint, start, end time.Time) ([]db.MealLog, error) {
	if patientID == 0 {
		return nil, fmt.Errorf("patient id is required")
	}
	if end.Before(start) {
		return nil, fmt.Errorf("invalid range: end before start")
	}

	from := normalizeToDate(start)
	until := normalizeToDate(end).AddDate(0, 0, 1)

	var logs []db.MealLog
	if err := s.db.Where("patient_id = ?", patientID).
		Where("date >= ? AND date < ?", from, until).
		Order("date DESC").
		Order("id DESC").
		Find(&logs).Error; err != nil {
		return nil, fmt.Errorf("list meal logs: %w", err)
	}
	return logs, nil
}

// ListRecent 返回最近 days 天（含今天）的用餐记录
func (s *MealLogService) ListRecent(patientID uint, days int) ([]db.MealLog, error) {
	if days < 0 {
		days = 0
	}
	today := s.Today()
	return s.ListBetween(patientID, today.AddDate(0, 0, -days), today)
}

// MarkEaten 将属于该患者的记录标记为已食用；其他患者的记录被静默忽略。
// 返回实际更新的条数。
func (s *MealLogService) MarkEaten(patientID uint, ids []uint) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}

	result := s.db.Model(&db.MealLog{}).
		Where("patient_id = ? AND id IN ?", patientID, ids).
		Where("eaten = ?", false).
		Update("eaten", true)
	if result.Error != nil {
		return 0, fmt.Errorf("mark meals eaten: %w", result.Error)
	}
	return result.RowsAffected, nil
}

func normalizeToDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
