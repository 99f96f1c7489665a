package db

import (
	"time"

	"gorm.io/gorm"
)

// MealLog 记录患者的一次用餐
// Date 只保留日期部分；Eaten 只能从 false 变为 true，不提供撤销
type MealLog struct {
	gorm.Model
	PatientID uint      `gorm:"index;not null"`
	Date      time.Time `gorm:"type:date;index;not null"`
	Meal      string    `gorm:"size:250;not null"`
	MealType  string    `gorm:"size:50"`
	Eaten     bool      `gorm:"not null;default:false"`
}

// TableName 固定表名
func (MealLog) TableName() string {
	return "meal_logs"
}
