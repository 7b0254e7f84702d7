package todo

import "time"

// Todo — одна запись списка дел.
type Todo struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	Content     string    `json:"content" gorm:"not null"`
	Completed   bool      `json:"completed" gorm:"default:false"`
	DateCreated time.Time `json:"date_created" gorm:"column:date_created;index"`
}
