package models

// TaskModel is a catalog entry describing one teleoperation task.
type TaskModel struct {
	ID               int     `json:"id"                gorm:"primaryKey;autoIncrement"`
	Name             string  `json:"name"              gorm:"type:varchar(200);not null"`
	Description      string  `json:"description"       gorm:"type:text;not null"`
	Difficulty       string  `json:"difficulty"        gorm:"type:varchar(50);not null"`
	ExpectedDuration int     `json:"expected_duration" gorm:"not null"`
	SuccessRate      float64 `json:"success_rate"      gorm:"not null"`
	Thumbnail        string  `json:"thumbnail"         gorm:"type:varchar(255);not null"`
}

func (TaskModel) TableName() string { return "tasks" }
