package models

// ProgressPhoto is a single dated shot in the student's gallery.
type ProgressPhoto struct {
	BaseModel
	StudentID string `gorm:"index;not null"`
	PhotoURL  string `gorm:"not null"`
	Path      string `gorm:"not null"` // storage key, needed for removal
}

// PhotoComparison pairs a before and an after shot. Both uploads must
// succeed before the row exists; there is never a comparison pointing at
// a missing image.
type PhotoComparison struct {
	BaseModel
	StudentID  string `gorm:"index;not null"`
	BeforeURL  string `gorm:"not null"`
	AfterURL   string `gorm:"not null"`
	BeforePath string `gorm:"not null"`
	AfterPath  string `gorm:"not null"`
}
