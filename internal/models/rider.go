package models

var VehicleTypes = []string{"bike", "motorcycle", "car", "scooter"}

// Rider.UserID links to the rider's app account once one exists.
type Rider struct {
	Base
	UserID           *string  `gorm:"type:uuid;index" json:"user_id"`
	Name             string   `gorm:"size:100;not null" json:"name"`
	Phone            string   `gorm:"size:50" json:"phone"`
	VehicleType      string   `gorm:"size:20" json:"vehicle_type"`
	VehicleNumber    string   `gorm:"size:50" json:"vehicle_number"`
	LicenseNumber    string   `gorm:"size:50" json:"license_number"`
	CurrentLatitude  *float64 `json:"current_latitude"`
	CurrentLongitude *float64 `json:"current_longitude"`
	IsAvailable      bool     `json:"is_available"`
	IsActive         bool     `json:"is_active"`
}
