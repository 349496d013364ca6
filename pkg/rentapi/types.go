package rentapi

import "time"

// LoginResult is the decoded payload of POST /api/auth/login.
type LoginResult struct {
	Token        string `json:"token"`
	RefreshToken string `json:"refreshToken"`
	UserID       int64  `json:"userId"`
	Role         string `json:"role"`
}

// RefreshResult is the decoded payload of POST /api/auth/refresh.
type RefreshResult struct {
	Token  string `json:"token"`
	UserID int64  `json:"userId"`
}

// UserProfile is a full user record from the user-management API.
type UserProfile struct {
	ID          int64     `json:"id"`
	FullName    string    `json:"fullName"`
	Email       string    `json:"email"`
	PhoneNumber string    `json:"phoneNumber"`
	AvatarURL   *string   `json:"avatarUrl"`
	Role        string    `json:"role"`
	CreatedAt   time.Time `json:"createdAt"`
}

// Vehicle is a fleet vehicle record.
type Vehicle struct {
	ID           int64    `json:"id"`
	Make         string   `json:"make"`
	Model        string   `json:"model"`
	Year         int      `json:"year"`
	LicensePlate string   `json:"licensePlate"`
	DailyRate    float64  `json:"dailyRate"`
	Status       string   `json:"status"` // AVAILABLE, RENTED, MAINTENANCE
	ImageURLs    []string `json:"imageUrls"`
}

// VehicleInput carries the writable fields of a vehicle.
type VehicleInput struct {
	Make         string  `json:"make"`
	Model        string  `json:"model"`
	Year         int     `json:"year"`
	LicensePlate string  `json:"licensePlate"`
	DailyRate    float64 `json:"dailyRate"`
	Status       string  `json:"status,omitempty"`
}

// Booking is a rental booking record.
type Booking struct {
	ID         int64     `json:"id"`
	UserID     int64     `json:"userId"`
	VehicleID  int64     `json:"vehicleId"`
	StartDate  time.Time `json:"startDate"`
	EndDate    time.Time `json:"endDate"`
	TotalPrice float64   `json:"totalPrice"`
	Status     string    `json:"status"` // PENDING, CONFIRMED, ACTIVE, COMPLETED, CANCELLED
}

// VehicleImage is an uploaded vehicle photo.
type VehicleImage struct {
	ID        int64  `json:"id"`
	VehicleID int64  `json:"vehicleId"`
	URL       string `json:"url"`
	Primary   bool   `json:"primary"`
}

// Notification is a platform notification visible to administrators.
type Notification struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"userId"`
	Title     string    `json:"title"`
	Body      string    `json:"body"`
	Read      bool      `json:"read"`
	CreatedAt time.Time `json:"createdAt"`
}

// DashboardStats is the aggregate payload backing the dashboard stat cards.
type DashboardStats struct {
	TotalUsers       int     `json:"totalUsers"`
	TotalVehicles    int     `json:"totalVehicles"`
	ActiveBookings   int     `json:"activeBookings"`
	MonthlyRevenue   float64 `json:"monthlyRevenue"`
	PendingBookings  int     `json:"pendingBookings"`
	VehiclesOnRental int     `json:"vehiclesOnRental"`
}

// listEnvelope is the upstream pagination wrapper for list endpoints.
type listEnvelope[T any] struct {
	Items []T `json:"items"`
	Total int `json:"total"`
}
