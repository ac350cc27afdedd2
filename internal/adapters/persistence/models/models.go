package models

import (
	"time"

	"gorm.io/gorm"
	"gorm.io/plugin/soft_delete"
)

// ============================================================
// Enum values
// ============================================================

// Asset types
const (
	TypeDesktop     = "DESKTOP"
	TypeLaptop      = "LAPTOP"
	TypeMonitor     = "MONITOR"
	TypeMobilePhone = "MOBILE_PHONE"
	TypeTablet      = "TABLET"
)

// Asset lifecycle states
const (
	StateAvailable = "AVAILABLE"
	StateBuilding  = "BUILDING"
	StateReadyToGo = "READY_TO_GO"
	StateIssued    = "ISSUED"
	StateSignedOut = "SIGNED_OUT"
	StateBuilt     = "BUILT"
)

// Asset custody status (coarse stage, distinct from state)
const (
	StatusHolding  = "holding"
	StatusStock    = "stock"
	StatusActive   = "active"
	StatusRecycled = "recycled"
)

// Assignment types
const (
	AssignmentIndividual = "INDIVIDUAL"
	AssignmentShared     = "SHARED"
)

// AssetTypes returns the fixed, fully-enumerated type list in report order.
// Aggregate endpoints must emit every entry, zero counts included.
func AssetTypes() []string {
	return []string{TypeDesktop, TypeLaptop, TypeMonitor, TypeMobilePhone, TypeTablet}
}

// AssetStates returns all known lifecycle states in report order.
func AssetStates() []string {
	return []string{StateAvailable, StateBuilding, StateReadyToGo, StateIssued, StateSignedOut, StateBuilt}
}

// IsValidType reports whether t is a known asset type.
func IsValidType(t string) bool {
	switch t {
	case TypeDesktop, TypeLaptop, TypeMonitor, TypeMobilePhone, TypeTablet:
		return true
	}
	return false
}

// IsValidState reports whether s is a known lifecycle state.
func IsValidState(s string) bool {
	switch s {
	case StateAvailable, StateBuilding, StateReadyToGo, StateIssued, StateSignedOut, StateBuilt:
		return true
	}
	return false
}

// ============================================================
// Auth & User Tables
// ============================================================

// User represents users table
type User struct {
	ID           uint           `gorm:"primaryKey" json:"id"`
	EmployeeID   string         `gorm:"uniqueIndex;size:10;not null" json:"employee_id"`
	Name         string         `gorm:"size:100;not null" json:"name"`
	Email        string         `gorm:"uniqueIndex;size:100;not null" json:"email"`
	Password     string         `gorm:"size:255;not null" json:"-"`
	Role         string         `gorm:"size:20;default:'USER'" json:"role"`
	Department   string         `gorm:"size:100" json:"department"`
	DepartmentID *uint          `gorm:"index" json:"department_id"`
	LocationID   *uint          `gorm:"index" json:"location_id"`
	IsActive     bool           `json:"is_active"`
	CreatedAt    time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`
}

func (User) TableName() string {
	return "users"
}

// User roles
const (
	RoleAdmin = "ADMIN"
	RoleUser  = "USER"
)

// UserResponse DTO
type UserResponse struct {
	ID           uint      `json:"id"`
	EmployeeID   string    `json:"employee_id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	Role         string    `json:"role"`
	Department   string    `json:"department"`
	DepartmentID *uint     `json:"department_id,omitempty"`
	LocationID   *uint     `json:"location_id,omitempty"`
	IsActive     bool      `json:"is_active"`
	CreatedAt    time.Time `json:"created_at"`
}

func (u *User) ToResponse() *UserResponse {
	return &UserResponse{
		ID:           u.ID,
		EmployeeID:   u.EmployeeID,
		Name:         u.Name,
		Email:        u.Email,
		Role:         u.Role,
		Department:   u.Department,
		DepartmentID: u.DepartmentID,
		LocationID:   u.LocationID,
		IsActive:     u.IsActive,
		CreatedAt:    u.CreatedAt,
	}
}

// RefreshToken represents refresh_tokens table
type RefreshToken struct {
	ID        uint       `gorm:"primaryKey" json:"id"`
	UserID    uint       `gorm:"index;not null" json:"user_id"`
	TokenHash string     `gorm:"size:255;not null;index" json:"-"`
	ExpiresAt time.Time  `gorm:"not null" json:"expires_at"`
	CreatedAt time.Time  `gorm:"autoCreateTime" json:"created_at"`
	RevokedAt *time.Time `gorm:"index" json:"revoked_at"`
	User      User       `gorm:"foreignKey:UserID" json:"-"`
}

func (RefreshToken) TableName() string {
	return "refresh_tokens"
}

func (rt *RefreshToken) IsRevoked() bool {
	return rt.RevokedAt != nil
}

func (rt *RefreshToken) IsExpired() bool {
	return time.Now().After(rt.ExpiresAt)
}

// ============================================================
// Master Tables
// ============================================================

// Location represents locations table (Master)
type Location struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	Name        string         `gorm:"size:100;uniqueIndex;not null" json:"name"`
	Description string         `gorm:"type:text" json:"description"`
	IsActive    bool           `json:"is_active"`
	CreatedAt   time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Location) TableName() string {
	return "locations"
}

// Department represents departments table (Master)
type Department struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	Name        string         `gorm:"size:100;uniqueIndex;not null" json:"name"`
	Description string         `gorm:"type:text" json:"description"`
	IsActive    bool           `json:"is_active"`
	CreatedAt   time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Department) TableName() string {
	return "departments"
}

// Setting represents settings table (key/value, e.g. chart cache TTL)
type Setting struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Key       string    `gorm:"size:100;uniqueIndex;not null;column:setting_key" json:"key"`
	Value     string    `gorm:"size:255;not null" json:"value"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Setting) TableName() string {
	return "settings"
}

// Setting keys
const (
	SettingChartCacheMinutes = "chart_cache_minutes"
)

// ============================================================
// Main Tables
// ============================================================

// Asset represents assets table (main table).
// Uniqueness of asset/serial numbers is scoped to live rows: deleted_at
// uses the unix-timestamp soft delete (0 = live) and participates in the
// unique indexes, so disposing an asset frees its numbers for reuse.
type Asset struct {
	ID             uint                  `gorm:"primaryKey" json:"id"`
	AssetNumber    *string               `gorm:"size:50;uniqueIndex:udx_assets_asset_number" json:"asset_number"`
	Type           string                `gorm:"size:20;not null;index" json:"type"`
	State          string                `gorm:"size:20;not null;index" json:"state"`
	Status         string                `gorm:"size:20;not null;default:'stock'" json:"status"`
	SerialNumber   string                `gorm:"size:100;not null;uniqueIndex:udx_assets_serial_number" json:"serial_number"`
	Description    string                `gorm:"type:text" json:"description"`
	PurchasePrice  float64               `gorm:"type:decimal(12,2)" json:"purchase_price"`
	PurchaseDate   time.Time             `json:"purchase_date"`
	LocationID     *uint                 `gorm:"index" json:"location_id"`
	AssignmentType string                `gorm:"size:20;not null;default:'INDIVIDUAL'" json:"assignment_type"`
	AssignedTo     string                `gorm:"size:100" json:"assigned_to"`
	EmployeeID     string                `gorm:"size:10" json:"employee_id"`
	Department     string                `gorm:"size:100" json:"department"`
	CreatedAt      time.Time             `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt      time.Time             `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt      soft_delete.DeletedAt `gorm:"uniqueIndex:udx_assets_asset_number;uniqueIndex:udx_assets_serial_number" json:"-"`

	// Relations
	Location *Location      `gorm:"foreignKey:LocationID" json:"location,omitempty"`
	History  []AssetHistory `gorm:"foreignKey:AssetID" json:"history,omitempty"`
}

func (Asset) TableName() string {
	return "assets"
}

// Assignee bundles the denormalized assignee columns kept on the asset row.
// Call sites go through this accessor so a future normalization onto the
// users table doesn't ripple through them.
type Assignee struct {
	Name       string `json:"name"`
	EmployeeID string `json:"employee_id"`
	Department string `json:"department"`
}

// GetAssignee returns the denormalized assignee info.
func (a *Asset) GetAssignee() Assignee {
	return Assignee{
		Name:       a.AssignedTo,
		EmployeeID: a.EmployeeID,
		Department: a.Department,
	}
}

// SetAssignee writes the denormalized assignee columns.
func (a *Asset) SetAssignee(as Assignee) {
	a.AssignedTo = as.Name
	a.EmployeeID = as.EmployeeID
	a.Department = as.Department
}

// AssetResponse DTO
type AssetResponse struct {
	ID             uint      `json:"id"`
	AssetNumber    *string   `json:"asset_number"`
	Type           string    `json:"type"`
	State          string    `json:"state"`
	Status         string    `json:"status"`
	SerialNumber   string    `json:"serial_number"`
	Description    string    `json:"description"`
	PurchasePrice  float64   `json:"purchase_price"`
	PurchaseDate   time.Time `json:"purchase_date"`
	LocationID     *uint     `json:"location_id"`
	LocationName   string    `json:"location_name,omitempty"`
	AssignmentType string    `json:"assignment_type"`
	AssignedTo     string    `json:"assigned_to,omitempty"`
	EmployeeID     string    `json:"employee_id,omitempty"`
	Department     string    `json:"department,omitempty"`
	LastEditedBy   string    `json:"last_edited_by,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

func (a *Asset) ToResponse() *AssetResponse {
	resp := &AssetResponse{
		ID:             a.ID,
		AssetNumber:    a.AssetNumber,
		Type:           a.Type,
		State:          a.State,
		Status:         a.Status,
		SerialNumber:   a.SerialNumber,
		Description:    a.Description,
		PurchasePrice:  a.PurchasePrice,
		PurchaseDate:   a.PurchaseDate,
		LocationID:     a.LocationID,
		AssignmentType: a.AssignmentType,
		AssignedTo:     a.AssignedTo,
		EmployeeID:     a.EmployeeID,
		Department:     a.Department,
		CreatedAt:      a.CreatedAt,
		UpdatedAt:      a.UpdatedAt,
	}

	if a.Location != nil {
		resp.LocationName = a.Location.Name
	}

	return resp
}

// HoldingAsset represents holding_assets table (imported, awaiting number assignment)
type HoldingAsset struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	Type           string    `gorm:"size:20;not null;index" json:"type"`
	Status         string    `gorm:"size:20;not null;default:'holding'" json:"status"`
	SerialNumber   string    `gorm:"size:100;not null;index" json:"serial_number"`
	Description    string    `gorm:"type:text" json:"description"`
	PurchasePrice  float64   `gorm:"type:decimal(12,2)" json:"purchase_price"`
	PurchaseDate   time.Time `json:"purchase_date"`
	LocationID     *uint     `gorm:"index" json:"location_id"`
	AssignmentType string    `gorm:"size:20;not null;default:'INDIVIDUAL'" json:"assignment_type"`
	CreatedAt      time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt      time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	// Relations
	Location *Location `gorm:"foreignKey:LocationID" json:"location,omitempty"`
}

func (HoldingAsset) TableName() string {
	return "holding_assets"
}

// AssetHistory represents asset_histories table (append-only audit trail)
type AssetHistory struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	AssetID       uint      `gorm:"not null;index" json:"asset_id"`
	PreviousState *string   `gorm:"size:20" json:"previous_state"`
	NewState      string    `gorm:"size:20;not null" json:"new_state"`
	ChangedBy     *uint     `gorm:"index" json:"changed_by"`
	ChangeReason  string    `gorm:"type:text" json:"change_reason"`
	Details       string    `gorm:"type:text" json:"details"`
	CreatedAt     time.Time `gorm:"autoCreateTime" json:"created_at"`

	// Relations
	Asset *Asset `gorm:"foreignKey:AssetID" json:"asset,omitempty"`
	User  *User  `gorm:"foreignKey:ChangedBy" json:"user,omitempty"`
}

func (AssetHistory) TableName() string {
	return "asset_histories"
}

// ============================================================
// Auto Migration
// ============================================================

// AutoMigrate runs auto migration for all tables
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		// Auth
		&User{},
		&RefreshToken{},
		// Master
		&Location{},
		&Department{},
		&Setting{},
		// Main
		&Asset{},
		&HoldingAsset{},
		&AssetHistory{},
	)
}
