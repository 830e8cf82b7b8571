package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type Admin struct {
	ID           string         `gorm:"size:36;primaryKey"       json:"id"`
	Name         string         `gorm:"size:100;not null"        json:"name"`
	Email        string         `gorm:"size:255;not null;uniqueIndex" json:"email"`
	PasswordHash string         `gorm:"not null"                 json:"-"`
	Role         Role           `gorm:"size:20;not null;default:admin" json:"role"`
	RefreshTokens []RefreshToken `gorm:"foreignKey:AdminID"      json:"-"`
	CreatedAt    time.Time      `json:"createdAt"`
	UpdatedAt    time.Time      `json:"updatedAt"`
}

func (a *Admin) BeforeCreate(*gorm.DB) error {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	return nil
}

// RefreshToken is the server-side record of one issued refresh credential.
// Only the sha256 of the JWT is stored; presence of an unexpired, unrevoked
// row is what makes the credential acceptable.
type RefreshToken struct {
	ID        string    `gorm:"size:36;primaryKey"        json:"id"`
	AdminID   string    `gorm:"size:36;not null;index"    json:"adminId"`
	TokenHash string    `gorm:"size:64;not null;uniqueIndex" json:"-"`
	JTI       string    `gorm:"size:36;not null;uniqueIndex" json:"jti"`
	ExpiresAt int64     `gorm:"not null"                  json:"expiresAt"`
	Revoked   bool      `gorm:"not null;default:false"    json:"revoked"`
	CreatedAt time.Time `json:"createdAt"`
}

func (t *RefreshToken) BeforeCreate(*gorm.DB) error {
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	return nil
}

type Category struct {
	ID        string    `gorm:"size:36;primaryKey"           json:"id"`
	Name      string    `gorm:"size:50;not null;uniqueIndex" json:"name"`
	Slug      string    `gorm:"size:60;not null;uniqueIndex" json:"slug"`
	IsActive  bool      `gorm:"not null;default:true"        json:"isActive"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (c *Category) BeforeCreate(*gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	return nil
}

// SubCategory names are unique per owning category, so the same name may
// exist under different categories.
type SubCategory struct {
	ID         string    `gorm:"size:36;primaryKey"                                  json:"id"`
	Name       string    `gorm:"size:50;not null;uniqueIndex:idx_subcategory_name_category" json:"name"`
	Slug       string    `gorm:"size:60;not null;uniqueIndex:idx_subcategory_slug_category" json:"slug"`
	CategoryID string    `gorm:"size:36;not null;uniqueIndex:idx_subcategory_name_category;uniqueIndex:idx_subcategory_slug_category" json:"categoryId"`
	Category   *Category `gorm:"foreignKey:CategoryID"                               json:"category,omitempty"`
	IsActive   bool      `gorm:"not null;default:true"                               json:"isActive"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

func (s *SubCategory) BeforeCreate(*gorm.DB) error {
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	return nil
}

type Product struct {
	ID            string          `gorm:"size:36;primaryKey"                                    json:"id"`
	Name          string          `gorm:"size:100;not null;uniqueIndex:idx_product_name_subcategory" json:"name"`
	Slug          string          `gorm:"size:110;not null;uniqueIndex:idx_product_slug_subcategory" json:"slug"`
	Brand         string          `gorm:"size:100"                                              json:"brand,omitempty"`
	Price         decimal.Decimal `gorm:"type:decimal(16,2);not null"                           json:"price"`
	CategoryID    string          `gorm:"size:36;not null;index"                                json:"categoryId"`
	Category      *Category       `gorm:"foreignKey:CategoryID"                                 json:"category,omitempty"`
	SubCategoryID string          `gorm:"size:36;not null;uniqueIndex:idx_product_name_subcategory;uniqueIndex:idx_product_slug_subcategory" json:"subcategoryId"`
	SubCategory   *SubCategory    `gorm:"foreignKey:SubCategoryID"                              json:"subcategory,omitempty"`
	ExternalURL   string          `gorm:"size:2048;not null"                                    json:"externalUrl"`
	IsActive      bool            `gorm:"not null;default:true"                                 json:"isActive"`
	CreatedAt     time.Time       `json:"createdAt"`
	UpdatedAt     time.Time       `json:"updatedAt"`
}

func (p *Product) BeforeCreate(*gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return nil
}

// All returns every model in migration order.
func All() []any {
	return []any{&Admin{}, &RefreshToken{}, &Category{}, &SubCategory{}, &Product{}}
}
