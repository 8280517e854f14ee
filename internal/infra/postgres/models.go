package postgres

import (
	"time"

	"classifieds-service/internal/domain"

	"github.com/lib/pq"
)

// UserModel is the GORM model for the users table. User CRUD lives in
// another service; this service only joins the owner's public profile
// into ad reads.
type UserModel struct {
	ID    string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name  string `gorm:"type:varchar(200);not null"`
	Email string `gorm:"type:varchar(200);not null"`
	Phone string `gorm:"type:varchar(30)"`
}

// TableName returns the table name for UserModel.
func (UserModel) TableName() string {
	return "users"
}

// ToProfile converts UserModel to the public owner profile.
func (m *UserModel) ToProfile() *domain.OwnerProfile {
	return &domain.OwnerProfile{
		ID:    m.ID,
		Name:  m.Name,
		Email: m.Email,
		Phone: m.Phone,
	}
}

// AdModel is the GORM model for the ads table (the base record).
// Each row has at most one row in exactly one of the three detail
// tables, selected by Category; the cardinality is enforced by the
// application, not a foreign key, because the detail table is chosen
// at runtime.
type AdModel struct {
	ID          string         `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Title       string         `gorm:"type:varchar(200);not null"`
	Description string         `gorm:"type:text;not null"`
	Price       float64        `gorm:"type:decimal(14,2);not null;index"`
	Images      pq.StringArray `gorm:"type:text[]"`
	Location    string         `gorm:"type:varchar(300);not null"`
	Category    string         `gorm:"type:varchar(30);not null;index"`
	IsActive    bool           `gorm:"not null;default:true;index"`
	PostedBy    string         `gorm:"type:uuid;not null;index"`
	CreatedAt   time.Time      `gorm:"autoCreateTime;index"`
	UpdatedAt   time.Time      `gorm:"autoUpdateTime"`

	// Joined associations (read path only)
	Owner      *UserModel                `gorm:"foreignKey:PostedBy;references:ID"`
	Property   *PropertyAdModel          `gorm:"foreignKey:AdID;references:ID"`
	Vehicle    *VehicleAdModel           `gorm:"foreignKey:AdID;references:ID"`
	Commercial *CommercialVehicleAdModel `gorm:"foreignKey:AdID;references:ID"`
}

// TableName returns the table name for AdModel.
func (AdModel) TableName() string {
	return "ads"
}

// PropertyAdModel is the GORM model for the property_ads detail table.
type PropertyAdModel struct {
	ID           string  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	AdID         string  `gorm:"type:uuid;not null;uniqueIndex"`
	PropertyType string  `gorm:"type:varchar(50);not null"`
	Bedrooms     int     `gorm:"not null;default:0"`
	Bathrooms    int     `gorm:"not null;default:0"`
	AreaSqft     float64 `gorm:"type:decimal(10,2);not null;default:0"`
	Floor        *int
	IsFurnished  bool           `gorm:"not null;default:false"`
	HasParking   bool           `gorm:"not null;default:false"`
	HasGarden    bool           `gorm:"not null;default:false"`
	Amenities    pq.StringArray `gorm:"type:text[]"`
}

// TableName returns the table name for PropertyAdModel.
func (PropertyAdModel) TableName() string {
	return "property_ads"
}

// VehicleAdModel is the GORM model for the vehicle_ads detail table,
// shared by PRIVATE_VEHICLE and TWO_WHEELER ads.
type VehicleAdModel struct {
	ID                 string         `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	AdID               string         `gorm:"type:uuid;not null;uniqueIndex"`
	VehicleType        string         `gorm:"type:varchar(50);not null"`
	ManufacturerID     string         `gorm:"type:uuid;not null;index"`
	ModelID            string         `gorm:"type:uuid;not null;index"`
	VariantID          *string        `gorm:"type:uuid"`
	Year               int            `gorm:"not null"`
	Mileage            int            `gorm:"not null;default:0"`
	TransmissionTypeID *string        `gorm:"type:uuid"`
	FuelTypeID         *string        `gorm:"type:uuid"`
	Color              string         `gorm:"type:varchar(50)"`
	IsFirstOwner       bool           `gorm:"not null;default:false"`
	HasInsurance       bool           `gorm:"not null;default:false"`
	HasRcBook          bool           `gorm:"not null;default:false"`
	AdditionalFeatures pq.StringArray `gorm:"type:text[]"`
}

// TableName returns the table name for VehicleAdModel.
func (VehicleAdModel) TableName() string {
	return "vehicle_ads"
}

// CommercialVehicleAdModel is the GORM model for the
// commercial_vehicle_ads detail table.
type CommercialVehicleAdModel struct {
	ID                    string         `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	AdID                  string         `gorm:"type:uuid;not null;uniqueIndex"`
	VehicleType           string         `gorm:"type:varchar(50);not null"`
	CommercialVehicleType string         `gorm:"type:varchar(50);not null"`
	BodyType              string         `gorm:"type:varchar(50)"`
	ManufacturerID        string         `gorm:"type:uuid;not null;index"`
	ModelID               string         `gorm:"type:uuid;not null;index"`
	VariantID             *string        `gorm:"type:uuid"`
	Year                  int            `gorm:"not null"`
	Mileage               int            `gorm:"not null;default:0"`
	TransmissionTypeID    *string        `gorm:"type:uuid"`
	FuelTypeID            *string        `gorm:"type:uuid"`
	Color                 string         `gorm:"type:varchar(50)"`
	PayloadCapacity       float64        `gorm:"type:decimal(12,2);not null;default:0"`
	PayloadUnit           string         `gorm:"type:varchar(10)"`
	AxleCount             int            `gorm:"not null;default:0"`
	SeatingCapacity       int            `gorm:"not null;default:0"`
	HasFitness            bool           `gorm:"not null;default:false"`
	HasPermit             bool           `gorm:"not null;default:false"`
	IsFirstOwner          bool           `gorm:"not null;default:false"`
	HasInsurance          bool           `gorm:"not null;default:false"`
	HasRcBook             bool           `gorm:"not null;default:false"`
	AdditionalFeatures    pq.StringArray `gorm:"type:text[]"`
}

// TableName returns the table name for CommercialVehicleAdModel.
func (CommercialVehicleAdModel) TableName() string {
	return "commercial_vehicle_ads"
}

// ToDomain converts AdModel to the base domain.Ad.
func (m *AdModel) ToDomain() *domain.Ad {
	return &domain.Ad{
		ID:          m.ID,
		Title:       m.Title,
		Description: m.Description,
		Price:       m.Price,
		Images:      m.Images,
		Location:    m.Location,
		Category:    domain.AdCategory(m.Category),
		IsActive:    m.IsActive,
		PostedBy:    m.PostedBy,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}

// ToDetailed converts AdModel with preloaded associations to the
// denormalized read shape. Only the detail matching the category is
// mapped; a missing detail row leaves the union empty (orphans are
// reported by the consistency scan, not by reads).
func (m *AdModel) ToDetailed() *domain.DetailedAd {
	out := &domain.DetailedAd{Ad: *m.ToDomain()}

	if m.Owner != nil {
		out.Owner = m.Owner.ToProfile()
	}

	switch domain.AdCategory(m.Category) {
	case domain.CategoryProperty:
		if m.Property != nil {
			out.Detail.Property = m.Property.ToDomain()
		}
	case domain.CategoryPrivateVehicle, domain.CategoryTwoWheeler:
		if m.Vehicle != nil {
			out.Detail.Vehicle = m.Vehicle.ToDomain()
		}
	case domain.CategoryCommercialVehicle:
		if m.Commercial != nil {
			out.Detail.Commercial = m.Commercial.ToDomain()
		}
	}

	return out
}

// AdFromDomain creates an AdModel from domain.Ad.
func AdFromDomain(a *domain.Ad) *AdModel {
	return &AdModel{
		ID:          a.ID,
		Title:       a.Title,
		Description: a.Description,
		Price:       a.Price,
		Images:      a.Images,
		Location:    a.Location,
		Category:    string(a.Category),
		IsActive:    a.IsActive,
		PostedBy:    a.PostedBy,
		CreatedAt:   a.CreatedAt,
		UpdatedAt:   a.UpdatedAt,
	}
}

// ToDomain converts PropertyAdModel to domain.PropertyDetails.
func (m *PropertyAdModel) ToDomain() *domain.PropertyDetails {
	return &domain.PropertyDetails{
		ID:           m.ID,
		AdID:         m.AdID,
		PropertyType: m.PropertyType,
		Bedrooms:     m.Bedrooms,
		Bathrooms:    m.Bathrooms,
		AreaSqft:     m.AreaSqft,
		Floor:        m.Floor,
		IsFurnished:  m.IsFurnished,
		HasParking:   m.HasParking,
		HasGarden:    m.HasGarden,
		Amenities:    m.Amenities,
	}
}

// PropertyFromDomain creates a PropertyAdModel from domain details.
func PropertyFromDomain(d *domain.PropertyDetails) *PropertyAdModel {
	return &PropertyAdModel{
		ID:           d.ID,
		AdID:         d.AdID,
		PropertyType: d.PropertyType,
		Bedrooms:     d.Bedrooms,
		Bathrooms:    d.Bathrooms,
		AreaSqft:     d.AreaSqft,
		Floor:        d.Floor,
		IsFurnished:  d.IsFurnished,
		HasParking:   d.HasParking,
		HasGarden:    d.HasGarden,
		Amenities:    d.Amenities,
	}
}

// ToDomain converts VehicleAdModel to domain.VehicleDetails.
func (m *VehicleAdModel) ToDomain() *domain.VehicleDetails {
	return &domain.VehicleDetails{
		ID:                 m.ID,
		AdID:               m.AdID,
		VehicleType:        m.VehicleType,
		ManufacturerID:     m.ManufacturerID,
		ModelID:            m.ModelID,
		VariantID:          idValue(m.VariantID),
		Year:               m.Year,
		Mileage:            m.Mileage,
		TransmissionTypeID: idValue(m.TransmissionTypeID),
		FuelTypeID:         idValue(m.FuelTypeID),
		Color:              m.Color,
		IsFirstOwner:       m.IsFirstOwner,
		HasInsurance:       m.HasInsurance,
		HasRcBook:          m.HasRcBook,
		AdditionalFeatures: m.AdditionalFeatures,
	}
}

// VehicleFromDomain creates a VehicleAdModel from domain details.
func VehicleFromDomain(d *domain.VehicleDetails) *VehicleAdModel {
	return &VehicleAdModel{
		ID:                 d.ID,
		AdID:               d.AdID,
		VehicleType:        d.VehicleType,
		ManufacturerID:     d.ManufacturerID,
		ModelID:            d.ModelID,
		VariantID:          nullableID(d.VariantID),
		Year:               d.Year,
		Mileage:            d.Mileage,
		TransmissionTypeID: nullableID(d.TransmissionTypeID),
		FuelTypeID:         nullableID(d.FuelTypeID),
		Color:              d.Color,
		IsFirstOwner:       d.IsFirstOwner,
		HasInsurance:       d.HasInsurance,
		HasRcBook:          d.HasRcBook,
		AdditionalFeatures: d.AdditionalFeatures,
	}
}

// ToDomain converts CommercialVehicleAdModel to domain details.
func (m *CommercialVehicleAdModel) ToDomain() *domain.CommercialVehicleDetails {
	return &domain.CommercialVehicleDetails{
		ID:                    m.ID,
		AdID:                  m.AdID,
		VehicleType:           m.VehicleType,
		CommercialVehicleType: m.CommercialVehicleType,
		BodyType:              m.BodyType,
		ManufacturerID:        m.ManufacturerID,
		ModelID:               m.ModelID,
		VariantID:             idValue(m.VariantID),
		Year:                  m.Year,
		Mileage:               m.Mileage,
		TransmissionTypeID:    idValue(m.TransmissionTypeID),
		FuelTypeID:            idValue(m.FuelTypeID),
		Color:                 m.Color,
		PayloadCapacity:       m.PayloadCapacity,
		PayloadUnit:           m.PayloadUnit,
		AxleCount:             m.AxleCount,
		SeatingCapacity:       m.SeatingCapacity,
		HasFitness:            m.HasFitness,
		HasPermit:             m.HasPermit,
		IsFirstOwner:          m.IsFirstOwner,
		HasInsurance:          m.HasInsurance,
		HasRcBook:             m.HasRcBook,
		AdditionalFeatures:    m.AdditionalFeatures,
	}
}

// CommercialFromDomain creates a CommercialVehicleAdModel from domain
// details.
func CommercialFromDomain(d *domain.CommercialVehicleDetails) *CommercialVehicleAdModel {
	return &CommercialVehicleAdModel{
		ID:                    d.ID,
		AdID:                  d.AdID,
		VehicleType:           d.VehicleType,
		CommercialVehicleType: d.CommercialVehicleType,
		BodyType:              d.BodyType,
		ManufacturerID:        d.ManufacturerID,
		ModelID:               d.ModelID,
		VariantID:             nullableID(d.VariantID),
		Year:                  d.Year,
		Mileage:               d.Mileage,
		TransmissionTypeID:    nullableID(d.TransmissionTypeID),
		FuelTypeID:            nullableID(d.FuelTypeID),
		Color:                 d.Color,
		PayloadCapacity:       d.PayloadCapacity,
		PayloadUnit:           d.PayloadUnit,
		AxleCount:             d.AxleCount,
		SeatingCapacity:       d.SeatingCapacity,
		HasFitness:            d.HasFitness,
		HasPermit:             d.HasPermit,
		IsFirstOwner:          d.IsFirstOwner,
		HasInsurance:          d.HasInsurance,
		HasRcBook:             d.HasRcBook,
		AdditionalFeatures:    d.AdditionalFeatures,
	}
}

// nullableID maps an optional id to NULL instead of an empty string,
// which a uuid column would reject.
func nullableID(id string) *string {
	if id == "" {
		return nil
	}
	return &id
}

func idValue(id *string) string {
	if id == nil {
		return ""
	}
	return *id
}
