package dto

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"classifieds-service/internal/domain"
	"classifieds-service/internal/validator"
)

func newTestValidator() *validator.Validator {
	return validator.New()
}

func floatPtr(v float64) *float64 { return &v }
func intPtr(v int) *int { return &v }

// TestSearchRequest_Validation_Valid tests valid search requests.
func TestSearchRequest_Validation_Valid(t *testing.T) {
	v := newTestValidator()

	tests := []struct {
		name string
		req  SearchRequest
	}{
		{
			name: "empty request",
			req:  SearchRequest{},
		},
		{
			name: "category only",
			req:  SearchRequest{Category: "PROPERTY"},
		},
		{
			name: "full property request",
			req: SearchRequest{
				Category:    "PROPERTY",
				Location:    "Mumbai",
				MinPrice:    floatPtr(1000000),
				MaxPrice:    floatPtr(9000000),
				MinBedrooms: intPtr(2),
				SortBy:      "price",
				SortOrder:   "ASC",
				Page:        2,
				Limit:       50,
			},
		},
		{
			name: "vehicle id sets",
			req: SearchRequest{
				Category:        "PRIVATE_VEHICLE",
				ManufacturerIDs: []string{"0c2e0b96-27c6-4e79-9b04-04e67e6b4b36"},
				MaxMileage:      intPtr(60000),
				MinYear:         intPtr(2015),
			},
		},
		{
			name: "commercial payload range",
			req: SearchRequest{
				Category:   "COMMERCIAL_VEHICLE",
				MinPayload: floatPtr(1000),
				MaxPayload: floatPtr(20000),
				AxleCount:  intPtr(3),
			},
		},
		{
			name: "search at max length",
			req:  SearchRequest{Search: string(make([]byte, 200))},
		},
		{
			name: "max limit",
			req:  SearchRequest{Page: 1, Limit: 100},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Validate(&tt.req)
			assert.NoError(t, err)
		})
	}
}

// TestSearchRequest_Validation_Invalid tests invalid search requests.
func TestSearchRequest_Validation_Invalid(t *testing.T) {
	v := newTestValidator()

	tests := []struct {
		name         string
		req          SearchRequest
		expectField  string
		expectTag    string
		expectErrMsg string
	}{
		{
			name:         "unknown category",
			req:          SearchRequest{Category: "BOATS"},
			expectField:  "Category",
			expectTag:    "oneof",
			expectErrMsg: "must be one of: PROPERTY PRIVATE_VEHICLE COMMERCIAL_VEHICLE TWO_WHEELER",
		},
		{
			name:         "search too long",
			req:          SearchRequest{Search: string(make([]byte, 201))},
			expectField:  "Search",
			expectTag:    "max",
			expectErrMsg: "must be at most 200",
		},
		{
			name:         "negative min price",
			req:          SearchRequest{MinPrice: floatPtr(-1)},
			expectField:  "MinPrice",
			expectTag:    "min",
			expectErrMsg: "must be at least 0",
		},
		{
			name:         "invalid sort field",
			req:          SearchRequest{SortBy: "title"},
			expectField:  "SortBy",
			expectTag:    "oneof",
			expectErrMsg: "must be one of: createdAt updatedAt price",
		},
		{
			name:         "lowercase sort order",
			req:          SearchRequest{SortOrder: "asc"},
			expectField:  "SortOrder",
			expectTag:    "oneof",
			expectErrMsg: "must be one of: ASC DESC",
		},
		{
			name:         "negative page",
			req:          SearchRequest{Page: -1},
			expectField:  "Page",
			expectTag:    "min",
			expectErrMsg: "must be at least 1",
		},
		{
			name:         "limit too large",
			req:          SearchRequest{Page: 1, Limit: 101},
			expectField:  "Limit",
			expectTag:    "max",
			expectErrMsg: "must be at most 100",
		},
		{
			name:         "axle count out of range",
			req:          SearchRequest{AxleCount: intPtr(11)},
			expectField:  "AxleCount",
			expectTag:    "max",
			expectErrMsg: "must be at most 10",
		},
		{
			name:         "pre-automotive min year",
			req:          SearchRequest{MinYear: intPtr(1850)},
			expectField:  "MinYear",
			expectTag:    "min",
			expectErrMsg: "must be at least 1900",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Validate(&tt.req)
			require.Error(t, err)

			validationErrs, ok := err.(validator.ValidationErrors)
			require.True(t, ok, "expected ValidationErrors type")
			require.NotEmpty(t, validationErrs)

			found := false
			for _, ve := range validationErrs {
				if ve.Field == tt.expectField {
					found = true
					assert.Equal(t, tt.expectTag, ve.Tag)
					assert.Contains(t, ve.Message, tt.expectErrMsg)
				}
			}
			assert.True(t, found, "expected error for field %s", tt.expectField)
		})
	}
}

// TestSearchRequest_ToFilterSpec tests conversion to domain FilterSpec.
func TestSearchRequest_ToFilterSpec(t *testing.T) {
	t.Run("empty request uses defaults", func(t *testing.T) {
		req := SearchRequest{}
		f := req.ToFilterSpec()

		assert.Equal(t, domain.SortFieldCreatedAt, f.SortBy)
		assert.Equal(t, domain.SortOrderDesc, f.SortOrder)
		assert.Equal(t, 1, f.Page)
		assert.Equal(t, domain.DefaultLimit, f.Limit)
		assert.Empty(t, f.Category)
		assert.Nil(t, f.MinPrice)
	})

	t.Run("full request converts correctly", func(t *testing.T) {
		req := SearchRequest{
			Category:    "PROPERTY",
			Location:    "Pune",
			MinPrice:    floatPtr(500000),
			MinBedrooms: intPtr(3),
			SortBy:      "price",
			SortOrder:   "ASC",
			Page:        4,
			Limit:       10,
		}
		f := req.ToFilterSpec()

		assert.Equal(t, domain.CategoryProperty, f.Category)
		assert.Equal(t, "Pune", f.Location)
		assert.Equal(t, 500000.0, *f.MinPrice)
		assert.Equal(t, 3, *f.MinBedrooms)
		assert.Equal(t, domain.SortFieldPrice, f.SortBy)
		assert.Equal(t, domain.SortOrderAsc, f.SortOrder)
		assert.Equal(t, 4, f.Page)
		assert.Equal(t, 10, f.Limit)
	})

	t.Run("explicit false filters survive", func(t *testing.T) {
		hasParking := false
		req := SearchRequest{HasParking: &hasParking}
		f := req.ToFilterSpec()

		require.NotNil(t, f.HasParking)
		assert.False(t, *f.HasParking)
	})
}

// TestSplitIDs tests the one-or-many id parameter handling.
func TestSplitIDs(t *testing.T) {
	tests := []struct {
		name     string
		values   []string
		expected []string
	}{
		{
			name:     "nil input",
			values:   nil,
			expected: nil,
		},
		{
			name:     "repeated params",
			values:   []string{"id-a", "id-b"},
			expected: []string{"id-a", "id-b"},
		},
		{
			name:     "comma separated",
			values:   []string{"id-a,id-b,id-c"},
			expected: []string{"id-a", "id-b", "id-c"},
		},
		{
			name:     "mixed with whitespace and empties",
			values:   []string{" id-a , ", "id-b", ","},
			expected: []string{"id-a", "id-b"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, splitIDs(tt.values))
		})
	}
}

// TestCreateAdRequest_Validation tests create request validation.
func TestCreateAdRequest_Validation(t *testing.T) {
	v := newTestValidator()

	valid := CreateAdRequest{
		Title:       "2BHK Apartment",
		Description: "Spacious flat near the station",
		Price:       7500000,
		Location:    "Mumbai",
		Category:    "PROPERTY",
		Details: AdDetailRequest{
			Property: &PropertyDetailsRequest{
				PropertyType: "apartment",
				Bedrooms:     2,
				Bathrooms:    2,
				AreaSqft:     950,
			},
		},
	}
	assert.NoError(t, v.Validate(&valid))

	t.Run("missing required base fields", func(t *testing.T) {
		req := valid
		req.Title = ""
		req.Location = ""

		err := v.Validate(&req)
		require.Error(t, err)

		validationErrs, ok := err.(validator.ValidationErrors)
		require.True(t, ok)
		assert.Len(t, validationErrs, 2)
	})

	t.Run("unknown category", func(t *testing.T) {
		req := valid
		req.Category = "FURNITURE"
		assert.Error(t, v.Validate(&req))
	})

	t.Run("non-uuid manufacturer reference", func(t *testing.T) {
		req := CreateAdRequest{
			Title:       "Swift VXI",
			Description: "Single owner",
			Price:       450000,
			Location:    "Pune",
			Category:    "PRIVATE_VEHICLE",
			Details: AdDetailRequest{
				Vehicle: &VehicleDetailsRequest{
					VehicleType:    "hatchback",
					ManufacturerID: "not-a-uuid",
					ModelID:        "8b7d2f1e-5f7a-4f43-9a94-16d1b34b2c77",
					Year:           2019,
				},
			},
		}
		assert.Error(t, v.Validate(&req))
	})

	t.Run("invalid payload unit", func(t *testing.T) {
		req := CreateAdRequest{
			Title:       "Tata 407",
			Description: "Fleet truck",
			Price:       900000,
			Location:    "Nashik",
			Category:    "COMMERCIAL_VEHICLE",
			Details: AdDetailRequest{
				Commercial: &CommercialDetailsRequest{
					VehicleDetailsRequest: VehicleDetailsRequest{
						VehicleType:    "truck",
						ManufacturerID: "0c2e0b96-27c6-4e79-9b04-04e67e6b4b36",
						ModelID:        "8b7d2f1e-5f7a-4f43-9a94-16d1b34b2c77",
						Year:           2018,
					},
					PayloadCapacity: 2500,
					PayloadUnit:     "stones",
				},
			},
		}
		assert.Error(t, v.Validate(&req))
	})
}

// TestCreateAdRequest_ToDomain tests conversion to domain types.
func TestCreateAdRequest_ToDomain(t *testing.T) {
	floor := 4
	req := CreateAdRequest{
		Title:       "2BHK Apartment",
		Description: "Spacious flat",
		Price:       7500000,
		Images:      []string{"https://cdn.example.com/1.jpg"},
		Location:    "Mumbai",
		Category:    "PROPERTY",
		Details: AdDetailRequest{
			Property: &PropertyDetailsRequest{
				PropertyType: "apartment",
				Bedrooms:     2,
				Bathrooms:    2,
				AreaSqft:     950,
				Floor:        &floor,
				HasParking:   true,
			},
		},
	}

	ad, detail := req.ToDomain()

	assert.Equal(t, "2BHK Apartment", ad.Title)
	assert.Equal(t, domain.CategoryProperty, ad.Category)
	assert.True(t, ad.IsActive)
	assert.Equal(t, []string{"https://cdn.example.com/1.jpg"}, ad.Images)
	assert.False(t, ad.CreatedAt.IsZero())

	require.NotNil(t, detail.Property)
	assert.Nil(t, detail.Vehicle)
	assert.Nil(t, detail.Commercial)
	assert.Equal(t, "apartment", detail.Property.PropertyType)
	assert.Equal(t, 4, *detail.Property.Floor)
	assert.True(t, detail.Property.HasParking)
}

// TestUpdateAdRequest_ToPatch tests conversion to the service patch.
func TestUpdateAdRequest_ToPatch(t *testing.T) {
	t.Run("absent fields stay nil", func(t *testing.T) {
		req := UpdateAdRequest{}
		patch := req.ToPatch()

		assert.Nil(t, patch.Title)
		assert.Nil(t, patch.Price)
		assert.Nil(t, patch.Category)
		assert.Nil(t, patch.Property)
	})

	t.Run("base and detail fields carry over", func(t *testing.T) {
		title := "Price dropped"
		price := 6900000.0
		isActive := false
		bedrooms := 3

		req := UpdateAdRequest{
			Title:    &title,
			Price:    &price,
			IsActive: &isActive,
			Details: &AdDetailPatchRequest{
				Property: &PropertyPatchRequest{Bedrooms: &bedrooms},
			},
		}
		patch := req.ToPatch()

		assert.Equal(t, "Price dropped", *patch.Title)
		assert.Equal(t, 6900000.0, *patch.Price)
		assert.False(t, *patch.IsActive)
		require.NotNil(t, patch.Property)
		assert.Equal(t, 3, *patch.Property.Bedrooms)
	})

	t.Run("commercial patch flattens the embedded vehicle fields", func(t *testing.T) {
		modelID := "8b7d2f1e-5f7a-4f43-9a94-16d1b34b2c77"
		payload := 12000.0

		req := UpdateAdRequest{
			Details: &AdDetailPatchRequest{
				Commercial: &CommercialPatchRequest{
					VehiclePatchRequest: VehiclePatchRequest{ModelID: &modelID},
					PayloadCapacity:     &payload,
				},
			},
		}
		patch := req.ToPatch()

		require.NotNil(t, patch.Commercial)
		assert.Equal(t, modelID, *patch.Commercial.ModelID)
		assert.Equal(t, 12000.0, *patch.Commercial.PayloadCapacity)
	})

	t.Run("category converts to the domain type", func(t *testing.T) {
		category := "PROPERTY"
		req := UpdateAdRequest{Category: &category}
		patch := req.ToPatch()

		require.NotNil(t, patch.Category)
		assert.Equal(t, domain.CategoryProperty, *patch.Category)
	})
}

// TestValidationErrors_Error tests the Error() method of ValidationErrors.
func TestValidationErrors_Error(t *testing.T) {
	tests := []struct {
		name     string
		errs     validator.ValidationErrors
		expected string
	}{
		{
			name:     "empty errors",
			errs:     validator.ValidationErrors{},
			expected: "",
		},
		{
			name: "single error",
			errs: validator.ValidationErrors{
				{Field: "Title", Message: "Title is required"},
			},
			expected: "Title is required",
		},
		{
			name: "multiple errors",
			errs: validator.ValidationErrors{
				{Field: "Title", Message: "Title is required"},
				{Field: "Page", Message: "Page must be at least 1"},
			},
			expected: "Title is required; Page must be at least 1",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.errs.Error())
		})
	}
}
