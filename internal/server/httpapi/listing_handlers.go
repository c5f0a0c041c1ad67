package httpapi

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/tokomonggo/server/internal/common"
	"github.com/tokomonggo/server/internal/server/models"
	"github.com/tokomonggo/server/internal/server/repositories/listings"
)

// GET /api/products?q=...&category=...&subcategory=...&location=...&regency=...
// &latitude=...&longitude=...&radius=...
//
// The geo filter applies only when latitude, longitude and radius all parse;
// a partial or malformed triple is ignored rather than rejected.
func (s *Server) searchListings(c *gin.Context) {
	criteria := listings.SearchCriteria{
		Text:        c.Query("q"),
		Category:    c.Query("category"),
		Subcategory: c.Query("subcategory"),
		Province:    c.Query("location"),
		Regency:     c.Query("regency"),
	}

	lat, latErr := strconv.ParseFloat(c.Query("latitude"), 64)
	lon, lonErr := strconv.ParseFloat(c.Query("longitude"), 64)
	radius, radErr := strconv.ParseFloat(c.Query("radius"), 64)
	if latErr == nil && lonErr == nil && radErr == nil {
		criteria.Latitude = &lat
		criteria.Longitude = &lon
		criteria.RadiusKm = &radius
	}

	list, err := s.listings.Search(c.Request.Context(), criteria)
	if err != nil {
		s.fail(c, err, "error searching products")
		return
	}
	if list == nil {
		list = []*models.Listing{}
	}
	c.JSON(http.StatusOK, list)
}

type createListingRequest struct {
	Title            string   `json:"title"`
	Description      string   `json:"description"`
	Price            float64  `json:"price"`
	Condition        string   `json:"condition"`
	CategoryMain     string   `json:"category_main"`
	CategorySub      string   `json:"category_sub"`
	LocationProvince string   `json:"location_province"`
	LocationRegency  string   `json:"location_regency"`
	ContactInfo      string   `json:"contact_info"`
	Images           []string `json:"images"`
	Latitude         *float64 `json:"latitude"`
	Longitude        *float64 `json:"longitude"`
}

// POST /api/products
func (s *Server) createListing(c *gin.Context) {
	var req createListingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}

	listing := &models.Listing{
		Title:            req.Title,
		Description:      req.Description,
		Price:            req.Price,
		Condition:        req.Condition,
		Category:         req.CategoryMain,
		Subcategory:      req.CategorySub,
		LocationProvince: req.LocationProvince,
		LocationRegency:  req.LocationRegency,
		ContactInfo:      req.ContactInfo,
		Images:           req.Images,
		Latitude:         req.Latitude,
		Longitude:        req.Longitude,
	}

	created, err := s.listings.Create(c.Request.Context(), currentUserID(c), listing)
	if err != nil {
		s.fail(c, err, "error creating product")
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Product created successfully", "data": created})
}

// GET /api/products/:id
func (s *Server) getListing(c *gin.Context) {
	id := c.Param("id")

	detail, err := s.listings.GetDetail(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "product not found"})
			return
		}
		s.fail(c, err, "error loading product")
		return
	}

	c.JSON(http.StatusOK, detail)
}
