package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	logrus "github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"driver_dispatch/internal/cache"
	"driver_dispatch/internal/config"
	"driver_dispatch/internal/dispatch"
	"driver_dispatch/internal/models"
	"driver_dispatch/internal/pricing"
)

// --- Request / response shapes ---

// dispatchRequest is the single-endpoint payload; Action selects the
// operation and the remaining fields are per-action.
type dispatchRequest struct {
	Action        string   `json:"action"`
	OrderID       *uint    `json:"order_id"`
	RestaurantLat *float64 `json:"restaurant_lat"`
	RestaurantLng *float64 `json:"restaurant_lng"`
	CityID        *uint    `json:"city_id"`
	DistanceKm    *float64 `json:"distance_km"`
}

// rankedDriver is one enriched candidate in the find_nearest_drivers response.
type rankedDriver struct {
	Driver          models.Driver `json:"driver"`
	DistanceKm      float64       `json:"distance_km"`
	EtaMinutes      int           `json:"eta_minutes"`
	TotalScore      float64       `json:"score"`
	DistanceScore   float64       `json:"distance_score"`
	IdleScore       float64       `json:"idle_score"`
	RatingScore     float64       `json:"rating_score"`
	AcceptanceScore float64       `json:"acceptance_score"`
}

const topDriverCount = 5

var errOrderTaken = errors.New("order already assigned")

// Dispatch is the single HTTP entry point for the dispatch engine. The JSON
// body's "action" field selects the operation.
func Dispatch(c *gin.Context) {
	var req dispatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
		return
	}

	switch req.Action {
	case "find_nearest_drivers":
		findNearestDrivers(c, req)
	case "auto_assign":
		autoAssign(c, req)
	case "calculate_delivery_fee":
		calculateDeliveryFee(c, req)
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid action"})
	}
}

// fetchCandidates loads every dispatchable driver: approved, available and
// with a known position. ORDER BY id pins the fetch order so score ties rank
// deterministically.
func fetchCandidates(c *gin.Context, cityID *uint) ([]models.Driver, error) {
	q := config.DB.WithContext(c.Request.Context()).
		Where("status = ? AND is_available = ?", "approved", true).
		Where("latitude IS NOT NULL AND longitude IS NOT NULL")
	if cityID != nil {
		q = q.Where("city_id = ?", *cityID)
	}

	var drivers []models.Driver
	if err := q.Order("id").Find(&drivers).Error; err != nil {
		return nil, err
	}
	return drivers, nil
}

// findNearestDrivers ranks every candidate against the pickup point and
// returns the enriched top 5. An empty candidate pool is a normal empty
// response, not an error.
func findNearestDrivers(c *gin.Context, req dispatchRequest) {
	if req.RestaurantLat == nil || req.RestaurantLng == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "restaurant_lat and restaurant_lng are required"})
		return
	}
	originLat, originLng := *req.RestaurantLat, *req.RestaurantLng

	candidates, err := fetchCandidates(c, req.CityID)
	if err != nil {
		logrus.WithError(err).Error("findNearestDrivers: candidate query failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load drivers: " + err.Error()})
		return
	}
	if len(candidates) == 0 {
		c.JSON(http.StatusOK, gin.H{"drivers": []rankedDriver{}})
		return
	}

	cfg := dispatch.ConfigFromEnv()
	ranked := dispatch.Rank(cfg, candidates, originLat, originLng)
	if len(ranked) > topDriverCount {
		ranked = ranked[:topDriverCount]
	}

	// Audit rows are persisted for the returned subset only.
	if req.OrderID != nil {
		records := make([]models.DispatchScore, 0, len(ranked))
		for _, s := range ranked {
			records = append(records, models.DispatchScore{
				OrderID:         *req.OrderID,
				DriverID:        s.Driver.ID,
				DistanceScore:   s.DistanceScore,
				IdleScore:       s.IdleScore,
				RatingScore:     s.RatingScore,
				AcceptanceScore: s.AcceptanceScore,
				TotalScore:      s.TotalScore,
				DistanceKm:      s.DistanceKm,
			})
		}
		if err := config.DB.WithContext(c.Request.Context()).Create(&records).Error; err != nil {
			logrus.WithError(err).Error("findNearestDrivers: failed to persist score audit")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to record dispatch scores: " + err.Error()})
			return
		}
	}

	// Re-fetch full profiles so the response carries fields the scoring query
	// didn't need.
	ids := make([]uint, 0, len(ranked))
	for _, s := range ranked {
		ids = append(ids, s.Driver.ID)
	}
	var profiles []models.Driver
	if err := config.DB.WithContext(c.Request.Context()).Where("id IN ?", ids).Find(&profiles).Error; err != nil {
		logrus.WithError(err).Error("findNearestDrivers: profile fetch failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load driver profiles: " + err.Error()})
		return
	}
	byID := make(map[uint]models.Driver, len(profiles))
	for _, p := range profiles {
		byID[p.ID] = p
	}

	out := make([]rankedDriver, 0, len(ranked))
	for _, s := range ranked {
		profile, ok := byID[s.Driver.ID]
		if !ok {
			profile = *s.Driver
		}
		out = append(out, rankedDriver{
			Driver:          profile,
			DistanceKm:      s.DistanceKm,
			EtaMinutes:      s.EtaMinutes,
			TotalScore:      s.TotalScore,
			DistanceScore:   s.DistanceScore,
			IdleScore:       s.IdleScore,
			RatingScore:     s.RatingScore,
			AcceptanceScore: s.AcceptanceScore,
		})
	}

	c.JSON(http.StatusOK, gin.H{"drivers": out})
}

// autoAssign picks the best-scoring candidate for an order and commits the
// assignment. All assignment writes run in one transaction, and the order
// update is conditional on driver_id still being NULL, so two racing calls
// can't both win.
func autoAssign(c *gin.Context, req dispatchRequest) {
	if req.OrderID == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "order_id is required"})
		return
	}
	ctx := c.Request.Context()

	var order models.Order
	if err := config.DB.WithContext(ctx).Preload("Restaurant").First(&order, *req.OrderID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
		} else {
			logrus.WithError(err).Error("autoAssign: order lookup failed")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load order: " + err.Error()})
		}
		return
	}
	if !order.Restaurant.Located() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Restaurant location not set"})
		return
	}
	if order.DriverID != nil {
		c.JSON(http.StatusOK, gin.H{"assigned": false, "reason": "already_assigned"})
		return
	}
	if order.Status != models.OrderStatusCreated {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Order cannot be dispatched in status " + order.Status})
		return
	}

	originLat, originLng := *order.Restaurant.Latitude, *order.Restaurant.Longitude

	candidates, err := fetchCandidates(c, &order.Restaurant.CityID)
	if err != nil {
		logrus.WithError(err).Error("autoAssign: candidate query failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load drivers: " + err.Error()})
		return
	}
	if len(candidates) == 0 {
		c.JSON(http.StatusOK, gin.H{"assigned": false, "reason": "no_available_drivers"})
		return
	}

	cfg := dispatch.ConfigFromEnv()
	ranked := dispatch.Rank(cfg, candidates, originLat, originLng)
	best := ranked[0]

	if best.TotalScore < dispatch.AssignThreshold {
		c.JSON(http.StatusOK, gin.H{"assigned": false, "reason": "no_suitable_driver"})
		return
	}

	winner := best.Driver
	oldCell := winner.Geohash

	err = config.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// Conditional write: the loser of a race sees zero rows updated.
		res := tx.Model(&models.Order{}).
			Where("id = ? AND driver_id IS NULL", order.ID).
			Updates(map[string]interface{}{
				"driver_id":   winner.ID,
				"status":      models.OrderStatusAssigned,
				"distance_km": best.DistanceKm,
				"eta_minutes": best.EtaMinutes,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return errOrderTaken
		}

		if err := tx.Model(&models.Driver{}).Where("id = ?", winner.ID).
			Update("is_available", false).Error; err != nil {
			return err
		}

		assignment := models.DeliveryAssignment{
			OrderID:         order.ID,
			DriverID:        winner.ID,
			PickupLatitude:  originLat,
			PickupLongitude: originLng,
			PickupAddress:   order.Restaurant.Address,
			DropAddress:     order.DropAddress,
			CustomerPhone:   order.CustomerPhone,
			DistanceKm:      best.DistanceKm,
			EtaMinutes:      best.EtaMinutes,
			Status:          "assigned",
		}
		if order.DropLatitude != nil && order.DropLongitude != nil {
			assignment.DropLatitude = *order.DropLatitude
			assignment.DropLongitude = *order.DropLongitude
		}
		if err := tx.Create(&assignment).Error; err != nil {
			return err
		}

		notification := models.Notification{
			UserID: winner.UserID,
			Kind:   "dispatch",
			Title:  "New delivery assigned",
			Body:   fmt.Sprintf("Order #%d from %s, about %d min away", order.ID, order.Restaurant.Name, best.EtaMinutes),
		}
		if err := tx.Create(&notification).Error; err != nil {
			return err
		}

		// Flip the audit flag on the score row from an earlier manual search;
		// when none exists, auto-assign writes its own.
		res = tx.Model(&models.DispatchScore{}).
			Where("order_id = ? AND driver_id = ?", order.ID, winner.ID).
			Update("was_assigned", true)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			record := models.DispatchScore{
				OrderID:         order.ID,
				DriverID:        winner.ID,
				DistanceScore:   best.DistanceScore,
				IdleScore:       best.IdleScore,
				RatingScore:     best.RatingScore,
				AcceptanceScore: best.AcceptanceScore,
				TotalScore:      best.TotalScore,
				DistanceKm:      best.DistanceKm,
				WasAssigned:     true,
			}
			if err := tx.Create(&record).Error; err != nil {
				return err
			}
		}

		return nil
	})
	if err != nil {
		if errors.Is(err, errOrderTaken) {
			c.JSON(http.StatusOK, gin.H{"assigned": false, "reason": "already_assigned"})
			return
		}
		logrus.WithError(err).Error("autoAssign: assignment transaction failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to assign driver: " + err.Error()})
		return
	}

	// The winner is no longer available supply.
	cache.RemoveAvailableDriver(ctx, winner.ID, oldCell)

	logrus.WithFields(logrus.Fields{
		"order_id":  order.ID,
		"driver_id": winner.ID,
		"score":     best.TotalScore,
	}).Info("autoAssign: driver assigned")

	c.JSON(http.StatusOK, gin.H{
		"assigned":    true,
		"driver_id":   winner.ID,
		"eta_minutes": best.EtaMinutes,
		"distance_km": best.DistanceKm,
		"score":       best.TotalScore,
	})
}

// calculateDeliveryFee quotes a delivery fee for a distance under the city's
// pricing policy and whatever surge windows cover the current time.
func calculateDeliveryFee(c *gin.Context, req dispatchRequest) {
	if req.DistanceKm == nil || *req.DistanceKm < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "distance_km is required and must be non-negative"})
		return
	}
	if req.CityID == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "city_id is required"})
		return
	}
	ctx := c.Request.Context()

	policy := pricing.DefaultPolicy(*req.CityID)
	var stored models.PricingPolicy
	err := config.DB.WithContext(ctx).Where("city_id = ?", *req.CityID).First(&stored).Error
	switch {
	case err == nil:
		policy = stored
	case errors.Is(err, gorm.ErrRecordNotFound):
		// unpriced city, defaults apply
	default:
		logrus.WithError(err).Error("calculateDeliveryFee: policy lookup failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load pricing policy: " + err.Error()})
		return
	}

	var rules []models.SurgeRule
	if err := config.DB.WithContext(ctx).
		Where("city_id = ? AND is_active = ?", *req.CityID, true).
		Find(&rules).Error; err != nil {
		logrus.WithError(err).Error("calculateDeliveryFee: surge rule lookup failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load surge rules: " + err.Error()})
		return
	}

	quote := pricing.Compute(policy, rules, *req.DistanceKm, time.Now())
	c.JSON(http.StatusOK, quote)
}
