package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/switchyard-io/switchyard/internal/database"
	"github.com/switchyard-io/switchyard/internal/models"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"gorm.io/gorm"
)

// ListVlans lists all VLANs
// @Summary      List VLANs
// @Description  Lists all VLANs, newest first
// @Id           ListVlans
// @Tags         VLANs
// @Accept       json
// @Produce      json
// @Success      200  {object}  []models.Vlan
// @Failure      500  {object}  models.InternalServerError "Internal Server Error"
// @Router       /api/vlans [get]
func (api *API) ListVlans(c *gin.Context) {
	ctx, span := tracer.Start(c.Request.Context(), "ListVlans")
	defer span.End()

	vlans := make([]models.Vlan, 0)
	db := api.db.WithContext(ctx)
	if res := db.Order("created_at DESC").Order("id DESC").Find(&vlans); res.Error != nil {
		api.SendInternalServerError(c, res.Error)
		return
	}
	c.JSON(http.StatusOK, vlans)
}

// GetVlan gets a VLAN by ID
// @Summary      Get VLAN
// @Description  Gets a VLAN by ID
// @Id           GetVlan
// @Tags         VLANs
// @Accept       json
// @Produce      json
// @Param        id   path      string  true "VLAN ID"
// @Success      200  {object}  models.Vlan
// @Failure      400  {object}  models.ValidationError
// @Failure      404  {object}  models.NotFoundError
// @Failure      500  {object}  models.InternalServerError "Internal Server Error"
// @Router       /api/vlans/{id} [get]
func (api *API) GetVlan(c *gin.Context) {
	ctx, span := tracer.Start(c.Request.Context(), "GetVlan", trace.WithAttributes(
		attribute.String("id", c.Param("id")),
	))
	defer span.End()

	id, ok := uintParam(c, "id")
	if !ok {
		return
	}

	var vlan models.Vlan
	db := api.db.WithContext(ctx)
	if res := db.First(&vlan, "id = ?", id); res.Error != nil {
		if errors.Is(res.Error, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, models.NewNotFoundError("vlan"))
		} else {
			api.SendInternalServerError(c, res.Error)
		}
		return
	}
	c.JSON(http.StatusOK, vlan)
}

// createVlan runs the guard chain for one VLAN create: validate fields,
// reject a colliding tag, insert. Shared by the single and bulk create
// paths.
func (api *API) createVlan(ctx context.Context, request models.AddVlan) (*models.Vlan, error) {
	if ve := request.Validate(); ve != nil {
		return nil, NewApiResponseError(http.StatusBadRequest, *ve)
	}

	var vlan models.Vlan
	err := api.transaction(ctx, func(tx *gorm.DB) error {
		var existing models.Vlan
		res := tx.Where("tag = ?", request.Tag).First(&existing)
		if res.Error == nil {
			return NewApiResponseError(http.StatusConflict, models.NewConflictsError(existing.ID))
		}
		if !errors.Is(res.Error, gorm.ErrRecordNotFound) {
			return res.Error
		}

		vlan = models.Vlan{
			Name: request.Name,
			Tag:  request.Tag,
		}
		if res := tx.Create(&vlan); res.Error != nil {
			if database.IsDuplicateError(res.Error) {
				return NewApiResponseError(http.StatusConflict, models.NewConflictsError(vlan.ID))
			}
			return res.Error
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &vlan, nil
}

// CreateVlan handles adding a new VLAN
// @Summary      Add VLAN
// @Description  Adds a new VLAN
// @Id           CreateVlan
// @Tags         VLANs
// @Accept       json
// @Produce      json
// @Param        Vlan  body   models.AddVlan  true "Add VLAN"
// @Success      201  {object}  models.Vlan
// @Failure      400  {object}  models.ValidationError
// @Failure      409  {object}  models.ConflictsError
// @Failure      500  {object}  models.InternalServerError "Internal Server Error"
// @Router       /api/vlans [post]
func (api *API) CreateVlan(c *gin.Context) {
	ctx, span := tracer.Start(c.Request.Context(), "CreateVlan")
	defer span.End()

	var request models.AddVlan
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, models.NewBadPayloadError())
		return
	}

	vlan, err := api.createVlan(ctx, request)
	if err != nil {
		api.sendError(c, err)
		return
	}
	span.SetAttributes(attribute.Int64("id", int64(vlan.ID)))
	c.JSON(http.StatusCreated, vlan)
}

// UpdateVlan updates a VLAN
// @Summary      Update VLAN
// @Description  Replaces the name and tag of a VLAN
// @Id           UpdateVlan
// @Tags         VLANs
// @Accept       json
// @Produce      json
// @Param        id      path   string  true "VLAN ID"
// @Param        update  body   models.UpdateVlan true "VLAN Update"
// @Success      200  {object}  models.Vlan
// @Failure      400  {object}  models.ValidationError
// @Failure      404  {object}  models.NotFoundError
// @Failure      409  {object}  models.ConflictsError
// @Failure      500  {object}  models.InternalServerError "Internal Server Error"
// @Router       /api/vlans/{id} [put]
func (api *API) UpdateVlan(c *gin.Context) {
	ctx, span := tracer.Start(c.Request.Context(), "UpdateVlan", trace.WithAttributes(
		attribute.String("id", c.Param("id")),
	))
	defer span.End()

	id, ok := uintParam(c, "id")
	if !ok {
		return
	}

	var request models.UpdateVlan
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, models.NewBadPayloadError())
		return
	}
	if ve := request.Validate(); ve != nil {
		c.JSON(http.StatusBadRequest, *ve)
		return
	}

	var vlan models.Vlan
	err := api.transaction(ctx, func(tx *gorm.DB) error {
		if res := tx.First(&vlan, "id = ?", id); res.Error != nil {
			if errors.Is(res.Error, gorm.ErrRecordNotFound) {
				return NewApiResponseError(http.StatusNotFound, models.NewNotFoundError("vlan"))
			}
			return res.Error
		}

		var existing models.Vlan
		res := tx.Where("id <> ? AND tag = ?", id, request.Tag).First(&existing)
		if res.Error == nil {
			return NewApiResponseError(http.StatusConflict, models.NewConflictsError(existing.ID))
		}
		if !errors.Is(res.Error, gorm.ErrRecordNotFound) {
			return res.Error
		}

		vlan.Name = request.Name
		vlan.Tag = request.Tag
		if res := tx.Save(&vlan); res.Error != nil {
			if database.IsDuplicateError(res.Error) {
				return NewApiResponseError(http.StatusConflict, models.NewConflictsError(vlan.ID))
			}
			return res.Error
		}
		return nil
	})
	if err != nil {
		api.sendError(c, err)
		return
	}
	c.JSON(http.StatusOK, vlan)
}

// DeleteVlan handles deleting a VLAN and its associations
// @Summary      Delete VLAN
// @Description  Deletes a VLAN; its switch associations are removed with it
// @Id           DeleteVlan
// @Tags         VLANs
// @Accept       json
// @Produce      json
// @Param        id   path      string  true "VLAN ID"
// @Success      200  {object}  models.Vlan
// @Failure      400  {object}  models.ValidationError
// @Failure      404  {object}  models.NotFoundError
// @Failure      500  {object}  models.InternalServerError "Internal Server Error"
// @Router       /api/vlans/{id} [delete]
func (api *API) DeleteVlan(c *gin.Context) {
	ctx, span := tracer.Start(c.Request.Context(), "DeleteVlan", trace.WithAttributes(
		attribute.String("id", c.Param("id")),
	))
	defer span.End()

	id, ok := uintParam(c, "id")
	if !ok {
		return
	}

	var vlan models.Vlan
	err := api.transaction(ctx, func(tx *gorm.DB) error {
		if res := tx.First(&vlan, "id = ?", id); res.Error != nil {
			if errors.Is(res.Error, gorm.ErrRecordNotFound) {
				return NewApiResponseError(http.StatusNotFound, models.NewNotFoundError("vlan"))
			}
			return res.Error
		}
		if res := tx.Where("vlan_id = ?", id).Delete(&models.Association{}); res.Error != nil {
			return res.Error
		}
		if res := tx.Delete(&models.Vlan{}, id); res.Error != nil {
			return res.Error
		}
		return nil
	})
	if err != nil {
		api.sendError(c, err)
		return
	}
	c.JSON(http.StatusOK, vlan)
}

// BulkCreateVlans handles adding a batch of VLANs
// @Summary      Bulk Add VLANs
// @Description  Adds each VLAN in the batch; one failing item never aborts the rest
// @Id           BulkCreateVlans
// @Tags         VLANs
// @Accept       json
// @Produce      json
// @Param        Vlans  body   models.BulkAddVlans  true "VLANs"
// @Success      201  {object}  models.BulkVlansCreated
// @Failure      400  {object}  models.ValidationError
// @Failure      500  {object}  models.InternalServerError "Internal Server Error"
// @Router       /api/vlans/bulk [post]
func (api *API) BulkCreateVlans(c *gin.Context) {
	ctx, span := tracer.Start(c.Request.Context(), "BulkCreateVlans")
	defer span.End()

	var request models.BulkAddVlans
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, models.NewBadPayloadError())
		return
	}
	if len(request.Vlans) == 0 {
		c.JSON(http.StatusBadRequest, models.NewFieldNotPresentError("vlans"))
		return
	}

	created, errs := collectEach(request.Vlans, "VLAN",
		func(item models.AddVlan) string { return item.Name },
		func(item models.AddVlan) (*models.Vlan, error) {
			return api.createVlan(ctx, item)
		})

	c.JSON(http.StatusCreated, models.BulkVlansCreated{
		Created: len(created),
		Total:   len(request.Vlans),
		Vlans:   created,
		Errors:  errs,
	})
}

// BulkDeleteVlans handles deleting a batch of VLANs
// @Summary      Bulk Delete VLANs
// @Description  Deletes each listed VLAN, tallying how many existed; missing ids are skipped
// @Id           BulkDeleteVlans
// @Tags         VLANs
// @Accept       json
// @Produce      json
// @Param        VlanIDs  body   models.BulkDeleteVlans  true "VLAN IDs"
// @Success      200  {object}  models.BulkDeleted
// @Failure      400  {object}  models.ValidationError
// @Failure      500  {object}  models.InternalServerError "Internal Server Error"
// @Router       /api/vlans [delete]
func (api *API) BulkDeleteVlans(c *gin.Context) {
	ctx, span := tracer.Start(c.Request.Context(), "BulkDeleteVlans")
	defer span.End()

	var request models.BulkDeleteVlans
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, models.NewBadPayloadError())
		return
	}
	if len(request.VlanIDs) == 0 {
		c.JSON(http.StatusBadRequest, models.NewFieldNotPresentError("vlan_ids"))
		return
	}

	deleted := deleteEach(request.VlanIDs, func(id uint) (int64, error) {
		var n int64
		err := api.transaction(ctx, func(tx *gorm.DB) error {
			if res := tx.Where("vlan_id = ?", id).Delete(&models.Association{}); res.Error != nil {
				return res.Error
			}
			res := tx.Delete(&models.Vlan{}, id)
			n = res.RowsAffected
			return res.Error
		})
		return n, err
	})

	c.JSON(http.StatusOK, models.BulkDeleted{
		Requested: len(request.VlanIDs),
		Deleted:   deleted,
	})
}
