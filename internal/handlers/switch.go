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

// ListSwitches lists all switches
// @Summary      List Switches
// @Description  Lists all switches, newest first
// @Id           ListSwitches
// @Tags         Switches
// @Accept       json
// @Produce      json
// @Success      200  {object}  []models.Switch
// @Failure      500  {object}  models.InternalServerError "Internal Server Error"
// @Router       /api/switches [get]
func (api *API) ListSwitches(c *gin.Context) {
	ctx, span := tracer.Start(c.Request.Context(), "ListSwitches")
	defer span.End()

	switches := make([]models.Switch, 0)
	db := api.db.WithContext(ctx)
	if res := db.Order("created_at DESC").Order("id DESC").Find(&switches); res.Error != nil {
		api.SendInternalServerError(c, res.Error)
		return
	}
	c.JSON(http.StatusOK, switches)
}

// GetSwitch gets a switch by ID
// @Summary      Get Switch
// @Description  Gets a switch by ID
// @Id           GetSwitch
// @Tags         Switches
// @Accept       json
// @Produce      json
// @Param        id   path      string  true "Switch ID"
// @Success      200  {object}  models.Switch
// @Failure      400  {object}  models.ValidationError
// @Failure      404  {object}  models.NotFoundError
// @Failure      500  {object}  models.InternalServerError "Internal Server Error"
// @Router       /api/switches/{id} [get]
func (api *API) GetSwitch(c *gin.Context) {
	ctx, span := tracer.Start(c.Request.Context(), "GetSwitch", trace.WithAttributes(
		attribute.String("id", c.Param("id")),
	))
	defer span.End()

	id, ok := uintParam(c, "id")
	if !ok {
		return
	}

	var sw models.Switch
	db := api.db.WithContext(ctx)
	if res := db.First(&sw, "id = ?", id); res.Error != nil {
		if errors.Is(res.Error, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, models.NewNotFoundError("switch"))
		} else {
			api.SendInternalServerError(c, res.Error)
		}
		return
	}
	c.JSON(http.StatusOK, sw)
}

// createSwitch runs the guard chain for one switch create: validate fields,
// reject colliding hostname or IP, insert. Shared by the single and bulk
// create paths.
func (api *API) createSwitch(ctx context.Context, request models.AddSwitch) (*models.Switch, error) {
	if ve := request.Validate(); ve != nil {
		return nil, NewApiResponseError(http.StatusBadRequest, *ve)
	}

	var sw models.Switch
	err := api.transaction(ctx, func(tx *gorm.DB) error {
		var existing models.Switch
		res := tx.Where("hostname = ? OR ip_address = ?", request.Hostname, request.IPAddress).First(&existing)
		if res.Error == nil {
			return NewApiResponseError(http.StatusConflict, models.NewConflictsError(existing.ID))
		}
		if !errors.Is(res.Error, gorm.ErrRecordNotFound) {
			return res.Error
		}

		sw = models.Switch{
			Hostname:  request.Hostname,
			IPAddress: request.IPAddress,
			Model:     request.Model,
		}
		if res := tx.Create(&sw); res.Error != nil {
			if database.IsDuplicateError(res.Error) {
				return NewApiResponseError(http.StatusConflict, models.NewConflictsError(sw.ID))
			}
			return res.Error
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &sw, nil
}

// CreateSwitch handles adding a new switch
// @Summary      Add Switch
// @Description  Adds a new switch
// @Id           CreateSwitch
// @Tags         Switches
// @Accept       json
// @Produce      json
// @Param        Switch  body   models.AddSwitch  true "Add Switch"
// @Success      201  {object}  models.Switch
// @Failure      400  {object}  models.ValidationError
// @Failure      409  {object}  models.ConflictsError
// @Failure      500  {object}  models.InternalServerError "Internal Server Error"
// @Router       /api/switches [post]
func (api *API) CreateSwitch(c *gin.Context) {
	ctx, span := tracer.Start(c.Request.Context(), "CreateSwitch")
	defer span.End()

	var request models.AddSwitch
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, models.NewBadPayloadError())
		return
	}

	sw, err := api.createSwitch(ctx, request)
	if err != nil {
		api.sendError(c, err)
		return
	}
	span.SetAttributes(attribute.Int64("id", int64(sw.ID)))
	c.JSON(http.StatusCreated, sw)
}

// UpdateSwitch updates a switch
// @Summary      Update Switch
// @Description  Replaces the hostname, IP address and model of a switch
// @Id           UpdateSwitch
// @Tags         Switches
// @Accept       json
// @Produce      json
// @Param        id      path   string  true "Switch ID"
// @Param        update  body   models.UpdateSwitch true "Switch Update"
// @Success      200  {object}  models.Switch
// @Failure      400  {object}  models.ValidationError
// @Failure      404  {object}  models.NotFoundError
// @Failure      409  {object}  models.ConflictsError
// @Failure      500  {object}  models.InternalServerError "Internal Server Error"
// @Router       /api/switches/{id} [put]
func (api *API) UpdateSwitch(c *gin.Context) {
	ctx, span := tracer.Start(c.Request.Context(), "UpdateSwitch", trace.WithAttributes(
		attribute.String("id", c.Param("id")),
	))
	defer span.End()

	id, ok := uintParam(c, "id")
	if !ok {
		return
	}

	var request models.UpdateSwitch
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, models.NewBadPayloadError())
		return
	}
	if ve := request.Validate(); ve != nil {
		c.JSON(http.StatusBadRequest, *ve)
		return
	}

	var sw models.Switch
	err := api.transaction(ctx, func(tx *gorm.DB) error {
		if res := tx.First(&sw, "id = ?", id); res.Error != nil {
			if errors.Is(res.Error, gorm.ErrRecordNotFound) {
				return NewApiResponseError(http.StatusNotFound, models.NewNotFoundError("switch"))
			}
			return res.Error
		}

		var existing models.Switch
		res := tx.Where("id <> ? AND (hostname = ? OR ip_address = ?)", id, request.Hostname, request.IPAddress).First(&existing)
		if res.Error == nil {
			return NewApiResponseError(http.StatusConflict, models.NewConflictsError(existing.ID))
		}
		if !errors.Is(res.Error, gorm.ErrRecordNotFound) {
			return res.Error
		}

		sw.Hostname = request.Hostname
		sw.IPAddress = request.IPAddress
		sw.Model = request.Model
		if res := tx.Save(&sw); res.Error != nil {
			if database.IsDuplicateError(res.Error) {
				return NewApiResponseError(http.StatusConflict, models.NewConflictsError(sw.ID))
			}
			return res.Error
		}
		return nil
	})
	if err != nil {
		api.sendError(c, err)
		return
	}
	c.JSON(http.StatusOK, sw)
}

// DeleteSwitch handles deleting a switch and its associations
// @Summary      Delete Switch
// @Description  Deletes a switch; its VLAN associations are removed with it
// @Id           DeleteSwitch
// @Tags         Switches
// @Accept       json
// @Produce      json
// @Param        id   path      string  true "Switch ID"
// @Success      200  {object}  models.Switch
// @Failure      400  {object}  models.ValidationError
// @Failure      404  {object}  models.NotFoundError
// @Failure      500  {object}  models.InternalServerError "Internal Server Error"
// @Router       /api/switches/{id} [delete]
func (api *API) DeleteSwitch(c *gin.Context) {
	ctx, span := tracer.Start(c.Request.Context(), "DeleteSwitch", trace.WithAttributes(
		attribute.String("id", c.Param("id")),
	))
	defer span.End()

	id, ok := uintParam(c, "id")
	if !ok {
		return
	}

	var sw models.Switch
	err := api.transaction(ctx, func(tx *gorm.DB) error {
		if res := tx.First(&sw, "id = ?", id); res.Error != nil {
			if errors.Is(res.Error, gorm.ErrRecordNotFound) {
				return NewApiResponseError(http.StatusNotFound, models.NewNotFoundError("switch"))
			}
			return res.Error
		}
		if res := tx.Where("switch_id = ?", id).Delete(&models.Association{}); res.Error != nil {
			return res.Error
		}
		if res := tx.Delete(&models.Switch{}, id); res.Error != nil {
			return res.Error
		}
		return nil
	})
	if err != nil {
		api.sendError(c, err)
		return
	}
	c.JSON(http.StatusOK, sw)
}

// BulkCreateSwitches handles adding a batch of switches
// @Summary      Bulk Add Switches
// @Description  Adds each switch in the batch; one failing item never aborts the rest
// @Id           BulkCreateSwitches
// @Tags         Switches
// @Accept       json
// @Produce      json
// @Param        Switches  body   models.BulkAddSwitches  true "Switches"
// @Success      201  {object}  models.BulkSwitchesCreated
// @Failure      400  {object}  models.ValidationError
// @Failure      500  {object}  models.InternalServerError "Internal Server Error"
// @Router       /api/switches/bulk [post]
func (api *API) BulkCreateSwitches(c *gin.Context) {
	ctx, span := tracer.Start(c.Request.Context(), "BulkCreateSwitches")
	defer span.End()

	var request models.BulkAddSwitches
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, models.NewBadPayloadError())
		return
	}
	if len(request.Switches) == 0 {
		c.JSON(http.StatusBadRequest, models.NewFieldNotPresentError("switches"))
		return
	}

	created, errs := collectEach(request.Switches, "Switch",
		func(item models.AddSwitch) string { return item.Hostname },
		func(item models.AddSwitch) (*models.Switch, error) {
			return api.createSwitch(ctx, item)
		})

	c.JSON(http.StatusCreated, models.BulkSwitchesCreated{
		Created:  len(created),
		Total:    len(request.Switches),
		Switches: created,
		Errors:   errs,
	})
}

// BulkDeleteSwitches handles deleting a batch of switches
// @Summary      Bulk Delete Switches
// @Description  Deletes each listed switch, tallying how many existed; missing ids are skipped
// @Id           BulkDeleteSwitches
// @Tags         Switches
// @Accept       json
// @Produce      json
// @Param        SwitchIDs  body   models.BulkDeleteSwitches  true "Switch IDs"
// @Success      200  {object}  models.BulkDeleted
// @Failure      400  {object}  models.ValidationError
// @Failure      500  {object}  models.InternalServerError "Internal Server Error"
// @Router       /api/switches [delete]
func (api *API) BulkDeleteSwitches(c *gin.Context) {
	ctx, span := tracer.Start(c.Request.Context(), "BulkDeleteSwitches")
	defer span.End()

	var request models.BulkDeleteSwitches
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, models.NewBadPayloadError())
		return
	}
	if len(request.SwitchIDs) == 0 {
		c.JSON(http.StatusBadRequest, models.NewFieldNotPresentError("switch_ids"))
		return
	}

	deleted := deleteEach(request.SwitchIDs, func(id uint) (int64, error) {
		var n int64
		err := api.transaction(ctx, func(tx *gorm.DB) error {
			if res := tx.Where("switch_id = ?", id).Delete(&models.Association{}); res.Error != nil {
				return res.Error
			}
			res := tx.Delete(&models.Switch{}, id)
			n = res.RowsAffected
			return res.Error
		})
		return n, err
	})

	c.JSON(http.StatusOK, models.BulkDeleted{
		Requested: len(request.SwitchIDs),
		Deleted:   deleted,
	})
}
