package handlers

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/switchyard-io/switchyard/internal/database"
	"github.com/switchyard-io/switchyard/internal/models"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"gorm.io/gorm"
)

const maxPortLabelLength = 50

func validatePort(port *string) *ApiResponseError {
	if port != nil && len(*port) > maxPortLabelLength {
		return NewApiResponseError(http.StatusBadRequest,
			models.NewFieldValidationError("port", "must be at most 50 characters"))
	}
	return nil
}

// associate runs the guard chain for linking a switch into a VLAN: the VLAN
// must exist, the switch must exist, the pair must not already be linked.
// Shared by the single and bulk associate paths.
func (api *API) associate(ctx context.Context, vlanID, switchID uint, port *string) (*models.AssociationDetail, error) {
	if err := validatePort(port); err != nil {
		return nil, err
	}

	var detail models.AssociationDetail
	err := api.transaction(ctx, func(tx *gorm.DB) error {
		var vlan models.Vlan
		if res := tx.First(&vlan, "id = ?", vlanID); res.Error != nil {
			if errors.Is(res.Error, gorm.ErrRecordNotFound) {
				return NewApiResponseError(http.StatusNotFound, models.NewNotFoundError("vlan"))
			}
			return res.Error
		}

		var sw models.Switch
		if res := tx.First(&sw, "id = ?", switchID); res.Error != nil {
			if errors.Is(res.Error, gorm.ErrRecordNotFound) {
				return NewApiResponseError(http.StatusNotFound, models.NewNotFoundError("switch"))
			}
			return res.Error
		}

		var existing models.Association
		res := tx.Where("vlan_id = ? AND switch_id = ?", vlanID, switchID).First(&existing)
		if res.Error == nil {
			return NewApiResponseError(http.StatusConflict, models.NewConflictsError(existing.ID))
		}
		if !errors.Is(res.Error, gorm.ErrRecordNotFound) {
			return res.Error
		}

		assoc := models.Association{
			VlanID:   vlanID,
			SwitchID: switchID,
			Port:     port,
		}
		if res := tx.Create(&assoc); res.Error != nil {
			if database.IsDuplicateError(res.Error) {
				return NewApiResponseError(http.StatusConflict, models.NewConflictsError(assoc.ID))
			}
			return res.Error
		}

		detail = models.AssociationDetail{
			ID:             assoc.ID,
			VlanID:         vlanID,
			SwitchID:       switchID,
			VlanName:       vlan.Name,
			SwitchHostname: sw.Hostname,
			Port:           port,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &detail, nil
}

// AssociateSwitchVlan links a switch into a VLAN
// @Summary      Add Switch to VLAN
// @Description  Links a switch into a VLAN with an optional port label
// @Id           AssociateSwitchVlan
// @Tags         Associations
// @Accept       json
// @Produce      json
// @Param        id        path   string  true "VLAN ID"
// @Param        switchId  path   string  true "Switch ID"
// @Param        body      body   models.AddAssociation false "Port label"
// @Success      201  {object}  models.AssociationDetail
// @Failure      400  {object}  models.ValidationError
// @Failure      404  {object}  models.NotFoundError
// @Failure      409  {object}  models.ConflictsError
// @Failure      500  {object}  models.InternalServerError "Internal Server Error"
// @Router       /api/vlans/{id}/switches/{switchId} [post]
func (api *API) AssociateSwitchVlan(c *gin.Context) {
	ctx, span := tracer.Start(c.Request.Context(), "AssociateSwitchVlan", trace.WithAttributes(
		attribute.String("id", c.Param("id")),
		attribute.String("switchId", c.Param("switchId")),
	))
	defer span.End()

	vlanID, ok := uintParam(c, "id")
	if !ok {
		return
	}
	switchID, ok := uintParam(c, "switchId")
	if !ok {
		return
	}

	// the body is optional, an empty one means no port label
	var request models.AddAssociation
	if err := c.ShouldBindJSON(&request); err != nil && !errors.Is(err, io.EOF) {
		c.JSON(http.StatusBadRequest, models.NewBadPayloadError())
		return
	}

	detail, err := api.associate(ctx, vlanID, switchID, request.Port)
	if err != nil {
		api.sendError(c, err)
		return
	}
	c.JSON(http.StatusCreated, detail)
}

// DisassociateSwitchVlan removes a switch from a VLAN
// @Summary      Remove Switch from VLAN
// @Description  Removes the association between a switch and a VLAN
// @Id           DisassociateSwitchVlan
// @Tags         Associations
// @Accept       json
// @Produce      json
// @Param        id        path   string  true "VLAN ID"
// @Param        switchId  path   string  true "Switch ID"
// @Success      200  {object}  models.Association
// @Failure      400  {object}  models.ValidationError
// @Failure      404  {object}  models.NotFoundError
// @Failure      500  {object}  models.InternalServerError "Internal Server Error"
// @Router       /api/vlans/{id}/switches/{switchId} [delete]
func (api *API) DisassociateSwitchVlan(c *gin.Context) {
	ctx, span := tracer.Start(c.Request.Context(), "DisassociateSwitchVlan", trace.WithAttributes(
		attribute.String("id", c.Param("id")),
		attribute.String("switchId", c.Param("switchId")),
	))
	defer span.End()

	vlanID, ok := uintParam(c, "id")
	if !ok {
		return
	}
	switchID, ok := uintParam(c, "switchId")
	if !ok {
		return
	}

	var assoc models.Association
	err := api.transaction(ctx, func(tx *gorm.DB) error {
		if res := tx.First(&assoc, "vlan_id = ? AND switch_id = ?", vlanID, switchID); res.Error != nil {
			if errors.Is(res.Error, gorm.ErrRecordNotFound) {
				return NewApiResponseError(http.StatusNotFound, models.NewNotFoundError("association"))
			}
			return res.Error
		}
		return tx.Delete(&models.Association{}, assoc.ID).Error
	})
	if err != nil {
		api.sendError(c, err)
		return
	}
	c.JSON(http.StatusOK, assoc)
}

// UpdateAssociationPort replaces the port label of an association
// @Summary      Update Switch Port in VLAN
// @Description  Replaces the port label on an existing switch-VLAN association
// @Id           UpdateAssociationPort
// @Tags         Associations
// @Accept       json
// @Produce      json
// @Param        id        path   string  true "VLAN ID"
// @Param        switchId  path   string  true "Switch ID"
// @Param        update    body   models.UpdateAssociation true "Port label"
// @Success      200  {object}  models.Association
// @Failure      400  {object}  models.ValidationError
// @Failure      404  {object}  models.NotFoundError
// @Failure      500  {object}  models.InternalServerError "Internal Server Error"
// @Router       /api/vlans/{id}/switches/{switchId} [put]
func (api *API) UpdateAssociationPort(c *gin.Context) {
	ctx, span := tracer.Start(c.Request.Context(), "UpdateAssociationPort", trace.WithAttributes(
		attribute.String("id", c.Param("id")),
		attribute.String("switchId", c.Param("switchId")),
	))
	defer span.End()

	vlanID, ok := uintParam(c, "id")
	if !ok {
		return
	}
	switchID, ok := uintParam(c, "switchId")
	if !ok {
		return
	}

	var request models.UpdateAssociation
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, models.NewBadPayloadError())
		return
	}
	if verr := validatePort(request.Port); verr != nil {
		c.JSON(verr.Status, verr.Body)
		return
	}

	var assoc models.Association
	err := api.transaction(ctx, func(tx *gorm.DB) error {
		if res := tx.First(&assoc, "vlan_id = ? AND switch_id = ?", vlanID, switchID); res.Error != nil {
			if errors.Is(res.Error, gorm.ErrRecordNotFound) {
				return NewApiResponseError(http.StatusNotFound, models.NewNotFoundError("association"))
			}
			return res.Error
		}

		// the schema keeps no separate update column for associations,
		// a port change refreshes created_at
		now := time.Now()
		res := tx.Model(&models.Association{}).Where("id = ?", assoc.ID).
			Updates(map[string]interface{}{"port": request.Port, "created_at": now})
		if res.Error != nil {
			return res.Error
		}
		assoc.Port = request.Port
		assoc.CreatedAt = now
		return nil
	})
	if err != nil {
		api.sendError(c, err)
		return
	}
	c.JSON(http.StatusOK, assoc)
}

// ListSwitchesForVlan lists the switches associated with a VLAN
// @Summary      List Switches in VLAN
// @Description  Lists the switches associated with a VLAN, ordered by hostname
// @Id           ListSwitchesForVlan
// @Tags         Associations
// @Accept       json
// @Produce      json
// @Param        id   path      string  true "VLAN ID"
// @Success      200  {object}  models.VlanSwitches
// @Failure      400  {object}  models.ValidationError
// @Failure      404  {object}  models.NotFoundError
// @Failure      500  {object}  models.InternalServerError "Internal Server Error"
// @Router       /api/vlans/{id}/switches [get]
func (api *API) ListSwitchesForVlan(c *gin.Context) {
	ctx, span := tracer.Start(c.Request.Context(), "ListSwitchesForVlan", trace.WithAttributes(
		attribute.String("id", c.Param("id")),
	))
	defer span.End()

	id, ok := uintParam(c, "id")
	if !ok {
		return
	}

	db := api.db.WithContext(ctx)
	var vlan models.Vlan
	if res := db.First(&vlan, "id = ?", id); res.Error != nil {
		if errors.Is(res.Error, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, models.NewNotFoundError("vlan"))
		} else {
			api.SendInternalServerError(c, res.Error)
		}
		return
	}

	rows, err := api.switchesInVlan(db, id)
	if err != nil {
		api.SendInternalServerError(c, err)
		return
	}
	c.JSON(http.StatusOK, models.VlanSwitches{
		Vlan:     vlan,
		Switches: rows,
	})
}

func (api *API) switchesInVlan(db *gorm.DB, vlanID uint) ([]models.SwitchInVlan, error) {
	rows := make([]models.SwitchInVlan, 0)
	res := db.Table("associations").
		Select("switches.id AS id, switches.hostname, switches.ip_address, switches.model, switches.created_at, associations.port, associations.id AS association_id").
		Joins("JOIN switches ON switches.id = associations.switch_id").
		Where("associations.vlan_id = ?", vlanID).
		Order("switches.hostname").
		Scan(&rows)
	if res.Error != nil {
		return nil, res.Error
	}
	return rows, nil
}

// ListVlansForSwitch lists the VLANs a switch belongs to
// @Summary      List VLANs of Switch
// @Description  Lists the VLANs a switch belongs to, ordered by tag
// @Id           ListVlansForSwitch
// @Tags         Associations
// @Accept       json
// @Produce      json
// @Param        id   path      string  true "Switch ID"
// @Success      200  {object}  models.SwitchVlans
// @Failure      400  {object}  models.ValidationError
// @Failure      404  {object}  models.NotFoundError
// @Failure      500  {object}  models.InternalServerError "Internal Server Error"
// @Router       /api/switches/{id}/vlans [get]
func (api *API) ListVlansForSwitch(c *gin.Context) {
	ctx, span := tracer.Start(c.Request.Context(), "ListVlansForSwitch", trace.WithAttributes(
		attribute.String("id", c.Param("id")),
	))
	defer span.End()

	id, ok := uintParam(c, "id")
	if !ok {
		return
	}

	db := api.db.WithContext(ctx)
	var sw models.Switch
	if res := db.First(&sw, "id = ?", id); res.Error != nil {
		if errors.Is(res.Error, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, models.NewNotFoundError("switch"))
		} else {
			api.SendInternalServerError(c, res.Error)
		}
		return
	}

	rows := make([]models.VlanInSwitch, 0)
	res := db.Table("associations").
		Select("vlans.id AS id, vlans.name, vlans.tag, vlans.created_at, associations.port, associations.id AS association_id").
		Joins("JOIN vlans ON vlans.id = associations.vlan_id").
		Where("associations.switch_id = ?", id).
		Order("vlans.tag").
		Scan(&rows)
	if res.Error != nil {
		api.SendInternalServerError(c, res.Error)
		return
	}
	c.JSON(http.StatusOK, models.SwitchVlans{
		Switch: sw,
		Vlans:  rows,
	})
}

// BulkAssociate links a batch of switches into a VLAN
// @Summary      Bulk Add Switches to VLAN
// @Description  Links each listed switch into the VLAN; one failing item never aborts the rest
// @Id           BulkAssociate
// @Tags         Associations
// @Accept       json
// @Produce      json
// @Param        id        path   string  true "VLAN ID"
// @Param        Switches  body   models.BulkAssociate  true "Switches"
// @Success      201  {object}  models.BulkAssociated
// @Failure      400  {object}  models.ValidationError
// @Failure      404  {object}  models.NotFoundError
// @Failure      500  {object}  models.InternalServerError "Internal Server Error"
// @Router       /api/vlans/{id}/switches/bulk [post]
func (api *API) BulkAssociate(c *gin.Context) {
	ctx, span := tracer.Start(c.Request.Context(), "BulkAssociate", trace.WithAttributes(
		attribute.String("id", c.Param("id")),
	))
	defer span.End()

	vlanID, ok := uintParam(c, "id")
	if !ok {
		return
	}

	var request models.BulkAssociate
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, models.NewBadPayloadError())
		return
	}
	if len(request.Switches) == 0 {
		c.JSON(http.StatusBadRequest, models.NewFieldNotPresentError("switches"))
		return
	}

	// the anchor VLAN is checked once up front; per-item tolerance covers
	// the switches, not the anchor
	var vlan models.Vlan
	if res := api.db.WithContext(ctx).First(&vlan, "id = ?", vlanID); res.Error != nil {
		if errors.Is(res.Error, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, models.NewNotFoundError("vlan"))
		} else {
			api.SendInternalServerError(c, res.Error)
		}
		return
	}

	added, errs := collectEach(request.Switches, "Switch",
		func(item models.BulkAssociateItem) string { return fmt.Sprintf("ID: %d", item.SwitchID) },
		func(item models.BulkAssociateItem) (models.AssociationDetail, error) {
			if item.SwitchID == 0 {
				return models.AssociationDetail{}, NewApiResponseError(http.StatusBadRequest,
					models.NewFieldNotPresentError("switch_id"))
			}
			detail, err := api.associate(ctx, vlanID, item.SwitchID, item.Port)
			if err != nil {
				return models.AssociationDetail{}, err
			}
			return *detail, nil
		})

	c.JSON(http.StatusCreated, models.BulkAssociated{
		VlanID:       vlanID,
		Added:        len(added),
		Total:        len(request.Switches),
		Associations: added,
		Errors:       errs,
	})
}

// BulkDisassociate removes a batch of switches from a VLAN
// @Summary      Bulk Remove Switches from VLAN
// @Description  Removes each listed switch from the VLAN, tallying how many were linked; unlinked ids are skipped
// @Id           BulkDisassociate
// @Tags         Associations
// @Accept       json
// @Produce      json
// @Param        id         path   string  true "VLAN ID"
// @Param        SwitchIDs  body   models.BulkDisassociate  true "Switch IDs"
// @Success      200  {object}  models.BulkDisassociated
// @Failure      400  {object}  models.ValidationError
// @Failure      404  {object}  models.NotFoundError
// @Failure      500  {object}  models.InternalServerError "Internal Server Error"
// @Router       /api/vlans/{id}/switches/bulk [delete]
func (api *API) BulkDisassociate(c *gin.Context) {
	ctx, span := tracer.Start(c.Request.Context(), "BulkDisassociate", trace.WithAttributes(
		attribute.String("id", c.Param("id")),
	))
	defer span.End()

	vlanID, ok := uintParam(c, "id")
	if !ok {
		return
	}

	var request models.BulkDisassociate
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, models.NewBadPayloadError())
		return
	}
	if len(request.SwitchIDs) == 0 {
		c.JSON(http.StatusBadRequest, models.NewFieldNotPresentError("switch_ids"))
		return
	}

	var vlan models.Vlan
	if res := api.db.WithContext(ctx).First(&vlan, "id = ?", vlanID); res.Error != nil {
		if errors.Is(res.Error, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, models.NewNotFoundError("vlan"))
		} else {
			api.SendInternalServerError(c, res.Error)
		}
		return
	}

	removed := deleteEach(request.SwitchIDs, func(switchID uint) (int64, error) {
		res := api.db.WithContext(ctx).
			Where("vlan_id = ? AND switch_id = ?", vlanID, switchID).
			Delete(&models.Association{})
		return res.RowsAffected, res.Error
	})

	c.JSON(http.StatusOK, models.BulkDisassociated{
		VlanID:    vlanID,
		Requested: len(request.SwitchIDs),
		Removed:   removed,
	})
}
