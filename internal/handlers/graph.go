package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/switchyard-io/switchyard/internal/models"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"gorm.io/gorm"
)

// GetVlanGraph renders the topology projection for one VLAN
// @Summary      Get VLAN Graph
// @Description  Projects a display graph over the switches of a VLAN: one node per switch and an edge for every pair. The mesh is a display simplification, not a computed network path.
// @Id           GetVlanGraph
// @Tags         VLANs
// @Accept       json
// @Produce      json
// @Param        id   path      string  true "VLAN ID"
// @Success      200  {object}  []models.GraphElement
// @Failure      400  {object}  models.ValidationError
// @Failure      404  {object}  models.NotFoundError
// @Failure      500  {object}  models.InternalServerError "Internal Server Error"
// @Router       /api/vlans/{id}/graph [get]
func (api *API) GetVlanGraph(c *gin.Context) {
	ctx, span := tracer.Start(c.Request.Context(), "GetVlanGraph", trace.WithAttributes(
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

	switches, err := api.switchesInVlan(db, id)
	if err != nil {
		api.SendInternalServerError(c, err)
		return
	}

	// nodes first, in listing order, then one edge per unordered pair over
	// the same order
	elements := make([]models.GraphElement, 0, len(switches)*(len(switches)+1)/2)
	for _, sw := range switches {
		elements = append(elements, models.GraphElement{Data: models.GraphElementData{
			ID:        fmt.Sprintf("switch-%d", sw.ID),
			Label:     sw.Hostname,
			Hostname:  sw.Hostname,
			IPAddress: sw.IPAddress,
			Model:     sw.Model,
			Port:      sw.Port,
		}})
	}

	edgeLabel := fmt.Sprintf("VLAN %d", vlan.Tag)
	for i := 0; i < len(switches); i++ {
		for j := i + 1; j < len(switches); j++ {
			elements = append(elements, models.GraphElement{Data: models.GraphElementData{
				ID:     fmt.Sprintf("edge-%d-%d", switches[i].ID, switches[j].ID),
				Source: fmt.Sprintf("switch-%d", switches[i].ID),
				Target: fmt.Sprintf("switch-%d", switches[j].ID),
				Label:  edgeLabel,
			}})
		}
	}

	c.JSON(http.StatusOK, elements)
}
