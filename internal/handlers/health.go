package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// Live checks if the service is live
// @Summary      Checks if the service is live
// @Description  Checks if the service is live
// @Id           Live
// @Tags         Private
// @Accept       json
// @Produce      json
// @Success      200
// @Router       /healthz [get]
func (api *API) Live(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "UP",
		"service":   "switchyard-apiserver",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}
