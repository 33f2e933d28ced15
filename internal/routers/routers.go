package routers

import (
	"context"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	ginzap "github.com/gin-contrib/zap"
	"github.com/gin-gonic/gin"
	"github.com/switchyard-io/switchyard/internal/handlers"
	ginprometheus "github.com/zsais/go-gin-prometheus"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const name = "github.com/switchyard-io/switchyard/internal/routers"

type APIRouterOptions struct {
	Logger    *zap.SugaredLogger
	Api       *handlers.API
	JWTSecret string
}

func NewAPIRouter(ctx context.Context, o APIRouterOptions) (*gin.Engine, error) {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()

	loggerMiddleware := ginzap.GinzapWithConfig(o.Logger.Desugar(), &ginzap.Config{
		TimeFormat: time.RFC3339,
		UTC:        true,
		Context: func(c *gin.Context) []zapcore.Field {
			return []zapcore.Field{
				zap.String("traceID", trace.SpanFromContext(c.Request.Context()).SpanContext().TraceID().String()),
			}
		},
	})

	r.Use(otelgin.Middleware(name, otelgin.WithPropagators(
		propagation.TraceContext{},
	)))
	r.Use(ginzap.RecoveryWithZap(o.Logger.Desugar(), true))

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowAllOrigins = true
	corsConfig.AllowHeaders = append(corsConfig.AllowHeaders, "Authorization")
	r.Use(cors.New(corsConfig))

	newPrometheus().Use(r)

	auth := r.Group("/api/auth", loggerMiddleware)
	{
		auth.POST("/login", o.Api.Login)
		auth.POST("/register", o.Api.Register)
		auth.POST("/logout", o.Api.Logout)
	}

	private := r.Group("/api", loggerMiddleware)
	{
		api := o.Api
		private.Use(ValidateJWT(o.Logger, []byte(o.JWTSecret)))

		// Switches
		private.GET("/switches", api.ListSwitches)
		private.POST("/switches", api.CreateSwitch)
		private.POST("/switches/bulk", api.BulkCreateSwitches)
		private.DELETE("/switches", api.BulkDeleteSwitches)
		private.GET("/switches/:id", api.GetSwitch)
		private.PUT("/switches/:id", api.UpdateSwitch)
		private.DELETE("/switches/:id", api.DeleteSwitch)
		private.GET("/switches/:id/vlans", api.ListVlansForSwitch)

		// VLANs
		private.GET("/vlans", api.ListVlans)
		private.POST("/vlans", api.CreateVlan)
		private.POST("/vlans/bulk", api.BulkCreateVlans)
		private.DELETE("/vlans", api.BulkDeleteVlans)
		private.GET("/vlans/:id", api.GetVlan)
		private.PUT("/vlans/:id", api.UpdateVlan)
		private.DELETE("/vlans/:id", api.DeleteVlan)

		// Memberships of a VLAN
		private.GET("/vlans/:id/switches", api.ListSwitchesForVlan)
		private.POST("/vlans/:id/switches/bulk", api.BulkAssociate)
		private.DELETE("/vlans/:id/switches/bulk", api.BulkDisassociate)
		private.POST("/vlans/:id/switches/:switchId", api.AssociateSwitchVlan)
		private.PUT("/vlans/:id/switches/:switchId", api.UpdateAssociationPort)
		private.DELETE("/vlans/:id/switches/:switchId", api.DisassociateSwitchVlan)

		// Topology
		private.GET("/vlans/:id/graph", api.GetVlanGraph)
	}

	// Don't log the health checks.
	r.GET("/healthz", o.Api.Live)

	return r, nil
}

func newPrometheus() *ginprometheus.Prometheus {
	p := ginprometheus.NewPrometheus("apiserver")
	p.ReqCntURLLabelMappingFn = func(c *gin.Context) string {
		url := c.Request.URL.Path
		for _, p := range c.Params {
			if p.Key == "id" {
				url = strings.Replace(url, p.Value, ":id", 1)
				break
			}
		}
		return url
	}
	return p
}
