package router

import "github.com/gin-gonic/gin"

func (r *Router) daycareRoutes(version *gin.RouterGroup) {
	daycares := version.Group("/daycares")
	{
		daycares.GET("", r.daycareHandler.Search)
		daycares.GET("/search", r.daycareHandler.Search)
		daycares.GET("/locations", r.daycareHandler.GetLocations)
		daycares.GET("/regions", r.daycareHandler.GetRegions)
		daycares.GET("/regions/:region/cities", r.daycareHandler.GetCitiesByRegion)
		daycares.GET("/program-ages", r.daycareHandler.GetProgramAges)
		daycares.GET("/types", r.daycareHandler.GetTypes)
		daycares.GET("/stats", r.daycareHandler.GetStats)
		daycares.GET("/:id", r.daycareHandler.GetByID)
	}
}
