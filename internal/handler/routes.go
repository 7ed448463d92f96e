package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Backends bundles everything the router mounts. Metrics is optional; when
// nil the /metrics endpoint is not registered.
type Backends struct {
	Students    *StudentHandler
	Courses     *CourseHandler
	Enrollments *EnrollmentHandler
	Stats       *StatsHandler
	Metrics     http.Handler
}

// Register mounts all routes on the engine under the given API prefix. The
// root and health probes stay outside the prefix.
func Register(r *gin.Engine, prefix string, b Backends) {
	r.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, "College Enrollments API is running!")
	})
	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "OK")
	})

	api := r.Group(prefix)

	students := api.Group("/students")
	{
		students.GET("", b.Students.List)
		students.GET("/:id", b.Students.Get)
		students.POST("", b.Students.Create)
		students.PUT("/:id", b.Students.Update)
		students.DELETE("/:id", b.Students.Delete)
	}

	courses := api.Group("/courses")
	{
		courses.GET("", b.Courses.List)
		courses.GET("/:id", b.Courses.Get)
		courses.POST("", b.Courses.Create)
		courses.PUT("/:id", b.Courses.Update)
		courses.DELETE("/:id", b.Courses.Delete)
	}

	enrollments := api.Group("/enrollments")
	{
		enrollments.GET("", b.Enrollments.List)
		enrollments.GET("/:id", b.Enrollments.Get)
		enrollments.POST("", b.Enrollments.Create)
		enrollments.PUT("/:id", b.Enrollments.UpdateGrade)
		enrollments.DELETE("/:id", b.Enrollments.Delete)
		enrollments.DELETE("", b.Enrollments.Unenroll)
	}

	api.GET("/stats", b.Stats.Get)

	if b.Metrics != nil {
		r.GET("/metrics", gin.WrapH(b.Metrics))
	}
}
