package middleware

import (
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func ConfigCORS(allowedDomains string) gin.HandlerFunc {
	return cors.New(cors.Config{
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept"},
		AllowCredentials: true,
		AllowOriginFunc: func(origin string) bool {
			for _, domain := range strings.Split(allowedDomains, ",") {
				if strings.Contains(origin, strings.TrimSpace(domain)) {
					return true
				}
			}

			return false
		},
		MaxAge: 12 * time.Hour,
	})
}
