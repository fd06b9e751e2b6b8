// app/seenmw.go
package app

import (
	"Gin_postgres_redis_library_lending/db"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

func TouchLastActive(repo *db.Repo, rdb *redis.Client, throttle time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		v, ok := c.Get("employeeID")
		if !ok {
			c.Next()
			return
		}
		eid, _ := v.(string)
		if eid == "" {
			c.Next()
			return
		}

		key := "employee:lastactive:" + eid
		if ok, _ := rdb.SetNX(c, key, "1", throttle).Result(); ok {
			_ = repo.Employees.TouchLastActive(c, eid) // 忽略错误，不阻塞请求
		}
		c.Next()
	}
}
