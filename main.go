package main

import (
	"mediakeep/media-api/app"
	"mediakeep/media-api/config"

	"github.com/gin-gonic/gin"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

func main() {
	gin.SetMode(gin.ReleaseMode)

	err := config.Setup()
	if err != nil {
		panic(err)
	}

	router, err := app.NewRouter()
	if err != nil {
		panic(err)
	}

	addr := ":" + viper.GetString("host.port")
	zap.L().Info("Server starting", zap.String("addr", addr))

	err = router.Run(addr)
	if err != nil {
		panic(err)
	}
}
