package main

// @title Native Bridge APIs
// @version 1.0
// @description Bridge calls for spell-check suggestions and push token sync.

// @host localhost:9089
// @BasePath /
// @schemes http
import (
	"os"

	_ "nativebridge/docs"
	"nativebridge/internal/cli"

	"github.com/sirupsen/logrus"
)

func main() {
	if err := cli.Execute(); err != nil {
		logrus.Println(err)
		os.Exit(1)
	}
}
