// Command usersvc serves the user records API.
package main

import (
	"context"
	"os"

	"github.com/gin-gonic/gin"
)

func main() {
	gin.SetMode(gin.ReleaseMode)

	if err := rootCmd(os.LookupEnv).ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}
