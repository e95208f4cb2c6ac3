package main

import (
	"neighborly/cmd/handlers"
	"neighborly/internal/logger"
)

func main() {
	logger.Init()
	handlers.Execute()
}
