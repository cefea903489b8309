package main

import (
	"intelwire/cmd/handlers"
	"intelwire/internal/logger"
)

func main() {
	logger.Init()
	handlers.Execute()
}
