// Command nacgen tabulates the adiabatic energies and coupling of every
// registered model into the files nacplot reads.
package main

import (
	"log"

	"go.uber.org/zap"

	"github.com/user/nacplot/internal/model"
	"github.com/user/nacplot/internal/parser"
)

func main() {
	config := zap.NewProductionConfig()
	config.Encoding = "console"
	logger, err := config.Build()
	if err != nil {
		log.Fatal("failed to initialize logger: ", err)
	}
	defer func() { _ = logger.Sync() }()

	if err := model.Generate(parser.Prefix, parser.DefaultRegistry, logger); err != nil {
		logger.Fatal("Generation failed", zap.Error(err))
	}
}
