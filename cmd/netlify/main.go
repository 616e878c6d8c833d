// Command netlify serves the cashier API as a Netlify Function. Requests
// arrive under /.netlify/functions/api or, through a redirect, under /api.
package main

import (
	"context"
	"log"

	"kasjer/internal/app"
	"kasjer/internal/config"
	"kasjer/internal/transport"

	"github.com/aws/aws-lambda-go/lambda"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Nie można wczytać konfiguracji: %v", err)
	}

	a, err := app.New(context.Background(), cfg, app.Options{})
	if err != nil {
		log.Fatalf("Nie można zainicjować aplikacji: %v", err)
	}

	lambda.Start(transport.LambdaHandler(a.Handler))
}
