package main

import (
	"context"
	"log"

	"github.com/laundromart/admin-api/internal/app/api"
)

func main() {
	if err := api.Run(context.Background()); err != nil {
		log.Fatalf("admin api: %v", err)
	}
}
