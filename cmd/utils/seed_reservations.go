// Dev helper: seeds a handful of reservation records into the
// Customers collection so the sign-in flow can be exercised locally.
//
//	go run ./cmd/utils -email you@example.com -phone +15551234567
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"guestgate-service/internal/domain/entity"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func main() {
	email := flag.String("email", "jane@example.com", "email to reserve")
	phone := flag.String("phone", "+15551234567", "phone to reserve")
	destination := flag.String("destination", "Cancun", "trip destination")
	flag.Parse()

	uri := os.Getenv("MONGODB_DSN")
	if uri == "" {
		uri = "mongodb://localhost:27017"
	}
	dbName := os.Getenv("MONGO_DB")
	if dbName == "" {
		dbName = "guestgate"
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		log.Fatalf("connect: %v", err)
	}
	defer client.Disconnect(context.Background())

	tripStart := time.Now().AddDate(0, 0, 7).Truncate(24 * time.Hour)
	tripEnd := tripStart.AddDate(0, 0, 7)

	records := []interface{}{
		&entity.Reservation{
			CustomerID:  "C-1001",
			Email:       *email,
			FirstName:   "Jane",
			LastName:    "Doe",
			TripID:      "T-9001",
			TripStart:   tripStart,
			TripEnd:     tripEnd,
			Destination: *destination,
		},
		&entity.Reservation{
			CustomerID:  "C-1002",
			Phone:       *phone,
			FirstName:   "John",
			LastName:    "Roe",
			TripID:      "T-9002",
			TripStart:   tripStart,
			TripEnd:     tripEnd,
			Destination: *destination,
		},
	}

	collection := client.Database(dbName).Collection("Customers")
	result, err := collection.InsertMany(ctx, records)
	if err != nil {
		log.Fatalf("insert: %v", err)
	}

	fmt.Printf("Seeded %d reservations into %s.Customers\n", len(result.InsertedIDs), dbName)
}
