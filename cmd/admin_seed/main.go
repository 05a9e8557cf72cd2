// Command admin_seed inserts the singleton admin payment document the
// charge pipeline reads: the merchant PIX key, the charge expiration
// window and the request-type label. It refuses to overwrite an existing
// record.
package main

import (
	"context"
	"log"
	"os"
	"time"

	"go.mongodb.org/mongo-driver/bson"

	"pixcharge/internal/config"
	"pixcharge/internal/repositories"
)

func main() {
	config.LoadEnv()
	cfg := config.Load()

	pixKey := os.Getenv("ADMIN_PIX_KEY")
	requestType := os.Getenv("ADMIN_PIX_REQUEST_TYPE")
	expiration := config.GetIntEnv("ADMIN_PIX_EXPIRATION_SECONDS", 0)

	if pixKey == "" || requestType == "" || expiration <= 0 {
		log.Fatal("ADMIN_PIX_KEY, ADMIN_PIX_REQUEST_TYPE and ADMIN_PIX_EXPIRATION_SECONDS must be set")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	client, err := repositories.NewMongoClient(ctx, cfg.MongoURI, cfg.ServiceName+"-seed")
	if err != nil {
		log.Fatalf("connect: %v", err)
	}
	defer func() {
		if err := client.Disconnect(context.Background()); err != nil {
			log.Printf("disconnect: %v", err)
		}
	}()

	payment := client.Database(repositories.AdminDatabase).Collection("payment")

	count, err := payment.CountDocuments(ctx, bson.D{})
	if err != nil {
		log.Fatalf("check existing admin record: %v", err)
	}
	if count > 0 {
		log.Println("admin record already exists")
		return
	}

	_, err = payment.InsertOne(ctx, bson.M{
		"pix_key":             pixKey,
		"pix_expiration_time": expiration,
		"payment_request_types": bson.M{
			"pix_service_payment": requestType,
		},
	})
	if err != nil {
		log.Fatalf("insert admin record: %v", err)
	}

	log.Println("admin record created")
}
