//go:build ignore

package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"time"

	"github.com/odc-estimate/internal/domain"
	"github.com/redis/go-redis/v9"
)

func ptr[T any](v T) *T {
	return &v
}

func main() {
	redisAddr := flag.String("redis", "localhost:6379", "Redis address for streams")
	group := flag.String("group", "enquiry-notification-workers", "Consumer group of the notification worker")
	flag.Parse()

	client := redis.NewClient(&redis.Options{
		Addr: *redisAddr,
	})
	defer client.Close()

	ctx := context.Background()

	if err := client.Ping(ctx).Err(); err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}

	// Тестовая заявка Mumbai → Pune
	event := domain.EnquiryCreatedEvent{
		Enquiry: domain.Enquiry{
			ID:            time.Now().Unix(),
			StartLocation: "Mumbai, Maharashtra, India",
			EndLocation:   "Pune, Maharashtra, India",
			Email:         "ops@example.com",
			Phone:         "+91 98200 00000",
			Height:        "4 - 4.5m",
			Length:        "12m",
			Width:         "3m",
			Weight:        "50 - 100 tons",
			CreatedAt:     time.Now().UTC(),
		},
		From: &domain.PlaceSummary{
			Label: "Mumbai", City: "Mumbai", State: "Maharashtra", Country: "India",
			Lat: ptr(19.0760), Lng: ptr(72.8777),
		},
		To: &domain.PlaceSummary{
			Label: "Pune", City: "Pune", State: "Maharashtra", Country: "India",
			Lat: ptr(18.5204), Lng: ptr(73.8567),
		},
		VolumeM3:   ptr(162.0),
		TruckClass: "ODC",
	}

	data, err := json.Marshal(event)
	if err != nil {
		log.Fatalf("Failed to marshal event: %v", err)
	}

	id, err := client.XAdd(ctx, &redis.XAddArgs{
		Stream: domain.StreamEnquiryCreated,
		Values: map[string]interface{}{
			"data": string(data),
		},
	}).Result()
	if err != nil {
		log.Fatalf("Failed to publish event: %v", err)
	}

	fmt.Printf("Event published\n")
	fmt.Printf("   Stream: %s\n", domain.StreamEnquiryCreated)
	fmt.Printf("   Message ID: %s\n", id)
	fmt.Printf("   Enquiry ID: %d\n", event.Enquiry.ID)

	// ждём, пока worker заберёт и подтвердит сообщение
	fmt.Printf("\nWaiting for group %q to ack...\n", *group)

	timeout := time.After(30 * time.Second)
	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()

	delivered := false
	for {
		select {
		case <-timeout:
			fmt.Println("Timeout waiting for the notification worker")
			return
		case <-ticker.C:
			groups, err := client.XInfoGroups(ctx, domain.StreamEnquiryCreated).Result()
			if err != nil {
				continue
			}
			for _, g := range groups {
				if g.Name != *group {
					continue
				}
				if !delivered && g.LastDeliveredID >= id {
					delivered = true
					fmt.Println("Delivered to worker")
				}
				if delivered && g.Pending == 0 {
					fmt.Println("Acked, e-mail sent")
					return
				}
			}
		}
	}
}
