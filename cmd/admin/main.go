// Admin CLI for the complaint system: seeding, listing, status changes and
// CSV export against the database directly, no HTTP involved.
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"quejas/backend/internal/config"
	"quejas/backend/internal/models"
	"quejas/backend/internal/report"
	"quejas/backend/internal/storage"

	"github.com/joho/godotenv"
)

func usage() {
	fmt.Println("Usage: admin <command> [args]")
	fmt.Println("Commands:")
	fmt.Println("  seed                       insert the initial entity directory")
	fmt.Println("  list                       list all complaints")
	fmt.Println("  set-status <id> <status>   update a complaint's status")
	fmt.Println("  delete <id>                delete one complaint")
	fmt.Println("  purge                      delete ALL complaints")
	fmt.Println("  export                     write the per-entity CSV report to stdout")
	os.Exit(1)
}

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: Error loading .env file")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := storage.Open(cfg)
	if err != nil {
		log.Fatalf("Failed to connect database: %v", err)
	}
	store := storage.NewStorageService(db)

	if len(os.Args) < 2 {
		usage()
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.DBConnTimeout)
	defer cancel()

	switch os.Args[1] {
	case "seed":
		if err := store.SeedEntities(ctx); err != nil {
			log.Fatalf("Error seeding entities: %v", err)
		}
		fmt.Println("Entity directory seeded.")

	case "list":
		complaints, err := store.ListComplaints(ctx)
		if err != nil {
			log.Fatalf("Error listing complaints: %v", err)
		}
		for _, c := range complaints {
			fmt.Printf("%d\t%s\t%s\t%s\t%s\n",
				c.ID, c.CreatedAt.Format(time.DateOnly), c.EntityName, c.Status, truncate(c.Description, 60))
		}
		fmt.Printf("%d complaints.\n", len(complaints))

	case "set-status":
		if len(os.Args) != 4 {
			usage()
		}
		id := parseID(os.Args[2])
		status := models.Status(os.Args[3])
		if !status.IsValid() {
			log.Fatalf("Invalid status %q. Valid: %v", os.Args[3], models.ValidStatuses)
		}
		ok, err := store.UpdateStatus(ctx, id, status)
		if err != nil {
			log.Fatalf("Error updating status: %v", err)
		}
		if !ok {
			log.Fatalf("Complaint %d not found.", id)
		}
		fmt.Printf("Complaint %d is now %s.\n", id, status)

	case "delete":
		if len(os.Args) != 3 {
			usage()
		}
		id := parseID(os.Args[2])
		ok, err := store.DeleteComplaint(ctx, id)
		if err != nil {
			log.Fatalf("Error deleting complaint: %v", err)
		}
		if !ok {
			log.Fatalf("Complaint %d not found.", id)
		}
		fmt.Printf("Complaint %d deleted.\n", id)

	case "purge":
		result := db.WithContext(ctx).Where("1 = 1").Delete(&models.Complaint{})
		if result.Error != nil {
			log.Fatalf("Error purging complaints: %v", result.Error)
		}
		fmt.Printf("Deleted %d complaints.\n", result.RowsAffected)

	case "export":
		counts, err := store.AggregateByEntity(ctx)
		if err != nil {
			log.Fatalf("Error building report: %v", err)
		}
		fmt.Print(report.RenderEntityCSV(counts, time.Now().Format(time.DateOnly)))

	default:
		usage()
	}
}

func parseID(raw string) uint {
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		log.Fatalf("Invalid id %q. Please provide a positive integer.", raw)
	}
	return uint(id)
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "…"
}
