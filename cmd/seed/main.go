package main

import (
	"log"
	"math/rand"
	"os"
	"time"

	"pharma-warehouse-be/internal/model"
	"pharma-warehouse-be/pkg/database"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
)

// Seeds a small but realistic dataset: two stores, a handful of
// medications per category, 90 days of consumption history, and three
// suppliers with overlapping price lists.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("Info: No .env file found, using system env")
	}

	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		log.Fatal("Error: DB_CONNECTION_STRING is not set")
	}

	db, err := database.NewGormDBFromDSN(dsn)
	if err != nil {
		log.Fatal("Error: Failed to connect to database:", err)
	}

	log.Println("Seeding medications...")

	medications := []model.Medication{
		{Id: uuid.New(), Name: "Amoxicillin 500mg", Category: "antibiotic", StoreId: 1, CurrentStock: 120, ReorderPoint: 200, Unit: "capsule"},
		{Id: uuid.New(), Name: "Azithromycin 250mg", Category: "antibiotic", StoreId: 1, CurrentStock: 40, ReorderPoint: 150, Unit: "tablet"},
		{Id: uuid.New(), Name: "Paracetamol 500mg", Category: "analgesic", StoreId: 1, CurrentStock: 800, ReorderPoint: 300, Unit: "tablet"},
		{Id: uuid.New(), Name: "Ibuprofen 400mg", Category: "analgesic", StoreId: 1, CurrentStock: 90, ReorderPoint: 250, Unit: "tablet"},
		{Id: uuid.New(), Name: "Cetirizine 10mg", Category: "antihistamine", StoreId: 2, CurrentStock: 60, ReorderPoint: 100, Unit: "tablet"},
		{Id: uuid.New(), Name: "Omeprazole 20mg", Category: "antacid", StoreId: 2, CurrentStock: 450, ReorderPoint: 200, Unit: "capsule"},
		{Id: uuid.New(), Name: "Metformin 500mg", Category: "antidiabetic", StoreId: 2, CurrentStock: 30, ReorderPoint: 180, Unit: "tablet"},
	}
	for i := range medications {
		if err := db.Create(&medications[i]).Error; err != nil {
			log.Fatalf("Error: Failed to seed medication: %v", err)
		}
	}

	log.Println("Seeding consumption history (90 days)...")

	rng := rand.New(rand.NewSource(42))
	now := time.Now()
	for _, med := range medications {
		// Base demand scales loosely with reorder point.
		base := med.ReorderPoint / 30
		if base < 1 {
			base = 1
		}
		for day := 0; day < 90; day++ {
			qty := base + rng.Intn(base+2)
			record := model.ConsumptionRecord{
				Id:           uuid.New(),
				MedicationId: med.Id,
				StoreId:      med.StoreId,
				Quantity:     qty,
				ConsumedAt:   now.AddDate(0, 0, -day),
			}
			if err := db.Create(&record).Error; err != nil {
				log.Fatalf("Error: Failed to seed consumption record: %v", err)
			}
		}
	}

	log.Println("Seeding suppliers and price lists...")

	suppliers := []model.Supplier{
		{Id: uuid.New(), Name: "MediSupply Co", Status: "active", LeadTimeDays: 3},
		{Id: uuid.New(), Name: "PharmaDirect", Status: "active", LeadTimeDays: 5},
		{Id: uuid.New(), Name: "HealthSource Ltd", Status: "suspended", LeadTimeDays: 2},
	}
	for i := range suppliers {
		if err := db.Create(&suppliers[i]).Error; err != nil {
			log.Fatalf("Error: Failed to seed supplier: %v", err)
		}
	}

	for _, med := range medications {
		for i, supplier := range suppliers {
			// Each supplier carries most but not all medications.
			if (int(med.Id[0])+i)%4 == 0 {
				continue
			}
			price := model.SupplierPrice{
				Id:           uuid.New(),
				SupplierId:   supplier.Id,
				MedicationId: med.Id,
				UnitPrice:    0.05 + float64(rng.Intn(500))/100.0,
			}
			if err := db.Create(&price).Error; err != nil {
				log.Fatalf("Error: Failed to seed supplier price: %v", err)
			}
		}
	}

	log.Println("✅ Success: Seed data inserted.")
}
