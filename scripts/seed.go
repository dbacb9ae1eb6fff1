package main

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres"
	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/healthhub/healthhub-backend/internal/adapters/database"
	"github.com/healthhub/healthhub-backend/internal/adapters/search"
	"github.com/healthhub/healthhub-backend/internal/application/services"
	"github.com/healthhub/healthhub-backend/internal/domain/entities"
	"github.com/healthhub/healthhub-backend/internal/infrastructure/clients/postgres"
	"github.com/healthhub/healthhub-backend/internal/infrastructure/clients/typesense"
	"github.com/healthhub/healthhub-backend/pkg/config"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	pgClient, err := postgres.NewClient(&cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to DB: %v", err)
	}
	defer pgClient.Close()

	ctx := context.Background()
	db := goqu.New("postgres", pgClient.DB())

	if os.Getenv("RESET_DB") == "true" {
		log.Println("RESET_DB=true detected, truncating tables before seeding")
		_, err := pgClient.DB().ExecContext(ctx, `
			TRUNCATE TABLE
				payments,
				appointments,
				availabilities,
				lab_reports,
				lab_tests,
				labs,
				medicine_records,
				blood_banks,
				patients,
				doctors
			RESTART IDENTITY CASCADE
		`)
		if err != nil {
			log.Fatalf("Failed to reset tables: %v", err)
		}
	}

	now := time.Now()

	// 1. Seed doctors
	doctors := []entities.Doctor{
		{ID: uuid.New().String(), FullName: "Dr. Adaeze Okonkwo", Specialist: "Cardiologist", Email: "a.okonkwo@healthhub.test", Phone: "+2348011110001", Experience: 12, Status: entities.DoctorStatusApproved, CreatedAt: now, UpdatedAt: now},
		{ID: uuid.New().String(), FullName: "Dr. Emeka Balogun", Specialist: "Dermatologist", Email: "e.balogun@healthhub.test", Phone: "+2348011110002", Experience: 7, Status: entities.DoctorStatusApproved, CreatedAt: now, UpdatedAt: now},
		{ID: uuid.New().String(), FullName: "Dr. Funke Adeyemi", Specialist: "Pediatrician", Email: "f.adeyemi@healthhub.test", Phone: "+2348011110003", Experience: 9, Status: entities.DoctorStatusApproved, CreatedAt: now, UpdatedAt: now},
		{ID: uuid.New().String(), FullName: "Dr. Ibrahim Suleiman", Specialist: "General Physician", Email: "i.suleiman@healthhub.test", Phone: "+2348011110004", Experience: 15, Status: entities.DoctorStatusApproved, CreatedAt: now, UpdatedAt: now},
		{ID: uuid.New().String(), FullName: "Dr. Ngozi Eze", Specialist: "Gynecologist", Email: "n.eze@healthhub.test", Phone: "+2348011110005", Experience: 11, Status: entities.DoctorStatusPending, CreatedAt: now, UpdatedAt: now},
	}

	for _, d := range doctors {
		query, args, err := db.Insert("doctors").Rows(goqu.Record{
			"id": d.ID, "full_name": d.FullName, "specialist": d.Specialist,
			"email": d.Email, "phone": d.Phone, "experience": d.Experience,
			"profile_picture": nil, "status": d.Status,
			"created_at": d.CreatedAt, "updated_at": d.UpdatedAt,
		}).ToSQL()
		if err != nil {
			log.Fatalf("Failed to build doctor insert: %v", err)
		}
		if _, err := pgClient.DB().ExecContext(ctx, query, args...); err != nil {
			log.Printf("Failed to create doctor %s: %v", d.FullName, err)
		}
	}

	// 2. Seed availability windows for the next seven days. Each approved
	// doctor gets a morning online window and an afternoon clinic window.
	clinic := entities.Location{
		Address:   "14 Awolowo Road, Ikoyi, Lagos",
		Latitude:  6.4432,
		Longitude: 3.4211,
	}

	for _, d := range doctors {
		if d.Status != entities.DoctorStatusApproved {
			continue
		}
		for day := 1; day <= 7; day++ {
			date := now.AddDate(0, 0, day)
			dateStr := date.Format("2006-01-02")

			morning := time.Date(date.Year(), date.Month(), date.Day(), 9, 0, 0, 0, time.UTC)
			afternoon := time.Date(date.Year(), date.Month(), date.Day(), 14, 0, 0, 0, time.UTC)

			windows := []goqu.Record{
				{
					"id": uuid.New().String(), "doctor_id": d.ID, "date": dateStr,
					"start_time": morning, "end_time": morning.Add(3 * time.Hour),
					"slot_duration": 15, "mode": entities.ModeOnline,
					"address": nil, "latitude": nil, "longitude": nil,
					"price": 50.00,
				},
				{
					"id": uuid.New().String(), "doctor_id": d.ID, "date": dateStr,
					"start_time": afternoon, "end_time": afternoon.Add(3 * time.Hour),
					"slot_duration": 30, "mode": entities.ModePhysical,
					"address": clinic.Address, "latitude": clinic.Latitude, "longitude": clinic.Longitude,
					"price": 75.00,
				},
			}

			for _, w := range windows {
				query, args, err := db.Insert("availabilities").Rows(w).ToSQL()
				if err != nil {
					log.Fatalf("Failed to build availability insert: %v", err)
				}
				if _, err := pgClient.DB().ExecContext(ctx, query, args...); err != nil {
					log.Printf("Failed to create availability for %s on %s: %v", d.FullName, dateStr, err)
				}
			}
		}
	}

	// 3. Seed a demo patient with a complete profile
	patientRepo := database.NewPatientAdapter(pgClient)
	patient := &entities.Patient{
		ID:          "demo-patient",
		FullName:    "Chidi Nwosu",
		Email:       "chidi.nwosu@healthhub.test",
		Phone:       "+2348022220001",
		DateOfBirth: "1992-04-18",
		Gender:      "male",
		BloodGroup:  "O+",
		Allergies:   "penicillin",
		Status:      entities.ProfileStatusComplete,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := patientRepo.Upsert(ctx, patient); err != nil {
		log.Printf("Failed to create demo patient: %v", err)
	}

	// 4. Seed labs and their tests
	labs := []struct {
		lab   entities.Lab
		tests []entities.LabTest
	}{
		{
			lab: entities.Lab{ID: uuid.New().String(), Name: "Clina-Lancet Laboratories", Address: "4 Amodu Ojikutu St, Victoria Island, Lagos", Phone: "+2348033330001", Status: "approved", CreatedAt: now},
			tests: []entities.LabTest{
				{Name: "Full Blood Count", Category: "Hematology", Price: 15.00},
				{Name: "Lipid Profile", Category: "Chemistry", Price: 25.00},
				{Name: "Thyroid Function Test", Category: "Endocrinology", Price: 40.00},
			},
		},
		{
			lab: entities.Lab{ID: uuid.New().String(), Name: "Synlab Nigeria", Address: "11 Bishop Aboyade Cole St, Victoria Island, Lagos", Phone: "+2348033330002", Status: "approved", CreatedAt: now},
			tests: []entities.LabTest{
				{Name: "Fasting Blood Sugar", Category: "Chemistry", Price: 10.00},
				{Name: "Malaria Parasite Test", Category: "Microbiology", Price: 8.00},
			},
		},
	}

	for _, entry := range labs {
		query, args, err := db.Insert("labs").Rows(goqu.Record{
			"id": entry.lab.ID, "name": entry.lab.Name, "address": entry.lab.Address,
			"phone": entry.lab.Phone, "status": entry.lab.Status, "created_at": entry.lab.CreatedAt,
		}).ToSQL()
		if err != nil {
			log.Fatalf("Failed to build lab insert: %v", err)
		}
		if _, err := pgClient.DB().ExecContext(ctx, query, args...); err != nil {
			log.Printf("Failed to create lab %s: %v", entry.lab.Name, err)
			continue
		}

		for _, test := range entry.tests {
			query, args, err := db.Insert("lab_tests").Rows(goqu.Record{
				"id": uuid.New().String(), "lab_id": entry.lab.ID,
				"name": test.Name, "category": test.Category, "price": test.Price,
			}).ToSQL()
			if err != nil {
				log.Fatalf("Failed to build lab test insert: %v", err)
			}
			if _, err := pgClient.DB().ExecContext(ctx, query, args...); err != nil {
				log.Printf("Failed to create lab test %s: %v", test.Name, err)
			}
		}
	}

	// 5. Seed blood banks
	bloodBanks := []entities.BloodBank{
		{ID: uuid.New().String(), Name: "Lagos State Blood Transfusion Service", Address: "Gbagada General Hospital, Lagos", Phone: "+2348044440001", BloodGroups: []string{"A+", "A-", "B+", "O+", "O-"}},
		{ID: uuid.New().String(), Name: "National Blood Service Commission", Address: "Plot 621 Cadastral Zone, Abuja", Phone: "+2348044440002", BloodGroups: []string{"A+", "B+", "AB+", "O+"}},
	}

	for _, bank := range bloodBanks {
		query, args, err := db.Insert("blood_banks").Rows(goqu.Record{
			"id": bank.ID, "name": bank.Name, "address": bank.Address,
			"phone": bank.Phone, "blood_groups": pq.Array(bank.BloodGroups),
		}).ToSQL()
		if err != nil {
			log.Fatalf("Failed to build blood bank insert: %v", err)
		}
		if _, err := pgClient.DB().ExecContext(ctx, query, args...); err != nil {
			log.Printf("Failed to create blood bank %s: %v", bank.Name, err)
		}
	}

	// 6. Push approved doctors into the search index
	tsClient, err := typesense.NewClient(&cfg.Typesense)
	if err != nil {
		log.Printf("Typesense unavailable, skipping search index sync: %v", err)
	} else {
		searchRepo := search.NewTypesenseAdapter(tsClient)
		doctorService := services.NewDoctorService(database.NewDoctorAdapter(pgClient), searchRepo)
		if err := doctorService.SyncSearchIndex(ctx); err != nil {
			log.Printf("Failed to sync search index: %v", err)
		}
	}

	log.Println("Seeding completed successfully")
}
