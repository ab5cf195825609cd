package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"nam3land/internal/database"
	"nam3land/internal/domain"
	"nam3land/internal/modules/notification"
	"nam3land/internal/repository"

	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
)

func main() {
	_ = godotenv.Load()

	db, err := database.Connect("nam3land.db")
	if err != nil {
		log.Fatal("DB connection failed:", err)
	}

	log.Println("Running migrations...")
	if err := repository.Migrate(db); err != nil {
		log.Fatal("Migrate failed:", err)
	}
	if err := notification.Migrate(db); err != nil {
		log.Fatal("Migrate notifications failed:", err)
	}

	log.Println("Cleaning old data...")
	db.Exec("DELETE FROM notifications")
	db.Exec("DELETE FROM chat_messages")
	db.Exec("DELETE FROM conversations")
	db.Exec("DELETE FROM reservations")
	db.Exec("DELETE FROM properties")
	db.Exec("DELETE FROM users")

	ctx := context.Background()
	users := repository.NewUserRepository(db)
	properties := repository.NewPropertyRepository(db)
	reservations := repository.NewReservationRepository(db)

	log.Println("Creating users...")

	adminHash, _ := bcrypt.GenerateFromPassword([]byte("admin123"), bcrypt.DefaultCost)
	admin := &domain.User{
		Email:        "admin@nam3land.io",
		PasswordHash: string(adminHash),
		Role:         domain.RoleAdmin,
		Name:         "Admin",
	}
	mustCreate(users.Create(ctx, admin))

	agents := make([]*domain.User, 0, 2)
	for i, name := range []string{"Alia Berg", "Marco Ruiz"} {
		hash, _ := bcrypt.GenerateFromPassword([]byte("agent123"), bcrypt.DefaultCost)
		agent := &domain.User{
			Email:        fmt.Sprintf("agent%d@nam3land.io", i+1),
			PasswordHash: string(hash),
			Role:         domain.RoleAgent,
			Name:         name,
			Phone:        fmt.Sprintf("+1 555 010 00%02d", i+1),
			AgentStatus:  domain.AgentActive,
		}
		mustCreate(users.Create(ctx, agent))
		agents = append(agents, agent)
	}

	customers := make([]*domain.User, 0, 3)
	for i, name := range []string{"Jane Cooper", "Omar Haddad", "Mei Lin"} {
		hash, _ := bcrypt.GenerateFromPassword([]byte("customer123"), bcrypt.DefaultCost)
		customer := &domain.User{
			Email:        fmt.Sprintf("customer%d@example.com", i+1),
			PasswordHash: string(hash),
			Role:         domain.RoleCustomer,
			Name:         name,
		}
		mustCreate(users.Create(ctx, customer))
		customers = append(customers, customer)
	}

	log.Println("Creating properties...")

	type listing struct {
		name     string
		location string
		price    float64
		beds     int
		baths    int
		sqft     int
		units    *int
	}
	three, one := 3, 1
	listings := []listing{
		{"Harbor View Apartments", "12 Quay Street", 2400, 2, 1, 860, &three},
		{"Lakeside Cottage", "4 Birch Lane", 1850, 3, 2, 1200, &one},
		{"Downtown Loft", "88 Main Street", 3100, 1, 1, 640, nil},
		{"Garden Terrace", "27 Rose Walk", 2050, 2, 2, 910, &three},
	}
	props := make([]*domain.Property, 0, len(listings))
	for i, l := range listings {
		agentID := agents[i%len(agents)].ID
		var avail *int
		if l.units != nil {
			v := *l.units
			avail = &v
		}
		p := &domain.Property{
			Name:           l.name,
			Location:       l.location,
			Price:          l.price,
			Beds:           l.beds,
			Baths:          l.baths,
			Sqft:           l.sqft,
			Description:    "Bright, well-kept rental close to transit.",
			Status:         domain.PropertyAvailable,
			AgentID:        &agentID,
			UnitsTotal:     l.units,
			UnitsAvailable: avail,
		}
		mustCreate(properties.Create(ctx, p))
		props = append(props, p)
	}

	log.Println("Creating reservations...")

	mustCreate(reservations.Create(ctx, &domain.Reservation{
		CustomerID:      customers[0].ID,
		PropertyID:      props[0].ID,
		AgentID:         *props[0].AgentID,
		ReservationTime: time.Now().AddDate(0, 0, 3).Truncate(time.Hour),
		Status:          domain.ReservationPending,
		Notes:           "Prefer a morning viewing",
	}))
	mustCreate(reservations.Create(ctx, &domain.Reservation{
		CustomerID:      customers[1].ID,
		PropertyID:      props[1].ID,
		AgentID:         *props[1].AgentID,
		ReservationTime: time.Now().AddDate(0, 0, 5).Truncate(time.Hour),
		Status:          domain.ReservationPending,
	}))

	log.Println("Seed completed.")
	log.Println("Admin: admin@nam3land.io / admin123")
	log.Println("Agents: agent1..2@nam3land.io / agent123")
	log.Println("Customers: customer1..3@example.com / customer123")
}

func mustCreate(err error) {
	if err != nil {
		log.Fatal("seed failed:", err)
	}
}
