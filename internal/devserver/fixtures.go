package devserver

import (
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/pharmago/clientkit/pkg/api"
)

// Demo credentials seeded at startup.
const (
	DemoCustomerEmail    = "customer@pharmago.dev"
	DemoCustomerPassword = "customer123"
	DemoAdminEmail       = "admin@pharmago.dev"
	DemoAdminPassword    = "admin123"
)

func (s *Server) seed() {
	now := time.Now().UTC().Format(time.RFC3339)

	customerHash, _ := bcrypt.GenerateFromPassword([]byte(DemoCustomerPassword), bcrypt.DefaultCost)
	adminHash, _ := bcrypt.GenerateFromPassword([]byte(DemoAdminPassword), bcrypt.DefaultCost)

	s.users[DemoCustomerEmail] = &account{
		user: api.User{
			ID: 1, Name: "Demo Customer", Email: DemoCustomerEmail,
			ContactNumber: "+1-555-0100", Role: api.RoleCustomer,
			IsActive: true, IsEmailVerified: true, CreatedAt: now,
			City: "Springfield",
		},
		passwordHash: customerHash,
	}
	s.users[DemoAdminEmail] = &account{
		user: api.User{
			ID: 2, Name: "Demo Admin", Email: DemoAdminEmail,
			ContactNumber: "+1-555-0101", Role: api.RoleAdmin,
			IsActive: true, IsEmailVerified: true, CreatedAt: now,
		},
		passwordHash: adminHash,
	}

	s.medicines = []api.Medicine{
		{ID: 1, Name: "Paracetamol 500mg", Description: "Pain and fever relief", Category: "Pain Relief", Manufacturer: "Acme Pharma", Price: 12.99, StockQuantity: 150, IsActive: true, CreatedAt: now, UpdatedAt: now, Dosage: "1-2 tablets every 4-6 hours"},
		{ID: 2, Name: "Amoxicillin 250mg", Description: "Broad-spectrum antibiotic", Category: "Antibiotics", Manufacturer: "BetaLabs", Price: 25.50, StockQuantity: 40, RequiresPrescription: true, IsActive: true, CreatedAt: now, UpdatedAt: now},
		{ID: 3, Name: "Vitamin C 1000mg", Description: "Immune system support", Category: "Vitamins", Manufacturer: "Acme Pharma", Price: 18.75, StockQuantity: 200, IsActive: true, CreatedAt: now, UpdatedAt: now},
		{ID: 4, Name: "Ibuprofen 400mg", Description: "Anti-inflammatory pain relief", Category: "Pain Relief", Manufacturer: "BetaLabs", Price: 16.25, StockQuantity: 90, IsActive: true, CreatedAt: now, UpdatedAt: now},
		{ID: 5, Name: "Lisinopril 10mg", Description: "Blood pressure management", Category: "Cardiovascular", Manufacturer: "CardioMed", Price: 32.00, StockQuantity: 25, RequiresPrescription: true, IsActive: true, CreatedAt: now, UpdatedAt: now},
		{ID: 6, Name: "Omega-3 Fish Oil", Description: "Heart health supplement", Category: "Supplements", Manufacturer: "Acme Pharma", Price: 24.99, StockQuantity: 0, IsActive: true, CreatedAt: now, UpdatedAt: now},
	}
}
